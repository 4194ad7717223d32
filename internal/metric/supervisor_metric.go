// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package metric

import "go.opentelemetry.io/otel/metric"

// SupervisorMetric groups the instruments describing a running supervisor.
//
// Instruments:
//   - supervisor.actors.count          (Int64ObservableGauge)
//   - supervisor.spawns.count          (Int64ObservableCounter)
//   - supervisor.spawn_failures.count  (Int64ObservableCounter)
//   - supervisor.routed_messages.count (Int64ObservableCounter)
//   - supervisor.deadletters.count     (Int64ObservableCounter)
type SupervisorMetric struct {
	actorsCount        metric.Int64ObservableGauge
	spawnsCount        metric.Int64ObservableCounter
	spawnFailuresCount metric.Int64ObservableCounter
	routedCount        metric.Int64ObservableCounter
	deadlettersCount   metric.Int64ObservableCounter
}

// NewSupervisorMetric creates the supervisor instruments using the given Meter
func NewSupervisorMetric(meter metric.Meter) (*SupervisorMetric, error) {
	var instruments SupervisorMetric
	var err error

	if instruments.actorsCount, err = meter.Int64ObservableGauge(
		"supervisor.actors.count",
		metric.WithDescription("Number of live actors"),
	); err != nil {
		return nil, err
	}

	if instruments.spawnsCount, err = meter.Int64ObservableCounter(
		"supervisor.spawns.count",
		metric.WithDescription("Total number of actors spawned"),
	); err != nil {
		return nil, err
	}

	if instruments.spawnFailuresCount, err = meter.Int64ObservableCounter(
		"supervisor.spawn_failures.count",
		metric.WithDescription("Total number of spawn requests that failed"),
	); err != nil {
		return nil, err
	}

	if instruments.routedCount, err = meter.Int64ObservableCounter(
		"supervisor.routed_messages.count",
		metric.WithDescription("Total number of data messages delivered to a mailbox"),
	); err != nil {
		return nil, err
	}

	if instruments.deadlettersCount, err = meter.Int64ObservableCounter(
		"supervisor.deadletters.count",
		metric.WithDescription("Total number of messages that could not be delivered"),
	); err != nil {
		return nil, err
	}

	return &instruments, nil
}

// ActorsCount returns the gauge of live actors
func (x *SupervisorMetric) ActorsCount() metric.Int64ObservableGauge {
	return x.actorsCount
}

// SpawnsCount returns the counter of successful spawns
func (x *SupervisorMetric) SpawnsCount() metric.Int64ObservableCounter {
	return x.spawnsCount
}

// SpawnFailuresCount returns the counter of failed spawns
func (x *SupervisorMetric) SpawnFailuresCount() metric.Int64ObservableCounter {
	return x.spawnFailuresCount
}

// RoutedCount returns the counter of delivered data messages
func (x *SupervisorMetric) RoutedCount() metric.Int64ObservableCounter {
	return x.routedCount
}

// DeadlettersCount returns the counter of undeliverable messages
func (x *SupervisorMetric) DeadlettersCount() metric.Int64ObservableCounter {
	return x.deadlettersCount
}

// Instruments returns every instrument, as expected by Meter.RegisterCallback
func (x *SupervisorMetric) Instruments() []metric.Observable {
	return []metric.Observable{
		x.actorsCount,
		x.spawnsCount,
		x.spawnFailuresCount,
		x.routedCount,
		x.deadlettersCount,
	}
}
