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

// Package supervisor launches actor processes and routes the line-delimited
// JSON envelopes they exchange over their standard streams.
//
// Every actor is an executable. The supervisor writes the messages addressed
// to an actor on its standard input, reads data messages and spawn requests
// from its standard output and renders its standard error as structured logs.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goset "github.com/deckarep/golang-set/v2"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/uaf/errors"
	"github.com/tochemey/uaf/eventstream"
	"github.com/tochemey/uaf/internal/chain"
	imetric "github.com/tochemey/uaf/internal/metric"
	"github.com/tochemey/uaf/internal/registry"
	"github.com/tochemey/uaf/internal/validation"
	"github.com/tochemey/uaf/internal/xsync"
	"github.com/tochemey/uaf/log"
	"github.com/tochemey/uaf/protocol"
)

// Supervisor owns the actor processes, their routing table and the spawn worker.
type Supervisor struct {
	logger          log.Logger
	spawnInterval   time.Duration
	mailboxCapacity int
	shutdownTimeout time.Duration
	meterProvider   metric.MeterProvider

	registry  *registry.Registry
	processes *xsync.Map[protocol.ActorID, *process]
	issued    goset.Set[protocol.ActorID]
	events    eventstream.Stream

	// lifecycle is held in read mode by every launch and in write mode by
	// Stop once the supervisor is flagged as stopped
	lifecycle sync.RWMutex
	started   *atomic.Bool
	ctx       context.Context
	cancel    context.CancelFunc
	spawner   *spawner
	reapers   sync.WaitGroup

	spawnsCounter        *atomic.Int64
	spawnFailuresCounter *atomic.Int64
	routedCounter        *atomic.Int64
	deadlettersCounter   *atomic.Int64
	metricRegistration   metric.Registration
}

// New creates an instance of Supervisor
func New(opts ...Option) (*Supervisor, error) {
	s := &Supervisor{
		logger:               log.DefaultLogger,
		spawnInterval:        DefaultSpawnInterval,
		mailboxCapacity:      DefaultMailboxCapacity,
		shutdownTimeout:      DefaultShutdownTimeout,
		registry:             registry.New(defaultRegistrySize),
		processes:            xsync.NewMap[protocol.ActorID, *process](),
		issued:               goset.NewSet[protocol.ActorID](),
		events:               eventstream.New(),
		started:              atomic.NewBool(false),
		spawnsCounter:        atomic.NewInt64(0),
		spawnFailuresCounter: atomic.NewInt64(0),
		routedCounter:        atomic.NewInt64(0),
		deadlettersCounter:   atomic.NewInt64(0),
	}

	for _, opt := range opts {
		opt.Apply(s)
	}

	if err := validation.New(validation.FailFast()).
		AddAssertion(s.logger != nil, "logger is required").
		AddValidator(validation.ValidatorFunc(func() error {
			if s.spawnInterval <= 0 {
				return gerrors.ErrInvalidSpawnInterval
			}
			return nil
		})).
		AddValidator(validation.ValidatorFunc(func() error {
			if s.mailboxCapacity < 0 {
				return gerrors.ErrInvalidMailboxCapacity
			}
			return nil
		})).
		AddAssertion(s.shutdownTimeout > 0, "shutdown timeout must be greater than zero").
		Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Start starts the spawn worker and registers the metrics.
func (s *Supervisor) Start(ctx context.Context) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.started.Load() {
		return gerrors.ErrSupervisorAlreadyStarted
	}

	s.ctx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.spawner = newSpawner(s)

	if err := chain.New(chain.WithFailFast()).
		AddRunner(s.registerMetrics).
		AddRunner(s.spawner.start).
		Run(); err != nil {
		s.cancel()
		return err
	}

	s.started.Store(true)
	s.logger.Infof("supervisor started (spawn interval=%s)", s.spawnInterval)
	return nil
}

// Stop kills every live actor, stops the spawn worker and waits for the
// processes to be reaped. The wait is bounded by ctx and the shutdown timeout.
func (s *Supervisor) Stop(ctx context.Context) error {
	if !s.started.CompareAndSwap(true, false) {
		return gerrors.ErrSupervisorNotStarted
	}

	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	s.logger.Info("stopping supervisor...")
	s.cancel()
	s.spawner.stop()

	// in-flight launches complete before the actors are killed
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	err := chain.New(chain.WithRunAll(), chain.WithContext(ctx)).
		AddRunner(s.killActors).
		AddContextRunner(s.waitReapers).
		AddRunner(s.unregisterMetrics).
		Run()

	s.registry.Reset()
	if err != nil {
		s.logger.Errorf("supervisor stopped with error: %v", err)
		return err
	}

	s.logger.Info("supervisor stopped")
	return nil
}

// Run launches the root actor and blocks until it exits or ctx is done.
// A root actor that cannot be validated or started is reported as an error.
func (s *Supervisor) Run(ctx context.Context, props protocol.Props) error {
	proc, err := s.launch(ctx, props, nil)
	if err != nil {
		return err
	}

	select {
	case <-proc.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Spawn launches an actor on behalf of the caller and returns its id without
// waiting for the process to exit. No acknowledgement is sent to any actor.
func (s *Supervisor) Spawn(ctx context.Context, props protocol.Props) (protocol.ActorID, error) {
	proc, err := s.launch(ctx, props, nil)
	if err != nil {
		return protocol.NilActorID, err
	}
	return proc.id, nil
}

// Send delivers a data message to its destination. The origin is left as is.
func (s *Supervisor) Send(_ context.Context, data *protocol.Data) error {
	if !s.started.Load() {
		return gerrors.ErrSupervisorNotStarted
	}
	if data == nil {
		return errors.New("data is required")
	}
	// the payload must fit on the actor input line
	if _, err := protocol.EncodeMessage(protocol.NewDataMessage(data)); err != nil {
		return err
	}
	return s.deliver(data)
}

// Subscribe creates a subscriber receiving the supervisor events:
// ActorSpawned, ActorTerminated, SpawnFailed, Deadletter and ActorLog.
func (s *Supervisor) Subscribe() eventstream.Subscriber {
	subscriber := s.events.AddSubscriber()
	s.events.Subscribe(subscriber, eventsTopic)
	return subscriber
}

// Unsubscribe removes the given subscriber
func (s *Supervisor) Unsubscribe(subscriber eventstream.Subscriber) {
	s.events.Unsubscribe(subscriber, eventsTopic)
	s.events.RemoveSubscriber(subscriber)
}

// NumActors returns the number of live actor processes
func (s *Supervisor) NumActors() int {
	return s.processes.Len()
}

// Actors returns the ids of the live actor processes
func (s *Supervisor) Actors() []protocol.ActorID {
	return s.processes.Keys()
}

// PendingSpawns returns the number of spawn requests waiting to be handled
func (s *Supervisor) PendingSpawns() int {
	s.lifecycle.RLock()
	defer s.lifecycle.RUnlock()
	if s.spawner == nil {
		return 0
	}
	return s.spawner.pending()
}

// Running reports whether the supervisor is started
func (s *Supervisor) Running() bool {
	return s.started.Load()
}

// newActorID returns an id that has never been issued by this supervisor
func (s *Supervisor) newActorID() protocol.ActorID {
	for {
		id := protocol.NewActorID()
		if s.issued.Add(id) {
			return id
		}
	}
}

func (s *Supervisor) publish(event any) {
	s.events.Publish(eventsTopic, event)
}

func (s *Supervisor) killActors() error {
	for _, proc := range s.processes.Values() {
		proc.kill()
	}
	return nil
}

func (s *Supervisor) waitReapers(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.reapers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for %d actor(s) to terminate: %w", s.processes.Len(), ctx.Err())
	}
}

func (s *Supervisor) registerMetrics() error {
	meter := imetric.New(imetric.WithMeterProvider(s.meterProvider)).Meter()
	metrics, err := imetric.NewSupervisorMetric(meter)
	if err != nil {
		return err
	}

	s.metricRegistration, err = meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		observer.ObserveInt64(metrics.ActorsCount(), int64(s.processes.Len()))
		observer.ObserveInt64(metrics.SpawnsCount(), s.spawnsCounter.Load())
		observer.ObserveInt64(metrics.SpawnFailuresCount(), s.spawnFailuresCounter.Load())
		observer.ObserveInt64(metrics.RoutedCount(), s.routedCounter.Load())
		observer.ObserveInt64(metrics.DeadlettersCount(), s.deadlettersCounter.Load())
		return nil
	}, metrics.Instruments()...)
	return err
}

func (s *Supervisor) unregisterMetrics() error {
	if s.metricRegistration == nil {
		return nil
	}
	err := s.metricRegistration.Unregister()
	s.metricRegistration = nil
	return err
}
