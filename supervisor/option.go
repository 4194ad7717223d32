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

package supervisor

import (
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/uaf/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(s *Supervisor)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Supervisor)

func (f OptionFunc) Apply(s *Supervisor) {
	f(s)
}

// WithLogger sets the supervisor logger. Actor diagnostics are rendered through it as well.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(s *Supervisor) {
		s.logger = logger
	})
}

// WithSpawnInterval sets the minimum delay between two spawn requests
// handled on behalf of actors.
func WithSpawnInterval(interval time.Duration) Option {
	return OptionFunc(func(s *Supervisor) {
		s.spawnInterval = interval
	})
}

// WithMailboxCapacity bounds every actor mailbox to the given capacity.
// A message routed to a full mailbox is dropped as a deadletter.
// Zero selects the unbounded mailbox.
func WithMailboxCapacity(capacity int) Option {
	return OptionFunc(func(s *Supervisor) {
		s.mailboxCapacity = capacity
	})
}

// WithMeterProvider sets the OpenTelemetry MeterProvider used to report the supervisor metrics
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(s *Supervisor) {
		s.meterProvider = provider
	})
}

// WithShutdownTimeout bounds the time Stop waits for the actor processes to be reaped
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(s *Supervisor) {
		s.shutdownTimeout = timeout
	})
}
