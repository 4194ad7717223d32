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

// Package chain runs a sequence of steps and collects their errors.
package chain

import (
	"context"

	"go.uber.org/multierr"
)

// Chain runs steps in insertion order. With WithFailFast the steps after the
// first failure are skipped; otherwise every step runs and the errors are combined.
type Chain struct {
	failFast bool
	errs     []error
	ctx      context.Context
}

// Option configures a Chain at creation time.
type Option func(*Chain)

// New creates a new Chain
func New(opts ...Option) *Chain {
	chain := &Chain{
		errs: make([]error, 0),
		ctx:  context.Background(),
	}

	for _, opt := range opts {
		opt(chain)
	}

	return chain
}

// WithFailFast stops the chain on the first error
func WithFailFast() Option {
	return func(c *Chain) { c.failFast = true }
}

// WithRunAll runs every step regardless of earlier errors
func WithRunAll() Option {
	return func(c *Chain) { c.failFast = false }
}

// WithContext sets the context handed to context runners
func WithContext(ctx context.Context) Option {
	return func(c *Chain) { c.ctx = ctx }
}

// AddRunner runs the given step
func (c *Chain) AddRunner(fn func() error) *Chain {
	return c.run(fn)
}

// AddRunners runs the given steps in order
func (c *Chain) AddRunners(fns ...func() error) *Chain {
	for _, fn := range fns {
		c.run(fn)
	}
	return c
}

// AddContextRunner runs the given step with the chain context
func (c *Chain) AddContextRunner(fn func(ctx context.Context) error) *Chain {
	return c.run(func() error { return fn(c.ctx) })
}

// AddContextRunnerIf runs the given step only when condition holds
func (c *Chain) AddContextRunnerIf(condition bool, fn func(ctx context.Context) error) *Chain {
	if !condition {
		return c
	}
	return c.AddContextRunner(fn)
}

// Run returns the outcome of the chain
func (c *Chain) Run() error {
	if len(c.errs) == 0 {
		return nil
	}

	if c.failFast {
		return c.errs[0]
	}

	return multierr.Combine(c.errs...)
}

func (c *Chain) run(fn func() error) *Chain {
	if c.failFast && len(c.errs) > 0 {
		return c
	}

	if err := fn(); err != nil {
		c.errs = append(c.errs, err)
	}
	return c
}
