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

package sdk

import (
	"bufio"
	"io"
)

// Option is the interface that applies an Actor configuration option.
type Option interface {
	// Apply sets the Option value on the actor.
	Apply(actor *Actor)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Actor)

func (f OptionFunc) Apply(actor *Actor) {
	f(actor)
}

// WithInput sets the stream messages are read from
func WithInput(r io.Reader) Option {
	return OptionFunc(func(a *Actor) {
		a.reader = bufio.NewReader(r)
	})
}

// WithOutput sets the stream data messages and spawn requests are written to
func WithOutput(w io.Writer) Option {
	return OptionFunc(func(a *Actor) {
		a.stdout = w
	})
}

// WithDiagnostics sets the stream log messages are written to
func WithDiagnostics(w io.Writer) Option {
	return OptionFunc(func(a *Actor) {
		a.stderr = w
	})
}
