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
	gerrors "github.com/tochemey/uaf/errors"
	"github.com/tochemey/uaf/internal/queue"
	"github.com/tochemey/uaf/protocol"
)

// UnboundedMailbox is the default mailbox. Enqueue always succeeds until the
// mailbox is disposed.
type UnboundedMailbox struct {
	underlying *queue.Queue[*protocol.Message]
}

// enforce compilation error
var _ Mailbox = (*UnboundedMailbox)(nil)

// NewUnboundedMailbox creates an instance of UnboundedMailbox
func NewUnboundedMailbox() *UnboundedMailbox {
	return &UnboundedMailbox{
		underlying: queue.New[*protocol.Message](),
	}
}

// Enqueue implements Mailbox
func (m *UnboundedMailbox) Enqueue(message *protocol.Message) error {
	if !m.underlying.Push(message) {
		return gerrors.ErrMailboxDisposed
	}
	return nil
}

// Dequeue implements Mailbox
func (m *UnboundedMailbox) Dequeue() (*protocol.Message, bool) {
	return m.underlying.Wait()
}

// Len implements Mailbox
func (m *UnboundedMailbox) Len() int {
	return m.underlying.Len()
}

// Dispose implements Mailbox
func (m *UnboundedMailbox) Dispose() {
	m.underlying.Close()
}
