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
	"errors"

	gods "github.com/Workiva/go-datastructures/queue"

	gerrors "github.com/tochemey/uaf/errors"
	"github.com/tochemey/uaf/protocol"
)

// BoundedMailbox is a fixed size mailbox backed by a ring buffer.
//
// Enqueue does not wait for room: when the mailbox is full it fails with
// errors.ErrMailboxFull and the caller drops the message. The ring buffer
// rounds the capacity up to the next power of two.
type BoundedMailbox struct {
	underlying *gods.RingBuffer
}

// enforce compilation error
var _ Mailbox = (*BoundedMailbox)(nil)

// NewBoundedMailbox creates a bounded mailbox with the given capacity.
// Capacity must be a positive integer.
func NewBoundedMailbox(capacity int) *BoundedMailbox {
	return &BoundedMailbox{
		underlying: gods.NewRingBuffer(uint64(capacity)),
	}
}

// Enqueue implements Mailbox
func (m *BoundedMailbox) Enqueue(message *protocol.Message) error {
	ok, err := m.underlying.Offer(message)
	if err != nil {
		if errors.Is(err, gods.ErrDisposed) {
			return gerrors.ErrMailboxDisposed
		}
		return err
	}
	if !ok {
		return gerrors.ErrMailboxFull
	}
	return nil
}

// Dequeue implements Mailbox
func (m *BoundedMailbox) Dequeue() (*protocol.Message, bool) {
	item, err := m.underlying.Get()
	if err != nil {
		return nil, false
	}
	message, ok := item.(*protocol.Message)
	return message, ok
}

// Len implements Mailbox
func (m *BoundedMailbox) Len() int {
	return int(m.underlying.Len())
}

// Capacity returns the effective capacity of the mailbox
func (m *BoundedMailbox) Capacity() int {
	return int(m.underlying.Cap())
}

// Dispose implements Mailbox
func (m *BoundedMailbox) Dispose() {
	m.underlying.Dispose()
}
