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

import "github.com/tochemey/uaf/protocol"

// Mailbox buffers the messages waiting to be written on an actor's standard input.
//
// Enqueue may be called by any number of goroutines and never blocks: a
// bounded implementation fails with errors.ErrMailboxFull. Dequeue is called
// by the actor's stdin writer only and blocks until a message is available;
// it returns false once the mailbox is disposed. After Dispose every Enqueue
// fails with errors.ErrMailboxDisposed and pending messages are dropped.
type Mailbox interface {
	// Enqueue pushes a message into the mailbox.
	Enqueue(message *protocol.Message) error
	// Dequeue removes the oldest message, blocking while the mailbox is empty.
	Dequeue() (*protocol.Message, bool)
	// Len returns a snapshot of the number of pending messages.
	Len() int
	// Dispose releases the mailbox and unblocks the consumer.
	Dispose()
}

// newMailbox creates the mailbox of a new actor
func (s *Supervisor) newMailbox() Mailbox {
	if s.mailboxCapacity > 0 {
		return NewBoundedMailbox(s.mailboxCapacity)
	}
	return NewUnboundedMailbox()
}
