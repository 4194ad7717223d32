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

package queue

import "sync"

// minCapacity is the smallest ring size. It must be a power of two
// so that x % n can be computed as x & (n - 1).
const minCapacity = 16

// Queue is an unbounded FIFO guarded by a mutex and backed by a growable ring.
// Consumers can block on Wait until an item is pushed or the queue is closed.
type Queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	ring   []T
	head   int
	tail   int
	count  int
	closed bool
}

// New creates an instance of Queue
func New[T any]() *Queue[T] {
	q := &Queue[T]{ring: make([]T, minCapacity)}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends an item to the back of the queue.
// It returns false when the queue is closed, in which case the item is dropped.
func (q *Queue[T]) Push(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	if q.count == len(q.ring) {
		q.resize(len(q.ring) << 1)
	}

	q.ring[q.tail] = item
	q.tail = (q.tail + 1) & (len(q.ring) - 1)
	q.count++
	q.cond.Signal()
	return true
}

// Pop removes the item at the front of the queue without blocking.
// It returns false when the queue is empty or closed.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pop()
}

// Wait blocks until an item is available and removes it.
// It returns false once the queue is closed.
func (q *Queue[T]) Wait() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 && !q.closed {
		q.cond.Wait()
	}
	return q.pop()
}

// Close closes the queue, discards pending items and wakes up every waiter.
// Calling Close more than once is a no-op.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	q.count = 0
	q.head, q.tail = 0, 0
	q.ring = nil
	q.cond.Broadcast()
}

// IsClosed returns true if the queue has been closed
func (q *Queue[T]) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of pending items
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// IsEmpty returns true when the queue holds no item
func (q *Queue[T]) IsEmpty() bool {
	return q.Len() == 0
}

func (q *Queue[T]) pop() (T, bool) {
	var zero T
	if q.closed || q.count == 0 {
		return zero, false
	}

	item := q.ring[q.head]
	q.ring[q.head] = zero
	q.head = (q.head + 1) & (len(q.ring) - 1)
	q.count--

	// shrink when the ring is a quarter full
	if len(q.ring) > minCapacity && q.count<<2 == len(q.ring) {
		q.resize(len(q.ring) >> 1)
	}
	return item, true
}

// resize moves the pending items at the start of a ring of the given size
func (q *Queue[T]) resize(size int) {
	ring := make([]T, size)
	if q.tail > q.head {
		copy(ring, q.ring[q.head:q.tail])
	} else if q.count > 0 {
		n := copy(ring, q.ring[q.head:])
		copy(ring[n:], q.ring[:q.tail])
	}

	q.head = 0
	q.tail = q.count
	q.ring = ring
}
