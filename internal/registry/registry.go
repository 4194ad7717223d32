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

// Package registry keeps the routing table of live actors: the mapping from
// an actor id to the sink feeding that actor's standard input.
package registry

import (
	csmap "github.com/mhmtszr/concurrent-swiss-map"
	"github.com/zeebo/xxh3"

	"github.com/tochemey/uaf/protocol"
)

const shardCount = 32

// Sink receives the messages routed to an actor
type Sink interface {
	// Enqueue hands over a message without blocking
	Enqueue(message *protocol.Message) error
}

// Registry maps actor ids to their sinks. It is safe for concurrent use.
type Registry struct {
	entries *csmap.CsMap[protocol.ActorID, Sink]
}

// New creates an instance of Registry sized for the given number of actors
func New(size int) *Registry {
	if size < 0 {
		size = 0
	}
	return &Registry{
		entries: csmap.Create[protocol.ActorID, Sink](
			csmap.WithShardCount[protocol.ActorID, Sink](shardCount),
			csmap.WithCustomHasher[protocol.ActorID, Sink](func(key protocol.ActorID) uint64 {
				return xxh3.Hash(key.Bytes())
			}),
			csmap.WithSize[protocol.ActorID, Sink](uint64(size)),
		),
	}
}

// Register adds or replaces the sink of the given actor
func (r *Registry) Register(id protocol.ActorID, sink Sink) {
	r.entries.Store(id, sink)
}

// Lookup returns the sink of the given actor
func (r *Registry) Lookup(id protocol.ActorID) (Sink, bool) {
	return r.entries.Load(id)
}

// Remove removes the given actor. It reports whether the actor was registered.
func (r *Registry) Remove(id protocol.ActorID) bool {
	return r.entries.Delete(id)
}

// Exists reports whether the given actor is registered
func (r *Registry) Exists(id protocol.ActorID) bool {
	return r.entries.Has(id)
}

// Len returns the number of registered actors
func (r *Registry) Len() int {
	return r.entries.Count()
}

// IDs returns a snapshot of the registered actor ids
func (r *Registry) IDs() []protocol.ActorID {
	out := make([]protocol.ActorID, 0, r.entries.Count())
	r.entries.Range(func(id protocol.ActorID, _ Sink) bool {
		out = append(out, id)
		return false
	})
	return out
}

// Reset removes every registered actor
func (r *Registry) Reset() {
	r.entries.Clear()
}
