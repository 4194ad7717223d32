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
	"context"

	"golang.org/x/time/rate"

	gerrors "github.com/tochemey/uaf/errors"
	"github.com/tochemey/uaf/internal/queue"
	"github.com/tochemey/uaf/protocol"
)

type spawnRequest struct {
	requester protocol.ActorID
	props     protocol.Props
}

// spawner handles the spawn requests written by actors, one at a time and in
// arrival order. The limiter spaces two consecutive launches by at least the
// spawn interval.
type spawner struct {
	supervisor *Supervisor
	ctx        context.Context
	requests   *queue.Queue[*spawnRequest]
	limiter    *rate.Limiter
	stopped    chan struct{}
}

func newSpawner(s *Supervisor) *spawner {
	return &spawner{
		supervisor: s,
		ctx:        s.ctx,
		requests:   queue.New[*spawnRequest](),
		limiter:    rate.NewLimiter(rate.Every(s.spawnInterval), 1),
		stopped:    make(chan struct{}),
	}
}

func (x *spawner) start() error {
	go x.run()
	return nil
}

// stop drops the pending requests and waits for the worker to return
func (x *spawner) stop() {
	x.requests.Close()
	<-x.stopped
}

// enqueue queues a request. It returns false once the spawner is stopped.
func (x *spawner) enqueue(request *spawnRequest) bool {
	return x.requests.Push(request)
}

// pending returns the number of queued requests
func (x *spawner) pending() int {
	return x.requests.Len()
}

func (x *spawner) run() {
	defer close(x.stopped)
	for {
		request, ok := x.requests.Wait()
		if !ok {
			return
		}

		if err := x.limiter.Wait(x.ctx); err != nil {
			return
		}

		x.handle(request)
	}
}

// handle launches the requested actor and acknowledges the requester
func (x *spawner) handle(request *spawnRequest) {
	s := x.supervisor

	var result protocol.SpawnResult
	proc, err := s.launch(x.ctx, request.props, &request.requester)
	if err != nil {
		result = protocol.SpawnErr(err.Error())
	} else {
		result = protocol.SpawnOk(proc.id)
	}

	ack := protocol.NewSpawnedMessage(result, request.props)
	sink, ok := s.registry.Lookup(request.requester)
	if !ok {
		s.deadletter(request.requester, ack, gerrors.NewErrActorNotFound(request.requester.String()))
		return
	}

	if err := sink.Enqueue(ack); err != nil {
		s.deadletter(request.requester, ack, err)
	}
}
