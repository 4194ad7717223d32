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

	"github.com/tochemey/uaf/protocol"
)

// ActorSpawned is published once an actor process is running and routable.
type ActorSpawned struct {
	// ID is the actor id
	ID protocol.ActorID
	// Parent is the actor that requested the spawn. It is nil for the root
	// actor and for actors spawned through Supervisor.Spawn.
	Parent *protocol.ActorID
	// Props are the validated spawn properties
	Props protocol.Props
	// PID is the operating system process id
	PID int
	// SpawnedAt is the launch time
	SpawnedAt time.Time
}

// ActorTerminated is published once an actor process has been reaped.
type ActorTerminated struct {
	ID       protocol.ActorID
	ExitCode int
	// Err is the error reported while waiting for the process, if any
	Err          error
	TerminatedAt time.Time
}

// SpawnFailed is published when a spawn request is rejected or the process cannot be started.
type SpawnFailed struct {
	Requester *protocol.ActorID
	Props     protocol.Props
	Err       error
}

// Deadletter is published when a message cannot be delivered.
type Deadletter struct {
	To      protocol.ActorID
	Message *protocol.Message
	Reason  error
}

// ActorLog is published for every diagnostic line an actor writes on its standard error.
// Log is nil when the line is not a valid log message, in which case Raw holds it.
type ActorLog struct {
	ID  protocol.ActorID
	Log *protocol.LogMessage
	Raw string
}
