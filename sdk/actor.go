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

// Package sdk implements the actor side of the supervisor protocol.
//
// An actor reads its messages from standard input, writes data messages and
// spawn requests on standard output and diagnostics on standard error.
// The first message an actor receives carries its own id.
package sdk

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"sync"

	gerrors "github.com/tochemey/uaf/errors"
	"github.com/tochemey/uaf/protocol"
)

// Actor is a handle on the standard streams of the current process.
// Send, Spawn and Log are safe for concurrent use; Receive is not.
type Actor struct {
	reader *bufio.Reader

	outMu  sync.Mutex
	stdout io.Writer
	errMu  sync.Mutex
	stderr io.Writer

	idMu sync.RWMutex
	id   *protocol.ActorID
}

// New creates an Actor bound to the process standard streams
func New(opts ...Option) *Actor {
	actor := &Actor{
		reader: bufio.NewReader(os.Stdin),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt.Apply(actor)
	}
	return actor
}

// ID returns the actor id. It is known once the identity message has been received.
func (a *Actor) ID() (protocol.ActorID, bool) {
	a.idMu.RLock()
	defer a.idMu.RUnlock()
	if a.id == nil {
		return protocol.NilActorID, false
	}
	return *a.id, true
}

// Identify receives the identity message and returns the actor id
func (a *Actor) Identify() (protocol.ActorID, error) {
	if _, err := a.Receive(); err != nil {
		return protocol.NilActorID, err
	}

	id, ok := a.ID()
	if !ok {
		return protocol.NilActorID, gerrors.ErrIdentityNotReceived
	}
	return id, nil
}

// Receive blocks until the next message. It returns io.EOF once the
// supervisor has closed the actor standard input.
func (a *Actor) Receive() (*protocol.Message, error) {
	for {
		line, err := a.reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) == 0 {
			if err != nil {
				return nil, err
			}
			continue
		}

		message, decodeErr := protocol.DecodeMessage(line)
		if decodeErr != nil {
			return nil, decodeErr
		}

		a.identify(message)
		return message, nil
	}
}

// Send sends the payload to the given actor
func (a *Actor) Send(to protocol.ActorID, payload any) error {
	data, err := protocol.NewData(to, payload)
	if err != nil {
		return err
	}
	return a.SendData(data)
}

// SendData writes the data message as is
func (a *Actor) SendData(data *protocol.Data) error {
	return a.writeOut(data)
}

// Spawn requests the supervisor to spawn an actor. The outcome is delivered
// later as a Spawned message.
func (a *Actor) Spawn(props protocol.Props) error {
	return a.writeOut(props)
}

// Log writes a diagnostic. The supervisor renders it at the given level.
func (a *Actor) Log(level, message string, tags protocol.Tags) error {
	logMessage := protocol.NewLogMessage(level, message)
	if tags != nil {
		logMessage.Tags = tags
	}

	line, err := protocol.EncodeLine(logMessage)
	if err != nil {
		return err
	}

	a.errMu.Lock()
	defer a.errMu.Unlock()
	_, err = a.stderr.Write(line)
	return err
}

func (a *Actor) writeOut(v any) error {
	line, err := protocol.EncodeLine(v)
	if err != nil {
		return err
	}

	a.outMu.Lock()
	defer a.outMu.Unlock()
	_, err = a.stdout.Write(line)
	return err
}

// identify records the actor id from the identity message: the first data
// message, with no origin, addressed to the actor and carrying its id.
func (a *Actor) identify(message *protocol.Message) {
	if message.Data == nil || message.Data.From != nil {
		return
	}

	a.idMu.Lock()
	defer a.idMu.Unlock()
	if a.id != nil {
		return
	}

	var payload struct {
		ID *protocol.ActorID `json:"id"`
	}
	if err := message.Data.DecodePayload(&payload); err != nil || payload.ID == nil {
		return
	}

	if *payload.ID == message.Data.To {
		id := message.Data.To
		a.id = &id
	}
}
