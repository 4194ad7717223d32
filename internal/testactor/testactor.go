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

// Package testactor implements the reference actor used to exercise a supervisor end to end.
package testactor

import (
	"errors"
	"io"

	"github.com/tochemey/uaf/protocol"
	"github.com/tochemey/uaf/sdk"
)

const (
	// DefaultMaxCount is the number of messages handled before the actor exits
	DefaultMaxCount = 10

	// DefaultEchoPath is the executable spawned on the fifth message
	DefaultEchoPath = "/usr/bin/echo"

	spawnAt = 5
)

// Status is the payload the actor sends back for every data message it receives
type Status struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Run counts the received messages and logs each of them. Every data message
// but the last one is answered with a Status sent to the message destination.
// On the fifth message it requests the spawn of echoPath with the data message
// as argument. It returns after maxCount messages, or logs its shutdown and
// returns when its input is closed.
func Run(actor *sdk.Actor, maxCount int, echoPath string) error {
	for count := 1; count <= maxCount; count++ {
		message, err := actor.Receive()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return actor.Log("info", "Actor shutting down", nil)
			}
			return err
		}

		encoded, err := protocol.EncodeLine(message)
		if err != nil {
			return err
		}

		tags := protocol.Tags{}
		if err := tags.Set("count", count); err != nil {
			return err
		}
		if err := tags.Set("message", protocol.RawMessage(encoded[:len(encoded)-1])); err != nil {
			return err
		}
		if err := actor.Log("info", "received message", tags); err != nil {
			return err
		}

		if message.Data == nil {
			continue
		}

		if count == spawnAt {
			data, err := protocol.EncodeLine(message.Data)
			if err != nil {
				return err
			}
			if err := actor.Spawn(protocol.NewProps(echoPath, string(data[:len(data)-1]))); err != nil {
				return err
			}
		}

		if count >= maxCount {
			return nil
		}

		if err := actor.Send(message.Data.To, Status{Status: "ok", Count: count}); err != nil {
			return err
		}
	}
	return nil
}
