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

package protocol

import (
	"errors"
)

// SpawnResult is the outcome of a spawn request: either the id of the new
// actor or the reason the spawn failed.
type SpawnResult struct {
	id     ActorID
	reason string
	ok     bool
}

type spawnResultJSON struct {
	Ok  *ActorID `json:"Ok,omitempty"`
	Err *string  `json:"Err,omitempty"`
}

// SpawnOk creates a successful SpawnResult
func SpawnOk(id ActorID) SpawnResult {
	return SpawnResult{id: id, ok: true}
}

// SpawnErr creates a failed SpawnResult
func SpawnErr(reason string) SpawnResult {
	return SpawnResult{reason: reason}
}

// IsOk reports whether the spawn succeeded
func (r SpawnResult) IsOk() bool {
	return r.ok
}

// ID returns the spawned actor id. The boolean is false when the spawn failed.
func (r SpawnResult) ID() (ActorID, bool) {
	return r.id, r.ok
}

// Reason returns the failure reason. It is empty when the spawn succeeded.
func (r SpawnResult) Reason() string {
	return r.reason
}

// MarshalJSON implements json.Marshaler
func (r SpawnResult) MarshalJSON() ([]byte, error) {
	if r.ok {
		id := r.id
		return json.Marshal(spawnResultJSON{Ok: &id})
	}
	reason := r.reason
	return json.Marshal(spawnResultJSON{Err: &reason})
}

// UnmarshalJSON implements json.Unmarshaler
func (r *SpawnResult) UnmarshalJSON(data []byte) error {
	var wire spawnResultJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch {
	case wire.Ok != nil && wire.Err == nil:
		*r = SpawnOk(*wire.Ok)
	case wire.Err != nil && wire.Ok == nil:
		*r = SpawnErr(*wire.Err)
	default:
		return errors.New("spawn result: expected exactly one of Ok or Err")
	}
	return nil
}

// Spawned acknowledges a spawn request to the actor that issued it.
type Spawned struct {
	Result SpawnResult `json:"id"`
	Props  Props       `json:"props"`
}

// Message is the envelope written to an actor's standard input.
// Exactly one of Data or Spawned is set.
type Message struct {
	Data    *Data
	Spawned *Spawned
}

type messageJSON struct {
	Data    *Data    `json:"Data,omitempty"`
	Spawned *Spawned `json:"Spawned,omitempty"`
}

// NewDataMessage wraps a Data envelope into a Message
func NewDataMessage(data *Data) *Message {
	return &Message{Data: data}
}

// NewSpawnedMessage creates the acknowledgement of a spawn request
func NewSpawnedMessage(result SpawnResult, props Props) *Message {
	return &Message{Spawned: &Spawned{Result: result, Props: props}}
}

// MarshalJSON implements json.Marshaler
func (m Message) MarshalJSON() ([]byte, error) {
	if (m.Data == nil) == (m.Spawned == nil) {
		return nil, errors.New("message: expected exactly one of Data or Spawned")
	}
	return json.Marshal(messageJSON{Data: m.Data, Spawned: m.Spawned})
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Message) UnmarshalJSON(data []byte) error {
	var wire messageJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if (wire.Data == nil) == (wire.Spawned == nil) {
		return errors.New("message: expected exactly one of Data or Spawned")
	}
	*m = Message{Data: wire.Data, Spawned: wire.Spawned}
	return nil
}
