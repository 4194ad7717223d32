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
	"fmt"
)

// Data is the payload envelope routed between actors.
// From is optional on the wire; the supervisor stamps it with the sender's id.
type Data struct {
	From    *ActorID
	To      ActorID
	Payload RawMessage
}

type dataJSON struct {
	From    *ActorID   `json:"from"`
	To      *ActorID   `json:"to"`
	Payload RawMessage `json:"payload"`
}

// NewData creates a Data envelope for the given destination, encoding the payload as JSON.
func NewData(to ActorID, payload any) (*Data, error) {
	bytea, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Data{To: to, Payload: bytea}, nil
}

// Sender returns the origin of the envelope and whether it is set
func (d *Data) Sender() (ActorID, bool) {
	if d.From == nil {
		return NilActorID, false
	}
	return *d.From, true
}

// WithSender returns a shallow copy of the envelope whose origin is set to the given id
func (d *Data) WithSender(from ActorID) *Data {
	return &Data{From: &from, To: d.To, Payload: d.Payload}
}

// DecodePayload decodes the payload into v
func (d *Data) DecodePayload(v any) error {
	return json.Unmarshal(d.payload(), v)
}

func (d *Data) payload() RawMessage {
	if len(d.Payload) == 0 {
		return nullJSON
	}
	return d.Payload
}

// MarshalJSON implements json.Marshaler
func (d Data) MarshalJSON() ([]byte, error) {
	payload, err := compactJSON(d.payload())
	if err != nil {
		return nil, fmt.Errorf("data: invalid payload: %w", err)
	}
	to := d.To
	return json.Marshal(dataJSON{From: d.From, To: &to, Payload: payload})
}

// UnmarshalJSON implements json.Unmarshaler. Both the destination and the
// payload are required; the payload may be null.
func (d *Data) UnmarshalJSON(data []byte) error {
	var fields map[string]RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	rawTo, ok := fields["to"]
	if !ok {
		return errors.New("data: missing field to")
	}
	payload, ok := fields["payload"]
	if !ok {
		return errors.New("data: missing field payload")
	}

	var to ActorID
	if err := json.Unmarshal(rawTo, &to); err != nil || len(rawTo) == 0 {
		return errors.New("data: field to must be an actor id")
	}

	var from *ActorID
	if rawFrom := fields["from"]; len(rawFrom) > 0 && string(rawFrom) != string(nullJSON) {
		from = new(ActorID)
		if err := json.Unmarshal(rawFrom, from); err != nil {
			return err
		}
	}

	if len(payload) == 0 {
		payload = nullJSON
	}

	*d = Data{From: from, To: to, Payload: payload}
	return nil
}
