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
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// ActorID uniquely identifies an actor for the lifetime of the supervisor.
// It is a random (version 4) UUID.
type ActorID uuid.UUID

// NilActorID is the zero ActorID
var NilActorID ActorID

// NewActorID generates a random ActorID
func NewActorID() ActorID {
	return ActorID(uuid.New())
}

// ParseActorID parses the canonical textual form of an ActorID
func ParseActorID(s string) (ActorID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NilActorID, fmt.Errorf("invalid actor id %q: %w", s, err)
	}
	return ActorID(id), nil
}

// String returns the canonical textual form of the id
func (id ActorID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the id is the zero value
func (id ActorID) IsNil() bool {
	return id == NilActorID
}

// Bytes returns the 16 raw bytes of the id
func (id ActorID) Bytes() []byte {
	return id[:]
}

// MarshalText implements encoding.TextMarshaler
func (id ActorID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *ActorID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = ActorID(u)
	return nil
}

// MarshalJSON implements json.Marshaler
func (id ActorID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves the id untouched.
func (id *ActorID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, nullJSON) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid actor id %s: expected a JSON string", data)
	}
	return id.UnmarshalText(data[1 : len(data)-1])
}
