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
	"strings"
)

// ActorIDPlaceholder is replaced by the new actor's id in every spawn argument
const ActorIDPlaceholder = "{ACTOR_ID}"

// Props describes how to spawn an actor: the executable to run and its arguments.
type Props struct {
	Executable string   `json:"executable"`
	Args       []string `json:"args"`
}

type propsJSON struct {
	Executable *string  `json:"executable"`
	Args       []string `json:"args"`
}

// NewProps creates an instance of Props
func NewProps(executable string, args ...string) Props {
	return Props{Executable: executable, Args: args}
}

// ExpandArgs returns a copy of the arguments with every ActorIDPlaceholder
// occurrence replaced by the given id.
func (p Props) ExpandArgs(id ActorID) []string {
	out := make([]string, len(p.Args))
	value := id.String()
	for i, arg := range p.Args {
		out[i] = strings.ReplaceAll(arg, ActorIDPlaceholder, value)
	}
	return out
}

// Clone returns a deep copy of the Props
func (p Props) Clone() Props {
	args := make([]string, len(p.Args))
	copy(args, p.Args)
	return Props{Executable: p.Executable, Args: args}
}

// MarshalJSON implements json.Marshaler. A nil argument list is encoded as an empty array.
func (p Props) MarshalJSON() ([]byte, error) {
	args := p.Args
	if args == nil {
		args = []string{}
	}
	executable := p.Executable
	return json.Marshal(propsJSON{Executable: &executable, Args: args})
}

// UnmarshalJSON implements json.Unmarshaler. The executable is required and
// the arguments default to an empty list.
func (p *Props) UnmarshalJSON(data []byte) error {
	var wire propsJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Executable == nil {
		return errors.New("props: missing field executable")
	}
	args := wire.Args
	if args == nil {
		args = []string{}
	}
	*p = Props{Executable: *wire.Executable, Args: args}
	return nil
}
