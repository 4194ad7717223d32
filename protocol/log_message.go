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
	"io"

	jsoniter "github.com/json-iterator/go"
)

// LogMessage is a structured diagnostic line written by an actor on its standard error.
type LogMessage struct {
	Level   string
	Message string
	Tags    Tags
}

type logMessageJSON struct {
	Level   *string `json:"level"`
	Message *string `json:"message"`
	Tags    Tags    `json:"tags"`
}

// NewLogMessage creates an instance of LogMessage
func NewLogMessage(level, message string) *LogMessage {
	return &LogMessage{Level: level, Message: message, Tags: Tags{}}
}

// MarshalJSON implements json.Marshaler. Tags are always written, possibly empty.
func (l LogMessage) MarshalJSON() ([]byte, error) {
	level, message := l.Level, l.Message
	tags := l.Tags
	if tags == nil {
		tags = Tags{}
	}
	return json.Marshal(logMessageJSON{Level: &level, Message: &message, Tags: tags})
}

// UnmarshalJSON implements json.Unmarshaler. Level and message are required; tags are optional.
func (l *LogMessage) UnmarshalJSON(data []byte) error {
	var wire logMessageJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Level == nil {
		return errors.New("log message: missing field level")
	}
	if wire.Message == nil {
		return errors.New("log message: missing field message")
	}
	*l = LogMessage{Level: *wire.Level, Message: *wire.Message, Tags: wire.Tags}
	return nil
}

// Tag is a single structured key/value pair attached to a LogMessage.
type Tag struct {
	Key   string
	Value RawMessage
}

// Decoded returns the value decoded into a Go value.
// The raw text is returned when the value cannot be decoded.
func (t Tag) Decoded() any {
	var value any
	if err := json.Unmarshal(t.Value, &value); err != nil {
		return string(t.Value)
	}
	return value
}

// Tags is an ordered set of tags. Encoding and decoding keep insertion order.
type Tags []Tag

// Get returns the raw value of the given key
func (t Tags) Get(key string) (RawMessage, bool) {
	for _, tag := range t {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return nil, false
}

// Set encodes value and sets it under key. An existing key keeps its position.
func (t *Tags) Set(key string, value any) error {
	bytea, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("tag %q: %w", key, err)
	}
	t.put(key, bytea)
	return nil
}

func (t *Tags) put(key string, value RawMessage) {
	for i := range *t {
		if (*t)[i].Key == key {
			(*t)[i].Value = value
			return
		}
	}
	*t = append(*t, Tag{Key: key, Value: value})
}

// MarshalJSON implements json.Marshaler
func (t Tags) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, tag := range t {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(tag.Key)
		if len(tag.Value) == 0 {
			stream.WriteNil()
			continue
		}
		value, err := compactJSON(tag.Value)
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", tag.Key, err)
		}
		stream.WriteRaw(string(value))
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves the tags untouched.
func (t *Tags) UnmarshalJSON(data []byte) error {
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)

	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		return nil
	case jsoniter.ObjectValue:
	default:
		return errors.New("tags: expected a JSON object")
	}

	tags := make(Tags, 0)
	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		raw := it.SkipAndReturnBytes()
		value := make(RawMessage, len(raw))
		copy(value, raw)
		tags.put(key, value)
		return true
	})
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return fmt.Errorf("tags: %w", iter.Error)
	}

	*t = tags
	return nil
}
