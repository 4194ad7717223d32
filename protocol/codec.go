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
	"errors"
	"fmt"
	"io"

	gerrors "github.com/tochemey/uaf/errors"
)

// Outbound is what an actor can write on its standard output: either a Data
// envelope to route or a spawn request.
type Outbound struct {
	Data  *Data
	Spawn *Props
}

// DecodeOutbound decodes one line written by an actor on its standard output.
//
// The discriminated forms {"Data":{...}} and {"Spawn":{...}} are tried first,
// then a bare Data, then a bare Props. A line matching none of them yields an
// error wrapping errors.ErrUnknownMessage.
func DecodeOutbound(line []byte) (*Outbound, error) {
	line = bytes.TrimSpace(line)

	var object map[string]RawMessage
	if err := json.Unmarshal(line, &object); err != nil {
		return nil, gerrors.NewErrUnknownMessage(err)
	}
	if object == nil {
		return nil, gerrors.NewErrUnknownMessage(errors.New("expected a JSON object"))
	}

	if len(object) == 1 {
		if raw, ok := object[dataTag]; ok {
			data := new(Data)
			if err := json.Unmarshal(raw, data); err != nil {
				return nil, gerrors.NewErrUnknownMessage(err)
			}
			return &Outbound{Data: data}, nil
		}
		if raw, ok := object[spawnTag]; ok {
			props := new(Props)
			if err := json.Unmarshal(raw, props); err != nil {
				return nil, gerrors.NewErrUnknownMessage(err)
			}
			return &Outbound{Spawn: props}, nil
		}
	}

	data := new(Data)
	dataErr := json.Unmarshal(line, data)
	if dataErr == nil {
		return &Outbound{Data: data}, nil
	}

	props := new(Props)
	propsErr := json.Unmarshal(line, props)
	if propsErr == nil {
		return &Outbound{Spawn: props}, nil
	}

	return nil, gerrors.NewErrUnknownMessage(errors.Join(dataErr, propsErr))
}

// DecodeMessage decodes one line read by an actor on its standard input
func DecodeMessage(line []byte) (*Message, error) {
	message := new(Message)
	if err := json.Unmarshal(bytes.TrimSpace(line), message); err != nil {
		return nil, gerrors.NewErrUnknownMessage(err)
	}
	return message, nil
}

// DecodeLogMessage decodes one line written by an actor on its standard error
func DecodeLogMessage(line []byte) (*LogMessage, error) {
	logMessage := new(LogMessage)
	if err := json.Unmarshal(bytes.TrimSpace(line), logMessage); err != nil {
		return nil, errors.Join(gerrors.ErrInvalidLogMessage, err)
	}
	return logMessage, nil
}

// EncodeLine encodes v as a single JSON line terminated by a newline.
func EncodeLine(v any) ([]byte, error) {
	bytea, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(bytea, '\n'), nil
}

// EncodeMessage encodes a Message as one line ready to be written on an actor's standard input
func EncodeMessage(message *Message) ([]byte, error) {
	return EncodeLine(message)
}

// compactJSON checks that value is exactly one JSON value and returns it
// without insignificant whitespace, so that it can be embedded in a line.
func compactJSON(value RawMessage) (RawMessage, error) {
	iter := json.BorrowIterator(value)
	defer json.ReturnIterator(iter)

	iter.Skip()
	if iter.Error == nil {
		// consumes the trailing whitespace up to the end of input
		iter.WhatIsNext()
	}
	if !errors.Is(iter.Error, io.EOF) {
		if iter.Error == nil {
			return nil, errors.New("unexpected data after the JSON value")
		}
		return nil, iter.Error
	}

	out := make(RawMessage, 0, len(value))
	inString, escaped := false, false
	for _, c := range value {
		switch {
		case inString:
			if c < ' ' {
				return nil, fmt.Errorf("invalid control character %#x in string", c)
			}
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		case c == ' ', c == '\t', c == '\n', c == '\r':
			continue
		case c == '"':
			inString = true
		}
		out = append(out, c)
	}
	return out, nil
}
