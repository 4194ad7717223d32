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

// Package protocol defines the envelopes exchanged between the supervisor and
// its actors. Every envelope is one JSON value on one line.
//
// Supervisor to actor (stdin) carries an externally tagged Message:
//
//	{"Data":{"from":"<uuid>"|null,"to":"<uuid>","payload":<any>}}
//	{"Spawned":{"id":{"Ok":"<uuid>"}|{"Err":"<reason>"},"props":{"executable":"<path>","args":[]}}}
//
// Actor to supervisor (stdout) carries either a bare Data or a bare Props
// (spawn request). The tagged forms {"Data":{...}} and {"Spawn":{...}} are
// accepted as well and take precedence because they are unambiguous.
//
// Actor diagnostics (stderr) carry LogMessage values.
package protocol

import (
	jsoniter "github.com/json-iterator/go"
)

// json is the codec used for every envelope
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RawMessage is a raw encoded JSON value.
type RawMessage = jsoniter.RawMessage

var nullJSON = RawMessage("null")

const (
	dataTag    = "Data"
	spawnTag   = "Spawn"
	spawnedTag = "Spawned"
)
