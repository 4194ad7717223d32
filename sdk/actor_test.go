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

package sdk

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/uaf/errors"
	"github.com/tochemey/uaf/protocol"
)

func identityLine(t *testing.T, id protocol.ActorID) string {
	t.Helper()
	data, err := protocol.NewData(id, map[string]protocol.ActorID{"id": id})
	require.NoError(t, err)
	line, err := protocol.EncodeMessage(protocol.NewDataMessage(data))
	require.NoError(t, err)
	return string(line)
}

func TestActor(t *testing.T) {
	t.Run("With identity message", func(t *testing.T) {
		id := protocol.NewActorID()
		actor := New(WithInput(strings.NewReader(identityLine(t, id))))

		_, ok := actor.ID()
		require.False(t, ok)

		actual, err := actor.Identify()
		require.NoError(t, err)
		assert.Equal(t, id, actual)

		_, err = actor.Receive()
		assert.ErrorIs(t, err, io.EOF)
	})
	t.Run("With a first message that is not the identity", func(t *testing.T) {
		message := protocol.NewSpawnedMessage(protocol.SpawnErr("boom"), protocol.NewProps("/x"))
		line, err := protocol.EncodeMessage(message)
		require.NoError(t, err)

		actor := New(WithInput(bytes.NewReader(line)))
		_, err = actor.Identify()
		assert.ErrorIs(t, err, gerrors.ErrIdentityNotReceived)
	})
	t.Run("With blank lines and a forged identity", func(t *testing.T) {
		id := protocol.NewActorID()
		other := protocol.NewActorID()
		forged, err := protocol.NewData(id, map[string]protocol.ActorID{"id": other})
		require.NoError(t, err)
		line, err := protocol.EncodeMessage(protocol.NewDataMessage(forged))
		require.NoError(t, err)

		actor := New(WithInput(strings.NewReader("\n  \n" + string(line) + identityLine(t, id))))
		message, err := actor.Receive()
		require.NoError(t, err)
		require.NotNil(t, message.Data)
		_, ok := actor.ID()
		assert.False(t, ok)

		_, err = actor.Receive()
		require.NoError(t, err)
		actual, ok := actor.ID()
		require.True(t, ok)
		assert.Equal(t, id, actual)
	})
	t.Run("With invalid input", func(t *testing.T) {
		actor := New(WithInput(strings.NewReader("garbage\n")))
		_, err := actor.Receive()
		assert.ErrorIs(t, err, gerrors.ErrUnknownMessage)
	})
	t.Run("With outbound lines", func(t *testing.T) {
		stdout := new(bytes.Buffer)
		stderr := new(bytes.Buffer)
		actor := New(WithInput(strings.NewReader("")), WithOutput(stdout), WithDiagnostics(stderr))

		to := protocol.NewActorID()
		require.NoError(t, actor.Send(to, map[string]string{"hello": "world"}))
		require.NoError(t, actor.Spawn(protocol.NewProps("/usr/bin/echo", "hi")))

		lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
		require.Len(t, lines, 2)

		outbound, err := protocol.DecodeOutbound([]byte(lines[0]))
		require.NoError(t, err)
		require.NotNil(t, outbound.Data)
		assert.Equal(t, to, outbound.Data.To)

		outbound, err = protocol.DecodeOutbound([]byte(lines[1]))
		require.NoError(t, err)
		require.NotNil(t, outbound.Spawn)
		assert.Equal(t, []string{"hi"}, outbound.Spawn.Args)

		tags := protocol.Tags{}
		require.NoError(t, tags.Set("count", 1))
		require.NoError(t, actor.Log("info", "hello", tags))
		logMessage, err := protocol.DecodeLogMessage(stderr.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "hello", logMessage.Message)
		assert.Equal(t, "info", logMessage.Level)
		value, ok := logMessage.Tags.Get("count")
		require.True(t, ok)
		assert.Equal(t, "1", string(value))
	})
}
