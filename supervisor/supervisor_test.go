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

package supervisor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/uaf/errors"
	"github.com/tochemey/uaf/log"
	"github.com/tochemey/uaf/protocol"
)

const (
	waitFor = 10 * time.Second
	tick    = 20 * time.Millisecond
)

func TestNew(t *testing.T) {
	t.Run("With default options", func(t *testing.T) {
		sup, err := New()
		require.NoError(t, err)
		require.NotNil(t, sup)
		assert.Equal(t, DefaultSpawnInterval, sup.spawnInterval)
		assert.Equal(t, DefaultShutdownTimeout, sup.shutdownTimeout)
		assert.Equal(t, DefaultMailboxCapacity, sup.mailboxCapacity)
		assert.False(t, sup.Running())
		assert.Zero(t, sup.NumActors())
		assert.Zero(t, sup.PendingSpawns())
	})
	t.Run("With invalid spawn interval", func(t *testing.T) {
		sup, err := New(WithSpawnInterval(0))
		require.ErrorIs(t, err, gerrors.ErrInvalidSpawnInterval)
		require.Nil(t, sup)
	})
	t.Run("With invalid mailbox capacity", func(t *testing.T) {
		sup, err := New(WithMailboxCapacity(-1))
		require.ErrorIs(t, err, gerrors.ErrInvalidMailboxCapacity)
		require.Nil(t, sup)
	})
	t.Run("With invalid shutdown timeout", func(t *testing.T) {
		sup, err := New(WithShutdownTimeout(-time.Second))
		require.Error(t, err)
		require.Nil(t, sup)
	})
}

func TestLifecycle(t *testing.T) {
	t.Run("Operations require a started supervisor", func(t *testing.T) {
		ctx := context.Background()
		sup, err := New(WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		require.ErrorIs(t, sup.Stop(ctx), gerrors.ErrSupervisorNotStarted)
		require.ErrorIs(t, sup.Run(ctx, actorProps(t, "sink")), gerrors.ErrSupervisorNotStarted)

		_, err = sup.Spawn(ctx, actorProps(t, "sink"))
		require.ErrorIs(t, err, gerrors.ErrSupervisorNotStarted)

		data, err := protocol.NewData(protocol.NewActorID(), "hello")
		require.NoError(t, err)
		require.ErrorIs(t, sup.Send(ctx, data), gerrors.ErrSupervisorNotStarted)
	})
	t.Run("Start twice fails", func(t *testing.T) {
		sup := newTestSupervisor(t)
		require.True(t, sup.Running())
		require.ErrorIs(t, sup.Start(context.Background()), gerrors.ErrSupervisorAlreadyStarted)
	})
	t.Run("Restart after stop", func(t *testing.T) {
		ctx := context.Background()
		sup, err := New(WithLogger(log.DiscardLogger), WithSpawnInterval(10*time.Millisecond))
		require.NoError(t, err)

		require.NoError(t, sup.Start(ctx))
		require.NoError(t, sup.Stop(ctx))
		require.False(t, sup.Running())
		require.ErrorIs(t, sup.Stop(ctx), gerrors.ErrSupervisorNotStarted)

		require.NoError(t, sup.Start(ctx))
		require.True(t, sup.Running())
		require.NoError(t, sup.Stop(ctx))
	})
	t.Run("Stop kills the running actors", func(t *testing.T) {
		ctx := context.Background()
		sup, err := New(WithLogger(log.DiscardLogger), WithSpawnInterval(10*time.Millisecond))
		require.NoError(t, err)
		require.NoError(t, sup.Start(ctx))
		recorder := newEventRecorder(t, sup)

		var ids []protocol.ActorID
		for range 3 {
			id, err := sup.Spawn(ctx, actorProps(t, "sink"))
			require.NoError(t, err)
			ids = append(ids, id)
		}
		require.Equal(t, 3, sup.NumActors())
		require.ElementsMatch(t, ids, sup.Actors())

		require.NoError(t, sup.Stop(ctx))
		require.Zero(t, sup.NumActors())
		for _, id := range ids {
			require.NotNil(t, recorder.terminated(id))
		}
	})
}

func TestSpawnValidation(t *testing.T) {
	ctx := context.Background()
	sup := newTestSupervisor(t)
	recorder := newEventRecorder(t, sup)

	t.Run("With empty executable", func(t *testing.T) {
		_, err := sup.Spawn(ctx, protocol.NewProps(""))
		require.ErrorIs(t, err, gerrors.ErrEmptyExecutable)
	})
	t.Run("With missing executable", func(t *testing.T) {
		_, err := sup.Spawn(ctx, protocol.NewProps(filepath.Join(t.TempDir(), "missing")))
		require.ErrorIs(t, err, gerrors.ErrNotAFile)
	})
	t.Run("With a directory", func(t *testing.T) {
		_, err := sup.Spawn(ctx, protocol.NewProps(t.TempDir()))
		require.ErrorIs(t, err, gerrors.ErrNotAFile)
	})
	t.Run("With a file that is not executable", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root can execute any file")
		}
		path := filepath.Join(t.TempDir(), "script")
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o600))
		_, err := sup.Spawn(ctx, protocol.NewProps(path))
		require.ErrorIs(t, err, gerrors.ErrNotExecutable)
	})

	require.Zero(t, sup.NumActors())
	require.NotEmpty(t, recorder.spawnFailures())
	for _, failed := range recorder.spawnFailures() {
		require.Nil(t, failed.Requester)
		require.Error(t, failed.Err)
	}
}

func TestSpawnRequest(t *testing.T) {
	t.Run("Acknowledges a successful spawn", func(t *testing.T) {
		ctx := context.Background()
		sup := newTestSupervisor(t)
		recorder := newEventRecorder(t, sup)

		executable := testExecutable(t)
		parent, err := sup.Spawn(ctx, actorProps(t, "spawn", executable, actorSentinel, "sink"))
		require.NoError(t, err)

		var ack *protocol.LogMessage
		require.Eventually(t, func() bool {
			logs := recorder.logs(parent, "spawned")
			if len(logs) == 0 {
				return false
			}
			ack = logs[0]
			return true
		}, waitFor, tick)

		require.Equal(t, true, tagValue(t, ack, "ok"))
		require.Equal(t, executable, tagString(t, ack, "executable"))

		child, err := protocol.ParseActorID(tagString(t, ack, "id"))
		require.NoError(t, err)
		require.NotEqual(t, parent, child)

		spawned := recorder.spawned(child)
		require.NotNil(t, spawned)
		require.NotNil(t, spawned.Parent)
		require.Equal(t, parent, *spawned.Parent)
		require.Positive(t, spawned.PID)

		// the sink outlives its parent
		require.Eventually(t, func() bool {
			return recorder.terminated(parent) != nil
		}, waitFor, tick)
		require.Equal(t, []protocol.ActorID{child}, sup.Actors())
		require.Zero(t, sup.PendingSpawns())
	})
	t.Run("Acknowledges a failed spawn", func(t *testing.T) {
		ctx := context.Background()
		sup := newTestSupervisor(t)
		recorder := newEventRecorder(t, sup)

		missing := filepath.Join(t.TempDir(), "missing")
		parent, err := sup.Spawn(ctx, actorProps(t, "spawn", missing))
		require.NoError(t, err)

		var ack *protocol.LogMessage
		require.Eventually(t, func() bool {
			logs := recorder.logs(parent, "spawned")
			if len(logs) == 0 {
				return false
			}
			ack = logs[0]
			return true
		}, waitFor, tick)

		require.Equal(t, false, tagValue(t, ack, "ok"))
		require.Contains(t, tagString(t, ack, "reason"), "is not a file")
		require.Equal(t, missing, tagString(t, ack, "executable"))

		failures := recorder.spawnFailures()
		require.Len(t, failures, 1)
		require.NotNil(t, failures[0].Requester)
		require.Equal(t, parent, *failures[0].Requester)
		require.ErrorIs(t, failures[0].Err, gerrors.ErrNotAFile)

		require.Eventually(t, func() bool {
			return sup.NumActors() == 0
		}, waitFor, tick)
	})
}

func TestActorIDSubstitution(t *testing.T) {
	ctx := context.Background()
	sup := newTestSupervisor(t)
	recorder := newEventRecorder(t, sup)

	id, err := sup.Spawn(ctx, actorProps(t, "args", "--id={ACTOR_ID}", "x{ACTOR_ID}y{ACTOR_ID}", "plain"))
	require.NoError(t, err)

	var logMessage *protocol.LogMessage
	require.Eventually(t, func() bool {
		logs := recorder.logs(id, "args")
		if len(logs) == 0 {
			return false
		}
		logMessage = logs[0]
		return true
	}, waitFor, tick)

	require.Equal(t, id.String(), tagString(t, logMessage, "id"))
	require.Equal(t, []any{
		"--id=" + id.String(),
		"x" + id.String() + "y" + id.String(),
		"plain",
	}, tagValue(t, logMessage, "args"))
}

func TestRouting(t *testing.T) {
	t.Run("Delivers messages in order exactly once", func(t *testing.T) {
		ctx := context.Background()
		sup := newTestSupervisor(t)
		recorder := newEventRecorder(t, sup)

		sink, err := sup.Spawn(ctx, actorProps(t, "sink"))
		require.NoError(t, err)
		sender, err := sup.Spawn(ctx, actorProps(t, "sender", sink.String(), "5"))
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			return recorder.terminated(sender) != nil && len(recorder.logs(sink, "data")) >= 5
		}, waitFor, tick)

		logs := recorder.logs(sink, "data")
		require.Len(t, logs, 5)
		for seq, logMessage := range logs {
			require.Equal(t, sender.String(), tagString(t, logMessage, "from"))
			require.Equal(t, map[string]any{"seq": float64(seq)}, tagValue(t, logMessage, "payload"))
		}
		require.Empty(t, recorder.deadletters())
	})
	t.Run("Delivers identical messages independently", func(t *testing.T) {
		ctx := context.Background()
		sup := newTestSupervisor(t)
		recorder := newEventRecorder(t, sup)

		sink, err := sup.Spawn(ctx, actorProps(t, "sink"))
		require.NoError(t, err)
		sender, err := sup.Spawn(ctx, actorProps(t, "twice", sink.String()))
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			return recorder.terminated(sender) != nil && len(recorder.logs(sink, "data")) >= 2
		}, waitFor, tick)

		logs := recorder.logs(sink, "data")
		require.Len(t, logs, 2)
		for _, logMessage := range logs {
			require.Equal(t, sender.String(), tagString(t, logMessage, "from"))
			require.Equal(t, map[string]any{"kind": "duplicate"}, tagValue(t, logMessage, "payload"))
		}
		require.Equal(t, logs[0].Tags, logs[1].Tags)
		require.Empty(t, recorder.deadletters())
	})
	t.Run("Overwrites a forged origin", func(t *testing.T) {
		ctx := context.Background()
		sup := newTestSupervisor(t)
		recorder := newEventRecorder(t, sup)

		sink, err := sup.Spawn(ctx, actorProps(t, "sink"))
		require.NoError(t, err)
		sender, err := sup.Spawn(ctx, actorProps(t, "sender", sink.String(), "2", "forge"))
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			return len(recorder.logs(sink, "data")) == 2
		}, waitFor, tick)

		for _, logMessage := range recorder.logs(sink, "data") {
			require.Equal(t, sender.String(), tagString(t, logMessage, "from"))
		}
	})
	t.Run("Deadletters messages to unknown actors", func(t *testing.T) {
		ctx := context.Background()
		sup := newTestSupervisor(t)
		recorder := newEventRecorder(t, sup)

		unknown := protocol.NewActorID()
		sender, err := sup.Spawn(ctx, actorProps(t, "sender", unknown.String(), "3"))
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			return len(recorder.deadletters()) == 3
		}, waitFor, tick)

		for _, deadletter := range recorder.deadletters() {
			require.Equal(t, unknown, deadletter.To)
			require.ErrorIs(t, deadletter.Reason, gerrors.ErrActorNotFound)
			require.NotNil(t, deadletter.Message.Data)
			from, ok := deadletter.Message.Data.Sender()
			require.True(t, ok)
			require.Equal(t, sender, from)
		}

		// routing keeps working for other actors
		sink, err := sup.Spawn(ctx, actorProps(t, "sink"))
		require.NoError(t, err)
		data, err := protocol.NewData(sink, "still routing")
		require.NoError(t, err)
		require.NoError(t, sup.Send(ctx, data))
		require.Eventually(t, func() bool {
			return len(recorder.logs(sink, "data")) == 1
		}, waitFor, tick)
	})
	t.Run("Delivers external messages as is", func(t *testing.T) {
		ctx := context.Background()
		sup := newTestSupervisor(t)
		recorder := newEventRecorder(t, sup)

		sink, err := sup.Spawn(ctx, actorProps(t, "sink"))
		require.NoError(t, err)

		data, err := protocol.NewData(sink, map[string]string{"hello": "world"})
		require.NoError(t, err)
		require.NoError(t, sup.Send(ctx, data))

		require.Eventually(t, func() bool {
			return len(recorder.logs(sink, "data")) == 1
		}, waitFor, tick)

		logMessage := recorder.logs(sink, "data")[0]
		require.Nil(t, tagValue(t, logMessage, "from"))
		require.Equal(t, map[string]any{"hello": "world"}, tagValue(t, logMessage, "payload"))
	})
	t.Run("Delivers a multi-line payload on one line", func(t *testing.T) {
		ctx := context.Background()
		sup := newTestSupervisor(t)
		recorder := newEventRecorder(t, sup)

		sink, err := sup.Spawn(ctx, actorProps(t, "sink"))
		require.NoError(t, err)

		pretty := &protocol.Data{To: sink, Payload: protocol.RawMessage("{\n  \"first\": 1,\n  \"second\": [\n    2\n  ]\n}")}
		require.NoError(t, sup.Send(ctx, pretty))
		next, err := protocol.NewData(sink, "next")
		require.NoError(t, err)
		require.NoError(t, sup.Send(ctx, next))

		require.Eventually(t, func() bool {
			return len(recorder.logs(sink, "data")) == 2
		}, waitFor, tick)

		logs := recorder.logs(sink, "data")
		require.Equal(t, map[string]any{"first": float64(1), "second": []any{float64(2)}}, tagValue(t, logs[0], "payload"))
		require.Equal(t, "next", tagValue(t, logs[1], "payload"))
		require.Empty(t, recorder.rawLogs(sink))
	})
	t.Run("Send rejects an invalid payload", func(t *testing.T) {
		ctx := context.Background()
		sup := newTestSupervisor(t)
		recorder := newEventRecorder(t, sup)

		sink, err := sup.Spawn(ctx, actorProps(t, "sink"))
		require.NoError(t, err)

		require.Error(t, sup.Send(ctx, &protocol.Data{To: sink, Payload: protocol.RawMessage(`{"broken":`)}))
		require.Empty(t, recorder.deadletters())
	})
	t.Run("Send to an unknown actor fails", func(t *testing.T) {
		ctx := context.Background()
		sup := newTestSupervisor(t)
		recorder := newEventRecorder(t, sup)

		data, err := protocol.NewData(protocol.NewActorID(), "lost")
		require.NoError(t, err)
		require.ErrorIs(t, sup.Send(ctx, data), gerrors.ErrActorNotFound)
		require.Error(t, sup.Send(ctx, nil))
		require.Len(t, recorder.deadletters(), 1)
	})
}

func TestNonProtocolLines(t *testing.T) {
	ctx := context.Background()
	sup := newTestSupervisor(t)
	recorder := newEventRecorder(t, sup)

	id, err := sup.Spawn(ctx, actorProps(t, "raw"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(recorder.logs(id, "still alive")) == 1
	}, waitFor, tick)

	require.Equal(t, []string{"plain diagnostic"}, recorder.rawLogs(id))
	require.Equal(t, "warning", recorder.logs(id, "still alive")[0].Level)
	require.Empty(t, recorder.deadletters())
	require.Empty(t, recorder.spawnFailures())
}

func TestRun(t *testing.T) {
	t.Run("Runs the root actor until it exits", func(t *testing.T) {
		ctx := context.Background()
		sup := newTestSupervisor(t)
		recorder := newEventRecorder(t, sup)

		require.NoError(t, sup.Run(ctx, actorProps(t, "counter", "10")))

		var root protocol.ActorID
		for _, event := range recorder.collect() {
			if spawned, ok := event.(*ActorSpawned); ok && spawned.Parent == nil {
				root = spawned.ID
				break
			}
		}
		require.False(t, root.IsNil())

		terminated := recorder.terminated(root)
		require.NotNil(t, terminated)
		require.Zero(t, terminated.ExitCode)
		require.NoError(t, terminated.Err)

		logs := recorder.logs(root, "received message")
		require.Len(t, logs, 10)
		for i, logMessage := range logs {
			require.Equal(t, float64(i+1), tagValue(t, logMessage, "count"))
		}

		// the first message is the identity message
		identity, err := protocol.DecodeMessage([]byte(tagRaw(t, logs[0], "message")))
		require.NoError(t, err)
		require.NotNil(t, identity.Data)
		require.Nil(t, identity.Data.From)
		require.Equal(t, root, identity.Data.To)
		var payload map[string]protocol.ActorID
		require.NoError(t, identity.Data.DecodePayload(&payload))
		require.Equal(t, root, payload["id"])

		require.Eventually(t, func() bool {
			return sup.PendingSpawns() == 0
		}, waitFor, tick)
	})
	t.Run("Returns when the context is done", func(t *testing.T) {
		sup := newTestSupervisor(t)
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		err := sup.Run(ctx, actorProps(t, "sink"))
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Equal(t, 1, sup.NumActors())
	})
	t.Run("Fails when the root actor cannot be launched", func(t *testing.T) {
		sup := newTestSupervisor(t)
		err := sup.Run(context.Background(), protocol.NewProps(filepath.Join(t.TempDir(), "missing")))
		require.ErrorIs(t, err, gerrors.ErrNotAFile)
	})
}

// tagRaw returns the raw JSON text of a tag
func tagRaw(t *testing.T, logMessage *protocol.LogMessage, key string) string {
	t.Helper()
	value, ok := logMessage.Tags.Get(key)
	require.True(t, ok, "missing tag %s", key)
	return string(value)
}
