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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	gerrors "github.com/tochemey/uaf/errors"
	"github.com/tochemey/uaf/protocol"
)

func newTestMessage(t *testing.T, payload any) *protocol.Message {
	t.Helper()
	data, err := protocol.NewData(protocol.NewActorID(), payload)
	require.NoError(t, err)
	return protocol.NewDataMessage(data)
}

func TestUnboundedMailbox(t *testing.T) {
	t.Run("Keeps messages in order", func(t *testing.T) {
		mailbox := NewUnboundedMailbox()
		for i := range 100 {
			require.NoError(t, mailbox.Enqueue(newTestMessage(t, i)))
		}
		require.Equal(t, 100, mailbox.Len())

		for i := range 100 {
			message, ok := mailbox.Dequeue()
			require.True(t, ok)
			var seq int
			require.NoError(t, message.Data.DecodePayload(&seq))
			require.Equal(t, i, seq)
		}
		require.Zero(t, mailbox.Len())
		mailbox.Dispose()
	})
	t.Run("Dispose releases a blocked reader", func(t *testing.T) {
		defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
		mailbox := NewUnboundedMailbox()

		var wg sync.WaitGroup
		wg.Add(1)
		var ok bool
		go func() {
			defer wg.Done()
			_, ok = mailbox.Dequeue()
		}()

		mailbox.Dispose()
		wg.Wait()
		assert.False(t, ok)
		require.ErrorIs(t, mailbox.Enqueue(newTestMessage(t, "late")), gerrors.ErrMailboxDisposed)
	})
}

func TestBoundedMailbox(t *testing.T) {
	t.Run("Rejects messages when full", func(t *testing.T) {
		mailbox := NewBoundedMailbox(2)
		require.Equal(t, 2, mailbox.Capacity())

		require.NoError(t, mailbox.Enqueue(newTestMessage(t, 1)))
		require.NoError(t, mailbox.Enqueue(newTestMessage(t, 2)))
		require.ErrorIs(t, mailbox.Enqueue(newTestMessage(t, 3)), gerrors.ErrMailboxFull)
		require.Equal(t, 2, mailbox.Len())

		message, ok := mailbox.Dequeue()
		require.True(t, ok)
		var seq int
		require.NoError(t, message.Data.DecodePayload(&seq))
		require.Equal(t, 1, seq)

		require.NoError(t, mailbox.Enqueue(newTestMessage(t, 4)))
		mailbox.Dispose()
	})
	t.Run("Rounds the capacity up to a power of two", func(t *testing.T) {
		mailbox := NewBoundedMailbox(3)
		require.Equal(t, 4, mailbox.Capacity())
		mailbox.Dispose()
	})
	t.Run("Dispose releases a blocked reader", func(t *testing.T) {
		defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
		mailbox := NewBoundedMailbox(4)

		var wg sync.WaitGroup
		wg.Add(1)
		var ok bool
		go func() {
			defer wg.Done()
			_, ok = mailbox.Dequeue()
		}()

		mailbox.Dispose()
		wg.Wait()
		assert.False(t, ok)
		require.ErrorIs(t, mailbox.Enqueue(newTestMessage(t, "late")), gerrors.ErrMailboxDisposed)
	})
}

func TestNewMailbox(t *testing.T) {
	sup, err := New()
	require.NoError(t, err)
	require.IsType(t, &UnboundedMailbox{}, sup.newMailbox())

	sup, err = New(WithMailboxCapacity(8))
	require.NoError(t, err)
	mailbox := sup.newMailbox()
	require.IsType(t, &BoundedMailbox{}, mailbox)
	require.Equal(t, 8, mailbox.(*BoundedMailbox).Capacity())
}
