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

import "time"

const (
	// DefaultSpawnInterval is the minimum delay between two spawn requests
	DefaultSpawnInterval = 500 * time.Millisecond

	// DefaultShutdownTimeout bounds the time Stop waits for the actor processes to be reaped
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMailboxCapacity selects the unbounded mailbox
	DefaultMailboxCapacity = 0
)

const (
	defaultRegistrySize = 64

	// attempts made to start a process that fails with a transient error
	startMaxRetries   = 5
	startInitialDelay = 10 * time.Millisecond
	startMaxDelay     = 200 * time.Millisecond

	eventsTopic = "topic.events.supervisor"
)
