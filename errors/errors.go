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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAFile is returned when a spawn request references a path that does not exist
	// or that is not a regular file.
	ErrNotAFile = errors.New("not a file")

	// ErrNotExecutable is returned when a spawn request references a regular file that the
	// supervisor is not allowed to execute.
	ErrNotExecutable = errors.New("not an executable file")

	// ErrEmptyExecutable is returned when a spawn request does not carry an executable path.
	ErrEmptyExecutable = errors.New("executable is required")

	// ErrActorNotFound indicates that the destination actor is not registered.
	ErrActorNotFound = errors.New("actor not found")

	// ErrUnknownMessage is returned when a line read from an actor matches none of the protocol shapes.
	ErrUnknownMessage = errors.New("unknown message type")

	// ErrInvalidLogMessage is returned when a diagnostic line is not a valid log message.
	ErrInvalidLogMessage = errors.New("invalid log message")

	// ErrMailboxFull is returned when a bounded mailbox has reached its capacity.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrMailboxDisposed is returned when operations are attempted on a disposed mailbox.
	ErrMailboxDisposed = errors.New("mailbox has been disposed")

	// ErrSupervisorNotStarted is returned when the supervisor is used before Start.
	ErrSupervisorNotStarted = errors.New("supervisor is not running")

	// ErrSupervisorAlreadyStarted is returned when Start is called twice.
	ErrSupervisorAlreadyStarted = errors.New("supervisor has already started")

	// ErrIdentityNotReceived is returned by an actor whose first message is not its identity message.
	ErrIdentityNotReceived = errors.New("identity message not received")

	// ErrInvalidSpawnInterval is returned when the spawn interval is not a positive duration.
	ErrInvalidSpawnInterval = errors.New("invalid spawn interval, must be greater than zero")

	// ErrInvalidMailboxCapacity is returned when a negative mailbox capacity is configured.
	ErrInvalidMailboxCapacity = errors.New("invalid mailbox capacity, must be zero (unbounded) or positive")
)

// NewErrNotAFile formats an ErrNotAFile with the given path.
func NewErrNotAFile(path string) error {
	return fmt.Errorf("%s is %w", path, ErrNotAFile)
}

// NewErrNotExecutable formats an ErrNotExecutable with the given path.
func NewErrNotExecutable(path string) error {
	return fmt.Errorf("%s is %w", path, ErrNotExecutable)
}

// NewErrActorNotFound formats an ErrActorNotFound with the given actor id.
func NewErrActorNotFound(actorID string) error {
	return fmt.Errorf("(actor=%s) %w", actorID, ErrActorNotFound)
}

// NewErrUnknownMessage wraps a decoding failure with ErrUnknownMessage.
func NewErrUnknownMessage(err error) error {
	return errors.Join(ErrUnknownMessage, err)
}

// SpawnError defines the error returned when the operating system
// refuses to create an actor process
type SpawnError struct {
	err error
}

// enforce compilation error
var _ error = (*SpawnError)(nil)

// NewSpawnError creates an instance of SpawnError
func NewSpawnError(err error) *SpawnError {
	return &SpawnError{err: err}
}

// Error implements the standard error interface
func (e SpawnError) Error() string {
	return fmt.Sprintf("spawn error: %s", e.err.Error())
}

// Unwrap returns the underlying error
func (e SpawnError) Unwrap() error {
	return e.err
}
