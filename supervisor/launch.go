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
	"errors"
	"io"
	"os/exec"
	"syscall"
	"time"

	"github.com/flowchartsman/retry"
	"golang.org/x/sys/unix"

	gerrors "github.com/tochemey/uaf/errors"
	"github.com/tochemey/uaf/internal/validation"
	"github.com/tochemey/uaf/protocol"
)

// launch validates the props, starts the actor process and makes it routable.
// parent is the actor that requested the spawn, nil for the root actor and
// external spawns. The returned process is running; waiting for its
// termination is up to the caller.
func (s *Supervisor) launch(ctx context.Context, props protocol.Props, parent *protocol.ActorID) (*process, error) {
	s.lifecycle.RLock()
	defer s.lifecycle.RUnlock()

	if !s.started.Load() {
		return nil, gerrors.ErrSupervisorNotStarted
	}

	props = props.Clone()
	if err := validation.New(validation.FailFast()).
		AddValidator(validation.NewRequiredValidator(props.Executable, gerrors.ErrEmptyExecutable)).
		AddValidator(validation.NewFileValidator(props.Executable)).
		AddValidator(validation.NewExecutableValidator(props.Executable)).
		Validate(); err != nil {
		s.spawnFailed(parent, props, err)
		return nil, err
	}

	id := s.newActorID()
	args := props.ExpandArgs(id)

	// the identity message is always the first message an actor receives
	identity, err := protocol.NewData(id, map[string]protocol.ActorID{"id": id})
	if err != nil {
		return nil, err
	}

	var pipes *stdio
	retrier := retry.NewRetrier(startMaxRetries, startInitialDelay, startMaxDelay)
	if err := retrier.RunContext(ctx, func(context.Context) error {
		var err error
		pipes, err = startProcess(props.Executable, args)
		if err != nil && !isTransient(err) {
			return retry.Stop(err)
		}
		return err
	}); err != nil {
		spawnErr := gerrors.NewSpawnError(err)
		s.spawnFailed(parent, props, spawnErr)
		return nil, spawnErr
	}

	proc := newProcess(s, id, parent, props, pipes)
	_ = proc.mailbox.Enqueue(protocol.NewDataMessage(identity))

	s.processes.Set(id, proc)
	s.reapers.Add(1)
	proc.startWriter()
	s.registry.Register(id, proc.mailbox)

	s.spawnsCounter.Inc()
	s.logger.Infof("actor %s spawned (executable=%s, pid=%d)", id, props.Executable, proc.pid())
	s.publish(&ActorSpawned{
		ID:        id,
		Parent:    parent,
		Props:     props,
		PID:       proc.pid(),
		SpawnedAt: time.Now().UTC(),
	})

	proc.startReaders()
	return proc, nil
}

// stdio holds a started command together with its standard streams
type stdio struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser
}

// startProcess starts the executable with three dedicated pipes. The actor
// runs in its own process group so that it can be killed with its descendants.
func startProcess(executable string, args []string) (*stdio, error) {
	cmd := &exec.Cmd{
		Path:        executable,
		Args:        append([]string{executable}, args...),
		SysProcAttr: &syscall.SysProcAttr{Setpgid: true},
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		_ = stdin.Close()
		return nil, err
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		_ = stdin.Close()
		_ = stdout.Close()
		return nil, err
	}

	// Start releases the pipes when it fails
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return &stdio{
		cmd:    cmd,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// isTransient reports whether starting a process may succeed on a later attempt
func isTransient(err error) bool {
	return errors.Is(err, unix.ETXTBSY) || errors.Is(err, unix.EAGAIN)
}

func (s *Supervisor) spawnFailed(parent *protocol.ActorID, props protocol.Props, err error) {
	s.spawnFailuresCounter.Inc()
	s.logger.Warnf("failed to spawn actor (executable=%s): %v", props.Executable, err)
	s.publish(&SpawnFailed{
		Requester: parent,
		Props:     props,
		Err:       err,
	})
}
