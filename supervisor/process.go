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
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tochemey/uaf/log"
	"github.com/tochemey/uaf/protocol"
)

// process is a running actor and the duties attached to its standard streams:
// the stdin writer, the stdout and stderr readers and the reaper.
type process struct {
	supervisor *Supervisor
	spawner    *spawner

	id     protocol.ActorID
	parent *protocol.ActorID
	props  protocol.Props

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser

	mailbox Mailbox
	logger  log.Logger

	writerDone chan struct{}
	done       chan struct{}
}

func newProcess(s *Supervisor, id protocol.ActorID, parent *protocol.ActorID, props protocol.Props, pipes *stdio) *process {
	return &process{
		supervisor: s,
		spawner:    s.spawner,
		id:         id,
		parent:     parent,
		props:      props,
		cmd:        pipes.cmd,
		stdin:      pipes.stdin,
		stdout:     pipes.stdout,
		stderr:     pipes.stderr,
		mailbox:    s.newMailbox(),
		logger:     s.logger.With("actor", id.String()),
		writerDone: make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (p *process) pid() int {
	return p.cmd.Process.Pid
}

func (p *process) startWriter() {
	go p.writeStdin()
}

// startReaders starts both readers and the reaper. The process is reaped only
// once both readers have returned.
func (p *process) startReaders() {
	readers := new(errgroup.Group)
	readers.Go(p.readStdout)
	readers.Go(p.readStderr)
	go p.reap(readers)
}

// kill kills the actor process group
func (p *process) kill() {
	p.mailbox.Dispose()
	if p.cmd.Process == nil {
		return
	}

	if err := syscall.Kill(-p.cmd.Process.Pid, syscall.SIGKILL); err != nil {
		if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			p.logger.Warnf("failed to kill actor: %v", err)
		}
	}
}

// writeStdin drains the mailbox into the actor standard input, one flushed line per message
func (p *process) writeStdin() {
	defer close(p.writerDone)
	defer func() { _ = p.stdin.Close() }()

	writer := bufio.NewWriter(p.stdin)
	for {
		message, ok := p.mailbox.Dequeue()
		if !ok {
			return
		}

		line, err := protocol.EncodeMessage(message)
		if err != nil {
			p.logger.Errorf("failed to encode message: %v", err)
			continue
		}

		if _, err = writer.Write(line); err == nil {
			err = writer.Flush()
		}

		if err != nil {
			p.logger.Warnf("stdin writer stopped: %v", err)
			p.mailbox.Dispose()
			return
		}
	}
}

// readStdout routes the data messages and forwards the spawn requests written by the actor.
// At end of stream the actor is no longer routable.
func (p *process) readStdout() error {
	defer func() {
		p.supervisor.registry.Remove(p.id)
		p.mailbox.Dispose()
	}()
	return readLines(p.stdout, p.handleStdoutLine)
}

func (p *process) handleStdoutLine(line []byte) {
	outbound, err := protocol.DecodeOutbound(line)
	if err != nil {
		p.logger.Warnf("dropping unrecognized line: %v", err)
		return
	}

	switch {
	case outbound.Data != nil:
		p.supervisor.route(p.id, outbound.Data)
	case outbound.Spawn != nil:
		request := &spawnRequest{requester: p.id, props: *outbound.Spawn}
		if !p.spawner.enqueue(request) {
			p.logger.Warnf("dropping spawn request (executable=%s): supervisor is stopping", outbound.Spawn.Executable)
		}
	}
}

// readStderr renders the actor diagnostics through the supervisor logger
func (p *process) readStderr() error {
	return readLines(p.stderr, p.handleStderrLine)
}

func (p *process) handleStderrLine(line []byte) {
	logMessage, err := protocol.DecodeLogMessage(line)
	if err != nil {
		raw := strings.TrimRight(string(line), "\r\n")
		p.logger.Info(raw)
		p.supervisor.publish(&ActorLog{ID: p.id, Raw: raw})
		return
	}

	logActorMessage(p.logger, logMessage)
	p.supervisor.publish(&ActorLog{ID: p.id, Log: logMessage})
}

// reap waits for the readers, then for the process, and releases the actor resources
func (p *process) reap(readers *errgroup.Group) {
	s := p.supervisor
	defer s.reapers.Done()

	if err := readers.Wait(); err != nil {
		p.logger.Warnf("failed to read actor streams: %v", err)
	}

	waitErr := p.cmd.Wait()
	<-p.writerDone

	exitCode := -1
	if p.cmd.ProcessState != nil {
		exitCode = p.cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		waitErr = nil
	}

	s.processes.Delete(p.id)
	s.registry.Remove(p.id)
	p.mailbox.Dispose()

	if waitErr != nil {
		p.logger.Warnf("actor terminated with error: %v", waitErr)
	} else {
		p.logger.Infof("actor terminated (exit code=%d)", exitCode)
	}

	s.publish(&ActorTerminated{
		ID:           p.id,
		ExitCode:     exitCode,
		Err:          waitErr,
		TerminatedAt: time.Now().UTC(),
	})
	close(p.done)
}

// readLines calls handle for every non blank line until end of stream.
// Lines have no length limit.
func readLines(r io.Reader, handle func(line []byte)) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			handle(line)
		}

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return err
		}
	}
}

// actorLogLevel maps the level written by an actor to a supervisor log level.
// Fatal and panic levels are downgraded to error since they would stop the supervisor.
// Unknown levels map to info.
func actorLogLevel(level string) log.Level {
	parsed, ok := log.ParseLevel(level)
	if !ok {
		return log.InfoLevel
	}

	switch parsed {
	case log.FatalLevel, log.PanicLevel:
		return log.ErrorLevel
	default:
		return parsed
	}
}

// logActorMessage logs the message with the actor level and tags as fields, in order
func logActorMessage(logger log.Logger, message *protocol.LogMessage) {
	keyValues := make([]any, 0, 2+2*len(message.Tags))
	keyValues = append(keyValues, "actor_level", message.Level)
	for _, tag := range message.Tags {
		keyValues = append(keyValues, tag.Key, tag.Decoded())
	}

	logger = logger.With(keyValues...)
	switch actorLogLevel(message.Level) {
	case log.DebugLevel:
		logger.Debug(message.Message)
	case log.WarningLevel:
		logger.Warn(message.Message)
	case log.ErrorLevel:
		logger.Error(message.Message)
	default:
		logger.Info(message.Message)
	}
}
