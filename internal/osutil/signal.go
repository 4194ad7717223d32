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

package osutil

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/tochemey/uaf/log"
)

var (
	hookMu   sync.Mutex
	signalMu sync.Mutex
	exitHook ExitHook
)

// ExitHook is executed on receiving SIGTERM or SIGINT signal.
type ExitHook func() error

// RegisterExitHook registers the ExitHook in a thread-safe manner
func RegisterExitHook(hook ExitHook) {
	hookMu.Lock()
	exitHook = hook
	hookMu.Unlock()
}

// HandleSignals waits for SIGINT or SIGTERM, runs the registered exit hook and
// then re-raises the signal so that the process terminates with the default
// disposition. Closing cancel stops the handler without running the hook.
func HandleSignals(logger log.Logger, cancel <-chan struct{}) {
	notifier := make(chan os.Signal, 1)
	signal.Notify(notifier, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(notifier)

		var sig os.Signal
		select {
		case sig = <-notifier:
		case <-cancel:
			return
		}

		hookMu.Lock()
		hook := exitHook
		hookMu.Unlock()

		signalMu.Lock()
		logger.Infof("received an OS signal (%s) to shutdown", sig.String())
		if hook != nil {
			if err := hook(); err != nil {
				logger.Error(err)
			}
		}
		signalMu.Unlock()

		signal.Stop(notifier)
		pid := syscall.Getpid()
		if pid == 1 {
			os.Exit(0)
		}
		_ = syscall.Kill(pid, sig.(syscall.Signal))
	}()
}
