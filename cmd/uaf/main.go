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

package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	gerrors "github.com/tochemey/uaf/errors"
	"github.com/tochemey/uaf/internal/osutil"
	"github.com/tochemey/uaf/log"
	"github.com/tochemey/uaf/protocol"
	"github.com/tochemey/uaf/supervisor"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uaf <executable> [args...]",
		Short: "Run an actor under the process supervisor",
		Long: `uaf launches the root actor and supervises every actor it spawns.
The supervisor runs until the root actor exits.`,
		Args: cobra.MinimumNArgs(1),
		// every argument after the executable belongs to the root actor
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), log.DefaultLogger, protocol.NewProps(args[0], args[1:]...))
		},
	}
	cmd.SetOut(os.Stderr)
	return cmd
}

func run(ctx context.Context, logger log.Logger, props protocol.Props) error {
	if ctx == nil {
		ctx = context.Background()
	}

	sup, err := supervisor.New(supervisor.WithLogger(logger))
	if err != nil {
		logger.Error(err)
		return err
	}

	if err := sup.Start(ctx); err != nil {
		logger.Error(err)
		return err
	}

	osutil.RegisterExitHook(func() error {
		return sup.Stop(context.Background())
	})
	cancel := make(chan struct{})
	defer close(cancel)
	osutil.HandleSignals(logger, cancel)

	runErr := sup.Run(ctx, props)
	if runErr != nil {
		logger.Errorf("root actor failed: %v", runErr)
	}

	if err := sup.Stop(ctx); err != nil && !errors.Is(err, gerrors.ErrSupervisorNotStarted) {
		logger.Error(err)
	}

	_ = logger.Flush()
	return runErr
}
