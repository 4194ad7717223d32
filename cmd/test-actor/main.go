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
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tochemey/uaf/internal/testactor"
	"github.com/tochemey/uaf/sdk"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-actor [max_count]",
		Short: "Reference actor: logs and echoes every message, exits after max_count messages",
		Args:  cobra.MaximumNArgs(1),
		// actors talk JSON on stdout; cobra output goes to stderr
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			maxCount := testactor.DefaultMaxCount
			if len(args) == 1 {
				value, err := strconv.Atoi(args[0])
				if err != nil || value <= 0 {
					return fmt.Errorf("invalid max_count %q: must be a positive integer", args[0])
				}
				maxCount = value
			}
			return testactor.Run(sdk.New(), maxCount, testactor.DefaultEchoPath)
		},
	}
}
