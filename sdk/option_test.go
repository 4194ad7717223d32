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
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOption(t *testing.T) {
	input := strings.NewReader("")
	output := new(bytes.Buffer)
	diagnostics := new(bytes.Buffer)

	testCases := []struct {
		name   string
		option Option
		check  func(t *testing.T, actor *Actor)
	}{
		{
			name:   "WithInput",
			option: WithInput(input),
			check: func(t *testing.T, actor *Actor) {
				_, err := actor.Receive()
				require.Error(t, err)
			},
		},
		{
			name:   "WithOutput",
			option: WithOutput(output),
			check: func(t *testing.T, actor *Actor) {
				assert.Equal(t, output, actor.stdout)
				assert.Equal(t, os.Stderr, actor.stderr)
			},
		},
		{
			name:   "WithDiagnostics",
			option: WithDiagnostics(diagnostics),
			check: func(t *testing.T, actor *Actor) {
				assert.Equal(t, diagnostics, actor.stderr)
				assert.Equal(t, os.Stdout, actor.stdout)
			},
		},
		{
			name: "OptionFunc",
			option: OptionFunc(func(actor *Actor) {
				actor.stdout = diagnostics
			}),
			check: func(t *testing.T, actor *Actor) {
				assert.Equal(t, diagnostics, actor.stdout)
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actor := New(tc.option)
			tc.check(t, actor)
		})
	}
}
