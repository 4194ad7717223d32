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

package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/uaf/errors"
)

func TestFileValidator(t *testing.T) {
	dir := t.TempDir()

	t.Run("With regular file", func(t *testing.T) {
		path := filepath.Join(dir, "regular")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))
		assert.NoError(t, NewFileValidator(path).Validate())
	})
	t.Run("With missing path", func(t *testing.T) {
		path := filepath.Join(dir, "missing")
		err := NewFileValidator(path).Validate()
		assert.ErrorIs(t, err, gerrors.ErrNotAFile)
		assert.EqualError(t, err, path+" is not a file")
	})
	t.Run("With directory", func(t *testing.T) {
		err := NewFileValidator(dir).Validate()
		assert.ErrorIs(t, err, gerrors.ErrNotAFile)
	})
}

func TestExecutableValidator(t *testing.T) {
	dir := t.TempDir()

	t.Run("With executable file", func(t *testing.T) {
		path := filepath.Join(dir, "script.sh")
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o700))
		assert.NoError(t, NewExecutableValidator(path).Validate())
	})
	t.Run("With non executable file", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root bypasses permission bits")
		}
		path := filepath.Join(dir, "plain.txt")
		require.NoError(t, os.WriteFile(path, []byte("text"), 0o600))
		err := NewExecutableValidator(path).Validate()
		assert.ErrorIs(t, err, gerrors.ErrNotExecutable)
		assert.EqualError(t, err, path+" is not an executable file")
	})
	t.Run("With fail fast chain", func(t *testing.T) {
		path := filepath.Join(dir, "nowhere")
		err := New(FailFast()).
			AddValidator(NewFileValidator(path)).
			AddValidator(NewExecutableValidator(path)).
			Validate()
		assert.ErrorIs(t, err, gerrors.ErrNotAFile)
		assert.NotErrorIs(t, err, gerrors.ErrNotExecutable)
	})
}
