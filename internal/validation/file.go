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

	"golang.org/x/sys/unix"

	gerrors "github.com/tochemey/uaf/errors"
)

type fileValidator struct {
	path string
}

var _ Validator = (*fileValidator)(nil)

// NewFileValidator creates a validator that checks the path refers to a
// regular file. Symbolic links are followed.
func NewFileValidator(path string) Validator {
	return &fileValidator{path: path}
}

// Validate implements Validator
func (v *fileValidator) Validate() error {
	info, err := os.Stat(v.path)
	if err != nil || !info.Mode().IsRegular() {
		return gerrors.NewErrNotAFile(v.path)
	}
	return nil
}

type executableValidator struct {
	path string
}

var _ Validator = (*executableValidator)(nil)

// NewExecutableValidator creates a validator that checks the current process
// is allowed to execute the given path.
func NewExecutableValidator(path string) Validator {
	return &executableValidator{path: path}
}

// Validate implements Validator
func (v *executableValidator) Validate() error {
	if err := unix.Access(v.path, unix.X_OK); err != nil {
		return gerrors.NewErrNotExecutable(v.path)
	}
	return nil
}
