// Copyright 2013 Google, Inc.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rawterm manages a terminal's raw-mode lifecycle: entering and
// leaving character-at-a-time, unechoed input, querying window size, and
// watching for SIGWINCH/SIGCONT/SIGINT/SIGQUIT while a line is being
// edited.
package rawterm

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNoSize is returned by Size when neither the ioctl nor the
// $COLUMNS/$ROWS environment variables can supply a terminal size; the
// caller may fall back to the in-band probe (ProbeColumns) or a default.
var ErrNoSize = errors.New("rawterm: terminal size unavailable")

// Terminal wraps a raw-mode-capable file descriptor. The zero value is
// not ready to use; call Enable.
type Terminal struct {
	fd       int
	state    *term.State
	inRaw    bool
	fallback bool // the fd is not a terminal; raw-mode ops degrade to no-ops
}

// Enable puts f's file descriptor into raw mode, returning a Terminal that
// restores the prior mode on Close. If f is not a terminal, Enable returns
// a Terminal in fallback mode: Close is a harmless no-op and Size consults
// the environment, so callers editing over a pipe degrade gracefully.
func Enable(f *os.File) (*Terminal, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return &Terminal{fd: fd, fallback: true}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("rawterm: enable raw mode: %w", err)
	}
	enableSignalKeys(fd)
	return &Terminal{fd: fd, state: state, inRaw: true}, nil
}

// enableSignalKeys turns ISIG back on after MakeRaw: the interrupt and
// quit keys must keep generating their signals so they can be re-raised
// with default semantics once the terminal is restored (Reraise), rather
// than arriving as ordinary input bytes. Everything else about raw mode
// stays.
func enableSignalKeys(fd int) {
	tio, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return
	}
	tio.Lflag |= unix.ISIG
	unix.IoctlSetTermios(fd, ioctlWriteTermios, tio)
}

// Close restores the terminal to the mode it was in before Enable, and is
// idempotent: calling it twice, or on a fallback Terminal, is harmless.
func (t *Terminal) Close() error {
	if t == nil || !t.inRaw {
		return nil
	}
	t.inRaw = false
	return term.Restore(t.fd, t.state)
}

// Size reports the terminal's current width and height in character
// cells, trying the ioctl first and the $COLUMNS/$ROWS environment
// variables second. When both are unavailable (a fallback Terminal with
// no environment hints) it returns ErrNoSize rather than guessing.
func (t *Terminal) Size() (cols, rows int, err error) {
	if !t.fallback {
		if w, h, err := term.GetSize(t.fd); err == nil {
			return w, h, nil
		}
	}
	if c, r := envDim("COLUMNS"), envDim("ROWS"); c > 0 && r > 0 {
		return c, r, nil
	}
	return 0, 0, ErrNoSize
}

// envDim parses name as a positive decimal dimension, returning 0 when it
// is unset or malformed.
func envDim(name string) int {
	n := 0
	for _, c := range os.Getenv(name) {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
