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

// Package editline implements an embeddable, emacs-style command-line
// editing engine: UTF-8 aware insertion and motion, a kill ring, a bounded
// history with incremental reverse search, tab completion, hints, and
// output masking, driven over a raw terminal.
package editline

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/kylelemons/editline/internal/rawterm"
)

// CompletionCallback proposes completions for the current line, appending
// each candidate to completions.
type CompletionCallback func(line string, completions *Completions)

// HintCallback returns an inline hint to render after the cursor for the
// current line, along with the color/bold attributes to render it with.
// A zero ansiColor means "use the default hint color".
type HintCallback func(line string) (hint string, color ANSIColor, bold bool)

// ANSIColor is a foreground SGR color code (30-37), used by HintCallback.
type ANSIColor int

// Editor holds all per-session edit state: the in-progress line, history,
// kill ring, and configuration. Holding it in one value (rather than
// package-level state) lets multiple independent editing sessions — in
// tests, or multiplexed over multiple connections — coexist without
// sharing anything.
//
// The zero value is not ready to use; construct one with New.
type Editor struct {
	in  *os.File
	out *os.File

	// mu serializes the edit loop's keystroke handling against the signal
	// watcher's redraw/raw-mode re-assertion (editor_loop.go); reads on
	// the input descriptor happen outside it.
	mu sync.Mutex

	reader *bufio.Reader
	dec    *decoder

	buf    *buffer
	hist   *history
	kill   killRing
	search *searchState // non-nil while an incremental reverse search is active

	term *rawterm.Terminal

	prompt string

	maskMode  bool
	multiLine bool
	noTTY     bool
	dumbTerm  bool

	sizeProbed bool // the in-band width probe has run since the last resize
	probedCols int

	completionCallback CompletionCallback
	hintCallback       HintCallback
	freeHintsCallback  FreeHintsCallback
}

// Option configures an Editor at construction time.
type Option func(*Editor)

// WithMaskMode starts the Editor in mask mode (input echoed as '*').
func WithMaskMode() Option { return func(e *Editor) { e.maskMode = true } }

// WithMultiLine enables multi-line rendering instead of single-line
// horizontal scrolling.
func WithMultiLine() Option { return func(e *Editor) { e.multiLine = true } }

// New constructs an Editor reading from in and writing prompts/redraws to
// out. Both must refer to a terminal for raw-mode editing to engage; if
// either is not a TTY (or $TERM names a terminal with no cursor
// addressing), ReadLine falls back to plain line reading.
func New(in, out *os.File, opts ...Option) *Editor {
	e := &Editor{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
		buf:    newBuffer(),
		hist:   newHistory(),
	}
	e.dec = newDecoder(e.reader)
	e.noTTY = !isatty.IsTerminal(in.Fd()) || !isatty.IsTerminal(out.Fd())
	switch os.Getenv("TERM") {
	case "dumb", "cons25", "emacs":
		e.dumbTerm = true
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetCompletionCallback installs the tab-completion provider. A nil
// callback disables completion.
func (e *Editor) SetCompletionCallback(cb CompletionCallback) { e.completionCallback = cb }

// SetHintsCallback installs the inline hint provider. A nil callback
// disables hints.
func (e *Editor) SetHintsCallback(cb HintCallback) { e.hintCallback = cb }

// FreeHintsCallback is invoked with the string a HintCallback returned,
// once the refresh that displayed it has finished with it. The garbage
// collector makes this unnecessary for memory safety; the hook exists for
// hint sources carrying real ownership, such as a string borrowed from a
// C allocation via cgo, which need a symmetric place to release it.
type FreeHintsCallback func(hint string)

// SetFreeHintsCallback installs the function invoked after each hint
// returned by the HintCallback has been rendered.
func (e *Editor) SetFreeHintsCallback(cb FreeHintsCallback) { e.freeHintsCallback = cb }

// EnableMaskMode makes ReadLine echo every inserted rune as '*', for
// password-style prompts.
func (e *Editor) EnableMaskMode() { e.maskMode = true }

// DisableMaskMode returns to normal echo.
func (e *Editor) DisableMaskMode() { e.maskMode = false }

// ErrInterrupted is returned by ReadLine when the user pressed Ctrl-C,
// distinguishing "user cancelled" from "stream closed".
var ErrInterrupted = errors.New("editline: interrupted")

// ReadLine displays prompt, reads one line of input with full editing
// support, and returns it without a trailing newline. It returns
// io.EOF when the input stream is closed with no partial line typed, and
// ErrInterrupted when the user presses Ctrl-C, discarding any partial line.
func (e *Editor) ReadLine(prompt string) (string, error) {
	e.prompt = prompt

	if e.noTTY || e.dumbTerm {
		return e.readLineCooked(prompt)
	}
	return e.submitNewline(e.readLineRaw(prompt))
}

// ReadLineRaw behaves exactly like ReadLine but skips the isatty/$TERM
// checks entirely and always drives the raw-mode editor, even over
// descriptors New wasn't sure were terminals.
func (e *Editor) ReadLineRaw(prompt string) (string, error) {
	e.prompt = prompt
	return e.submitNewline(e.readLineRaw(prompt))
}

// submitNewline writes the trailing "\r\n" after a successful line read:
// raw mode has echo and OPOST both off, so nothing else will move the
// cursor past the submitted line.
func (e *Editor) submitNewline(line string, err error) (string, error) {
	if err == nil {
		io.WriteString(e.out, "\r\n")
	}
	return line, err
}

// readLineCooked is the non-interactive fallback: no raw mode, no
// escape-sequence handling, just buffered line reading.
func (e *Editor) readLineCooked(prompt string) (string, error) {
	if prompt != "" && !e.noTTY {
		io.WriteString(e.out, prompt)
	}
	line, err := e.reader.ReadString('\n')
	if err != nil && len(line) == 0 {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", err
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, nil
}

// AddHistory appends line to the history store, skipping it if it
// duplicates the most recently added entry.
func (e *Editor) AddHistory(line string) bool { return e.hist.add(line) }

// HistoryLen reports the number of retained history entries.
func (e *Editor) HistoryLen() int { return e.hist.len() }

// ClearScreen erases the terminal and redraws the current prompt and line.
func (e *Editor) ClearScreen() error {
	if e.noTTY {
		return nil
	}
	if _, err := io.WriteString(e.out, "\x1b[H\x1b[2J"); err != nil {
		return err
	}
	return e.refresh()
}

// Close releases any terminal resources (restoring cooked mode if raw
// mode was left engaged) and empties the kill ring. Safe to call multiple
// times.
func (e *Editor) Close() error {
	e.kill.reset()
	if e.term != nil {
		return e.term.Close()
	}
	return nil
}

// DisableRawMode restores cooked mode immediately rather than waiting for
// ReadLine to return. Like Close it is idempotent, but it leaves the kill
// ring and history intact.
func (e *Editor) DisableRawMode() error {
	if e.term != nil {
		return e.term.Close()
	}
	return nil
}

// FreeHistory discards every retained history entry.
func (e *Editor) FreeHistory() { e.hist = newHistory() }
