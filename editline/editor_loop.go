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

package editline

import (
	"errors"
	"io"

	"github.com/kylelemons/editline/internal/rawterm"
)

// This file is the main edit loop: it decodes one keystroke at a time and
// dispatches it to the primitives in primitives.go, refreshing the screen
// after every change.

const (
	keyCtrlAt    = "\x00"
	keyCtrlA     = "\x01"
	keyCtrlB     = "\x02"
	keyCtrlC     = "\x03"
	keyCtrlD     = "\x04"
	keyCtrlE     = "\x05"
	keyCtrlF     = "\x06"
	keyCtrlG     = "\x07"
	keyBackspace = "\x08"
	keyTab       = "\x09"
	keyCtrlK     = "\x0B"
	keyCtrlL     = "\x0C"
	keyEnter     = "\x0D"
	keyCtrlN     = "\x0E"
	keyCtrlP     = "\x10"
	keyCtrlR     = "\x12"
	keyCtrlT     = "\x14"
	keyCtrlU     = "\x15"
	keyCtrlW     = "\x17"
	keyCtrlX     = "\x18"
	keyCtrlY     = "\x19"
	keyEsc       = "\x1B"
	keyDel       = "\x7F"

	keyArrowUp    = "\x1B[A"
	keyArrowDown  = "\x1B[B"
	keyArrowRight = "\x1B[C"
	keyArrowLeft  = "\x1B[D"
	keyHome1      = "\x1B[H"
	keyEnd1       = "\x1B[F"
	keyHome2      = "\x1B[1~"
	keyEnd2       = "\x1B[4~"
	keyDeleteFwd  = "\x1B[3~"

	keyMetaB         = "\x1Bb"
	keyMetaF         = "\x1Bf"
	keyMetaD         = "\x1Bd"
	keyMetaT         = "\x1Bt"
	keyMetaU         = "\x1Bu"
	keyMetaL         = "\x1Bl"
	keyMetaC         = "\x1Bc"
	keyMetaY         = "\x1By"
	keyMetaLt        = "\x1B<"
	keyMetaGt        = "\x1B>"
	keyMetaBackspace = "\x1B\x7F"
	keyMetaBackslash = "\x1B\\"
)

func (e *Editor) readLineRaw(prompt string) (string, error) {
	t, err := rawterm.Enable(e.in)
	if err != nil {
		return "", err
	}

	e.mu.Lock()
	e.term = t
	e.buf = newBuffer()
	e.hist.beginEditing()
	e.search = nil
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.term.Close()
		e.term = nil
		e.hist.endEditing()
		e.mu.Unlock()
	}()

	stopSignals := e.watchResizeAndResume()
	defer stopSignals()

	e.mu.Lock()
	err = e.refresh()
	e.mu.Unlock()
	if err != nil {
		return "", err
	}

	var cs *completionState
	for {
		keystroke, err := e.dec.Next()
		if err != nil {
			if errors.Is(err, ErrEndOfInput) {
				return "", io.EOF
			}
			return "", err
		}

		e.mu.Lock()
		result, resultErr, done := e.handleKeystroke(keystroke, &cs)
		e.mu.Unlock()
		if done {
			return result, resultErr
		}
		if resultErr != nil {
			return "", resultErr
		}
	}
}

// handleKeystroke routes one canonical keystroke to the active sub-loop
// (incremental search, completion cycling) or the ordinary dispatch table,
// and repaints. Called with e.mu held. done reports that ReadLine should
// return (result, err) to the caller.
func (e *Editor) handleKeystroke(keystroke string, cs **completionState) (result string, err error, done bool) {
	e.buf.pushSeq(keystroke)

	if e.search != nil {
		switch e.dispatchSearch(e.search, keystroke) {
		case searchContinues:
			return "", e.refresh(), false
		case searchEndsSilently:
			e.search = nil
			return "", e.refresh(), false
		case searchEndsAndRedispatches:
			e.search = nil
			// Fall through: the keystroke that ended the search is also
			// processed by the ordinary dispatch below.
		}
	}

	if keystroke == keyCtrlR {
		if s := e.beginSearch(); s != nil {
			e.search = s
			if err := e.refresh(); err != nil {
				return "", err, true
			}
		}
		return "", nil, false
	}

	if keystroke == keyTab {
		*cs = e.completeLine(*cs)
		return "", e.refresh(), false
	}
	if *cs != nil {
		if keystroke == keyEsc {
			e.cancelCompletion(*cs)
			*cs = nil
			return "", e.refresh(), false
		}
		*cs = nil
	}

	result, err, done = e.dispatch(keystroke)
	if done {
		return result, err, true
	}
	return "", e.refresh(), false
}

// watchResizeAndResume starts a background watcher that redraws on
// SIGWINCH, re-asserts raw mode on SIGCONT (a job-control stop/resume can
// leave the tty in cooked mode), and on SIGINT/SIGQUIT restores cooked
// mode and re-raises the signal so its default action reaches the parent.
// Returns a func to stop the watcher.
func (e *Editor) watchResizeAndResume() func() {
	w := rawterm.WatchSignals()
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig, ok := <-w.C():
				if !ok {
					return
				}
				e.mu.Lock()
				switch {
				case rawterm.IsWinch(sig):
					e.sizeProbed = false
					e.refresh()
				case rawterm.IsResume(sig):
					// The stop/resume cycle reset the terminal attributes,
					// so drop the stale snapshot before taking a new one.
					e.term.Close()
					if t, err := rawterm.Enable(e.in); err == nil {
						e.term = t
					}
					e.refresh()
				case rawterm.IsInterrupt(sig):
					e.term.Close()
					e.mu.Unlock()
					rawterm.Reraise(sig)
					return
				}
				e.mu.Unlock()
			case <-done:
				return
			}
		}
	}()
	return func() {
		close(done)
		w.Stop()
	}
}

// dispatch handles one keystroke outside of completion/search mode,
// returning done=true once the line is finished (submitted, interrupted,
// or EOF).
func (e *Editor) dispatch(keystroke string) (result string, err error, done bool) {
	switch keystroke {
	case keyEnter:
		// Force a repaint with hints suppressed so the submitted line is
		// left on the terminal exactly as typed.
		e.moveEnd()
		savedHint := e.hintCallback
		e.hintCallback = nil
		e.refresh()
		e.hintCallback = savedHint

		line := e.buf.String()
		if line != "" {
			e.hist.endEditing()
			e.hist.add(line)
			e.hist.beginEditing()
		}
		return line, nil, true

	case keyCtrlC:
		return "", ErrInterrupted, true

	case keyCtrlD:
		if e.buf.len() == 0 {
			return "", io.EOF, true
		}
		e.deleteForward()

	case keyBackspace, keyDel:
		e.backspace()

	case keyCtrlA, keyHome1, keyHome2:
		e.moveHome()
	case keyCtrlE, keyEnd1, keyEnd2:
		e.moveEnd()
	case keyCtrlB, keyArrowLeft:
		e.moveLeft()
	case keyCtrlF, keyArrowRight:
		e.moveRight()
	case keyMetaB:
		e.moveWordLeft()
	case keyMetaF:
		e.moveWordRight()

	case keyDeleteFwd:
		e.deleteForward()

	case keyCtrlK:
		e.killToEnd()
	case keyCtrlU:
		e.killLineLeft()
	case keyCtrlW, keyMetaBackspace:
		e.killWordBackward()
	case keyMetaD:
		e.killWordForward()
	case keyCtrlY:
		e.yank()
	case keyMetaY:
		e.rotateYank()

	case keyMetaBackslash:
		e.squeezeWhitespace()

	case keyCtrlT:
		e.transposeChars()
	case keyMetaT:
		e.transposeWords()
	case keyMetaU:
		e.upcaseWord()
	case keyMetaL:
		e.downcaseWord()
	case keyMetaC:
		e.capitalizeWord()

	case keyCtrlAt:
		e.setMark()
	case keyCtrlX:
		if e.buf.seq[1] == keyCtrlX {
			e.gotoMark()
		}

	case keyCtrlP, keyArrowUp:
		e.historyPrev()
	case keyCtrlN, keyArrowDown:
		e.historyNext()
	case keyMetaLt:
		e.historyFirst()
	case keyMetaGt:
		e.historyLast()

	case keyCtrlL:
		e.ClearScreen()

	case keyCtrlG, keyEsc:
		// no-op outside of search/completion

	default:
		e.insertKeystroke(keystroke)
	}
	return "", nil, false
}

// insertKeystroke inserts a printable keystroke (a decoded UTF-8 rune or
// multi-byte sequence the decoder passed through unrecognized) as text,
// ignoring other C0/C1 controls and unrecognized escape sequences.
func (e *Editor) insertKeystroke(keystroke string) {
	if len(keystroke) == 0 {
		return
	}
	c := keystroke[0]
	if c < 0x20 || c == 0x7F {
		return // unrecognized control byte; drop it
	}
	if c == 0xC2 && len(keystroke) > 1 && keystroke[1] <= 0x9F {
		return // UTF-8 encoded C1 control or C1-introduced sequence; drop it
	}
	if c == esc {
		return // unrecognized escape sequence; drop it
	}
	e.insertBytes([]byte(keystroke))
}

// searchOutcome reports what happened to an in-progress incremental
// search after processing one keystroke.
type searchOutcome int

const (
	// searchContinues means the keystroke was consumed by the search
	// (it narrowed, widened, or re-anchored the query) and another
	// keystroke should be read in search mode.
	searchContinues searchOutcome = iota
	// searchEndsSilently means the search ended (Ctrl-G) and the
	// keystroke that ended it is fully consumed; the outer loop reads a
	// fresh keystroke next.
	searchEndsSilently
	// searchEndsAndRedispatches means the search ended, the matched
	// entry stays loaded in the buffer, and the ending keystroke itself
	// must still be run through the ordinary dispatch table.
	searchEndsAndRedispatches
)

// dispatchSearch handles one keystroke while an incremental reverse
// search (Ctrl-R) is active: Backspace/Del, Ctrl-R, and non-control bytes
// keep searching; Ctrl-G restores the pre-search state and ends silently;
// every other control byte or escape sequence (including Enter, arrow
// keys, Ctrl-C) ends the search as-is and is then redispatched normally.
func (e *Editor) dispatchSearch(s *searchState, keystroke string) searchOutcome {
	switch keystroke {
	case keyCtrlR:
		if entry, pos, ok := s.step(e.hist, nil, true); ok {
			e.hist.index = entry
			e.buf.setString(e.hist.slot(entry))
			e.buf.pos = pos
		}
		return searchContinues

	case keyCtrlG:
		e.hist.index = s.origIndex
		e.buf.setString(e.hist.slot(s.origIndex))
		e.buf.pos = s.origPos
		return searchEndsSilently

	case keyBackspace, keyDel:
		s.backspace()
		if entry, pos, ok := s.step(e.hist, nil, false); ok {
			e.hist.index = entry
			e.buf.setString(e.hist.slot(entry))
			e.buf.pos = pos
		}
		return searchContinues

	default:
		if len(keystroke) == 0 {
			return searchContinues
		}
		c := keystroke[0]
		if c < 0x20 || c == 0x7F || (c == 0xC2 && len(keystroke) > 1 && keystroke[1] <= 0x9F) {
			// Any other control byte or escape sequence (Enter, Ctrl-C,
			// Ctrl-D, arrow keys, UTF-8 encoded C1 controls...) ends the
			// search in place; the outer loop runs it through the normal
			// dispatch table next.
			return searchEndsAndRedispatches
		}
		if entry, pos, ok := s.step(e.hist, []byte(keystroke), false); ok {
			e.hist.index = entry
			e.buf.setString(e.hist.slot(entry))
			e.buf.pos = pos
		}
		return searchContinues
	}
}

// beginSearch starts a new incremental search when Ctrl-R is pressed,
// returning nil if only the synthetic current-edit slot exists and there
// is nothing to search.
func (e *Editor) beginSearch() *searchState {
	if e.hist.len() <= 1 {
		return nil
	}
	return e.hist.newSearch(e.buf)
}
