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
	"strconv"
	"strings"

	"github.com/kylelemons/editline/internal/rawterm"
)

// This file implements the screen refresh algorithm: given the prompt,
// buffer, cursor, terminal width, and (for multi-line mode) the previous
// draw's row count, emit the escape sequences that redraw the edited line
// and land the physical cursor on the logical position. The repaint never
// assumes knowledge of the prompt's starting column; it always begins
// with CR.

// refresh redraws the prompt/line/hint/cursor, choosing the single-line or
// multi-line algorithm per e.multiLine.
func (e *Editor) refresh() error {
	if e.noTTY {
		return nil
	}
	cols := e.columns()
	if e.multiLine {
		return e.refreshMultiLine(cols)
	}
	return e.refreshSingleLine(cols)
}

// activePrompt returns the prompt text the next refresh should show: the
// "(reverse-i-search ...)" overlay while a search is in progress,
// otherwise the caller's own prompt.
func (e *Editor) activePrompt() string {
	if e.search != nil {
		return e.search.renderPrompt()
	}
	return e.prompt
}

func (e *Editor) columns() int {
	if e.term == nil {
		return 80
	}
	if w, _, err := e.term.Size(); err == nil && w > 0 {
		return w
	}
	// Last resort: ask the terminal itself where column 999 lands. The
	// answer is cached until the next resize; the probe is too expensive
	// (and input-consuming) to repeat per keystroke.
	if !e.sizeProbed {
		e.sizeProbed = true
		if w, ok := rawterm.ProbeColumns(e.in, e.out); ok {
			e.probedCols = w
		}
	}
	if e.probedCols > 0 {
		return e.probedCols
	}
	return 80
}

// displayLine returns the string actually rendered for the buffer's
// contents: '*' repeated for mask mode, the raw UTF-8 text otherwise.
func (e *Editor) displayLine() string {
	if e.maskMode {
		n := 0
		for range e.buf.String() {
			n++
		}
		return strings.Repeat("*", n)
	}
	return e.buf.String()
}

// displayCursorWidth returns the on-screen column width of the first n
// bytes of the display line, accounting for mask mode (1 column/rune).
func (e *Editor) displayCursorWidth(n int) int {
	if e.maskMode {
		cnt := 0
		for range string(e.buf.buf[:n]) {
			cnt++
		}
		return cnt
	}
	return stringWidth(string(e.buf.buf[:n]))
}

// refreshSingleLine implements horizontal scrolling within one terminal
// row: when the cursor would fall outside [0,cols), the visible window
// slides so the cursor stays at an edge.
func (e *Editor) refreshSingleLine(cols int) error {
	prompt := e.activePrompt()
	promptWidth := stringWidth(prompt)
	avail := cols - promptWidth
	if avail < 1 {
		avail = 1
	}

	line := e.displayLine()
	cursorCol := e.displayCursorWidth(e.buf.pos)

	// Slide the visible window so the cursor stays within [0, avail).
	visStart := 0
	for cursorCol-visStart >= avail {
		visStart++
	}

	var b strings.Builder
	b.WriteByte('\r')
	b.WriteString(prompt)

	runes := []rune(line)
	col := 0
	visStartRune, visEndRune := 0, len(runes)
	for i, r := range runes {
		w := monospaceWidth(r)
		if col < visStart {
			visStartRune = i + 1
		}
		col += w
		if col-visStart > avail {
			visEndRune = i
			break
		}
	}
	if visStartRune > len(runes) {
		visStartRune = len(runes)
	}
	visible := string(runes[visStartRune:visEndRune])
	b.WriteString(visible)

	if hint := e.renderHint(cols - promptWidth - stringWidth(visible)); hint != "" {
		b.WriteString(hint)
	}

	b.WriteString("\x1b[0K")
	b.WriteByte('\r')
	if n := promptWidth + (cursorCol - visStart); n > 0 {
		b.WriteString("\x1b[")
		b.WriteString(strconv.Itoa(n))
		b.WriteByte('C')
	}

	_, err := e.out.WriteString(b.String())
	return err
}

// refreshMultiLine implements the wrapped-row redraw: compute how many
// terminal rows the old and new contents occupy, erase the previously
// drawn block from the bottom up, and redraw.
func (e *Editor) refreshMultiLine(cols int) error {
	prompt := e.activePrompt()
	promptWidth := stringWidth(prompt)
	line := e.displayLine()
	total := promptWidth + stringWidth(line)
	rows := (total + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}
	cursorAbs := promptWidth + e.displayCursorWidth(e.buf.pos)
	cursorRow := cursorAbs / cols

	var b strings.Builder

	// Drop to the bottom row of the previously drawn block, then erase it
	// row by row back up, ending at column 0 of the prompt row. On the
	// first draw maxRowsDrawn is 0 and there is nothing to clear.
	oldRows := e.buf.maxRowsDrawn
	oldCursorRow := e.buf.oldPos / cols
	if down := oldRows - 1 - oldCursorRow; down > 0 {
		b.WriteString("\x1b[")
		b.WriteString(strconv.Itoa(down))
		b.WriteByte('B')
	}
	for i := 0; i < oldRows-1; i++ {
		b.WriteString("\r\x1b[0K\x1b[1A")
	}
	b.WriteString("\r\x1b[0K")

	b.WriteString(prompt)
	b.WriteString(line)
	if hint := e.renderHint(rows*cols - total); hint != "" {
		b.WriteString(hint)
	}

	// The cursor sits exactly on a wrap boundary: force the new row into
	// existence so the physical cursor can land on it.
	if e.buf.pos == e.buf.len() && total > 0 && total%cols == 0 {
		b.WriteString("\n\r")
		rows++
	}

	rowsUp := rows - 1 - cursorRow
	if rowsUp > 0 {
		b.WriteString("\x1b[")
		b.WriteString(strconv.Itoa(rowsUp))
		b.WriteByte('A')
	}
	if col := cursorAbs % cols; col > 0 {
		b.WriteString("\r\x1b[")
		b.WriteString(strconv.Itoa(col))
		b.WriteByte('C')
	} else {
		b.WriteByte('\r')
	}

	if rows > e.buf.maxRowsDrawn {
		e.buf.maxRowsDrawn = rows
	}
	e.buf.oldPos = cursorAbs

	_, err := e.out.WriteString(b.String())
	return err
}

// renderHint asks the hints callback for an inline suggestion and wraps
// it in the requested SGR attributes, truncated to fit the remaining
// columns. Returns "" if there's no callback, no hint, or no room.
func (e *Editor) renderHint(remaining int) string {
	if e.hintCallback == nil || remaining <= 0 {
		return ""
	}
	hint, color, bold := e.hintCallback(e.buf.String())
	if hint == "" {
		return ""
	}
	if color == 0 {
		color = 37 // default hint color; 0 would emit an SGR reset instead
	}
	if e.freeHintsCallback != nil {
		defer e.freeHintsCallback(hint)
	}
	if w := stringWidth(hint); w > remaining {
		runes := []rune(hint)
		col := 0
		cut := len(runes)
		for i, r := range runes {
			col += monospaceWidth(r)
			if col > remaining {
				cut = i
				break
			}
		}
		hint = string(runes[:cut])
	}
	var b strings.Builder
	b.WriteString("\x1b[")
	if bold {
		b.WriteString("1;")
	}
	b.WriteString(strconv.Itoa(int(color)))
	b.WriteByte('m')
	b.WriteString(hint)
	b.WriteString("\x1b[0m")
	return b.String()
}
