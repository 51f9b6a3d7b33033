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

import "unicode/utf8"

// This file implements the emacs-style edit primitives that the main loop
// (editor_loop.go) dispatches keystrokes to. Every primitive leaves the
// cursor on a code-point boundary.

// insertRune inserts r at the cursor and advances past it. Reports
// whether the buffer accepted it (false on CapacityExhausted).
func (e *Editor) insertRune(r rune) bool {
	var enc [4]byte
	n := utf8.EncodeRune(enc[:], r)
	if !e.buf.insert(e.buf.pos, enc[:n]) {
		return false
	}
	e.buf.pos += n
	return true
}

// insertBytes splices raw bytes (e.g. a pasted/bracketed-paste run) at the
// cursor.
func (e *Editor) insertBytes(p []byte) bool {
	if !e.buf.insert(e.buf.pos, p) {
		return false
	}
	e.buf.pos += len(p)
	return true
}

func (e *Editor) moveLeft() {
	e.buf.pos = backward(e.buf.buf, e.buf.pos)
}

func (e *Editor) moveRight() {
	e.buf.pos = forward(e.buf.buf, e.buf.pos)
}

func (e *Editor) moveHome() { e.buf.pos = 0 }
func (e *Editor) moveEnd()  { e.buf.pos = e.buf.len() }

// moveWordLeft skips any separators immediately to the left, then the
// word itself.
func (e *Editor) moveWordLeft() {
	pos := e.buf.pos
	pos = backwardWhile(e.buf.buf, pos, isSeparator)
	pos = backwardWhile(e.buf.buf, pos, notSeparator)
	e.buf.pos = pos
}

func (e *Editor) moveWordRight() {
	pos := e.buf.pos
	pos = forwardWhile(e.buf.buf, pos, isSeparator)
	pos = forwardWhile(e.buf.buf, pos, notSeparator)
	e.buf.pos = pos
}

// deleteForward removes the code point under the cursor, if any.
func (e *Editor) deleteForward() bool {
	if e.buf.pos >= e.buf.len() {
		return false
	}
	next := forward(e.buf.buf, e.buf.pos)
	e.buf.remove(e.buf.pos, next)
	return true
}

// backspace removes the code point before the cursor.
func (e *Editor) backspace() bool {
	if e.buf.pos == 0 {
		return false
	}
	prev := backward(e.buf.buf, e.buf.pos)
	e.buf.remove(prev, e.buf.pos)
	e.buf.pos = prev
	return true
}

// killRange removes [from,to), pushing the removed span onto the kill
// ring, and leaves the cursor at from.
func (e *Editor) killRange(from, to int) {
	if to <= from {
		return
	}
	e.kill.push(string(e.buf.buf[from:to]))
	e.buf.remove(from, to)
	e.buf.pos = from
}

// killToEnd implements Ctrl-K: kill from the cursor to end of line.
func (e *Editor) killToEnd() { e.killRange(e.buf.pos, e.buf.len()) }

// killLineLeft implements Ctrl-U: kill from the start of the line to the
// cursor.
func (e *Editor) killLineLeft() { e.killRange(0, e.buf.pos) }

// killWordBackward implements Ctrl-W / Meta-Backspace.
func (e *Editor) killWordBackward() {
	start := backwardWhile(e.buf.buf, e.buf.pos, isSeparator)
	start = backwardWhile(e.buf.buf, start, notSeparator)
	e.killRange(start, e.buf.pos)
}

// killWordForward implements Meta-D: kill from the cursor through the end
// of the next word.
func (e *Editor) killWordForward() {
	end := forwardWhile(e.buf.buf, e.buf.pos, isSeparator)
	end = forwardWhile(e.buf.buf, end, notSeparator)
	e.killRange(e.buf.pos, end)
}

// yank implements Ctrl-Y: insert the kill ring's current entry at the
// cursor, recording the inserted span for a following rotate-yank.
func (e *Editor) yank() bool {
	s, ok := e.kill.current()
	if !ok {
		return false
	}
	begin := e.buf.pos
	if !e.insertBytes([]byte(s)) {
		return false
	}
	e.buf.yankBegin, e.buf.yankEnd = begin, e.buf.pos
	return true
}

// rotateYank implements Meta-Y immediately following a Ctrl-Y (or another
// Meta-Y): replace the just-yanked span with the next-older kill-ring
// entry. The chord is checked against buf.seq[1], so any intervening
// keystroke makes this a no-op.
func (e *Editor) rotateYank() bool {
	if e.buf.seq[1] != keyCtrlY && e.buf.seq[1] != keyMetaY {
		return false
	}
	e.kill.rotate()
	s, ok := e.kill.current()
	if !ok {
		return false
	}
	e.buf.remove(e.buf.yankBegin, e.buf.yankEnd)
	e.buf.pos = e.buf.yankBegin
	if !e.insertBytes([]byte(s)) {
		return false
	}
	e.buf.yankEnd = e.buf.pos
	return true
}

// transposeChars implements Ctrl-T: swap the code point before the cursor
// with the code point at it, leaving the cursor after the pair. No-op at
// the start or end of the line, where one side of the pair is missing.
func (e *Editor) transposeChars() bool {
	if e.buf.pos == 0 || e.buf.pos >= e.buf.len() {
		return false
	}
	pos := e.buf.pos
	left := backward(e.buf.buf, pos)
	right := forward(e.buf.buf, pos)
	a := append([]byte(nil), e.buf.buf[left:pos]...)
	b := append([]byte(nil), e.buf.buf[pos:right]...)
	copy(e.buf.buf[left:left+len(b)], b)
	copy(e.buf.buf[left+len(b):right], a)
	e.buf.pos = right
	return true
}

// transposeWords implements Meta-T. The cursor may sit inside or at the
// start of the separator run between the two words; the command straddles
// that gap rather than requiring the cursor inside a word.
func (e *Editor) transposeWords() bool {
	end2 := forwardWhile(e.buf.buf, e.buf.pos, notSeparator)
	end2 = forwardWhile(e.buf.buf, end2, isSeparator)
	end2 = forwardWhile(e.buf.buf, end2, notSeparator)

	start2 := backwardWhile(e.buf.buf, end2, notSeparator)
	mid2 := backwardWhile(e.buf.buf, start2, isSeparator)
	start1 := backwardWhile(e.buf.buf, mid2, notSeparator)

	if start1 == mid2 || mid2 == start2 || start2 == end2 {
		return false
	}

	word1 := append([]byte(nil), e.buf.buf[start1:mid2]...)
	gap := append([]byte(nil), e.buf.buf[mid2:start2]...)
	word2 := append([]byte(nil), e.buf.buf[start2:end2]...)

	out := make([]byte, 0, len(word1)+len(gap)+len(word2))
	out = append(out, word2...)
	out = append(out, gap...)
	out = append(out, word1...)
	copy(e.buf.buf[start1:end2], out)
	e.buf.pos = end2
	return true
}

// wordTransform applies fn to every rune of the next word (advancing past
// any leading separators first), used by upcaseWord/downcaseWord and,
// with a fresh capitalizeState, capitalizeWord.
func (e *Editor) wordTransform(fn func(rune) rune) {
	pos := forwardWhile(e.buf.buf, e.buf.pos, isSeparator)
	end := forwardWhile(e.buf.buf, pos, notSeparator)
	out := make([]byte, 0, end-pos)
	for pos < end {
		r, size := decodeRuneAt(e.buf.buf, pos)
		var enc [4]byte
		n := utf8.EncodeRune(enc[:], fn(r))
		out = append(out, enc[:n]...)
		pos += size
	}
	start := forwardWhile(e.buf.buf, e.buf.pos, isSeparator)
	e.buf.remove(start, end)
	e.buf.insert(start, out)
	e.buf.pos = start + len(out)
}

// upcaseWord implements Meta-U.
func (e *Editor) upcaseWord() { e.wordTransform(toUpper) }

// downcaseWord implements Meta-L.
func (e *Editor) downcaseWord() { e.wordTransform(toLower) }

// capitalizeWord implements Meta-C: upcase the first code point of the
// word, leaving the rest as typed.
func (e *Editor) capitalizeWord() {
	cs := &capitalizeState{}
	e.wordTransform(cs.transform)
}

// squeezeWhitespace implements Meta-\: remove the separator run spanning
// the cursor.
func (e *Editor) squeezeWhitespace() {
	start := backwardWhile(e.buf.buf, e.buf.pos, isSeparator)
	end := forwardWhile(e.buf.buf, e.buf.pos, isSeparator)
	if start >= end {
		return
	}
	e.buf.remove(start, end)
	e.buf.pos = start
}

// setMark implements the Ctrl-X Ctrl-X chord's mark half: Ctrl-Space /
// Ctrl-@ records the cursor as the mark.
func (e *Editor) setMark() {
	e.buf.mark = e.buf.pos
	e.buf.hasMark = true
}

// gotoMark implements the second Ctrl-X of the Ctrl-X Ctrl-X chord:
// exchange point and mark.
func (e *Editor) gotoMark() bool {
	if !e.buf.hasMark {
		return false
	}
	e.buf.pos, e.buf.mark = e.buf.mark, e.buf.pos
	return true
}

// historyPrev moves one entry toward older history (Ctrl-P / Up).
func (e *Editor) historyPrev() bool {
	line, ok := e.hist.gotoIndex(e.buf, e.hist.index+1)
	if !ok {
		return false
	}
	e.buf.setString(line)
	return true
}

// historyNext moves one entry toward newer history (Ctrl-N / Down).
func (e *Editor) historyNext() bool {
	line, ok := e.hist.gotoIndex(e.buf, e.hist.index-1)
	if !ok {
		return false
	}
	e.buf.setString(line)
	return true
}

// historyFirst implements Meta-< : jump to the oldest entry.
func (e *Editor) historyFirst() bool {
	line, ok := e.hist.gotoIndex(e.buf, e.hist.len()-1)
	if !ok {
		return false
	}
	e.buf.setString(line)
	return true
}

// historyLast implements Meta-> : jump back to the in-progress line.
func (e *Editor) historyLast() bool {
	line, ok := e.hist.gotoIndex(e.buf, 0)
	if !ok {
		return false
	}
	e.buf.setString(line)
	return true
}
