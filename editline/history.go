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

import "strings"

// historyMax is the fixed capacity of the history store.
const historyMax = 1024

// history is a bounded FIFO of lines with a "currently editing" slot at the
// newest end.
type history struct {
	lines []string // lines[len-1] is the "current edit" slot
	index int      // 0 == the current-edit slot, increasing = older
}

func newHistory() *history {
	return &history{}
}

// beginEditing appends a synthetic empty entry to serve as the slot the
// in-progress line is mirrored into while the user navigates history.
func (h *history) beginEditing() {
	h.lines = append(h.lines, "")
	h.index = 0
}

// endEditing drops the synthetic slot added by beginEditing, used both on
// submission (the real line is added separately via add) and on EOF.
func (h *history) endEditing() {
	if len(h.lines) == 0 {
		return
	}
	h.lines = h.lines[:len(h.lines)-1]
}

// add appends line as a new history entry unless it duplicates the current
// newest entry. Reports whether the entry was retained.
func (h *history) add(line string) bool {
	if len(h.lines) > 0 && h.lines[len(h.lines)-1] == line {
		return false
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > historyMax {
		h.lines = h.lines[len(h.lines)-historyMax:]
	}
	return true
}

// slot returns the entry at history index i (0 == newest / current edit).
func (h *history) slot(i int) string {
	return h.lines[len(h.lines)-1-i]
}

func (h *history) setSlot(i int, s string) {
	h.lines[len(h.lines)-1-i] = s
}

func (h *history) len() int { return len(h.lines) }

// gotoIndex clamps i to [0, len), mirrors the buffer's current contents
// into the slot it's leaving, and returns the new slot's contents.
func (h *history) gotoIndex(b *buffer, i int) (string, bool) {
	if h.len() <= 1 {
		return "", false
	}
	if i < 0 {
		i = 0
	}
	if i > h.len()-1 {
		i = h.len() - 1
	}
	h.setSlot(h.index, b.String())
	h.index = i
	return h.slot(h.index), true
}

// searchState tracks an in-progress incremental reverse search (Ctrl-R).
type searchState struct {
	query []byte

	// entryIndex/anchor mark where in the history the next search step
	// should scan backward from.
	entryIndex int
	anchor     int

	failed   bool
	matchLen int // portion of query confirmed by the last successful match

	origPos   int
	origIndex int
}

func (h *history) newSearch(b *buffer) *searchState {
	// Mirror the in-progress line into its slot before the search starts
	// jumping between entries, so Ctrl-G can restore it and origPos stays
	// a valid cursor for the restored contents.
	h.setSlot(h.index, b.String())
	return &searchState{
		entryIndex: h.index,
		anchor:     b.pos,
		origPos:    b.pos,
		origIndex:  h.index,
	}
}

// renderPrompt builds the "(reverse-i-search `<match>') " overlay prompt
// refresh.go substitutes for the real prompt while a search is active,
// underlining the portion of the query confirmed by the last successful
// match.
func (s *searchState) renderPrompt() string {
	n := s.matchLen
	if n > len(s.query) {
		n = len(s.query)
	}
	var b strings.Builder
	b.WriteByte('(')
	if s.failed {
		b.WriteString("failed ")
	}
	b.WriteString("reverse-i-search `\x1b[4m")
	b.Write(s.query[:n])
	b.WriteString("\x1b[24m")
	b.Write(s.query[n:])
	b.WriteString("') ")
	return b.String()
}

// step advances the search by appending add to the query (if non-empty), or
// re-anchors the scan position on a repeated Ctrl-R, then rescans: starting
// from (entryIndex, anchor), walk older entries looking for the last
// occurrence of the query at a byte position <= the scan anchor.
func (s *searchState) step(h *history, add []byte, repeat bool) (entry int, pos int, ok bool) {
	i, j := s.entryIndex, s.anchor

	switch {
	case len(add) > 0:
		s.query = append(s.query, add...)
	case repeat:
		if j > 0 {
			j--
		} else if i+1 < h.len() {
			i++
			j = len(h.slot(i))
		}
	}

	s.failed = true
	for i < h.len() {
		entryStr := h.slot(i)
		scanLen := j + len(s.query)
		if scanLen > len(entryStr) {
			scanLen = len(entryStr)
		}
		if idx := strings.LastIndex(entryStr[:scanLen], string(s.query)); idx >= 0 {
			// Anchor the next scan on the match position itself, not the
			// scan boundary j: a repeated Ctrl-R decrements from where the
			// match was found, so it can step to an earlier occurrence
			// within the same entry before moving on to an older one.
			s.entryIndex, s.anchor = i, idx
			s.failed = false
			s.matchLen = len(s.query)
			return i, idx, true
		}
		i++
		j = maxLineBytes
	}
	// On a miss, leave entryIndex/anchor at the last successful match so
	// shortening or retyping the query can pick the scan back up from
	// there instead of being stuck past the end of history.
	return 0, 0, false
}

// backspace shortens the query by one byte (CTRL-H / DEL during search).
func (s *searchState) backspace() {
	if len(s.query) > 0 {
		s.query = s.query[:len(s.query)-1]
		if s.matchLen > len(s.query) {
			s.matchLen = len(s.query)
		}
	}
}
