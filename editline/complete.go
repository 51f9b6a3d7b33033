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

// Completions accumulates the candidates a CompletionCallback proposes
// for the line passed to it.
type Completions struct {
	candidates []string
}

// Add appends a completion candidate: a full replacement for the line,
// not just a suffix.
func (c *Completions) Add(s string) { c.candidates = append(c.candidates, s) }

// Len reports the number of candidates collected so far.
func (c *Completions) Len() int { return len(c.candidates) }

// completionState drives Tab-cycling through a single callback
// invocation's results; candidates are not cached across cycles, so each
// fresh Tab press re-invokes the callback.
type completionState struct {
	candidates []string
	index      int
	saved      string // the line as it stood before completion began
	savedPos   int
}

// completeLine runs the completion callback (if any) against the current
// line and, on the first Tab, shows the first candidate; each subsequent
// Tab (while cs is still active) advances to the next one, and one past
// the last candidate restores the original line. Escape while cycling
// also restores the original line; any other key commits the shown
// candidate and lets the main loop re-dispatch that key.
func (e *Editor) completeLine(cs *completionState) *completionState {
	if e.completionCallback == nil {
		return nil
	}
	if cs == nil {
		var out Completions
		e.completionCallback(e.buf.String(), &out)
		if out.Len() == 0 {
			return nil
		}
		cs = &completionState{
			candidates: out.candidates,
			saved:      e.buf.String(),
			savedPos:   e.buf.pos,
		}
	} else {
		cs.index++
	}

	if cs.index >= len(cs.candidates) {
		e.buf.setString(cs.saved)
		e.buf.pos = cs.savedPos
		return nil
	}

	e.buf.setString(cs.candidates[cs.index])
	return cs
}

// cancelCompletion restores the pre-completion line, used when Escape is
// pressed mid-cycle.
func (e *Editor) cancelCompletion(cs *completionState) {
	if cs == nil {
		return
	}
	e.buf.setString(cs.saved)
	e.buf.pos = cs.savedPos
}
