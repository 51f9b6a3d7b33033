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
	"io"
	"os"
	"strings"
	"testing"
)

func TestActivePromptSwitchesDuringSearch(t *testing.T) {
	e := &Editor{buf: newBuffer(), hist: newHistory(), prompt: "> "}
	if got := e.activePrompt(); got != "> " {
		t.Fatalf("activePrompt() = %q, want %q", got, "> ")
	}

	e.hist.add("echo hi")
	e.hist.beginEditing()
	e.search = e.hist.newSearch(e.buf)
	e.search.step(e.hist, []byte("echo"), false)

	if got := e.activePrompt(); got == "> " {
		t.Fatal("activePrompt() should return the search overlay while a search is active")
	}
}

func TestRefreshSingleLineWritesPromptAndLine(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	e := &Editor{buf: newBuffer(), hist: newHistory(), out: w, prompt: "> "}
	e.buf.setString("hello")

	captured := make(chan string, 1)
	go func() {
		buf := make([]byte, 4096)
		n, _ := r.Read(buf)
		captured <- string(buf[:n])
	}()

	if err := e.refreshSingleLine(80); err != nil {
		t.Fatalf("refreshSingleLine: %v", err)
	}
	w.Close()

	out := <-captured
	if !strings.Contains(out, "> ") || !strings.Contains(out, "hello") {
		t.Fatalf("refresh output = %q, want it to contain prompt and line", out)
	}
}

// captureRefresh runs fn against an Editor writing to a temp file and
// returns the bytes the call emitted.
func captureRefresh(t *testing.T, e *Editor, fn func() error) string {
	t.Helper()
	start, err := e.out.Seek(0, io.SeekCurrent)
	if err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if err := fn(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	end, err := e.out.Seek(0, io.SeekCurrent)
	if err != nil {
		t.Fatalf("Seek: %v", err)
	}
	buf := make([]byte, end-start)
	if _, err := e.out.ReadAt(buf, start); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	return string(buf)
}

func newFileEditor(t *testing.T, multiLine bool) *Editor {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "refresh")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return &Editor{buf: newBuffer(), hist: newHistory(), out: f, prompt: "> ", multiLine: multiLine}
}

// Two refreshes with no state change in between must emit byte-identical
// output.
func TestRefreshSingleLineIdempotent(t *testing.T) {
	e := newFileEditor(t, false)
	e.buf.setString("hello world")

	first := captureRefresh(t, e, func() error { return e.refreshSingleLine(80) })
	second := captureRefresh(t, e, func() error { return e.refreshSingleLine(80) })
	if first != second {
		t.Fatalf("refresh not idempotent:\nfirst  = %q\nsecond = %q", first, second)
	}
}

func TestRefreshMultiLineIdempotent(t *testing.T) {
	e := newFileEditor(t, true)
	e.buf.setString("a line long enough to wrap at least once on a narrow screen")

	// The first draw has no previous block to erase, so let it settle
	// before comparing steady-state repaints.
	captureRefresh(t, e, func() error { return e.refreshMultiLine(20) })
	first := captureRefresh(t, e, func() error { return e.refreshMultiLine(20) })
	second := captureRefresh(t, e, func() error { return e.refreshMultiLine(20) })
	if first != second {
		t.Fatalf("refresh not idempotent:\nfirst  = %q\nsecond = %q", first, second)
	}
}

func TestRefreshMultiLineFirstDrawClearsNothing(t *testing.T) {
	e := newFileEditor(t, true)
	e.buf.setString("hi")

	out := captureRefresh(t, e, func() error { return e.refreshMultiLine(80) })
	if strings.Contains(out, "\x1b[1A") || strings.Contains(out, "B\r") {
		t.Fatalf("first draw should not move through a previous block, got %q", out)
	}
	if !strings.HasPrefix(out, "\r\x1b[0K> hi") {
		t.Fatalf("first draw = %q, want it to start by clearing and drawing the prompt row", out)
	}
}

func TestDisplayLineMasksInMaskMode(t *testing.T) {
	e := &Editor{buf: newBuffer(), hist: newHistory(), maskMode: true}
	e.buf.setString("sécret")
	got := e.displayLine()
	want := "******" // one '*' per code point, not per byte
	if got != want {
		t.Fatalf("displayLine() = %q, want %q", got, want)
	}
}
