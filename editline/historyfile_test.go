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
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	e := &Editor{hist: newHistory()}
	e.hist.add("one")
	e.hist.add("two")
	if err := e.SaveHistory(path); err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}

	e2 := &Editor{hist: newHistory()}
	if err := e2.LoadHistory(path); err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if got, want := e2.hist.len(), 2; got != want {
		t.Fatalf("history len after load = %d, want %d", got, want)
	}
	if got := e2.hist.slot(0); got != "two" {
		t.Fatalf("newest entry = %q, want %q", got, "two")
	}
	if got := e2.hist.slot(1); got != "one" {
		t.Fatalf("oldest entry = %q, want %q", got, "one")
	}
}

func TestLoadHistoryMissingFileIsNotAnError(t *testing.T) {
	e := &Editor{hist: newHistory()}
	if err := e.LoadHistory(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Fatalf("LoadHistory on a missing file = %v, want nil", err)
	}
	if got := e.hist.len(); got != 0 {
		t.Fatalf("history len = %d, want 0", got)
	}
}

func TestLoadHistorySkipsBlanksAndStripsCR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(path, []byte("one\r\n\n\ntwo\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	e := &Editor{hist: newHistory()}
	if err := e.LoadHistory(path); err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if got, want := e.hist.len(), 2; got != want {
		t.Fatalf("history len = %d, want %d (blank lines skipped)", got, want)
	}
	if got := e.hist.slot(1); got != "one" {
		t.Fatalf("oldest entry = %q, want %q (trailing CR stripped)", got, "one")
	}
}

func TestLoadHistoryDedupsAdjacentLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(path, []byte("x\nx\ny\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	e := &Editor{hist: newHistory()}
	if err := e.LoadHistory(path); err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if got, want := e.hist.len(), 2; got != want {
		t.Fatalf("history len = %d, want %d (adjacent duplicate collapsed)", got, want)
	}
}

func TestDefaultHistoryPath(t *testing.T) {
	t.Setenv("HOME", "/home/someone")
	if got, want := DefaultHistoryPath("demo"), filepath.Join("/home/someone", ".demo_history"); got != want {
		t.Fatalf("DefaultHistoryPath = %q, want %q", got, want)
	}

	t.Setenv("HOME", "")
	t.Setenv("HOMEDRIVE", "C:")
	t.Setenv("HOMEPATH", "/Users/someone")
	if got, want := DefaultHistoryPath("demo"), filepath.Join("C:/Users/someone", ".demo_history"); got != want {
		t.Fatalf("DefaultHistoryPath = %q, want %q", got, want)
	}
}
