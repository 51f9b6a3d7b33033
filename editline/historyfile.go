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
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultHistoryPath returns a per-user path for an application's history
// file, e.g. "~/.myapp_history". It consults $HOME first, then the
// Windows-style $HOMEDRIVE/$HOMEPATH pair, and falls back to the current
// directory when neither is set.
func DefaultHistoryPath(app string) string {
	dir := os.Getenv("HOME")
	if dir == "" {
		dir = os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "."+app+"_history")
}

// SaveHistory writes the history store to path as newline-delimited
// UTF-8, one entry per line. The file is created with permissions 0600 so
// a history holding secrets never becomes group- or world-readable.
func (e *Editor) SaveHistory(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("editline: save history: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := e.hist.len() - 1; i >= 0; i-- {
		line := e.hist.slot(i)
		if strings.ContainsAny(line, "\r\n") {
			line = strings.Map(func(r rune) rune {
				if r == '\r' || r == '\n' {
					return ' '
				}
				return r
			}, line)
		}
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

// LoadHistory appends newline-delimited history entries from path to the
// in-memory history. A missing file just means no history yet, not an
// error; blank lines are skipped, trailing CRs stripped, and entries
// beyond the history bound are dropped oldest-first.
func (e *Editor) LoadHistory(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("editline: load history: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, maxLineBytes), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		// add() dedups against the newest retained entry and enforces the
		// history bound, so a file with adjacent duplicates or more than
		// historyMax lines loads the same way it would have been typed.
		e.hist.add(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("editline: load history: %w", err)
	}
	return nil
}
