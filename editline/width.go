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
	"unicode"

	"github.com/mattn/go-runewidth"
)

// isControl reports whether c is a C0 or C1 control character.
func isControl(c rune) bool {
	return (c >= 0x00 && c <= 0x1F) || (c >= 0x7F && c <= 0x9F)
}

// isSeparator reports whether c should end a "word" for the purposes of
// word-motion, word-kill and word-transform commands. Letters, digits and
// glyph-like symbols are not separators; everything else (including
// punctuation, whitespace and control characters) is.
func isSeparator(c rune) bool {
	if unicode.IsLetter(c) || unicode.IsDigit(c) {
		return false
	}
	if unicode.IsSymbol(c) {
		return false
	}
	return true
}

func notSeparator(c rune) bool {
	return !isSeparator(c)
}

// monospaceWidth returns the number of terminal columns code point c
// occupies: 0 for control characters, otherwise what go-runewidth reports:
// 2 for East-Asian wide/fullwidth characters, 0 for zero-width code points
// such as combining marks, 1 for the rest.
func monospaceWidth(c rune) int {
	if isControl(c) {
		return 0
	}
	return runewidth.RuneWidth(c)
}

// stringWidth sums monospaceWidth over every rune in s.
func stringWidth(s string) int {
	width := 0
	for _, r := range s {
		width += monospaceWidth(r)
	}
	return width
}

func toLower(c rune) rune { return unicode.ToLower(c) }
func toUpper(c rune) rune { return unicode.ToUpper(c) }

// capitalizeState uppercases the first code point it sees and passes the
// rest through unchanged; callers construct a fresh one per word.
type capitalizeState struct {
	done bool
}

func (c *capitalizeState) transform(r rune) rune {
	if c.done {
		return r
	}
	c.done = true
	return toUpper(r)
}
