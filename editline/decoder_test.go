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
	"bytes"
	"io"
	"testing"
)

// decoderTests exercises the decoder's phase transitions one
// escape-sequence family at a time.
var decoderTests = []struct {
	desc string
	in   string
	want []string
}{
	{"ascii run", "abc", []string{"a", "b", "c"}},
	{"control byte", "\x01", []string{"\x01"}},
	{"utf8 two byte", "é", []string{"é"}},
	{"utf8 three byte", "中", []string{"中"}},
	{"utf8 stray continuation resyncs", "\x80a", []string{"a"}},
	{"utf8 truncated by ascii resyncs", "\xC3a", []string{"a"}},
	{"esc only then ascii", "\x1bx", []string{"\x1bx"}},
	{"esc mashing collapses to single esc", "\x1b\x1b\x1bx", []string{"\x1b", "x"}},
	{"esc esc control completes chord", "\x1b\x1b\x01", []string{"\x1b\x1b\x01"}},
	{"esc backslash completes as meta chord", "\x1b\\a", []string{"\x1b\\", "a"}},
	{"csi arrow", "\x1b[A", []string{"\x1b[A"}},
	{"csi with parameter", "\x1b[3~", []string{"\x1b[3~"}},
	{"ss3", "\x1bOP", []string{"\x1bOP"}},
	{"nf sequence", "\x1b(0", []string{"\x1b(0"}},
	{"osc terminated by bel", "\x1b]0;title\x07", []string{"\x1b]0;title\x07"}},
	{"dcs terminated by esc backslash", "\x1bPfoo\x1b\\", []string{"\x1bPfoo\x1b\\"}},
	{"c1 csi opens a control sequence", "\xc2\x9b3~", []string{"\xc2\x9b3~"}},
	{"c1 ss2 takes one byte", "\xc2\x8eA", []string{"\xc2\x8eA"}},
	{"c1 osc terminated by bel", "\xc2\x9dtitle\x07", []string{"\xc2\x9dtitle\x07"}},
	{"c1 text stays text", "\xc2\xa1", []string{"\xc2\xa1"}},
}

func TestDecoderNext(t *testing.T) {
	for _, tt := range decoderTests {
		t.Run(tt.desc, func(t *testing.T) {
			d := newDecoder(bufio.NewReader(bytes.NewReader([]byte(tt.in))))
			var got []string
			for {
				keystroke, err := d.Next()
				if err != nil {
					if err == ErrEndOfInput {
						break
					}
					t.Fatalf("Next() error = %v", err)
				}
				got = append(got, keystroke)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("keystroke[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecoderEOFMidSequence(t *testing.T) {
	d := newDecoder(bufio.NewReader(bytes.NewReader([]byte("\x1b["))))
	if _, err := d.Next(); err != ErrIllegalSequence {
		t.Fatalf("Next() error = %v, want ErrIllegalSequence", err)
	}
}

func TestDecoderEOFAtBoundary(t *testing.T) {
	d := newDecoder(bufio.NewReader(bytes.NewReader(nil)))
	if _, err := d.Next(); err != ErrEndOfInput {
		t.Fatalf("Next() error = %v, want ErrEndOfInput", err)
	}
}

func TestDecoderReadError(t *testing.T) {
	pr, pw := io.Pipe()
	wantErr := io.ErrClosedPipe
	pw.CloseWithError(wantErr)
	d := newDecoder(bufio.NewReader(pr))
	if _, err := d.Next(); err != wantErr {
		t.Fatalf("Next() error = %v, want %v", err, wantErr)
	}
}
