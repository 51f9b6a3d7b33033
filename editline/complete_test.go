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

import "testing"

func threeCandidates(line string, out *Completions) {
	out.Add("alpha")
	out.Add("beta")
	out.Add("gamma")
}

func TestCompleteLineCyclesAndWraps(t *testing.T) {
	e := newTestEditor("al", 2)
	e.completionCallback = threeCandidates

	cs := e.completeLine(nil)
	if cs == nil {
		t.Fatal("completeLine should have started a completion cycle")
	}
	if got, want := e.buf.String(), "alpha"; got != want {
		t.Fatalf("buf after first Tab = %q, want %q", got, want)
	}

	cs = e.completeLine(cs)
	if got, want := e.buf.String(), "beta"; got != want {
		t.Fatalf("buf after second Tab = %q, want %q", got, want)
	}

	cs = e.completeLine(cs)
	if got, want := e.buf.String(), "gamma"; got != want {
		t.Fatalf("buf after third Tab = %q, want %q", got, want)
	}

	// One Tab past the last candidate restores the original line and
	// ends the cycle.
	cs = e.completeLine(cs)
	if cs != nil {
		t.Fatal("completeLine should have ended the cycle")
	}
	if got, want := e.buf.String(), "al"; got != want {
		t.Fatalf("buf after wrap = %q, want original %q", got, want)
	}
}

func TestCompleteLineNoCallbackIsNoOp(t *testing.T) {
	e := newTestEditor("al", 2)
	if cs := e.completeLine(nil); cs != nil {
		t.Fatal("completeLine without a callback should return nil")
	}
	if got := e.buf.String(); got != "al" {
		t.Fatalf("buf = %q, want unchanged %q", got, "al")
	}
}

func TestCompleteLineNoCandidatesIsNoOp(t *testing.T) {
	e := newTestEditor("zz", 2)
	e.completionCallback = threeCandidates // none of these match "zz" in spirit, but the callback itself decides
	e.completionCallback = func(line string, out *Completions) {}
	if cs := e.completeLine(nil); cs != nil {
		t.Fatal("completeLine should return nil when the callback adds nothing")
	}
}

func TestCancelCompletionRestoresLine(t *testing.T) {
	e := newTestEditor("al", 2)
	e.completionCallback = threeCandidates

	cs := e.completeLine(nil)
	if got := e.buf.String(); got != "alpha" {
		t.Fatalf("buf after Tab = %q, want %q", got, "alpha")
	}
	e.cancelCompletion(cs)
	if got, want := e.buf.String(), "al"; got != want {
		t.Fatalf("buf after cancel = %q, want %q", got, want)
	}
	if e.buf.pos != 2 {
		t.Fatalf("pos after cancel = %d, want 2", e.buf.pos)
	}
}
