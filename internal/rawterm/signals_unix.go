//go:build unix

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

package rawterm

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// SignalWatcher delivers terminal-lifecycle signals relevant to a line
// editor: SIGWINCH (size changed, redraw), SIGCONT (resumed from a
// backgrounded stop, raw mode needs re-asserting), and SIGINT/SIGQUIT
// (interrupt the in-progress line).
type SignalWatcher struct {
	ch chan os.Signal
}

// WatchSignals starts relaying SIGWINCH, SIGCONT, SIGINT, and SIGQUIT.
// Call Stop to release the underlying channel registration.
func WatchSignals() *SignalWatcher {
	w := &SignalWatcher{ch: make(chan os.Signal, 4)}
	signal.Notify(w.ch, unix.SIGWINCH, unix.SIGCONT, unix.SIGINT, unix.SIGQUIT)
	return w
}

// C returns the channel signals are delivered on.
func (w *SignalWatcher) C() <-chan os.Signal { return w.ch }

// Stop unregisters the watcher.
func (w *SignalWatcher) Stop() {
	signal.Stop(w.ch)
	close(w.ch)
}

// IsWinch reports whether sig is a terminal-resize notification.
func IsWinch(sig os.Signal) bool { return sig == unix.SIGWINCH }

// IsResume reports whether sig indicates the process was foregrounded
// again after a job-control stop, at which point raw mode must be
// re-asserted (a backgrounding shell may have reset it).
func IsResume(sig os.Signal) bool { return sig == unix.SIGCONT }

// IsInterrupt reports whether sig should abort the in-progress line.
func IsInterrupt(sig os.Signal) bool { return sig == unix.SIGINT || sig == unix.SIGQUIT }

// Reraise restores sig's default disposition and delivers it to the
// current process, so the parent observes the default action (terminate,
// core dump) instead of the editor's temporary handler. Call only after
// the terminal has been restored to cooked mode.
func Reraise(sig os.Signal) {
	signal.Reset(sig)
	if s, ok := sig.(syscall.Signal); ok {
		unix.Kill(unix.Getpid(), unix.Signal(s))
	}
}
