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

// editline-demo
//
// It is a basic example of interactive line editing with the "editline"
// package. It prompts, reads a line with full emacs-style editing, history,
// completion and hints, and echoes it back.
//
// Try typing a line and then hitting the up key on the next line. Try
// Ctrl-R to search history, Tab to complete "help"/"history"/"quit", and
// watch the magenta hint as you type "quit".
//
// Press ^C, ^D, or type "quit" to exit.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/kylelemons/editline/editline"
)

var (
	multiLine   = flag.Bool("multiline", false, "Use multi-line rendering instead of horizontal scrolling")
	historyFile = flag.String("history", "", "Load/save history to this file")
)

func main() {
	flag.Parse()

	var opts []editline.Option
	if *multiLine {
		opts = append(opts, editline.WithMultiLine())
	}
	ed := editline.New(os.Stdin, os.Stdout, opts...)
	defer ed.Close()

	ed.SetCompletionCallback(complete)
	ed.SetHintsCallback(hint)

	if *historyFile != "" {
		if err := ed.LoadHistory(*historyFile); err != nil {
			log.Printf("history: %s", err)
		}
	}

	for {
		line, err := ed.ReadLine("> ")
		if err != nil {
			fmt.Println("Goodbye!")
			return
		}

		switch strings.TrimSpace(line) {
		case "quit":
			fmt.Println("Goodbye!")
			return
		case "":
			continue
		case "help":
			fmt.Println("commands: help, history, quit")
			continue
		case "history":
			fmt.Printf("%d entries in history\n", ed.HistoryLen())
			continue
		}

		ed.AddHistory(line)
		fmt.Printf("read: %q\n", line)

		if *historyFile != "" {
			if err := ed.SaveHistory(*historyFile); err != nil {
				log.Printf("history: %s", err)
			}
		}
	}
}

// complete proposes the three known commands as completions once the user
// has typed a matching prefix.
func complete(line string, completions *editline.Completions) {
	for _, cmd := range []string{"help", "history", "quit"} {
		if strings.HasPrefix(cmd, line) {
			completions.Add(cmd)
		}
	}
}

// hint shows the rest of "quit" in magenta once the user starts typing it.
func hint(line string) (string, editline.ANSIColor, bool) {
	if line != "" && strings.HasPrefix("quit", line) && line != "quit" {
		return strings.TrimPrefix("quit", line), 35, false
	}
	return "", 0, false
}
