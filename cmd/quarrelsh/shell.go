// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"github.com/quarrel-go/quarrel"
)

// errExit signals a clean shutdown from the quit command.
var errExit = errors.New("exit")

type shell struct {
	dispatcher *quarrel.Dispatcher
	cfg        config
	log        zerolog.Logger
	sender     *consoleSender

	macroMu sync.RWMutex
	macros  map[string]string
}

func newShell(dispatcher *quarrel.Dispatcher, cfg config, log zerolog.Logger) *shell {
	return &shell{
		dispatcher: dispatcher,
		cfg:        cfg,
		log:        log,
		sender:     &consoleSender{name: "console", denied: map[string]bool{}},
		macros:     map[string]string{},
	}
}

func (s *shell) run() {
	fmt.Println("quarrelsh - quarrel demonstration shell")
	fmt.Println("Type 'help' for available commands or 'quit' to exit")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            s.cfg.Prompt,
		HistoryFile:       s.cfg.HistoryFile,
		HistoryLimit:      1000,
		AutoComplete:      &dispatchCompleter{dispatcher: s.dispatcher, sender: s.sender},
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Printf("Failed to create readline instance, falling back to basic input: %v\n", err)
		s.runBasic()
		return
	}
	defer func() {
		_ = rl.Close()
	}()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					fmt.Println("Use 'quit' or 'exit' to exit")
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}
		if s.dispatch(line) {
			return
		}
	}
}

// runBasic is the fallback loop without history or completion.
func (s *shell) runBasic() {
	fmt.Println("Running in basic mode (no history/completion)")
	for {
		fmt.Print(s.cfg.Prompt)
		var line string
		if _, err := fmt.Scanln(&line); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			continue
		}
		if s.dispatch(line) {
			return
		}
	}
}

// dispatch expands macros and executes one input line, reporting whether the
// shell should exit.
func (s *shell) dispatch(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	line = s.expandMacro(line)

	_, err := s.dispatcher.Execute(s.sender, line)
	if err != nil {
		if errors.Is(err, errExit) {
			fmt.Println("Goodbye!")
			return true
		}
		printError(err)
	}
	return false
}

// expandMacro replaces a leading macro name with its expansion.
func (s *shell) expandMacro(line string) string {
	name, rest, _ := strings.Cut(line, " ")
	s.macroMu.RLock()
	expansion, ok := s.macros[name]
	s.macroMu.RUnlock()
	if !ok {
		return line
	}
	if rest == "" {
		return expansion
	}
	return expansion + " " + rest
}
