// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package main

import (
	"strings"

	"github.com/quarrel-go/quarrel"
)

// dispatchCompleter bridges the dispatcher's suggestion surface to
// readline's AutoCompleter contract. readline appends candidates without
// deleting what was typed, so candidates are trimmed to the part after the
// current partial token.
type dispatchCompleter struct {
	dispatcher *quarrel.Dispatcher
	sender     any
}

// Do implements readline.AutoCompleter.
func (c *dispatchCompleter) Do(line []rune, pos int) ([][]rune, int) {
	typed := string(line[:pos])
	suggestions := c.dispatcher.Suggest(c.sender, typed)
	if len(suggestions) == 0 {
		return nil, 0
	}

	partial := currentPartial(typed)
	var out [][]rune
	for _, s := range suggestions {
		if len(partial) >= len(s.Text) {
			continue
		}
		if !strings.EqualFold(s.Text[:len(partial)], partial) {
			continue
		}
		out = append(out, []rune(s.Text[len(partial):]+" "))
	}
	return out, len(partial)
}

// currentPartial returns the token being typed at the end of the line.
func currentPartial(typed string) string {
	if typed == "" || strings.HasSuffix(typed, " ") {
		return ""
	}
	fields := strings.Fields(typed)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
