// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package quarrel

import (
	"fmt"
	"strings"
)

// Parser turns tokens into a typed value. Parse consumes a parser-specific
// number of tokens from the shared cursor (usually one); on success the
// cursor sits after the consumed tokens, on failure the cursor position is
// unspecified and the caller must not continue matching past the failure.
//
// Suggestions produces completion candidates for the token currently being
// typed. It must not consume from a live cursor and must be safe to call on
// partial input that will never be executed.
type Parser interface {
	Parse(ctx *Context, in *CommandInput) (any, error)
	Suggestions(ctx *Context, partial string) []Suggestion
}

// ArgumentCounter is an optional Parser capability. Parsers that always
// consume a fixed number of tokens (a 3D coordinate, a key/value pair)
// declare it so the tree can check remaining input before attempting a
// parse, and so the suggestion walk can tell when the cursor sits inside
// a multi-token argument.
type ArgumentCounter interface {
	ArgumentCount() int
}

// argumentCount returns the fixed token count a parser declares, or 1.
func argumentCount(p Parser) int {
	if c, ok := p.(ArgumentCounter); ok {
		if n := c.ArgumentCount(); n > 0 {
			return n
		}
	}
	return 1
}

// Suggestion is a candidate completion for the token under the cursor.
type Suggestion struct {
	Text    string
	Tooltip string
}

// Suggest builds a plain suggestion.
func Suggest(text string) Suggestion {
	return Suggestion{Text: text}
}

// WithTooltip returns a copy of the suggestion carrying a tooltip.
func (s Suggestion) WithTooltip(tooltip string) Suggestion {
	s.Tooltip = tooltip
	return s
}

// literalParser is the degenerate parser backing literal components: it
// succeeds only when the next token case-insensitively equals the literal's
// name or one of its aliases, consuming exactly one token. Its value is the
// canonical (declared) name.
type literalParser struct {
	name    string
	aliases []string
}

func (p *literalParser) Parse(_ *Context, in *CommandInput) (any, error) {
	tok, ok := in.Read()
	if !ok {
		return nil, fmt.Errorf("expected %q", p.name)
	}
	if !p.accepts(tok) {
		return nil, fmt.Errorf("expected %q, got %q", p.name, tok)
	}
	return p.name, nil
}

func (p *literalParser) Suggestions(_ *Context, partial string) []Suggestion {
	var out []Suggestion
	for _, candidate := range append([]string{p.name}, p.aliases...) {
		if hasFoldPrefix(candidate, partial) {
			out = append(out, Suggest(candidate))
		}
	}
	return out
}

func (p *literalParser) ArgumentCount() int { return 1 }

func (p *literalParser) accepts(tok string) bool {
	if strings.EqualFold(tok, p.name) {
		return true
	}
	for _, alias := range p.aliases {
		if strings.EqualFold(tok, alias) {
			return true
		}
	}
	return false
}

func hasFoldPrefix(s, prefix string) bool {
	if len(prefix) > len(s) {
		return false
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}
