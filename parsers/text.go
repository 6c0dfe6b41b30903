// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package parsers

import (
	"fmt"
	"strings"

	"github.com/quarrel-go/quarrel"
)

// StringMode selects how much input a string parser consumes.
type StringMode int

const (
	// ModeSingle consumes exactly one token.
	ModeSingle StringMode = iota
	// ModeQuoted consumes one token, or a balanced double-quoted run of
	// tokens when the first token opens with a quote.
	ModeQuoted
	// ModeGreedy consumes the remainder of the input as one string.
	ModeGreedy
)

// StringParser parses string arguments in one of three modes.
type StringParser struct {
	Mode StringMode
}

// String returns a single-token string parser.
func String() *StringParser { return &StringParser{Mode: ModeSingle} }

// QuotedString returns a parser accepting "multi word" quoted strings.
func QuotedString() *StringParser { return &StringParser{Mode: ModeQuoted} }

// GreedyString returns a parser consuming the rest of the line. It only
// makes sense as the final value component of a chain.
func GreedyString() *StringParser { return &StringParser{Mode: ModeGreedy} }

func (p *StringParser) Parse(_ *quarrel.Context, in *quarrel.CommandInput) (any, error) {
	switch p.Mode {
	case ModeGreedy:
		rest := in.Rest()
		if len(rest) == 0 {
			return nil, fmt.Errorf("expected text")
		}
		for !in.IsEmpty() {
			in.Read()
		}
		return strings.Join(rest, " "), nil
	case ModeQuoted:
		return parseQuoted(in)
	default:
		tok, ok := in.Read()
		if !ok {
			return nil, fmt.Errorf("expected a string")
		}
		return tok, nil
	}
}

// parseQuoted consumes a token, stitching further tokens together while a
// leading double quote remains unbalanced. The tokenizer of the dispatcher
// already collapses quoted runs into single tokens; this path covers inputs
// tokenized by plain whitespace splitting.
func parseQuoted(in *quarrel.CommandInput) (any, error) {
	tok, ok := in.Read()
	if !ok {
		return nil, fmt.Errorf("expected a string")
	}
	if !strings.HasPrefix(tok, `"`) {
		return tok, nil
	}
	if len(tok) > 1 && strings.HasSuffix(tok, `"`) {
		return tok[1 : len(tok)-1], nil
	}
	parts := []string{strings.TrimPrefix(tok, `"`)}
	for {
		next, ok := in.Read()
		if !ok {
			return nil, fmt.Errorf("unterminated quoted string")
		}
		if strings.HasSuffix(next, `"`) {
			parts = append(parts, strings.TrimSuffix(next, `"`))
			return strings.Join(parts, " "), nil
		}
		parts = append(parts, next)
	}
}

func (p *StringParser) Suggestions(_ *quarrel.Context, _ string) []quarrel.Suggestion {
	return nil
}

// EnumParser accepts one of a fixed keyword set, case-insensitively.
type EnumParser struct {
	values []string
}

// Enum builds a keyword parser over the given values.
func Enum(values ...string) *EnumParser {
	e := &EnumParser{values: make([]string, len(values))}
	copy(e.values, values)
	return e
}

func (p *EnumParser) Parse(_ *quarrel.Context, in *quarrel.CommandInput) (any, error) {
	tok, ok := in.Read()
	if !ok {
		return nil, fmt.Errorf("expected one of %s", strings.Join(p.values, ", "))
	}
	for _, v := range p.values {
		if strings.EqualFold(tok, v) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%q is not one of %s", tok, strings.Join(p.values, ", "))
}

func (p *EnumParser) Suggestions(_ *quarrel.Context, partial string) []quarrel.Suggestion {
	var out []quarrel.Suggestion
	for _, v := range p.values {
		if len(partial) <= len(v) && strings.EqualFold(v[:len(partial)], partial) {
			out = append(out, quarrel.Suggest(v))
		}
	}
	return out
}

func (p *EnumParser) ArgumentCount() int { return 1 }
