// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package quarrel

// CommandInput is a cursor over the tokenized input line. Parsers consume
// tokens by advancing the cursor; the cursor is shared across every parser
// taking part in a single match, so a parser that consumes three tokens
// leaves the next parser positioned after them.
//
// A CommandInput is created fresh for every match or suggestion pass and is
// never shared between invocations.
type CommandInput struct {
	tokens []string
	pos    int
}

// NewInput wraps an already-tokenized line.
func NewInput(tokens []string) *CommandInput {
	return &CommandInput{tokens: tokens}
}

// Peek returns the next token without consuming it.
func (in *CommandInput) Peek() (string, bool) {
	if in.pos >= len(in.tokens) {
		return "", false
	}
	return in.tokens[in.pos], true
}

// Read consumes and returns the next token.
func (in *CommandInput) Read() (string, bool) {
	if in.pos >= len(in.tokens) {
		return "", false
	}
	tok := in.tokens[in.pos]
	in.pos++
	return tok, true
}

// Remaining reports how many tokens have not been consumed yet.
func (in *CommandInput) Remaining() int {
	return len(in.tokens) - in.pos
}

// IsEmpty reports whether every token has been consumed.
func (in *CommandInput) IsEmpty() bool {
	return in.pos >= len(in.tokens)
}

// Rest returns the unconsumed tokens without advancing the cursor.
func (in *CommandInput) Rest() []string {
	rest := make([]string, in.Remaining())
	copy(rest, in.tokens[in.pos:])
	return rest
}

// Consumed returns the tokens read so far, in order.
func (in *CommandInput) Consumed() []string {
	consumed := make([]string, in.pos)
	copy(consumed, in.tokens[:in.pos])
	return consumed
}
