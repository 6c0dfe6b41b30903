// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package quarrel

import (
	"errors"
	"fmt"
)

// CompoundMapper folds the fully parsed sub-values of a compound argument
// into its output value. A mapper that returns an error, or panics, turns
// the whole compound parse into a parse failure; no partial tuple is ever
// exposed.
type CompoundMapper func(sender any, values []any) (any, error)

// CompoundParser sequences a fixed set of sub-parsers into one logical
// argument, all consuming from the same cursor in declared order. A
// sub-failure aborts immediately. Use it for multi-token arguments such as a
// 3D coordinate parsed into a single struct.
type CompoundParser struct {
	names   []string
	parsers []Parser
	mapper  CompoundMapper
}

// NewCompound builds a compound parser from parallel name and parser lists.
// A nil mapper yields the raw []any tuple.
func NewCompound(names []string, parsers []Parser, mapper CompoundMapper) (*CompoundParser, error) {
	if len(names) != len(parsers) {
		return nil, fmt.Errorf("compound: %d names for %d parsers", len(names), len(parsers))
	}
	if len(parsers) == 0 {
		return nil, errors.New("compound: no sub-parsers")
	}
	for i, p := range parsers {
		if p == nil {
			return nil, fmt.Errorf("compound: sub-parser %q is nil", names[i])
		}
	}
	cp := &CompoundParser{
		names:   make([]string, len(names)),
		parsers: make([]Parser, len(parsers)),
		mapper:  mapper,
	}
	copy(cp.names, names)
	copy(cp.parsers, parsers)
	return cp, nil
}

// ArgumentCount sums the fixed token counts of the sub-parsers.
func (p *CompoundParser) ArgumentCount() int {
	total := 0
	for _, sub := range p.parsers {
		total += argumentCount(sub)
	}
	return total
}

func (p *CompoundParser) Parse(ctx *Context, in *CommandInput) (any, error) {
	values := make([]any, 0, len(p.parsers))
	for i, sub := range p.parsers {
		if in.IsEmpty() {
			return nil, fmt.Errorf("missing value for %q", p.names[i])
		}
		v, err := sub.Parse(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.names[i], err)
		}
		values = append(values, v)
	}
	if p.mapper == nil {
		return values, nil
	}
	return p.applyMapper(ctx.Sender(), values)
}

// applyMapper runs the user mapper, recovering panics into parse failures:
// a throwing mapper is a parse-time error, not a program fault.
func (p *CompoundParser) applyMapper(sender any, values []any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("compound mapper panicked: %v", r)
		}
	}()
	return p.mapper(sender, values)
}

// Suggestions routes to the sub-parser the context's current-argument slot
// targets, defaulting to the last sub-parser when no outer loop set it.
func (p *CompoundParser) Suggestions(ctx *Context, partial string) []Suggestion {
	i, ok := ctx.CurrentArgument()
	if !ok || i >= len(p.parsers) {
		i = len(p.parsers) - 1
	}
	return p.parsers[i].Suggestions(ctx, partial)
}
