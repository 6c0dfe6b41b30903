// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package quarrel

import (
	"fmt"
	"strings"
)

// Flag declares one named, order-independent trailing argument. A flag with
// a parser consumes a value (or several tokens, for compound parsers); a
// flag without one records presence only. Flags are immutable after
// construction; the With* methods return copies.
type Flag struct {
	name        string
	aliases     []string
	parser      Parser
	permission  string
	repeatable  bool
	description string
}

// NewFlag declares a presence flag. Aliases must be single characters; a
// longer alias is a programming bug and panics.
func NewFlag(name string, aliases ...string) *Flag {
	for _, alias := range aliases {
		if len([]rune(alias)) != 1 {
			panic(fmt.Sprintf("flag %q: alias %q must be a single character", name, alias))
		}
	}
	return &Flag{name: name, aliases: aliases}
}

// NewValueFlag declares a flag whose value is parsed by the given parser.
func NewValueFlag(name string, parser Parser, aliases ...string) *Flag {
	f := NewFlag(name, aliases...)
	f.parser = parser
	return f
}

// AsRepeatable returns a copy of the flag that may appear more than once.
func (f *Flag) AsRepeatable() *Flag {
	cp := *f
	cp.repeatable = true
	return &cp
}

// WithPermission returns a copy of the flag gated by a permission
// expression, evaluated per flag during parsing.
func (f *Flag) WithPermission(permission string) *Flag {
	cp := *f
	cp.permission = permission
	return &cp
}

// WithDescription returns a copy of the flag with a description.
func (f *Flag) WithDescription(description string) *Flag {
	cp := *f
	cp.description = description
	return &cp
}

func (f *Flag) Name() string        { return f.name }
func (f *Flag) Permission() string  { return f.permission }
func (f *Flag) Repeatable() bool    { return f.repeatable }
func (f *Flag) Description() string { return f.description }

// RequiresValue reports whether the flag consumes a value.
func (f *Flag) RequiresValue() bool { return f.parser != nil }

// Aliases returns the flag's single-character aliases.
func (f *Flag) Aliases() []string {
	out := make([]string, len(f.aliases))
	copy(out, f.aliases)
	return out
}

// flagParser consumes the trailing flag section of the input. Parsing ends
// successfully, cursor untouched, at the first token that is not
// flag-shaped; flags greedily consume only -/-- tokens and their values.
type flagParser struct {
	flags []*Flag
}

func (p *flagParser) Parse(ctx *Context, in *CommandInput) (any, error) {
	for {
		tok, ok := in.Peek()
		if !ok || !isFlagToken(tok) {
			return ctx.Flags(), nil
		}
		in.Read()

		if name, isLong := strings.CutPrefix(tok, "--"); isLong {
			flag := p.byName(name)
			if flag == nil {
				return nil, &FlagParseError{Reason: FlagUnknown, Token: tok}
			}
			if err := p.recordFlag(ctx, in, flag, tok); err != nil {
				return nil, err
			}
			continue
		}

		chars := []rune(strings.TrimPrefix(tok, "-"))
		if len(chars) == 0 {
			return nil, &FlagParseError{Reason: FlagNoFlagStarted, Token: tok}
		}
		if len(chars) == 1 {
			flag := p.byAlias(chars[0])
			if flag == nil {
				return nil, &FlagParseError{Reason: FlagUnknown, Token: tok}
			}
			if err := p.recordFlag(ctx, in, flag, tok); err != nil {
				return nil, err
			}
			continue
		}

		// Combined short group: every character resolves independently as a
		// presence flag alias. Value-bearing flags cannot be combined.
		resolved := 0
		for _, ch := range chars {
			flag := p.byAlias(ch)
			if flag == nil {
				continue
			}
			if flag.RequiresValue() {
				return nil, &FlagParseError{Reason: FlagUnknown, Token: "-" + string(ch)}
			}
			if err := p.recordPresence(ctx, flag); err != nil {
				return nil, err
			}
			resolved++
		}
		if resolved == 0 {
			return nil, &FlagParseError{Reason: FlagNoFlagStarted, Token: tok}
		}
	}
}

// recordFlag applies duplicate and permission checks, then records the flag,
// delegating to its own parser when it carries a value.
func (p *flagParser) recordFlag(ctx *Context, in *CommandInput, flag *Flag, tok string) error {
	if ctx.Flags().IsPresent(flag.name) && !flag.repeatable {
		return &FlagParseError{Reason: FlagDuplicate, Flag: flag.name, Token: tok}
	}
	if !ctx.HasPermission(flag.permission) {
		return &FlagParseError{Reason: FlagNoPermission, Flag: flag.name, Token: tok}
	}
	if !flag.RequiresValue() {
		ctx.Flags().record(flag.name, nil, false)
		return nil
	}
	if in.IsEmpty() {
		return &FlagParseError{Reason: FlagMissingArgument, Flag: flag.name, Token: tok}
	}
	value, err := flag.parser.Parse(ctx, in)
	if err != nil {
		return err
	}
	ctx.Flags().record(flag.name, value, true)
	return nil
}

func (p *flagParser) recordPresence(ctx *Context, flag *Flag) error {
	if ctx.Flags().IsPresent(flag.name) && !flag.repeatable {
		return &FlagParseError{Reason: FlagDuplicate, Flag: flag.name}
	}
	if !ctx.HasPermission(flag.permission) {
		return &FlagParseError{Reason: FlagNoPermission, Flag: flag.name}
	}
	ctx.Flags().record(flag.name, nil, false)
	return nil
}

// Suggestions distinguishes three states: no flag being typed (offer all
// unused forms, including extending a combined short group), mid value for a
// known flag (delegate to its parser), otherwise reset and retry.
func (p *flagParser) Suggestions(ctx *Context, partial string) []Suggestion {
	if ctx.lastFlag != "" {
		if flag := p.byName(ctx.lastFlag); flag != nil && flag.RequiresValue() {
			return flag.parser.Suggestions(ctx, partial)
		}
		ctx.lastFlag = ""
	}

	if isCombinedShortPartial(partial) {
		return p.combinedSuggestions(ctx, partial)
	}

	var out []Suggestion
	for _, flag := range p.flags {
		if !p.offerable(ctx, flag) {
			continue
		}
		long := "--" + flag.name
		if hasFoldPrefix(long, partial) {
			out = append(out, Suggest(long).WithTooltip(flag.description))
		}
		for _, alias := range flag.aliases {
			short := "-" + alias
			if hasFoldPrefix(short, partial) {
				out = append(out, Suggest(short).WithTooltip(flag.description))
			}
		}
	}
	return out
}

// combinedSuggestions extends a -xy style group with further unused
// presence aliases.
func (p *flagParser) combinedSuggestions(ctx *Context, partial string) []Suggestion {
	used := map[rune]bool{}
	for _, ch := range partial[1:] {
		flag := p.byAlias(ch)
		if flag == nil || flag.RequiresValue() {
			return nil
		}
		used[ch] = true
	}
	var out []Suggestion
	for _, flag := range p.flags {
		if flag.RequiresValue() || !p.offerable(ctx, flag) {
			continue
		}
		for _, alias := range flag.aliases {
			ch := []rune(alias)[0]
			if !used[ch] {
				out = append(out, Suggest(partial+alias).WithTooltip(flag.description))
			}
		}
	}
	return out
}

func (p *flagParser) offerable(ctx *Context, flag *Flag) bool {
	if !ctx.HasPermission(flag.permission) {
		return false
	}
	if ctx.Flags().IsPresent(flag.name) && !flag.repeatable {
		return false
	}
	return true
}

// consumeForSuggestions advances over the already-complete flag tokens of a
// suggestion pass, recording presence for duplicate filtering and leaving
// ctx.lastFlag set when the final token opened a value flag. Best effort:
// malformed tokens reset the state instead of failing.
func (p *flagParser) consumeForSuggestions(ctx *Context, in *CommandInput) {
	for {
		tok, ok := in.Read()
		if !ok {
			return
		}
		ctx.lastFlag = ""
		if !isFlagToken(tok) {
			continue
		}

		var flag *Flag
		if name, isLong := strings.CutPrefix(tok, "--"); isLong {
			flag = p.byName(name)
		} else if chars := []rune(tok[1:]); len(chars) == 1 {
			flag = p.byAlias(chars[0])
		} else {
			for _, ch := range chars {
				if f := p.byAlias(ch); f != nil && !f.RequiresValue() {
					ctx.Flags().record(f.name, nil, false)
				}
			}
			continue
		}
		if flag == nil {
			continue
		}
		if !flag.RequiresValue() {
			ctx.Flags().record(flag.name, nil, false)
			continue
		}
		if in.IsEmpty() {
			// The value is the token being typed right now.
			ctx.lastFlag = flag.name
			return
		}
		if _, err := flag.parser.Parse(ctx, in); err == nil {
			ctx.Flags().record(flag.name, nil, false)
		}
	}
}

func (p *flagParser) byName(name string) *Flag {
	for _, flag := range p.flags {
		if strings.EqualFold(flag.name, name) {
			return flag
		}
	}
	return nil
}

func (p *flagParser) byAlias(ch rune) *Flag {
	for _, flag := range p.flags {
		for _, alias := range flag.aliases {
			if strings.EqualFold(string(ch), alias) {
				return flag
			}
		}
	}
	return nil
}

func isFlagToken(tok string) bool {
	return strings.HasPrefix(tok, "-")
}

// isCombinedShortPartial reports whether a partial token looks like -xy:
// short-dash prefixed, more than one trailing character, not a long flag.
func isCombinedShortPartial(partial string) bool {
	return strings.HasPrefix(partial, "-") &&
		!strings.HasPrefix(partial, "--") &&
		len([]rune(partial)) > 2
}
