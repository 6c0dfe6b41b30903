// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package quarrel

import "strings"

// ComponentKind classifies a component within a command chain.
type ComponentKind int

const (
	// KindLiteral matches a fixed word (with optional aliases).
	KindLiteral ComponentKind = iota
	// KindValue consumes tokens through a Parser and binds the result.
	KindValue
	// KindFlags consumes the trailing -/-- flag section of the input.
	KindFlags
)

func (k ComponentKind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindValue:
		return "value"
	case KindFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// Component is one named, typed slot in a command's argument chain.
// Components are immutable once built; the With* methods return copies.
//
// For tree-matching purposes a literal's identity is its name plus aliases,
// while a value component's identity is its position: only one value
// component may occupy a given position among siblings, since a token cannot
// satisfy two different value parsers without backtracking.
type Component struct {
	kind        ComponentKind
	name        string
	aliases     []string
	parser      Parser
	required    bool
	defValue    any
	hasDefault  bool
	description string
	permission  string
}

// Literal builds a fixed-text component matched case-insensitively against
// its name or any alias.
func Literal(name string, aliases ...string) Component {
	return Component{
		kind:     KindLiteral,
		name:     name,
		aliases:  aliases,
		parser:   &literalParser{name: name, aliases: aliases},
		required: true,
	}
}

// Required builds a mandatory value component bound to the given parser.
func Required(name string, parser Parser) Component {
	return Component{kind: KindValue, name: name, parser: parser, required: true}
}

// Optional builds an optional value component. When the input runs out
// before reaching it, the component is simply absent from the context.
func Optional(name string, parser Parser) Component {
	return Component{kind: KindValue, name: name, parser: parser}
}

// OptionalDefault builds an optional value component that binds def when the
// input omits it.
func OptionalDefault(name string, parser Parser, def any) Component {
	return Component{kind: KindValue, name: name, parser: parser, defValue: def, hasDefault: true}
}

// FlagSet builds the variadic flag component. It is always optional and must
// be the last component of its command.
func FlagSet(flags ...*Flag) Component {
	return Component{
		kind:   KindFlags,
		name:   "flags",
		parser: &flagParser{flags: flags},
	}
}

// WithDescription returns a copy of the component with a description.
func (c Component) WithDescription(description string) Component {
	c.description = description
	return c
}

// WithPermission returns a copy of the component gated by a permission
// expression, evaluated through the dispatcher's permission predicate.
func (c Component) WithPermission(permission string) Component {
	c.permission = permission
	return c
}

func (c Component) Kind() ComponentKind { return c.kind }
func (c Component) Name() string        { return c.name }
func (c Component) Parser() Parser      { return c.parser }
func (c Component) Required() bool      { return c.required }
func (c Component) Description() string { return c.description }
func (c Component) Permission() string  { return c.permission }

// Aliases returns the literal's alias list (nil for value components).
func (c Component) Aliases() []string {
	out := make([]string, len(c.aliases))
	copy(out, c.aliases)
	return out
}

// Default returns the component's default value, if one was declared.
func (c Component) Default() (any, bool) {
	return c.defValue, c.hasDefault
}

// names returns the literal's name plus aliases.
func (c Component) names() []string {
	return append([]string{c.name}, c.aliases...)
}

// overlaps reports whether two literals share any name or alias.
func (c Component) overlaps(other Component) bool {
	for _, a := range c.names() {
		for _, b := range other.names() {
			if strings.EqualFold(a, b) {
				return true
			}
		}
	}
	return false
}
