// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package quarrel

import (
	"fmt"
	"reflect"
	"strings"
)

// Handler executes a fully parsed command. By the time a handler runs, every
// required component has a value in the context and the flag section has
// been validated.
type Handler func(ctx *Context) error

// Command is an ordered sequence of components plus an execution handler, an
// optional required-sender-type constraint, a permission requirement and a
// free-form meta bag. Commands are immutable after construction; the With*
// methods return copies.
type Command struct {
	components []Component
	handler    Handler
	senderType reflect.Type
	permission string
	meta       map[string]string
}

// NewCommand validates and builds a command. It enforces the chain
// invariants at construction time: non-empty component names, no required
// component after an optional one, and at most one flag component, which
// must come last.
func NewCommand(handler Handler, components ...Component) (*Command, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if len(components) == 0 {
		return nil, ErrNoComponents
	}

	seenOptional := false
	seenFlags := false
	for i, comp := range components {
		if comp.Name() == "" {
			return nil, fmt.Errorf("component %d: %w", i, ErrEmptyComponentName)
		}
		if seenFlags {
			if comp.Kind() == KindFlags {
				return nil, ErrDuplicateFlagSet
			}
			return nil, ErrFlagsNotLast
		}
		switch comp.Kind() {
		case KindFlags:
			seenFlags = true
		default:
			if comp.Required() {
				if seenOptional {
					return nil, fmt.Errorf("component %q: %w", comp.Name(), ErrRequiredAfterOptional)
				}
			} else {
				seenOptional = true
			}
		}
	}

	cmd := &Command{
		components: make([]Component, len(components)),
		handler:    handler,
	}
	copy(cmd.components, components)
	return cmd, nil
}

// MustCommand is NewCommand for static declarations; it panics on invalid
// chains, which are programming bugs.
func MustCommand(handler Handler, components ...Component) *Command {
	cmd, err := NewCommand(handler, components...)
	if err != nil {
		panic(fmt.Sprintf("invalid command declaration: %v", err))
	}
	return cmd
}

// WithPermission returns a copy of the command gated by a permission
// expression.
func (c *Command) WithPermission(permission string) *Command {
	cp := c.clone()
	cp.permission = permission
	return cp
}

// WithSenderType returns a copy of the command restricted to senders
// assignable to t. Use SenderType[T]() to obtain t.
func (c *Command) WithSenderType(t reflect.Type) *Command {
	cp := c.clone()
	cp.senderType = t
	return cp
}

// WithMeta returns a copy of the command with a meta entry set.
func (c *Command) WithMeta(key, value string) *Command {
	cp := c.clone()
	cp.meta[key] = value
	return cp
}

// SenderType yields the reflect.Type constraint for WithSenderType.
func SenderType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Components returns the command's ordered component chain.
func (c *Command) Components() []Component {
	out := make([]Component, len(c.components))
	copy(out, c.components)
	return out
}

// Permission returns the command's permission expression ("" when open).
func (c *Command) Permission() string { return c.permission }

// RequiredSenderType returns the sender-type constraint, nil when any sender
// is accepted.
func (c *Command) RequiredSenderType() reflect.Type { return c.senderType }

// Meta returns the meta value stored under key.
func (c *Command) Meta(key string) (string, bool) {
	v, ok := c.meta[key]
	return v, ok
}

// RootName returns the name of the command's first component.
func (c *Command) RootName() string {
	return c.components[0].Name()
}

// Usage renders the command's usage line: literals verbatim, required values
// in angle brackets, optionals in square brackets.
func (c *Command) Usage() string {
	var b strings.Builder
	for i, comp := range c.components {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(componentUsage(comp))
	}
	return b.String()
}

func componentUsage(comp Component) string {
	switch comp.Kind() {
	case KindLiteral:
		return comp.Name()
	case KindFlags:
		return "[--flags]"
	default:
		if comp.Required() {
			return "<" + comp.Name() + ">"
		}
		return "[" + comp.Name() + "]"
	}
}

func (c *Command) clone() *Command {
	cp := &Command{
		components: c.components,
		handler:    c.handler,
		senderType: c.senderType,
		permission: c.permission,
		meta:       make(map[string]string, len(c.meta)+1),
	}
	for k, v := range c.meta {
		cp.meta[k] = v
	}
	return cp
}
