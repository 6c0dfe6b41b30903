// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package quarrel

import (
	"errors"
	"strings"
)

// node is one position in the command trie. A node owns a command when some
// registered chain ends exactly there, which makes it a valid execution leaf
// even when it still has children (shorter commands may be prefixes of
// longer ones).
type node struct {
	component *Component
	children  []*node
	owner     *Command
}

// valueChild returns the at-most-one non-literal child.
func (n *node) valueChild() *node {
	for _, child := range n.children {
		if child.component.Kind() != KindLiteral {
			return child
		}
	}
	return nil
}

// childSummary renders what the node accepts next, for syntax errors.
func (n *node) childSummary() string {
	parts := make([]string, 0, len(n.children))
	for _, child := range n.children {
		parts = append(parts, componentUsage(*child.component))
	}
	return strings.Join(parts, "|")
}

// Tree is the command trie: it merges the component chains of every
// registered command along shared prefixes and walks them against input.
// Registration mutates the tree and must be externally serialized (the
// Dispatcher does this); matching and suggesting are read-only traversals
// safe for unbounded concurrent callers.
type Tree struct {
	root     *node
	commands []*Command
}

// NewTree returns an empty command tree.
func NewTree() *Tree {
	return &Tree{root: &node{}}
}

// Register merges a command's component chain into the tree. It fails on
// structural ambiguity: overlapping sibling literal alias sets, a second
// value component at an occupied position, or an exactly duplicated chain.
func (t *Tree) Register(cmd *Command) error {
	if cmd == nil {
		return errors.New("nil command")
	}
	// Chains built by hand still get the construction-time checks.
	if _, err := NewCommand(cmd.handler, cmd.components...); err != nil {
		return err
	}

	cur := t.root
	var path []string
	for i := range cmd.components {
		child, err := cur.mergeChild(&cmd.components[i], path)
		if err != nil {
			return err
		}
		path = append(path, cmd.components[i].Name())
		cur = child
	}
	if cur.owner != nil {
		return &AmbiguityError{Path: path, Reason: "command chain already registered"}
	}
	cur.owner = cmd
	t.commands = append(t.commands, cmd)
	return nil
}

// mergeChild finds the child a component merges into, or appends a new one.
func (n *node) mergeChild(comp *Component, path []string) (*node, error) {
	if comp.Kind() == KindLiteral {
		for _, child := range n.children {
			existing := child.component
			if existing.Kind() != KindLiteral {
				continue
			}
			if strings.EqualFold(existing.Name(), comp.Name()) {
				merged, err := n.mergeLiteral(child, comp, path)
				if err != nil {
					return nil, err
				}
				return merged, nil
			}
			if existing.overlaps(*comp) {
				return nil, &AmbiguityError{
					Path:   path,
					Reason: "literal " + comp.Name() + " overlaps sibling " + existing.Name(),
				}
			}
		}
		child := &node{component: comp}
		n.children = append(n.children, child)
		return child, nil
	}

	if existing := n.valueChild(); existing != nil {
		ec := existing.component
		if ec.Kind() == comp.Kind() && ec.Name() == comp.Name() {
			return existing, nil
		}
		return nil, &AmbiguityError{
			Path:   path,
			Reason: comp.Kind().String() + " component " + comp.Name() + " competes with " + ec.Name(),
		}
	}
	child := &node{component: comp}
	n.children = append(n.children, child)
	return child, nil
}

// mergeLiteral folds a newcomer's aliases into an existing same-name literal
// child, rejecting aliases that would collide with other siblings.
func (n *node) mergeLiteral(child *node, comp *Component, path []string) (*node, error) {
	existing := child.component
	var added []string
	for _, alias := range comp.aliases {
		known := false
		for _, have := range existing.names() {
			if strings.EqualFold(have, alias) {
				known = true
				break
			}
		}
		if !known {
			added = append(added, alias)
		}
	}
	if len(added) == 0 {
		return child, nil
	}
	for _, sibling := range n.children {
		if sibling == child || sibling.component.Kind() != KindLiteral {
			continue
		}
		for _, alias := range added {
			for _, have := range sibling.component.names() {
				if strings.EqualFold(have, alias) {
					return nil, &AmbiguityError{
						Path:   path,
						Reason: "alias " + alias + " overlaps sibling " + sibling.component.Name(),
					}
				}
			}
		}
	}
	merged := *existing
	merged.aliases = append(append([]string{}, existing.aliases...), added...)
	merged.parser = &literalParser{name: merged.name, aliases: merged.aliases}
	child.component = &merged
	return child, nil
}

// Unregister removes a command previously registered, pruning nodes that
// retain no owner and no children.
func (t *Tree) Unregister(cmd *Command) error {
	if cmd == nil || !t.remove(t.root, cmd, 0) {
		return errors.New("command not registered")
	}
	for i, registered := range t.commands {
		if registered == cmd {
			t.commands = append(t.commands[:i], t.commands[i+1:]...)
			break
		}
	}
	return nil
}

func (t *Tree) remove(n *node, cmd *Command, depth int) bool {
	if depth == len(cmd.components) {
		if n.owner != cmd {
			return false
		}
		n.owner = nil
		return true
	}
	comp := &cmd.components[depth]
	for i, child := range n.children {
		if !sameIdentity(child.component, comp) {
			continue
		}
		if !t.remove(child, cmd, depth+1) {
			return false
		}
		if child.owner == nil && len(child.children) == 0 {
			n.children = append(n.children[:i], n.children[i+1:]...)
		}
		return true
	}
	return false
}

func sameIdentity(a, b *Component) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	return strings.EqualFold(a.Name(), b.Name())
}

// Commands returns the registered commands in registration order.
func (t *Tree) Commands() []*Command {
	out := make([]*Command, len(t.commands))
	copy(out, t.commands)
	return out
}

// Match walks the trie against the input tokens: literal children first in
// registration order, then the single value child, with no backtracking into
// sibling attempts. It returns the owning command of the execution leaf the
// input lands on, with the context fully populated.
func (t *Tree) Match(ctx *Context, in *CommandInput) (*Command, error) {
	return t.match(ctx, in, t.root, nil)
}

func (t *Tree) match(ctx *Context, in *CommandInput, n *node, path []string) (*Command, error) {
	if in.IsEmpty() {
		if n.owner != nil {
			return n.owner, nil
		}
		// The input stopped mid-chain: a trailing optional (or flag) chain
		// may still complete, binding defaults where declared.
		if vc := n.valueChild(); vc != nil && !vc.component.Required() {
			comp := vc.component
			if !ctx.HasPermission(comp.Permission()) {
				return nil, &NoPermissionError{Permission: comp.Permission()}
			}
			if def, ok := comp.Default(); ok {
				ctx.set(comp.Name(), def)
			}
			return t.match(ctx, in, vc, append(path, comp.Name()))
		}
		return nil, &InvalidSyntaxError{Path: path, Usage: n.childSummary()}
	}

	tok, _ := in.Peek()

	// Literals win over the value child: an exact text match must never be
	// shadowed by a greedy value parser.
	for _, child := range n.children {
		comp := child.component
		if comp.Kind() != KindLiteral {
			continue
		}
		if !comp.parser.(*literalParser).accepts(tok) {
			continue
		}
		if !ctx.HasPermission(comp.Permission()) {
			return nil, &NoPermissionError{Permission: comp.Permission()}
		}
		in.Read()
		ctx.set(comp.Name(), comp.Name())
		return t.match(ctx, in, child, append(path, comp.Name()))
	}

	if vc := n.valueChild(); vc != nil {
		comp := vc.component
		if !ctx.HasPermission(comp.Permission()) {
			return nil, &NoPermissionError{Permission: comp.Permission()}
		}

		if comp.Kind() == KindFlags {
			// The flag component always terminates a chain: the rest of the
			// input belongs to it.
			value, err := comp.parser.Parse(ctx, in)
			if err != nil {
				return nil, &ArgumentParseError{Component: comp.Name(), Token: tok, Err: err}
			}
			if leftover, ok := in.Peek(); ok {
				return nil, &InvalidSyntaxError{Path: append(path, comp.Name()), Token: leftover}
			}
			ctx.set(comp.Name(), value)
			return t.match(ctx, in, vc, append(path, comp.Name()))
		}

		if need := argumentCount(comp.parser); in.Remaining() < need {
			return nil, &InvalidSyntaxError{Path: path, Usage: componentUsage(*comp)}
		}
		value, err := comp.parser.Parse(ctx, in)
		if err != nil {
			return nil, &ArgumentParseError{Component: comp.Name(), Token: tok, Err: err}
		}
		ctx.set(comp.Name(), value)
		return t.match(ctx, in, vc, append(path, comp.Name()))
	}

	if n == t.root {
		return nil, &NoSuchCommandError{Token: tok}
	}
	return nil, &InvalidSyntaxError{Path: path, Token: tok, Usage: n.childSummary()}
}

// Suggest reuses the matching walk to complete the token under the cursor.
// tokens holds the complete tokens before the cursor, partial the (possibly
// empty) token being typed. The walk is read-only with respect to the tree;
// everything mutable lives in the per-call context and cursor.
func (t *Tree) Suggest(ctx *Context, tokens []string, partial string) []Suggestion {
	return t.suggest(ctx, NewInput(tokens), partial, t.root)
}

func (t *Tree) suggest(ctx *Context, in *CommandInput, partial string, n *node) []Suggestion {
	if in.IsEmpty() {
		var out []Suggestion
		for _, child := range n.children {
			comp := child.component
			if !ctx.HasPermission(comp.Permission()) {
				continue
			}
			if comp.Kind() == KindValue && argumentCount(comp.parser) > 1 {
				ctx.SetCurrentArgument(0)
			}
			out = append(out, comp.parser.Suggestions(ctx, partial)...)
		}
		return out
	}

	tok, _ := in.Peek()
	for _, child := range n.children {
		comp := child.component
		if comp.Kind() != KindLiteral || !comp.parser.(*literalParser).accepts(tok) {
			continue
		}
		if !ctx.HasPermission(comp.Permission()) {
			return nil
		}
		in.Read()
		return t.suggest(ctx, in, partial, child)
	}

	vc := n.valueChild()
	if vc == nil {
		return nil
	}
	comp := vc.component
	if !ctx.HasPermission(comp.Permission()) {
		return nil
	}

	if comp.Kind() == KindFlags {
		fp := comp.parser.(*flagParser)
		fp.consumeForSuggestions(ctx, in)
		return fp.Suggestions(ctx, partial)
	}

	if need := argumentCount(comp.parser); need > 1 && in.Remaining() < need {
		// The cursor sits inside this multi-token argument: route to the
		// sub-parser the completed token count points at.
		ctx.SetCurrentArgument(in.Remaining())
		return comp.parser.Suggestions(ctx, partial)
	}
	if _, err := comp.parser.Parse(ctx, in); err != nil {
		// A failed branch yields nothing; suggestion passes never retry
		// siblings, mirroring the matching walk.
		return nil
	}
	return t.suggest(ctx, in, partial, vc)
}
