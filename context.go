// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package quarrel

// Context carries the mutable state of a single parse-then-execute
// invocation: the parsed component values, the flag results and the
// bookkeeping slots the suggestion walk uses. A Context is allocated fresh
// per invocation and is never shared across concurrent calls.
type Context struct {
	sender   any
	rawInput string
	perm     PermissionFunc

	values map[string]any
	flags  *FlagResult

	// currentArg tracks which sub-argument of a multi-token parser the
	// suggestion walk is targeting. -1 means unset.
	currentArg int
	// lastFlag names the value flag whose argument is being typed during a
	// flag suggestion pass.
	lastFlag string
}

func newContext(sender any, rawInput string, perm PermissionFunc) *Context {
	return &Context{
		sender:     sender,
		rawInput:   rawInput,
		perm:       perm,
		values:     make(map[string]any),
		flags:      newFlagResult(),
		currentArg: -1,
	}
}

// Sender returns the opaque sender this invocation runs for.
func (c *Context) Sender() any { return c.sender }

// RawInput returns the unaltered input line.
func (c *Context) RawInput() string { return c.rawInput }

// Get returns the parsed value bound to a component name.
func (c *Context) Get(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Flags returns the parsed flag results of this invocation.
func (c *Context) Flags() *FlagResult { return c.flags }

// HasPermission evaluates a permission expression against the injected
// predicate. Empty expressions and a missing predicate always pass.
func (c *Context) HasPermission(permission string) bool {
	if permission == "" || c.perm == nil {
		return true
	}
	return c.perm(c.sender, permission)
}

// SetCurrentArgument records which sub-argument of a compound parser the
// suggestion walk is targeting. Set by whichever loop iterates sub-parsers
// during a suggestions pass.
func (c *Context) SetCurrentArgument(i int) { c.currentArg = i }

// CurrentArgument returns the targeted sub-argument index; ok is false when
// no outer loop has set it (compound parsers then default to their last
// sub-parser).
func (c *Context) CurrentArgument() (int, bool) {
	if c.currentArg < 0 {
		return 0, false
	}
	return c.currentArg, true
}

func (c *Context) set(name string, value any) {
	c.values[name] = value
}

// Value fetches a parsed component value with its concrete type. The second
// return is false when the component is absent or holds a different type.
func Value[T any](ctx *Context, name string) (T, bool) {
	var zero T
	v, ok := ctx.Get(name)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// ValueOr fetches a parsed component value, falling back to def when the
// component is absent.
func ValueOr[T any](ctx *Context, name string, def T) T {
	if v, ok := Value[T](ctx, name); ok {
		return v
	}
	return def
}

// FlagResult holds the flags recorded while parsing one invocation. Presence
// flags are recorded with a count, value flags additionally record their
// parsed values in input order.
type FlagResult struct {
	counts map[string]int
	values map[string][]any
	order  []string
}

func newFlagResult() *FlagResult {
	return &FlagResult{
		counts: make(map[string]int),
		values: make(map[string][]any),
	}
}

// IsPresent reports whether the named flag appeared at least once.
func (f *FlagResult) IsPresent(name string) bool {
	return f.counts[name] > 0
}

// Count returns how many times the named flag appeared.
func (f *FlagResult) Count(name string) int {
	return f.counts[name]
}

// Value returns the first parsed value of a value flag.
func (f *FlagResult) Value(name string) (any, bool) {
	vs := f.values[name]
	if len(vs) == 0 {
		return nil, false
	}
	return vs[0], true
}

// All returns every parsed value of a repeatable value flag, in input order.
func (f *FlagResult) All(name string) []any {
	vs := f.values[name]
	out := make([]any, len(vs))
	copy(out, vs)
	return out
}

// Names returns the distinct flag names recorded, in first-seen order.
func (f *FlagResult) Names() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

func (f *FlagResult) record(name string, value any, hasValue bool) {
	if f.counts[name] == 0 {
		f.order = append(f.order, name)
	}
	f.counts[name]++
	if hasValue {
		f.values[name] = append(f.values[name], value)
	}
}

// FlagValue fetches a value flag's first value with its concrete type.
func FlagValue[T any](ctx *Context, name string) (T, bool) {
	var zero T
	v, ok := ctx.Flags().Value(name)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
