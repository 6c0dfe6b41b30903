// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package quarrel

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"
	shellwords "github.com/mattn/go-shellwords"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// PermissionFunc is the injected, opaque permission predicate: it decides
// whether a sender holds a permission expression.
type PermissionFunc func(sender any, permission string) bool

// Dispatcher schedules the parse-then-execute pipeline: tokenize the raw
// line, walk the tree, check command permission and sender type, then invoke
// the handler. Each invocation allocates its state fresh, so concurrent
// Execute and Suggest calls are independent; registration takes the write
// lock and is expected during setup, not per input.
type Dispatcher struct {
	mu   sync.RWMutex
	tree *Tree

	perm      PermissionFunc
	log       zerolog.Logger
	rateLimit rate.Limit
	rateBurst int

	limMu    sync.Mutex
	limiters map[string]*rate.Limiter
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPermissionFunc injects the permission predicate used for command,
// component and flag permission expressions.
func WithPermissionFunc(f PermissionFunc) Option {
	return func(d *Dispatcher) { d.perm = f }
}

// WithLogger attaches a structured logger; invocations log at debug level
// with a per-invocation id.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// WithRateLimit enables per-sender execution rate limiting. Senders are
// bucketed by their string rendering.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(d *Dispatcher) {
		d.rateLimit = limit
		d.rateBurst = burst
	}
}

// NewDispatcher builds a dispatcher over an empty command tree.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		tree:     NewTree(),
		log:      zerolog.Nop(),
		limiters: make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register merges a command into the tree, returning any ambiguity or
// validation error.
func (d *Dispatcher) Register(cmd *Command) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.tree.Register(cmd); err != nil {
		return err
	}
	d.log.Debug().Str("command", cmd.Usage()).Msg("registered command")
	return nil
}

// MustRegister registers a command and panics on error. Registration errors
// during initialization are programming bugs.
func (d *Dispatcher) MustRegister(cmd *Command) {
	if err := d.Register(cmd); err != nil {
		panic(fmt.Sprintf("failed to register command: %v", err))
	}
}

// Unregister removes a previously registered command and prunes the tree.
func (d *Dispatcher) Unregister(cmd *Command) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tree.Unregister(cmd)
}

// Commands returns the registered commands in registration order.
func (d *Dispatcher) Commands() []*Command {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tree.Commands()
}

// Execute parses and runs one raw input line for a sender. A parse failure
// short-circuits before the handler and surfaces as one of the typed errors;
// the returned context carries whatever was bound up to that point.
func (d *Dispatcher) Execute(sender any, input string) (*Context, error) {
	id := uuid.NewString()
	d.log.Debug().Str("invocation", id).Str("input", input).Msg("executing")

	if !d.allow(sender) {
		return nil, ErrRateLimited
	}

	tokens, err := tokenize(input)
	if err != nil {
		return nil, &ArgumentParseError{Token: input, Err: err}
	}
	ctx := newContext(sender, input, d.perm)
	if len(tokens) == 0 {
		return ctx, &NoSuchCommandError{}
	}

	d.mu.RLock()
	cmd, err := d.tree.Match(ctx, NewInput(tokens))
	d.mu.RUnlock()
	if err != nil {
		d.log.Debug().Str("invocation", id).Err(err).Msg("parse failed")
		return ctx, err
	}

	if cmd.permission != "" && !ctx.HasPermission(cmd.permission) {
		return ctx, &NoPermissionError{Permission: cmd.permission}
	}
	if err := checkSenderType(cmd, sender); err != nil {
		return ctx, err
	}

	if err := cmd.handler(ctx); err != nil {
		return ctx, err
	}
	d.log.Debug().Str("invocation", id).Msg("executed")
	return ctx, nil
}

// Suggest produces completion candidates for the token under the cursor.
// It tolerates partial input that will never execute and never mutates the
// tree or any other invocation's state.
func (d *Dispatcher) Suggest(sender any, input string) []Suggestion {
	tokens, partial := tokenizeForSuggestions(input)
	ctx := newContext(sender, input, d.perm)

	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tree.Suggest(ctx, tokens, partial)
}

// allow applies the optional per-sender rate limit.
func (d *Dispatcher) allow(sender any) bool {
	if d.rateLimit == 0 {
		return true
	}
	key := fmt.Sprint(sender)
	d.limMu.Lock()
	lim, ok := d.limiters[key]
	if !ok {
		lim = rate.NewLimiter(d.rateLimit, d.rateBurst)
		d.limiters[key] = lim
	}
	d.limMu.Unlock()
	return lim.Allow()
}

func checkSenderType(cmd *Command, sender any) error {
	if cmd.senderType == nil {
		return nil
	}
	actual := reflect.TypeOf(sender)
	if actual == nil || !actual.AssignableTo(cmd.senderType) {
		return &InvalidSenderError{Required: cmd.senderType, Actual: actual}
	}
	return nil
}

// tokenize splits a raw line with shell-style quoting. A malformed quoted
// string is a parse-time error, never a fault.
func tokenize(input string) ([]string, error) {
	p := shellwords.NewParser()
	tokens, err := p.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("malformed input: %w", err)
	}
	return tokens, nil
}

// tokenizeForSuggestions splits best-effort: suggestion passes run on
// incomplete lines, so an unbalanced quote falls back to whitespace
// splitting, and a trailing space means a fresh empty partial token.
func tokenizeForSuggestions(input string) (tokens []string, partial string) {
	tokens, err := tokenize(input)
	if err != nil {
		tokens = strings.Fields(input)
	}
	if len(tokens) == 0 {
		return nil, ""
	}
	if strings.HasSuffix(input, " ") {
		return tokens, ""
	}
	return tokens[:len(tokens)-1], tokens[len(tokens)-1]
}
