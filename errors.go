// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package quarrel

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Registration-time errors. These signal programming bugs in a command
// declaration and surface from NewCommand or Dispatcher.Register.
var (
	ErrNilHandler            = errors.New("command has no handler")
	ErrNoComponents          = errors.New("command has no components")
	ErrEmptyComponentName    = errors.New("component name is empty")
	ErrRequiredAfterOptional = errors.New("required component follows an optional component")
	ErrFlagsNotLast          = errors.New("flag component must be the last component")
	ErrDuplicateFlagSet      = errors.New("command declares more than one flag component")
)

// ErrRateLimited is returned by Execute when the per-sender rate limiter
// rejects an invocation.
var ErrRateLimited = errors.New("rate limit exceeded")

// NoSuchCommandError reports that the first input token matched no
// registered root literal.
type NoSuchCommandError struct {
	Token string
}

func (e *NoSuchCommandError) Error() string {
	if e.Token == "" {
		return "no command supplied"
	}
	return fmt.Sprintf("no such command: %q", e.Token)
}

// InvalidSyntaxError reports that a deeper token failed to match any child
// of the tree, or that required components remained unconsumed at the end of
// the input. Path holds the correct-so-far component chain for a usage hint.
type InvalidSyntaxError struct {
	// Path is the chain of components matched before the failure.
	Path []string
	// Token is the offending token, empty when the input was exhausted.
	Token string
	// Usage summarizes what the tree accepts at the failure point.
	Usage string
}

func (e *InvalidSyntaxError) Error() string {
	at := strings.Join(e.Path, " ")
	if e.Token == "" {
		if e.Usage != "" {
			return fmt.Sprintf("incomplete command after %q, expected %s", at, e.Usage)
		}
		return fmt.Sprintf("incomplete command after %q", at)
	}
	if e.Usage != "" {
		return fmt.Sprintf("invalid token %q after %q, expected %s", e.Token, at, e.Usage)
	}
	return fmt.Sprintf("invalid token %q after %q", e.Token, at)
}

// ArgumentParseError wraps a parser-specific failure and names the component
// whose parser rejected the input.
type ArgumentParseError struct {
	Component string
	Token     string
	Err       error
}

func (e *ArgumentParseError) Error() string {
	if e.Component == "" {
		return fmt.Sprintf("cannot parse input: %v", e.Err)
	}
	return fmt.Sprintf("cannot parse argument %q from %q: %v", e.Component, e.Token, e.Err)
}

func (e *ArgumentParseError) Unwrap() error { return e.Err }

// NoPermissionError reports that the command, component or flag permission
// predicate returned false for the sender.
type NoPermissionError struct {
	Permission string
}

func (e *NoPermissionError) Error() string {
	return fmt.Sprintf("missing permission %q", e.Permission)
}

// InvalidSenderError reports that the sender's type does not satisfy the
// command's required sender type.
type InvalidSenderError struct {
	Required reflect.Type
	Actual   reflect.Type
}

func (e *InvalidSenderError) Error() string {
	return fmt.Sprintf("command requires sender type %v, got %v", e.Required, e.Actual)
}

// FlagReason is the structured failure reason of a flag parse error.
type FlagReason int

const (
	// FlagUnknown: the token named a flag that is not declared, or combined
	// a value-bearing flag into a short group.
	FlagUnknown FlagReason = iota
	// FlagDuplicate: a non-repeatable flag appeared twice.
	FlagDuplicate
	// FlagNoFlagStarted: a flag-shaped token resolved to nothing at all.
	FlagNoFlagStarted
	// FlagMissingArgument: a value flag sat at the end of the input.
	FlagMissingArgument
	// FlagNoPermission: the flag's own permission predicate failed.
	FlagNoPermission
)

func (r FlagReason) String() string {
	switch r {
	case FlagUnknown:
		return "UNKNOWN_FLAG"
	case FlagDuplicate:
		return "DUPLICATE_FLAG"
	case FlagNoFlagStarted:
		return "NO_FLAG_STARTED"
	case FlagMissingArgument:
		return "MISSING_ARGUMENT"
	case FlagNoPermission:
		return "NO_PERMISSION"
	default:
		return "UNKNOWN"
	}
}

// FlagParseError reports a failure inside the variadic flag section.
type FlagParseError struct {
	Reason FlagReason
	// Flag is the resolved flag name, when one resolved.
	Flag string
	// Token is the raw input token that triggered the failure.
	Token string
}

func (e *FlagParseError) Error() string {
	switch e.Reason {
	case FlagUnknown:
		return fmt.Sprintf("unknown flag %q", e.Token)
	case FlagDuplicate:
		return fmt.Sprintf("duplicate flag %q", e.Flag)
	case FlagNoFlagStarted:
		return fmt.Sprintf("no flag started by %q", e.Token)
	case FlagMissingArgument:
		return fmt.Sprintf("flag %q requires a value", e.Flag)
	case FlagNoPermission:
		return fmt.Sprintf("missing permission for flag %q", e.Flag)
	default:
		return fmt.Sprintf("flag error at %q", e.Token)
	}
}

// AmbiguityError reports a registration-time structural conflict in the
// command tree: overlapping sibling literal alias sets, or a second value
// component competing for the same position.
type AmbiguityError struct {
	Path   []string
	Reason string
}

func (e *AmbiguityError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("ambiguous registration: %s", e.Reason)
	}
	return fmt.Sprintf("ambiguous registration at %q: %s", strings.Join(e.Path, " "), e.Reason)
}
