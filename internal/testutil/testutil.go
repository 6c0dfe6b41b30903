// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

// Package testutil provides reusable test senders, handlers and permission
// predicates for exercising the dispatch pipeline.
package testutil

import (
	"sync"

	"github.com/quarrel-go/quarrel"
)

// Console is a sender representing the server console.
type Console struct {
	Name string
}

// Player is a sender representing an in-game player, distinct from Console
// for sender-type constraint tests.
type Player struct {
	Name string
}

// Permissions builds a PermissionFunc from a fixed expression set: listed
// expressions pass, everything else fails.
func Permissions(granted ...string) quarrel.PermissionFunc {
	set := make(map[string]bool, len(granted))
	for _, p := range granted {
		set[p] = true
	}
	return func(_ any, permission string) bool {
		return set[permission]
	}
}

// AllowAll grants every permission expression.
func AllowAll() quarrel.PermissionFunc {
	return func(any, string) bool { return true }
}

// RecordingHandler counts invocations and keeps the last context, safe for
// concurrent executions.
type RecordingHandler struct {
	mu    sync.Mutex
	calls int
	last  *quarrel.Context
}

// Handler returns the quarrel.Handler recording into h.
func (h *RecordingHandler) Handler() quarrel.Handler {
	return func(ctx *quarrel.Context) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.calls++
		h.last = ctx
		return nil
	}
}

// Calls returns how many times the handler ran.
func (h *RecordingHandler) Calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

// Last returns the context of the most recent invocation.
func (h *RecordingHandler) Last() *quarrel.Context {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Noop is a handler that does nothing.
func Noop(*quarrel.Context) error { return nil }
