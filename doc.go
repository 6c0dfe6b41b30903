// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

// Package quarrel is a command-parsing and dispatch framework for chat and
// console lines. Commands are declared as ordered chains of components
// (literals, typed values, trailing flags) and merged into a shared trie;
// a dispatcher walks that trie against a tokenized input line, binds each
// argument through its parser, and invokes the matched handler. The same
// walk powers context-aware tab completion.
//
// A minimal setup:
//
//	d := quarrel.NewDispatcher()
//	d.MustRegister(quarrel.MustCommand(teleport,
//		quarrel.Literal("tp"),
//		quarrel.Required("x", parsers.Int()),
//		quarrel.Required("y", parsers.Int()),
//		quarrel.Required("z", parsers.Int()),
//	))
//	ctx, err := d.Execute(sender, "tp 10 64 -30")
//
// Standard value parsers live in the parsers sub-package; anything
// implementing Parser plugs in the same way.
package quarrel
