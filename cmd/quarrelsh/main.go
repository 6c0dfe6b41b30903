// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

// quarrelsh is an interactive shell demonstrating the quarrel command
// framework: a handful of registered commands, tab completion backed by the
// dispatcher's suggestion walk, YAML configuration and hot-reloaded macros.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/quarrel-go/quarrel"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.quarrelsh.yaml)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Verbose = true
	}

	level := zerolog.WarnLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	dispatcher := quarrel.NewDispatcher(
		quarrel.WithLogger(log),
		quarrel.WithPermissionFunc(shellPermissions),
	)

	shell := newShell(dispatcher, cfg, log)
	if err := shell.registerCommands(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to register commands: %v\n", err)
		os.Exit(1)
	}
	if cfg.MacroFile != "" {
		if err := shell.watchMacros(cfg.MacroFile); err != nil {
			log.Warn().Err(err).Str("file", cfg.MacroFile).Msg("macro watching disabled")
		}
	}

	shell.run()
}

// shellPermissions is the demo predicate: the console holds everything
// except expressions marked denied in the sender itself.
func shellPermissions(sender any, permission string) bool {
	s, ok := sender.(*consoleSender)
	if !ok {
		return false
	}
	return !s.denied[permission]
}

// consoleSender is the single sender of the interactive shell.
type consoleSender struct {
	name   string
	denied map[string]bool
}

func (s *consoleSender) String() string { return s.name }
