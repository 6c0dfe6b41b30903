// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/quarrel-go/quarrel"
	"github.com/quarrel-go/quarrel/parsers"
)

// position is the compound teleport argument.
type position struct {
	X, Y, Z int64
}

// registerCommands declares the demonstration command set. The chains cover
// every component kind: literals with aliases, required and optional values,
// a compound multi-token argument and a trailing flag section.
func (s *shell) registerCommands() error {
	coordinate, err := quarrel.NewCompound(
		[]string{"x", "y", "z"},
		[]quarrel.Parser{parsers.Int(), parsers.IntRange(0, 320), parsers.Int()},
		func(_ any, values []any) (any, error) {
			return position{
				X: values[0].(int64),
				Y: values[1].(int64),
				Z: values[2].(int64),
			}, nil
		},
	)
	if err != nil {
		return err
	}

	commands := []*quarrel.Command{
		quarrel.MustCommand(s.cmdTeleport,
			quarrel.Literal("tp", "teleport"),
			quarrel.Required("position", coordinate).
				WithDescription("target coordinates"),
		),

		quarrel.MustCommand(s.cmdMessage,
			quarrel.Literal("msg", "tell", "w"),
			quarrel.Required("target", parsers.String()),
			quarrel.Required("text", parsers.GreedyString()),
		),

		quarrel.MustCommand(s.cmdGive,
			quarrel.Literal("give"),
			quarrel.Required("item", parsers.Enum("sword", "shield", "apple", "torch")),
			quarrel.OptionalDefault("count", parsers.IntRange(1, 64), int64(1)),
		),

		quarrel.MustCommand(s.cmdBroadcast,
			quarrel.Literal("broadcast", "bc"),
			quarrel.Required("text", parsers.QuotedString()),
			quarrel.FlagSet(
				quarrel.NewFlag("bold", "b").WithDescription("render in bold"),
				quarrel.NewFlag("italic", "i").WithDescription("render in italics"),
				quarrel.NewValueFlag("color", parsers.Enum("red", "green", "yellow"), "c").
					WithDescription("message color"),
				quarrel.NewValueFlag("repeat", parsers.IntRange(1, 5), "r").
					AsRepeatable().
					WithDescription("repeat count, may be given multiple times"),
			),
		),

		quarrel.MustCommand(s.cmdBan,
			quarrel.Literal("ban"),
			quarrel.Required("player", parsers.String()),
			quarrel.Optional("duration", parsers.Duration()),
		).WithPermission("quarrelsh.ban"),

		quarrel.MustCommand(s.cmdMacroList,
			quarrel.Literal("macro"),
			quarrel.Literal("list"),
		),
		quarrel.MustCommand(s.cmdMacroReload,
			quarrel.Literal("macro"),
			quarrel.Literal("reload"),
		),

		quarrel.MustCommand(s.cmdHelp,
			quarrel.Literal("help", "h"),
		),
		quarrel.MustCommand(func(*quarrel.Context) error { return errExit },
			quarrel.Literal("quit", "exit", "q"),
		),
	}

	for _, cmd := range commands {
		if err := s.dispatcher.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (s *shell) cmdTeleport(ctx *quarrel.Context) error {
	pos, _ := quarrel.Value[position](ctx, "position")
	fmt.Printf("Teleported to %d %d %d\n", pos.X, pos.Y, pos.Z)
	return nil
}

func (s *shell) cmdMessage(ctx *quarrel.Context) error {
	target, _ := quarrel.Value[string](ctx, "target")
	text, _ := quarrel.Value[string](ctx, "text")
	fmt.Printf("To %s: %s\n", target, text)
	return nil
}

func (s *shell) cmdGive(ctx *quarrel.Context) error {
	item, _ := quarrel.Value[string](ctx, "item")
	count := quarrel.ValueOr[int64](ctx, "count", 1)
	fmt.Printf("Gave %d x %s\n", count, item)
	return nil
}

func (s *shell) cmdBroadcast(ctx *quarrel.Context) error {
	text, _ := quarrel.Value[string](ctx, "text")

	repeats := 1
	for _, v := range ctx.Flags().All("repeat") {
		repeats = int(v.(int64))
	}
	color, _ := quarrel.FlagValue[string](ctx, "color")

	styled := styleBroadcast(text, color, ctx.Flags().IsPresent("bold"), ctx.Flags().IsPresent("italic"))
	for i := 0; i < repeats; i++ {
		fmt.Println(styled)
	}
	return nil
}

func (s *shell) cmdBan(ctx *quarrel.Context) error {
	player, _ := quarrel.Value[string](ctx, "player")
	if d, ok := quarrel.Value[time.Duration](ctx, "duration"); ok {
		fmt.Printf("Banned %s for %s\n", player, d)
	} else {
		fmt.Printf("Banned %s permanently\n", player)
	}
	return nil
}

func (s *shell) cmdMacroList(*quarrel.Context) error {
	s.macroMu.RLock()
	defer s.macroMu.RUnlock()
	if len(s.macros) == 0 {
		fmt.Println("No macros loaded")
		return nil
	}
	for name, expansion := range s.macros {
		fmt.Printf("  %-12s -> %s\n", name, expansion)
	}
	return nil
}

func (s *shell) cmdMacroReload(*quarrel.Context) error {
	if s.cfg.MacroFile == "" {
		fmt.Println("No macro file configured")
		return nil
	}
	if err := s.loadMacros(s.cfg.MacroFile); err != nil {
		return err
	}
	fmt.Println("Macros reloaded")
	return nil
}

func (s *shell) cmdHelp(*quarrel.Context) error {
	var lines []string
	for _, cmd := range s.dispatcher.Commands() {
		lines = append(lines, cmd.Usage())
	}
	printHelp(lines)
	return nil
}

// styleBroadcast renders the broadcast text with the requested attributes.
func styleBroadcast(text, color string, bold, italic bool) string {
	text = strings.TrimSpace(text)
	return applyStyle(text, color, bold, italic)
}
