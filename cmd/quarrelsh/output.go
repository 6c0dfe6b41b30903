// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/quarrel-go/quarrel"
)

var (
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	usageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

var broadcastColors = map[string]lipgloss.Color{
	"red":    lipgloss.Color("9"),
	"green":  lipgloss.Color("10"),
	"yellow": lipgloss.Color("11"),
}

func applyStyle(text, color string, bold, italic bool) string {
	style := lipgloss.NewStyle().Bold(bold).Italic(italic)
	if c, ok := broadcastColors[color]; ok {
		style = style.Foreground(c)
	}
	return style.Render(text)
}

// printError renders a dispatch error, adding a usage hint for syntax
// failures.
func printError(err error) {
	fmt.Println(errStyle.Render("Error: " + err.Error()))

	var syntax *quarrel.InvalidSyntaxError
	if errors.As(err, &syntax) && syntax.Usage != "" {
		hint := strings.TrimSpace(strings.Join(syntax.Path, " ") + " " + syntax.Usage)
		fmt.Println(hintStyle.Render("Usage: " + hint))
	}
}

// printHelp lays the usage lines out in columns sized to the terminal.
func printHelp(lines []string) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	longest := 0
	for _, line := range lines {
		if len(line) > longest {
			longest = len(line)
		}
	}
	cols := width / (longest + 2)
	if cols < 1 {
		cols = 1
	}

	for i := 0; i < len(lines); i += cols {
		end := i + cols
		if end > len(lines) {
			end = len(lines)
		}
		var row []string
		for _, line := range lines[i:end] {
			row = append(row, fmt.Sprintf("%-*s", longest+2, line))
		}
		fmt.Println(usageStyle.Render(strings.TrimRight(strings.Join(row, ""), " ")))
	}
}
