// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

// Package parsers provides the standard value parsers for quarrel commands:
// bounds-checked numbers, strings in single/quoted/greedy modes, booleans,
// enums, durations and UUIDs. All of them implement quarrel.Parser; custom
// parsers plug in the same way.
package parsers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/quarrel-go/quarrel"
)

// IntParser parses a base-10 integer within [Min, Max].
type IntParser struct {
	Min int64
	Max int64
}

// Int returns an unbounded integer parser.
func Int() *IntParser {
	return &IntParser{Min: math.MinInt64, Max: math.MaxInt64}
}

// IntRange returns an integer parser bounded to [min, max].
func IntRange(min, max int64) *IntParser {
	return &IntParser{Min: min, Max: max}
}

func (p *IntParser) Parse(_ *quarrel.Context, in *quarrel.CommandInput) (any, error) {
	tok, ok := in.Read()
	if !ok {
		return nil, fmt.Errorf("expected an integer")
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not an integer", tok)
	}
	if v < p.Min || v > p.Max {
		return nil, fmt.Errorf("%d is outside [%d, %d]", v, p.Min, p.Max)
	}
	return v, nil
}

func (p *IntParser) Suggestions(_ *quarrel.Context, partial string) []quarrel.Suggestion {
	return rangeSuggestions(partial, p.Min, p.Max)
}

func (p *IntParser) ArgumentCount() int { return 1 }

// FloatParser parses a floating-point number within [Min, Max].
type FloatParser struct {
	Min float64
	Max float64
}

func Float() *FloatParser {
	return &FloatParser{Min: -math.MaxFloat64, Max: math.MaxFloat64}
}

func FloatRange(min, max float64) *FloatParser {
	return &FloatParser{Min: min, Max: max}
}

func (p *FloatParser) Parse(_ *quarrel.Context, in *quarrel.CommandInput) (any, error) {
	tok, ok := in.Read()
	if !ok {
		return nil, fmt.Errorf("expected a number")
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", tok)
	}
	if v < p.Min || v > p.Max {
		return nil, fmt.Errorf("%v is outside [%v, %v]", v, p.Min, p.Max)
	}
	return v, nil
}

func (p *FloatParser) Suggestions(_ *quarrel.Context, partial string) []quarrel.Suggestion {
	if strings.ContainsAny(partial, ".eE") {
		return nil
	}
	min := int64(math.Ceil(math.Max(p.Min, math.MinInt64)))
	max := int64(math.Floor(math.Min(p.Max, math.MaxInt64)))
	return rangeSuggestions(partial, min, max)
}

func (p *FloatParser) ArgumentCount() int { return 1 }

// rangeSuggestions is the shared completion algorithm for bounded numbers:
// the typed digits plus every one-digit extension that stays within
// [min, max]. An empty partial yields the single digits in range.
func rangeSuggestions(partial string, min, max int64) []quarrel.Suggestion {
	inRange := func(n int64) bool { return n >= min && n <= max }

	var out []quarrel.Suggestion
	if partial == "" || partial == "-" {
		neg := partial == "-"
		if neg && min >= 0 {
			return nil
		}
		for d := int64(0); d <= 9; d++ {
			n := d
			if neg {
				n = -d
				if n == 0 {
					continue
				}
			}
			if inRange(n) {
				out = append(out, quarrel.Suggest(strconv.FormatInt(n, 10)))
			}
		}
		return out
	}

	base, err := strconv.ParseInt(partial, 10, 64)
	if err != nil {
		return nil
	}
	if inRange(base) {
		out = append(out, quarrel.Suggest(partial))
	}
	for d := int64(0); d <= 9; d++ {
		next := base*10 + d
		if base < 0 || strings.HasPrefix(partial, "-") {
			next = base*10 - d
		}
		if next == base || next/10 != base {
			continue // no new digit, or overflow
		}
		if inRange(next) {
			out = append(out, quarrel.Suggest(strconv.FormatInt(next, 10)))
		}
	}
	return out
}
