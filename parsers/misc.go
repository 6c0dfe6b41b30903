// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package parsers

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/quarrel-go/quarrel"
)

// BoolParser accepts true/false and the usual spellings.
type BoolParser struct{}

func Bool() *BoolParser { return &BoolParser{} }

var boolForms = map[string]bool{
	"true": true, "yes": true, "on": true, "1": true,
	"false": false, "no": false, "off": false, "0": false,
}

func (p *BoolParser) Parse(_ *quarrel.Context, in *quarrel.CommandInput) (any, error) {
	tok, ok := in.Read()
	if !ok {
		return nil, fmt.Errorf("expected true or false")
	}
	v, ok := boolForms[strings.ToLower(tok)]
	if !ok {
		return nil, fmt.Errorf("%q is not a boolean", tok)
	}
	return v, nil
}

func (p *BoolParser) Suggestions(_ *quarrel.Context, partial string) []quarrel.Suggestion {
	var out []quarrel.Suggestion
	for _, v := range []string{"true", "false"} {
		if len(partial) <= len(v) && strings.EqualFold(v[:len(partial)], partial) {
			out = append(out, quarrel.Suggest(v))
		}
	}
	return out
}

func (p *BoolParser) ArgumentCount() int { return 1 }

// DurationParser parses Go duration syntax ("90s", "1h30m").
type DurationParser struct{}

func Duration() *DurationParser { return &DurationParser{} }

func (p *DurationParser) Parse(_ *quarrel.Context, in *quarrel.CommandInput) (any, error) {
	tok, ok := in.Read()
	if !ok {
		return nil, fmt.Errorf("expected a duration")
	}
	d, err := time.ParseDuration(tok)
	if err != nil {
		return nil, fmt.Errorf("%q is not a duration", tok)
	}
	return d, nil
}

// Suggestions offers unit completions once digits have been typed.
func (p *DurationParser) Suggestions(_ *quarrel.Context, partial string) []quarrel.Suggestion {
	if partial == "" {
		return nil
	}
	last := rune(partial[len(partial)-1])
	if !unicode.IsDigit(last) {
		return nil
	}
	var out []quarrel.Suggestion
	for _, unit := range []string{"ms", "s", "m", "h"} {
		out = append(out, quarrel.Suggest(partial+unit))
	}
	return out
}

func (p *DurationParser) ArgumentCount() int { return 1 }

// UUIDParser parses RFC 4122 UUIDs.
type UUIDParser struct{}

func UUID() *UUIDParser { return &UUIDParser{} }

func (p *UUIDParser) Parse(_ *quarrel.Context, in *quarrel.CommandInput) (any, error) {
	tok, ok := in.Read()
	if !ok {
		return nil, fmt.Errorf("expected a UUID")
	}
	id, err := uuid.Parse(tok)
	if err != nil {
		return nil, fmt.Errorf("%q is not a UUID", tok)
	}
	return id, nil
}

func (p *UUIDParser) Suggestions(_ *quarrel.Context, _ string) []quarrel.Suggestion {
	return nil
}

func (p *UUIDParser) ArgumentCount() int { return 1 }
