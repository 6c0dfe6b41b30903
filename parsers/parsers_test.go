// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package parsers

import (
	"reflect"
	"testing"
	"time"

	"github.com/quarrel-go/quarrel"
)

func parse(t *testing.T, p quarrel.Parser, tokens ...string) (any, error) {
	t.Helper()
	return p.Parse(nil, quarrel.NewInput(tokens))
}

func texts(suggestions []quarrel.Suggestion) []string {
	var out []string
	for _, s := range suggestions {
		out = append(out, s.Text)
	}
	return out
}

func TestIntParser(t *testing.T) {
	tests := []struct {
		name    string
		parser  *IntParser
		token   string
		want    int64
		wantErr bool
	}{
		{"plain", Int(), "42", 42, false},
		{"negative", Int(), "-7", -7, false},
		{"in range", IntRange(1, 64), "64", 64, false},
		{"below range", IntRange(1, 64), "0", 0, true},
		{"above range", IntRange(1, 64), "65", 0, true},
		{"not a number", Int(), "banana", 0, true},
		{"float rejected", Int(), "1.5", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parse(t, tc.parser, tc.token)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded, want error", tc.token)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.token, err)
			}
			if got.(int64) != tc.want {
				t.Errorf("Parse(%q) = %v, want %d", tc.token, got, tc.want)
			}
		})
	}
}

func TestIntParser_Suggestions(t *testing.T) {
	tests := []struct {
		name    string
		parser  *IntParser
		partial string
		want    []string
	}{
		{"empty bounded", IntRange(1, 9), "", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}},
		{"empty includes zero", IntRange(0, 3), "", []string{"0", "1", "2", "3"}},
		{"digit extension", IntRange(1, 25), "2", []string{"2", "20", "21", "22", "23", "24", "25"}},
		{"exact leaf", IntRange(1, 9), "7", []string{"7"}},
		{"out of range", IntRange(1, 9), "12", nil},
		{"negative start", IntRange(-15, -1), "-1", []string{"-1", "-10", "-11", "-12", "-13", "-14", "-15"}},
		{"dash against positive range", IntRange(1, 9), "-", nil},
		{"garbage", Int(), "x", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := texts(tc.parser.Suggestions(nil, tc.partial))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Suggestions(%q) = %v, want %v", tc.partial, got, tc.want)
			}
		})
	}
}

func TestFloatParser(t *testing.T) {
	got, err := parse(t, Float(), "3.25")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.(float64) != 3.25 {
		t.Errorf("Parse = %v, want 3.25", got)
	}

	if _, err := parse(t, FloatRange(0, 1), "1.5"); err == nil {
		t.Error("Parse(1.5) in [0,1] succeeded, want error")
	}
	if _, err := parse(t, Float(), "NaNope"); err == nil {
		t.Error("Parse(NaNope) succeeded, want error")
	}
}

func TestStringParser_Modes(t *testing.T) {
	t.Run("single takes one token", func(t *testing.T) {
		in := quarrel.NewInput([]string{"hello", "world"})
		got, err := String().Parse(nil, in)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got != "hello" {
			t.Errorf("Parse = %q, want %q", got, "hello")
		}
		if in.Remaining() != 1 {
			t.Errorf("Remaining = %d, want 1", in.Remaining())
		}
	})

	t.Run("greedy drains the input", func(t *testing.T) {
		in := quarrel.NewInput([]string{"hello", "there", "world"})
		got, err := GreedyString().Parse(nil, in)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got != "hello there world" {
			t.Errorf("Parse = %q", got)
		}
		if !in.IsEmpty() {
			t.Error("greedy parse left tokens behind")
		}
	})

	t.Run("greedy needs at least one token", func(t *testing.T) {
		if _, err := GreedyString().Parse(nil, quarrel.NewInput(nil)); err == nil {
			t.Error("Parse on empty input succeeded, want error")
		}
	})

	t.Run("quoted passthrough", func(t *testing.T) {
		got, err := parse(t, QuotedString(), "plain")
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got != "plain" {
			t.Errorf("Parse = %q", got)
		}
	})

	t.Run("quoted stitches raw tokens", func(t *testing.T) {
		got, err := parse(t, QuotedString(), `"hello`, "there", `world"`)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got != "hello there world" {
			t.Errorf("Parse = %q", got)
		}
	})

	t.Run("quoted single token with both quotes", func(t *testing.T) {
		got, err := parse(t, QuotedString(), `"hi"`)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got != "hi" {
			t.Errorf("Parse = %q", got)
		}
	})

	t.Run("unterminated quote", func(t *testing.T) {
		if _, err := parse(t, QuotedString(), `"hello`, "there"); err == nil {
			t.Error("Parse succeeded, want error")
		}
	})
}

func TestEnumParser(t *testing.T) {
	p := Enum("survival", "creative", "adventure")

	got, err := parse(t, p, "CREATIVE")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "creative" {
		t.Errorf("Parse = %q, want canonical spelling", got)
	}

	if _, err := parse(t, p, "spectator"); err == nil {
		t.Error("Parse(spectator) succeeded, want error")
	}

	want := []string{"survival"}
	if got := texts(p.Suggestions(nil, "SU")); !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions(SU) = %v, want %v", got, want)
	}
	if got := texts(p.Suggestions(nil, "")); len(got) != 3 {
		t.Errorf("Suggestions(\"\") = %v, want all values", got)
	}
}

func TestBoolParser(t *testing.T) {
	for tok, want := range map[string]bool{
		"true": true, "YES": true, "on": true, "1": true,
		"false": false, "No": false, "off": false, "0": false,
	} {
		got, err := parse(t, Bool(), tok)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tok, err)
		}
		if got.(bool) != want {
			t.Errorf("Parse(%q) = %v, want %v", tok, got, want)
		}
	}

	if _, err := parse(t, Bool(), "maybe"); err == nil {
		t.Error("Parse(maybe) succeeded, want error")
	}
}

func TestDurationParser(t *testing.T) {
	got, err := parse(t, Duration(), "1h30m")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.(time.Duration) != 90*time.Minute {
		t.Errorf("Parse = %v, want 1h30m", got)
	}

	if _, err := parse(t, Duration(), "forever"); err == nil {
		t.Error("Parse(forever) succeeded, want error")
	}

	want := []string{"30ms", "30s", "30m", "30h"}
	if got := texts(Duration().Suggestions(nil, "30")); !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions(30) = %v, want %v", got, want)
	}
	if got := Duration().Suggestions(nil, "30s"); got != nil {
		t.Errorf("Suggestions(30s) = %v, want none after a unit", got)
	}
}

func TestUUIDParser(t *testing.T) {
	const raw = "123e4567-e89b-12d3-a456-426614174000"
	got, err := parse(t, UUID(), raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got == nil {
		t.Fatal("Parse returned nil value")
	}

	if _, err := parse(t, UUID(), "not-a-uuid"); err == nil {
		t.Error("Parse(not-a-uuid) succeeded, want error")
	}
}
