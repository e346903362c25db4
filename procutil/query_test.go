// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"errors"
	"testing"
)

func strPtr(s string) *string {
	return &s
}

func named(pid int32, name string, cmdline ...string) Record {
	return Record{PID: pid, Name: strPtr(name), Cmdline: cmdline}
}

func TestParsePID(t *testing.T) {
	tests := []struct {
		input  string
		want   int64
		wantOK bool
	}{
		{"123", 123, true},
		{"1", 1, true},
		{" 42 ", 42, true},
		{"+7", 7, true},
		{"-1", -1, true},
		{"0", 0, true},
		{"", 0, false},
		{"12a", 0, false},
		{"1.5", 0, false},
		{"0x10", 0, false},
		{"chrome", 0, false},
		{"99999999999999999999", 0, false},
		{"1_000", 1000, true},
		{"-1_2_3", -123, true},
		{"1__0", 0, false},
		{"_1", 0, false},
		{"1_", 0, false},
		{"-_1", 0, false},
		{"my_proc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParsePID(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParsePID(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewQueryModes(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		opts      Options
		wantPID   bool
		wantMode  MatchMode
		wantField Field
	}{
		{"default substring", "chr", Options{}, false, MatchSubstring, FieldName},
		{"exact", "chrome", Options{Exact: true}, false, MatchExact, FieldName},
		{"regex", "^chr", Options{Regex: true}, false, MatchRegex, FieldName},
		{"regex wins over exact", "^chr", Options{Regex: true, Exact: true}, false, MatchRegex, FieldName},
		{"cmdline field", "--port", Options{Cmd: true}, false, MatchSubstring, FieldCmdline},
		{"pid", "1", Options{}, true, MatchSubstring, FieldName},
		{"pid ignores options", "1", Options{Regex: true, Exact: true, Cmd: true}, true, MatchSubstring, FieldName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuery(tt.raw, tt.opts)
			if err != nil {
				t.Fatalf("NewQuery() error = %v", err)
			}
			if _, byPID := q.PID(); byPID != tt.wantPID {
				t.Errorf("PID mode = %v, want %v", byPID, tt.wantPID)
			}
			if !tt.wantPID {
				if q.Mode() != tt.wantMode {
					t.Errorf("Mode() = %v, want %v", q.Mode(), tt.wantMode)
				}
				if q.Field() != tt.wantField {
					t.Errorf("Field() = %v, want %v", q.Field(), tt.wantField)
				}
			}
			if q.String() != tt.raw {
				t.Errorf("String() = %q, want %q", q.String(), tt.raw)
			}
		})
	}
}

func TestNewQueryInvalidRegex(t *testing.T) {
	for _, pattern := range []string{"(chrome", "[a-", "a**", "(?<=x)y"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := NewQuery(pattern, Options{Regex: true})
			if err == nil {
				t.Fatalf("expected error for pattern %q", pattern)
			}
			if !errors.Is(err, ErrInvalidPattern) {
				t.Errorf("expected ErrInvalidPattern, got %v", err)
			}
		})
	}
}

func TestNewQueryInvalidRegexIgnoredWithoutFlag(t *testing.T) {
	if _, err := NewQuery("(chrome", Options{}); err != nil {
		t.Errorf("substring query should not compile a regex, got %v", err)
	}
}

func TestQueryMatch(t *testing.T) {
	chrome := named(100, "Chrome", "/opt/google/chrome/chrome", "--type=renderer")
	chromium := named(101, "Chromium", "/usr/lib/chromium/chromium")

	tests := []struct {
		name string
		raw  string
		opts Options
		rec  Record
		want bool
	}{
		{"substring hit", "chr", Options{}, chrome, true},
		{"substring case-insensitive", "CHR", Options{}, chrome, true},
		{"substring miss", "xyz", Options{}, chrome, false},
		{"exact hit ignores case", "chrome", Options{Exact: true}, chrome, true},
		{"exact rejects longer name", "chrome", Options{Exact: true}, chromium, false},
		{"regex anchored", "^chr.*e$", Options{Regex: true}, chrome, true},
		{"regex search anywhere", "rom", Options{Regex: true}, chromium, true},
		{"regex default ignores case", "^CHROME$", Options{Regex: true}, chrome, true},
		{"regex inline case override", "(?-i)^chrome$", Options{Regex: true}, chrome, false},
		{"regex beats exact", "chrom", Options{Regex: true, Exact: true}, chromium, true},
		{"cmdline substring", "type=renderer", Options{Cmd: true}, chrome, true},
		{"cmdline joined with spaces", "chrome --type", Options{Cmd: true}, chrome, true},
		{"cmdline not name", "type=renderer", Options{}, chrome, false},
		{"cmdline exact", "/usr/lib/chromium/chromium", Options{Cmd: true, Exact: true}, chromium, true},
		{"cmdline regex", `--type=\w+$`, Options{Cmd: true, Regex: true}, chrome, true},
		{"pid hit", "100", Options{}, chrome, true},
		{"pid miss", "101", Options{}, chrome, false},
		{"pid with surrounding space", " 100 ", Options{}, chrome, true},
		{"pid ignores cmd flag", "100", Options{Cmd: true}, Record{PID: 100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuery(tt.raw, tt.opts)
			if err != nil {
				t.Fatalf("NewQuery() error = %v", err)
			}
			if got := q.Match(tt.rec); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryMatchEmptyFieldNeverMatches(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		rec  Record
	}{
		{"nil name", Options{}, Record{PID: 5, Cmdline: []string{"x"}}},
		{"empty name", Options{}, named(5, "")},
		{"nil cmdline", Options{Cmd: true}, named(5, "x")},
		{"empty cmdline", Options{Cmd: true}, Record{PID: 5, Name: strPtr("x"), Cmdline: []string{}}},
		{"regex empty name", Options{Regex: true}, named(5, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The empty pattern is a substring of every non-empty field.
			q, err := NewQuery("", tt.opts)
			if err != nil {
				t.Fatalf("NewQuery() error = %v", err)
			}
			if q.Match(tt.rec) {
				t.Errorf("expected no match for empty field")
			}
		})
	}
}

func TestModeAndFieldStrings(t *testing.T) {
	if MatchSubstring.String() != "substring" || MatchExact.String() != "exact" || MatchRegex.String() != "regex" {
		t.Error("unexpected MatchMode labels")
	}
	if FieldName.String() != "name" || FieldCmdline.String() != "cmdline" {
		t.Error("unexpected Field labels")
	}
	if MatchMode(9).String() != "MatchMode(9)" {
		t.Errorf("got %q", MatchMode(9).String())
	}
}
