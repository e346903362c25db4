// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidPattern indicates a regular expression query failed to compile.
var ErrInvalidPattern = errors.New("invalid pattern")

// MatchMode selects how a pattern is compared against a field.
type MatchMode int

const (
	// MatchSubstring matches when the pattern occurs anywhere in the field, ignoring case.
	MatchSubstring MatchMode = iota
	// MatchExact matches when the field equals the pattern, ignoring case.
	MatchExact
	// MatchRegex matches when the compiled expression finds a match in the field.
	MatchRegex
)

func (m MatchMode) String() string {
	switch m {
	case MatchSubstring:
		return "substring"
	case MatchExact:
		return "exact"
	case MatchRegex:
		return "regex"
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

// Field selects which part of a Record a pattern is compared against.
type Field int

const (
	// FieldName compares against the process name.
	FieldName Field = iota
	// FieldCmdline compares against the space-joined command line.
	FieldCmdline
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldCmdline:
		return "cmdline"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Options are the user-selectable matching flags.
type Options struct {
	// Exact requires case-insensitive equality instead of a substring match.
	Exact bool
	// Regex treats the query as a regular expression. It wins over Exact.
	Regex bool
	// Cmd matches against the command line instead of the process name.
	Cmd bool
}

// Query is an immutable, validated process query.
type Query struct {
	raw    string
	pid    int64
	byPID  bool
	mode   MatchMode
	field  Field
	needle string
	re     *regexp.Regexp
}

// ParsePID reports whether query is a base-10 integer and returns its value.
// Surrounding whitespace is ignored, and single underscores may separate
// digits ("1_000"). Anything else makes it a pattern.
func ParsePID(query string) (int64, bool) {
	s := strings.TrimSpace(query)
	if strings.Contains(s, "_") {
		var ok bool
		if s, ok = stripDigitSeparators(s); !ok {
			return 0, false
		}
	}
	pid, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return pid, true
}

// stripDigitSeparators drops underscores that sit between two digits.
// Any other underscore means s is not a number.
func stripDigitSeparators(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// NewQuery builds a Query from raw user input.
//
// Integer input selects PID mode and the options are ignored. Otherwise the
// options pick the match mode and field. An invalid regular expression is
// reported as an error wrapping ErrInvalidPattern.
func NewQuery(raw string, opts Options) (Query, error) {
	q := Query{raw: raw}

	if pid, ok := ParsePID(raw); ok {
		q.byPID = true
		q.pid = pid
		return q, nil
	}

	if opts.Cmd {
		q.field = FieldCmdline
	}

	switch {
	case opts.Regex:
		re, err := regexp.Compile("(?i)" + raw)
		if err != nil {
			return Query{}, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
		}
		q.mode = MatchRegex
		q.re = re
	case opts.Exact:
		q.mode = MatchExact
		q.needle = strings.ToLower(raw)
	default:
		q.mode = MatchSubstring
		q.needle = strings.ToLower(raw)
	}

	return q, nil
}

// PID returns the PID being searched for and whether the query is in PID mode.
func (q Query) PID() (int64, bool) {
	return q.pid, q.byPID
}

// Mode returns the pattern match mode. It is meaningless in PID mode.
func (q Query) Mode() MatchMode {
	return q.mode
}

// Field returns the field patterns are compared against.
func (q Query) Field() Field {
	return q.field
}

// String returns the query as the user typed it.
func (q Query) String() string {
	return q.raw
}

// Match reports whether r satisfies the query.
func (q Query) Match(r Record) bool {
	if q.byPID {
		return int64(r.PID) == q.pid
	}

	var value string
	if q.field == FieldCmdline {
		value = r.CommandLine()
	} else {
		value = r.NameOrEmpty()
	}
	if value == "" {
		return false
	}

	switch q.mode {
	case MatchRegex:
		return q.re.MatchString(value)
	case MatchExact:
		return strings.ToLower(value) == q.needle
	default:
		return strings.Contains(strings.ToLower(value), q.needle)
	}
}
