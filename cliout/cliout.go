// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cliout provides output formatting for CLI commands.
// It supports aligned tables, JSON, and a quiet single-value format, and
// keeps human-readable notices on a separate writer from primary output.
package cliout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/term"
)

// Format represents the output format.
type Format string

const (
	// FormatTable is the default human-readable table format.
	FormatTable Format = "table"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
	// FormatQuiet prints a single bare value or nothing.
	FormatQuiet Format = "quiet"
)

// ANSI codes used for table headers.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
)

// EnvNoColor disables color output when set to any non-empty value.
// See https://no-color.org.
const EnvNoColor = "NO_COLOR"

var (
	// noColor disables all color output
	noColor = false

	// mu protects global state variables
	mu sync.RWMutex
)

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	noColor = true
	mu.Unlock()
}

// getNoColor returns the current noColor setting (thread-safe).
func getNoColor() bool {
	mu.RLock()
	defer mu.RUnlock()
	return noColor
}

// colorEnabled reports whether w should receive ANSI escapes: it must be a
// terminal and color must not be disabled.
func colorEnabled(w io.Writer) bool {
	if getNoColor() || os.Getenv(EnvNoColor) != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ParseFormat converts a format name into a Format.
// The empty string selects FormatTable.
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(format) {
	case "table", "default", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "quiet":
		return FormatQuiet, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (valid options: table, json, quiet)", format)
	}
}

// PrintJSON writes data to w as JSON indented with two spaces.
// HTML characters are not escaped, so paths and command lines stay readable.
func PrintJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(data)
}

// Notice writes a human-readable line to w, typically stderr.
func Notice(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// Plain writes a line of text to w without any formatting.
func Plain(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// columnSeparator goes between table columns.
const columnSeparator = "  "

// Table writes an aligned table: a header line, a divider of dashes exactly
// as long as the header line, then one line per row. Every cell, the last
// column included, is left-justified and padded to the widest header or
// data cell in its column. Widths are counted in runes.
//
// Rows shorter than headers are padded with empty cells; extra cells are
// ignored. The header is bold when w is a color-capable terminal; widths and
// the divider are always computed on the plain text.
func Table(w io.Writer, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range rows {
		for i := range headers {
			if i < len(row) {
				widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
			}
		}
	}

	headerLine := formatRow(headers, widths)
	divider := strings.Repeat("-", utf8.RuneCountInString(headerLine))

	var b strings.Builder
	if colorEnabled(w) {
		b.WriteString(Bold + headerLine + Reset + "\n")
	} else {
		b.WriteString(headerLine + "\n")
	}
	b.WriteString(divider + "\n")
	for _, row := range rows {
		b.WriteString(formatRow(row, widths) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// formatRow pads each cell to its column width and joins the cells.
func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(widths))
	for i, width := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = PadRight(cell, width)
	}
	return strings.Join(padded, columnSeparator)
}

// PadRight left-justifies s in a field of width runes.
func PadRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
