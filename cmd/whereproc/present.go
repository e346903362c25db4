// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jongio/whereproc/cliout"
	"github.com/jongio/whereproc/procutil"
)

// processJSON is the JSON shape of one match. Field order is the output order.
type processJSON struct {
	PID     int32    `json:"pid"`
	Name    *string  `json:"name"`
	Exe     string   `json:"exe"`
	Cmdline []string `json:"cmdline"`
}

// presenter renders a MatchSet and picks the exit status.
type presenter struct {
	stdout  io.Writer
	stderr  io.Writer
	format  cliout.Format
	first   bool
	cmdline bool
}

func (p presenter) present(matches []procutil.Record) (int, error) {
	switch p.format {
	case cliout.FormatQuiet:
		return p.quiet(matches), nil
	case cliout.FormatJSON:
		return p.json(matches)
	default:
		return p.table(matches)
	}
}

// quiet prints the first match's executable path, or nothing.
func (p presenter) quiet(matches []procutil.Record) int {
	if len(matches) == 0 {
		return exitNoMatch
	}
	exe := procutil.BestExecutablePath(matches[0])
	if exe == "" {
		return exitNoMatch
	}
	cliout.Plain(p.stdout, "%s", exe)
	return exitMatch
}

func (p presenter) json(matches []procutil.Record) (int, error) {
	out := make([]processJSON, 0, len(matches))
	for _, rec := range matches {
		cmdline := rec.Cmdline
		if cmdline == nil {
			cmdline = []string{}
		}
		out = append(out, processJSON{
			PID:     rec.PID,
			Name:    rec.Name,
			Exe:     procutil.BestExecutablePath(rec),
			Cmdline: cmdline,
		})
	}

	if err := cliout.PrintJSON(p.stdout, out); err != nil {
		return exitError, fmt.Errorf("failed to write JSON: %w", err)
	}
	if len(matches) == 0 {
		return exitNoMatch, nil
	}
	return exitMatch, nil
}

func (p presenter) table(matches []procutil.Record) (int, error) {
	if len(matches) == 0 {
		cliout.Notice(p.stderr, "No matching processes found.")
		return exitNoMatch, nil
	}

	if p.first {
		rec := matches[0]
		line := fmt.Sprintf("%d %s %s", rec.PID, rec.NameOrEmpty(), procutil.BestExecutablePath(rec))
		if p.cmdline {
			line += " [" + rec.CommandLine() + "]"
		}
		cliout.Plain(p.stdout, "%s", line)
		return exitMatch, nil
	}

	headers := []string{"PID", "NAME", "EXE"}
	if p.cmdline {
		headers = append(headers, "CMDLINE")
	}

	rows := make([][]string, 0, len(matches))
	for _, rec := range matches {
		row := []string{
			strconv.FormatInt(int64(rec.PID), 10),
			rec.NameOrEmpty(),
			procutil.BestExecutablePath(rec),
		}
		if p.cmdline {
			row = append(row, rec.CommandLine())
		}
		rows = append(rows, row)
	}

	if err := cliout.Table(p.stdout, headers, rows); err != nil {
		return exitError, fmt.Errorf("failed to write table: %w", err)
	}
	return exitMatch, nil
}
