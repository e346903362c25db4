// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"
	"fmt"

	"github.com/jongio/whereproc/logutil"
)

// Entry is one process table slot in a snapshot. Exactly one of Record and
// Err is meaningful: when Err is non-nil the entry is skipped.
type Entry struct {
	Record Record
	Err    error
}

// Source produces a snapshot of the process table.
type Source interface {
	Snapshot(ctx context.Context) ([]Entry, error)
}

// Find returns every record from one snapshot of src that matches q, in the
// order the source reported them. An empty result is not an error.
//
// Entries carrying an error are dropped without aborting the scan. Only a
// failure to produce the snapshot itself is returned.
func Find(ctx context.Context, src Source, q Query) ([]Record, error) {
	log := logutil.NewLogger("procutil").WithOperation("find")
	if pid, ok := q.PID(); ok {
		log = log.WithFields("pid", pid)
	} else {
		log = log.WithFields("query", q.String(), "mode", q.Mode(), "field", q.Field())
	}

	entries, err := src.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	matches := make([]Record, 0)
	skipped := 0
	for _, e := range entries {
		if e.Err != nil {
			skipped++
			continue
		}
		if q.Match(e.Record) {
			matches = append(matches, e.Record)
		}
	}

	log.Debug("scan complete",
		"scanned", len(entries),
		"skipped", skipped,
		"matched", len(matches))

	return matches, nil
}

// StaticSource serves a fixed snapshot. It is useful for tests and for
// replaying a previously captured table.
type StaticSource []Entry

// Snapshot returns a copy of the entries.
func (s StaticSource) Snapshot(context.Context) ([]Entry, error) {
	out := make([]Entry, len(s))
	copy(out, s)
	return out, nil
}
