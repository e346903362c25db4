// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/shirou/gopsutil/v4/process"
)

// SystemSource reads the live process table of the local host.
type SystemSource struct{}

// NewSystemSource returns a Source backed by the operating system.
func NewSystemSource() *SystemSource {
	return &SystemSource{}
}

// Snapshot lists every process and reads its pid, name, executable path and
// command line. Per-process failures are recorded on the entry.
func (s *SystemSource) Snapshot(ctx context.Context) ([]Entry, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get processes: %w", err)
	}

	entries := make([]Entry, 0, len(procs))
	for _, p := range procs {
		rec, err := readRecord(ctx, p)
		entries = append(entries, Entry{Record: rec, Err: err})
	}
	return entries, nil
}

// fieldState is the outcome of reading a single optional field.
type fieldState int

const (
	fieldOK fieldState = iota
	fieldUnavailable
	fieldDenied
	fieldGone
)

// readRecord captures one process. Fields that are denied or unavailable
// stay empty; the record is rejected only when the process is gone, is a
// zombie, or exposes nothing at all. A partly readable process is still
// reported, with the unreadable fields left nil.
func readRecord(ctx context.Context, p *process.Process) (Record, error) {
	if isZombie(ctx, p) {
		return Record{}, &ReadError{PID: p.Pid, Reason: ReasonZombie}
	}

	rec := Record{PID: p.Pid}
	denied := 0

	name, err := p.NameWithContext(ctx)
	switch classifyFieldError(ctx, p, err) {
	case fieldOK:
		rec.Name = &name
	case fieldGone:
		return Record{}, &ReadError{PID: p.Pid, Reason: ReasonGone, Err: err}
	case fieldDenied:
		denied++
	}

	exe, err := p.ExeWithContext(ctx)
	switch classifyFieldError(ctx, p, err) {
	case fieldOK:
		rec.Exe = &exe
	case fieldGone:
		return Record{}, &ReadError{PID: p.Pid, Reason: ReasonGone, Err: err}
	case fieldDenied:
		denied++
	}

	cmdline, err := p.CmdlineSliceWithContext(ctx)
	switch classifyFieldError(ctx, p, err) {
	case fieldOK:
		rec.Cmdline = cmdline
	case fieldGone:
		return Record{}, &ReadError{PID: p.Pid, Reason: ReasonGone, Err: err}
	case fieldDenied:
		denied++
	}

	if denied == 3 {
		return Record{}, &ReadError{PID: p.Pid, Reason: ReasonAccessDenied, Err: fs.ErrPermission}
	}
	return rec, nil
}

// classifyFieldError decides what a field read error means for the record.
// Errors other than permission failures are checked against the process'
// liveness: a vanished process is gone, a live one simply lacks the field
// (kernel threads have no executable, for example).
func classifyFieldError(ctx context.Context, p *process.Process, err error) fieldState {
	if err == nil {
		return fieldOK
	}
	if errors.Is(err, process.ErrorProcessNotRunning) {
		return fieldGone
	}
	if errors.Is(err, fs.ErrPermission) {
		return fieldDenied
	}

	running, rerr := p.IsRunningWithContext(ctx)
	switch {
	case rerr != nil && errors.Is(rerr, fs.ErrPermission):
		return fieldUnavailable
	case rerr != nil, !running:
		return fieldGone
	}
	return fieldUnavailable
}
