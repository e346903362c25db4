// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"fmt"
	"strings"
)

// Record is a point-in-time view of one process table entry.
// Name and Exe are nil when the OS did not report them.
type Record struct {
	PID     int32
	Name    *string
	Exe     *string
	Cmdline []string
}

// NameOrEmpty returns the process name, or "" when it is unknown.
func (r Record) NameOrEmpty() string {
	if r.Name == nil {
		return ""
	}
	return *r.Name
}

// CommandLine returns the arguments joined by single spaces.
func (r Record) CommandLine() string {
	return strings.Join(r.Cmdline, " ")
}

// BestExecutablePath returns the reported executable path when it is
// non-empty, then falls back to the first command-line argument, then to "".
func BestExecutablePath(r Record) string {
	if r.Exe != nil && *r.Exe != "" {
		return *r.Exe
	}
	if len(r.Cmdline) > 0 {
		return r.Cmdline[0]
	}
	return ""
}

// Reason classifies why a process table entry could not be read.
type Reason int

const (
	// ReasonGone means the process exited between listing and reading.
	ReasonGone Reason = iota
	// ReasonAccessDenied means none of the process details were readable.
	ReasonAccessDenied
	// ReasonZombie means the process has exited but was not yet reaped.
	ReasonZombie
)

// String returns a short label for the reason.
func (r Reason) String() string {
	switch r {
	case ReasonGone:
		return "gone"
	case ReasonAccessDenied:
		return "access denied"
	case ReasonZombie:
		return "zombie"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// ReadError reports a process table entry that was skipped.
type ReadError struct {
	PID    int32
	Reason Reason
	Err    error
}

func (e *ReadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("process %d: %s", e.PID, e.Reason)
	}
	return fmt.Sprintf("process %d: %s: %v", e.PID, e.Reason, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
