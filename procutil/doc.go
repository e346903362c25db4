// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package procutil finds running processes that match a query and reports
// where their executables live on disk.
//
// The process table is read once per call through a Source. SystemSource
// uses github.com/shirou/gopsutil/v4/process, which relies on
// platform-specific APIs:
//
//   - Windows: Native Windows API (OpenProcess, QueryFullProcessImageName)
//   - Linux: /proc filesystem
//   - macOS/BSD: sysctl system calls
//
// # Queries
//
// A query that parses as a base-10 integer selects a process by PID. Any
// other query is a pattern matched against the process name, or against the
// space-joined command line when Options.Cmd is set:
//
//   - default: case-insensitive substring
//   - Exact: case-insensitive equality
//   - Regex: RE2 search, case-insensitive unless the pattern says otherwise
//
// Regex takes precedence over Exact. PID queries ignore all three options.
//
// # Unreadable processes
//
// Processes that exit mid-scan, that cannot be read at all, or that are
// zombies are reported by the Source as a *ReadError and silently dropped by
// Find. They never abort a scan.
//
// # Example Usage
//
//	q, err := procutil.NewQuery("chrome", procutil.Options{Exact: true})
//	if err != nil {
//	    return err // only possible for an invalid regex
//	}
//	matches, err := procutil.Find(ctx, procutil.NewSystemSource(), q)
//	if err != nil {
//	    return err
//	}
//	for _, rec := range matches {
//	    fmt.Println(rec.PID, procutil.BestExecutablePath(rec))
//	}
package procutil
