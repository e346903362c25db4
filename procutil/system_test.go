// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemSourceFindsCurrentProcess(t *testing.T) {
	pid := os.Getpid()
	q, err := NewQuery(strconv.Itoa(pid), Options{})
	require.NoError(t, err)

	matches, err := Find(context.Background(), NewSystemSource(), q)
	require.NoError(t, err)
	require.Len(t, matches, 1, "the test binary must find itself")

	rec := matches[0]
	assert.Equal(t, int32(pid), rec.PID)
	assert.NotEmpty(t, BestExecutablePath(rec))
	assert.NotEmpty(t, rec.Cmdline)
}

func TestSystemSourceFindsCurrentProcessByName(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	matches, err := Find(context.Background(), NewSystemSource(), mustQuery(t, filepath.Base(exe), Options{Cmd: true}))
	require.NoError(t, err)
	assert.Contains(t, pids(matches), int32(os.Getpid()))
}

func TestSystemSourceSnapshotEntries(t *testing.T) {
	entries, err := NewSystemSource().Snapshot(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		if e.Err == nil {
			continue
		}
		var re *ReadError
		assert.ErrorAs(t, e.Err, &re, "per-process failures must be ReadErrors")
	}
}

func TestSystemSourceUnknownPID(t *testing.T) {
	matches, err := Find(context.Background(), NewSystemSource(), mustQuery(t, "-1", Options{}))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func mustQuery(t *testing.T, raw string, opts Options) Query {
	t.Helper()
	q, err := NewQuery(raw, opts)
	require.NoError(t, err)
	return q
}
