// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package testutil provides common testing utilities: capturing the process'
// standard streams and creating temporary directories.
package testutil

import (
	"io"
	"os"
	"strings"
	"testing"
)

// CaptureStreams captures stdout and stderr during function execution and
// returns them separately. Both streams are restored before returning, even
// if fn returns an error.
//
//	stdout, stderr := testutil.CaptureStreams(t, func() error {
//	    fmt.Println("/usr/bin/python3")
//	    return nil
//	})
func CaptureStreams(t *testing.T, fn func() error) (stdout, stderr string) {
	t.Helper()

	origStdout, origStderr := os.Stdout, os.Stderr

	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stdout pipe: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stderr pipe: %v", err)
	}

	os.Stdout, os.Stderr = outW, errW

	// Buffered so the readers never block after the test gives up.
	outCh := make(chan string, 1)
	errCh := make(chan string, 1)
	go drain(outR, outCh)
	go drain(errR, errCh)

	fnErr := fn()

	if err := outW.Close(); err != nil {
		t.Logf("Failed to close stdout pipe writer: %v", err)
	}
	if err := errW.Close(); err != nil {
		t.Logf("Failed to close stderr pipe writer: %v", err)
	}
	os.Stdout, os.Stderr = origStdout, origStderr

	stdout, stderr = <-outCh, <-errCh

	if fnErr != nil {
		t.Logf("Command error: %v", fnErr)
	}

	return stdout, stderr
}

func drain(r io.Reader, out chan<- string) {
	var b strings.Builder
	_, _ = io.Copy(&b, r)
	out <- b.String()
}

// TempDir creates a temporary directory for testing with automatic cleanup.
// The directory is created with secure permissions (0700) and is removed when
// the test completes via t.Cleanup().
func TempDir(t *testing.T) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "whereproc-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Logf("Failed to clean up temp directory %s: %v", tmpDir, err)
		}
	})

	return tmpDir
}
