// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.RWMutex
	global *slog.Logger
	debug  bool
)

func init() {
	Setup(os.Stderr, false, false)
}

// Setup replaces the global logger. Records go to w as text, or as JSON when
// structured is set. Debug records are dropped unless debugEnabled is set.
//
// This function is safe for concurrent use.
func Setup(w io.Writer, debugEnabled, structured bool) {
	level := slog.LevelInfo
	if debugEnabled {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if structured {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	mu.Lock()
	defer mu.Unlock()
	debug = debugEnabled
	global = slog.New(handler)
	slog.SetDefault(global)
}

// IsDebugEnabled reports whether the last Setup enabled debug records.
func IsDebugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return debug
}

// Debug logs at debug level.
//
//	logutil.Debug("query parsed", "mode", "regex", "field", "cmdline")
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// Logger returns the current global logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}
