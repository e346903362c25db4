// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil holds the process-wide slog logger.
//
// whereproc logs diagnostics only; results and user-facing notices are
// written directly by the command. A normal run emits no log records.
//
//	logutil.Setup(os.Stderr, debug, structured)
//	logutil.Debug("query parsed", "mode", mode)
//
//	log := logutil.NewLogger("procutil").WithOperation("find")
//	log.Debug("scan complete", "scanned", n)
//
// Text output:
//
//	time=2026-01-15T10:30:00Z level=DEBUG msg="scan complete" scanned=412
//
// JSON output (structured):
//
//	{"time":"2026-01-15T10:30:00Z","level":"DEBUG","msg":"scan complete","scanned":412}
package logutil
