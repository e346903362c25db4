// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package env reads prefixed environment variables into settings maps.
//
// Keys are matched case-insensitively. ExtractPattern can trim the prefix
// and transform what remains, which turns variables such as
// WHEREPROC_NO_COLOR=1 into a settings map {"no_color": "1"}:
//
//	settings := env.Settings(os.Environ(), "WHEREPROC_")
//	if v, ok := settings["no_color"]; ok {
//		// ...
//	}
package env
