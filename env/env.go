// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package env

import (
	"strings"
)

// SliceToMap converts KEY=VALUE entries into a map, skipping malformed rows.
// Later duplicates win, matching os.Getenv on most platforms.
func SliceToMap(envSlice []string) map[string]string {
	result := make(map[string]string, len(envSlice))
	for _, envVar := range envSlice {
		key, value, ok := strings.Cut(envVar, "=")
		if !ok || key == "" {
			continue
		}
		result[key] = value
	}
	return result
}

// PatternOptions configures prefix-based environment variable extraction.
type PatternOptions struct {
	// Prefix is the required prefix for keys (e.g., "WHEREPROC_")
	Prefix string

	// TrimPrefix removes the prefix from result keys if true
	TrimPrefix bool

	// Transform is an optional key transformation applied after trimming
	Transform func(string) string

	// Validator is an optional value filter; entries where it returns false are dropped
	Validator func(string) bool
}

// ExtractPattern extracts environment variables matching opts.Prefix with key
// transformation. Prefix matching is case-insensitive. Returns a new map.
//
// Example:
//
//	vars := map[string]string{"WHEREPROC_OUTPUT": "json", "HOME": "/root"}
//	got := env.ExtractPattern(vars, env.PatternOptions{
//		Prefix:     "WHEREPROC_",
//		TrimPrefix: true,
//		Transform:  strings.ToLower,
//	})
//	// Returns: {"output": "json"}
func ExtractPattern(envVars map[string]string, opts PatternOptions) map[string]string {
	result := make(map[string]string)
	if envVars == nil {
		return result
	}

	for k, v := range envVars {
		if len(k) < len(opts.Prefix) || !strings.EqualFold(k[:len(opts.Prefix)], opts.Prefix) {
			continue
		}
		if opts.Validator != nil && !opts.Validator(v) {
			continue
		}

		resultKey := k
		if opts.TrimPrefix {
			resultKey = k[len(opts.Prefix):]
		}
		if opts.Transform != nil {
			resultKey = opts.Transform(resultKey)
		}
		if resultKey == "" {
			continue
		}

		result[resultKey] = v
	}

	return result
}

// Settings returns the variables in envSlice that start with prefix, keyed by
// the lower-cased remainder of their name. Empty values are ignored so that
// an exported-but-blank variable does not override other settings.
func Settings(envSlice []string, prefix string) map[string]string {
	return ExtractPattern(SliceToMap(envSlice), PatternOptions{
		Prefix:     prefix,
		TrimPrefix: true,
		Transform:  strings.ToLower,
		Validator:  func(v string) bool { return v != "" },
	})
}
