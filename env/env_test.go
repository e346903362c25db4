// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package env

import (
	"reflect"
	"strings"
	"testing"
)

func TestSliceToMap_SkipsMalformedRows(t *testing.T) {
	got := SliceToMap([]string{
		"A=1",
		"MALFORMED",
		"B=x=y",
		"=nokey",
		"C=",
		"A=2",
	})
	want := map[string]string{"A": "2", "B": "x=y", "C": ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SliceToMap() = %v, want %v", got, want)
	}
}

func TestExtractPatternPrefixOnly(t *testing.T) {
	tests := []struct {
		name   string
		vars   map[string]string
		prefix string
		want   map[string]string
	}{
		{
			name:   "case-insensitive keys",
			vars:   map[string]string{"WHEREPROC_OUTPUT": "json", "whereproc_debug": "1", "HOME": "/root"},
			prefix: "WHEREPROC_",
			want:   map[string]string{"WHEREPROC_OUTPUT": "json", "whereproc_debug": "1"},
		},
		{
			name:   "nil map",
			vars:   nil,
			prefix: "X_",
			want:   map[string]string{},
		},
		{
			name:   "key shorter than prefix",
			vars:   map[string]string{"WH": "1"},
			prefix: "WHEREPROC_",
			want:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPattern(tt.vars, PatternOptions{Prefix: tt.prefix})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractPattern() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractPattern(t *testing.T) {
	vars := map[string]string{
		"WHEREPROC_OUTPUT":   "json",
		"WHEREPROC_NO_COLOR": "",
		"WHEREPROC_":         "bare",
		"PATH":               "/usr/bin",
	}

	got := ExtractPattern(vars, PatternOptions{
		Prefix:     "WHEREPROC_",
		TrimPrefix: true,
		Transform:  strings.ToLower,
	})
	want := map[string]string{"output": "json", "no_color": ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractPattern() = %v, want %v", got, want)
	}
}

func TestExtractPatternValidator(t *testing.T) {
	vars := map[string]string{"P_A": "", "P_B": "set"}
	got := ExtractPattern(vars, PatternOptions{
		Prefix:    "P_",
		Validator: func(v string) bool { return v != "" },
	})
	if !reflect.DeepEqual(got, map[string]string{"P_B": "set"}) {
		t.Errorf("ExtractPattern() = %v", got)
	}
}

func TestSettings(t *testing.T) {
	got := Settings([]string{
		"WHEREPROC_OUTPUT=json",
		"WHEREPROC_No_Color=1",
		"WHEREPROC_DEBUG=",
		"HOME=/root",
	}, "WHEREPROC_")
	want := map[string]string{"output": "json", "no_color": "1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Settings() = %v, want %v", got, want)
	}
}
