// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package version provides build version information and wires it into a
// cobra command's --version flag.
package version

import "fmt"

// Build metadata, overridden at build time:
//
//	go build -ldflags "-X github.com/jongio/whereproc/version.Version=1.2.3 \
//	  -X github.com/jongio/whereproc/version.GitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/jongio/whereproc/version.BuildDate=$(date -u +%Y-%m-%d)"
var (
	Version   = "0.0.0-dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Info holds version information for a binary.
type Info struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
	Name      string `json:"name"`
}

// New creates an Info for name from the build metadata.
func New(name string) *Info {
	return &Info{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		Name:      name,
	}
}

// String returns a human-readable version string.
func (i *Info) String() string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s)", i.Name, i.Version, i.GitCommit, i.BuildDate)
}
