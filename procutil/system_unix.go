//go:build !windows
// +build !windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"
	"slices"

	"github.com/shirou/gopsutil/v4/process"
)

// isZombie reports whether the process has exited but not been reaped.
// A status that cannot be read is treated as not a zombie; later field reads
// catch processes that have disappeared.
func isZombie(ctx context.Context, p *process.Process) bool {
	status, err := p.StatusWithContext(ctx)
	if err != nil {
		return false
	}
	return slices.Contains(status, process.Zombie)
}
