//go:build windows
// +build windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

// isZombie always reports false: Windows has no zombie processes, and
// gopsutil does not implement Status there.
func isZombie(context.Context, *process.Process) bool {
	return false
}
