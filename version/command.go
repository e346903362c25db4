// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package version

import (
	"github.com/spf13/cobra"
)

// Attach enables cmd's --version flag and makes it print info.String().
//
// A flag is used instead of a "version" subcommand so that commands taking a
// free-form positional argument can still receive the word "version".
func Attach(cmd *cobra.Command, info *Info) {
	cmd.Version = info.Version
	cmd.SetVersionTemplate(info.String() + "\n")
}
