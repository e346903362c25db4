// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Command whereproc shows the executable path of running processes that
// match a PID, a name, a regular expression, or a command line.
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(newApp().run(context.Background(), os.Args[1:]))
}
