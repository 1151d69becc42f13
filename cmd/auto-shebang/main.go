// SPDX-License-Identifier: MPL-2.0

// Command auto-shebang resolves script interpreters from filesystem
// ancestry. Invoked under its own name it is a management CLI; invoked
// through a symlink it resolves the link's name and execs the result.
package main

import (
	"os"

	"auto-shebang/internal/cli"
	"auto-shebang/internal/config"
)

func main() {
	// Embedders that link this package can neutralize the entry point.
	if os.Getenv(config.EnvLibrary) == "1" {
		return
	}
	cli.Execute()
}
