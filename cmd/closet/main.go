// Command closet searches the catalogue and manages closets from the
// terminal.
package main

import (
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
