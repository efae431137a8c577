// cmd/steam-mcp/main.go
package main

import (
	cmd "github.com/mwiater/steam-mcp/internal/cli"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the steam-mcp CLI by delegating to the cobra root command.
func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
