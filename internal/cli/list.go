// internal/cli/list.go
package cli

import (
	"github.com/spf13/cobra"
)

// listCmd represents the 'list' command group for listing resources.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing resources",
	Long:  `The 'list' command groups subcommands that list the tools or commands steam-mcp provides.`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
