// internal/cli/call.go
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// callCmd implements 'call', a one-shot tool invocation without an MCP host.
var callCmd = &cobra.Command{
	Use:   "call <tool> [json-arguments]",
	Short: "Invoke a tool once and print its result",
	Long:  `The 'call' command runs a single tool with optional JSON arguments, e.g. steam-mcp call list_steam_games '{"steam_id":"76561197960287930"}'.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		arguments := map[string]any{}
		if len(args) == 2 {
			if err := json.Unmarshal([]byte(args[1]), &arguments); err != nil {
				return fmt.Errorf("arguments must be a JSON object: %w", err)
			}
		}

		reg, err := buildRegistry()
		if err != nil {
			return err
		}

		out, err := reg.Call(cmd.Context(), args[0], arguments)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(callCmd)
}
