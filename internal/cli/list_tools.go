// internal/cli/list_tools.go
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mwiater/steam-mcp/internal/appconfig"
	"github.com/mwiater/steam-mcp/internal/tools"
)

var (
	toolNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	toolArgStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// toolsCmd implements 'list tools', which prints every registered tool with
// its description and required arguments.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools exposed to MCP hosts",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg appconfig.Config
		if currentConfig != nil {
			cfg = *currentConfig
		}
		reg, err := tools.NewRegistry(tools.NewService(cfg))
		if err != nil {
			return err
		}
		renderTools(cmd.OutOrStdout(), reg.Definitions())
		return nil
	},
}

func renderTools(out io.Writer, defs []tools.Definition) {
	width := 0
	for _, def := range defs {
		width = max(width, len(def.Name))
	}

	fmt.Fprintln(out, "Tools:")
	for _, def := range defs {
		name := toolNameStyle.Render(def.Name + strings.Repeat(" ", width-len(def.Name)))
		line := fmt.Sprintf("  %s  %s", name, def.Description)
		if req := requiredArgs(def); len(req) > 0 {
			line += " " + toolArgStyle.Render("("+strings.Join(req, ", ")+")")
		}
		fmt.Fprintln(out, line)
	}
}

func requiredArgs(def tools.Definition) []string {
	req, _ := def.InputSchema["required"].([]string)
	return req
}

func init() {
	listCmd.AddCommand(toolsCmd)
}
