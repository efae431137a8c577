// internal/cli/serve.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mwiater/steam-mcp/internal/logging"
	"github.com/mwiater/steam-mcp/internal/mcpserver"
	"github.com/mwiater/steam-mcp/internal/tools"
)

// serveCmd implements 'serve', which runs the MCP server on stdin/stdout.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the Steam tools over MCP on stdio",
	Long:  `The 'serve' command validates the configured Steam credential, builds the Steam Web API client and answers MCP requests on stdin/stdout until the input closes or the process is interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := logging.With("serve")
		log.Info().
			Str("steamId", currentConfig.SteamID).
			Str("steamApi", currentConfig.BaseURL()).
			Int("tools", len(reg.Definitions())).
			Msg("serving MCP on stdio")

		srv := mcpserver.New(reg, "steam-mcp", appVersion, mcpserver.WithLogger(logging.With("mcp")))
		err = srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("interrupted, shutting down")
			return nil
		}
		if err == nil {
			log.Info().Msg("input closed, shutting down")
		}
		return err
	},
}

// buildRegistry validates the credential, builds the Steam client eagerly and
// registers the tools.
func buildRegistry() (*tools.Registry, error) {
	if currentConfig == nil {
		return nil, errors.New("configuration not loaded")
	}
	if err := currentConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	svc := tools.NewService(*currentConfig)
	if err := svc.Warm(); err != nil {
		return nil, fmt.Errorf("steam client: %w", err)
	}
	return tools.NewRegistry(svc)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
