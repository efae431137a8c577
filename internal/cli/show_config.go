// internal/cli/show_config.go
package cli

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/steam-mcp/internal/appconfig"
)

var showConfigRaw bool

// showConfigCmd implements 'show config', which prints the merged
// configuration with the API key masked.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by environment and flags accordingly. With --raw the merged config struct is dumped as is, key masked.`,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg appconfig.Config
		if currentConfig != nil {
			cfg = *currentConfig
		}
		if showConfigRaw {
			cfg.SteamKey = cfg.MaskedKey()
			pp.Fprintln(cmd.OutOrStdout(), cfg)
			return
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), cfg)
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showConfigRaw, "raw", false, "dump the merged config struct")
	showCmd.AddCommand(showConfigCmd)
}
