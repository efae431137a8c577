// internal/cli/root.go
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/steam-mcp/internal/appconfig"
	"github.com/mwiater/steam-mcp/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// envBindings lists the environment variables read for each config key, in
// priority order. MY_STEAM_ID and MY_STEAM_KEY are the historical names.
var envBindings = map[string][]string{
	"steamId":      {"STEAM_MCP_STEAMID", "MY_STEAM_ID"},
	"steamKey":     {"STEAM_MCP_STEAMKEY", "MY_STEAM_KEY"},
	"steamBaseUrl": {"STEAM_MCP_STEAMBASEURL"},
	"timeout":      {"STEAM_MCP_TIMEOUT"},
	"debug":        {"STEAM_MCP_DEBUG"},
	"logFile":      {"STEAM_MCP_LOGFILE"},
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "steam-mcp",
	Short:        "Steam friends and games tools for MCP agent hosts",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(cmd.Flags().Changed("config")); err != nil {
			return err
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath(), currentConfig.Debug); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().String("steamId", "", "default Steam account id returned by get_my_steam_id")
	rootCmd.PersistentFlags().String("steamBaseUrl", "", "Steam Web API root (defaults to the public API)")
	rootCmd.PersistentFlags().Int("timeout", 0, "seconds to wait for Steam Web API responses (0 = default)")

	for _, name := range []string{"debug", "logFile", "steamId", "steamBaseUrl", "timeout"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	for key, envs := range envBindings {
		_ = viper.BindEnv(append([]string{key}, envs...)...)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file. A missing file is only an error
// when it was asked for explicitly with --config.
func ensureConfigLoaded(explicit bool) error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || (errors.Is(err, fs.ErrNotExist) && !explicit) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
