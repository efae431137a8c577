package appconfig

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	labelColor   = color.New(color.FgCyan).SprintFunc()
	missingColor = color.New(color.FgRed).SprintFunc()
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using flags and environment).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	steamID := cfg.SteamID
	if steamID == "" {
		steamID = missingColor("(not set)")
	}
	key := cfg.MaskedKey()
	if cfg.SteamKey == "" {
		key = missingColor(key)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  %s        %s\n", labelColor("Steam ID:"), steamID)
	fmt.Fprintf(out, "  %s       %s\n", labelColor("Steam Key:"), key)
	fmt.Fprintf(out, "  %s  %s\n", labelColor("Steam API URL:"), cfg.BaseURL())
	fmt.Fprintf(out, "  %s         %s\n", labelColor("Timeout:"), cfg.RequestTimeout())
	fmt.Fprintf(out, "  %s           %v\n", labelColor("Debug:"), cfg.Debug)
	fmt.Fprintf(out, "  %s        %s\n", labelColor("Log File:"), cfg.LogFilePath())
}
