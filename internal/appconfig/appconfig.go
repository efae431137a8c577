// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mwiater/steam-mcp/internal/steam"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultLogFile is the log file written when the config omits one.
	defaultLogFile = "steam-mcp.log"
)

var (
	// ErrMissingSteamID is returned when no default account identifier is configured.
	ErrMissingSteamID = errors.New("steamId must be configured (config file, --steamId or MY_STEAM_ID)")
	// ErrMissingSteamKey is returned when no Steam Web API key is configured.
	ErrMissingSteamKey = errors.New("steamKey must be configured (config file or MY_STEAM_KEY)")
)

// Config represents the top-level application configuration.
type Config struct {
	SteamID        string `json:"steamId" mapstructure:"steamId"`
	SteamKey       string `json:"steamKey" mapstructure:"steamKey"`
	SteamBaseURL   string `json:"steamBaseUrl,omitempty" mapstructure:"steamBaseUrl"`
	TimeoutSeconds int    `json:"timeout,omitempty" mapstructure:"timeout"`
	Debug          bool   `json:"debug" mapstructure:"debug"`
	LogFile        string `json:"logFile,omitempty" mapstructure:"logFile"`
	ConfigPath     string `json:"-" mapstructure:"-"`
}

// Validate reports whether the credential needed by every tool is present.
// Both values are required at startup, not at first request.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.SteamID) == "" {
		errs = append(errs, ErrMissingSteamID)
	}
	if strings.TrimSpace(c.SteamKey) == "" {
		errs = append(errs, ErrMissingSteamKey)
	}
	return errors.Join(errs...)
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return steam.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BaseURL returns the Steam Web API root with any trailing slash removed.
func (c Config) BaseURL() string {
	if u := strings.TrimSpace(c.SteamBaseURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return steam.DefaultBaseURL
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// MaskedKey returns the API key with everything but the last four characters hidden.
func (c Config) MaskedKey() string {
	key := strings.TrimSpace(c.SteamKey)
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// Load reads the application configuration from the specified path and validates it.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(steam.DefaultTimeout.Seconds())
	}

	return config, nil
}
