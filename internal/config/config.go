// Package config loads CLI-wide defaults (hard limit, output format,
// default timezone) the same way the teacher loads its own settings:
// viper-backed YAML under the platform config directory, with
// programmatic defaults when no file exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the defaults applied to an expand/lint/explain invocation
// when the corresponding flag is left unset.
type Config struct {
	Timezone     string `mapstructure:"timezone" json:"timezone"`
	DefaultLimit int    `mapstructure:"default_limit" json:"default_limit"`
	DefaultFormat string `mapstructure:"default_format" json:"default_format"`
}

var defaultConfig = Config{
	Timezone:      "UTC",
	DefaultLimit:  10000,
	DefaultFormat: "json",
}

// Load reads ~/.config/recurrence/config.yaml (or OS-specific dir) with a
// fallback to the current directory, merging in programmatic defaults for
// anything the file doesn't set.
func Load() (*Config, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")

	viper.SetDefault("timezone", defaultConfig.Timezone)
	viper.SetDefault("default_limit", defaultConfig.DefaultLimit)
	viper.SetDefault("default_format", defaultConfig.DefaultFormat)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Set sets a configuration value and persists it to disk.
func (c *Config) Set(key, value string) error {
	viper.Set(key, value)

	switch key {
	case "timezone":
		if err := ValidateTimezone(value); err != nil {
			return err
		}
		c.Timezone = value
	case "default_limit":
		n, err := parsePositiveInt(value)
		if err != nil {
			return err
		}
		c.DefaultLimit = n
	case "default_format":
		if value != "json" && value != "text" {
			return fmt.Errorf("unsupported format %q (want json or text)", value)
		}
		c.DefaultFormat = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	return c.Save()
}

// Get returns a configuration value by key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "timezone":
		return c.Timezone, nil
	case "default_limit":
		return fmt.Sprintf("%d", c.DefaultLimit), nil
	case "default_format":
		return c.DefaultFormat, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// GetOrDefault returns the value for key, or def if empty/unknown.
func (c *Config) GetOrDefault(key, def string) string {
	v, err := c.Get(key)
	if err != nil || strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// List prints all configuration values to stdout.
func (c *Config) List() error {
	fmt.Printf("timezone: %s\n", c.Timezone)
	fmt.Printf("default_limit: %d\n", c.DefaultLimit)
	fmt.Printf("default_format: %s\n", c.DefaultFormat)
	return nil
}

// Save persists the current in-memory configuration to disk.
func (c *Config) Save() error {
	configDir, err := getConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return err
	}
	configFile := filepath.Join(configDir, "config.yaml")
	return viper.WriteConfigAs(configFile)
}

// getConfigDir returns the platform-appropriate config directory:
//   - Linux/macOS: $XDG_CONFIG_HOME/recurrence or ~/.config/recurrence
//   - Windows: %AppData%\recurrence
//
// Falls back to ~/.recurrence if UserConfigDir is unavailable.
func getConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "recurrence"), nil
	}

	if base, err := os.UserConfigDir(); err == nil && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "recurrence"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".recurrence"), nil
}

// ConfigDir returns the directory used to store configuration files.
func ConfigDir() (string, error) {
	return getConfigDir()
}

// ValidateTimezone checks the TZ identifier using the system tz database.
func ValidateTimezone(tz string) error {
	if strings.TrimSpace(tz) == "" {
		return fmt.Errorf("timezone cannot be empty")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return nil
}

func parsePositiveInt(value string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", value, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("default_limit must be positive, got %d", n)
	}
	return n, nil
}
