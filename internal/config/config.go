/*
Package config handles loading and saving gadget-scout-mcp configuration.

Configuration is stored in ~/.gadget-scout-mcp.json and is read once at
startup; there is no hot-reload.

Schema:

	{
	  "server": {
	    "name": "gadget-scout-mcp",
	    "version": "1.0.0",
	    "description": "Intelligent context management for Gadget Spec Scout"
	  },
	  "settings": {
	    "maxHistory": 10,
	    "contextWindow": 3,
	    "enableAnalytics": true,
	    "analyticsDBPath": "~/.gadget-scout-mcp/analytics.db",
	    "logLevel": "info",
	    "logFile": ""
	  }
	}
*/
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied when the config file is missing or fields are unset.
const (
	DefaultServerName        = "gadget-scout-mcp"
	DefaultServerVersion     = "1.0.0"
	DefaultServerDescription = "Intelligent context management for Gadget Spec Scout"

	// DefaultMaxHistory is how many queries the conversation tracker keeps.
	DefaultMaxHistory = 10

	// DefaultContextWindow is how many recent queries summaries show.
	DefaultContextWindow = 3
)

// Config represents the root configuration structure.
type Config struct {
	// Server contains the identity strings reported to MCP clients.
	Server ServerInfo `json:"server"`

	// Settings contains global configuration options.
	Settings *Settings `json:"settings,omitempty"`
}

// ServerInfo identifies the server to MCP clients.
type ServerInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Settings contains global configuration options.
type Settings struct {
	// MaxHistory is the conversation history window size.
	MaxHistory int `json:"maxHistory,omitempty"`

	// ContextWindow is the number of recent queries shown in summaries.
	ContextWindow int `json:"contextWindow,omitempty"`

	// EnableAnalytics toggles persistent tool-call analytics.
	EnableAnalytics bool `json:"enableAnalytics"`

	// AnalyticsDBPath is the SQLite database location for analytics.
	AnalyticsDBPath string `json:"analyticsDBPath,omitempty"`

	// LogLevel controls log verbosity ("debug", "info", "warn", "error").
	LogLevel string `json:"logLevel,omitempty"`

	// LogFile redirects logging to a file when set (stderr otherwise).
	LogFile string `json:"logFile,omitempty"`
}

// NewConfig creates a configuration populated with defaults.
func NewConfig() *Config {
	return &Config{
		Server: ServerInfo{
			Name:        DefaultServerName,
			Version:     DefaultServerVersion,
			Description: DefaultServerDescription,
		},
		Settings: &Settings{
			MaxHistory:      DefaultMaxHistory,
			ContextWindow:   DefaultContextWindow,
			EnableAnalytics: true,
			AnalyticsDBPath: defaultAnalyticsDBPath(),
			LogLevel:        "info",
		},
	}
}

// GetDefaultConfigPath returns the path to ~/.gadget-scout-mcp.json
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".gadget-scout-mcp.json"), nil
}

// defaultAnalyticsDBPath returns ~/.gadget-scout-mcp/analytics.db, or ""
// if the home directory cannot be resolved (analytics then degrades to
// in-memory only).
func defaultAnalyticsDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gadget-scout-mcp", "analytics.db")
}

// Load reads the configuration from the default path.
func Load() (*Config, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadOrCreate reads the configuration from the default path, returning a
// default configuration if the file does not exist.
func LoadOrCreate() (*Config, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		var notFound *ConfigNotFoundError
		if errors.As(err, &notFound) {
			return NewConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFrom reads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigNotFoundError{
				Path: path,
				Hint: "A default configuration is used when this file is absent",
			}
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &InvalidConfigError{
			Path:    path,
			Message: fmt.Sprintf("JSON parse error: %v", err),
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the configuration to the specified path.
func Save(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyDefaults fills unset fields with their default values.
func (c *Config) applyDefaults() {
	if c.Server.Name == "" {
		c.Server.Name = DefaultServerName
	}
	if c.Server.Version == "" {
		c.Server.Version = DefaultServerVersion
	}
	if c.Settings == nil {
		c.Settings = NewConfig().Settings
		return
	}
	if c.Settings.MaxHistory <= 0 {
		c.Settings.MaxHistory = DefaultMaxHistory
	}
	if c.Settings.ContextWindow <= 0 {
		c.Settings.ContextWindow = DefaultContextWindow
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = "info"
	}
}
