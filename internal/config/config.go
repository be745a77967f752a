// Package config handles the XDG configuration directory and API settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "tasklist"

	// ConfigFile is the API settings filename.
	ConfigFile = "config.json"

	// BaseURLEnv overrides the configured API base URL.
	BaseURLEnv = "TASKLIST_API_URL"

	// TokenEnv overrides the configured API token.
	TokenEnv = "TASKLIST_API_TOKEN"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the task API base URL, e.g. "https://tasks.example.com".
	BaseURL string

	// Token is an optional bearer token for the API.
	Token string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileSettings is the on-disk shape of config.json.
type fileSettings struct {
	BaseURL string `json:"base_url"`
	Token   string `json:"token,omitempty"`
}

// New creates a Config from the default or specified config directory.
// Settings come from config.json if present; TASKLIST_API_URL and
// TASKLIST_API_TOKEN take precedence over the file.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{Dir: dir}

	path := filepath.Join(dir, ConfigFile)
	if data, err := os.ReadFile(path); err == nil {
		var fs fileSettings
		if err := json.Unmarshal(data, &fs); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
		cfg.BaseURL = fs.BaseURL
		cfg.Token = fs.Token
	}

	if url := os.Getenv(BaseURLEnv); url != "" {
		cfg.BaseURL = url
	}
	if token := os.Getenv(TokenEnv); token != "" {
		cfg.Token = token
	}

	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasBaseURL reports whether an API base URL is configured.
func (c *Config) HasBaseURL() bool {
	return c.BaseURL != ""
}

// Save writes the current settings to config.json.
func (c *Config) Save() error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(fileSettings{
		BaseURL: c.BaseURL,
		Token:   c.Token,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.ConfigPath(), append(data, '\n'), 0600)
}
