// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Vimeo    VimeoConfig    `toml:"vimeo"`
	YouTube  YouTubeConfig  `toml:"youtube"`
	Import   ImportConfig   `toml:"import"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// VimeoConfig configures the source host client and the catalog fetcher.
type VimeoConfig struct {
	AccessToken      string `toml:"access_token"`
	BaseURL          string `toml:"base_url"`
	PageSize         int    `toml:"page_size"`
	RequestSpacingMS int    `toml:"request_spacing_ms"`
	MaxRetries       int    `toml:"max_retries"`
}

// RequestSpacing returns the minimum spacing between catalog requests.
func (c VimeoConfig) RequestSpacing() time.Duration {
	return time.Duration(c.RequestSpacingMS) * time.Millisecond
}

// YouTubeConfig configures the destination platform client.
type YouTubeConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// ImportConfig holds default import options and the status poll interval.
// The defaults are snapshotted onto each queued item at creation time;
// changing them later does not affect items already in the queue.
type ImportConfig struct {
	PollIntervalSecs int    `toml:"poll_interval_secs"`
	Visibility       string `toml:"visibility"`
	Language         string `toml:"language"`
	Tags             string `toml:"tags"`
	Category         string `toml:"category"`
}

// PollInterval returns the destination status poll interval.
func (c ImportConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSecs) * time.Second
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8480
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/vodarr.db"
	}
	if c.Vimeo.PageSize == 0 {
		c.Vimeo.PageSize = 50
	}
	if c.Vimeo.RequestSpacingMS == 0 {
		c.Vimeo.RequestSpacingMS = 1000
	}
	if c.Vimeo.MaxRetries == 0 {
		c.Vimeo.MaxRetries = 5
	}
	if c.Import.PollIntervalSecs == 0 {
		c.Import.PollIntervalSecs = 15
	}
	if c.Import.Visibility == "" {
		c.Import.Visibility = "private"
	}
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
// Unresolved variables are reported in the second return value.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string
	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		missing = append(missing, varName)
		return match
	})
	return result, missing
}
