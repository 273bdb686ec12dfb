// Package config handles configuration loading and validation for remark.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/remark/internal/core/source"
	"github.com/colonyops/remark/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Source  SourceConfig `yaml:"source"`
	TUI     TUIConfig    `yaml:"tui"`
	Server  ServerConfig `yaml:"server"`
	DataDir string       `yaml:"-"` // set by caller, not from config file
}

// SourceConfig selects where the comment and post datasets are read from.
type SourceConfig struct {
	BaseURL      string        `yaml:"base_url"`
	CommentsPath string        `yaml:"comments_path"`
	PostsPath    string        `yaml:"posts_path"`
	Timeout      time.Duration `yaml:"timeout"` // zero disables the request timeout
	// Dir, when set, reads comments.json and posts.json from a local directory
	// instead of the HTTP endpoints.
	Dir string `yaml:"dir"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// ServerConfig holds settings for the JSON API served by `remark serve`.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			BaseURL:      source.DefaultBaseURL,
			CommentsPath: source.DefaultCommentsPath,
			PostsPath:    source.DefaultPostsPath,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Source.BaseURL == "" {
		c.Source.BaseURL = defaults.Source.BaseURL
	}
	if c.Source.CommentsPath == "" {
		c.Source.CommentsPath = defaults.Source.CommentsPath
	}
	if c.Source.PostsPath == "" {
		c.Source.PostsPath = defaults.Source.PostsPath
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = defaults.Server.CORSOrigins
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data directory cannot be empty")
	}

	if c.Source.Timeout < 0 {
		return errors.New("source.timeout cannot be negative")
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a known theme", c.TUI.Theme)
	}

	return nil
}

// LogFile returns the default log file path inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "remark.log")
}

// NewSource builds the dataset source described by the configuration.
func (c *Config) NewSource() (source.Source, error) {
	if c.Source.Dir != "" {
		return source.NewFileSource(c.Source.Dir), nil
	}
	return source.NewHTTPSource(source.HTTPOptions{
		BaseURL:      c.Source.BaseURL,
		CommentsPath: c.Source.CommentsPath,
		PostsPath:    c.Source.PostsPath,
		Timeout:      c.Source.Timeout,
	})
}
