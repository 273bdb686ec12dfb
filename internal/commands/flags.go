package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/remark/internal/core/config"
	"github.com/colonyops/remark/pkg/utils"
)

type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	DataDir      string
	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Warnings collects warn-and-above log lines while the TUI owns the
	// terminal. main flushes it to stderr on exit.
	Warnings *utils.DeferredWriter
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "remark", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "remark")
}
