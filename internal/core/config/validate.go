package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/remark/internal/core/source"
	"github.com/colonyops/remark/internal/core/styles"
	"github.com/colonyops/remark/internal/core/validate"
)

// ValidateDeep performs comprehensive validation of the configuration including
// endpoint URLs, dataset directories and listen addresses. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, validate.DirOrMissing),
		c.validateSource(),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
		criterio.Run("server.addr", c.Server.Addr, validate.ListenAddr),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validateSource checks the HTTP endpoints, or the dataset directory when set.
func (c *Config) validateSource() error {
	var errs criterio.FieldErrorsBuilder

	if c.Source.Dir != "" {
		for _, name := range []string{source.CommentsFile, source.PostsFile} {
			path := filepath.Join(c.Source.Dir, name)
			if _, err := os.Stat(path); err != nil {
				errs = errs.Append("source.dir", fmt.Errorf("dataset file not found: %s", path))
			}
		}
		return errs.ToError()
	}

	if err := validate.HTTPURL(c.Source.BaseURL); err != nil {
		errs = errs.Append("source.base_url", err)
	}
	if err := validate.URLPath(c.Source.CommentsPath); err != nil {
		errs = errs.Append("source.comments_path", err)
	}
	if err := validate.URLPath(c.Source.PostsPath); err != nil {
		errs = errs.Append("source.posts_path", err)
	}
	return errs.ToError()
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}
