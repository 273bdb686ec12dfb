package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/remark/internal/commands"
	"github.com/colonyops/remark/internal/core/config"
	"github.com/colonyops/remark/internal/core/logging"
	"github.com/colonyops/remark/internal/core/styles"
	"github.com/colonyops/remark/internal/tui"
	"github.com/colonyops/remark/pkg/logutils"
	"github.com/colonyops/remark/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func buildInfo() tui.BuildInfo {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	if len(c) > 7 {
		c = c[:7]
	}

	return tui.BuildInfo{Version: v, Commit: c, Date: d}
}

func build() string {
	b := buildInfo()
	return fmt.Sprintf("%s (%s) %s", b.Version, b.Commit, b.Date)
}

func main() {
	ctx := context.Background()

	// A .env next to the invocation supplies REMARK_* defaults.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: load .env: %v\n", err)
	}

	var logCloser func()

	flags := &commands.Flags{
		Warnings: &utils.DeferredWriter{},
	}

	app := commands.NewRoot(flags)
	app.Version = build()

	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		if err := os.MkdirAll(flags.DataDir, 0o755); err != nil {
			return ctx, fmt.Errorf("create data dir: %w", err)
		}

		// Always log to a file; use explicit path or default to <datadir>/remark.log
		logFile := flags.LogFile
		if logFile == "" {
			logFile = filepath.Join(flags.DataDir, "remark.log")
		}

		logger, closer, err := logutils.New(flags.LogLevel, logFile, flags.Warnings)
		if err != nil {
			return ctx, fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger.Hook(logging.ContextHook{})
		logCloser = closer

		cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}
		flags.Config = cfg

		// Apply configured theme (validation ensures name is valid)
		palette, _ := styles.GetPalette(cfg.TUI.Theme)
		styles.SetTheme(palette)

		return ctx, nil
	}

	app.After = func(ctx context.Context, c *cli.Command) error {
		if logCloser != nil {
			logCloser()
		}
		// Warnings logged while the TUI held the screen.
		return flags.Warnings.Flush(os.Stderr)
	}

	tuiCmd := commands.NewTuiCmd(flags, buildInfo())

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'remark --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
