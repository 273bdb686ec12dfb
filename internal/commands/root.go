package commands

import (
	"github.com/urfave/cli/v3"
)

// NewRoot builds the root command with the global flags and every
// subcommand registered. Hooks, version and the default action are left to
// the caller.
func NewRoot(flags *Flags) *cli.Command {
	app := &cli.Command{
		Name:      "remark",
		Usage:     "Browse, search and edit comments from the terminal",
		UsageText: "remark [global options] command [command options]",
		Description: `Remark loads a comment dataset and its posts once and shows them as a
paginated, searchable table with inline editing of names and bodies.

Edits are kept in memory only; nothing is written back to the source.

Run 'remark' with no arguments to open the dashboard.
Run 'remark ls' for a one-shot page, or 'remark serve' for the JSON API.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("REMARK_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/remark.log)",
				Sources:     cli.EnvVars("REMARK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("REMARK_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("REMARK_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			profilerFlag(flags),
		},
	}

	app = NewLsCmd(flags).Register(app)
	app = NewServeCmd(flags).Register(app)
	app = NewConfigValidateCmd(flags).Register(app)

	return app
}
