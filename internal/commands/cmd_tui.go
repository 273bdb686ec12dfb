package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/remark/internal/core/source"
	"github.com/colonyops/remark/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	build tui.BuildInfo
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, build tui.BuildInfo) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		build: build,
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	stop, err := startProfiler(ctx, cmd.flags.ProfilerPort)
	if err != nil {
		return err
	}
	defer stop()

	src, err := cmd.flags.Config.NewSource()
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	m := tui.New(ctx, tui.Options{
		Loader:    source.NewLoader(src),
		BuildInfo: cmd.build,
	})

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
