package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/remark/internal/core/source"
	"github.com/colonyops/remark/internal/dashboard"
	"github.com/colonyops/remark/pkg/iojson"
	"github.com/colonyops/remark/pkg/tmpl"
)

const lsBodyWidth = 60

type LsCmd struct {
	flags *Flags

	// flags
	search     string
	page       int
	jsonOutput bool
	format     string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List one page of comments",
		UsageText: "remark ls [--search term] [--page n] [--json | --format tmpl]",
		Description: `Loads the comment and post datasets once and prints one page of the
filtered list, the same page the dashboard would show.

Output is a table on a terminal and JSON lines otherwise. Use --json to force
JSON lines, or --format to render each row with a Go template, e.g.

  remark ls --format '{{.ID}} {{.Name | upper}} {{.Body | oneline | truncate 40}}'`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "case-insensitive match on name, email and body",
				Destination: &cmd.search,
			},
			&cli.IntFlag{
				Name:        "page",
				Aliases:     []string{"p"},
				Usage:       "page to print (clamped to the available pages)",
				Value:       1,
				Destination: &cmd.page,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Go template applied to each row",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	var rowTmpl *tmpl.Template
	if cmd.format != "" {
		t, err := tmpl.Parse(cmd.format)
		if err != nil {
			return fmt.Errorf("parse format: %w", err)
		}
		rowTmpl = t
	}

	src, err := cmd.flags.Config.NewSource()
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	sess := dashboard.NewSession(ctx, source.NewLoader(src))
	defer sess.Close()

	if err := sess.Load(); err != nil {
		if errors.Is(err, dashboard.ErrClosed) {
			return err
		}
		log.Warn().Err(err).Msg("dataset load incomplete")
	}

	if _, err := sess.SetSearch(cmd.search); err != nil {
		return err
	}
	snap, err := sess.SetPage(cmd.page)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	if len(snap.Rows) == 0 {
		if snap.CommentsError != "" {
			return fmt.Errorf("load comments: %s", snap.CommentsError)
		}
		if !cmd.jsonOutput && rowTmpl == nil {
			fmt.Fprintf(c.Root().ErrWriter, "No comments found\n")
		}
		return nil
	}

	switch {
	case rowTmpl != nil:
		return writeTemplate(out, rowTmpl, snap.Rows)
	case cmd.jsonOutput || (!c.IsSet("json") && !isTerminal(out)):
		for _, row := range snap.Rows {
			if err := iojson.WriteLine(out, row); err != nil {
				return fmt.Errorf("encode comment: %w", err)
			}
		}
		return nil
	default:
		return writeTable(out, snap)
	}
}

func writeTemplate(out io.Writer, t *tmpl.Template, rows []dashboard.Row) error {
	for _, row := range rows {
		line, err := t.Execute(row)
		if err != nil {
			return fmt.Errorf("render comment %d: %w", row.ID, err)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(out io.Writer, snap dashboard.Snapshot) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPOST\tBODY")

	for _, row := range snap.Rows {
		body := ansi.Truncate(strings.Join(strings.Fields(row.Body), " "), lsBodyWidth, "…")
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", row.ID, row.Name, row.Email, row.PostTitle, body)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if snap.ShowPagination {
		_, _ = fmt.Fprintf(out, "\nPage %d / %d (%d matches)\n", snap.Page, snap.TotalPages, snap.Matches)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
