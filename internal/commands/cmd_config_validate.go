package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/remark/internal/core/styles"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "remark config validate [options]",
				Description: "Validates the configuration file, checking endpoint URLs, dataset paths, the theme name and the listen address.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	issues := collectIssues(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath))

	out := c.Root().Writer
	if cmd.format == "json" {
		return cmd.outputJSON(out, issues)
	}

	return cmd.outputText(out, issues)
}

// collectIssues flattens field errors. Any other error becomes a single
// issue on the "config" field.
func collectIssues(err error) []validationIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Field: "config", Message: err.Error()}}
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}

func (cmd *ConfigValidateCmd) outputJSON(w io.Writer, issues []validationIssue) error {
	out := struct {
		Valid  bool              `json:"valid"`
		Errors []validationIssue `json:"errors,omitempty"`
	}{
		Valid:  len(issues) == 0,
		Errors: issues,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	if len(issues) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(w io.Writer, issues []validationIssue) error {
	for _, issue := range issues {
		_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render(styles.IconCancel+" "+issue.Field)+": "+issue.Message)
	}

	if len(issues) == 0 {
		_, _ = fmt.Fprintln(w, styles.SuccessStyle.Render(styles.IconCheck+" Configuration is valid"))
		return nil
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(issues))))
	return cli.Exit("", 1)
}
