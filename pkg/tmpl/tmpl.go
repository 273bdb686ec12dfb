// Package tmpl renders user supplied Go templates for command output.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/x/ansi"
)

// shellQuote returns a shell-safe quoted string. It wraps the string in single
// quotes and escapes any existing single quotes using the '\" technique.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	escaped := strings.ReplaceAll(s, "'", `'\''`)
	return "'" + escaped + "'"
}

// oneline collapses all whitespace runs, newlines included, to single spaces.
func oneline(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(width int, s string) string {
	return ansi.Truncate(s, width, "…")
}

var funcs = template.FuncMap{
	"shq":      shellQuote,
	"join":     strings.Join,
	"oneline":  oneline,
	"truncate": truncate,
	"upper":    strings.ToUpper,
	"lower":    strings.ToLower,
}

// Template is a parsed template ready to render many values.
type Template struct {
	t *template.Template
}

// Parse compiles tmpl. Undefined keys fail at render time.
//
// Available template functions:
//   - shq: Shell-quote a string
//   - join: Join string slice with separator (e.g., join .Tags ",")
//   - oneline: Collapse whitespace and newlines to single spaces
//   - truncate: Cut to a display width with an ellipsis (e.g., truncate 40 .Body)
//   - upper, lower: Change case
func Parse(tmpl string) (*Template, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Template{t: t}, nil
}

// Execute renders the template with data.
func (t *Template) Execute(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// Render parses and executes tmpl in one step.
func Render(tmpl string, data any) (string, error) {
	t, err := Parse(tmpl)
	if err != nil {
		return "", err
	}
	return t.Execute(data)
}
