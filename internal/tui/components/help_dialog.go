// Package components provides reusable TUI components.
package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/remark/internal/core/styles"
)

// HelpSection groups related key bindings under a title.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpDialog displays all available keyboard shortcuts.
type HelpDialog struct {
	title    string
	sections []HelpSection
}

// NewHelpDialog creates a new help dialog with the given sections.
func NewHelpDialog(title string, sections []HelpSection) *HelpDialog {
	return &HelpDialog{
		title:    title,
		sections: sections,
	}
}

// View renders the help dialog.
func (h *HelpDialog) View() string {
	title := styles.TextForegroundBoldStyle.Render(h.title)
	separator := styles.TextMutedStyle.Render(strings.Repeat("─", 25))

	var lines []string
	for i, section := range h.sections {
		if section.Title != "" {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.HelpDialogSectionStyle.Render(section.Title), separator)
		}

		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			help := b.Help()
			lines = append(lines, formatKeyDesc(help.Key, help.Desc))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.Join(lines, "\n"),
		styles.HelpDialogHelpStyle.Render("esc/? close"),
	)

	return styles.HelpDialogModalStyle.Render(content)
}

// Overlay renders the help dialog as a layer over the given background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	return Overlay(background, h.View(), width, height)
}

// Overlay centers modal over background.
func Overlay(background, modal string, width, height int) string {
	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	modalW := lipgloss.Width(modal)
	modalH := lipgloss.Height(modal)
	centerX := max((width-modalW)/2, 0)
	centerY := max((height-modalH)/2, 0)
	modalLayer.X(centerX).Y(centerY).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}

// formatKeyDesc formats a key-description pair with consistent alignment.
func formatKeyDesc(key, desc string) string {
	const keyWidth = 12

	// display width, not byte length, so arrows and glyphs align
	paddedKey := key + Pad(keyWidth-lipgloss.Width(key))

	return styles.TextPrimaryBoldStyle.Render(paddedKey) + styles.TextForegroundStyle.Render(desc)
}
