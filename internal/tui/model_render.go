package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/remark/internal/core/styles"
	"github.com/colonyops/remark/internal/tui/components"
)

// View renders the TUI.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes the shell, any open modal and the toast stack.
func (m Model) render() string {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	content := m.comments.Overlay(m.renderShell(w, h), w, h)

	if m.toastController.HasToasts() {
		content = m.toastView.Overlay(content, w, h)
	}
	return content
}

// renderShell renders the header banner above the comments view.
func (m Model) renderShell(width, height int) string {
	brand := styles.BrandAccentStyle.Render(styles.IconComment+" remark") +
		"  " + styles.SubtitleStyle.Render("Comments Management Dashboard")

	version := ""
	if m.buildInfo.Version != "" {
		version = styles.TextMutedStyle.Render(m.buildInfo.Version)
	}

	// Layout: [margin] brand [spacer] version [margin]
	margin := 1
	spacerWidth := max(width-lipgloss.Width(brand)-lipgloss.Width(version)-(margin*2), 1)
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		components.Pad(margin), brand, components.Pad(spacerWidth), version, components.Pad(margin),
	)

	divider := styles.TextMutedStyle.Render(strings.Repeat("─", width))
	contentHeight := max(height-headerHeight, 1)
	content := lipgloss.NewStyle().Height(contentHeight).Render(m.comments.View())

	return lipgloss.JoinVertical(lipgloss.Left, divider, header, divider, content)
}
