package comments

import (
	"fmt"
	"regexp"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/remark/internal/core/comments"
	"github.com/colonyops/remark/internal/core/styles"
	"github.com/colonyops/remark/internal/tui/components"
)

const (
	detailModalMaxWidth  = 100
	detailModalMaxHeight = 30
	detailModalMargin    = 4
	detailModalChrome    = 9
	detailModalPadding   = 4
)

// DetailModal shows a single comment with its body rendered as markdown.
type DetailModal struct {
	comment   comments.EditableComment
	postTitle string
	viewport  viewport.Model
}

// NewDetailModal creates a detail modal sized for the given terminal.
func NewDetailModal(c comments.EditableComment, postTitle string, width, height int) DetailModal {
	modalWidth := min(width-detailModalMargin, detailModalMaxWidth)
	modalHeight := min(height-detailModalMargin, detailModalMaxHeight)

	vp := viewport.New(
		viewport.WithWidth(max(modalWidth-detailModalPadding, 1)),
		viewport.WithHeight(max(modalHeight-detailModalChrome, 1)),
	)

	m := DetailModal{
		comment:   c,
		postTitle: postTitle,
		viewport:  vp,
	}
	m.renderBody(max(modalWidth-detailModalPadding, 1))
	return m
}

func (m *DetailModal) renderBody(width int) {
	body := m.comment.Body

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw body")
		m.viewport.SetContent(body)
		return
	}

	rendered, err := renderer.Render(body)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw body")
		m.viewport.SetContent(body)
		return
	}

	m.viewport.SetContent(trimDecorative(strings.TrimSpace(rendered)))
}

// CommentID returns the id of the displayed comment.
func (m DetailModal) CommentID() int { return m.comment.ID }

// ScrollUp scrolls the body up.
func (m *DetailModal) ScrollUp() { m.viewport.ScrollUp(1) }

// ScrollDown scrolls the body down.
func (m *DetailModal) ScrollDown() { m.viewport.ScrollDown(1) }

// UpdateViewport forwards a message to the body viewport.
func (m *DetailModal) UpdateViewport(msg any) {
	m.viewport, _ = m.viewport.Update(msg)
}

// Overlay renders the modal centered over the background.
func (m DetailModal) Overlay(background string, width, height int) string {
	modalWidth := min(width-detailModalMargin, detailModalMaxWidth)
	modalHeight := min(height-detailModalMargin, detailModalMaxHeight)

	scrollInfo := ""
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		scrollInfo = styles.TextMutedStyle.Render(fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100))
	}

	postColor := lipgloss.NewStyle().Foreground(styles.ColorForString(m.postTitle))
	metadata := lipgloss.JoinVertical(lipgloss.Left,
		styles.TextForegroundBoldStyle.Render(m.comment.Name),
		styles.TextMutedStyle.Render(m.comment.Email),
		postColor.Render(styles.IconPost+" "+m.postTitle),
	)

	divider := styles.TextSurfaceStyle.Render(strings.Repeat("─", max(modalWidth-6, 1)))
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(fmt.Sprintf("%s Comment #%d%s", styles.IconComment, m.comment.ID, scrollInfo)),
		"",
		metadata,
		divider,
		m.viewport.View(),
		styles.ModalHelpStyle.Render("[↑/↓/j/k] scroll  [enter/esc] close"),
	)

	modal := styles.ModalStyle.
		Width(modalWidth).
		Height(modalHeight).
		Render(content)

	return components.Overlay(background, modal, width, height)
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func isDecorativeLine(line string) bool {
	stripped := strings.TrimSpace(ansiPattern.ReplaceAllString(line, ""))
	if stripped == "" {
		return true
	}
	for _, r := range stripped {
		if r != '─' && r != '━' && r != '-' && r != '=' {
			return false
		}
	}
	return true
}

// trimDecorative drops blank and rule-only lines glamour emits around the document.
func trimDecorative(content string) string {
	lines := strings.Split(content, "\n")
	start, end := 0, len(lines)
	for start < end && isDecorativeLine(lines[start]) {
		start++
	}
	for end > start && isDecorativeLine(lines[end-1]) {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
