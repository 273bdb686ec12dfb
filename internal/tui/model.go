// Package tui implements the terminal dashboard shell hosting the comments view.
package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/remark/internal/core/source"
	"github.com/colonyops/remark/internal/tui/views/comments"
)

const (
	keyCtrlC = "ctrl+c"
	keyQuit  = "q"

	// top divider + header + header divider
	headerHeight = 3
)

// Options configures the TUI model.
type Options struct {
	Loader    *source.Loader
	BuildInfo BuildInfo
}

// Model is the root Bubble Tea model.
type Model struct {
	comments  comments.View
	buildInfo BuildInfo

	toastController *ToastController
	toastView       *ToastView

	width    int
	height   int
	quitting bool
}

// New creates a new TUI model.
func New(ctx context.Context, opts Options) Model {
	toasts := NewToastController()
	return Model{
		comments:        comments.New(ctx, opts.Loader),
		buildInfo:       opts.BuildInfo,
		toastController: toasts,
		toastView:       NewToastView(toasts),
	}
}

// Init starts the initial data load.
func (m Model) Init() tea.Cmd {
	return m.comments.Init()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.comments.SetSize(msg.Width, max(msg.Height-headerHeight, 1))
		return m, nil
	case comments.NotifyMsg:
		return m.handleNotification(msg)
	case toastTickMsg:
		return m.handleToastTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.comments, cmd = m.comments.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyCtrlC:
		return m.quit()
	case keyQuit:
		if !m.comments.HasEditorFocus() && !m.comments.HasOverlay() {
			return m.quit()
		}
	case "esc":
		if m.toastController.HasToasts() && !m.comments.HasEditorFocus() && !m.comments.HasOverlay() {
			m.toastController.Dismiss()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.comments, cmd = m.comments.Update(msg)
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.comments.Close()
	m.quitting = true
	return m, tea.Quit
}

func (m Model) handleNotification(msg comments.NotifyMsg) (tea.Model, tea.Cmd) {
	m.toastController.Push(msg.Notification)
	if m.toastController.Ticking() {
		return m, nil
	}
	m.toastController.SetTicking(true)
	return m, scheduleToastTick()
}

func (m Model) handleToastTick() (tea.Model, tea.Cmd) {
	m.toastController.Tick(toastTickInterval)
	if m.toastController.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toastController.SetTicking(false)
	return m, nil
}
