// Package comments implements the comments dashboard view: a searchable,
// paginated table of comments with inline editing of name and body.
package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/colonyops/remark/internal/core/comments"
	"github.com/colonyops/remark/internal/core/logging"
	"github.com/colonyops/remark/internal/core/notify"
	"github.com/colonyops/remark/internal/core/source"
	"github.com/colonyops/remark/internal/core/styles"
	"github.com/colonyops/remark/internal/tui/components"
)

const (
	bodyEditorHeight = 5
	minColumnWidth   = 8
)

type commentsLoadedMsg struct {
	result source.Result
}

// NotifyMsg carries a notification for the host to display.
type NotifyMsg struct {
	Notification notify.Notification
}

func notifyCmd(n notify.Notification) tea.Cmd {
	return func() tea.Msg { return NotifyMsg{Notification: n} }
}

// editTarget identifies the cell bound to the open editor.
type editTarget struct {
	id    int
	field comments.Field
}

// View is the Bubble Tea sub-model for the comments dashboard.
type View struct {
	ctrl   *Controller
	loader *source.Loader
	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	search    textinput.Model
	searching bool

	nameEditor textinput.Model
	bodyEditor textarea.Model
	editing    *editTarget

	detail   *DetailModal
	showHelp bool

	width  int
	height int
}

// New creates a comments View that loads its data from loader.
func New(ctx context.Context, loader *source.Loader) View {
	ctx, cancel := context.WithCancel(logging.WithViewID(ctx, "comments"))

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.TextPrimaryStyle

	search := textinput.New()
	search.Prompt = styles.IconSearch + " "
	search.Placeholder = "search name, email or body"
	search.SetWidth(40)
	search.SetStyles(inputStyles())

	name := textinput.New()
	name.Prompt = ""
	name.SetWidth(40)
	name.SetStyles(inputStyles())

	body := textarea.New()
	body.ShowLineNumbers = false
	body.SetHeight(bodyEditorHeight)
	body.SetWidth(60)

	return View{
		ctrl:       NewController(),
		loader:     loader,
		ctx:        ctx,
		cancel:     cancel,
		log:        logging.Component("comments"),
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    s,
		search:     search,
		nameEditor: name,
		bodyEditor: body,
	}
}

func inputStyles() textinput.Styles {
	st := textinput.DefaultStyles(true)
	st.Focused.Prompt = styles.SearchPromptStyle
	st.Blurred.Prompt = styles.TextMutedStyle
	st.Cursor.Color = styles.ColorPrimary
	return st
}

// Init starts the one-shot load and the loading spinner.
func (v View) Init() tea.Cmd {
	return tea.Batch(loadComments(v.ctx, v.loader), v.spinner.Tick)
}

// Update handles messages for the comments view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case commentsLoadedMsg:
		return v.handleLoaded(msg)
	case spinner.TickMsg:
		if !v.ctrl.Loading() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

// Close tears the view down. A load still in flight is cancelled and its
// result discarded.
func (v View) Close() {
	v.ctrl.Close()
	if v.cancel != nil {
		v.cancel()
	}
}

// Controller exposes the view state.
func (v View) Controller() *Controller { return v.ctrl }

// HasEditorFocus reports whether keystrokes are being captured by a text input.
func (v View) HasEditorFocus() bool {
	return v.searching || v.editing != nil
}

// HasOverlay reports whether a modal is open.
func (v View) HasOverlay() bool {
	return v.detail != nil || v.showHelp
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.nameEditor.SetWidth(max(width-8, 10))
	v.bodyEditor.SetWidth(max(width-6, 10))
}

// Overlay renders any open modal over the background.
func (v View) Overlay(background string, width, height int) string {
	switch {
	case v.detail != nil:
		return v.detail.Overlay(background, width, height)
	case v.showHelp:
		return components.NewHelpDialog("Keyboard Shortcuts", v.keys.helpSections()).Overlay(background, width, height)
	}
	return background
}

func (v View) handleLoaded(msg commentsLoadedMsg) (View, tea.Cmd) {
	if !v.ctrl.Apply(msg.result) {
		v.log.Debug().Msg("discarding load result for closed view")
		return v, nil
	}
	v.log.Debug().Int("rows", v.ctrl.Board().Len()).Msg("comments loaded")
	if err := v.ctrl.LoadErr(); err != nil {
		v.log.Warn().Err(err).Msg("comments loaded with errors")
		return v, notifyCmd(notify.Warnf("load incomplete: %s", firstLine(err.Error())))
	}
	return v, nil
}

func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch {
	case v.showHelp:
		return v.handleHelpKey(msg)
	case v.detail != nil:
		return v.handleDetailKey(msg)
	case v.editing != nil:
		return v.handleEditorKey(msg)
	case v.searching:
		return v.handleSearchKey(msg)
	}
	return v.handleNormalKey(msg)
}

func (v View) handleHelpKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "q", "enter":
		v.showHelp = false
	}
	return v, nil
}

func (v View) handleDetailKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		v.detail = nil
	case "up", "k":
		v.detail.ScrollUp()
	case "down", "j":
		v.detail.ScrollDown()
	default:
		v.detail.UpdateViewport(msg)
	}
	return v, nil
}

func (v View) handleSearchKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Cancel):
		v.searching = false
		v.search.Blur()
		v.search.SetValue("")
		v.ctrl.SetSearch("")
		return v, nil
	case msg.String() == "enter":
		v.searching = false
		v.search.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.ctrl.SetSearch(v.search.Value())
	return v, cmd
}

func (v View) handleNormalKey(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.ctrl.Loading() {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Up):
		v.ctrl.MoveUp()
	case key.Matches(msg, v.keys.Down):
		v.ctrl.MoveDown()
	case key.Matches(msg, v.keys.PrevPage):
		v.ctrl.PrevPage()
	case key.Matches(msg, v.keys.NextPage):
		v.ctrl.NextPage()
	case key.Matches(msg, v.keys.ToggleColumn):
		v.ctrl.ToggleColumn()
	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.search.SetValue(v.ctrl.Board().Search())
		return v, v.search.Focus()
	case key.Matches(msg, v.keys.EditName):
		v.ctrl.SetColumn(comments.FieldName)
		return v.openEditor()
	case key.Matches(msg, v.keys.EditBody):
		v.ctrl.SetColumn(comments.FieldBody)
		return v.openEditor()
	case key.Matches(msg, v.keys.Edit):
		return v.openEditor()
	case key.Matches(msg, v.keys.Open):
		if sel := v.ctrl.Selected(); sel != nil {
			modal := NewDetailModal(*sel, v.ctrl.Board().PostTitle(sel.PostID), v.width, v.height)
			v.detail = &modal
		}
	case key.Matches(msg, v.keys.Help):
		v.showHelp = true
	}
	return v, nil
}

func (v View) openEditor() (View, tea.Cmd) {
	id, value, ok := v.ctrl.StartEdit()
	if !ok {
		return v, nil
	}

	field := v.ctrl.Column()
	v.editing = &editTarget{id: id, field: field}

	if field == comments.FieldBody {
		v.bodyEditor.SetValue(value)
		return v, v.bodyEditor.Focus()
	}
	v.nameEditor.SetValue(value)
	v.nameEditor.CursorEnd()
	return v, v.nameEditor.Focus()
}

func (v View) closeEditor() View {
	v.editing = nil
	v.nameEditor.Blur()
	v.bodyEditor.Blur()
	v.ctrl.ClampCursor()
	return v
}

func (v View) handleEditorKey(msg tea.KeyMsg) (View, tea.Cmd) {
	target := *v.editing

	switch {
	case key.Matches(msg, v.keys.Cancel):
		var cmd tea.Cmd
		if err := v.ctrl.Discard(target.id, target.field); err != nil {
			cmd = v.editFailed(target, err)
		}
		return v.closeEditor(), cmd
	case target.field == comments.FieldName && key.Matches(msg, v.keys.Commit):
		return v.commit(target, v.nameEditor.Value())
	case target.field == comments.FieldBody && key.Matches(msg, v.keys.CommitBody):
		return v.commit(target, v.bodyEditor.Value())
	}

	var (
		cmd   tea.Cmd
		value string
	)
	if target.field == comments.FieldBody {
		v.bodyEditor, cmd = v.bodyEditor.Update(msg)
		value = v.bodyEditor.Value()
	} else {
		v.nameEditor, cmd = v.nameEditor.Update(msg)
		value = v.nameEditor.Value()
	}

	if err := v.ctrl.Input(target.id, target.field, value); err != nil {
		return v.closeEditor(), tea.Batch(cmd, v.editFailed(target, err))
	}
	return v, cmd
}

func (v View) commit(target editTarget, value string) (View, tea.Cmd) {
	if err := v.ctrl.Commit(target.id, target.field, value); err != nil {
		return v.closeEditor(), v.editFailed(target, err)
	}
	v.log.Info().Int("comment_id", target.id).Str("field", target.field.String()).Msg("comment updated")
	return v.closeEditor(), notifyCmd(notify.Infof("saved %s of #%d", target.field, target.id))
}

func (v View) editFailed(target editTarget, err error) tea.Cmd {
	v.log.Error().Err(err).Int("comment_id", target.id).Str("field", target.field.String()).Msg("edit failed")
	if errors.Is(err, comments.ErrCommentNotFound) {
		return notifyCmd(notify.Errorf("comment #%d no longer exists", target.id))
	}
	return notifyCmd(notify.Errorf("%s", err.Error()))
}

// View renders the comments view.
func (v View) View() string {
	if v.ctrl.Loading() {
		return lipgloss.JoinHorizontal(lipgloss.Left, " ", v.spinner.View(), " Loading comments…")
	}

	sections := make([]string, 0, 6)
	if err := v.ctrl.LoadErr(); err != nil {
		sections = append(sections, styles.TextErrorStyle.Render(" "+styles.IconCancel+" "+firstLine(err.Error())))
	}

	sections = append(sections, v.renderSearch(), v.renderTable())

	if pager := v.renderPager(); pager != "" {
		sections = append(sections, pager)
	}
	if v.editing != nil {
		sections = append(sections, v.renderEditor())
	}
	sections = append(sections, " "+v.help.ShortHelpView(v.keys.shortHelp()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v View) renderSearch() string {
	if v.searching {
		return " " + v.search.View()
	}
	term := v.ctrl.Board().Search()
	if term == "" {
		return " " + styles.TextMutedStyle.Render(styles.IconSearch+" press / to search")
	}
	return " " + styles.SearchPromptStyle.Render(styles.IconSearch) + " " + styles.TextForegroundStyle.Render(term) +
		styles.TextMutedStyle.Render(fmt.Sprintf("  (%d matches)", len(v.ctrl.Board().Filtered())))
}

type columnWidths struct {
	email, name, body, post int
}

func (v View) columnWidths() columnWidths {
	total := max(v.width-6, 4*minColumnWidth)
	w := columnWidths{
		email: total * 22 / 100,
		name:  total * 20 / 100,
		post:  total * 20 / 100,
	}
	w.body = total - w.email - w.name - w.post
	return w
}

func (v View) renderTable() string {
	w := v.columnWidths()
	rows := v.ctrl.Rows()

	lines := make([]string, 0, len(rows)+1)
	header := "  " + cell("Email", w.email) + " " + cell("Name", w.name) + " " + cell("Body", w.body) + " " + cell("Post", w.post)
	lines = append(lines, styles.TableHeaderStyle.Render(header))

	if len(rows) == 0 {
		empty := "No comments"
		if v.ctrl.Board().Search() != "" {
			empty = "No matching comments"
		}
		lines = append(lines, styles.TextMutedStyle.Render("  "+empty))
		return strings.Join(lines, "\n")
	}

	cursor := v.ctrl.Cursor()
	for i := range rows {
		lines = append(lines, v.renderRow(&rows[i], i, i == cursor, w))
	}
	return strings.Join(lines, "\n")
}

func (v View) renderRow(row *comments.EditableComment, idx int, selected bool, w columnWidths) string {
	rowStyle := styles.RowEvenStyle
	if idx%2 == 1 {
		rowStyle = styles.RowOddStyle
	}
	if selected {
		rowStyle = styles.RowSelectedStyle
	}

	gutter := "  "
	if selected {
		gutter = styles.TextPrimaryStyle.Render("┃") + " "
	}

	email := rowStyle.Render(cell(row.Email, w.email))
	name := v.renderEditableCell(row, comments.FieldName, selected, w.name, rowStyle)
	body := v.renderEditableCell(row, comments.FieldBody, selected, w.body, rowStyle)

	title := v.ctrl.Board().PostTitle(row.PostID)
	postStyle := lipgloss.NewStyle().Foreground(styles.ColorForString(title))
	if title == comments.UnknownPostTitle {
		postStyle = styles.TextMutedStyle
	}
	post := postStyle.Render(cell(title, w.post))

	return gutter + email + " " + name + " " + body + " " + post
}

func (v View) renderEditableCell(row *comments.EditableComment, f comments.Field, selected bool, width int, base lipgloss.Style) string {
	text := row.Value(f)
	if row.IsEditing(f) {
		marker := styles.IconEdit + " "
		return styles.EditingLabelStyle.Render(marker) + base.Render(cell(text, width-lipgloss.Width(marker)))
	}
	if selected && v.ctrl.Column() == f {
		return styles.CellFocusedStyle.Render(cell(text, width))
	}
	return base.Render(cell(text, width))
}

func (v View) renderPager() string {
	board := v.ctrl.Board()
	if !board.ShowPagination() {
		return ""
	}

	page, total := board.Page(), board.TotalPages()
	prev := styles.PagerStyle.Render("‹ prev")
	if page <= 1 {
		prev = styles.PagerDisabled.Render("‹ prev")
	}
	next := styles.PagerStyle.Render("next ›")
	if page >= total {
		next = styles.PagerDisabled.Render("next ›")
	}
	indicator := styles.TextPrimaryBoldStyle.Render(fmt.Sprintf("Page %d / %d", page, total))

	return " " + prev + "  " + indicator + "  " + next
}

func (v View) renderEditor() string {
	target := v.editing
	label := styles.EditingLabelStyle.Render(fmt.Sprintf("%s Editing %s of #%d", styles.IconEdit, target.field, target.id))

	var (
		input string
		hint  string
	)
	if target.field == comments.FieldBody {
		input = v.bodyEditor.View()
		hint = "ctrl+s save • esc cancel"
	} else {
		input = v.nameEditor.View()
		hint = "enter save • esc cancel"
	}

	return styles.EditorStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		label,
		input,
		styles.TextMutedStyle.Render(hint),
	))
}

// cell flattens s onto one line and fits it to exactly width cells.
func cell(s string, width int) string {
	width = max(width, 1)
	s = strings.Join(strings.Fields(s), " ")
	s = ansi.Truncate(s, width, "…")
	return s + components.Pad(width-ansi.StringWidth(s))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func loadComments(ctx context.Context, loader *source.Loader) tea.Cmd {
	return func() tea.Msg {
		return commentsLoadedMsg{result: loader.Load(ctx)}
	}
}
