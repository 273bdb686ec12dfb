package comments

import (
	"github.com/colonyops/remark/internal/core/comments"
	"github.com/colonyops/remark/internal/core/source"
)

// Controller manages the dashboard state behind the comments view.
// It contains pure data logic with no Bubble Tea dependencies.
type Controller struct {
	board   *comments.Board
	loading bool
	closed  bool
	loadErr error

	cursor int            // index into the current page
	column comments.Field // focused editable column
}

// NewController creates a controller in the loading state.
func NewController() *Controller {
	return &Controller{
		board:   comments.NewBoard(nil, nil),
		loading: true,
		column:  comments.FieldName,
	}
}

// Apply installs a settled load result. Results arriving after Close, or
// after a result was already applied, are ignored and Apply returns false.
func (c *Controller) Apply(res source.Result) bool {
	if c.closed || !c.loading {
		return false
	}
	c.board = res.Board()
	c.loadErr = res.Err()
	c.loading = false
	c.cursor = 0
	return true
}

// Close marks the view as torn down.
func (c *Controller) Close() {
	c.closed = true
}

// Closed reports whether Close was called.
func (c *Controller) Closed() bool { return c.closed }

// Loading reports whether the initial load is outstanding.
func (c *Controller) Loading() bool { return c.loading }

// LoadErr returns the error of the initial load, if any.
func (c *Controller) LoadErr() error { return c.loadErr }

// Board exposes the underlying board for rendering.
func (c *Controller) Board() *comments.Board { return c.board }

// Rows returns the rows on the current page.
func (c *Controller) Rows() []comments.EditableComment {
	return c.board.PageRows()
}

// Cursor returns the selected index within the current page.
func (c *Controller) Cursor() int { return c.cursor }

// Column returns the focused editable column.
func (c *Controller) Column() comments.Field { return c.column }

// ToggleColumn switches focus between the name and body columns.
func (c *Controller) ToggleColumn() {
	if c.column == comments.FieldName {
		c.column = comments.FieldBody
		return
	}
	c.column = comments.FieldName
}

// SetColumn focuses the given column.
func (c *Controller) SetColumn(f comments.Field) {
	if f.Valid() {
		c.column = f
	}
}

// MoveUp moves the cursor up one row.
func (c *Controller) MoveUp() {
	if c.cursor > 0 {
		c.cursor--
	}
}

// MoveDown moves the cursor down one row.
func (c *Controller) MoveDown() {
	if c.cursor < len(c.Rows())-1 {
		c.cursor++
	}
}

// NextPage moves to the next page and selects its first row.
func (c *Controller) NextPage() {
	before := c.board.Page()
	c.board.NextPage()
	if c.board.Page() != before {
		c.cursor = 0
	}
}

// PrevPage moves to the previous page and selects its first row.
func (c *Controller) PrevPage() {
	before := c.board.Page()
	c.board.PrevPage()
	if c.board.Page() != before {
		c.cursor = 0
	}
}

// SetSearch updates the search term, returning to the first page.
func (c *Controller) SetSearch(term string) {
	if term == c.board.Search() {
		return
	}
	c.board.SetSearch(term)
	c.cursor = 0
}

// Selected returns the selected row, or nil when the page is empty.
func (c *Controller) Selected() *comments.EditableComment {
	rows := c.Rows()
	if len(rows) == 0 {
		return nil
	}
	idx := min(c.cursor, len(rows)-1)
	row := rows[idx]
	return &row
}

// StartEdit puts the focused column of the selected row into edit mode and
// returns the row id and the value to seed the editor with.
func (c *Controller) StartEdit() (id int, value string, ok bool) {
	sel := c.Selected()
	if sel == nil {
		return 0, "", false
	}
	if err := c.board.Edit(sel.ID, c.column); err != nil {
		return 0, "", false
	}
	row, _ := c.board.Row(sel.ID)
	return sel.ID, row.Value(c.column), true
}

// Input mirrors the editor contents into the row's working value.
func (c *Controller) Input(id int, f comments.Field, value string) error {
	return c.board.Input(id, f, value)
}

// Commit saves an edit.
func (c *Controller) Commit(id int, f comments.Field, value string) error {
	return c.board.Commit(id, f, value)
}

// Discard abandons an edit.
func (c *Controller) Discard(id int, f comments.Field) error {
	return c.board.Discard(id, f)
}

// ClampCursor keeps the cursor on the current page after the rows changed.
func (c *Controller) ClampCursor() {
	n := len(c.Rows())
	if c.cursor >= n {
		c.cursor = max(n-1, 0)
	}
}
