package comments

import "fmt"

// Board owns the editable collection together with the search term and the
// current page, and derives the rows to display from them. A Board is not
// safe for concurrent use; callers serialize access.
type Board struct {
	rows  []EditableComment
	byID  map[int]int
	posts PostIndex

	search string
	page   int

	// version is bumped on every row mutation and keys the filter memo.
	version uint64
	memo    filterMemo
}

type filterMemo struct {
	valid   bool
	version uint64
	term    string
	rows    []EditableComment
}

// NewBoard projects the loaded comments into editable rows in load order.
// Comments repeating an id that was already loaded are dropped.
func NewBoard(loaded []Comment, posts []Post) *Board {
	b := &Board{
		rows:  make([]EditableComment, 0, len(loaded)),
		byID:  make(map[int]int, len(loaded)),
		posts: NewPostIndex(posts),
		page:  1,
	}
	for _, c := range loaded {
		if _, dup := b.byID[c.ID]; dup {
			continue
		}
		b.byID[c.ID] = len(b.rows)
		b.rows = append(b.rows, NewEditable(c))
	}
	return b
}

// Len returns the number of loaded rows.
func (b *Board) Len() int { return len(b.rows) }

// Row returns a copy of the row with the given id.
func (b *Board) Row(id int) (EditableComment, bool) {
	i, ok := b.byID[id]
	if !ok {
		return EditableComment{}, false
	}
	return b.rows[i], true
}

// Search returns the active search term.
func (b *Board) Search() string { return b.search }

// SetSearch replaces the search term and always returns to the first page.
func (b *Board) SetSearch(term string) {
	b.search = term
	b.page = 1
}

// Page returns the current 1-based page.
func (b *Board) Page() int { return b.page }

// SetPage moves to page n, clamped to the available pages.
func (b *Board) SetPage(n int) {
	b.page = max(min(n, b.TotalPages()), 1)
}

// NextPage advances one page, stopping at the last page.
func (b *Board) NextPage() {
	b.SetPage(b.page + 1)
}

// PrevPage goes back one page, stopping at the first page.
func (b *Board) PrevPage() {
	b.SetPage(b.page - 1)
}

// Filtered returns the rows matching the search term. The result is cached
// until the term or a row changes and must not be modified by callers.
func (b *Board) Filtered() []EditableComment {
	if b.memo.valid && b.memo.version == b.version && b.memo.term == b.search {
		return b.memo.rows
	}
	b.memo = filterMemo{
		valid:   true,
		version: b.version,
		term:    b.search,
		rows:    Filter(b.rows, b.search),
	}
	return b.memo.rows
}

// TotalPages returns the number of pages of filtered rows.
func (b *Board) TotalPages() int {
	return TotalPages(len(b.Filtered()), PageSize)
}

// PageRows returns the filtered rows on the current page.
func (b *Board) PageRows() []EditableComment {
	return Paginate(b.Filtered(), b.page, PageSize)
}

// ShowPagination reports whether page controls should be displayed.
func (b *Board) ShowPagination() bool {
	return b.TotalPages() > 1
}

// PostTitle resolves the title of a post id.
func (b *Board) PostTitle(postID int) string {
	return b.posts.Title(postID)
}

// Edit puts a row's field into edit mode.
func (b *Board) Edit(id int, f Field) error {
	return b.mutate(id, f, func(row *EditableComment) error {
		row.StartEdit(f)
		return nil
	})
}

// Input replaces the in-progress value of a field being edited.
func (b *Board) Input(id int, f Field, value string) error {
	return b.mutate(id, f, func(row *EditableComment) error {
		return row.SetDraft(f, value)
	})
}

// Commit saves value as the field's new baseline and leaves edit mode.
func (b *Board) Commit(id int, f Field, value string) error {
	return b.mutate(id, f, func(row *EditableComment) error {
		return row.Commit(f, value)
	})
}

// Discard abandons the in-progress edit of a field.
func (b *Board) Discard(id int, f Field) error {
	return b.mutate(id, f, func(row *EditableComment) error {
		return row.Discard(f)
	})
}

func (b *Board) mutate(id int, f Field, fn func(*EditableComment) error) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	i, ok := b.byID[id]
	if !ok {
		return fmt.Errorf("comment %d: %w", id, ErrCommentNotFound)
	}
	if err := fn(&b.rows[i]); err != nil {
		return fmt.Errorf("comment %d: %w", id, err)
	}
	b.version++
	return nil
}
