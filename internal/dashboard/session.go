// Package dashboard exposes one comments board to concurrent callers. Every
// operation is serialized through the session lock so events are applied one
// at a time, in the order they acquire it.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/remark/internal/core/comments"
	"github.com/colonyops/remark/internal/core/logging"
	"github.com/colonyops/remark/internal/core/source"
)

var (
	// ErrLoading is returned by operations issued before the load settled.
	ErrLoading = errors.New("comments are still loading")
	// ErrClosed is returned by operations issued after Close.
	ErrClosed = errors.New("session closed")
)

// Session owns a board and the load that fills it.
type Session struct {
	loader *source.Loader
	log    zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	board       *comments.Board
	loadErr     error
	commentsErr error
	loaded  bool
	closed  bool
}

// NewSession creates a session in the loading state.
func NewSession(ctx context.Context, loader *source.Loader) *Session {
	ctx, cancel := context.WithCancel(logging.WithViewID(ctx, "session"))
	return &Session{
		loader: loader,
		log:    logging.Component("dashboard"),
		ctx:    ctx,
		cancel: cancel,
		board:  comments.NewBoard(nil, nil),
	}
}

// Start runs the load in the background.
func (s *Session) Start() {
	go s.Load()
}

// Load runs the load to completion and applies its result. It is safe to
// call more than once; the loader only fetches once.
func (s *Session) Load() error {
	res := s.loader.Load(s.ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.log.Debug().Msg("discarding load result for closed session")
		return ErrClosed
	}
	if s.loaded {
		return s.loadErr
	}

	s.board = res.Board()
	s.loadErr = res.Err()
	s.commentsErr = res.CommentsErr
	s.loaded = true

	s.log.Info().Ctx(s.ctx).
		Int("comments", s.board.Len()).
		AnErr("load_error", s.loadErr).
		Msg("session ready")
	return s.loadErr
}

// Close cancels an outstanding load. Later operations return ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

// Loading reports whether the load is still outstanding.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loaded
}

// do runs fn against the board while holding the session lock.
func (s *Session) do(fn func(b *comments.Board) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		return ErrClosed
	case !s.loaded:
		return ErrLoading
	}
	return fn(s.board)
}

// Snapshot renders the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	if !s.loaded {
		return Snapshot{Loading: true, Page: 1, Rows: []Row{}}
	}
	return snapshot(s.board, s.loadErr, s.commentsErr)
}

// navigate applies fn and renders the resulting state under the same lock,
// so the returned snapshot reflects exactly this change.
func (s *Session) navigate(fn func(b *comments.Board)) (Snapshot, error) {
	var snap Snapshot
	err := s.do(func(b *comments.Board) error {
		fn(b)
		snap = s.snapshotLocked()
		return nil
	})
	return snap, err
}

// SetSearch sets the search term and returns to the first page.
func (s *Session) SetSearch(term string) (Snapshot, error) {
	return s.navigate(func(b *comments.Board) { b.SetSearch(term) })
}

// NextPage advances one page, stopping at the last.
func (s *Session) NextPage() (Snapshot, error) {
	return s.navigate(func(b *comments.Board) { b.NextPage() })
}

// PrevPage goes back one page, stopping at the first.
func (s *Session) PrevPage() (Snapshot, error) {
	return s.navigate(func(b *comments.Board) { b.PrevPage() })
}

// SetPage jumps to page n, clamped to the valid range.
func (s *Session) SetPage(n int) (Snapshot, error) {
	return s.navigate(func(b *comments.Board) { b.SetPage(n) })
}

// Edit puts a comment field into edit mode and returns the updated row.
func (s *Session) Edit(id int, f comments.Field) (Row, error) {
	return s.mutate(id, func(b *comments.Board) error { return b.Edit(id, f) })
}

// Input replaces the working value of a field being edited.
func (s *Session) Input(id int, f comments.Field, value string) (Row, error) {
	return s.mutate(id, func(b *comments.Board) error { return b.Input(id, f, value) })
}

// Commit saves an edit.
func (s *Session) Commit(id int, f comments.Field, value string) (Row, error) {
	return s.mutate(id, func(b *comments.Board) error { return b.Commit(id, f, value) })
}

// Discard abandons an edit.
func (s *Session) Discard(id int, f comments.Field) (Row, error) {
	return s.mutate(id, func(b *comments.Board) error { return b.Discard(id, f) })
}

func (s *Session) mutate(id int, fn func(b *comments.Board) error) (Row, error) {
	var row Row
	err := s.do(func(b *comments.Board) error {
		if err := fn(b); err != nil {
			return err
		}
		c, ok := b.Row(id)
		if !ok {
			return fmt.Errorf("comment %d: %w", id, comments.ErrCommentNotFound)
		}
		row = newRow(b, c)
		return nil
	})
	return row, err
}

// PostTitle resolves a post id to its title.
func (s *Session) PostTitle(postID int) (string, error) {
	var title string
	err := s.do(func(b *comments.Board) error {
		title = b.PostTitle(postID)
		return nil
	})
	return title, err
}
