package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/remark/internal/core/comments"
	"github.com/colonyops/remark/internal/core/source"
)

type stubSource struct {
	comments    []comments.Comment
	posts       []comments.Post
	commentsErr error
	postsErr    error
	gate        chan struct{}
}

func (s *stubSource) Comments(ctx context.Context) ([]comments.Comment, error) {
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.comments, s.commentsErr
}

func (s *stubSource) Posts(context.Context) ([]comments.Post, error) {
	return s.posts, s.postsErr
}

func fixture(n int) *stubSource {
	src := &stubSource{posts: []comments.Post{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}}}
	for i := 1; i <= n; i++ {
		body := fmt.Sprintf("body %d", i)
		if i%4 == 0 {
			body = "Lorem " + body
		}
		src.comments = append(src.comments, comments.Comment{
			ID:     i,
			PostID: i%3 + 1,
			Name:   fmt.Sprintf("name %d", i),
			Email:  fmt.Sprintf("u%d@example.com", i),
			Body:   body,
		})
	}
	return src
}

func loadedSession(t *testing.T, src *stubSource) *Session {
	t.Helper()
	s := NewSession(context.Background(), source.NewLoader(src))
	t.Cleanup(s.Close)
	require.NoError(t, s.Load())
	return s
}

func TestSession_LoadingRejectsOperations(t *testing.T) {
	src := fixture(5)
	src.gate = make(chan struct{})
	s := NewSession(context.Background(), source.NewLoader(src))
	t.Cleanup(s.Close)

	s.Start()

	assert.True(t, s.Loading())
	snap := s.Snapshot()
	assert.True(t, snap.Loading)
	assert.Empty(t, snap.Rows)
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 0, snap.TotalPages)

	_, err := s.SetSearch("x")
	assert.ErrorIs(t, err, ErrLoading)
	_, err = s.Edit(1, comments.FieldName)
	assert.ErrorIs(t, err, ErrLoading)

	close(src.gate)
	require.Eventually(t, func() bool { return !s.Loading() }, testTimeout, testTick)
	assert.Len(t, s.Snapshot().Rows, 5)
}

func TestSession_Snapshot(t *testing.T) {
	s := loadedSession(t, fixture(25))

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 3, snap.TotalPages)
	assert.True(t, snap.ShowPagination)
	assert.Equal(t, 25, snap.Matches)
	require.Len(t, snap.Rows, comments.PageSize)
	assert.Equal(t, "second", snap.Rows[0].PostTitle)
	assert.Empty(t, snap.Error)
}

func TestSession_SearchAndPaging(t *testing.T) {
	s := loadedSession(t, fixture(25))

	for range 3 {
		_, err := s.NextPage()
		require.NoError(t, err)
	}
	assert.Equal(t, 3, s.Snapshot().Page)

	snap, err := s.SetSearch("lorem")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 6, snap.Matches)
	assert.False(t, snap.ShowPagination)

	snap, err = s.SetPage(99)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Page)

	snap, err = s.PrevPage()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Page)
}

func TestSession_NavigationReturnsItsOwnState(t *testing.T) {
	s := loadedSession(t, fixture(25))

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(2)
		go func(page int) {
			defer wg.Done()
			snap, err := s.SetPage(page%3 + 1)
			if assert.NoError(t, err) {
				assert.Equal(t, page%3+1, snap.Page)
			}
		}(i)
		go func() {
			defer wg.Done()
			snap, err := s.SetSearch("")
			if assert.NoError(t, err) {
				assert.Equal(t, 1, snap.Page)
				assert.Equal(t, 25, snap.Matches)
			}
		}()
	}
	wg.Wait()
}

func TestSession_EditCycle(t *testing.T) {
	s := loadedSession(t, fixture(3))

	row, err := s.Edit(2, comments.FieldBody)
	require.NoError(t, err)
	assert.True(t, row.IsEditingBody)

	row, err = s.Input(2, comments.FieldBody, "draft")
	require.NoError(t, err)
	assert.Equal(t, "draft", row.Body)
	assert.Equal(t, "body 2", row.OriginalBody)

	row, err = s.Discard(2, comments.FieldBody)
	require.NoError(t, err)
	assert.Equal(t, "body 2", row.Body)
	assert.False(t, row.IsEditingBody)

	_, err = s.Commit(2, comments.FieldBody, "x")
	assert.ErrorIs(t, err, comments.ErrNotEditing)

	_, err = s.Edit(2, comments.FieldName)
	require.NoError(t, err)
	row, err = s.Commit(2, comments.FieldName, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", row.Name)
	assert.Equal(t, "Renamed", row.OriginalName)
	assert.Equal(t, "first", row.PostTitle)
}

func TestSession_EditErrors(t *testing.T) {
	s := loadedSession(t, fixture(3))

	_, err := s.Edit(404, comments.FieldName)
	require.ErrorIs(t, err, comments.ErrCommentNotFound)

	_, err = s.Edit(1, comments.Field("email"))
	require.ErrorIs(t, err, comments.ErrUnknownField)
}

func TestSession_PostTitle(t *testing.T) {
	s := loadedSession(t, fixture(1))

	title, err := s.PostTitle(2)
	require.NoError(t, err)
	assert.Equal(t, "second", title)

	title, err = s.PostTitle(42)
	require.NoError(t, err)
	assert.Equal(t, comments.UnknownPostTitle, title)
}

func TestSession_PostsFailure(t *testing.T) {
	src := fixture(2)
	src.postsErr = errors.New("posts down")

	s := NewSession(context.Background(), source.NewLoader(src))
	t.Cleanup(s.Close)
	require.Error(t, s.Load())

	snap := s.Snapshot()
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, comments.UnknownPostTitle, snap.Rows[0].PostTitle)
	assert.Contains(t, snap.Error, "posts down")
	assert.Empty(t, snap.CommentsError)
}

func TestSession_CommentsFailure(t *testing.T) {
	src := fixture(2)
	src.commentsErr = errors.New("comments down")

	s := NewSession(context.Background(), source.NewLoader(src))
	t.Cleanup(s.Close)
	require.Error(t, s.Load())

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Rows)
	assert.Contains(t, snap.CommentsError, "comments down")
}

func TestSession_CloseDropsLateResult(t *testing.T) {
	src := fixture(2)
	src.gate = make(chan struct{})
	s := NewSession(context.Background(), source.NewLoader(src))

	done := make(chan error, 1)
	go func() { done <- s.Load() }()

	s.Close()
	assert.ErrorIs(t, <-done, ErrClosed)
	assert.True(t, s.Loading())
	_, err := s.NextPage()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSession_ConcurrentEditsSerialize(t *testing.T) {
	s := loadedSession(t, fixture(10))

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, _ = s.Edit(id, comments.FieldName)
			_, _ = s.Commit(id, comments.FieldName, fmt.Sprintf("renamed %d", id))
			_, _ = s.SetSearch("renamed")
		}(i)
	}
	wg.Wait()

	snap, err := s.SetSearch("renamed")
	require.NoError(t, err)
	assert.Equal(t, 10, snap.Matches)
}
