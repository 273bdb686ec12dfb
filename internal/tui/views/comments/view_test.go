package comments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/remark/internal/core/comments"
	"github.com/colonyops/remark/internal/core/notify"
	"github.com/colonyops/remark/internal/core/source"
	"github.com/colonyops/remark/pkg/tuitest"
)

type stubSource struct {
	res source.Result
}

func (s stubSource) Comments(context.Context) ([]comments.Comment, error) {
	return s.res.Comments, s.res.CommentsErr
}

func (s stubSource) Posts(context.Context) ([]comments.Post, error) {
	return s.res.Posts, s.res.PostsErr
}

func typeText(t *testing.T, v View, text string) View {
	t.Helper()
	for _, msg := range tuitest.Type(text) {
		v, _ = v.Update(msg)
	}
	return v
}

func render(v View) string {
	return tuitest.StripANSI(render(v))
}

func newTestView(t *testing.T, res source.Result) View {
	t.Helper()
	v := New(context.Background(), source.NewLoader(stubSource{res: res}))
	v.SetSize(160, 40)
	t.Cleanup(v.Close)
	return v
}

func loadedView(t *testing.T, res source.Result) View {
	t.Helper()
	v := newTestView(t, res)
	msg := loadComments(v.ctx, v.loader)()
	v, _ = v.Update(msg)
	require.False(t, v.ctrl.Loading())
	return v
}

func TestView_RendersLoadingUntilResult(t *testing.T) {
	v := newTestView(t, fixtureResult(3))
	assert.Contains(t, render(v), "Loading comments")

	v, _ = v.Update(tuitest.Key("j"))
	assert.Equal(t, 0, v.ctrl.Cursor(), "keys ignored while loading")
}

func TestView_LoadCmdProducesResult(t *testing.T) {
	v := newTestView(t, fixtureResult(3))
	msg := loadComments(v.ctx, v.loader)()

	loaded, ok := msg.(commentsLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.result.Err())
	assert.Len(t, loaded.result.Comments, 3)
}

func TestView_RendersTableAndPager(t *testing.T) {
	v := loadedView(t, fixtureResult(25))

	out := render(v)
	assert.Contains(t, out, "Email")
	assert.Contains(t, out, "user1@example.com")
	assert.Contains(t, out, "first post")
	assert.Contains(t, out, "Page 1 / 3")
	assert.NotContains(t, out, "user11@example.com")
}

func TestView_HidesPagerOnSinglePage(t *testing.T) {
	v := loadedView(t, fixtureResult(4))
	assert.NotContains(t, render(v), "Page 1")
}

func TestView_LateResultAfterCloseIgnored(t *testing.T) {
	v := newTestView(t, fixtureResult(3))
	v.Close()

	v, _ = v.Update(commentsLoadedMsg{result: fixtureResult(3)})
	assert.True(t, v.ctrl.Loading())
}

func TestView_PostsFailureShowsPlaceholder(t *testing.T) {
	res := fixtureResult(3)
	res.PostsErr = errors.New("posts unavailable")
	v := loadedView(t, res)

	out := render(v)
	assert.Contains(t, out, "user1@example.com")
	assert.Contains(t, out, comments.UnknownPostTitle)
	assert.Contains(t, out, "posts unavailable")
}

func TestView_LoadErrorRaisesWarning(t *testing.T) {
	res := fixtureResult(3)
	res.PostsErr = errors.New("posts unavailable")
	v := newTestView(t, res)

	_, cmd := v.Update(loadComments(v.ctx, v.loader)())
	require.NotNil(t, cmd)
	n, ok := cmd().(NotifyMsg)
	require.True(t, ok)
	assert.Equal(t, notify.LevelWarning, n.Notification.Level)
	assert.Contains(t, n.Notification.Message, "posts unavailable")
}

func TestView_SuccessfulLoadRaisesNothing(t *testing.T) {
	v := newTestView(t, fixtureResult(3))
	_, cmd := v.Update(loadComments(v.ctx, v.loader)())
	assert.Nil(t, cmd)
}

func TestView_CommentsFailureShowsEmptyBoard(t *testing.T) {
	res := fixtureResult(3)
	res.CommentsErr = errors.New("comments unavailable")
	v := loadedView(t, res)

	out := render(v)
	assert.Contains(t, out, "No comments")
	assert.Contains(t, out, "comments unavailable")
}

func TestView_Paging(t *testing.T) {
	v := loadedView(t, fixtureResult(25))

	v, _ = v.Update(tuitest.Key("l"))
	assert.Equal(t, 2, v.ctrl.Board().Page())
	assert.Contains(t, render(v), "user11@example.com")

	v, _ = v.Update(tuitest.Key("h"))
	v, _ = v.Update(tuitest.Key("h"))
	assert.Equal(t, 1, v.ctrl.Board().Page())
}

func TestView_SearchFlow(t *testing.T) {
	v := loadedView(t, fixtureResult(25))
	v, _ = v.Update(tuitest.Key("l"))

	v, _ = v.Update(tuitest.Key("/"))
	require.True(t, v.HasEditorFocus())

	v = typeText(t, v, "lorem")
	assert.Equal(t, "lorem", v.ctrl.Board().Search())
	assert.Equal(t, 1, v.ctrl.Board().Page(), "search returns to first page")
	assert.Len(t, v.ctrl.Rows(), 5)

	v, _ = v.Update(tuitest.Key("enter"))
	assert.False(t, v.HasEditorFocus())
	assert.Equal(t, "lorem", v.ctrl.Board().Search(), "enter keeps the term")
	assert.Contains(t, render(v), "5 matches")

	v, _ = v.Update(tuitest.Key("/"))
	v, _ = v.Update(tuitest.Key("esc"))
	assert.Empty(t, v.ctrl.Board().Search(), "esc clears the term")
	assert.Len(t, v.ctrl.Rows(), comments.PageSize)
}

func TestView_EditNameCommit(t *testing.T) {
	v := loadedView(t, fixtureResult(3))

	v, _ = v.Update(tuitest.Key("n"))
	require.True(t, v.HasEditorFocus())

	v = typeText(t, v, "!")
	row, _ := v.ctrl.Board().Row(1)
	assert.True(t, row.IsEditingName)
	assert.Equal(t, "name 1!", row.Name, "draft mirrored to row")
	assert.Equal(t, "name 1", row.OriginalName)
	assert.Contains(t, render(v), "Editing name of #1")

	v, cmd := v.Update(tuitest.Key("enter"))
	assert.False(t, v.HasEditorFocus())

	row, _ = v.ctrl.Board().Row(1)
	assert.False(t, row.IsEditingName)
	assert.Equal(t, "name 1!", row.Name)
	assert.Equal(t, "name 1!", row.OriginalName)

	require.NotNil(t, cmd)
	n, ok := cmd().(NotifyMsg)
	require.True(t, ok)
	assert.Equal(t, notify.LevelInfo, n.Notification.Level)
	assert.Equal(t, "saved name of #1", n.Notification.Message)
}

func TestView_EditNameDiscard(t *testing.T) {
	v := loadedView(t, fixtureResult(3))

	v, _ = v.Update(tuitest.Key("n"))
	v = typeText(t, v, "xyz")
	v, _ = v.Update(tuitest.Key("esc"))

	row, _ := v.ctrl.Board().Row(1)
	assert.False(t, row.IsEditingName)
	assert.Equal(t, "name 1", row.Name)
}

func TestView_EditBodyCommit(t *testing.T) {
	v := loadedView(t, fixtureResult(3))

	v, _ = v.Update(tuitest.Key("j"))
	v, _ = v.Update(tuitest.Key("tab"))
	v, _ = v.Update(tuitest.Key("e"))
	require.NotNil(t, v.editing)
	assert.Equal(t, comments.FieldBody, v.editing.field)
	assert.Equal(t, 2, v.editing.id)

	v = typeText(t, v, "?")
	v, _ = v.Update(tuitest.Key("ctrl+s"))

	row, _ := v.ctrl.Board().Row(2)
	assert.False(t, row.IsEditingBody)
	assert.Equal(t, "body 2?", row.Body)
	assert.Equal(t, "body 2?", row.OriginalBody)
}

func TestView_EditedValueVisibleThroughSearch(t *testing.T) {
	v := loadedView(t, fixtureResult(3))

	v, _ = v.Update(tuitest.Key("n"))
	v = typeText(t, v, " zebra")
	v, _ = v.Update(tuitest.Key("enter"))

	v, _ = v.Update(tuitest.Key("/"))
	v = typeText(t, v, "zebra")

	require.Len(t, v.ctrl.Rows(), 1)
	assert.Equal(t, 1, v.ctrl.Rows()[0].ID)
}

func TestView_DetailModal(t *testing.T) {
	v := loadedView(t, fixtureResult(3))

	v, _ = v.Update(tuitest.Key("enter"))
	require.NotNil(t, v.detail)
	assert.True(t, v.HasOverlay())
	assert.Equal(t, 1, v.detail.CommentID())

	out := tuitest.StripANSI(v.Overlay(v.View(), 160, 40))
	assert.Contains(t, out, "Comment #1")
	assert.Contains(t, out, "first post")

	v, _ = v.Update(tuitest.Key("esc"))
	assert.Nil(t, v.detail)
}

func TestView_HelpDialog(t *testing.T) {
	v := loadedView(t, fixtureResult(3))

	v, _ = v.Update(tuitest.Key("?"))
	require.True(t, v.HasOverlay())
	assert.Contains(t, tuitest.StripANSI(v.Overlay(v.View(), 160, 40)), "Keyboard Shortcuts")

	v, _ = v.Update(tuitest.Key("esc"))
	assert.False(t, v.HasOverlay())
}

func TestCell(t *testing.T) {
	assert.Equal(t, "ab  ", cell("ab", 4))
	assert.Equal(t, "a b ", cell("a\nb", 4))
	assert.Equal(t, "abc…", cell("abcdef", 4))
}
