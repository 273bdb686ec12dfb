package comments

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/remark/internal/core/comments"
	"github.com/colonyops/remark/internal/core/source"
)

func fixtureResult(n int) source.Result {
	loaded := make([]comments.Comment, 0, n)
	for i := 1; i <= n; i++ {
		body := fmt.Sprintf("body %d", i)
		if i%5 == 0 {
			body = "Lorem ipsum " + body
		}
		loaded = append(loaded, comments.Comment{
			ID:     i,
			PostID: (i-1)%3 + 1,
			Name:   fmt.Sprintf("name %d", i),
			Email:  fmt.Sprintf("user%d@example.com", i),
			Body:   body,
		})
	}
	return source.Result{
		Comments: loaded,
		Posts: []comments.Post{
			{ID: 1, Title: "first post"},
			{ID: 2, Title: "second post"},
			{ID: 3, Title: "third post"},
		},
	}
}

func loadedController(t *testing.T, n int) *Controller {
	t.Helper()
	c := NewController()
	require.True(t, c.Apply(fixtureResult(n)))
	return c
}

func TestController_StartsLoading(t *testing.T) {
	c := NewController()
	assert.True(t, c.Loading())
	assert.Empty(t, c.Rows())
	assert.Nil(t, c.Selected())
}

func TestController_ApplyOnce(t *testing.T) {
	c := loadedController(t, 25)
	assert.False(t, c.Loading())
	assert.Len(t, c.Rows(), comments.PageSize)

	assert.False(t, c.Apply(fixtureResult(3)), "second result is ignored")
	assert.Equal(t, 25, c.Board().Len())
}

func TestController_ApplyAfterCloseIgnored(t *testing.T) {
	c := NewController()
	c.Close()

	assert.False(t, c.Apply(fixtureResult(5)))
	assert.True(t, c.Loading())
	assert.True(t, c.Closed())
}

func TestController_ApplyKeepsLoadError(t *testing.T) {
	res := fixtureResult(4)
	res.PostsErr = errors.New("posts down")

	c := NewController()
	require.True(t, c.Apply(res))
	require.Error(t, c.LoadErr())
	assert.Len(t, c.Rows(), 4)
	assert.Equal(t, comments.UnknownPostTitle, c.Board().PostTitle(1))
}

func TestController_CursorMovement(t *testing.T) {
	c := loadedController(t, 12)

	c.MoveUp()
	assert.Equal(t, 0, c.Cursor(), "cannot move above first row")

	for range 20 {
		c.MoveDown()
	}
	assert.Equal(t, comments.PageSize-1, c.Cursor(), "stops at last row of page")

	c.NextPage()
	assert.Equal(t, 2, c.Board().Page())
	assert.Equal(t, 0, c.Cursor())
	require.NotNil(t, c.Selected())
	assert.Equal(t, 11, c.Selected().ID)

	c.MoveDown()
	c.NextPage()
	assert.Equal(t, 1, c.Cursor(), "cursor unchanged when page does not change")
}

func TestController_SetSearchResetsCursor(t *testing.T) {
	c := loadedController(t, 25)
	c.MoveDown()
	c.MoveDown()

	c.SetSearch("lorem")
	assert.Equal(t, 0, c.Cursor())
	assert.Len(t, c.Rows(), 5)
	assert.Equal(t, 5, c.Selected().ID)
}

func TestController_ToggleColumn(t *testing.T) {
	c := NewController()
	assert.Equal(t, comments.FieldName, c.Column())
	c.ToggleColumn()
	assert.Equal(t, comments.FieldBody, c.Column())
	c.ToggleColumn()
	assert.Equal(t, comments.FieldName, c.Column())

	c.SetColumn(comments.Field("email"))
	assert.Equal(t, comments.FieldName, c.Column(), "invalid column ignored")
}

func TestController_EditLifecycle(t *testing.T) {
	c := loadedController(t, 3)
	c.MoveDown()
	c.SetColumn(comments.FieldBody)

	id, value, ok := c.StartEdit()
	require.True(t, ok)
	assert.Equal(t, 2, id)
	assert.Equal(t, "body 2", value)

	require.NoError(t, c.Input(id, comments.FieldBody, "draft"))
	require.NoError(t, c.Commit(id, comments.FieldBody, "final"))

	row, _ := c.Board().Row(id)
	assert.Equal(t, "final", row.Body)
	assert.Equal(t, "final", row.OriginalBody)
	assert.False(t, row.IsEditingBody)

	err := c.Discard(id, comments.FieldBody)
	assert.ErrorIs(t, err, comments.ErrNotEditing)
}

func TestController_StartEditEmptyPage(t *testing.T) {
	c := loadedController(t, 3)
	c.SetSearch("no such thing")

	_, _, ok := c.StartEdit()
	assert.False(t, ok)
}

func TestController_ClampCursor(t *testing.T) {
	c := loadedController(t, 10)
	for range 9 {
		c.MoveDown()
	}
	c.Board().SetSearch("lorem")
	c.ClampCursor()
	assert.Equal(t, 1, c.Cursor())
}
