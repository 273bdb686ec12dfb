package tui

import (
	"context"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corecomments "github.com/colonyops/remark/internal/core/comments"
	"github.com/colonyops/remark/internal/core/notify"
	"github.com/colonyops/remark/internal/core/source"
	"github.com/colonyops/remark/internal/tui/views/comments"
	"github.com/colonyops/remark/pkg/tuitest"
)

type staticSource struct {
	comments []corecomments.Comment
	posts    []corecomments.Post
}

func (s staticSource) Comments(context.Context) ([]corecomments.Comment, error) {
	return s.comments, nil
}

func (s staticSource) Posts(context.Context) ([]corecomments.Post, error) {
	return s.posts, nil
}

func newTestModel(t *testing.T, n int) Model {
	t.Helper()
	src := staticSource{posts: []corecomments.Post{{ID: 1, Title: "hello world"}}}
	for i := 1; i <= n; i++ {
		src.comments = append(src.comments, corecomments.Comment{
			ID:     i,
			PostID: 1,
			Name:   fmt.Sprintf("name %d", i),
			Email:  fmt.Sprintf("user%d@example.com", i),
			Body:   fmt.Sprintf("body %d", i),
		})
	}

	m := New(context.Background(), Options{
		Loader:    source.NewLoader(src),
		BuildInfo: BuildInfo{Version: "v1.2.3"},
	})
	res, _ := m.Update(tuitest.WindowSize(140, 40))
	return res.(Model)
}

// drain runs cmd and feeds every message it produces back into the model.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			res, _ := m.Update(c())
			m = res.(Model)
		}
		return m
	}
	res, _ := m.Update(msg)
	return res.(Model)
}

func TestModel_InitLoadsComments(t *testing.T) {
	m := newTestModel(t, 3)
	assert.Contains(t, tuitest.StripANSI(m.render()), "Loading comments")

	m = drain(t, m, m.Init())

	out := tuitest.StripANSI(m.render())
	assert.Contains(t, out, "remark")
	assert.Contains(t, out, "Comments Management Dashboard")
	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, "user2@example.com")
	assert.Contains(t, out, "hello world")
}

func TestModel_ViewUsesAltScreen(t *testing.T) {
	m := newTestModel(t, 1)
	assert.True(t, m.View().AltScreen)
}

func TestModel_QuitClosesView(t *testing.T) {
	m := newTestModel(t, 1)

	res, cmd := m.Update(tuitest.Key("q"))
	m = res.(Model)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)

	res, _ = m.Update(loadResult(t, m))
	m = res.(Model)
	assert.True(t, m.comments.Controller().Loading(), "late result ignored after quit")
}

func loadResult(t *testing.T, m Model) tea.Msg {
	t.Helper()
	batch, ok := m.Init()().(tea.BatchMsg)
	require.True(t, ok)
	return batch[0]()
}

func TestModel_QuitKeyTypesWhileEditing(t *testing.T) {
	m := newTestModel(t, 2)
	m = drain(t, m, m.Init())

	res, _ := m.Update(tuitest.Key("n"))
	m = res.(Model)
	res, _ = m.Update(tuitest.Key("q"))
	m = res.(Model)

	assert.False(t, m.quitting)
	row, _ := m.comments.Controller().Board().Row(1)
	assert.Equal(t, "name 1q", row.Name)
}

func TestModel_CtrlCAlwaysQuits(t *testing.T) {
	m := newTestModel(t, 2)
	m = drain(t, m, m.Init())

	res, _ := m.Update(tuitest.Key("n"))
	m = res.(Model)
	res, cmd := m.Update(tuitest.Key("ctrl+c"))
	m = res.(Model)

	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
}

func TestModel_NotificationShowsToast(t *testing.T) {
	m := newTestModel(t, 1)

	res, cmd := m.Update(comments.NotifyMsg{Notification: notify.Infof("saved name of #1")})
	m = res.(Model)

	require.NotNil(t, cmd, "first toast starts the tick chain")
	assert.True(t, m.toastController.Ticking())
	assert.Contains(t, tuitest.StripANSI(m.render()), "saved name of #1")

	_, cmd = m.Update(comments.NotifyMsg{Notification: notify.Infof("saved body of #1")})
	assert.Nil(t, cmd, "tick chain already running")
}

func TestModel_ToastTickChainExpires(t *testing.T) {
	m := newTestModel(t, 1)
	res, _ := m.Update(comments.NotifyMsg{Notification: notify.Infof("saved name of #1")})
	m = res.(Model)

	ticks := 0
	for {
		res, cmd := m.Update(toastTickMsg{})
		m = res.(Model)
		ticks++
		if cmd == nil {
			break
		}
		require.Less(t, ticks, 1000, "tick chain never expired")
	}

	assert.Equal(t, int(defaultToastTTL/toastTickInterval), ticks)
	assert.False(t, m.toastController.HasToasts())
	assert.False(t, m.toastController.Ticking())
}

func TestModel_EscDismissesToast(t *testing.T) {
	m := newTestModel(t, 1)
	m = drain(t, m, m.Init())
	res, _ := m.Update(comments.NotifyMsg{Notification: notify.Errorf("boom")})
	m = res.(Model)

	res, _ = m.Update(tuitest.Key("esc"))
	m = res.(Model)
	assert.False(t, m.toastController.HasToasts())
}
