package ui

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Varun5711/taskmate/cmd/tui/client"
	"github.com/Varun5711/taskmate/internal/filter"
	"github.com/Varun5711/taskmate/internal/models"
	usermodel "github.com/Varun5711/taskmate/internal/models/user"
)

type fakeAPI struct {
	mu       sync.Mutex
	todos    []models.Todo
	seq      int
	loggedIn bool
	expired  bool
}

func (f *fakeAPI) Register(_ context.Context, name, email, _ string) (*usermodel.PublicUser, error) {
	f.loggedIn = true
	return &usermodel.PublicUser{ID: "u1", Name: name, Email: email}, nil
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*usermodel.PublicUser, error) {
	if password != "secret1" {
		return nil, &client.APIError{StatusCode: http.StatusBadRequest, Message: "Invalid credentials"}
	}
	f.loggedIn = true
	return &usermodel.PublicUser{ID: "u1", Name: "Ada", Email: email}, nil
}

func (f *fakeAPI) Logout(context.Context) error {
	f.loggedIn = false
	return nil
}

func (f *fakeAPI) ListTodos(context.Context) ([]models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.expired {
		return nil, &client.APIError{StatusCode: http.StatusUnauthorized, Message: "Token invalid or expired"}
	}
	out := make([]models.Todo, len(f.todos))
	copy(out, f.todos)
	return out, nil
}

func (f *fakeAPI) CreateTodo(_ context.Context, title, description string) (*models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := models.Todo{ID: fmt.Sprintf("t%d", f.seq), UserID: "u1", Title: title, Description: description, CreatedAt: time.Now()}
	f.todos = append([]models.Todo{t}, f.todos...)
	return &t, nil
}

func (f *fakeAPI) UpdateTodo(_ context.Context, id string, req models.UpdateTodoRequest) (*models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.todos {
		if f.todos[i].ID != id {
			continue
		}
		if req.Title != nil {
			f.todos[i].Title = *req.Title
		}
		if req.Description != nil {
			f.todos[i].Description = *req.Description
		}
		if req.Completed != nil {
			f.todos[i].Completed = *req.Completed
		}
		t := f.todos[i]
		return &t, nil
	}
	return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "Todo not found"}
}

func (f *fakeAPI) DeleteTodo(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return &client.APIError{StatusCode: http.StatusNotFound, Message: "Todo not found"}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// send feeds msg to the model and then runs any command it returns,
// feeding results back until the model settles.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	queue := []tea.Msg{msg}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 50, "model did not settle")

		next := queue[0]
		queue = queue[1:]

		updated, cmd := m.Update(next)
		m = updated.(Model)
		queue = append(queue, drain(cmd)...)
	}
	return m
}

// The fake API answers immediately, so anything slower is a cursor blink.
const drainTimeout = 10 * time.Millisecond

// drain runs cmd and returns the messages worth feeding back. Commands
// that do not finish promptly, such as cursor blinks, are abandoned.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var result tea.Msg
	select {
	case result = <-done:
	case <-time.After(drainTimeout):
		return nil
	}

	switch msg := result.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, drain(c)...)
		}
		return out
	case todosLoadedMsg, todoUpdatedMsg, todoDeletedMsg, todoErrorMsg, todoSavedMsg,
		authSuccessMsg, authErrorMsg, loggedOutMsg, logoutRequestMsg, openEditorMsg, editorClosedMsg:
		return []tea.Msg{msg}
	default:
		return nil
	}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, runes(string(r)))
	}
	return m
}

func loggedIn(t *testing.T, api *fakeAPI) Model {
	t.Helper()
	m := NewModel(api)
	m = typeText(t, m, "ada@example.com")
	m = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "secret1")
	m = send(t, m, key(tea.KeyEnter))
	require.Equal(t, DashboardView, m.currentView)
	return m
}

func TestLogin_ShowsDashboard(t *testing.T) {
	api := &fakeAPI{}
	_, _ = api.CreateTodo(context.Background(), "Buy milk", "")

	m := loggedIn(t, api)

	require.NotNil(t, m.user)
	assert.Equal(t, "Ada", m.user.Name)
	assert.Len(t, m.dashboard.visible, 1)
	assert.Contains(t, m.View(), "Buy milk")
}

func TestLogin_BadPasswordStaysOnLogin(t *testing.T) {
	m := NewModel(&fakeAPI{})
	m = typeText(t, m, "ada@example.com")
	m = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "wrong")
	m = send(t, m, key(tea.KeyEnter))

	assert.Equal(t, LoginView, m.currentView)
	assert.Contains(t, m.View(), "Invalid credentials")
}

func TestSignup_ValidatesBeforeCalling(t *testing.T) {
	api := &fakeAPI{}
	m := NewModel(api)
	m = send(t, m, key(tea.KeyCtrlS))
	require.Equal(t, SignupView, m.currentView)

	m = typeText(t, m, "Ada")
	m = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "ada@example.com")
	m = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "123")
	m = send(t, m, key(tea.KeyEnter))

	assert.Equal(t, SignupView, m.currentView)
	assert.False(t, api.loggedIn)
	assert.Contains(t, m.View(), "Password must be at least 6 characters")
}

func TestDashboard_CreateToggleDelete(t *testing.T) {
	api := &fakeAPI{}
	m := loggedIn(t, api)

	m = send(t, m, runes("n"))
	require.Equal(t, EditorView, m.currentView)
	m = typeText(t, m, "Write report")
	m = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "quarterly")
	m = send(t, m, key(tea.KeyEnter))

	require.Equal(t, DashboardView, m.currentView)
	require.Len(t, m.dashboard.todos, 1)
	assert.Equal(t, "Write report", m.dashboard.todos[0].Title)
	assert.Equal(t, "quarterly", m.dashboard.todos[0].Description)

	m = send(t, m, key(tea.KeySpace))
	assert.True(t, m.dashboard.todos[0].Completed)
	assert.True(t, api.todos[0].Completed)

	m = send(t, m, runes("d"))
	assert.Empty(t, m.dashboard.todos)
	assert.Empty(t, api.todos)
	assert.Contains(t, m.View(), "No todos yet")
}

func TestDashboard_EditKeepsPosition(t *testing.T) {
	api := &fakeAPI{}
	_, _ = api.CreateTodo(context.Background(), "old", "")
	_, _ = api.CreateTodo(context.Background(), "newer", "")
	m := loggedIn(t, api)

	m = send(t, m, runes("j"))
	m = send(t, m, runes("e"))
	require.Equal(t, EditorView, m.currentView)
	require.NotNil(t, m.editor.editing)
	assert.Equal(t, "old", m.editor.editing.Title)

	m = typeText(t, m, "er")
	m = send(t, m, key(tea.KeyTab))
	m = send(t, m, key(tea.KeyEnter))

	require.Equal(t, DashboardView, m.currentView)
	assert.Equal(t, "newer", m.dashboard.todos[0].Title)
	assert.Equal(t, "older", m.dashboard.todos[1].Title)
}

func TestEditor_RequiresTitle(t *testing.T) {
	api := &fakeAPI{}
	m := loggedIn(t, api)

	m = send(t, m, runes("n"))
	m = send(t, m, key(tea.KeyTab))
	m = send(t, m, key(tea.KeyEnter))

	assert.Equal(t, EditorView, m.currentView)
	assert.Empty(t, api.todos)
	assert.Contains(t, m.View(), "Title is required")

	m = send(t, m, key(tea.KeyEsc))
	assert.Equal(t, DashboardView, m.currentView)
}

func TestDashboard_FilterAndSearch(t *testing.T) {
	api := &fakeAPI{}
	ctx := context.Background()
	a, _ := api.CreateTodo(ctx, "Buy milk", "")
	_, _ = api.CreateTodo(ctx, "Call mom", "weekly")
	_, _ = api.UpdateTodo(ctx, a.ID, models.UpdateTodoRequest{Completed: boolPtr(true)})
	m := loggedIn(t, api)

	m = send(t, m, runes("f"))
	assert.Equal(t, filter.StatusCompleted, m.dashboard.criteria.Status)
	require.Len(t, m.dashboard.visible, 1)
	assert.Equal(t, "Buy milk", m.dashboard.visible[0].Title)

	m = send(t, m, runes("f"))
	assert.Equal(t, filter.StatusPending, m.dashboard.criteria.Status)
	require.Len(t, m.dashboard.visible, 1)
	assert.Equal(t, "Call mom", m.dashboard.visible[0].Title)

	m = send(t, m, runes("f"))
	m = send(t, m, runes("/"))
	m = typeText(t, m, "WEEK")
	require.Len(t, m.dashboard.visible, 1)
	assert.Equal(t, "Call mom", m.dashboard.visible[0].Title)

	// q is text while searching
	m = send(t, m, runes("q"))
	assert.Empty(t, m.dashboard.visible)

	m = send(t, m, key(tea.KeyEsc))
	assert.Len(t, m.dashboard.visible, 2)
	assert.False(t, m.dashboard.searching)
}

func TestDashboard_UnauthorizedReturnsToLogin(t *testing.T) {
	api := &fakeAPI{}
	m := loggedIn(t, api)

	api.expired = true
	m = send(t, m, runes("r"))

	assert.Equal(t, LoginView, m.currentView)
	assert.Nil(t, m.user)
	assert.Contains(t, m.View(), errSessionExpired.Error())
}

func TestDashboard_Logout(t *testing.T) {
	api := &fakeAPI{}
	m := loggedIn(t, api)

	m = send(t, m, runes("L"))

	assert.Equal(t, LoginView, m.currentView)
	assert.False(t, api.loggedIn)
	assert.Nil(t, m.user)
}

func boolPtr(b bool) *bool { return &b }
