package ui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/taskmate/internal/models"
)

const (
	editorTitle = iota
	editorDescription
)

type todoSavedMsg struct {
	todo    models.Todo
	created bool
}

type editorClosedMsg struct{}

// EditorModel creates a todo or edits the title and description of an existing one.
type EditorModel struct {
	form    form
	editing *models.Todo
	loading bool
	err     error
	api     API
}

func NewEditorModel(api API) *EditorModel {
	return &EditorModel{form: newForm("Title", "Description"), api: api}
}

// Open prepares the form; a nil todo starts a new one.
func (m *EditorModel) Open(t *models.Todo) {
	m.form.reset()
	m.editing = t
	m.loading = false
	m.err = nil
	if t != nil {
		m.form.set(editorTitle, t.Title)
		m.form.set(editorDescription, t.Description)
	}
}

func saveTodoCmd(api API, editing *models.Todo, title, description string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if editing == nil {
			t, err := api.CreateTodo(ctx, title, description)
			if err != nil {
				return todoErrorMsg{err: err}
			}
			return todoSavedMsg{todo: *t, created: true}
		}

		t, err := api.UpdateTodo(ctx, editing.ID, models.UpdateTodoRequest{
			Title:       &title,
			Description: &description,
		})
		if err != nil {
			return todoErrorMsg{err: err}
		}
		return todoSavedMsg{todo: *t}
	}
}

func (m *EditorModel) Update(msg tea.Msg) (*EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todoErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return editorClosedMsg{} }
		case "tab", "down":
			m.form.next()
			return m, nil
		case "shift+tab", "up":
			m.form.prev()
			return m, nil
		case "enter":
			if !m.form.onLast() {
				m.form.next()
				return m, nil
			}
			title := m.form.value(editorTitle)
			if title == "" {
				m.err = errors.New("Title is required")
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, saveTodoCmd(m.api, m.editing, title, m.form.value(editorDescription))
		}
	}

	return m, m.form.update(msg)
}

func (m *EditorModel) View() string {
	var b strings.Builder

	heading := "New todo"
	if m.editing != nil {
		heading = "Edit todo"
	}
	b.WriteString(TitleStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(m.form.view())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(InfoStyle.Render("Saving..."))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("tab switch  •  enter save  •  esc cancel"))

	return BoxStyle.Width(76).Render(b.String())
}
