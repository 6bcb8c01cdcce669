package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/taskmate/internal/filter"
	"github.com/Varun5711/taskmate/internal/models"
)

type todosLoadedMsg struct {
	todos []models.Todo
}

type todoUpdatedMsg struct {
	todo models.Todo
}

type todoDeletedMsg struct {
	id string
}

type todoErrorMsg struct {
	err error
}

// openEditorMsg asks the root model to show the editor; todo is nil for a new one.
type openEditorMsg struct {
	todo *models.Todo
}

type logoutRequestMsg struct{}

// DashboardModel lists the user's todos. Filtering and search run locally
// over the last list fetched from the server.
type DashboardModel struct {
	api      API
	userName string

	todos    []models.Todo
	visible  []models.Todo
	criteria filter.Criteria
	cursor   int

	searching bool
	search    textinput.Model

	loading bool
	status  string
	err     error
}

func NewDashboardModel(api API) *DashboardModel {
	search := textinput.New()
	search.Placeholder = "search title or description"
	search.Prompt = "/ "
	search.CharLimit = 128
	search.Width = 40

	return &DashboardModel{
		api:      api,
		search:   search,
		criteria: filter.Criteria{Status: filter.StatusAll},
	}
}

func loadTodosCmd(api API) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		todos, err := api.ListTodos(ctx)
		if err != nil {
			return todoErrorMsg{err: err}
		}
		return todosLoadedMsg{todos: todos}
	}
}

func toggleTodoCmd(api API, t models.Todo) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		done := !t.Completed
		updated, err := api.UpdateTodo(ctx, t.ID, models.UpdateTodoRequest{Completed: &done})
		if err != nil {
			return todoErrorMsg{err: err}
		}
		return todoUpdatedMsg{todo: *updated}
	}
}

func deleteTodoCmd(api API, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := api.DeleteTodo(ctx, id); err != nil {
			return todoErrorMsg{err: err}
		}
		return todoDeletedMsg{id: id}
	}
}

// Start resets the dashboard for a freshly authenticated user and loads their todos.
func (m *DashboardModel) Start(userName string) tea.Cmd {
	m.userName = userName
	m.todos = nil
	m.visible = nil
	m.cursor = 0
	m.criteria = filter.Criteria{Status: filter.StatusAll}
	m.search.Reset()
	m.searching = false
	m.status = ""
	m.err = nil
	return m.Refresh()
}

func (m *DashboardModel) Refresh() tea.Cmd {
	m.loading = true
	return loadTodosCmd(m.api)
}

func (m *DashboardModel) refilter() {
	m.visible = filter.Apply(m.todos, m.criteria)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *DashboardModel) selected() (models.Todo, bool) {
	if len(m.visible) == 0 {
		return models.Todo{}, false
	}
	return m.visible[m.cursor], true
}

func (m *DashboardModel) Update(msg tea.Msg) (*DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		m.loading = false
		m.err = nil
		m.todos = msg.todos
		m.refilter()
		return m, nil

	case todoUpdatedMsg:
		for i := range m.todos {
			if m.todos[i].ID == msg.todo.ID {
				m.todos[i] = msg.todo
			}
		}
		m.refilter()
		if msg.todo.Completed {
			m.status = fmt.Sprintf("Completed %q", msg.todo.Title)
		} else {
			m.status = fmt.Sprintf("Reopened %q", msg.todo.Title)
		}
		return m, nil

	case todoDeletedMsg:
		kept := m.todos[:0]
		for _, t := range m.todos {
			if t.ID != msg.id {
				kept = append(kept, t)
			}
		}
		m.todos = kept
		m.refilter()
		m.status = "Todo deleted"
		return m, nil

	case todoErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *DashboardModel) updateSearch(msg tea.KeyMsg) (*DashboardModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.Reset()
		m.criteria.Query = ""
		m.refilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.criteria.Query = m.search.Value()
	m.refilter()
	return m, cmd
}

func (m *DashboardModel) updateList(msg tea.KeyMsg) (*DashboardModel, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case " ", "x":
		if t, ok := m.selected(); ok {
			return m, toggleTodoCmd(m.api, t)
		}
	case "d":
		if t, ok := m.selected(); ok {
			return m, deleteTodoCmd(m.api, t.ID)
		}
	case "n":
		return m, func() tea.Msg { return openEditorMsg{} }
	case "e", "enter":
		if t, ok := m.selected(); ok {
			return m, func() tea.Msg { return openEditorMsg{todo: &t} }
		}
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "f":
		m.criteria.Status = m.criteria.Status.Next()
		m.refilter()
	case "c":
		m.criteria = filter.Criteria{Status: filter.StatusAll}
		m.search.Reset()
		m.refilter()
	case "r":
		return m, m.Refresh()
	case "L":
		return m, func() tea.Msg { return logoutRequestMsg{} }
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	greeting := "Your todos"
	if m.userName != "" {
		greeting = fmt.Sprintf("%s's todos", m.userName)
	}
	b.WriteString(HeaderStyle.Render("TaskMate  •  " + greeting))
	b.WriteString("\n\n")

	pending := 0
	for _, t := range m.todos {
		if !t.Completed {
			pending++
		}
	}
	b.WriteString(StatsStyle.Render(fmt.Sprintf("%d total", len(m.todos))))
	b.WriteString(StatsStyle.Render(fmt.Sprintf("%d pending", pending)))
	b.WriteString(InfoStyle.Render(fmt.Sprintf("filter: %s", m.criteria.Status)))
	b.WriteString("\n")

	if m.searching || m.criteria.Query != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading && len(m.todos) == 0:
		b.WriteString(InfoStyle.Render("Loading todos..."))
		b.WriteString("\n")
	case len(m.todos) == 0:
		b.WriteString(InfoStyle.Render("No todos yet. Press n to add one."))
		b.WriteString("\n")
	case len(m.visible) == 0:
		b.WriteString(InfoStyle.Render("Nothing matches the current filter."))
		b.WriteString("\n")
	default:
		for i, t := range m.visible {
			b.WriteString(m.renderTodo(t, i == m.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(SuccessStyle.Render(m.status))
		b.WriteString("\n")
	}

	help := "↑/↓ move • space toggle • n new • e edit • d delete • / search • f filter • c clear • r refresh • L logout • q quit"
	if m.searching {
		help = "type to search • enter keep • esc clear"
	}
	b.WriteString(FooterStyle.Render(help))

	return b.String()
}

func (m *DashboardModel) renderTodo(t models.Todo, selected bool) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %s", box, t.Title)

	var row string
	switch {
	case selected:
		row = SelectedItemStyle.Render("▸ " + line)
	case t.Completed:
		row = DoneItemStyle.Render("  " + line)
	default:
		row = ItemStyle.Render("  " + line)
	}

	if selected && t.Description != "" {
		row += "\n" + DescriptionStyle.Render(t.Description)
	}
	return row
}
