package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	usermodel "github.com/Varun5711/taskmate/internal/models/user"
)

type View int

const (
	LoginView View = iota
	SignupView
	DashboardView
	EditorView
)

var errSessionExpired = errors.New("Session expired, please log in again")

type Model struct {
	currentView View
	login       *LoginModel
	signup      *SignupModel
	dashboard   *DashboardModel
	editor      *EditorModel
	api         API
	width       int
	height      int

	user *usermodel.PublicUser
}

func NewModel(api API) Model {
	return Model{
		currentView: LoginView,
		login:       NewLoginModel(api),
		signup:      NewSignupModel(api),
		dashboard:   NewDashboardModel(api),
		editor:      NewEditorModel(api),
		api:         api,
	}
}

func logoutCmd(api API) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		// The server always clears the session; a transport error changes nothing locally.
		_ = api.Logout(ctx)
		return loggedOutMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authSuccessMsg:
		user := msg.user
		m.user = &user
		m.login.Reset(nil)
		m.signup.Reset()
		m.currentView = DashboardView
		return m, m.dashboard.Start(user.Name)

	case todoErrorMsg:
		if isUnauthorized(msg.err) {
			return m.toLogin(errSessionExpired), nil
		}

	case logoutRequestMsg:
		return m, logoutCmd(m.api)

	case loggedOutMsg:
		return m.toLogin(nil), nil

	case openEditorMsg:
		m.editor.Open(msg.todo)
		m.currentView = EditorView
		return m, nil

	case editorClosedMsg:
		m.currentView = DashboardView
		return m, nil

	case todoSavedMsg:
		m.currentView = DashboardView
		if msg.created {
			m.dashboard.status = "Todo created"
			return m, m.dashboard.Refresh()
		}
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(todoUpdatedMsg{todo: msg.todo})
		m.dashboard.status = "Todo updated"
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "ctrl+s":
			switch m.currentView {
			case LoginView:
				m.currentView = SignupView
				return m, nil
			case SignupView:
				m.currentView = LoginView
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case LoginView:
		m.login, cmd = m.login.Update(msg)
	case SignupView:
		m.signup, cmd = m.signup.Update(msg)
	case DashboardView:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case EditorView:
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m Model) toLogin(reason error) Model {
	m.user = nil
	m.login.Reset(reason)
	m.currentView = LoginView
	return m
}

func (m Model) View() string {
	var statusBar string
	if m.user != nil && m.currentView != LoginView && m.currentView != SignupView {
		userInfo := lipgloss.NewStyle().
			Foreground(Success).
			Render("👤 " + m.user.Name)

		emailInfo := lipgloss.NewStyle().
			Foreground(Muted).
			Render(" (" + m.user.Email + ")")

		statusBar = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2).
			Render(userInfo + emailInfo)
	}

	var mainContent string
	switch m.currentView {
	case LoginView:
		mainContent = m.login.View()
	case SignupView:
		mainContent = m.signup.View()
	case DashboardView:
		mainContent = m.dashboard.View()
	case EditorView:
		mainContent = m.editor.View()
	}

	if statusBar != "" {
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, "\n", mainContent)
	}
	return mainContent
}
