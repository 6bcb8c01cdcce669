package ui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	loginEmail = iota
	loginPassword
)

type LoginModel struct {
	form    form
	loading bool
	err     error
	api     API
}

func NewLoginModel(api API) *LoginModel {
	f := newForm("Email", "Password")
	f.mask(loginPassword)
	return &LoginModel{form: f, api: api}
}

func loginCmd(api API, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		u, err := api.Login(ctx, email, password)
		if err != nil {
			return authErrorMsg{err: err}
		}
		return authSuccessMsg{user: *u}
	}
}

func (m *LoginModel) Update(msg tea.Msg) (*LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
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
			email, password := m.form.value(loginEmail), m.form.rawValue(loginPassword)
			if email == "" || password == "" {
				m.err = errors.New("email and password are required")
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, loginCmd(m.api, email, password)
		case "ctrl+l":
			m.form.reset()
			m.err = nil
			return m, nil
		}
	}

	return m, m.form.update(msg)
}

// Reset clears the form, keeping err so a reason can be shown.
func (m *LoginModel) Reset(err error) {
	m.form.reset()
	m.loading = false
	m.err = err
}

func (m *LoginModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("TaskMate"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Sign in to see your tasks"))
	b.WriteString("\n\n")
	b.WriteString(m.form.view())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(InfoStyle.Render("Logging in..."))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("tab switch  •  enter login  •  ctrl+l clear  •  ctrl+s sign up  •  ctrl+c quit"))

	return BoxStyle.Width(76).BorderForeground(Primary).Render(b.String())
}
