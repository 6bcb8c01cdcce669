package ui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	signupName = iota
	signupEmail
	signupPassword
)

type SignupModel struct {
	form    form
	loading bool
	err     error
	api     API
}

func NewSignupModel(api API) *SignupModel {
	f := newForm("Name", "Email", "Password")
	f.mask(signupPassword)
	return &SignupModel{form: f, api: api}
}

func signupCmd(api API, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		u, err := api.Register(ctx, name, email, password)
		if err != nil {
			return authErrorMsg{err: err}
		}
		return authSuccessMsg{user: *u}
	}
}

func (m *SignupModel) Update(msg tea.Msg) (*SignupModel, tea.Cmd) {
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
			name := m.form.value(signupName)
			email := m.form.value(signupEmail)
			password := m.form.rawValue(signupPassword)
			if name == "" || email == "" || password == "" {
				m.err = errors.New("All fields required")
				return m, nil
			}
			if len([]rune(password)) < 6 {
				m.err = errors.New("Password must be at least 6 characters")
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, signupCmd(m.api, name, email, password)
		case "ctrl+l":
			m.form.reset()
			m.err = nil
			return m, nil
		}
	}

	return m, m.form.update(msg)
}

func (m *SignupModel) Reset() {
	m.form.reset()
	m.loading = false
	m.err = nil
}

func (m *SignupModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Create your TaskMate account"))
	b.WriteString("\n\n")
	b.WriteString(m.form.view())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(InfoStyle.Render("Creating account..."))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("tab switch  •  enter sign up  •  ctrl+l clear  •  ctrl+s login  •  ctrl+c quit"))

	return BoxStyle.Width(76).BorderForeground(Secondary).Render(b.String())
}
