package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field struct {
	label string
	input textinput.Model
}

// form is a vertical list of labelled text inputs with one focused at a time.
type form struct {
	fields []field
	focus  int
}

func newForm(labels ...string) form {
	f := form{fields: make([]field, len(labels))}
	for i, label := range labels {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 44
		ti.Prompt = ""
		f.fields[i] = field{label: label, input: ti}
	}
	f.fields[0].input.Focus()
	return f
}

func (f *form) mask(i int) {
	f.fields[i].input.EchoMode = textinput.EchoPassword
	f.fields[i].input.EchoCharacter = '•'
}

func (f *form) setFocus(i int) {
	f.fields[f.focus].input.Blur()
	f.focus = (i + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f *form) next() { f.setFocus(f.focus + 1) }
func (f *form) prev() { f.setFocus(f.focus - 1) }

func (f *form) onLast() bool { return f.focus == len(f.fields)-1 }

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

func (f *form) rawValue(i int) string {
	return f.fields[i].input.Value()
}

func (f *form) set(i int, v string) {
	f.fields[i].input.SetValue(v)
	f.fields[i].input.CursorEnd()
}

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.Reset()
	}
	f.setFocus(0)
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	for i, fl := range f.fields {
		style := InputStyle
		if i == f.focus {
			style = FocusedInputStyle
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center,
			LabelStyle.Width(14).Render(fl.label+":"),
			style.Width(48).Render(fl.input.View()),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}
