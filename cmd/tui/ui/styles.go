package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Primary   = lipgloss.Color("#00ADD8") // Go cyan
	Secondary = lipgloss.Color("#5DC9E2")
	Accent    = lipgloss.Color("#CE3262")
	Success   = lipgloss.Color("#00D9A5")
	Warning   = lipgloss.Color("#FFB84D")
	Error     = lipgloss.Color("#FF5A87")
	Muted     = lipgloss.Color("#6B7B8C")
	Text      = lipgloss.Color("#E3F2FD")
	BgDark    = lipgloss.Color("#0A1A2F")
	BgLight   = lipgloss.Color("#1A2942")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				PaddingLeft(2)

	ItemStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	// DoneItemStyle renders completed todos.
	DoneItemStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Strikethrough(true).
			PaddingLeft(2)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(Muted).
				PaddingLeft(8)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Background(BgLight).
			Padding(0, 2).
			Bold(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Background(BgDark).
			Padding(0, 2)

	StatsStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			PaddingRight(2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(20)
)
