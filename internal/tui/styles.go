package tui

import "github.com/charmbracelet/lipgloss"

// ANSI 0-15 palette, same scheme as the rest of the terminal surface.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	SubtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	MutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	HelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

	CursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	DoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	TodayStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	DayStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(lipgloss.Color("8"))

	InputBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("4")).
			Padding(0, 1)
)
