package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#AF2F2F")
	colorMuted  = lipgloss.Color("#777777")
	colorFaint  = lipgloss.Color("#4D4D4D")
	colorCursor = lipgloss.Color("#61AFEF")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorCursor).
			Bold(true)

	completedStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Strikethrough(true)

	countStyle = lipgloss.NewStyle().Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	selectedTabStyle = tabStyle.
				Foreground(colorAccent).
				Underline(true)

	clearStyle = lipgloss.NewStyle().Foreground(colorMuted)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorFaint).
			Italic(true)
)
