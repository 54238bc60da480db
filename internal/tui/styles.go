package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	listeningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	resultTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	selectedResultStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("213"))

	resultHostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	snippetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	placeholderStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(lipgloss.Color("244"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)
