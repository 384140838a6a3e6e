package main

import "github.com/charmbracelet/lipgloss"

var (
	// headingStyle for document names and section titles
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// okStyle for success indicators
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	// errStyle for failure indicators
	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// summaryBoxStyle for the run summary
	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)
