package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette shared across the browser views.
var (
	ColorAccent = lipgloss.Color("205")
	ColorMuted  = lipgloss.Color("241")
	ColorLabel  = lipgloss.Color("39")
	ColorDanger = lipgloss.Color("196")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorLabel)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	activePageStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	disabledPageStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	bulkBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(1, 2)
)
