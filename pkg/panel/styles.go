package panel

import "github.com/charmbracelet/lipgloss"

// theme groups reusable styles for panel regions.
type theme struct {
	header     lipgloss.Style
	timestamp  lipgloss.Style
	message    lipgloss.Style
	fields     lipgloss.Style
	levelDebug lipgloss.Style
	levelInfo  lipgloss.Style
	levelWarn  lipgloss.Style
	levelError lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		header: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("60")),
		timestamp: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		fields: lipgloss.NewStyle().
			Foreground(lipgloss.Color("109")),
		levelDebug: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		levelInfo: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("114")),
		levelWarn: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		levelError: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203")),
	}
}
