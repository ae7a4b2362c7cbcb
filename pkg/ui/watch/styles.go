package watch

import "github.com/charmbracelet/lipgloss"

// theme groups reusable styles for watch UI regions.
type theme struct {
	header       lipgloss.Style
	contextBox   lipgloss.Style
	contextTitle lipgloss.Style
	blockedTitle lipgloss.Style
	feed         lipgloss.Style
	feedReady    lipgloss.Style
	feedUpdated  lipgloss.Style
	feedBlocked  lipgloss.Style
	feedTimeout  lipgloss.Style
	feedRaw      lipgloss.Style
	hint         lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		header: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("60")),
		contextBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("109")).
			Padding(0, 1),
		contextTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("114")).
			Padding(0, 1),
		blockedTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),
		feed: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1),
		feedReady: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("114")),
		feedUpdated: lipgloss.NewStyle().
			Foreground(lipgloss.Color("44")),
		feedBlocked: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203")),
		feedTimeout: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		feedRaw: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
	}
}
