package cmd

import "github.com/charmbracelet/lipgloss"

const (
	tealLight = "#56949f"
	tealDark  = "#9ccfd8"
	roseLight = "#b4637a"
	roseDark  = "#ebbcba"
)

var (
	accent  = lipgloss.AdaptiveColor{Dark: tealDark, Light: tealLight}
	primary = lipgloss.AdaptiveColor{Dark: roseDark, Light: roseLight}

	bankStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Margin(1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent)
	bankTitleStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(primary).
			Bold(true)
	soundNameStyle = lipgloss.NewStyle().
			Foreground(accent)
)
