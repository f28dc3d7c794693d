package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/christopherklint97/contribcal/internal/heatmap"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	tooltipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("0"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e2e8f0")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1)
)

// levelStyles precomputes one cell style per palette entry.
func levelStyles(p heatmap.Palette) [heatmap.MaxLevel + 1]lipgloss.Style {
	var styles [heatmap.MaxLevel + 1]lipgloss.Style
	for i := range styles {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color(i)))
	}
	return styles
}
