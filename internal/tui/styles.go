package tui

import "github.com/charmbracelet/lipgloss"

var (
	panelStyle         lipgloss.Style
	titleStyle         lipgloss.Style
	dimStyle           lipgloss.Style
	labelStyle         lipgloss.Style
	valueStyle         lipgloss.Style
	barStyle           lipgloss.Style
	sparklineStyle     lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
)

func init() {
	initStyles(false)
}

// initStyles rebuilds the styles. With noColor only layout attributes are
// kept.
func initStyles(noColor bool) {
	color := func(light, dark string) lipgloss.TerminalColor {
		if noColor {
			return lipgloss.NoColor{}
		}
		return lipgloss.AdaptiveColor{Light: light, Dark: dark}
	}
	accent := color("27", "39")
	dim := color("240", "245")
	success := color("28", "82")
	warning := color("130", "220")
	failure := color("124", "196")

	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(dim).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle = lipgloss.NewStyle().Foreground(dim)
	labelStyle = lipgloss.NewStyle().Foreground(dim).Width(12)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	barStyle = lipgloss.NewStyle().Foreground(accent)
	sparklineStyle = lipgloss.NewStyle().Foreground(warning)
	statusRunningStyle = lipgloss.NewStyle().Bold(true).Foreground(success)
	statusPausedStyle = lipgloss.NewStyle().Bold(true).Foreground(warning)
	statusDoneStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	statusErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(failure)
}
