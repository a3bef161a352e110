package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))
	Subtle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	MetricLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	MetricValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))

	Good = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	Warn = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	Bad  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))

	Header = lipgloss.NewStyle().Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("#444466"))
	Panel  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444466")).Padding(0, 1)
)

// Metric renders "label: value" with the metric styles.
func Metric(label, value string) string {
	return MetricLabel.Render(label+":") + " " + MetricValue.Render(value)
}

// Drift colors a relative energy drift: green below 1%, yellow below 10%,
// red otherwise.
func Drift(drift float64, text string) string {
	switch {
	case drift < 0.01:
		return Good.Render(text)
	case drift < 0.1:
		return Warn.Render(text)
	default:
		return Bad.Render(text)
	}
}

// Separator draws a muted rule of the given width.
func Separator(width int) string {
	if width < 1 {
		return ""
	}
	return Subtle.Render(strings.Repeat("─", width))
}
