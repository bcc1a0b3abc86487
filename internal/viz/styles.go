package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(14)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	trackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
)

// Metric renders one "label value" row.
func Metric(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value)
}

// Rule is a horizontal divider.
func Rule(width int) string {
	if width < 0 {
		width = 0
	}
	return Subtle.Render(strings.Repeat("─", width))
}

// Bar shows the fraction of trials done.
func Bar(frac float64, width int) string {
	filled := int(frac * float64(width))
	filled = max(0, min(filled, width))
	return barStyle.Render(strings.Repeat("█", filled)) + Subtle.Render(strings.Repeat("░", width-filled))
}

var levels = []rune(" ▁▂▃▄▅▆▇█")

// Track is a histogram of visited positions over [lo, hi], one column per
// bin, scaled to the most visited bin.
func Track(positions []float64, lo, hi float64, width int) string {
	if width <= 0 || hi <= lo {
		return ""
	}
	counts := make([]int, width)
	peak := 0
	for _, x := range positions {
		if x < lo || x > hi {
			continue
		}
		i := min(int((x-lo)/(hi-lo)*float64(width)), width-1)
		counts[i]++
		peak = max(peak, counts[i])
	}
	if peak == 0 {
		return Rule(width)
	}
	cells := make([]rune, width)
	for i, n := range counts {
		cells[i] = levels[n*(len(levels)-1)/peak]
	}
	return trackStyle.Render(string(cells))
}
