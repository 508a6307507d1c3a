package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gauge thresholds, in percent.
const (
	GaugeMidThreshold  = 50.0
	GaugeHighThreshold = 80.0
)

// GaugeColor picks the theme color for a usage percentage.
func GaugeColor(t Theme, percent float64) lipgloss.TerminalColor {
	switch {
	case percent >= GaugeHighThreshold:
		return t.GaugeHigh
	case percent >= GaugeMidThreshold:
		return t.GaugeMid
	}
	return t.GaugeLow
}

// RenderGauge draws a horizontal bar of width cells filled proportionally to
// percent, clamped to [0,100].
func RenderGauge(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 || percent != percent {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))

	t := GetCurrentTheme()
	on := lipgloss.NewStyle().Foreground(GaugeColor(t, percent))
	off := lipgloss.NewStyle().Foreground(t.GaugeEmpty)
	return on.Render(strings.Repeat("█", filled)) + off.Render(strings.Repeat("░", width-filled))
}
