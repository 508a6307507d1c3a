// Package ui provides theme and color support for terminal output.
// It defines color schemes, ANSI escape helpers and the lipgloss-rendered
// usage gauge shared by the CLI presenters.
package ui
