package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for UI output.
// Each ANSI field contains an escape code for the corresponding category;
// the Gauge fields are lipgloss colors for the usage gauge.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success indicates positive outcomes.
	Success string
	// Warning is used for caution messages.
	Warning string
	// Error indicates failures.
	Error string
	// Info is used for informational messages.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string

	GaugeLow   lipgloss.TerminalColor
	GaugeMid   lipgloss.TerminalColor
	GaugeHigh  lipgloss.TerminalColor
	GaugeEmpty lipgloss.TerminalColor
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:       "dark",
		Primary:    "\033[38;5;39m",  // Bright blue
		Secondary:  "\033[38;5;245m", // Grey
		Success:    "\033[38;5;82m",  // Bright green
		Warning:    "\033[38;5;220m", // Yellow
		Error:      "\033[38;5;196m", // Red
		Info:       "\033[38;5;141m", // Purple
		Bold:       "\033[1m",
		Underline:  "\033[4m",
		Reset:      "\033[0m",
		GaugeLow:   lipgloss.Color("#9ece6a"),
		GaugeMid:   lipgloss.Color("#FFB347"),
		GaugeHigh:  lipgloss.Color("#FF4444"),
		GaugeEmpty: lipgloss.Color("#444444"),
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:       "light",
		Primary:    "\033[38;5;27m",  // Dark blue
		Secondary:  "\033[38;5;240m", // Dark grey
		Success:    "\033[38;5;28m",  // Dark green
		Warning:    "\033[38;5;130m", // Orange
		Error:      "\033[38;5;124m", // Dark red
		Info:       "\033[38;5;54m",  // Dark purple
		Bold:       "\033[1m",
		Underline:  "\033[4m",
		Reset:      "\033[0m",
		GaugeLow:   lipgloss.Color("#2E7D32"),
		GaugeMid:   lipgloss.Color("#E65100"),
		GaugeHigh:  lipgloss.Color("#B71C1C"),
		GaugeEmpty: lipgloss.Color("#BDBDBD"),
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or -no-color is provided.
	NoColorTheme = Theme{
		Name:       "none",
		GaugeLow:   lipgloss.NoColor{},
		GaugeMid:   lipgloss.NoColor{},
		GaugeHigh:  lipgloss.NoColor{},
		GaugeEmpty: lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name ("dark", "light", "none").
// Unknown names select the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme initializes the theme from the noColor flag and the environment.
// Colors are disabled when noColor is true or NO_COLOR is set
// (https://no-color.org/). SCRAPSTER_THEME may select "light".
func InitTheme(noColor bool) {
	if _, exists := os.LookupEnv("NO_COLOR"); noColor || exists {
		SetTheme("none")
		return
	}
	SetTheme(os.Getenv("SCRAPSTER_THEME"))
}
