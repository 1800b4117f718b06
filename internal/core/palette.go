package core

import "github.com/charmbracelet/lipgloss"

// Fixed keyword palette for context colors. Any value outside this table is
// treated as a literal color string.
var keywordColors = map[string]lipgloss.Color{
	"error":     lipgloss.Color("160"),
	"warning":   lipgloss.Color("214"),
	"success":   lipgloss.Color("34"),
	"info":      lipgloss.Color("33"),
	"important": lipgloss.Color("141"),
}

// Default badge colors when a context omits them.
var (
	DimColor        = lipgloss.Color("240")
	BackgroundColor = lipgloss.Color("235")
)

// ResolveColor maps a palette keyword to its color, passes any other
// non-empty string through as a literal color value, and falls back to the
// given default when absent.
func ResolveColor(value string, fallback lipgloss.Color) lipgloss.Color {
	if value == "" {
		return fallback
	}
	if c, ok := keywordColors[value]; ok {
		return c
	}
	return lipgloss.Color(value)
}
