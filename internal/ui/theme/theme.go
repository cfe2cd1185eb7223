package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme and styling
type Theme struct {
	Name string

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color
	StatusBar     lipgloss.Color
	Prompt        lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// JSON colors
	JSONKey     lipgloss.Color
	JSONString  lipgloss.Color
	JSONNumber  lipgloss.Color
	JSONBoolean lipgloss.Color
	JSONNull    lipgloss.Color
	JSONBracket lipgloss.Color
	JSONSummary lipgloss.Color

	// View tree colors
	TreeParent lipgloss.Color
	TreeChild  lipgloss.Color
	TreeBranch lipgloss.Color

	// ChromaStyle names the chroma style used by the value preview
	ChromaStyle string
}

// Names lists the available themes
func Names() []string {
	return []string{"default", "catppuccin"}
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMochaTheme()
	default:
		return DefaultTheme()
	}
}
