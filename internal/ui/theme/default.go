package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark theme
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		// Background colors
		Background: lipgloss.Color("0"),
		Foreground: lipgloss.Color("252"),

		// UI elements
		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("62"),
		Selection:     lipgloss.Color("238"),
		Cursor:        lipgloss.Color("248"),
		StatusBar:     lipgloss.Color("236"),
		Prompt:        lipgloss.Color("220"),

		// Status colors
		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("160"),
		Info:    lipgloss.Color("75"),

		// JSON colors
		JSONKey:     lipgloss.Color("117"),
		JSONString:  lipgloss.Color("180"),
		JSONNumber:  lipgloss.Color("150"),
		JSONBoolean: lipgloss.Color("75"),
		JSONNull:    lipgloss.Color("244"),
		JSONBracket: lipgloss.Color("252"),
		JSONSummary: lipgloss.Color("242"),

		// View tree colors
		TreeParent: lipgloss.Color("12"),
		TreeChild:  lipgloss.Color("11"),
		TreeBranch: lipgloss.Color("240"),

		ChromaStyle: "monokai",
	}
}
