package theme

import "github.com/charmbracelet/lipgloss"

// CatppuccinMochaTheme returns the Catppuccin Mocha theme
// A soothing pastel theme for cozy TUIs
// Based on: https://github.com/catppuccin/catppuccin
func CatppuccinMochaTheme() Theme {
	return Theme{
		Name: "catppuccin-mocha",

		// Background colors
		Background: lipgloss.Color("#1e1e2e"), // Base
		Foreground: lipgloss.Color("#cdd6f4"), // Text

		// UI elements
		Border:        lipgloss.Color("#45475a"), // Surface1
		BorderFocused: lipgloss.Color("#89b4fa"), // Blue
		Selection:     lipgloss.Color("#313244"), // Surface0
		Cursor:        lipgloss.Color("#f5e0dc"), // Rosewater
		StatusBar:     lipgloss.Color("#181825"), // Mantle
		Prompt:        lipgloss.Color("#f9e2af"), // Yellow

		// Status colors
		Success: lipgloss.Color("#a6e3a1"), // Green
		Warning: lipgloss.Color("#f9e2af"), // Yellow
		Error:   lipgloss.Color("#f38ba8"), // Red
		Info:    lipgloss.Color("#89dceb"), // Sky

		// JSON colors
		JSONKey:     lipgloss.Color("#89b4fa"), // Blue
		JSONString:  lipgloss.Color("#a6e3a1"), // Green
		JSONNumber:  lipgloss.Color("#fab387"), // Peach
		JSONBoolean: lipgloss.Color("#f9e2af"), // Yellow
		JSONNull:    lipgloss.Color("#6c7086"), // Overlay0
		JSONBracket: lipgloss.Color("#9399b2"), // Overlay2
		JSONSummary: lipgloss.Color("#585b70"), // Surface2

		// View tree colors
		TreeParent: lipgloss.Color("#89b4fa"), // Blue - displayed parent
		TreeChild:  lipgloss.Color("#f9e2af"), // Yellow - displayed child
		TreeBranch: lipgloss.Color("#45475a"), // Surface1

		ChromaStyle: "catppuccin-mocha",
	}
}
