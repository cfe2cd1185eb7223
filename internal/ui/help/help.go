package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// Section is a titled group of key bindings
type Section struct {
	Title string
	Keys  []KeyBinding
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"Q, Ctrl+C", "Quit application"},
		{"Esc", "Close popup or prompt"},
		{"Tab", "Switch pane focus"},
		{"t", "Toggle view tree"},
		{"o", "Open another file"},
		{"s", "Save focused pane to a file"},
	}
}

// GetNavigationKeys returns navigation key bindings
func GetNavigationKeys() []KeyBinding {
	return []KeyBinding{
		{"↓/j", "Move down"},
		{"↑/k", "Move up"},
		{"PgDn/Ctrl+D", "Page down"},
		{"PgUp/Ctrl+U", "Page up"},
		{"Ctrl+E", "Scroll down one line"},
		{"Ctrl+Y", "Scroll up one line"},
		{"z, Space", "Fold or unfold container"},
		{"/", "Search (regular expression)"},
		{"n / N", "Next / previous match"},
	}
}

// GetQueryKeys returns query and pane tree key bindings
func GetQueryKeys() []KeyBinding {
	return []KeyBinding{
		{"q", "New query on the left pane"},
		{"] / [", "Next / previous pane pair"},
		{"↑/↓ (prompt)", "Walk query history"},
		{"Ctrl+R (prompt)", "Complete from history"},
		{"Ctrl+F (prompt)", "Cycle favorite queries"},
		{"Ctrl+B", "Save right pane query as favorite"},
		{"F", "Browse favorite queries"},
	}
}

// GetValueKeys returns key bindings acting on the selected value
func GetValueKeys() []KeyBinding {
	return []KeyBinding{
		{"y", "Copy path"},
		{"Y", "Copy value"},
		{"p", "Preview value"},
	}
}

// Sections returns every help section in display order
func Sections() []Section {
	return []Section{
		{"Global", GetGlobalKeys()},
		{"Navigation", GetNavigationKeys()},
		{"Queries", GetQueryKeys()},
		{"Value", GetValueKeys()},
	}
}

// Notes are shown under the key bindings
var Notes = []string{
	"Query results list object keys in sorted order; the source pane keeps the input's order.",
}

// Text renders the key bindings without styling
func Text() string {
	var b strings.Builder
	for i, s := range Sections() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Title)
		b.WriteString("\n")
		for _, kb := range s.Keys {
			b.WriteString("  ")
			b.WriteString(kb.Key)
			b.WriteString(strings.Repeat(" ", max(1, 18-lipgloss.Width(kb.Key))))
			b.WriteString(kb.Description)
			b.WriteString("\n")
		}
	}
	for _, n := range Notes {
		b.WriteString("\n")
		b.WriteString(n)
		b.WriteString("\n")
	}
	return b.String()
}

// Render creates the help view
func Render(width, height int, th theme.Theme) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.BorderFocused).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Info).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.Warning).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(th.Foreground)

	var b strings.Builder

	b.WriteString(titleStyle.Render("lazyjson - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, s := range Sections() {
		b.WriteString(sectionStyle.Render(s.Title))
		b.WriteString("\n")
		for _, kb := range s.Keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	for _, n := range Notes {
		b.WriteString(descStyle.Render("  " + n))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused).
		Padding(1, 2).
		Width(max(width-4, 0)).
		Height(max(height-4, 0))

	return boxStyle.Render(b.String())
}
