package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// Panel represents a bordered UI panel
type Panel struct {
	Title   string
	Content string
	Width   int // Outer width including the border
	Height  int // Outer height including the border
	Focused bool
	Theme   theme.Theme
}

// InnerSize returns the content area inside the border
func (p *Panel) InnerSize() (width, height int) {
	return max(p.Width-2, 0), max(p.Height-2, 0)
}

// View renders the panel
func (p *Panel) View() string {
	if p.Width <= 2 || p.Height <= 2 {
		return ""
	}

	border := p.Theme.Border
	if p.Focused {
		border = p.Theme.BorderFocused
	}
	width, height := p.InnerSize()
	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		MaxHeight(p.Height).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)

	out := style.Render(p.Content)
	if p.Title == "" {
		return out
	}
	return withTitle(out, p.Title, border)
}

// withTitle writes title into the top border line
func withTitle(box, title string, color lipgloss.Color) string {
	lines := splitLines(box)
	if len(lines) == 0 {
		return box
	}
	width := lipgloss.Width(lines[0])
	if width < 6 {
		return box
	}
	title = truncateWidth(" "+title+" ", width-4)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
	borderStyle := lipgloss.NewStyle().Foreground(color)
	b := lipgloss.RoundedBorder()
	fill := width - 3 - lipgloss.Width(title)
	lines[0] = borderStyle.Render(b.TopLeft+b.Top) +
		titleStyle.Render(title) +
		borderStyle.Render(repeat(b.Top, fill)+b.TopRight)
	return joinLines(lines)
}
