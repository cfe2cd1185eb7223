package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// FlashLevel selects the border color of a flash popup
type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashSuccess
	FlashError
)

// Flash is a transient popup drawn over the panes until dismissed
type Flash struct {
	Title   string
	Message string
	Level   FlashLevel
}

// FlashMsg asks the application to show a flash popup
type FlashMsg struct {
	Flash
}

// NewFlash creates a flash popup
func NewFlash(title, message string, level FlashLevel) *Flash {
	return &Flash{Title: title, Message: message, Level: level}
}

func (f *Flash) color(th theme.Theme) lipgloss.Color {
	switch f.Level {
	case FlashSuccess:
		return th.Success
	case FlashError:
		return th.Error
	default:
		return th.Info
	}
}

// View renders the popup no wider or taller than the given bounds
func (f *Flash) View(maxWidth, maxHeight int, th theme.Theme) string {
	innerWidth := max(maxWidth-4, 1)
	innerHeight := max(maxHeight-2, 1)

	var lines []string
	for _, l := range strings.Split(strings.TrimRight(f.Message, "\n"), "\n") {
		lines = append(lines, wrapText(l, innerWidth)...)
	}
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
		lines[innerHeight-1] = truncateWidth(lines[innerHeight-1]+" …", innerWidth)
	}

	width := 0
	for _, l := range lines {
		width = max(width, lipgloss.Width(l))
	}
	width = max(width, lipgloss.Width(f.Title)+4)
	width = min(width, innerWidth)

	color := f.color(th)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(width + 2).
		Render(strings.Join(lines, "\n"))
	if f.Title == "" {
		return box
	}
	return withTitle(box, f.Title, color)
}
