package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazyjson/internal/cursor"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// JSONPane renders the content of one pane: the visible lines of a
// document sequence, an empty result, or query diagnostics
type JSONPane struct {
	Width  int
	Height int
	Theme  theme.Theme
}

// NewJSONPane creates a pane renderer
func NewJSONPane(th theme.Theme) *JSONPane {
	return &JSONPane{Width: 40, Height: 10, Theme: th}
}

// View renders view. The selection is highlighted only when focused.
func (p *JSONPane) View(view models.View, focused bool) string {
	var lines []string
	switch view.Kind {
	case models.ViewJSON:
		for _, l := range view.Pane.Render(focused) {
			lines = append(lines, p.renderLine(l))
		}
	case models.ViewAbsent:
		lines = append(lines, lipgloss.NewStyle().
			Foreground(p.Theme.JSONSummary).
			Italic(true).
			Render(fit("(no results)", p.Width)))
	case models.ViewError:
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(p.Theme.Error)
		for _, d := range view.Diagnostics {
			for _, l := range strings.Split(d, "\n") {
				if len(lines) == p.Height {
					break
				}
				lines = append(lines, style.Render(fit(l, p.Width)))
			}
		}
	}

	blank := strings.Repeat(" ", max(p.Width, 0))
	for len(lines) < p.Height {
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}

// renderLine colors one display line and pads it to the pane width
func (p *JSONPane) renderLine(l cursor.DisplayLine) string {
	base := lipgloss.NewStyle()
	if l.Selected {
		base = base.Background(p.Theme.Selection).Bold(true)
	}
	color := func(c lipgloss.Color) lipgloss.Style { return base.Foreground(c) }

	var b strings.Builder
	used := 0
	write := func(s string, style lipgloss.Style) {
		if s == "" || used >= p.Width {
			return
		}
		if w := cursor.TextWidth(s); used+w > p.Width {
			s = cursor.TruncateText(s, p.Width-used, "")
		}
		used += cursor.TextWidth(s)
		b.WriteString(style.Render(s))
	}

	write(strings.Repeat(" ", l.Indent), base)
	if l.HasKey {
		write(`"`+cursor.Escape(l.Key)+`"`, color(p.Theme.JSONKey))
		write(" : ", color(p.Theme.Foreground))
	}
	write(l.Body, color(p.valueColor(l.Kind)))
	if l.Comma {
		write(",", color(p.Theme.Foreground))
	}
	write(l.Summary, color(p.Theme.JSONSummary).Italic(true))
	if used < p.Width {
		b.WriteString(base.Render(strings.Repeat(" ", p.Width-used)))
	}
	return b.String()
}

func (p *JSONPane) valueColor(k cursor.LineKind) lipgloss.Color {
	switch k {
	case cursor.LineNull:
		return p.Theme.JSONNull
	case cursor.LineBool:
		return p.Theme.JSONBoolean
	case cursor.LineNumber:
		return p.Theme.JSONNumber
	case cursor.LineString:
		return p.Theme.JSONString
	default:
		return p.Theme.JSONBracket
	}
}
