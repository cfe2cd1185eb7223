package components

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// PreviewPane displays the selected value pretty-printed in a popup
type PreviewPane struct {
	Width     int
	MaxHeight int
	Content   string // Pretty-printed value
	Title     string // JSON path of the value

	Visible bool

	scrollY      int
	contentLines []string // Wrapped plain lines

	Theme theme.Theme
	style lipgloss.Style

	lexer     chroma.Lexer
	formatter chroma.Formatter
	chroma    *chroma.Style
}

// NewPreviewPane creates a new preview pane
func NewPreviewPane(th theme.Theme) *PreviewPane {
	p := &PreviewPane{
		Width:     80,
		MaxHeight: 20,
		Theme:     th,
		style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.BorderFocused).
			Padding(0, 1),
	}

	p.chroma = styles.Get(th.ChromaStyle)
	if p.chroma == nil {
		p.chroma = styles.Fallback
	}
	p.formatter = formatters.Get("terminal256")
	if p.formatter == nil {
		p.formatter = formatters.Fallback
	}
	p.lexer = lexers.Get("json")
	if p.lexer == nil {
		p.lexer = lexers.Fallback
	}
	p.lexer = chroma.Coalesce(p.lexer)
	return p
}

// SetValue pretty-prints v as the content and shows the pane
func (p *PreviewPane) SetValue(v jsonv.Value, title string) error {
	var buf bytes.Buffer
	if err := jsonv.EncodeValue(&buf, v, "  "); err != nil {
		return err
	}
	p.Content = strings.TrimRight(buf.String(), "\n")
	p.Title = title
	p.scrollY = 0
	p.contentLines = nil
	p.Visible = true
	return nil
}

// Hide closes the pane
func (p *PreviewPane) Hide() {
	p.Visible = false
	p.contentLines = nil
}

func (p *PreviewPane) contentWidth() int {
	return max(p.Width-p.style.GetHorizontalFrameSize(), 10)
}

// bodyHeight is the number of content lines shown between header and footer
func (p *PreviewPane) bodyHeight() int {
	return max(p.MaxHeight-p.style.GetVerticalFrameSize()-2, 1)
}

// Lines returns the wrapped content lines
func (p *PreviewPane) Lines() []string {
	if p.contentLines == nil {
		p.contentLines = wrapText(p.Content, p.contentWidth())
	}
	return p.contentLines
}

// wrapText wraps text to fit within maxWidth
func wrapText(text string, maxWidth int) []string {
	result := []string{}
	for _, line := range strings.Split(text, "\n") {
		if runewidth.StringWidth(line) <= maxWidth {
			result = append(result, line)
			continue
		}

		var current strings.Builder
		currentWidth := 0
		for _, r := range line {
			rWidth := runewidth.RuneWidth(r)
			if currentWidth+rWidth > maxWidth {
				result = append(result, current.String())
				current.Reset()
				currentWidth = 0
			}
			current.WriteRune(r)
			currentWidth += rWidth
		}
		if current.Len() > 0 {
			result = append(result, current.String())
		}
	}
	return result
}

// IsScrollable returns true if content exceeds visible area
func (p *PreviewPane) IsScrollable() bool {
	return len(p.Lines()) > p.bodyHeight()
}

// ScrollUp scrolls content up
func (p *PreviewPane) ScrollUp() {
	if p.scrollY > 0 {
		p.scrollY--
	}
}

// ScrollDown scrolls content down
func (p *PreviewPane) ScrollDown() {
	maxScroll := max(len(p.Lines())-p.bodyHeight(), 0)
	if p.scrollY < maxScroll {
		p.scrollY++
	}
}

// CopyContent copies the preview content to clipboard
func (p *PreviewPane) CopyContent() error {
	return clipboard.WriteAll(p.Content)
}

// highlight colors one line; the plain line is returned when chroma fails
func (p *PreviewPane) highlight(line string) string {
	iterator, err := p.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := p.formatter.Format(&buf, p.chroma, iterator); err != nil {
		return line
	}
	return strings.TrimRight(buf.String(), "\n")
}

// View renders the preview pane
func (p *PreviewPane) View() string {
	if !p.Visible {
		return ""
	}
	contentWidth := p.contentWidth()
	lines := p.Lines()

	titleStyle := lipgloss.NewStyle().
		Foreground(p.Theme.Info).
		Bold(true)
	header := "Preview"
	if p.Title != "" {
		header = "Preview: " + p.Title
	}
	parts := []string{titleStyle.Render(runewidth.Truncate(header, contentWidth, "..."))}

	end := min(p.scrollY+p.bodyHeight(), len(lines))
	for i := p.scrollY; i < end; i++ {
		parts = append(parts, p.highlight(lines[i]))
	}
	for len(parts) < p.bodyHeight()+1 {
		parts = append(parts, "")
	}

	helpParts := []string{}
	if p.IsScrollable() {
		helpParts = append(helpParts, "↑↓: Scroll")
	}
	helpParts = append(helpParts, "y: Copy", "esc: Close")
	helpText := strings.Join(helpParts, " │ ")
	helpStyle := lipgloss.NewStyle().
		Foreground(p.Theme.JSONSummary).
		Italic(true)
	footerPadding := max(contentWidth-runewidth.StringWidth(helpText), 0)
	parts = append(parts, strings.Repeat(" ", footerPadding)+helpStyle.Render(helpText))

	return p.style.
		Width(p.Width - p.style.GetHorizontalFrameSize()).
		Render(strings.Join(parts, "\n"))
}
