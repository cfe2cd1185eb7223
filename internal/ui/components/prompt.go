package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// PromptKind selects what a submitted prompt does
type PromptKind int

const (
	PromptQuery PromptKind = iota
	PromptSearch
	PromptSave
	PromptOpen
)

// Label is shown in front of the input
func (k PromptKind) Label() string {
	switch k {
	case PromptQuery:
		return "query"
	case PromptSearch:
		return "search"
	case PromptSave:
		return "save to"
	case PromptOpen:
		return "open"
	}
	return "?"
}

// PromptSubmitMsg is sent when the prompt is confirmed with enter
type PromptSubmitMsg struct {
	Kind  PromptKind
	Value string
}

// PromptCancelMsg is sent when the prompt is dismissed with esc
type PromptCancelMsg struct {
	Kind PromptKind
}

// Prompt is the single-line input at the bottom of the screen. It walks
// the history with up/down, completes from the history with ctrl+r and
// cycles saved favorites with ctrl+f.
type Prompt struct {
	Input   textinput.Model
	Kind    PromptKind
	Theme   theme.Theme
	Width   int
	Visible bool

	// Complete returns history entries matching the typed text, best first
	Complete func(text string) []string

	history    []string // Newest first
	historyIdx int      // -1 while editing the draft
	draft      string

	completions   []string
	completionIdx int

	favorites   []string
	favoriteIdx int
}

// NewPrompt creates a hidden prompt
func NewPrompt(th theme.Theme) *Prompt {
	ti := textinput.New()
	ti.CharLimit = 4096
	ti.Width = 40
	ti.Prompt = ""

	return &Prompt{
		Input:      ti,
		Theme:      th,
		historyIdx: -1,
	}
}

// Open shows the prompt for kind with value prefilled. history is ordered
// newest first.
func (p *Prompt) Open(kind PromptKind, value string, history []string) {
	p.Kind = kind
	p.Visible = true
	p.history = history
	p.historyIdx = -1
	p.draft = ""
	p.completions = nil
	p.favorites = nil
	p.favoriteIdx = -1
	p.Input.SetValue(value)
	p.Input.CursorEnd()
	p.Input.Focus()
}

// SetFavorites sets the queries ctrl+f cycles through
func (p *Prompt) SetFavorites(queries []string) {
	p.favorites = queries
	p.favoriteIdx = -1
}

// Close hides the prompt
func (p *Prompt) Close() {
	p.Visible = false
	p.Input.Blur()
}

// Value returns the typed text
func (p *Prompt) Value() string {
	return p.Input.Value()
}

func (p *Prompt) setValue(s string) {
	p.Input.SetValue(s)
	p.Input.CursorEnd()
}

// historyUp moves to an older entry, saving the draft on first use
func (p *Prompt) historyUp() {
	if p.historyIdx+1 >= len(p.history) {
		return
	}
	if p.historyIdx == -1 {
		p.draft = p.Input.Value()
	}
	p.historyIdx++
	p.setValue(p.history[p.historyIdx])
}

func (p *Prompt) historyDown() {
	switch {
	case p.historyIdx < 0:
		return
	case p.historyIdx == 0:
		p.historyIdx = -1
		p.setValue(p.draft)
	default:
		p.historyIdx--
		p.setValue(p.history[p.historyIdx])
	}
}

// complete replaces the text with the next history match
func (p *Prompt) complete() {
	if p.Complete == nil {
		return
	}
	if p.completions == nil {
		p.completions = p.Complete(p.Input.Value())
		p.completionIdx = -1
	}
	if len(p.completions) == 0 {
		return
	}
	p.completionIdx = (p.completionIdx + 1) % len(p.completions)
	p.setValue(p.completions[p.completionIdx])
}

func (p *Prompt) nextFavorite() {
	if len(p.favorites) == 0 {
		return
	}
	p.favoriteIdx = (p.favoriteIdx + 1) % len(p.favorites)
	p.setValue(p.favorites[p.favoriteIdx])
}

// Update handles messages
func (p *Prompt) Update(msg tea.Msg) (*Prompt, tea.Cmd) {
	if !p.Visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			value := p.Input.Value()
			kind := p.Kind
			if value == "" {
				return p, nil
			}
			p.Close()
			return p, func() tea.Msg {
				return PromptSubmitMsg{Kind: kind, Value: value}
			}
		case "esc":
			kind := p.Kind
			p.Close()
			return p, func() tea.Msg {
				return PromptCancelMsg{Kind: kind}
			}
		case "up":
			p.historyUp()
			return p, nil
		case "down":
			p.historyDown()
			return p, nil
		case "ctrl+r":
			p.complete()
			return p, nil
		case "ctrl+f":
			p.nextFavorite()
			return p, nil
		}
		p.completions = nil
	}

	var cmd tea.Cmd
	p.Input, cmd = p.Input.Update(msg)
	return p, cmd
}

// View renders the prompt line
func (p *Prompt) View() string {
	label := p.Kind.Label()
	labelStyle := lipgloss.NewStyle().
		Foreground(p.Theme.Prompt).
		Bold(true)
	p.Input.Width = max(p.Width-len(label)-3, 1)
	return labelStyle.Render(label+":") + " " + p.Input.View()
}
