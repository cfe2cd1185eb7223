package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

func TestPreviewPane_SetValue(t *testing.T) {
	docs, err := jsonv.DecodeBytes([]byte(`{"name":"lazy","tags":["a","b"]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	p := NewPreviewPane(theme.DefaultTheme())
	if p.Visible {
		t.Error("Expected preview to start hidden")
	}
	if err := p.SetValue(docs[0], ".users[0]"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if !p.Visible {
		t.Error("Expected preview to be visible after SetValue")
	}

	want := []string{`{`, `  "name": "lazy",`, `  "tags": [`, `    "a",`, `    "b"`, `  ]`, `}`}
	got := p.Lines()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("Expected pretty lines %q, got %q", want, got)
	}

	view := ansi.Strip(p.View())
	if !strings.Contains(view, "Preview: .users[0]") {
		t.Errorf("Expected title in view, got %q", view)
	}
	if !strings.Contains(view, `"name": "lazy",`) {
		t.Errorf("Expected highlighted content to keep its text, got %q", view)
	}

	p.Hide()
	if p.View() != "" {
		t.Error("Expected hidden preview to render nothing")
	}
}

func TestPreviewPane_Scroll(t *testing.T) {
	docs, err := jsonv.DecodeBytes([]byte(`[1,2,3,4,5,6,7,8,9,10,11,12]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	p := NewPreviewPane(theme.DefaultTheme())
	p.MaxHeight = 8
	if err := p.SetValue(docs[0], "."); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if !p.IsScrollable() {
		t.Fatal("Expected 14 lines to scroll in a height of 8")
	}

	for range 100 {
		p.ScrollDown()
	}
	if want := len(p.Lines()) - p.bodyHeight(); p.scrollY != want {
		t.Errorf("Expected scroll to stop at %d, got %d", want, p.scrollY)
	}
	for range 100 {
		p.ScrollUp()
	}
	if p.scrollY != 0 {
		t.Errorf("Expected scroll back at 0, got %d", p.scrollY)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("abcdefgh\nxy", 3)
	want := []string{"abc", "def", "gh", "xy"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %q, got %q", want, got)
	}

	got = wrapText("日本語", 4)
	if len(got) != 2 || got[0] != "日本" || got[1] != "語" {
		t.Errorf("Expected wide runes wrapped by width, got %q", got)
	}
}
