package models

import (
	"github.com/rebeliceyang/lazyjson/internal/cursor"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
)

// ViewKind identifies what a pane displays
type ViewKind int

const (
	// ViewJSON is a populated pane
	ViewJSON ViewKind = iota
	// ViewAbsent is a query result with no documents
	ViewAbsent
	// ViewError holds the diagnostics of a failed query
	ViewError
)

func (k ViewKind) String() string {
	switch k {
	case ViewJSON:
		return "json"
	case ViewAbsent:
		return "absent"
	case ViewError:
		return "error"
	default:
		return "unknown"
	}
}

// View is the content of one pane
type View struct {
	Kind        ViewKind
	Pane        *JsonView
	Diagnostics []string
}

// NewView creates a pane over docs, or an absent view when docs is empty
func NewView(docs []jsonv.Value, rect cursor.Rect) View {
	pane, ok := NewJsonView(docs, rect)
	if !ok {
		return AbsentView()
	}
	return View{Kind: ViewJSON, Pane: pane}
}

// AbsentView returns a view with no documents
func AbsentView() View {
	return View{Kind: ViewAbsent}
}

// ErrorView returns a view carrying query diagnostics
func ErrorView(diagnostics []string) View {
	return View{Kind: ViewError, Diagnostics: diagnostics}
}

// Docs returns the documents shown by the view, nil unless it is a pane
func (v View) Docs() []jsonv.Value {
	if v.Kind != ViewJSON || v.Pane == nil {
		return nil
	}
	return v.Pane.Docs
}

// ResizeTo resizes the pane, if any
func (v View) ResizeTo(rect cursor.Rect) {
	if v.Kind == ViewJSON && v.Pane != nil {
		v.Pane.ResizeTo(rect)
	}
}
