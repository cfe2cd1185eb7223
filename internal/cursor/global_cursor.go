package cursor

import (
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
)

// GlobalCursor addresses a single display line: a structural position plus,
// when the focus is a string, the wrapped sub-line within it
type GlobalCursor struct {
	Value   ValueCursor
	line    LineCursor
	wrapped bool
}

// NewGlobalCursor returns a cursor on the first display line of docs
func NewGlobalCursor(docs []jsonv.Value, width int) (GlobalCursor, bool) {
	v, ok := NewValueCursor(docs)
	if !ok {
		return GlobalCursor{}, false
	}
	return GlobalFromValue(v, width, false), true
}

// NewGlobalCursorEnd returns a cursor on the last display line of docs
func NewGlobalCursorEnd(docs []jsonv.Value, width int) (GlobalCursor, bool) {
	v, ok := NewValueCursorEnd(docs)
	if !ok {
		return GlobalCursor{}, false
	}
	return GlobalFromValue(v, width, true), true
}

// GlobalFromValue wraps v, focusing the first sub-line of a string, or the
// last one when atEnd is set
func GlobalFromValue(v ValueCursor, width int, atEnd bool) GlobalCursor {
	g := GlobalCursor{Value: v}
	g.rewrap(width, atEnd)
	return g
}

// stringLayout returns the columns before and after the quotes of a string leaf
func (c ValueCursor) stringLayout(width int) (lead, trail int) {
	lead = c.CurrentIndent(width)
	if key, ok := c.CurrentKey(); ok {
		lead += StringWidth(key) + 5
	}
	if c.trailingComma() {
		trail = 1
	}
	return lead, trail
}

func (g *GlobalCursor) rewrap(width int, atEnd bool) {
	if g.Value.focus.Kind() != jsonv.KindString {
		g.line, g.wrapped = LineCursor{}, false
		return
	}
	lead, trail := g.Value.stringLayout(width)
	if atEnd {
		g.line = NewLineCursorAtEnd(g.Value.focus.Text(), width, lead, trail)
	} else {
		g.line = NewLineCursor(g.Value.focus.Text(), width, lead, trail)
	}
	g.wrapped = true
}

// Advance moves one display line down. Sub-lines of a wrapped string are
// stepped first.
func (g *GlobalCursor) Advance(folds FoldSet, width int) bool {
	if g.wrapped && g.line.MoveNext() {
		return true
	}
	if !g.Value.Advance(folds) {
		return false
	}
	g.rewrap(width, false)
	return true
}

// Regress moves one display line up
func (g *GlobalCursor) Regress(folds FoldSet, width int) bool {
	if g.wrapped && g.line.MovePrev() {
		return true
	}
	if !g.Value.Regress(folds) {
		return false
	}
	g.rewrap(width, true)
	return true
}

// SubLine returns the focused sub-line index, 0 for unwrapped lines
func (g GlobalCursor) SubLine() int {
	if !g.wrapped {
		return 0
	}
	return g.line.Current()
}

// AtLineStart reports whether the first sub-line of the value is focused
func (g GlobalCursor) AtLineStart() bool {
	return !g.wrapped || g.line.AtStart()
}

// AtLineEnd reports whether the last sub-line of the value is focused
func (g GlobalCursor) AtLineEnd() bool {
	return !g.wrapped || g.line.AtEnd()
}

// ToPath projects the cursor onto a GlobalPath
func (g GlobalCursor) ToPath() GlobalPath {
	return GlobalPath{Path: g.Value.ToPath(), Line: g.SubLine()}
}

// ResizeTo re-wraps the current string for the width of rect
func (g *GlobalCursor) ResizeTo(rect Rect) {
	if !g.wrapped {
		return
	}
	lead, _ := g.Value.stringLayout(rect.Width)
	g.line.SetWidth(rect.Width, lead)
}

// CurrentLine renders the focused display line
func (g GlobalCursor) CurrentLine(folds FoldSet, width int) DisplayLine {
	line := g.Value.CurrentLine(folds, width)
	d := DisplayLine{
		Kind:   line.Kind,
		Indent: line.Indent,
		Key:    line.Key,
		HasKey: line.HasKey,
		Body:   line.Body(),
		Comma:  line.Comma,
	}
	d.Summary = line.Summary()
	if !g.wrapped {
		return d
	}

	d.Chunk = g.line.Current()
	body := Escape(g.line.Chunk())
	if g.line.AtStart() {
		body = `"` + body
	} else {
		d.Indent, d.Key, d.HasKey = 0, "", false
	}
	if g.line.AtEnd() {
		body += `"`
	} else {
		d.Comma = false
	}
	d.Body = body
	return d
}

// RenderLines renders up to rect.Height lines starting here. Lines whose
// structural path equals selected are flagged; selected may be nil.
func (g GlobalCursor) RenderLines(selected *Path, folds FoldSet, rect Rect) []DisplayLine {
	if rect.Height <= 0 {
		return nil
	}
	g.ResizeTo(rect)
	lines := make([]DisplayLine, 0, rect.Height)
	for {
		d := g.CurrentLine(folds, rect.Width)
		d.Path = g.Value.ToPath()
		d.Selected = selected != nil && d.Path.Equal(*selected)
		lines = append(lines, d)
		if len(lines) >= rect.Height || !g.Advance(folds, rect.Width) {
			return lines
		}
	}
}
