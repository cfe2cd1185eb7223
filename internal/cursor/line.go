package cursor

import (
	"strconv"
	"strings"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
)

// LineKind is what a display line shows
type LineKind uint8

const (
	LineNull LineKind = iota
	LineBool
	LineNumber
	LineString
	LineArrayStart
	LineArrayEnd
	LineFoldedArray
	LineObjectStart
	LineObjectEnd
	LineFoldedObject
)

// IsFolded reports whether the line is a collapsed container summary
func (k LineKind) IsFolded() bool {
	return k == LineFoldedArray || k == LineFoldedObject
}

// IsBracket reports whether the line is an opening or closing bracket
func (k LineKind) IsBracket() bool {
	switch k {
	case LineArrayStart, LineArrayEnd, LineObjectStart, LineObjectEnd:
		return true
	}
	return false
}

// Line is one structural line before string wrapping
type Line struct {
	Kind   LineKind
	Value  jsonv.Value
	Key    string
	HasKey bool
	Indent int
	Comma  bool
}

// Children returns the child count shown on folded lines
func (l Line) Children() int {
	return l.Value.Len()
}

// Body returns the text of the value part of the line
func (l Line) Body() string {
	switch l.Kind {
	case LineNull:
		return "null"
	case LineBool:
		if l.Value.Bool() {
			return "true"
		}
		return "false"
	case LineNumber:
		return l.Value.Text()
	case LineString:
		return `"` + Escape(l.Value.Text()) + `"`
	case LineArrayStart:
		return "["
	case LineArrayEnd:
		return "]"
	case LineFoldedArray:
		return "[...]"
	case LineObjectStart:
		return "{"
	case LineObjectEnd:
		return "}"
	case LineFoldedObject:
		return "{...}"
	}
	return ""
}

// Summary returns the dimmed child count of folded lines
func (l Line) Summary() string {
	if !l.Kind.IsFolded() {
		return ""
	}
	return " (" + strconv.Itoa(l.Children()) + " children)"
}

// leadWidth is the width before the value: indent plus `"key" : `
func (l Line) leadWidth() int {
	w := l.Indent
	if l.HasKey {
		w += StringWidth(l.Key) + 5
	}
	return w
}

// String renders the whole line without wrapping
func (l Line) String() string {
	return DisplayLine{
		Indent:  l.Indent,
		Key:     l.Key,
		HasKey:  l.HasKey,
		Kind:    l.Kind,
		Body:    l.Body(),
		Comma:   l.Comma,
		Summary: l.Summary(),
	}.String()
}

// DisplayLine is one rendered row of a pane
type DisplayLine struct {
	Kind LineKind
	// Chunk is the wrapped sub-line of a string, 0 otherwise
	Chunk  int
	Indent int
	Key    string
	HasKey bool
	// Body holds the escaped value text of this row
	Body     string
	Comma    bool
	Summary  string
	Selected bool
	Path     Path
}

// String renders the row as plain text
func (d DisplayLine) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", d.Indent))
	if d.HasKey {
		sb.WriteByte('"')
		sb.WriteString(Escape(d.Key))
		sb.WriteString(`" : `)
	}
	sb.WriteString(d.Body)
	if d.Comma {
		sb.WriteByte(',')
	}
	sb.WriteString(d.Summary)
	return sb.String()
}

// Rect is a viewport rectangle in terminal cells
type Rect struct {
	X, Y          int
	Width, Height int
}
