package cursor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
)

// ErrPathMismatch is returned when a path does not fit the documents
var ErrPathMismatch = errors.New("path does not match the shape of the documents")

// Matcher reports whether a string matches a search pattern
type Matcher interface {
	MatchString(s string) bool
}

// ValueCursor is a structural position inside a document sequence: one
// display line's worth of structure, ignoring string wrapping.
//
// ValueCursor is a value type. Copies are independent: the frame stack is
// never written in place once shared.
type ValueCursor struct {
	docs   []jsonv.Value
	top    int
	frames []Frame
	focus  jsonv.Value
	pos    FocusPosition
}

// NewValueCursor returns a cursor on the first line of docs. ok is false
// when docs is empty.
func NewValueCursor(docs []jsonv.Value) (c ValueCursor, ok bool) {
	if len(docs) == 0 {
		return ValueCursor{}, false
	}
	focus := docs[0]
	return ValueCursor{docs: docs, focus: focus, pos: Starting(focus)}, true
}

// NewValueCursorEnd returns a cursor on the last line of docs
func NewValueCursorEnd(docs []jsonv.Value) (c ValueCursor, ok bool) {
	if len(docs) == 0 {
		return ValueCursor{}, false
	}
	top := len(docs) - 1
	focus := docs[top]
	return ValueCursor{docs: docs, top: top, focus: focus, pos: Ending(focus)}, true
}

// FromPath rebuilds the cursor addressed by path. Arrays are indexed
// directly and objects by pair position.
func FromPath(docs []jsonv.Value, path Path) (ValueCursor, error) {
	if path.Top < 0 || path.Top >= len(docs) {
		return ValueCursor{}, fmt.Errorf("document %d of %d: %w", path.Top, len(docs), ErrPathMismatch)
	}
	focus := docs[path.Top]
	frames := make([]Frame, 0, len(path.Frames))
	for depth, index := range path.Frames {
		if !focus.IsContainer() || index < 0 || index >= focus.Len() {
			return ValueCursor{}, fmt.Errorf("frame %d index %d: %w", depth, index, ErrPathMismatch)
		}
		f := Frame{Container: focus, Index: index}
		frames = append(frames, f)
		focus = f.Child()
	}
	if focus.IsContainer() == (path.Position == Value) {
		return ValueCursor{}, fmt.Errorf("%s focus on %s: %w", path.Position, focus.Kind(), ErrPathMismatch)
	}
	return ValueCursor{
		docs:   docs,
		top:    path.Top,
		frames: frames[:len(frames):len(frames)],
		focus:  focus,
		pos:    path.Position,
	}, nil
}

// Docs returns the document sequence the cursor walks
func (c ValueCursor) Docs() []jsonv.Value { return c.docs }

// TopIndex returns the index of the focused document
func (c ValueCursor) TopIndex() int { return c.top }

// Depth returns the number of open ancestor frames
func (c ValueCursor) Depth() int { return len(c.frames) }

// Focus returns the focused value
func (c ValueCursor) Focus() jsonv.Value { return c.focus }

// Position returns the focus position
func (c ValueCursor) Position() FocusPosition { return c.pos }

// Valid reports whether the cursor points into a document sequence
func (c ValueCursor) Valid() bool { return c.docs != nil }

// ToPath projects the cursor onto a Path
func (c ValueCursor) ToPath() Path {
	frames := make([]int, len(c.frames))
	for i, f := range c.frames {
		frames[i] = f.Index
	}
	return Path{Top: c.top, Frames: frames, Position: c.pos}
}

// FoldKey returns the key folding the focused container
func (c ValueCursor) FoldKey() FoldKey {
	frames := make([]int, len(c.frames))
	for i, f := range c.frames {
		frames[i] = f.Index
	}
	return NewFoldKey(c.top, frames)
}

// Equal reports whether both cursors are at the same position
func (c ValueCursor) Equal(o ValueCursor) bool {
	if c.top != o.top || c.pos != o.pos || len(c.frames) != len(o.frames) {
		return false
	}
	for i := range c.frames {
		if c.frames[i].Index != o.frames[i].Index {
			return false
		}
	}
	return true
}

// SnapToStart moves a cursor on a container's closing line to its opening
// line. Leaves are left alone.
func (c *ValueCursor) SnapToStart() {
	if c.pos == End {
		c.pos = Start
	}
}

func (c ValueCursor) folded(folds FoldSet) bool {
	return len(folds) > 0 && c.focus.IsContainer() && folds.Contains(c.FoldKey())
}

func (c *ValueCursor) push(f Frame) {
	n := len(c.frames)
	frames := make([]Frame, n+1)
	copy(frames, c.frames)
	frames[n] = f
	c.frames = frames
}

func (c *ValueCursor) pop() (Frame, bool) {
	n := len(c.frames)
	if n == 0 {
		return Frame{}, false
	}
	f := c.frames[n-1]
	c.frames = c.frames[: n-1 : n-1]
	return f, true
}

// Advance moves to the next display line, skipping the contents of folded
// containers. It returns false, leaving the cursor unchanged, at the end of
// the last document.
func (c *ValueCursor) Advance(folds FoldSet) bool {
	if c.pos == Start && !c.folded(folds) {
		// descend into the container
		if c.focus.Len() == 0 {
			c.pos = End
			return true
		}
		f := Frame{Container: c.focus, Index: 0}
		c.push(f)
		c.focus = f.Child()
		c.pos = Starting(c.focus)
		return true
	}

	f, ok := c.pop()
	if !ok {
		if c.top+1 >= len(c.docs) {
			return false
		}
		c.top++
		c.focus = c.docs[c.top]
		c.pos = Starting(c.focus)
		return true
	}
	if f.IsLast() {
		c.focus = f.Container
		c.pos = End
		return true
	}
	next := Frame{Container: f.Container, Index: f.Index + 1}
	c.push(next)
	c.focus = next.Child()
	c.pos = Starting(c.focus)
	return true
}

// Regress moves to the previous display line. Landing on a folded container
// always leaves the cursor on its Start line.
func (c *ValueCursor) Regress(folds FoldSet) bool {
	if c.pos == End {
		if c.focus.Len() == 0 {
			c.pos = Start
		} else {
			f := Frame{Container: c.focus, Index: c.focus.Len() - 1}
			c.push(f)
			c.focus = f.Child()
			c.pos = Ending(c.focus)
		}
	} else {
		f, ok := c.pop()
		switch {
		case !ok:
			if c.top == 0 {
				return false
			}
			c.top--
			c.focus = c.docs[c.top]
			c.pos = Ending(c.focus)
		case f.Index == 0:
			c.focus = f.Container
			c.pos = Start
		default:
			prev := Frame{Container: f.Container, Index: f.Index - 1}
			c.push(prev)
			c.focus = prev.Child()
			c.pos = Ending(c.focus)
		}
	}
	if c.pos == End && c.folded(folds) {
		c.pos = Start
	}
	return true
}

// CurrentKey returns the object key shown on the current line. Closing
// bracket lines never show a key.
func (c ValueCursor) CurrentKey() (string, bool) {
	if c.pos == End || len(c.frames) == 0 {
		return "", false
	}
	return c.frames[len(c.frames)-1].Key()
}

// CurrentIndent returns the indentation of the current line at width
func (c ValueCursor) CurrentIndent(width int) int {
	width = normalizeWidth(width)
	return min(len(c.frames)*2, width-7)
}

// trailingComma is true when the parent has children after this one
func (c ValueCursor) trailingComma() bool {
	if len(c.frames) == 0 {
		return false
	}
	return !c.frames[len(c.frames)-1].IsLast()
}

// CurrentLine describes the current display line before wrapping. It panics
// on an illegal focus, position and fold combination.
func (c ValueCursor) CurrentLine(folds FoldSet, width int) Line {
	folded := c.folded(folds)
	line := Line{Value: c.focus, Indent: c.CurrentIndent(width)}
	line.Key, line.HasKey = c.CurrentKey()

	switch kind := c.focus.Kind(); {
	case kind == jsonv.KindObject && c.pos == Start && !folded:
		line.Kind = LineObjectStart
	case kind == jsonv.KindObject && c.pos == End && !folded:
		line.Kind = LineObjectEnd
	case kind == jsonv.KindObject && c.pos == Start && folded:
		line.Kind = LineFoldedObject
	case kind == jsonv.KindArray && c.pos == Start && !folded:
		line.Kind = LineArrayStart
	case kind == jsonv.KindArray && c.pos == End && !folded:
		line.Kind = LineArrayEnd
	case kind == jsonv.KindArray && c.pos == Start && folded:
		line.Kind = LineFoldedArray
	case kind == jsonv.KindNull && c.pos == Value:
		line.Kind = LineNull
	case kind == jsonv.KindBool && c.pos == Value:
		line.Kind = LineBool
	case kind == jsonv.KindNumber && c.pos == Value:
		line.Kind = LineNumber
	case kind == jsonv.KindString && c.pos == Value:
		line.Kind = LineString
	default:
		panic(fmt.Sprintf("cursor: illegal focus %s at %s (folded=%t)", kind, c.pos, folded))
	}

	// an unfolded opening bracket never ends an element
	line.Comma = c.trailingComma() && line.Kind != LineArrayStart && line.Kind != LineObjectStart
	return line
}

// RegexMatches reports whether the current leaf, or the key shown on the
// current line, matches m
func (c ValueCursor) RegexMatches(m Matcher) bool {
	if s, ok := c.focus.Scalar(); ok && m.MatchString(s) {
		return true
	}
	if key, ok := c.CurrentKey(); ok && m.MatchString(key) {
		return true
	}
	return false
}

// Search returns the next position after c that matches m, wrapping around
// to the first document. Folds are ignored. ok is false when nothing other
// than possibly c itself matches.
func (c ValueCursor) Search(m Matcher) (ValueCursor, bool) {
	start := c.ToPath()
	cur := c
	for cur.Advance(nil) {
		if cur.RegexMatches(m) {
			return cur, true
		}
	}
	cur, _ = NewValueCursor(c.docs)
	for !cur.ToPath().Equal(start) {
		if cur.RegexMatches(m) {
			return cur, true
		}
		if !cur.Advance(nil) {
			break
		}
	}
	return ValueCursor{}, false
}

// SearchBack is Search in reverse, wrapping around to the last document
func (c ValueCursor) SearchBack(m Matcher) (ValueCursor, bool) {
	start := c.ToPath()
	cur := c
	for cur.Regress(nil) {
		if cur.RegexMatches(m) {
			return cur, true
		}
	}
	cur, _ = NewValueCursorEnd(c.docs)
	for !cur.ToPath().Equal(start) {
		if cur.RegexMatches(m) {
			return cur, true
		}
		if !cur.Regress(nil) {
			break
		}
	}
	return ValueCursor{}, false
}

// DescendsFromOrMatches reports whether c is on, or inside, the value o is
// focused on
func (c ValueCursor) DescendsFromOrMatches(o ValueCursor) bool {
	if c.top != o.top || len(c.frames) < len(o.frames) {
		return false
	}
	for i := range o.frames {
		if !c.frames[i].Equal(o.frames[i]) {
			return false
		}
	}
	return true
}

// JSONPath renders the position as a jq path such as .users[0].name
func (c ValueCursor) JSONPath() string {
	if len(c.frames) == 0 {
		return "."
	}
	var sb strings.Builder
	for _, f := range c.frames {
		if key, ok := f.Key(); ok {
			if isIdentifier(key) {
				sb.WriteByte('.')
				sb.WriteString(key)
			} else {
				sb.WriteByte('.')
				sb.WriteString(jsonv.String(key).String())
			}
			continue
		}
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(f.Index))
		sb.WriteByte(']')
	}
	s := sb.String()
	if !strings.HasPrefix(s, ".") {
		s = "." + s
	}
	return s
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
