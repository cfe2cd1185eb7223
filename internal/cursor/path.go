package cursor

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is a serializable projection of a ValueCursor position: the document
// index, the child index taken at every level and the focus position.
type Path struct {
	Top      int
	Frames   []int
	Position FocusPosition
}

// Compare orders paths in display order. It returns -1, 0 or 1.
// Comparing paths into differently shaped documents may panic.
func (p Path) Compare(o Path) int {
	if c := cmpInt(p.Top, o.Top); c != 0 {
		return c
	}
	for i := 0; ; i++ {
		switch {
		case i < len(p.Frames) && i < len(o.Frames):
			if c := cmpInt(p.Frames[i], o.Frames[i]); c != 0 {
				return c
			}
		case i >= len(p.Frames) && i < len(o.Frames):
			return shallowerOrder(p.Position)
		case i < len(p.Frames) && i >= len(o.Frames):
			return -shallowerOrder(o.Position)
		default:
			return cmpInt(int(p.Position), int(o.Position))
		}
	}
}

// shallowerOrder orders an ancestor line against a line inside it
func shallowerOrder(pos FocusPosition) int {
	switch pos {
	case Start:
		return -1
	case End:
		return 1
	}
	panic("cursor: cannot compare paths that index different documents")
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Equal reports whether both paths name the same position
func (p Path) Equal(o Path) bool {
	if p.Top != o.Top || p.Position != o.Position || len(p.Frames) != len(o.Frames) {
		return false
	}
	for i := range p.Frames {
		if p.Frames[i] != o.Frames[i] {
			return false
		}
	}
	return true
}

// DescendsFromOrMatches reports whether p lies inside, or on, the value
// addressed by o
func (p Path) DescendsFromOrMatches(o Path) bool {
	if p.Top != o.Top || len(p.Frames) < len(o.Frames) {
		return false
	}
	for i := range o.Frames {
		if p.Frames[i] != o.Frames[i] {
			return false
		}
	}
	return true
}

// FoldKey drops the focus position
func (p Path) FoldKey() FoldKey {
	return NewFoldKey(p.Top, p.Frames)
}

func (p Path) String() string {
	return fmt.Sprintf("%s@%s", p.FoldKey(), p.Position)
}

// GlobalPath addresses a single display line: a structural path plus the
// wrapped sub-line within it
type GlobalPath struct {
	Path Path
	Line int
}

// Compare orders global paths in display order
func (g GlobalPath) Compare(o GlobalPath) int {
	if c := g.Path.Compare(o.Path); c != 0 {
		return c
	}
	return cmpInt(g.Line, o.Line)
}

// FoldKey identifies a container independently of its focus position. It is
// comparable so it can key a map.
type FoldKey struct {
	Top    int
	frames string
}

// NewFoldKey builds the key of the container reached by frames in document top
func NewFoldKey(top int, frames []int) FoldKey {
	var sb strings.Builder
	for i, f := range frames {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(f))
	}
	return FoldKey{Top: top, frames: sb.String()}
}

// Depth returns the number of frames in the key
func (k FoldKey) Depth() int {
	if k.frames == "" {
		return 0
	}
	return strings.Count(k.frames, ".") + 1
}

func (k FoldKey) String() string {
	return fmt.Sprintf("%d[%s]", k.Top, k.frames)
}
