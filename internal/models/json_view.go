package models

import (
	"context"

	"github.com/rebeliceyang/lazyjson/internal/cursor"
	"github.com/rebeliceyang/lazyjson/internal/filter"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
)

// JsonView is a viewport onto a document sequence. Cursor is the selection
// and Scroll addresses the first visible line; the selection is kept inside
// the lines covered by Scroll and the rectangle height.
type JsonView struct {
	Docs   []jsonv.Value
	Cursor cursor.GlobalCursor
	Scroll cursor.GlobalCursor
	Folds  cursor.FoldSet
	Rect   cursor.Rect
}

// NewJsonView creates a pane with the selection and scroll on the first
// line. It returns false when docs is empty.
func NewJsonView(docs []jsonv.Value, rect cursor.Rect) (*JsonView, bool) {
	sel, ok := cursor.NewGlobalCursor(docs, rect.Width)
	if !ok {
		return nil, false
	}
	return &JsonView{
		Docs:   docs,
		Cursor: sel,
		Scroll: sel,
		Folds:  cursor.NewFoldSet(),
		Rect:   rect,
	}, true
}

// VisibleRange is the inclusive range of display lines on screen
type VisibleRange struct {
	First cursor.GlobalPath
	Last  cursor.GlobalPath
	// FirstAtStart is set when the first line is the first sub-line of its value
	FirstAtStart bool
	// LastAtStart and LastAtEnd tell whether the last line is the first or
	// final sub-line of its value
	LastAtStart bool
	LastAtEnd   bool
}

// ContainsValue reports whether any line of the value at p is visible
func (r VisibleRange) ContainsValue(p cursor.Path) bool {
	return r.First.Path.Compare(p) <= 0 && p.Compare(r.Last.Path) <= 0
}

func (v *JsonView) height() int {
	return max(v.Rect.Height, 1)
}

func (v *JsonView) lastVisible() cursor.GlobalCursor {
	c := v.Scroll
	for i := 0; i < v.height()-1; i++ {
		if !c.Advance(v.Folds, v.Rect.Width) {
			break
		}
	}
	return c
}

// VisibleRange walks from the scroll cursor to the last line that fits
func (v *JsonView) VisibleRange() VisibleRange {
	last := v.lastVisible()
	return VisibleRange{
		First:        v.Scroll.ToPath(),
		Last:         last.ToPath(),
		FirstAtStart: v.Scroll.AtLineStart(),
		LastAtStart:  last.AtLineStart(),
		LastAtEnd:    last.AtLineEnd(),
	}
}

// Selection returns the structural path of the selected value
func (v *JsonView) Selection() cursor.Path {
	return v.Cursor.Value.ToPath()
}

func (v *JsonView) selectValue(c cursor.ValueCursor) {
	v.Cursor = cursor.GlobalFromValue(c, v.Rect.Width, false)
}

// AdvanceCursor moves the selection down one value. When the selection is
// on the last visible line and continues below the screen, the pane scrolls
// one line instead.
func (v *JsonView) AdvanceCursor() bool {
	r := v.VisibleRange()
	sel := v.Selection()
	if sel.Equal(r.Last.Path) && !r.LastAtEnd {
		return v.ScrollDown()
	}
	next := v.Cursor.Value
	if !next.Advance(v.Folds) {
		return false
	}
	v.selectValue(next)
	if !v.VisibleRange().ContainsValue(v.Selection()) {
		v.Scroll.Advance(v.Folds, v.Rect.Width)
	}
	return true
}

// RegressCursor moves the selection up one value, scrolling first when the
// top of the selected value is above the screen
func (v *JsonView) RegressCursor() bool {
	r := v.VisibleRange()
	sel := v.Selection()
	if sel.Equal(r.First.Path) && !r.FirstAtStart {
		return v.ScrollUp()
	}
	prev := v.Cursor.Value
	if !prev.Regress(v.Folds) {
		return false
	}
	v.selectValue(prev)
	if !v.VisibleRange().ContainsValue(v.Selection()) {
		v.Scroll.Regress(v.Folds, v.Rect.Width)
	}
	return true
}

// PageDown advances scroll and selection by a screen each. Both stop at the
// last line independently, so on short documents they may drift apart.
func (v *JsonView) PageDown() {
	for i := 0; i < v.height()-1; i++ {
		if !v.Scroll.Advance(v.Folds, v.Rect.Width) {
			break
		}
	}
	sel := v.Cursor.Value
	for i := 0; i < v.height()-1; i++ {
		if !sel.Advance(v.Folds) {
			break
		}
	}
	v.selectValue(sel)
}

// PageUp is the reverse of PageDown
func (v *JsonView) PageUp() {
	for i := 0; i < v.height()-1; i++ {
		if !v.Scroll.Regress(v.Folds, v.Rect.Width) {
			break
		}
	}
	sel := v.Cursor.Value
	for i := 0; i < v.height()-1; i++ {
		if !sel.Regress(v.Folds) {
			break
		}
	}
	v.selectValue(sel)
}

// ScrollDown moves the viewport one line down. A selection scrolled off the
// top follows to the first visible value.
func (v *JsonView) ScrollDown() bool {
	if !v.Scroll.Advance(v.Folds, v.Rect.Width) {
		return false
	}
	if v.Selection().Compare(v.Scroll.ToPath().Path) < 0 {
		v.selectValue(v.Scroll.Value)
	}
	return true
}

// ScrollUp moves the viewport one line up. A selection scrolled off the
// bottom follows to the last visible value.
func (v *JsonView) ScrollUp() bool {
	if !v.Scroll.Regress(v.Folds, v.Rect.Width) {
		return false
	}
	last := v.lastVisible()
	if v.Selection().Compare(last.Value.ToPath()) > 0 {
		v.selectValue(last.Value)
	}
	return true
}

// ResizeTo re-wraps the pane for rect and scrolls, without moving the
// selection, until the selection is visible again
func (v *JsonView) ResizeTo(rect cursor.Rect) {
	v.Rect = rect
	v.Scroll.ResizeTo(rect)
	v.Cursor.ResizeTo(rect)
	v.reveal()
}

func (v *JsonView) reveal() {
	for {
		r := v.VisibleRange()
		sel := v.Selection()
		if r.ContainsValue(sel) {
			return
		}
		var moved bool
		if sel.Compare(r.First.Path) < 0 {
			moved = v.Scroll.Regress(v.Folds, v.Rect.Width)
		} else {
			moved = v.Scroll.Advance(v.Folds, v.Rect.Width)
		}
		if !moved {
			return
		}
	}
}

// ToggleFold folds or unfolds the selected container. Folding moves a
// selection on the closing line to the opening line and pulls the scroll
// cursor out of the folded subtree. It returns false on a leaf.
func (v *JsonView) ToggleFold() bool {
	sel := v.Cursor.Value
	if !sel.Focus().IsContainer() {
		return false
	}
	if !v.Folds.Toggle(sel.FoldKey()) {
		return true
	}
	sel.SnapToStart()
	v.selectValue(sel)
	if v.Scroll.Value.DescendsFromOrMatches(sel) {
		v.Scroll = cursor.GlobalFromValue(sel, v.Rect.Width, false)
	}
	return true
}

// UnfoldAroundCursor removes every fold enclosing the selection
func (v *JsonView) UnfoldAroundCursor() {
	p := v.Selection()
	v.Folds.RemoveAncestors(p.Top, p.Frames)
}

// Search moves the selection to the next value matching m, wrapping around
// the document sequence, and makes it visible. It returns false when
// nothing else matches.
func (v *JsonView) Search(m cursor.Matcher, reverse bool) bool {
	var (
		hit cursor.ValueCursor
		ok  bool
	)
	if reverse {
		hit, ok = v.Cursor.Value.SearchBack(m)
	} else {
		hit, ok = v.Cursor.Value.Search(m)
	}
	if !ok {
		return false
	}
	v.selectValue(hit)
	v.UnfoldAroundCursor()
	if !v.VisibleRange().ContainsValue(v.Selection()) {
		v.Scroll = cursor.GlobalFromValue(hit, v.Rect.Width, false)
	}
	return true
}

// ApplyQuery runs query over the pane's documents. The result is a new
// pane, an absent view for an empty result or an error view; it never fails.
func (v *JsonView) ApplyQuery(ctx context.Context, engine filter.Engine, query string) View {
	return RunQuery(ctx, engine, v.Docs, query, v.Rect)
}

// RunQuery evaluates query over docs and wraps the outcome in a view sized
// for rect
func RunQuery(ctx context.Context, engine filter.Engine, docs []jsonv.Value, query string, rect cursor.Rect) View {
	results, err := filter.Run(ctx, engine, docs, query)
	if err != nil {
		return ErrorView(filter.Diagnostics(err))
	}
	return NewView(results, rect)
}

// Render produces the visible lines. The selection is only marked when the
// pane has focus.
func (v *JsonView) Render(focused bool) []cursor.DisplayLine {
	var sel *cursor.Path
	if focused {
		p := v.Selection()
		sel = &p
	}
	return v.Scroll.RenderLines(sel, v.Folds, v.Rect)
}
