package models

import (
	"errors"
	"fmt"

	"github.com/rebeliceyang/lazyjson/internal/cursor"
)

// ErrIndexInvalidated is returned when an index no longer names a pane pair
var ErrIndexInvalidated = errors.New("pane index invalidated")

// Forest holds one view tree per loaded input
type Forest struct {
	Trees []*ViewTree
}

// ForestIndex names a pane pair within one tree of the forest
type ForestIndex struct {
	Tree int
	Pane PaneIndex
}

// String renders the index for status lines and errors
func (ix ForestIndex) String() string {
	return fmt.Sprintf("tree %d, parent %v, child %d", ix.Tree, ix.Pane.Parent, ix.Pane.Child)
}

// PanePair is the pair of frames shown side by side
type PanePair struct {
	// Node is the subtree whose root is the left pane
	Node   *ViewTree
	Parent *ViewFrame
	Child  *ViewFrame
	Query  string
}

// Push adds a tree and returns the index of its first pane pair
func (f *Forest) Push(t *ViewTree) ForestIndex {
	f.Trees = append(f.Trees, t)
	return ForestIndex{Tree: len(f.Trees) - 1}
}

// Index resolves ix to its pane pair
func (f *Forest) Index(ix ForestIndex) (PanePair, error) {
	if ix.Tree < 0 || ix.Tree >= len(f.Trees) {
		return PanePair{}, fmt.Errorf("%w: %s", ErrIndexInvalidated, ix)
	}
	node, ok := f.Trees[ix.Tree].Subtree(ix.Pane.Parent)
	if !ok || ix.Pane.Child < 0 || ix.Pane.Child >= len(node.Children) {
		return PanePair{}, fmt.Errorf("%w: %s", ErrIndexInvalidated, ix)
	}
	child := node.Children[ix.Pane.Child]
	return PanePair{
		Node:   node,
		Parent: &node.Frame,
		Child:  &child.Tree.Frame,
		Query:  child.Query,
	}, nil
}

// Advance moves ix to the next pane pair, continuing into the next tree
// after the last pair of the current one
func (f *Forest) Advance(ix *ForestIndex) bool {
	if ix.Tree < 0 || ix.Tree >= len(f.Trees) {
		return false
	}
	if ix.Pane.Advance(f.Trees[ix.Tree]) {
		return true
	}
	if ix.Tree+1 >= len(f.Trees) {
		return false
	}
	*ix = ForestIndex{Tree: ix.Tree + 1}
	return true
}

// Regress moves ix to the previous pane pair. Leaving a tree backwards
// lands on the last pair of the previous one.
func (f *Forest) Regress(ix *ForestIndex) bool {
	if ix.Pane.Regress() {
		return true
	}
	if ix.Tree <= 0 || ix.Tree > len(f.Trees) {
		return false
	}
	prev := ix.Tree - 1
	last := PaneIndex{}
	for last.Advance(f.Trees[prev]) {
	}
	*ix = ForestIndex{Tree: prev, Pane: last}
	return true
}

// Rows renders every tree, marking the pair named by active
func (f *Forest) Rows(active ForestIndex) [][]TreeRow {
	out := make([][]TreeRow, len(f.Trees))
	for i, t := range f.Trees {
		if i == active.Tree {
			out[i] = t.Rows(&active.Pane)
		} else {
			out[i] = t.Rows(nil)
		}
	}
	return out
}

// ResizeTo resizes every pane in the forest
func (f *Forest) ResizeTo(rect cursor.Rect) {
	for _, t := range f.Trees {
		t.ResizeTo(rect)
	}
}
