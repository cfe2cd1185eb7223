package models

import (
	"slices"

	"github.com/rebeliceyang/lazyjson/internal/cursor"
)

// ViewFrame is a view with the name shown in the tree column
type ViewFrame struct {
	View View
	Name string
}

// Child is an edge of the view tree, labelled by the query that derived
// the child's view from its parent's documents
type Child struct {
	Query string
	Tree  *ViewTree
}

// ViewTree is a pane and the panes derived from it. Nodes are never
// changed once built, only extended with new children.
type ViewTree struct {
	Frame    ViewFrame
	Children []Child
}

// NewViewTree creates a tree for a loaded document sequence, with one child
// running initialQuery so that a pane pair exists from the start
func NewViewTree(name string, view View, initialQuery string) *ViewTree {
	t := &ViewTree{Frame: ViewFrame{View: view, Name: name}}
	t.PushTrivialChild(initialQuery)
	return t
}

// PushTrivialChild appends a child showing the node's own documents under
// query, which is expected to be the engine's identity
func (t *ViewTree) PushTrivialChild(query string) {
	view := t.Frame.View
	if view.Kind == ViewJSON {
		view = NewView(view.Docs(), view.Pane.Rect)
	}
	t.AppendChild(query, view)
}

// AppendChild adds a derived view labelled by query and returns its index
func (t *ViewTree) AppendChild(query string, view View) int {
	child := &ViewTree{Frame: ViewFrame{View: view, Name: query}}
	t.Children = append(t.Children, Child{Query: query, Tree: child})
	return len(t.Children) - 1
}

// Subtree follows path, a list of child indices, from t
func (t *ViewTree) Subtree(path []int) (*ViewTree, bool) {
	focus := t
	for _, i := range path {
		if i < 0 || i >= len(focus.Children) {
			return nil, false
		}
		focus = focus.Children[i].Tree
	}
	return focus, true
}

// Size counts the nodes of the tree
func (t *ViewTree) Size() int {
	n := 1
	for _, c := range t.Children {
		n += c.Tree.Size()
	}
	return n
}

// Walk calls fn for every view in pre-order
func (t *ViewTree) Walk(fn func(*ViewFrame)) {
	fn(&t.Frame)
	for _, c := range t.Children {
		c.Tree.Walk(fn)
	}
}

// ResizeTo resizes every pane of the tree
func (t *ViewTree) ResizeTo(rect cursor.Rect) {
	t.Walk(func(f *ViewFrame) { f.View.ResizeTo(rect) })
}

// PaneIndex names the pair of panes shown side by side: Parent is the path
// of child indices from the root to the left pane, Child is the index of
// the right pane under it
type PaneIndex struct {
	Parent []int
	Child  int
}

// Clone returns an index that shares no memory with p
func (p PaneIndex) Clone() PaneIndex {
	return PaneIndex{Parent: slices.Clone(p.Parent), Child: p.Child}
}

// Equal reports whether both indices name the same pair
func (p PaneIndex) Equal(o PaneIndex) bool {
	return p.Child == o.Child && slices.Equal(p.Parent, o.Parent)
}

// Advance moves to the next pair in pre-order: into the current child if it
// has children, else to the next sibling, else up to the next sibling of an
// ancestor. It returns false, leaving p unchanged, after the last pair.
func (p *PaneIndex) Advance(tree *ViewTree) bool {
	return p.advanceFrom(tree, 0)
}

func (p *PaneIndex) advanceFrom(tree *ViewTree, offset int) bool {
	if offset >= len(p.Parent) {
		if p.Child < 0 || p.Child >= len(tree.Children) {
			return false
		}
		if child := tree.Children[p.Child].Tree; len(child.Children) > 0 {
			p.Parent = append(slices.Clip(p.Parent), p.Child)
			p.Child = 0
			return true
		}
		if p.Child == len(tree.Children)-1 {
			return false
		}
		p.Child++
		return true
	}

	ix := p.Parent[offset]
	if ix < 0 || ix >= len(tree.Children) {
		return false
	}
	if p.advanceFrom(tree.Children[ix].Tree, offset+1) {
		return true
	}
	if ix == len(tree.Children)-1 {
		return false
	}
	p.Child = ix + 1
	p.Parent = slices.Clip(p.Parent[:offset])
	return true
}

// Regress steps to the previous sibling, or up to the parent pair from a
// first child. It is not the inverse of Advance: it never descends into a
// previous sibling's subtree.
func (p *PaneIndex) Regress() bool {
	if p.Child > 0 {
		p.Child--
		return true
	}
	n := len(p.Parent)
	if n == 0 {
		return false
	}
	p.Child = p.Parent[n-1]
	p.Parent = slices.Clip(p.Parent[:n-1])
	return true
}

// TreeRole marks how a node takes part in the displayed pane pair
type TreeRole int

const (
	RoleNone TreeRole = iota
	RoleParent
	RoleChild
)

// TreeRow is one line of the rendered view tree
type TreeRow struct {
	Prefix string
	Name   string
	Role   TreeRole
	// Path of child indices from the root to this node
	Path []int
}

// Rows flattens the tree for display with box drawing prefixes. ix marks
// the displayed pair and may be nil.
func (t *ViewTree) Rows(ix *PaneIndex) []TreeRow {
	isParent := ix != nil && len(ix.Parent) == 0
	role := RoleNone
	if isParent {
		role = RoleParent
	}
	rows := []TreeRow{{Name: t.Frame.Name, Role: role, Path: []int{}}}
	for i, c := range t.Children {
		end := i == len(t.Children)-1
		isChild := isParent && ix.Child == i
		rows = c.Tree.appendRows(rows, "", end, descend(ix, i), isChild, []int{i})
	}
	return rows
}

func (t *ViewTree) appendRows(rows []TreeRow, prefix string, end bool, ix *PaneIndex, isChild bool, path []int) []TreeRow {
	isParent := ix != nil && len(ix.Parent) == 0
	mid, pad := "├", "│"
	if end {
		mid, pad = "└", " "
	}
	role := RoleNone
	switch {
	case isParent && isChild:
		panic("view tree node is both the displayed parent and child")
	case isParent:
		role = RoleParent
	case isChild:
		role = RoleChild
	}
	rows = append(rows, TreeRow{Prefix: prefix + mid, Name: t.Frame.Name, Role: role, Path: path})
	for i, c := range t.Children {
		last := i == len(t.Children)-1
		childIsChild := isParent && ix.Child == i
		rows = c.Tree.appendRows(rows, prefix+pad, last, descend(ix, i), childIsChild, append(slices.Clip(path), i))
	}
	return rows
}

// descend narrows ix to the subtree under child i, or nil when the
// displayed pair is not inside it
func descend(ix *PaneIndex, i int) *PaneIndex {
	if ix == nil || len(ix.Parent) == 0 || ix.Parent[0] != i {
		return nil
	}
	return &PaneIndex{Parent: ix.Parent[1:], Child: ix.Child}
}
