package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldSetToggle(t *testing.T) {
	s := NewFoldSet()
	k := NewFoldKey(0, []int{1, 2})
	assert.True(t, s.Toggle(k))
	assert.True(t, s.Contains(k))
	assert.False(t, s.Toggle(k))
	assert.Empty(t, s)

	var empty FoldSet
	assert.False(t, empty.Contains(k), "a nil set reads as empty")
}

func TestFoldKeyIdentity(t *testing.T) {
	assert.Equal(t, NewFoldKey(1, []int{12}), NewFoldKey(1, []int{12}))
	assert.NotEqual(t, NewFoldKey(1, []int{1, 2}), NewFoldKey(1, []int{12}))
	assert.NotEqual(t, NewFoldKey(0, nil), NewFoldKey(1, nil))
	assert.Equal(t, 0, NewFoldKey(0, nil).Depth())
	assert.Equal(t, 2, NewFoldKey(0, []int{3, 4}).Depth())
	assert.Equal(t, NewFoldKey(2, []int{0}), Path{Top: 2, Frames: []int{0}, Position: End}.FoldKey())
}

func TestRemoveAncestors(t *testing.T) {
	s := NewFoldSet()
	s.Insert(NewFoldKey(0, nil))
	s.Insert(NewFoldKey(0, []int{1}))
	s.Insert(NewFoldKey(0, []int{1, 3}))
	s.Insert(NewFoldKey(0, []int{2}))
	s.Insert(NewFoldKey(1, nil))

	s.RemoveAncestors(0, []int{1, 3, 0})

	assert.False(t, s.Contains(NewFoldKey(0, nil)))
	assert.False(t, s.Contains(NewFoldKey(0, []int{1})))
	assert.False(t, s.Contains(NewFoldKey(0, []int{1, 3})))
	assert.True(t, s.Contains(NewFoldKey(0, []int{2})), "siblings stay folded")
	assert.True(t, s.Contains(NewFoldKey(1, nil)), "other documents stay folded")

	c := s.Clone()
	c.Remove(NewFoldKey(1, nil))
	assert.True(t, s.Contains(NewFoldKey(1, nil)))
}

func TestPathCompare(t *testing.T) {
	p := func(top int, pos FocusPosition, frames ...int) Path {
		return Path{Top: top, Frames: frames, Position: pos}
	}
	assert.Equal(t, -1, p(0, End).Compare(p(1, Start)))
	assert.Equal(t, -1, p(0, Start).Compare(p(0, Value, 0)))
	assert.Equal(t, 1, p(0, End).Compare(p(0, Value, 5)))
	assert.Equal(t, 1, p(0, Value, 0, 1).Compare(p(0, Start, 0)))
	assert.Equal(t, -1, p(0, Value, 0, 1).Compare(p(0, End, 0)))
	assert.Equal(t, -1, p(0, Start, 2).Compare(p(0, End, 2)))
	assert.Equal(t, 0, p(0, Value, 2, 1).Compare(p(0, Value, 2, 1)))
	assert.Panics(t, func() { p(0, Value, 1).Compare(p(0, Value, 1, 0)) })

	g1 := GlobalPath{Path: p(0, Value, 1), Line: 0}
	g2 := GlobalPath{Path: p(0, Value, 1), Line: 3}
	assert.Equal(t, -1, g1.Compare(g2))
}
