package cursor

// FoldSet holds the containers rendered as one collapsed summary line.
// A nil FoldSet is empty and may be read but not written.
type FoldSet map[FoldKey]struct{}

// NewFoldSet creates an empty fold set
func NewFoldSet() FoldSet {
	return make(FoldSet)
}

// Contains reports whether key is folded
func (s FoldSet) Contains(key FoldKey) bool {
	_, ok := s[key]
	return ok
}

// Insert folds key
func (s FoldSet) Insert(key FoldKey) {
	s[key] = struct{}{}
}

// Remove unfolds key
func (s FoldSet) Remove(key FoldKey) {
	delete(s, key)
}

// Toggle flips key and reports whether it is folded afterwards
func (s FoldSet) Toggle(key FoldKey) bool {
	if s.Contains(key) {
		s.Remove(key)
		return false
	}
	s.Insert(key)
	return true
}

// RemoveAncestors unfolds every container enclosing the position at top and
// frames, including the enclosing document itself
func (s FoldSet) RemoveAncestors(top int, frames []int) {
	for n := len(frames) - 1; n >= 0; n-- {
		s.Remove(NewFoldKey(top, frames[:n]))
	}
}

// Clone copies the set
func (s FoldSet) Clone() FoldSet {
	out := make(FoldSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}
