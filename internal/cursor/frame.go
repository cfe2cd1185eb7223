package cursor

import "github.com/rebeliceyang/lazyjson/internal/jsonv"

// Frame is one open ancestor container and the index of its focused child.
// For objects the index also addresses the focused pair, so resuming the
// iteration is an O(1) lookup.
type Frame struct {
	Container jsonv.Value
	Index     int
}

// Child returns the focused child
func (f Frame) Child() jsonv.Value {
	return f.Container.Index(f.Index)
}

// Key returns the focused pair's key when the container is an object
func (f Frame) Key() (string, bool) {
	if f.Container.Kind() != jsonv.KindObject {
		return "", false
	}
	return f.Container.Pair(f.Index).Key, true
}

// IsLast reports whether the focused child is the container's last one
func (f Frame) IsLast() bool {
	return f.Index == f.Container.Len()-1
}

// Equal reports whether both frames focus the same child of the same container
func (f Frame) Equal(o Frame) bool {
	return f.Index == o.Index && f.Container.Same(o.Container)
}
