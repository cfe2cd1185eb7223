// Package cursor walks JSON documents one display line at a time.
//
// A ValueCursor tracks a structural position (document, ancestor frames and
// the focused value), a LineCursor tracks the wrapped sub-lines of one long
// string, and a GlobalCursor pairs the two so a viewport can be anchored on
// any display line. Every step costs O(depth), so nothing ever flattens a
// whole document into lines.
package cursor

import "github.com/rebeliceyang/lazyjson/internal/jsonv"

// FocusPosition says which line of the focused value is current
type FocusPosition uint8

const (
	// Start is the opening bracket line of a container
	Start FocusPosition = iota
	// Value is the only line of a leaf
	Value
	// End is the closing bracket line of a container
	End
)

func (p FocusPosition) String() string {
	switch p {
	case Start:
		return "start"
	case Value:
		return "value"
	case End:
		return "end"
	}
	return "invalid"
}

// Starting returns the first position of v
func Starting(v jsonv.Value) FocusPosition {
	if v.IsContainer() {
		return Start
	}
	return Value
}

// Ending returns the last position of v
func Ending(v jsonv.Value) FocusPosition {
	if v.IsContainer() {
		return End
	}
	return Value
}
