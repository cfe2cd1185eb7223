// Package jsonv provides the immutable JSON values browsed by the viewer.
package jsonv

import (
	"strings"
)

// Kind identifies the JSON type of a Value
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lowercase JSON name of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable JSON value. Copying a Value is O(1) and every copy
// shares the same underlying node. The zero Value is null.
type Value struct {
	n *node
}

type node struct {
	kind  Kind
	b     bool
	s     string // string contents, or the number literal
	items []Value
	pairs []Pair
}

// Pair is one entry of an object. Objects keep their pairs in source order
// and may hold duplicate keys.
type Pair struct {
	Key   string
	Value Value
}

var (
	nullNode  = &node{kind: KindNull}
	trueNode  = &node{kind: KindBool, b: true}
	falseNode = &node{kind: KindBool}
)

// Null returns the null value
func Null() Value { return Value{nullNode} }

// Bool returns a boolean value
func Bool(b bool) Value {
	if b {
		return Value{trueNode}
	}
	return Value{falseNode}
}

// Number returns a number value from its JSON literal, e.g. "1.5e3"
func Number(literal string) Value {
	return Value{&node{kind: KindNumber, s: literal}}
}

// String returns a string value
func String(s string) Value {
	return Value{&node{kind: KindString, s: s}}
}

// Array returns an array value. The slice is owned by the value afterwards.
func Array(items ...Value) Value {
	return Value{&node{kind: KindArray, items: items}}
}

// Object returns an object value. The slice is owned by the value afterwards.
func Object(pairs ...Pair) Value {
	return Value{&node{kind: KindObject, pairs: pairs}}
}

// Kind returns the JSON type of the value
func (v Value) Kind() Kind {
	if v.n == nil {
		return KindNull
	}
	return v.n.kind
}

// IsContainer reports whether the value is an array or an object
func (v Value) IsContainer() bool {
	k := v.Kind()
	return k == KindArray || k == KindObject
}

// Bool returns the boolean payload; false for other kinds
func (v Value) Bool() bool {
	return v.n != nil && v.n.kind == KindBool && v.n.b
}

// Text returns the string contents for strings and the literal for numbers
func (v Value) Text() string {
	if v.n == nil {
		return ""
	}
	switch v.n.kind {
	case KindString, KindNumber:
		return v.n.s
	}
	return ""
}

// Len returns the number of children of an array or object, 0 otherwise
func (v Value) Len() int {
	if v.n == nil {
		return 0
	}
	switch v.n.kind {
	case KindArray:
		return len(v.n.items)
	case KindObject:
		return len(v.n.pairs)
	}
	return 0
}

// Index returns the i-th child of an array or the value of the i-th pair of
// an object. It panics when i is out of range.
func (v Value) Index(i int) Value {
	switch v.Kind() {
	case KindArray:
		return v.n.items[i]
	case KindObject:
		return v.n.pairs[i].Value
	}
	panic("jsonv: Index on " + v.Kind().String())
}

// Pair returns the i-th pair of an object
func (v Value) Pair(i int) Pair {
	if v.Kind() != KindObject {
		panic("jsonv: Pair on " + v.Kind().String())
	}
	return v.n.pairs[i]
}

// Same reports whether both values share the same node
func (v Value) Same(o Value) bool {
	return v.n == o.n
}

// Equal reports deep equality. Object pairs are compared in order.
func (v Value) Equal(o Value) bool {
	if v.n == o.n {
		return true
	}
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindNull:
		return true
	case KindBool:
		return v.Bool() == o.Bool()
	case KindNumber, KindString:
		return v.n.s == o.n.s
	case KindArray:
		if len(v.n.items) != len(o.n.items) {
			return false
		}
		for i := range v.n.items {
			if !v.n.items[i].Equal(o.n.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.n.pairs) != len(o.n.pairs) {
			return false
		}
		for i := range v.n.pairs {
			if v.n.pairs[i].Key != o.n.pairs[i].Key || !v.n.pairs[i].Value.Equal(o.n.pairs[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Scalar returns the canonical text of a leaf: "null", "true"/"false", the
// number literal or the raw string contents. ok is false for containers.
func (v Value) Scalar() (s string, ok bool) {
	switch v.Kind() {
	case KindNull:
		return "null", true
	case KindBool:
		if v.Bool() {
			return "true", true
		}
		return "false", true
	case KindNumber, KindString:
		return v.n.s, true
	}
	return "", false
}

// String returns the compact JSON encoding of the value
func (v Value) String() string {
	var sb strings.Builder
	if err := EncodeValue(&sb, v, ""); err != nil {
		return "<invalid: " + err.Error() + ">"
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
