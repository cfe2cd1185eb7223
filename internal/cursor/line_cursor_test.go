package cursor

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readForward(l LineCursor) []string {
	var out []string
	for {
		out = append(out, l.Chunk())
		if !l.MoveNext() {
			return out
		}
	}
}

func readBackward(l LineCursor) []string {
	var out []string
	for {
		out = append([]string{l.Chunk()}, out...)
		if !l.MovePrev() {
			return out
		}
	}
}

func TestLineCursorShortString(t *testing.T) {
	l := NewLineCursor("hello", 20, 0, 1)
	assert.Equal(t, 1, l.Len())
	assert.True(t, l.AtStart())
	assert.True(t, l.AtEnd())
	assert.False(t, l.MoveNext())
	assert.False(t, l.MovePrev())
	assert.Equal(t, "hello", l.Chunk())
}

func TestLineCursorWraps(t *testing.T) {
	// width 10: first line holds `"` plus 9 columns
	l := NewLineCursor(strings.Repeat("a", 20), 10, 0, 0)
	assert.Equal(t, []string{"aaaaaaaaa", "aaaaaaaaaa", "a"}, readForward(l))
}

func TestLineCursorClosingQuoteOnItsOwnLine(t *testing.T) {
	// everything but the closing quote fits
	l := NewLineCursor(strings.Repeat("a", 9), 10, 0, 0)
	assert.Equal(t, []string{"aaaaaaaaa", ""}, readForward(l))

	// the trailing comma needs room too
	l = NewLineCursor(strings.Repeat("a", 8), 10, 0, 1)
	assert.Equal(t, []string{"aaaaaaaa", ""}, readForward(l))

	l = NewLineCursor(strings.Repeat("a", 7), 10, 0, 1)
	assert.Equal(t, []string{"aaaaaaa"}, readForward(l))
}

func TestLineCursorWideLead(t *testing.T) {
	l := NewLineCursor("abc", 10, 20, 0)
	assert.Equal(t, []string{"", "abc"}, readForward(l))
}

func TestLineCursorNeverSplitsEscapes(t *testing.T) {
	l := NewLineCursor("ab\n\n\ncd", 8, 0, 0)
	chunks := readForward(l)
	assert.Equal(t, "ab\n\n\ncd", strings.Join(chunks, ""))
	for _, c := range chunks {
		assert.LessOrEqual(t, StringWidth(c), 8)
	}
}

func TestLineCursorReassembles(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 300; i++ {
		s := randString(r, 60)
		width := 8 + r.IntN(40)
		lead := r.IntN(width - 6)
		trail := r.IntN(2)

		start := NewLineCursor(s, width, lead, trail)
		forward := readForward(start)
		require.Equal(t, s, strings.Join(forward, ""), "%q at %d", s, width)

		end := NewLineCursorAtEnd(s, width, lead, trail)
		assert.True(t, end.AtEnd())
		assert.Equal(t, forward, readBackward(end))

		for j, c := range forward {
			used := StringWidth(c)
			if j == 0 {
				used += lead + 1
			}
			if j == len(forward)-1 {
				used += 1 + trail
			}
			assert.LessOrEqual(t, used, width, "%q at %d line %d", s, width, j)
		}
	}
}

func TestLineCursorSetWidthKeepsOffset(t *testing.T) {
	s := "0123456789abcdefghijklmnopqrstuvwxyz"
	l := NewLineCursor(s, 10, 0, 0)
	require.True(t, l.MoveNext())
	require.True(t, l.MoveNext())
	focused := l.Chunk()

	l.SetWidth(20, 0)
	assert.Contains(t, l.Chunk(), focused[:1], "the focused text stays on screen")
	assert.Equal(t, 20, l.Width())

	l.SetWidth(10, 0)
	assert.Equal(t, focused, l.Chunk())

	first := NewLineCursor(s, 10, 0, 0)
	first.SetWidth(30, 0)
	assert.True(t, first.AtStart())

	last := NewLineCursorAtEnd(s, 10, 0, 0)
	last.SetWidth(12, 0)
	assert.Contains(t, last.Chunk(), s[29:30])
}
