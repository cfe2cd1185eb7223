package cursor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalCursorMatchesFlattening(t *testing.T) {
	for seed := uint64(1); seed <= 100; seed++ {
		docs := randDocs(seed)
		g, ok := NewGlobalCursor(docs, wide)
		require.True(t, ok)
		var got []string
		for {
			got = append(got, g.CurrentLine(nil, wide).String())
			if !g.Advance(nil, wide) {
				break
			}
		}
		require.Equal(t, flatten(docs), got, "seed %d", seed)
	}
}

func TestGlobalCursorAdvanceRegress(t *testing.T) {
	for seed := uint64(1); seed <= 60; seed++ {
		docs := randDocs(seed)
		for _, width := range []int{8, 9, 13, 40} {
			g, _ := NewGlobalCursor(docs, width)
			for {
				next := g
				if !next.Advance(nil, width) {
					break
				}
				require.Equal(t, 1, next.ToPath().Compare(g.ToPath()), "display order must strictly increase")

				back := next
				require.True(t, back.Regress(nil, width))
				require.Equal(t, g.ToPath(), back.ToPath(), "seed %d width %d", seed, width)
				g = next
			}
		}
	}
}

func TestGlobalCursorWrapsLongStrings(t *testing.T) {
	docs := mustDecode(t, `{"key":"abcdefghijklmnopqrstuvwxyz","n":1}`)
	width := 12
	g, _ := NewGlobalCursor(docs, width)
	require.True(t, g.Advance(nil, width))

	var rows []DisplayLine
	for {
		rows = append(rows, g.CurrentLine(nil, width))
		if g.AtLineEnd() {
			break
		}
		require.True(t, g.Advance(nil, width))
	}
	require.Greater(t, len(rows), 2)

	first := rows[0]
	assert.True(t, first.HasKey)
	assert.Equal(t, 2, first.Indent)
	assert.True(t, strings.HasPrefix(first.Body, `"`))
	assert.False(t, first.Comma)

	last := rows[len(rows)-1]
	assert.False(t, last.HasKey)
	assert.Equal(t, 0, last.Indent)
	assert.True(t, strings.HasSuffix(last.Body, `"`))
	assert.True(t, last.Comma)

	var body strings.Builder
	for i, r := range rows {
		assert.Equal(t, i, r.Chunk)
		assert.LessOrEqual(t, renderedWidth(r.String()), width, "row %d %q", i, r.String())
		body.WriteString(r.Body)
	}
	assert.Equal(t, `"abcdefghijklmnopqrstuvwxyz"`, body.String())

	require.True(t, g.Advance(nil, width))
	assert.Equal(t, `  "n" : 1`, g.CurrentLine(nil, width).String())
	assert.True(t, g.AtLineStart())
}

func TestGlobalCursorRegressEntersLastSubLine(t *testing.T) {
	docs := mustDecode(t, `["abcdefghijklmnopqrstuvwxyz", 1]`)
	width := 10
	g, _ := NewGlobalCursorEnd(docs, width)
	require.True(t, g.Regress(nil, width))
	require.True(t, g.Regress(nil, width))
	assert.True(t, g.AtLineEnd())
	assert.False(t, g.AtLineStart())
	assert.Greater(t, g.SubLine(), 0)
}

func TestRenderLines(t *testing.T) {
	docs := mustDecode(t, `{"a":1,"b":[2,3]}`)
	g, _ := NewGlobalCursor(docs, 40)

	sel := Path{Top: 0, Frames: []int{1, 0}, Position: Value}
	lines := g.RenderLines(&sel, nil, Rect{Width: 40, Height: 4})
	require.Len(t, lines, 4)
	assert.Equal(t, "{", lines[0].String())
	assert.Equal(t, `    2,`, lines[3].String())
	for i, l := range lines {
		assert.Equal(t, i == 3, l.Selected, "line %d", i)
	}

	all := g.RenderLines(nil, nil, Rect{Width: 40, Height: 100})
	assert.Len(t, all, 7, "rendering stops at the end of the documents")
	for _, l := range all {
		assert.False(t, l.Selected)
	}

	assert.Empty(t, g.RenderLines(nil, nil, Rect{Width: 40}))
	assert.Equal(t, Path{Top: 0, Frames: []int{}, Position: Start}, g.Value.ToPath(), "rendering works on a copy")
}

func TestGlobalCursorResize(t *testing.T) {
	docs := mustDecode(t, `"0123456789abcdefghijklmnopqrstuvwxyz"`)
	g, _ := NewGlobalCursor(docs, 10)
	require.True(t, g.Advance(nil, 10))
	require.True(t, g.Advance(nil, 10))
	assert.Equal(t, 2, g.SubLine())

	g.ResizeTo(Rect{Width: 100, Height: 10})
	assert.Equal(t, 0, g.SubLine(), "everything fits on one line")
	assert.True(t, g.AtLineEnd())
}
