package cursor

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/stretchr/testify/require"
)

const wide = 1 << 20

var sampleRunes = []rune{
	'a', 'b', 'Z', '0', ' ', '"', '\\', '\n', '\t', '\r', '\b', '\f', 0x01,
	'é', '世', 'ß', 0x0301, 0x200b, 0x00a0, 0x2028, 0xe000, 0x1f600, 0x1d11e,
}

var sampleNumbers = []string{"0", "-1", "3.25", "1e10", "12345678901234567890"}

func randString(r *rand.Rand, maxLen int) string {
	n := r.IntN(maxLen + 1)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteRune(sampleRunes[r.IntN(len(sampleRunes))])
	}
	return sb.String()
}

func randValue(r *rand.Rand, depth int) jsonv.Value {
	choice := r.IntN(7)
	if depth <= 0 {
		choice = r.IntN(4)
	}
	switch choice {
	case 0:
		return jsonv.Null()
	case 1:
		return jsonv.Bool(r.IntN(2) == 0)
	case 2:
		return jsonv.Number(sampleNumbers[r.IntN(len(sampleNumbers))])
	case 3:
		return jsonv.String(randString(r, 30))
	case 4:
		items := make([]jsonv.Value, r.IntN(5))
		for i := range items {
			items[i] = randValue(r, depth-1)
		}
		return jsonv.Array(items...)
	default:
		pairs := make([]jsonv.Pair, r.IntN(5))
		for i := range pairs {
			pairs[i] = jsonv.Pair{Key: randString(r, 6), Value: randValue(r, depth-1)}
		}
		return jsonv.Object(pairs...)
	}
}

// randDocs generates a deterministic document sequence per seed
func randDocs(seed uint64) []jsonv.Value {
	r := rand.New(rand.NewPCG(seed, seed*31+7))
	docs := make([]jsonv.Value, 1+r.IntN(4))
	for i := range docs {
		docs[i] = randValue(r, 4)
	}
	return docs
}

func mustDecode(t *testing.T, src string) []jsonv.Value {
	t.Helper()
	docs, err := jsonv.DecodeBytes([]byte(src))
	require.NoError(t, err)
	return docs
}

// flatten renders documents line by line the naive way
func flatten(docs []jsonv.Value) []string {
	var out []string
	for _, d := range docs {
		flattenValue(&out, d, "", false, 0, false)
	}
	return out
}

func flattenValue(out *[]string, v jsonv.Value, key string, hasKey bool, depth int, comma bool) {
	indent := strings.Repeat(" ", depth*2)
	prefix := indent
	if hasKey {
		prefix += `"` + Escape(key) + `" : `
	}
	c := ""
	if comma {
		c = ","
	}
	switch v.Kind() {
	case jsonv.KindString:
		*out = append(*out, prefix+`"`+Escape(v.Text())+`"`+c)
	case jsonv.KindArray:
		*out = append(*out, prefix+"[")
		for i := 0; i < v.Len(); i++ {
			flattenValue(out, v.Index(i), "", false, depth+1, i != v.Len()-1)
		}
		*out = append(*out, indent+"]"+c)
	case jsonv.KindObject:
		*out = append(*out, prefix+"{")
		for i := 0; i < v.Len(); i++ {
			p := v.Pair(i)
			flattenValue(out, p.Value, p.Key, true, depth+1, i != v.Len()-1)
		}
		*out = append(*out, indent+"}"+c)
	default:
		s, _ := v.Scalar()
		*out = append(*out, prefix+s+c)
	}
}

// collectLines walks a value cursor from the start and renders every line
func collectLines(docs []jsonv.Value, folds FoldSet) []string {
	c, ok := NewValueCursor(docs)
	if !ok {
		return nil
	}
	var out []string
	for {
		out = append(out, c.CurrentLine(folds, wide).String())
		if !c.Advance(folds) {
			return out
		}
	}
}

// renderedWidth measures already escaped text
func renderedWidth(s string) int {
	w := 0
	for _, r := range s {
		w += widthCond.RuneWidth(r)
	}
	return w
}

type substring string

func (s substring) MatchString(text string) bool {
	return strings.Contains(text, string(s))
}
