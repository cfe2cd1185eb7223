package cursor

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Hello world!", "Hello world!"},
		{"Hello\nworld!", `Hello\nworld!`},
		{"tab\there", `tab\there`},
		{`quote"back\`, `quote\"back\\`},
		{"\x00\x7f", `\u0000\u007f`},
		{"e\u0301", `e\u0301`},
		{"nb\u00a0sp", `nb\u00a0sp`},
		{"\U000F0000", `\udb80\udc00`},
		{"\u4e16\u754c", "\u4e16\u754c"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.in), "escaping %q", tt.in)
	}
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 1, DisplayWidth('a'))
	assert.Equal(t, 1, DisplayWidth(' '))
	assert.Equal(t, 2, DisplayWidth('\n'))
	assert.Equal(t, 2, DisplayWidth('"'))
	assert.Equal(t, 2, DisplayWidth('世'))
	assert.Equal(t, 6, DisplayWidth(0x01))
	assert.Equal(t, 6, DisplayWidth(0x2028))
	assert.Equal(t, 6, DisplayWidth(0xe000))
	assert.Equal(t, 12, DisplayWidth(0xf0000))
}

func TestDisplayWidthAdditivity(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		s := randString(r, 40)
		if i%10 == 0 {
			s += "\U000F0000"
		}
		assert.Equal(t, renderedWidth(Escape(s)), StringWidth(s), "string %q", s)
	}
}
