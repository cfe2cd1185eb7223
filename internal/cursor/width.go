package cursor

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/mattn/go-runewidth"
)

// MinWidth is the narrowest width lines are laid out for
const MinWidth = 8

var widthCond = &runewidth.Condition{EastAsianWidth: false}

func normalizeWidth(width int) int {
	return max(width, MinWidth)
}

// escapedAsUnicode reports whether r is shown as \uXXXX
func escapedAsUnicode(r rune) bool {
	if unicode.In(r,
		unicode.Cc, unicode.Cf, unicode.Cs, unicode.Co,
		unicode.Zl, unicode.Zp,
		unicode.Mn, unicode.Mc, unicode.Me,
	) {
		return true
	}
	return r != ' ' && unicode.Is(unicode.Zs, r)
}

// DisplayWidth returns the columns r occupies once escaped
func DisplayWidth(r rune) int {
	switch r {
	case '"', '\\', '\b', '\f', '\n', '\r', '\t':
		return 2
	}
	if escapedAsUnicode(r) {
		if n := utf16.RuneLen(r); n > 1 {
			return 6 * n
		}
		return 6
	}
	return widthCond.RuneWidth(r)
}

// StringWidth returns the columns s occupies once escaped
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += DisplayWidth(r)
	}
	return w
}

// TextWidth returns the columns of already escaped text, measured the way
// lines are laid out regardless of the terminal locale
func TextWidth(s string) int {
	return widthCond.StringWidth(s)
}

// TruncateText cuts already escaped text to width columns
func TruncateText(s string, width int, tail string) string {
	return widthCond.Truncate(s, width, tail)
}

// Escape renders s the way it is displayed between quotes
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if escapedAsUnicode(r) {
				for _, unit := range utf16.Encode([]rune{r}) {
					fmt.Fprintf(&sb, `\u%04x`, unit)
				}
				continue
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
