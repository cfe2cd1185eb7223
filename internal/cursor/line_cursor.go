package cursor

import "unicode/utf8"

// span is the byte range of s shown on one wrapped sub-line
type span struct {
	start, end int
}

// LineCursor walks the wrapped sub-lines of one string leaf. The first
// sub-line carries the lead (indent, key) and the opening quote, the last
// one the closing quote and the trailing comma. Continuation sub-lines
// start at column 0.
type LineCursor struct {
	text    string
	width   int
	lead    int
	trail   int
	spans   []span
	current int
}

// NewLineCursor wraps text at width and focuses its first sub-line
func NewLineCursor(text string, width, lead, trail int) LineCursor {
	width = normalizeWidth(width)
	return LineCursor{
		text:  text,
		width: width,
		lead:  lead,
		trail: trail,
		spans: wrap(text, width, lead, trail),
	}
}

// NewLineCursorAtEnd wraps text at width and focuses its last sub-line
func NewLineCursorAtEnd(text string, width, lead, trail int) LineCursor {
	l := NewLineCursor(text, width, lead, trail)
	l.current = len(l.spans) - 1
	return l
}

// wrap splits s into sub-lines. Every sub-line after the first consumes at
// least one rune, so wrapping always terminates.
func wrap(s string, width, lead, trail int) []span {
	var out []span
	avail := width - lead - 1 // opening quote
	start := 0
	for {
		end, used := takeWidth(s, start, avail)
		if end == start && start < len(s) && len(out) > 0 {
			r, size := utf8.DecodeRuneInString(s[start:])
			end, used = start+size, DisplayWidth(r)
		}
		out = append(out, span{start, end})
		if end == len(s) {
			if used+1+trail > avail {
				// only the closing quote is left
				out = append(out, span{end, end})
			}
			return out
		}
		start = end
		avail = width
	}
}

func takeWidth(s string, from, avail int) (end, used int) {
	end = from
	for i, r := range s[from:] {
		w := DisplayWidth(r)
		if used+w > avail {
			return from + i, used
		}
		used += w
		end = from + i + utf8.RuneLen(r)
	}
	return len(s), used
}

// Current returns the index of the focused sub-line
func (l LineCursor) Current() int { return l.current }

// Len returns the number of sub-lines
func (l LineCursor) Len() int { return len(l.spans) }

// Width returns the width the text is wrapped at
func (l LineCursor) Width() int { return l.width }

// AtStart reports whether the first sub-line is focused
func (l LineCursor) AtStart() bool { return l.current == 0 }

// AtEnd reports whether the last sub-line is focused
func (l LineCursor) AtEnd() bool { return l.current == len(l.spans)-1 }

// Chunk returns the raw, unescaped text of the focused sub-line
func (l LineCursor) Chunk() string {
	sp := l.spans[l.current]
	return l.text[sp.start:sp.end]
}

// MoveNext focuses the next sub-line. It returns false at the last one.
func (l *LineCursor) MoveNext() bool {
	if l.current+1 >= len(l.spans) {
		return false
	}
	l.current++
	return true
}

// MovePrev focuses the previous sub-line. It returns false at the first one.
func (l *LineCursor) MovePrev() bool {
	if l.current == 0 {
		return false
	}
	l.current--
	return true
}

// SetWidth re-wraps in place, keeping the sub-line holding the text that
// was focused before
func (l *LineCursor) SetWidth(width, lead int) {
	width = normalizeWidth(width)
	if width == l.width && lead == l.lead {
		return
	}
	offset := l.spans[l.current].start
	first := l.current == 0
	l.width, l.lead = width, lead
	l.spans = wrap(l.text, width, lead, l.trail)
	l.current = 0
	if first {
		return
	}
	l.current = len(l.spans) - 1
	for i := range l.spans {
		if l.spans[i].end > offset {
			l.current = i
			return
		}
	}
}
