package components

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

// truncateWidth cuts s to at most width display cells
func truncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// fit truncates or pads s to exactly width cells
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = truncateWidth(s, width)
	return s + repeat(" ", width-runewidth.StringWidth(s))
}
