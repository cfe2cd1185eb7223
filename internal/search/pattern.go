// Package search compiles the patterns typed into the search prompt.
package search

import (
	"errors"
	"fmt"
	"log"
	"time"
	"unicode"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single match so a pathological pattern cannot hang
// the event loop
const MatchTimeout = 250 * time.Millisecond

// ErrEmptyPattern is returned for a blank search
var ErrEmptyPattern = errors.New("empty search pattern")

// Options controls pattern compilation
type Options struct {
	// SmartCase matches case-insensitively unless the pattern has an uppercase letter
	SmartCase bool
}

// Pattern is a compiled search pattern
type Pattern struct {
	source string
	re     *regexp2.Regexp
}

// Compile builds a pattern using RE2 syntax
func Compile(expr string, opts Options) (*Pattern, error) {
	if expr == "" {
		return nil, ErrEmptyPattern
	}

	flags := regexp2.RegexOptions(regexp2.RE2)
	if opts.SmartCase && !hasUpper(expr) {
		flags |= regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(expr, flags)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", expr, err)
	}
	re.MatchTimeout = MatchTimeout

	return &Pattern{source: expr, re: re}, nil
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// MatchString reports whether s contains a match. A timed out match counts
// as no match.
func (p *Pattern) MatchString(s string) bool {
	ok, err := p.re.MatchString(s)
	if err != nil {
		log.Printf("Warning: search %q aborted: %v", p.source, err)
		return false
	}
	return ok
}

// String returns the source pattern
func (p *Pattern) String() string {
	return p.source
}
