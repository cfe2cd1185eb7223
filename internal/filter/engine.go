// Package filter runs query expressions over document sequences.
package filter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
)

// ErrUnknownEngine is returned when no engine has the requested name
var ErrUnknownEngine = errors.New("unknown query engine")

// Engine maps a document sequence and a query to a new document sequence.
// Compile and runtime failures are both returned as a *QueryError.
type Engine interface {
	// Name is the engine's configuration name
	Name() string
	// Identity is the query that returns its input unchanged
	Identity() string
	// Run evaluates query against every document in order
	Run(ctx context.Context, docs []jsonv.Value, query string) ([]jsonv.Value, error)
}

// QueryError carries the diagnostics of a failed query
type QueryError struct {
	Query       string
	Diagnostics []string
}

func (e *QueryError) Error() string {
	return strings.Join(e.Diagnostics, "\n")
}

func newQueryError(query string, diagnostics ...string) *QueryError {
	return &QueryError{Query: query, Diagnostics: diagnostics}
}

// Diagnostics extracts the diagnostic lines of err
func Diagnostics(err error) []string {
	if err == nil {
		return nil
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Diagnostics
	}
	return []string{err.Error()}
}

var engines = map[string]func() Engine{
	"jq":       func() Engine { return NewJQ() },
	"jmespath": func() Engine { return NewJMESPath() },
}

// New returns the engine registered under name
func New(name string) (Engine, error) {
	ctor, ok := engines[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownEngine, name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

// Names lists the registered engines
func Names() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run evaluates query with engine, converting a panic inside the engine
// into diagnostics so a bad query never takes down the caller
func Run(ctx context.Context, engine Engine, docs []jsonv.Value, query string) (results []jsonv.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			results, err = nil, newQueryError(query, fmt.Sprintf("%s: internal error: %v", engine.Name(), r))
		}
	}()
	return engine.Run(ctx, docs, query)
}

// Check reports whether query compiles for the engine registered under
// name. Running over no documents compiles the query without evaluating it.
func Check(name, query string) error {
	engine, err := New(name)
	if err != nil {
		return err
	}
	_, err = Run(context.Background(), engine, nil, query)
	return err
}
