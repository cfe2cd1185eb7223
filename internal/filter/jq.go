package filter

import (
	"context"
	"errors"
	"fmt"

	"github.com/itchyny/gojq"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
)

// JQ evaluates jq programs with gojq
type JQ struct{}

// NewJQ creates a jq engine
func NewJQ() *JQ {
	return &JQ{}
}

func (j *JQ) Name() string     { return "jq" }
func (j *JQ) Identity() string { return "." }

// Run compiles query once and feeds every document through it. Each input
// may produce any number of results.
func (j *JQ) Run(ctx context.Context, docs []jsonv.Value, query string) ([]jsonv.Value, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, newQueryError(query, compileDiagnostic(query, err))
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, newQueryError(query, fmt.Sprintf("jq: error: %v", err), "jq: 1 compile error")
	}

	var results []jsonv.Value
	for _, doc := range docs {
		iter := code.RunWithContext(ctx, jsonv.ToAnyExact(doc))
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}
			if err, ok := v.(error); ok {
				var halt *gojq.HaltError
				if errors.As(err, &halt) && halt.Value() == nil {
					return results, nil
				}
				return nil, newQueryError(query, fmt.Sprintf("jq: error: %v", err))
			}
			out, err := jsonv.FromAny(v)
			if err != nil {
				return nil, newQueryError(query, fmt.Sprintf("jq: error: %v", err))
			}
			results = append(results, out)
		}
	}
	return results, nil
}

func compileDiagnostic(query string, err error) string {
	var perr *gojq.ParseError
	if errors.As(err, &perr) {
		return fmt.Sprintf("jq: error: %v at offset %d:\n%s", err, perr.Offset, query)
	}
	return fmt.Sprintf("jq: error: %v", err)
}
