package filter

import (
	"context"
	"fmt"

	"github.com/jmespath/go-jmespath"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
)

// JMESPath evaluates JMESPath expressions. Every document yields exactly
// one result.
type JMESPath struct{}

// NewJMESPath creates a JMESPath engine
func NewJMESPath() *JMESPath {
	return &JMESPath{}
}

func (j *JMESPath) Name() string     { return "jmespath" }
func (j *JMESPath) Identity() string { return "@" }

func (j *JMESPath) Run(ctx context.Context, docs []jsonv.Value, query string) ([]jsonv.Value, error) {
	jp, err := jmespath.Compile(query)
	if err != nil {
		return nil, newQueryError(query, fmt.Sprintf("invalid JMESPath expression '%s': %v", query, err))
	}

	results := make([]jsonv.Value, 0, len(docs))
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, newQueryError(query, err.Error())
		}
		res, err := jp.Search(jsonv.ToAny(doc))
		if err != nil {
			return nil, newQueryError(query, fmt.Sprintf("JMESPath search failed on document %d: %v", i+1, err))
		}
		out, err := jsonv.FromAny(res)
		if err != nil {
			return nil, newQueryError(query, fmt.Sprintf("document %d: %v", i+1, err))
		}
		results = append(results, out)
	}
	return results, nil
}
