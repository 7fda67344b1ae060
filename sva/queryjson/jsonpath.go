// Package queryjson implements the structured-query collaborators of
// the sva engine: a JSONPath engine backed by ohler55/ojg and a JSONata
// engine backed by blues/jsonata-go.
package queryjson

import (
	"github.com/ohler55/ojg/jp"

	"github.com/shaungallagher/derived-attributes/errors"
)

// JSONPath evaluates JSONPath expressions. It satisfies sva.PathQuerier.
type JSONPath struct{}

// NewJSONPath creates a JSONPath engine.
func NewJSONPath() *JSONPath {
	return &JSONPath{}
}

// QueryOne returns the first match for expr in document order, with
// found reporting whether any match existed.
func (q *JSONPath) QueryOne(doc any, expr string) (any, bool, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, false, errors.Wrapf(err, "jsonpath %q", expr)
	}
	matches := x.Get(doc)
	if len(matches) == 0 {
		return nil, false, nil
	}
	return matches[0], true, nil
}

// QueryAll returns every match for expr in document order.
func (q *JSONPath) QueryAll(doc any, expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "jsonpath %q", expr)
	}
	matches := x.Get(doc)
	if matches == nil {
		matches = []any{}
	}
	return matches, nil
}

// ValidateSyntax parses expr without evaluating it.
func (q *JSONPath) ValidateSyntax(expr string) error {
	if _, err := jp.ParseString(expr); err != nil {
		return errors.Wrapf(err, "jsonpath %q", expr)
	}
	return nil
}
