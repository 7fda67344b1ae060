package queryjson

import (
	jsonata "github.com/blues/jsonata-go"

	"github.com/shaungallagher/derived-attributes/errors"
)

// JSONata evaluates JSONata expressions. It satisfies sva.ExprQuerier.
type JSONata struct{}

// NewJSONata creates a JSONata engine.
func NewJSONata() *JSONata {
	return &JSONata{}
}

// Evaluate compiles expr and evaluates it against doc. An undefined
// result maps to nil rather than an error.
func (q *JSONata) Evaluate(doc any, expr string) (any, error) {
	e, err := jsonata.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "jsonata %q", expr)
	}
	result, err := e.Eval(doc)
	if err != nil {
		if errors.Is(err, jsonata.ErrUndefined) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "jsonata %q", expr)
	}
	return result, nil
}

// ValidateSyntax compiles expr without evaluating it.
func (q *JSONata) ValidateSyntax(expr string) error {
	if _, err := jsonata.Compile(expr); err != nil {
		return errors.Wrapf(err, "jsonata %q", expr)
	}
	return nil
}
