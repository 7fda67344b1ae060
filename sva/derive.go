package sva

import (
	"strings"

	"github.com/shaungallagher/derived-attributes/errors"
	"github.com/shaungallagher/derived-attributes/logger"
)

// Attributes derives the complete public attribute map from a sentence
// table and a source document.
type Attributes struct {
	r *resolver
}

// NewAttributes validates the sentences and builds an attributes engine.
func NewAttributes(sentences []Sentence, source any, opts Options) (*Attributes, error) {
	r, err := newResolver(sentences, source, opts)
	if err != nil {
		return nil, err
	}
	return &Attributes{r: r}, nil
}

// Derive evaluates every sentence and returns the public (non-private)
// attribute map. Each call evaluates against a fresh memo; any runtime
// error aborts the run with no partial result.
func (a *Attributes) Derive() (map[string]any, error) {
	ec := newEvalContext()
	if err := a.r.evaluateAll(ec); err != nil {
		return nil, err
	}
	return a.r.public(ec), nil
}

// Rules derives only the boolean-typed public attributes, in computation
// order, treating each as one rule of a composite verdict. Combine the
// result with All or Any.
type Rules struct {
	r *resolver
}

// NewRules validates the sentences and builds a rules engine.
func NewRules(sentences []Sentence, source any, opts Options) (*Rules, error) {
	r, err := newResolver(sentences, source, opts)
	if err != nil {
		return nil, err
	}
	return &Rules{r: r}, nil
}

// Derive evaluates every sentence and returns the boolean values among
// the public results, in the order they were computed. Non-boolean
// public attributes are dropped.
func (ru *Rules) Derive() ([]bool, error) {
	ec := newEvalContext()
	if err := ru.r.evaluateAll(ec); err != nil {
		return nil, err
	}
	rules := make([]bool, 0, len(ec.order))
	for _, attr := range ec.order {
		if strings.HasPrefix(attr, ru.r.prefix) {
			continue
		}
		if b, ok := ec.memo[attr].(bool); ok {
			rules = append(rules, b)
		}
	}
	return rules, nil
}

// All reports whether every rule passed. Vacuously true when empty.
func All(rules []bool) bool {
	for _, r := range rules {
		if !r {
			return false
		}
	}
	return true
}

// Any reports whether at least one rule passed.
func Any(rules []bool) bool {
	for _, r := range rules {
		if r {
			return true
		}
	}
	return false
}

// Triggers derives attributes from a trigger table, firing each
// trigger's action through the handler when its value resolves to true.
// Firings are synchronous and interleaved with evaluation, in
// dependency-resolution order.
type Triggers struct {
	r        *resolver
	triggers map[string]*Trigger
	handler  ActionHandler
}

// NewTriggers validates the triggers and builds a triggers engine. A nil
// handler discards firings.
func NewTriggers(triggers []Trigger, source any, handler ActionHandler, opts Options) (*Triggers, error) {
	sentences := make([]Sentence, len(triggers))
	byAttr := make(map[string]*Trigger, len(triggers))
	for i := range triggers {
		t := &triggers[i]
		if len(t.Params) > 0 && t.Action == "" {
			return nil, errors.Wrapf(errors.ErrParamsWithoutAction, "trigger %q", t.Attr)
		}
		sentences[i] = t.Sentence
		byAttr[t.Attr] = t
	}

	r, err := newResolver(sentences, source, opts)
	if err != nil {
		return nil, err
	}
	if handler == nil {
		handler = NoOpHandler{}
	}

	tr := &Triggers{r: r, triggers: byAttr, handler: handler}
	r.onResult = tr.maybeFire
	return tr, nil
}

// Derive evaluates every trigger sentence, firing actions as results
// resolve, and returns the public attribute map.
func (tr *Triggers) Derive() (map[string]any, error) {
	ec := newEvalContext()
	if err := tr.r.evaluateAll(ec); err != nil {
		return nil, err
	}
	return tr.r.public(ec), nil
}

// maybeFire runs after each sentence's value is memoized: a boolean
// true result on a trigger carrying an action fires the handler with
// the resolved params. Memoization guarantees at most one firing per
// trigger per Derive call.
func (tr *Triggers) maybeFire(ec *evalContext, s *Sentence, result any) error {
	t := tr.triggers[s.Attr]
	fired, ok := result.(bool)
	if !ok || !fired || t.Action == "" {
		return nil
	}

	params := make([]Param, 0, len(t.Params))
	for _, name := range t.Params {
		// Fall back to the literal parameter text when the name is not
		// a memoized attribute.
		value, memoized := ec.memo[name]
		if !memoized {
			value = name
		}
		params = append(params, Param{Name: name, Value: value})
	}

	if tr.r.logger != nil {
		tr.r.logger.Infow("firing trigger action",
			logger.FieldAttr, s.Attr,
			logger.FieldAction, t.Action,
			logger.FieldCount, len(params),
		)
	}

	if err := tr.handler.Fire(t.Action, params); err != nil {
		return errors.Wrapf(err, "action %q fired by trigger %q", t.Action, t.Attr)
	}
	return nil
}
