package sva

import (
	"github.com/shaungallagher/derived-attributes/errors"
)

// SourceSubject is the reserved subject binding a sentence to the root
// source document.
const SourceSubject = "source"

// DefaultPrivatePrefix marks intermediate attributes excluded from
// derivation output.
const DefaultPrivatePrefix = "_"

// Sentence is one attribute-derivation rule: Attr is defined as the
// result of applying Verb to Subject (and, depending on the verb, to
// Object).
type Sentence struct {
	// Attr names the attribute being defined. Names beginning with the
	// private prefix participate in resolution but are excluded from
	// derivation output.
	Attr string

	// Subject is either SourceSubject or the Attr of another sentence.
	Subject string

	// Verb names an entry in the verb catalog.
	Verb string

	// Object is a literal, the Attr of another sentence (for joining
	// verbs), or a query expression string (for query verbs). Nil for
	// verbs that ignore it.
	Object any
}

// Validate checks the sentence, independent of any source document:
// the verb must exist and, for query verbs, the object must be a
// syntactically valid expression. Validators may be nil to skip the
// corresponding syntax check.
func (s *Sentence) Validate(path PathQuerier, expr ExprQuerier) error {
	verb, ok := LookupVerb(s.Verb)
	if !ok {
		return errors.Wrapf(errors.ErrUnknownVerb, "sentence %q: verb %q", s.Attr, s.Verb)
	}

	switch verb.Kind {
	case KindQuery:
		queryStr, err := objectExpr(s.Object)
		if err != nil {
			return errors.Wrapf(errors.ErrMissingObject, "sentence %q (verb %q)", s.Attr, s.Verb)
		}
		if path != nil {
			if err := path.ValidateSyntax(queryStr); err != nil {
				return errors.Wrapf(errors.ErrInvalidQuerySyntax, "sentence %q: %v", s.Attr, err)
			}
		}
	case KindExpr:
		queryStr, err := objectExpr(s.Object)
		if err != nil {
			return errors.Wrapf(errors.ErrMissingObject, "sentence %q (verb %q)", s.Attr, s.Verb)
		}
		if expr != nil {
			if err := expr.ValidateSyntax(queryStr); err != nil {
				return errors.Wrapf(errors.ErrInvalidQuerySyntax, "sentence %q: %v", s.Attr, err)
			}
		}
	case KindJoining:
		if name, ok := s.Object.(string); !ok || name == "" {
			return errors.Wrapf(errors.ErrMissingObject,
				"sentence %q: joining verb %q requires an attribute reference object", s.Attr, s.Verb)
		}
	}

	return nil
}

// Trigger is a Sentence augmented with action metadata. When a trigger's
// value resolves to boolean true and Action is non-empty, the action
// fires with the resolved values of Params.
type Trigger struct {
	Sentence

	// Action names the side effect to fire.
	Action string

	// Params are attribute names whose evaluated values are passed to
	// the action, in declared order. A name with no memoized value is
	// passed through as its literal text.
	Params []string
}

// Validate checks the trigger's sentence plus its action metadata.
func (t *Trigger) Validate(path PathQuerier, expr ExprQuerier) error {
	if err := t.Sentence.Validate(path, expr); err != nil {
		return err
	}
	if len(t.Params) > 0 && t.Action == "" {
		return errors.Wrapf(errors.ErrParamsWithoutAction, "trigger %q", t.Attr)
	}
	return nil
}
