package sva

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shaungallagher/derived-attributes/errors"
	"github.com/shaungallagher/derived-attributes/logger"
	"github.com/shaungallagher/derived-attributes/sva/queryjson"
)

// Options provides optional configuration for the derivation engines.
// Zero values select defaults.
type Options struct {
	// Path evaluates JSONPath query verbs. Default: queryjson.NewJSONPath().
	Path PathQuerier
	// Expr evaluates the parse_jsonata verb. Default: queryjson.NewJSONata().
	Expr ExprQuerier
	// Logger for debug output. Default: nil, no logging.
	Logger *zap.SugaredLogger
	// Now is the clock used by the date-window verbs. Default: time.Now.
	Now func() time.Time
	// PrivatePrefix marks intermediate attributes. Default: "_".
	PrivatePrefix string
	// DateLayouts are tried in order when parsing date strings.
	// Default: RFC 3339, then common date and datetime layouts.
	DateLayouts []string
}

// DefaultDateLayouts are the layouts tried when Options.DateLayouts is
// empty.
var DefaultDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// resolver is the shared core of the derivation variants: the sentence
// table, the source document, and the recursive memoizing evaluation.
type resolver struct {
	sentences []Sentence
	index     map[string]int // attr -> position in sentences
	source    any
	env       verbEnv
	logger    *zap.SugaredLogger
	prefix    string

	// onResult, when set, runs after each sentence's value is memoized.
	// The triggers variant uses it to fire actions mid-evaluation.
	onResult func(ec *evalContext, s *Sentence, result any) error
}

// evalContext is the per-Derive mutable state: the memo table, the
// computation order, and the in-progress markers for cycle detection.
// A fresh context is created for every Derive call and never shared.
type evalContext struct {
	memo       map[string]any
	order      []string
	inProgress map[string]struct{}
	stack      []string
}

func newEvalContext() *evalContext {
	return &evalContext{
		memo:       make(map[string]any),
		inProgress: make(map[string]struct{}),
	}
}

func newResolver(sentences []Sentence, source any, opts Options) (*resolver, error) {
	if opts.Path == nil {
		opts.Path = queryjson.NewJSONPath()
	}
	if opts.Expr == nil {
		opts.Expr = queryjson.NewJSONata()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PrivatePrefix == "" {
		opts.PrivatePrefix = DefaultPrivatePrefix
	}
	if len(opts.DateLayouts) == 0 {
		opts.DateLayouts = DefaultDateLayouts
	}

	index := make(map[string]int, len(sentences))
	for i := range sentences {
		s := &sentences[i]
		if err := s.Validate(opts.Path, opts.Expr); err != nil {
			return nil, err
		}
		if _, exists := index[s.Attr]; exists {
			return nil, errors.Wrapf(errors.ErrDuplicateAttribute, "attribute %q defined more than once", s.Attr)
		}
		index[s.Attr] = i
	}

	return &resolver{
		sentences: sentences,
		index:     index,
		source:    source,
		env: verbEnv{
			path:    opts.Path,
			expr:    opts.Expr,
			now:     opts.Now,
			layouts: opts.DateLayouts,
		},
		logger: opts.Logger,
		prefix: opts.PrivatePrefix,
	}, nil
}

// evaluateAll ensures every sentence has a memo entry. Sentences are
// visited in listed order, but dependency resolution is depth-first and
// on-demand, so the effective evaluation order follows the reference
// graph whenever forward references exist.
func (r *resolver) evaluateAll(ec *evalContext) error {
	for i := range r.sentences {
		s := &r.sentences[i]
		if _, done := ec.memo[s.Attr]; done {
			continue
		}
		if _, err := r.evaluateAttribute(ec, s); err != nil {
			return err
		}
	}
	return nil
}

// evaluateAttribute computes and memoizes one sentence's value,
// recursively resolving its subject and (for joining verbs) its object.
func (r *resolver) evaluateAttribute(ec *evalContext, s *Sentence) (any, error) {
	if v, ok := ec.memo[s.Attr]; ok {
		return v, nil
	}
	if _, busy := ec.inProgress[s.Attr]; busy {
		return nil, cycleError(ec.stack, s.Attr)
	}
	ec.inProgress[s.Attr] = struct{}{}
	ec.stack = append(ec.stack, s.Attr)
	defer func() {
		delete(ec.inProgress, s.Attr)
		ec.stack = ec.stack[:len(ec.stack)-1]
	}()

	var subject any
	if s.Subject == SourceSubject {
		subject = r.source
	} else {
		var err error
		subject, err = r.resolveReference(ec, s.Subject, s.Attr)
		if err != nil {
			return nil, err
		}
	}

	// Verb existence was checked at construction.
	verb, _ := LookupVerb(s.Verb)

	object := s.Object
	switch {
	case verb.Joining():
		// The object is itself an attribute reference, never a literal.
		name, err := r.resolveReference(ec, s.Object.(string), s.Attr)
		if err != nil {
			return nil, err
		}
		object = name
	case verb.QueryVerb():
		// The object passes through verbatim as the query expression.
	default:
		// A plain object that names an already-memoized attribute is
		// substituted; anything else passes through as a literal.
		if name, ok := s.Object.(string); ok {
			if v, memoized := ec.memo[name]; memoized {
				object = v
			}
		}
	}

	result, err := verb.fn(&r.env, subject, object)
	if err != nil {
		return nil, &VerbError{Attr: s.Attr, Verb: s.Verb, Err: err}
	}

	ec.memo[s.Attr] = result
	ec.order = append(ec.order, s.Attr)

	if r.logger != nil {
		r.logger.Debugw("attribute evaluated",
			logger.FieldAttr, s.Attr,
			logger.FieldVerb, s.Verb,
			logger.FieldValue, result,
		)
	}

	if r.onResult != nil {
		if err := r.onResult(ec, s, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// resolveReference returns the value of the attribute called name,
// using the memo if present and evaluating its sentence otherwise.
func (r *resolver) resolveReference(ec *evalContext, name, referencedBy string) (any, error) {
	if v, ok := ec.memo[name]; ok {
		return v, nil
	}
	i, ok := r.index[name]
	if !ok {
		return nil, &ReferenceError{Missing: name, ReferencedBy: referencedBy}
	}
	return r.evaluateAttribute(ec, &r.sentences[i])
}

// public projects the memo down to non-private attributes.
func (r *resolver) public(ec *evalContext) map[string]any {
	result := make(map[string]any, len(ec.memo))
	for attr, v := range ec.memo {
		if strings.HasPrefix(attr, r.prefix) {
			continue
		}
		result[attr] = v
	}
	return result
}

// cycleError trims the in-progress stack to the portion forming the
// cycle and closes the loop with the re-entered attribute.
func cycleError(stack []string, attr string) error {
	cycle := stack
	for i, name := range stack {
		if name == attr {
			cycle = stack[i:]
			break
		}
	}
	return &CycleError{Cycle: append(append([]string{}, cycle...), attr)}
}
