package sva

import (
	"sort"
	"time"

	"github.com/shaungallagher/derived-attributes/errors"
)

// VerbKind classifies how a verb's object operand is resolved.
type VerbKind string

const (
	// KindPlain verbs take the object as a literal, or as an
	// already-memoized attribute value when the object names one.
	KindPlain VerbKind = "plain"
	// KindJoining verbs require the object to be an attribute reference,
	// evaluated eagerly before the verb runs.
	KindJoining VerbKind = "joining"
	// KindQuery verbs take the object verbatim as a JSONPath expression
	// evaluated against the subject.
	KindQuery VerbKind = "query"
	// KindExpr verbs take the object verbatim as a JSONata expression
	// evaluated against the subject.
	KindExpr VerbKind = "expr"
)

// verbEnv carries the collaborators a verb function may need. It is
// owned by the resolver and shared by all verb invocations of a run.
type verbEnv struct {
	path    PathQuerier
	expr    ExprQuerier
	now     func() time.Time
	layouts []string
}

type verbFunc func(env *verbEnv, subject, object any) (any, error)

// Verb is one entry in the immutable verb catalog.
type Verb struct {
	Name string
	Kind VerbKind
	fn   verbFunc
}

// Joining reports whether the verb requires eager evaluation of its
// object as an attribute reference.
func (v Verb) Joining() bool { return v.Kind == KindJoining }

// QueryVerb reports whether the verb's object is a structured-query
// expression rather than a literal or reference.
func (v Verb) QueryVerb() bool { return v.Kind == KindQuery || v.Kind == KindExpr }

// The process-wide verb catalog. Never mutated after init.
var verbs = map[string]Verb{
	// Query verbs: evaluate the object as a JSONPath expression against
	// the subject, optionally folding the matches.
	"parse":        queryVerb("parse", queryOne),
	"parse_list":   queryVerb("parse_list", queryAllRaw),
	"parse_len":    queryVerb("parse_len", queryAgg(aggLen)),
	"parse_sum":    queryVerb("parse_sum", queryAgg(aggSum)),
	"parse_min":    queryVerb("parse_min", queryAgg(aggMin)),
	"parse_max":    queryVerb("parse_max", queryAgg(aggMax)),
	"parse_mean":   queryVerb("parse_mean", queryAgg(aggMean)),
	"parse_median": queryVerb("parse_median", queryAgg(aggMedian)),

	// Functional query verb: evaluate the object as a JSONata expression.
	"parse_jsonata": {Name: "parse_jsonata", Kind: KindExpr, fn: evalJSONata},

	// Numeric comparisons: both operands coerced to float64.
	">":  compareVerb(">", func(a, b float64) bool { return a > b }),
	"<":  compareVerb("<", func(a, b float64) bool { return a < b }),
	"=":  compareVerb("=", func(a, b float64) bool { return a == b }),
	"!=": compareVerb("!=", func(a, b float64) bool { return a != b }),

	// Raw equality: no coercion.
	"eq":  {Name: "eq", Kind: KindPlain, fn: rawEq(false)},
	"neq": {Name: "neq", Kind: KindPlain, fn: rawEq(true)},

	// Boolean joins: both operands are attribute references.
	"and": boolJoin("and", func(a, b bool) bool { return a && b }),
	"or":  boolJoin("or", func(a, b bool) bool { return a || b }),

	// Aggregates over an already-resolved sequence subject.
	"len":    aggVerb("len", aggLen),
	"sum":    aggVerb("sum", aggSum),
	"min":    aggVerb("min", aggMin),
	"max":    aggVerb("max", aggMax),
	"mean":   aggVerb("mean", aggMean),
	"median": aggVerb("median", aggMedian),

	// Elementwise division of two equal-length numeric sequences.
	"list_divide": {Name: "list_divide", Kind: KindJoining, fn: listDivide},

	// Date windows against now minus N days.
	"within_last_days":      {Name: "within_last_days", Kind: KindPlain, fn: withinLastDays},
	"list_within_last_days": {Name: "list_within_last_days", Kind: KindPlain, fn: listWithinLastDays},
}

// LookupVerb returns the catalog entry for name.
func LookupVerb(name string) (Verb, bool) {
	v, ok := verbs[name]
	return v, ok
}

// VerbNames returns every registered verb name, sorted.
func VerbNames() []string {
	names := make([]string, 0, len(verbs))
	for name := range verbs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func queryVerb(name string, fn verbFunc) Verb {
	return Verb{Name: name, Kind: KindQuery, fn: fn}
}

func queryOne(env *verbEnv, subject, object any) (any, error) {
	expr, err := objectExpr(object)
	if err != nil {
		return nil, err
	}
	val, found, err := env.path.QueryOne(subject, expr)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return val, nil
}

func queryAllRaw(env *verbEnv, subject, object any) (any, error) {
	expr, err := objectExpr(object)
	if err != nil {
		return nil, err
	}
	return env.path.QueryAll(subject, expr)
}

// queryAgg runs QueryAll then folds the matches with agg.
func queryAgg(agg func([]any) (any, error)) verbFunc {
	return func(env *verbEnv, subject, object any) (any, error) {
		expr, err := objectExpr(object)
		if err != nil {
			return nil, err
		}
		matches, err := env.path.QueryAll(subject, expr)
		if err != nil {
			return nil, err
		}
		return agg(matches)
	}
}

func evalJSONata(env *verbEnv, subject, object any) (any, error) {
	expr, err := objectExpr(object)
	if err != nil {
		return nil, err
	}
	return env.expr.Evaluate(subject, expr)
}

func objectExpr(object any) (string, error) {
	expr, ok := object.(string)
	if !ok || expr == "" {
		return "", errors.ErrMissingObject
	}
	return expr, nil
}

func compareVerb(name string, op func(a, b float64) bool) Verb {
	return Verb{Name: name, Kind: KindPlain, fn: func(_ *verbEnv, subject, object any) (any, error) {
		a, err := toFloat(subject)
		if err != nil {
			return nil, err
		}
		b, err := toFloat(object)
		if err != nil {
			return nil, err
		}
		return op(a, b), nil
	}}
}

func rawEq(negate bool) verbFunc {
	return func(_ *verbEnv, subject, object any) (any, error) {
		eq := rawEqual(subject, object)
		if negate {
			return !eq, nil
		}
		return eq, nil
	}
}

func boolJoin(name string, op func(a, b bool) bool) Verb {
	return Verb{Name: name, Kind: KindJoining, fn: func(_ *verbEnv, subject, object any) (any, error) {
		a, err := toBool(subject)
		if err != nil {
			return nil, err
		}
		b, err := toBool(object)
		if err != nil {
			return nil, err
		}
		return op(a, b), nil
	}}
}

func aggVerb(name string, agg func([]any) (any, error)) Verb {
	return Verb{Name: name, Kind: KindPlain, fn: func(_ *verbEnv, subject, _ any) (any, error) {
		items, err := toList(subject)
		if err != nil {
			return nil, err
		}
		return agg(items)
	}}
}

func listDivide(_ *verbEnv, subject, object any) (any, error) {
	nums, err := toFloatList(subject)
	if err != nil {
		return nil, err
	}
	dens, err := toFloatList(object)
	if err != nil {
		return nil, err
	}
	if len(nums) != len(dens) {
		return nil, errors.Newf("list_divide requires equal-length sequences, got %d and %d", len(nums), len(dens))
	}
	out := make([]any, len(nums))
	for i := range nums {
		if dens[i] == 0 {
			return nil, errors.Newf("division by zero at index %d", i)
		}
		out[i] = nums[i] / dens[i]
	}
	return out, nil
}

func withinLastDays(env *verbEnv, subject, object any) (any, error) {
	t, err := toTime(subject, env.layouts)
	if err != nil {
		return nil, err
	}
	days, err := toFloat(object)
	if err != nil {
		return nil, err
	}
	return inWindow(env.now(), t, days), nil
}

func listWithinLastDays(env *verbEnv, subject, object any) (any, error) {
	items, err := toList(subject)
	if err != nil {
		return nil, err
	}
	days, err := toFloat(object)
	if err != nil {
		return nil, err
	}
	now := env.now()
	out := make([]any, 0, len(items))
	for _, item := range items {
		t, err := toTime(item, env.layouts)
		if err != nil {
			return nil, err
		}
		if inWindow(now, t, days) {
			out = append(out, item)
		}
	}
	return out, nil
}

func inWindow(now, t time.Time, days float64) bool {
	window := time.Duration(days * 24 * float64(time.Hour))
	return now.Sub(t) <= window
}
