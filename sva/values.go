package sva

import (
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shaungallagher/derived-attributes/errors"
)

// Values flow through verbs as JSON shapes: nil, bool, float64 (plus the
// other numeric kinds JSON parsers produce), string, []any, and
// map[string]any. The helpers below bridge those shapes into the operand
// types each verb needs, failing with a descriptive error on mismatch.

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, errors.Newf("cannot coerce %q to number", x.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, errors.Newf("cannot coerce %q to number", x)
		}
		return f, nil
	default:
		return 0, errors.Newf("cannot coerce %T to number", v)
	}
}

func toBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, errors.Newf("expected boolean operand, got %T", v)
	}
	return b, nil
}

func toList(v any) ([]any, error) {
	switch x := v.(type) {
	case []any:
		return x, nil
	case nil:
		return nil, errors.New("expected sequence operand, got null")
	}
	// Typed slices ([]float64, []string, ...) from callers that bypass
	// JSON decoding still count as sequences.
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, errors.Newf("expected sequence operand, got %T", v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

func toFloatList(v any) ([]float64, error) {
	items, err := toList(v)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat(item)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out[i] = f
	}
	return out, nil
}

func toTime(v any, layouts []string) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		for _, layout := range layouts {
			if t, err := time.Parse(layout, x); err == nil {
				return t, nil
			}
		}
		return time.Time{}, errors.Newf("cannot parse %q as a date (layouts: %s)", x, strings.Join(layouts, ", "))
	default:
		return time.Time{}, errors.Newf("cannot coerce %T to date", v)
	}
}

// rawEqual compares without numeric coercion, except that it treats the
// numeric kinds JSON parsers disagree on (float64 vs int64) as the same
// kind when both sides are numbers of equal value.
func rawEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	af, aerr := numericValue(a)
	bf, berr := numericValue(b)
	if aerr == nil && berr == nil {
		return af == bf
	}
	return false
}

// numericValue is toFloat restricted to actual numbers: strings never
// qualify, preserving eq/neq's no-coercion contract.
func numericValue(v any) (float64, error) {
	switch v.(type) {
	case string, bool, nil:
		return 0, errors.New("not a number")
	}
	return toFloat(v)
}

// Aggregate folds. min/max/mean/median over an empty sequence fail fast;
// sum of nothing is zero.

func aggLen(items []any) (any, error) {
	return len(items), nil
}

func aggSum(items []any) (any, error) {
	var total float64
	for i, item := range items {
		f, err := toFloat(item)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		total += f
	}
	return total, nil
}

func aggMin(items []any) (any, error) {
	return aggExtreme(items, "min", func(a, b float64) bool { return a < b })
}

func aggMax(items []any) (any, error) {
	return aggExtreme(items, "max", func(a, b float64) bool { return a > b })
}

func aggExtreme(items []any, name string, better func(a, b float64) bool) (any, error) {
	if len(items) == 0 {
		return nil, errors.Newf("%s of empty sequence", name)
	}
	best, err := toFloat(items[0])
	if err != nil {
		return nil, errors.Wrap(err, "element 0")
	}
	for i, item := range items[1:] {
		f, err := toFloat(item)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i+1)
		}
		if better(f, best) {
			best = f
		}
	}
	return best, nil
}

func aggMean(items []any) (any, error) {
	if len(items) == 0 {
		return nil, errors.New("mean of empty sequence")
	}
	total, err := aggSum(items)
	if err != nil {
		return nil, err
	}
	return total.(float64) / float64(len(items)), nil
}

func aggMedian(items []any) (any, error) {
	if len(items) == 0 {
		return nil, errors.New("median of empty sequence")
	}
	nums := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat(item)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		nums[i] = f
	}
	sort.Float64s(nums)
	mid := len(nums) / 2
	if len(nums)%2 == 1 {
		return nums[mid], nil
	}
	return (nums[mid-1] + nums[mid]) / 2, nil
}
