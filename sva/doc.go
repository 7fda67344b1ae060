// Package sva (Subject-Verb-Attribute) derives named attributes from a
// JSON-shaped source document by evaluating declarative sentences.
//
// # Overview
//
// A sentence is a small statement of the form:
//
//	[Attr] = [Subject] [Verb] [Object]
//
// For example:
//   - total_vendor_count = source parse_len "$.records[*].vendors[*]"
//   - has_multiple_vendors = _vendor_count > 1
//   - alert_ops = error_rate_high and disk_full
//
// The subject is either the literal "source" (the root document) or the
// name of another attribute, which is resolved recursively. Evaluation is
// lazy, memoized, and depth-first: an attribute shared by many sentences
// is computed once per derivation, and listed order does not constrain
// reference order.
//
// # Derivation variants
//
// Three variants share the resolver:
//   - Attributes: the complete public attribute map.
//   - Rules: the ordered booleans among the public results, for use with
//     the All/Any combinators as a lightweight rules engine.
//   - Triggers: sentences carry an action name and parameter list; when a
//     trigger evaluates to true its action fires through an injected
//     ActionHandler, synchronously, as soon as its dependencies resolve.
//
// # Verbs
//
// The verb catalog is fixed, process-wide data: numeric comparisons,
// raw-equality checks, boolean joins, list aggregates, JSONPath query
// verbs (parse, parse_list, parse_len, ...), a JSONata verb
// (parse_jsonata), elementwise list division, and date-window filters.
// Query evaluation is delegated to the PathQuerier and ExprQuerier
// collaborators; the queryjson subpackage provides the default engines.
//
// # Errors
//
// Sentences are validated at construction (unknown verbs, malformed query
// expressions, trigger params without an action, duplicate attribute
// names). Runtime failures — missing references, reference cycles, operand
// type mismatches — abort the derivation with typed errors; there are no
// partial results.
package sva
