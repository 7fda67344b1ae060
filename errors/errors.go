// Package errors provides error handling for derived-attributes.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnknownVerb) {
//	    // handle invalid sentence
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf

	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the derivation engine. Use these with errors.Is()
// for type-safe error checking; wrap them with errors.Wrap() to add
// context while preserving the type.
var (
	// ErrUnknownVerb indicates a sentence names a verb absent from the registry.
	ErrUnknownVerb = New("unknown verb")

	// ErrInvalidQuerySyntax indicates a query-verb object failed syntax validation.
	ErrInvalidQuerySyntax = New("invalid query syntax")

	// ErrMissingObject indicates a query verb was given no object expression.
	ErrMissingObject = New("required query object not present")

	// ErrParamsWithoutAction indicates a trigger declares params but no action.
	ErrParamsWithoutAction = New("parameters specified without action")

	// ErrDuplicateAttribute indicates two sentences define the same attribute.
	ErrDuplicateAttribute = New("duplicate attribute")

	// ErrMissingAttribute indicates a sentence references an attribute
	// that no sentence defines.
	ErrMissingAttribute = New("attribute not defined by any sentence")

	// ErrCyclicDependency indicates the sentence graph contains a reference cycle.
	ErrCyclicDependency = New("cyclic dependency between attributes")

	// ErrVerbEvaluation indicates a verb function rejected its operands.
	ErrVerbEvaluation = New("verb evaluation failed")
)

// IsValidationError reports whether err arose from sentence construction
// rather than evaluation.
func IsValidationError(err error) bool {
	return err != nil && IsAny(err,
		ErrUnknownVerb,
		ErrInvalidQuerySyntax,
		ErrMissingObject,
		ErrParamsWithoutAction,
		ErrDuplicateAttribute,
	)
}
