package sva

import (
	"fmt"
	"strings"

	"github.com/shaungallagher/derived-attributes/errors"
)

// ReferenceError reports a sentence whose subject or joining object
// names an attribute no sentence defines. Matches
// errors.ErrMissingAttribute.
type ReferenceError struct {
	// Missing is the attribute name with no defining sentence.
	Missing string
	// ReferencedBy is the Attr of the sentence holding the reference.
	ReferencedBy string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("attribute %q referenced by sentence %q is not defined by any sentence",
		e.Missing, e.ReferencedBy)
}

// Is makes the error match the ErrMissingAttribute sentinel.
func (e *ReferenceError) Is(target error) bool {
	return target == errors.ErrMissingAttribute
}

// CycleError reports a reference cycle in the sentence graph. Matches
// errors.ErrCyclicDependency.
type CycleError struct {
	// Cycle lists the attributes along the cycle; the first element is
	// repeated at the end.
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency between attributes: %s", strings.Join(e.Cycle, " -> "))
}

// Is makes the error match the ErrCyclicDependency sentinel.
func (e *CycleError) Is(target error) bool {
	return target == errors.ErrCyclicDependency
}

// VerbError reports a verb function rejecting its operands during
// evaluation of a sentence. Matches errors.ErrVerbEvaluation.
type VerbError struct {
	Attr string
	Verb string
	Err  error
}

func (e *VerbError) Error() string {
	return fmt.Sprintf("verb %q failed evaluating attribute %q: %v", e.Verb, e.Attr, e.Err)
}

func (e *VerbError) Unwrap() error { return e.Err }

// Is makes the error match the ErrVerbEvaluation sentinel.
func (e *VerbError) Is(target error) bool {
	return target == errors.ErrVerbEvaluation
}
