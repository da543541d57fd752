// Package backref implements the backtracking fallback engine for patterns
// that cannot be compiled to a DFA: backreferences, counted quantifiers,
// zero-width assertions whose acceptance depends on captured positions, and
// capturing groups combined with lookaround.
//
// The package consumes a pre-built Program (a directed graph of States
// connected by Transitions carrying group-boundary updates and quantifier
// guards) and drives it with an explicit backtrack stack rather than
// recursion, so pathological patterns degrade in heap usage instead of blowing
// the Go call stack. Compiling a pattern into a Program, lowering an AST,
// Unicode property tables, and the outer "try every start position" loop all
// live outside this package; see Engine and Cursor for the seams.
package backref

import (
	"errors"
	"strconv"
)

// Common backref errors.
var (
	// ErrUnreachableState is returned when a State carries a kind the
	// dispatcher or updater does not recognize, or when getNewIndex hits an
	// impossible branch. It signals a corrupt Program.
	ErrUnreachableState = errors.New("backref: unreachable state kind")

	// ErrMissingSubExecutor is returned when a Lookaround state references a
	// sub-executor index with no registered Engine.
	ErrMissingSubExecutor = errors.New("backref: no sub-executor registered for lookaround")

	// ErrCancelled is returned when the host's cancellation flag was observed
	// at a dispatcher safepoint. It is not a retryable error.
	ErrCancelled = errors.New("backref: match cancelled")
)

// FatalError wraps an internal invariant violation with the state that
// triggered it, in the wrap-with-state style this repository's error types
// use throughout.
type FatalError struct {
	State StateID
	Err   error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	if e.State == InvalidState {
		return "backref: " + e.Err.Error()
	}
	return "backref: at state " + strconv.Itoa(int(e.State)) + ": " + e.Err.Error()
}

// Unwrap returns the underlying sentinel error.
func (e *FatalError) Unwrap() error {
	return e.Err
}
