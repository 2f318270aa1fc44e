// Package errs defines the fatal error taxonomy raised by the orchestrator
// and its collaborators. Each kind is a sentinel; callers wrap it with
// fmt.Errorf("...: %w", Err...) to attach the offending sub-expression or
// state, and check it with errors.Is.
package errs

import "errors"

var (
	// ErrMalformedInput is raised when the JSON document is absent, the
	// wrong shape, or missing a required field.
	ErrMalformedInput = errors.New("malformed input")

	// ErrMalformedNetwork is raised on a structurally invalid network:
	// variable max <= 0, unknown regulator/target, non-ascending
	// thresholds, a bad context interval index, an out-of-range target
	// value, or a context whose interval count does not match its
	// regulator count.
	ErrMalformedNetwork = errors.New("malformed network")

	// ErrMalformedFormula is raised on a syntax error, a Negation over a
	// state-stratum operator, an AP over an undeclared variable, or an
	// initial-state value outside [0, max].
	ErrMalformedFormula = errors.New("malformed formula")

	// ErrInvalidOperator is raised when an atomic operator other than
	// >= or <= is encountered at evaluation time.
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrInternalInvariant is raised when a precondition of the evaluator
	// is violated (a child label is unset when its parent runs). It
	// signals a bug in this module, never bad user data.
	ErrInternalInvariant = errors.New("internal invariant violated")
)
