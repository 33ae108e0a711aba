package body

import (
	"errors"
	"fmt"
	"log/slog"
)

// Sentinel errors for the taxonomy in spec.md §7. Wrapped with fmt.Errorf's
// %w verb at the call site, matching the error-wrapping convention observed
// throughout the retrieval pack (e.g. Gekko3D's gpu manager files).
var (
	// ErrInvalidMass is returned by BecomeDynamic for a non-positive or
	// non-finite mass. SetMass/SetInverseMass return no error; for such a
	// mass they make the body kinematic instead.
	ErrInvalidMass = errors.New("body: invalid mass")

	// ErrNonOrthogonalBasis is returned by JointBasis setters when the
	// supplied axes are not mutually perpendicular within BigEpsilon.
	ErrNonOrthogonalBasis = errors.New("body: basis axes are not orthogonal")

	// ErrInvalidArgument mirrors spec.md's InvalidArgumentError — a
	// broad-phase entry of an unexpected type handed to code that
	// expects a *RigidBody.
	ErrInvalidArgument = errors.New("body: invalid argument")
)

// InvalidMassError wraps ErrInvalidMass with the offending value.
func InvalidMassError(mass float64) error {
	return fmt.Errorf("%w: mass=%v must be finite and > 0 to enter dynamic mode", ErrInvalidMass, mass)
}

// NonOrthogonalBasisError wraps ErrNonOrthogonalBasis with the offending
// dot product.
func NonOrthogonalBasisError(dot float64) error {
	return fmt.Errorf("%w: |dot|=%v exceeds BigEpsilon", ErrNonOrthogonalBasis, dot)
}

// InvalidArgumentError wraps ErrInvalidArgument with the dynamic type of
// the value that was received.
func InvalidArgumentError(got interface{}) error {
	return fmt.Errorf("%w: unexpected type %T", ErrInvalidArgument, got)
}

// mathValidator receives ValidatedMathFailure reports (spec.md §7). It is a
// package variable rather than a parameter threaded through every setter so
// that callers never have to plumb a logger through the hot-path impulse
// routines; tests can swap it for a recording stub via SetMathValidator.
var mathValidator = slog.Default()

// SetMathValidator overrides the slog.Logger used to report
// ValidatedMathFailure occurrences. Intended for tests that want to assert
// on (or silence) the diagnostic output.
func SetMathValidator(logger *slog.Logger) {
	mathValidator = logger
}

// reportMathFailure implements spec.md §7's ValidatedMathFailure: under the
// debugphysics build tag it panics (see errors_debug.go); in the default
// build it logs via log/slog and returns. The pose and velocity setters
// then still store the offending value and activate the body; the impulse
// routines instead discard a non-finite impulse and leave the velocities
// unchanged.
func reportMathFailure(op string, field string) {
	debugAssertFinite(op, field)
	mathValidator.Warn("validated-math failure", "op", op, "field", field)
}
