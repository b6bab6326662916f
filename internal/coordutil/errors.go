// Package coordutil holds the input-validation contract and small angle
// utilities shared by the astrometric reduction and camera projection
// engines.
//
// Every whole-call precondition failure in the engines is reported as an
// *InputError carrying a Kind, so callers can branch on the failure cause
// programmatically rather than by matching message text. Per-element
// numerical invalidity (a NaN coordinate) is never an error; it propagates
// as NaN through every downstream stage.
package coordutil

import "fmt"

// Kind classifies an InputError so callers can distinguish failure causes
// without parsing messages.
type Kind int

const (
	// KindMissingContext means a required observation-context field (mjd,
	// pointing, rotation angle, epoch) was absent.
	KindMissingContext Kind = iota

	// KindLengthMismatch means two parallel coordinate slices had
	// different lengths.
	KindLengthMismatch

	// KindBadContainer means a nil slice was passed where a populated
	// coordinate slice is required.
	KindBadContainer

	// KindMissingCollaborator means no camera model or no site was
	// supplied to an operation that needs one.
	KindMissingCollaborator

	// KindConflictingArgs means mutually exclusive argument sets were
	// supplied together.
	KindConflictingArgs
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindMissingContext:
		return "missing context"
	case KindLengthMismatch:
		return "length mismatch"
	case KindBadContainer:
		return "bad container"
	case KindMissingCollaborator:
		return "missing collaborator"
	case KindConflictingArgs:
		return "conflicting arguments"
	}
	return "unknown"
}

// InputError is the single error taxonomy for whole-call precondition
// failures in the coordinate engines. It is raised synchronously at function
// entry; no partial results accompany it.
type InputError struct {
	Kind Kind
	Op   string // operation that rejected the call, e.g. "pixelCoordsFromRaDec"
	msg  string
}

func (e *InputError) Error() string {
	return e.Op + ": " + e.msg
}

// NilArg reports a nil slice passed for the named argument.
func NilArg(op, arg string) error {
	return &InputError{
		Kind: KindBadContainer,
		Op:   op,
		msg:  fmt.Sprintf("the arg %s must be a non-nil float64 slice", arg),
	}
}

// LengthMismatch reports two parallel slices of different lengths, naming
// both arguments and both observed lengths.
func LengthMismatch(op, nameA string, lenA int, nameB string, lenB int) error {
	return &InputError{
		Kind: KindLengthMismatch,
		Op:   op,
		msg:  fmt.Sprintf("you passed %d %s and %d %s coordinates", lenA, nameA, lenB, nameB),
	}
}

// CountMismatch reports a secondary per-point argument (such as a chip-name
// list) whose length does not match the point count.
func CountMismatch(op string, points int, name string, n int) error {
	return &InputError{
		Kind: KindLengthMismatch,
		Op:   op,
		msg:  fmt.Sprintf("you passed %d points but %d %s", points, n, name),
	}
}

// NilNames reports a nil string slice passed for the named argument.
func NilNames(op, arg string) error {
	return &InputError{
		Kind: KindBadContainer,
		Op:   op,
		msg:  fmt.Sprintf("the arg %s must be a non-nil string slice", arg),
	}
}

// MissingContext reports an absent required context field by name.
func MissingContext(op, field string) error {
	return &InputError{
		Kind: KindMissingContext,
		Op:   op,
		msg:  "you need an observation context with " + field,
	}
}

// NoContext reports a missing observation context altogether.
func NoContext(op string) error {
	return &InputError{
		Kind: KindMissingContext,
		Op:   op,
		msg:  "you need to pass an observation context",
	}
}

// NoCamera reports a missing camera model.
func NoCamera(op string) error {
	return &InputError{
		Kind: KindMissingCollaborator,
		Op:   op,
		msg:  "no camera specified",
	}
}

// NoSite reports a missing observing site.
func NoSite(op string) error {
	return &InputError{
		Kind: KindMissingCollaborator,
		Op:   op,
		msg:  "no site specified",
	}
}

// UnknownDetector reports a chip name the camera model does not know.
func UnknownDetector(op, name string) error {
	return &InputError{
		Kind: KindMissingCollaborator,
		Op:   op,
		msg:  fmt.Sprintf("the camera has no detector named %q", name),
	}
}

// Conflicting reports two argument sets that may not be supplied together.
func Conflicting(op, a, b string) error {
	return &InputError{
		Kind: KindConflictingArgs,
		Op:   op,
		msg:  fmt.Sprintf("specify %s or %s, not both", a, b),
	}
}
