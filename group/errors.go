package group

import "errors"

// These errors signal caller defects, not adversarial input. Untrusted
// data is checked with IsMember and Reconstruct, which report validity
// rather than fail.
var (
	// ErrTypeMismatch is returned when an element from another group, or
	// of another implementation, is passed to a group operation.
	ErrTypeMismatch = errors.New("element does not belong to this group")
	// ErrInvalidElement is returned when constructing an element from
	// coordinates that do not describe a point of the curve.
	ErrInvalidElement = errors.New("invalid group element")
	// ErrNotSupported is returned by operations a group cannot provide.
	ErrNotSupported = errors.New("operation not supported by this group")
	// ErrLengthMismatch is returned when bases and exponents differ in count.
	ErrLengthMismatch = errors.New("number of bases and exponents differ")
)
