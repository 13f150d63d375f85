package ot

import (
	"errors"
	"fmt"
)

// Errors that indicate a defect in the caller or the integration rather
// than misbehaviour of the peer.
var (
	ErrInvalidChoice    = errors.New("choice bit must be 0 or 1")
	ErrSecretConsumed   = errors.New("receiver secret already consumed")
	ErrMalformedMessage = errors.New("malformed protocol message")
)

// Configuration errors, wrapped in a *ConfigError.
var (
	ErrNotDDH     = errors.New("group does not satisfy the DDH assumption")
	ErrInvalidCRS = errors.New("invalid common reference string")
)

// ErrCheatAttempt is matched by every *CheatError with errors.Is.
var ErrCheatAttempt = errors.New("cheat attempt")

// Check names a validation step of the sender message.
type Check int

const (
	// CheckU0Membership fails when u0 is not in the prime-order subgroup.
	CheckU0Membership Check = iota + 1
	// CheckU1Membership fails when u1 is not in the prime-order subgroup.
	CheckU1Membership
	// CheckCiphertextLength fails when c0 and c1 differ in length.
	CheckCiphertextLength
)

func (c Check) String() string {
	switch c {
	case CheckU0Membership:
		return "u0 element is not a member of the group"
	case CheckU1Membership:
		return "u1 element is not a member of the group"
	case CheckCiphertextLength:
		return "c0 and c1 differ in length"
	default:
		return fmt.Sprintf("check(%d)", int(c))
	}
}

// CheatError reports a sender message that failed validation. It names the
// failed check and nothing else; in particular it never carries receiver
// secrets. A cheat attempt ends the protocol run.
type CheatError struct {
	Check Check
}

func (e *CheatError) Error() string {
	return "cheat attempt: " + e.Check.String()
}

// Is makes errors.Is(err, ErrCheatAttempt) hold for any CheatError.
func (e *CheatError) Is(target error) bool {
	return target == ErrCheatAttempt
}

// ConfigError is returned when a receiver cannot be built from the given
// group and reference string.
type ConfigError struct {
	// Group is the name of the offending group.
	Group string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("group %s: %s", e.Group, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
