package ot

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/f3rmion/ucot/group"
	"github.com/f3rmion/ucot/kdf"
)

// Security is a set of security properties a protocol party achieves.
type Security uint8

const (
	// Malicious means security holds against actively corrupted peers.
	Malicious Security = 1 << iota
	// UC means the protocol is universally composable.
	UC
)

// Has reports whether every property in b is in s.
func (s Security) Has(b Security) bool {
	return s&b == b
}

// ReceiverMessage is the receiver's first flow (g, h) = (gσ^r, hσ^r).
type ReceiverMessage struct {
	G, H group.Element
}

// SenderMessage is the sender's reply. C0 and C1 must have equal length.
type SenderMessage struct {
	U0, U1 group.Element
	C0, C1 []byte
}

// Secret holds the receiver's choice bit and randomness for one run. It
// is consumed by the first call to Receiver.Receive, whatever the outcome.
type Secret struct {
	sigma    byte
	r        *big.Int
	consumed bool
}

// Sigma returns the choice bit.
func (s *Secret) Sigma() byte {
	return s.sigma
}

// Consumed reports whether the secret has been used.
func (s *Secret) Consumed() bool {
	return s.consumed
}

// Receiver is the receiver of the UC-secure DDH-based 1-out-of-2
// oblivious transfer on byte strings. It holds no per-run state and may
// serve many runs, each with its own Secret.
type Receiver struct {
	group group.Group
	crs   *CRS
	kdf   kdf.KDF
}

// NewReceiver returns a receiver over g using crs. It fails with a
// *ConfigError if g does not satisfy DDH or crs is not made of group
// members. A nil k selects kdf.Default.
func NewReceiver(g group.Group, crs *CRS, k kdf.KDF) (*Receiver, error) {
	if !g.Assumptions().Has(group.DDH) {
		return nil, &ConfigError{Group: g.Name(), Err: ErrNotDDH}
	}
	if crs == nil {
		return nil, &ConfigError{Group: g.Name(), Err: ErrInvalidCRS}
	}
	if err := crs.validate(g); err != nil {
		return nil, err
	}
	if k == nil {
		k = kdf.Default()
	}
	return &Receiver{group: g, crs: crs, kdf: k}, nil
}

// Security reports the guarantees of this receiver.
func (r *Receiver) Security() Security {
	return Malicious | UC
}

// Group returns the group the receiver works in.
func (r *Receiver) Group() group.Group {
	return r.group
}

// Setup samples r uniformly from [0, q) and returns the secret together
// with the first message (gσ^r, hσ^r).
func (r *Receiver) Setup(rng io.Reader, sigma byte) (*Secret, *ReceiverMessage, error) {
	if sigma > 1 {
		return nil, nil, ErrInvalidChoice
	}
	k, err := r.group.RandomScalar(rng)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sample receiver randomness: %w", err)
	}

	gs := [2]group.Element{r.crs.G0, r.crs.G1}
	hs := [2]group.Element{r.crs.H0, r.crs.H1}
	// CRS elements are reused across runs, so cache their tables.
	g, err := r.group.ExponentiateWithPrecomputedBase(gs[sigma], k)
	if err != nil {
		return nil, nil, err
	}
	h, err := r.group.ExponentiateWithPrecomputedBase(hs[sigma], k)
	if err != nil {
		return nil, nil, err
	}
	return &Secret{sigma: sigma, r: k}, &ReceiverMessage{G: g, H: h}, nil
}

// ValidateSenderMessage checks that u0 and u1 are group members and that
// c0 and c1 have the same length. Failures are *CheatError values naming
// the failed check.
func (r *Receiver) ValidateSenderMessage(u0, u1 group.Element, c0, c1 []byte) error {
	if !r.group.IsMember(u0) {
		return &CheatError{Check: CheckU0Membership}
	}
	if !r.group.IsMember(u1) {
		return &CheatError{Check: CheckU1Membership}
	}
	if len(c0) != len(c1) {
		return &CheatError{Check: CheckCiphertextLength}
	}
	return nil
}

// ComputeOutput returns cσ XOR KDF(uσ^r, |cσ|). It must only be called on
// a message that passed ValidateSenderMessage. The unchosen pair is
// never used beyond the selection.
func (r *Receiver) ComputeOutput(sigma byte, k *big.Int, u0, u1 group.Element, c0, c1 []byte) ([]byte, error) {
	if sigma > 1 {
		return nil, ErrInvalidChoice
	}
	if k == nil {
		return nil, errors.New("missing receiver randomness")
	}
	us := [2]group.Element{u0, u1}
	cs := [2][]byte{c0, c1}
	u, c := us[sigma], cs[sigma]

	kdfInput, err := r.group.Exponentiate(u, k)
	if err != nil {
		return nil, err
	}
	seed, err := r.group.MapToBytes(kdfInput)
	if err != nil {
		return nil, err
	}
	mask, err := r.kdf.DeriveKey(seed, len(c))
	if err != nil {
		return nil, fmt.Errorf("key derivation failed: %w", err)
	}
	if len(mask) != len(c) {
		return nil, fmt.Errorf("key derivation returned %d bytes, want %d", len(mask), len(c))
	}

	out := make([]byte, len(c))
	for i := range out {
		out[i] = c[i] ^ mask[i]
	}
	return out, nil
}

// Receive validates msg and computes the chosen output. The secret is
// consumed before validation, so a detected cheat attempt also ends the
// run.
func (r *Receiver) Receive(s *Secret, msg *SenderMessage) ([]byte, error) {
	if s == nil || msg == nil {
		return nil, ErrMalformedMessage
	}
	if s.consumed {
		return nil, ErrSecretConsumed
	}
	s.consumed = true
	defer s.zero()

	if err := r.ValidateSenderMessage(msg.U0, msg.U1, msg.C0, msg.C1); err != nil {
		return nil, err
	}
	return r.ComputeOutput(s.sigma, s.r, msg.U0, msg.U1, msg.C0, msg.C1)
}

// Discard consumes the secret without running the protocol and clears
// its randomness. Use it when a run is abandoned before Receive.
func (s *Secret) Discard() {
	if s == nil {
		return
	}
	s.consumed = true
	s.zero()
}

// zero clears the randomness. This is best effort; the runtime may have
// copied the value.
func (s *Secret) zero() {
	if s.r != nil {
		s.r.SetInt64(0)
	}
}
