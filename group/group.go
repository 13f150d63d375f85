package group

import (
	"io"
	"math/big"
)

// Element is an element of a discrete-logarithm group. Elements are
// immutable and belong to exactly one [Group]; every Group method rejects
// elements produced by another group with [ErrTypeMismatch].
type Element interface {
	// IsIdentity reports whether the element is the group identity.
	IsIdentity() bool
	// Equal reports whether the receiver and b are the same element of
	// the same group.
	Equal(b Element) bool
}

// ElementData is the group-independent form of an element used for wire
// transfer. Coordinates are big-endian. Infinity marks the identity, in
// which case X and Y are empty.
type ElementData struct {
	X        []byte `cbor:"x,omitempty"`
	Y        []byte `cbor:"y,omitempty"`
	Infinity bool   `cbor:"inf,omitempty"`
}

// Assumption is a set of hardness assumptions believed to hold in a group.
type Assumption uint8

const (
	// DLog is the discrete-logarithm assumption.
	DLog Assumption = 1 << iota
	// CDH is the computational Diffie-Hellman assumption.
	CDH
	// DDH is the decisional Diffie-Hellman assumption.
	DDH
)

// Has reports whether every assumption in b is in a.
func (a Assumption) Has(b Assumption) bool {
	return a&b == b
}

func (a Assumption) String() string {
	s := ""
	for _, x := range []struct {
		flag Assumption
		name string
	}{{DLog, "DLog"}, {CDH, "CDH"}, {DDH, "DDH"}} {
		if a.Has(x.flag) {
			if s != "" {
				s += "|"
			}
			s += x.name
		}
	}
	if s == "" {
		return "none"
	}
	return s
}

// Group is a cyclic group of prime order q in which the discrete logarithm
// problem is assumed hard. The group is written multiplicatively.
//
// Implementations are immutable after construction and safe for
// concurrent use.
//
// Example usage:
//
//	g, _ := ec2m.New(ec2m.K163)
//	r, _ := g.RandomScalar(rand.Reader)
//	h, _ := g.Exponentiate(g.Generator(), r)
type Group interface {
	// Name identifies the group, for example "K-163".
	Name() string
	// Assumptions returns the hardness assumptions the group satisfies.
	Assumptions() Assumption

	// Generator returns the distinguished generator of the order-q subgroup.
	Generator() Element
	// Order returns q.
	Order() *big.Int
	// Identity returns the identity element.
	Identity() Element
	// IsMember reports whether e is a valid element of the order-q
	// subgroup. It never fails; foreign elements are not members.
	IsMember(e Element) bool

	// Invert returns e^-1.
	Invert(e Element) (Element, error)
	// Multiply returns a*b.
	Multiply(a, b Element) (Element, error)
	// Exponentiate returns base^k.
	Exponentiate(base Element, k *big.Int) (Element, error)
	// SimultaneousMultiExponentiate returns the product of bases[i]^ks[i].
	SimultaneousMultiExponentiate(bases []Element, ks []*big.Int) (Element, error)
	// ExponentiateWithPrecomputedBase returns base^k, caching a table for
	// base so that later calls with the same base are faster.
	ExponentiateWithPrecomputedBase(base Element, k *big.Int) (Element, error)

	// Encode returns the sendable form of e.
	Encode(e Element) (*ElementData, error)
	// Reconstruct rebuilds an element from its sendable form. Unless
	// trusted is set, the result must pass IsMember. It never fails; ok
	// reports whether d described an acceptable element.
	Reconstruct(trusted bool, d *ElementData) (e Element, ok bool)
	// MapToBytes returns an injective byte encoding of e suitable as KDF
	// input. The mapping is not onto.
	MapToBytes(e Element) ([]byte, error)
	// EncodeBytes maps an arbitrary byte string to an element.
	// Groups that cannot do so return ErrNotSupported.
	EncodeBytes(b []byte) (Element, error)
	// DecodeToBytes inverts EncodeBytes.
	// Groups that cannot do so return ErrNotSupported.
	DecodeToBytes(e Element) ([]byte, error)

	// RandomScalar returns a uniform scalar in [0, q) read from r.
	RandomScalar(r io.Reader) (*big.Int, error)
}
