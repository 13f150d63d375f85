// Package group defines the discrete-logarithm group abstraction used by
// the oblivious transfer protocols in this module.
//
// A [Group] is a capability set: every realization provides the whole
// contract, and properties that differ between realizations are reported
// as data rather than encoded in the type system. The hardness
// assumptions a group satisfies are returned by [Group.Assumptions], so a
// protocol that needs DDH checks for it at construction time:
//
//	if !g.Assumptions().Has(group.DDH) {
//		return errors.New("group is not DDH-secure")
//	}
//
// # Elements
//
// An [Element] is an immutable value owned by the group that produced it.
// Operations that combine elements take them through the group, never
// through methods on the element, so the group can verify ownership and
// return [ErrTypeMismatch] for foreign values:
//
//	h, err := g.Multiply(a, b)
//	x, err := g.Exponentiate(h, k)
//
// Scalars are plain *big.Int values. Exponentiation does not reduce
// scalars modulo the order, since elements constructed from trusted data
// are not guaranteed to lie in the prime-order subgroup.
//
// # Validation
//
// Values received from a peer arrive as [ElementData] and are turned into
// elements with [Group.Reconstruct]. Unless the caller asserts that the
// data is trusted, reconstruction verifies full subgroup membership.
// Neither Reconstruct nor [Group.IsMember] return errors: invalid input is
// an expected condition under attack and is reported as a boolean.
//
// The binary-field elliptic curve realization lives in the ec2m package.
package group
