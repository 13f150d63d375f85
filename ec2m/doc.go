// Package ec2m implements [group.Group] over the prime-order subgroup of an
// elliptic curve y^2 + xy = x^3 + ax^2 + b defined over a binary field
// GF(2^m).
//
// A group is built from a [Params] record, either one of the named NIST
// curves or custom parameters:
//
//	g, err := ec2m.New(ec2m.B233)
//	if err != nil {
//		return err
//	}
//	x, err := g.Exponentiate(g.Generator(), k)
//
// All point arithmetic is delegated to the backend package. This package
// owns validation: it checks that elements belong to the group that
// operates on them, performs the two-step membership test (curve equation,
// then order q) and never treats backend output as a validated member.
//
// # Exponentiation strategies
//
// [Group.SimultaneousMultiExponentiate] picks between one exponentiation per
// base and a batched interleaved algorithm. Koblitz curves and inputs with
// fewer than [DefaultMultiExpThreshold] bases take the sequential path.
// Both the threshold and the Koblitz rule are options, see
// [WithMultiExpThreshold] and [WithKoblitzFallback].
//
// [Group.ExponentiateWithPrecomputedBase] keeps one fixed-base table per
// distinct base. Tables are built lazily, shared by all goroutines using
// the group, and never evicted, so it is meant for a small set of
// long-lived bases such as a common reference string.
//
// Mapping arbitrary byte strings to points is not supported on binary
// curves; [Group.EncodeBytes] and [Group.DecodeToBytes] return
// [group.ErrNotSupported].
package ec2m
