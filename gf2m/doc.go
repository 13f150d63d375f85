// Package gf2m implements arithmetic in binary extension fields GF(2^m)
// using a polynomial basis.
//
// The field is fixed by its degree m and a sparse reduction polynomial,
// either a trinomial x^m + x^k + 1 or a pentanomial
// x^m + x^k1 + x^k2 + x^k3 + 1, as used by the NIST binary curves:
//
//	f, err := gf2m.New(163, 7, 6, 3)
//	x, _ := f.FromUint64(0x5a3)
//	inv, _ := f.Inv(x)
//	one := f.Mul(x, inv)
//
// Elements are plain word slices. Every operation allocates its result,
// so an [Element] handed out by a [Field] is never modified afterwards.
//
// The arithmetic here is not constant time. Inversion in particular runs
// the extended Euclidean algorithm, whose iteration count depends on the
// input.
package gf2m
