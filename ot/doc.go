// Package ot implements the receiver of the UC-secure oblivious transfer
// of Peikert, Vaikuntanathan and Waters, instantiated with a DDH group in
// the common reference string model.
//
// The sender holds two byte strings x0 and x1 of equal length. The
// receiver holds a choice bit σ and learns xσ and nothing about x(1-σ),
// while the sender learns nothing about σ. Security holds against
// malicious parties and under universal composition; see
// [Receiver.Security].
//
// # Protocol
//
// Both parties share a CRS (g0, g1, h0, h1) that is not a DDH tuple.
//
//  1. The receiver samples r from [0, q) and sends g = gσ^r and h = hσ^r
//     ([Receiver.Setup]).
//  2. For each b the sender samples s, t and replies with
//     u_b = g_b^s · h_b^t and c_b = x_b XOR KDF(g^s · h^t, |x_b|).
//  3. The receiver checks that u0 and u1 are group members and that
//     |c0| = |c1|, then outputs cσ XOR KDF(uσ^r, |cσ|)
//     ([Receiver.Receive]).
//
// # Errors
//
// Validation failures caused by the sender are returned as *CheatError
// and match [ErrCheatAttempt]. They name the failed check and end the
// run; there is no retry. A group that does not satisfy DDH, or a CRS
// whose elements are not members, is rejected by [NewReceiver] with a
// *ConfigError. Misuse such as an invalid choice bit or reusing a
// [Secret] returns the plain sentinel errors of this package.
//
// Messages are encoded with CBOR by [MarshalReceiverMessage] and
// [UnmarshalSenderMessage] and their counterparts.
package ot
