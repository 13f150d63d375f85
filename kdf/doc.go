// Package kdf provides key-derivation functions that stretch a group
// element encoding into a mask of a requested length.
//
// Three constructions are available: [HKDF] over SHA-256, the [Blake3]
// extendable output function and BLAKE2Xb ([Blake2b]). They are
// interchangeable as long as both protocol parties agree on one.
package kdf
