// Package prg provides a seeded pseudorandom generator built on the
// ChaCha20 stream cipher, used wherever protocol code needs an io.Reader
// of randomness that can be replayed from a seed.
package prg
