package kdf

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
)

// ErrOutputLength is returned for a negative or unsupported output length.
var ErrOutputLength = errors.New("unsupported key length")

// KDF stretches a seed into a pseudorandom key of an exact length. The
// output depends only on the seed and the length.
type KDF interface {
	DeriveKey(seed []byte, outLen int) ([]byte, error)
}

// Func adapts a function to the KDF interface.
type Func func(seed []byte, outLen int) ([]byte, error)

// DeriveKey calls f.
func (f Func) DeriveKey(seed []byte, outLen int) ([]byte, error) {
	return f(seed, outLen)
}

// HKDF is HKDF-SHA256 (RFC 5869). Outputs are limited to 255*32 bytes.
type HKDF struct {
	Salt []byte
	Info []byte
}

// DeriveKey implements KDF.
func (k *HKDF) DeriveKey(seed []byte, outLen int) ([]byte, error) {
	if outLen < 0 || outLen > 255*sha256.Size {
		return nil, fmt.Errorf("%w: %d", ErrOutputLength, outLen)
	}
	out := make([]byte, outLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, seed, k.Salt, k.Info), out); err != nil {
		return nil, err
	}
	return out, nil
}

// Blake3 reads the key from the BLAKE3 extendable output of
// Context || seed.
type Blake3 struct {
	Context []byte
}

// DeriveKey implements KDF.
func (k *Blake3) DeriveKey(seed []byte, outLen int) ([]byte, error) {
	if outLen < 0 {
		return nil, fmt.Errorf("%w: %d", ErrOutputLength, outLen)
	}
	h := blake3.New()
	h.Write(k.Context)
	h.Write(seed)

	out := make([]byte, outLen)
	if _, err := h.Digest().Read(out); err != nil {
		return nil, err
	}
	return out, nil
}

// maxBlake2bOutput is the longest fixed BLAKE2Xb output; 2^32-1 is
// reserved for unknown lengths.
const maxBlake2bOutput = 1<<32 - 2

// Blake2b uses the BLAKE2Xb extendable output function, optionally keyed.
// The output length is bound into the hash, so keys of different lengths
// derived from one seed are unrelated.
type Blake2b struct {
	Key []byte
}

// DeriveKey implements KDF.
func (k *Blake2b) DeriveKey(seed []byte, outLen int) ([]byte, error) {
	if outLen < 0 || uint64(outLen) > maxBlake2bOutput {
		return nil, fmt.Errorf("%w: %d", ErrOutputLength, outLen)
	}
	if outLen == 0 {
		return []byte{}, nil
	}
	d, err := blake2b.NewXOF(uint32(outLen), k.Key)
	if err != nil {
		return nil, err
	}
	d.Write(seed)

	out := make([]byte, outLen)
	if _, err := io.ReadFull(d, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Default returns the KDF used when none is configured.
func Default() KDF {
	return &HKDF{Info: []byte("ucot/dh-ot")}
}
