package prg

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/crypto/chacha20"
)

// SeedSize is the seed length in bytes.
const SeedSize = chacha20.KeySize

// PRG is a pseudorandom generator reading the ChaCha20 keystream of its
// seed. It implements io.Reader and is not safe for concurrent use.
type PRG struct {
	c *chacha20.Cipher
}

// New returns a generator expanding seed, which must be SeedSize bytes.
// The same seed always yields the same stream.
func New(seed []byte) (*PRG, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed, nonce[:])
	if err != nil {
		return nil, err
	}
	return &PRG{c: c}, nil
}

// NewRandom returns a generator seeded from crypto/rand.
func NewRandom() (*PRG, error) {
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, err
	}
	return New(seed)
}

// Read fills b with the next len(b) keystream bytes. It never fails.
func (p *PRG) Read(b []byte) (int, error) {
	for i := range b {
		b[i] = 0
	}
	p.c.XORKeyStream(b, b)
	return len(b), nil
}

// ChoiceBits reads n uniformly random choice bits from r.
func ChoiceBits(r io.Reader, n uint) (*bitset.BitSet, error) {
	buf := make([]byte, (n+7)/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	bits := bitset.New(n)
	for i := uint(0); i < n; i++ {
		if buf[i/8]>>(i%8)&1 == 1 {
			bits.Set(i)
		}
	}
	return bits, nil
}
