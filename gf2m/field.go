package gf2m

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"
	"sort"
)

var (
	// ErrOutOfRange is returned when a value does not fit in the field.
	ErrOutOfRange = errors.New("value is not a field element")
	// ErrNotInvertible is returned when inverting zero.
	ErrNotInvertible = errors.New("cannot invert zero field element")
)

// Element is a field element in polynomial basis, stored as little-endian
// 64-bit words. Bit i holds the coefficient of x^i.
//
// Elements returned by a [Field] are freshly allocated and never aliased,
// so callers may treat them as immutable values.
type Element []uint64

// Field is GF(2^m) with reduction polynomial x^m + x^k1 [+ x^k2 + x^k3] + 1.
// A Field is immutable after construction and safe for concurrent use.
type Field struct {
	m     int
	ks    []int
	words int
}

// New returns the field GF(2^m) reduced by the trinomial x^m + x^k1 + 1
// (one middle exponent) or the pentanomial x^m + x^k1 + x^k2 + x^k3 + 1
// (three middle exponents). Exponents may be given in any order.
func New(m int, ks ...int) (*Field, error) {
	if m < 2 {
		return nil, fmt.Errorf("field degree must be at least 2, got %d", m)
	}
	if len(ks) != 1 && len(ks) != 3 {
		return nil, fmt.Errorf("reduction polynomial needs 1 or 3 middle exponents, got %d", len(ks))
	}
	sorted := append([]int(nil), ks...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	prev := m
	for _, k := range sorted {
		if k <= 0 || k >= prev {
			return nil, fmt.Errorf("invalid reduction exponents %v for degree %d", ks, m)
		}
		prev = k
	}
	return &Field{
		m:     m,
		ks:    sorted,
		words: (m + 63) / 64,
	}, nil
}

// Degree returns m.
func (f *Field) Degree() int {
	return f.m
}

// Exponents returns the middle exponents of the reduction polynomial in
// descending order.
func (f *Field) Exponents() []int {
	return append([]int(nil), f.ks...)
}

// ByteLen returns the length of the fixed-width encoding of an element.
func (f *Field) ByteLen() int {
	return (f.m + 7) / 8
}

// Zero returns the additive identity.
func (f *Field) Zero() Element {
	return make(Element, f.words)
}

// One returns the multiplicative identity.
func (f *Field) One() Element {
	e := f.Zero()
	e[0] = 1
	return e
}

// FromUint64 returns v as a field element.
func (f *Field) FromUint64(v uint64) (Element, error) {
	if f.m < 64 && v>>uint(f.m) != 0 {
		return nil, ErrOutOfRange
	}
	e := f.Zero()
	e[0] = v
	return e, nil
}

// FromBig converts a non-negative integer of at most m bits.
func (f *Field) FromBig(v *big.Int) (Element, error) {
	if v == nil || v.Sign() < 0 || v.BitLen() > f.m {
		return nil, ErrOutOfRange
	}
	return f.SetBytes(v.Bytes())
}

// SetBytes decodes a big-endian byte string. Leading zero bytes are
// permitted; the value must be below 2^m.
func (f *Field) SetBytes(b []byte) (Element, error) {
	e := f.Zero()
	for i := 0; i < len(b); i++ {
		v := b[len(b)-1-i]
		if v == 0 {
			continue
		}
		w := i / 8
		if w >= f.words {
			return nil, ErrOutOfRange
		}
		e[w] |= uint64(v) << (8 * uint(i%8))
	}
	if f.degree(e) >= f.m {
		return nil, ErrOutOfRange
	}
	return e, nil
}

// Bytes returns the fixed-width big-endian encoding of x.
func (f *Field) Bytes(x Element) []byte {
	out := make([]byte, f.ByteLen())
	for i := range out {
		w := i / 8
		if w >= len(x) {
			break
		}
		out[len(out)-1-i] = byte(x[w] >> (8 * uint(i%8)))
	}
	return out
}

// Big returns x as an integer.
func (f *Field) Big(x Element) *big.Int {
	return new(big.Int).SetBytes(f.Bytes(x))
}

// Equal reports whether x == y.
func (f *Field) Equal(x, y Element) bool {
	var acc uint64
	for i := 0; i < f.words; i++ {
		acc |= x[i] ^ y[i]
	}
	return acc == 0
}

// IsZero reports whether x == 0.
func (f *Field) IsZero(x Element) bool {
	var acc uint64
	for i := 0; i < f.words; i++ {
		acc |= x[i]
	}
	return acc == 0
}

// Add returns x + y, which in characteristic two is also x - y.
func (f *Field) Add(x, y Element) Element {
	z := f.Zero()
	for i := range z {
		z[i] = x[i] ^ y[i]
	}
	return z
}

// Mul returns x * y.
func (f *Field) Mul(x, y Element) Element {
	n := f.words
	t := make([]uint64, 2*n)
	sh := make([]uint64, n+1)
	copy(sh, x[:n])
	// Right-to-left comb: at step b, sh holds x << b.
	for b := uint(0); b < 64; b++ {
		for j := 0; j < n; j++ {
			if (y[j]>>b)&1 == 0 {
				continue
			}
			for i := 0; i <= n && j+i < 2*n; i++ {
				t[j+i] ^= sh[i]
			}
		}
		shiftLeft1(sh)
	}
	return f.reduce(t)
}

// Square returns x^2.
func (f *Field) Square(x Element) Element {
	n := f.words
	t := make([]uint64, 2*n)
	for i := 0; i < n; i++ {
		t[2*i] = spread(uint32(x[i]))
		t[2*i+1] = spread(uint32(x[i] >> 32))
	}
	return f.reduce(t)
}

// Inv returns x^-1 using the binary polynomial extended Euclidean
// algorithm.
func (f *Field) Inv(x Element) (Element, error) {
	if f.IsZero(x) {
		return nil, ErrNotInvertible
	}
	n := f.words + 1
	u := make([]uint64, n)
	copy(u, x[:f.words])
	v := f.modulus(n)
	g1 := make([]uint64, n)
	g1[0] = 1
	g2 := make([]uint64, n)

	for !isOne(u) {
		j := f.degree(u) - f.degree(v)
		if j < 0 {
			u, v = v, u
			g1, g2 = g2, g1
			j = -j
		}
		xorShifted(u, v, j)
		xorShifted(g1, g2, j)
	}
	z := f.Zero()
	copy(z, g1)
	return z, nil
}

// Div returns x / y.
func (f *Field) Div(x, y Element) (Element, error) {
	inv, err := f.Inv(y)
	if err != nil {
		return nil, err
	}
	return f.Mul(x, inv), nil
}

// reduce folds a double-width product back below degree m.
func (f *Field) reduce(t []uint64) Element {
	for i := 2*f.m - 2; i >= f.m; i-- {
		if (t[i/64]>>(uint(i)%64))&1 == 0 {
			continue
		}
		flipBit(t, i)
		d := i - f.m
		flipBit(t, d)
		for _, k := range f.ks {
			flipBit(t, d+k)
		}
	}
	z := f.Zero()
	copy(z, t)
	return z
}

func (f *Field) modulus(n int) []uint64 {
	p := make([]uint64, n)
	flipBit(p, f.m)
	flipBit(p, 0)
	for _, k := range f.ks {
		flipBit(p, k)
	}
	return p
}

// degree returns the polynomial degree of p, or -1 for zero.
func (f *Field) degree(p []uint64) int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return 64*i + 63 - bits.LeadingZeros64(p[i])
		}
	}
	return -1
}

func flipBit(p []uint64, i int) {
	p[i/64] ^= 1 << (uint(i) % 64)
}

func isOne(p []uint64) bool {
	if p[0] != 1 {
		return false
	}
	for _, w := range p[1:] {
		if w != 0 {
			return false
		}
	}
	return true
}

func shiftLeft1(p []uint64) {
	for i := len(p) - 1; i > 0; i-- {
		p[i] = p[i]<<1 | p[i-1]>>63
	}
	p[0] <<= 1
}

// xorShifted sets dst ^= src << j, dropping bits past the end of dst.
func xorShifted(dst, src []uint64, j int) {
	ws, bs := j/64, uint(j%64)
	for i := len(dst) - 1; i >= ws; i-- {
		w := src[i-ws] << bs
		if bs != 0 && i-ws-1 >= 0 {
			w |= src[i-ws-1] >> (64 - bs)
		}
		dst[i] ^= w
	}
}

// spread interleaves zero bits between the bits of v.
func spread(v uint32) uint64 {
	x := uint64(v)
	x = (x | x<<16) & 0x0000FFFF0000FFFF
	x = (x | x<<8) & 0x00FF00FF00FF00FF
	x = (x | x<<4) & 0x0F0F0F0F0F0F0F0F
	x = (x | x<<2) & 0x3333333333333333
	x = (x | x<<1) & 0x5555555555555555
	return x
}
