package gf2m

import (
	"bytes"
	"errors"
	"math/big"
	"math/rand"
	"testing"
	"testing/quick"
)

func mustField(t *testing.T, m int, ks ...int) *Field {
	t.Helper()
	f, err := New(m, ks...)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func randomElement(f *Field, rng *rand.Rand) Element {
	e := f.Zero()
	for i := range e {
		e[i] = rng.Uint64()
	}
	if r := f.m % 64; r != 0 {
		e[len(e)-1] &= (1 << uint(r)) - 1
	}
	return e
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		m       int
		ks      []int
		wantErr bool
	}{
		{"trinomial", 233, []int{74}, false},
		{"pentanomial", 163, []int{7, 6, 3}, false},
		{"pentanomial unordered", 283, []int{5, 12, 7}, false},
		{"no exponents", 163, nil, true},
		{"two exponents", 163, []int{7, 6}, true},
		{"exponent too large", 11, []int{11}, true},
		{"zero exponent", 11, []int{0}, true},
		{"duplicate exponent", 163, []int{7, 7, 3}, true},
		{"degree too small", 1, []int{1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.m, tt.ks...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%d, %v) error = %v, wantErr %v", tt.m, tt.ks, err, tt.wantErr)
			}
		})
	}

	f := mustField(t, 283, 5, 12, 7)
	if got := f.Exponents(); got[0] != 12 || got[1] != 7 || got[2] != 5 {
		t.Errorf("exponents not sorted descending: %v", got)
	}
}

func TestKnownValues(t *testing.T) {
	f := mustField(t, 11, 2)
	x, _ := f.FromUint64(0x5a3)
	y, _ := f.FromUint64(0x1f7)

	if got := f.Big(f.Mul(x, y)); got.Uint64() != 0x7d0 {
		t.Errorf("0x5a3 * 0x1f7 = %#x, want 0x7d0", got)
	}
	inv, err := f.Inv(x)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Big(inv); got.Uint64() != 0x4f2 {
		t.Errorf("0x5a3^-1 = %#x, want 0x4f2", got)
	}
	if _, err := f.FromUint64(1 << 11); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestFieldAxioms(t *testing.T) {
	fields := []*Field{
		mustField(t, 11, 2),
		mustField(t, 64, 4, 3, 1),
		mustField(t, 163, 7, 6, 3),
		mustField(t, 233, 74),
		mustField(t, 283, 12, 7, 5),
	}
	for _, f := range fields {
		f := f
		rng := rand.New(rand.NewSource(int64(f.m)))
		cfg := &quick.Config{MaxCount: 50, Rand: rng}

		t.Run("inverse", func(t *testing.T) {
			prop := func() bool {
				x := randomElement(f, rng)
				if f.IsZero(x) {
					return true
				}
				inv, err := f.Inv(x)
				if err != nil {
					return false
				}
				return f.Equal(f.Mul(x, inv), f.One())
			}
			if err := quick.Check(prop, cfg); err != nil {
				t.Errorf("m=%d: %v", f.m, err)
			}
		})

		t.Run("square", func(t *testing.T) {
			prop := func() bool {
				x := randomElement(f, rng)
				return f.Equal(f.Square(x), f.Mul(x, x))
			}
			if err := quick.Check(prop, cfg); err != nil {
				t.Errorf("m=%d: %v", f.m, err)
			}
		})

		t.Run("distributive", func(t *testing.T) {
			prop := func() bool {
				x, y, z := randomElement(f, rng), randomElement(f, rng), randomElement(f, rng)
				lhs := f.Mul(x, f.Add(y, z))
				rhs := f.Add(f.Mul(x, y), f.Mul(x, z))
				return f.Equal(lhs, rhs)
			}
			if err := quick.Check(prop, cfg); err != nil {
				t.Errorf("m=%d: %v", f.m, err)
			}
		})

		t.Run("frobenius", func(t *testing.T) {
			// x^(2^m) == x in GF(2^m).
			x := randomElement(f, rng)
			y := x
			for i := 0; i < f.m; i++ {
				y = f.Square(y)
			}
			if !f.Equal(x, y) {
				t.Errorf("m=%d: x^(2^m) != x", f.m)
			}
		})
	}
}

func TestInvZero(t *testing.T) {
	f := mustField(t, 163, 7, 6, 3)
	if _, err := f.Inv(f.Zero()); !errors.Is(err, ErrNotInvertible) {
		t.Fatalf("expected ErrNotInvertible, got %v", err)
	}
}

func TestEncoding(t *testing.T) {
	f := mustField(t, 163, 7, 6, 3)
	gx, _ := new(big.Int).SetString("02FE13C0537BBC11ACAA07D793DE4E6D5E5C94EEE8", 16)

	x, err := f.FromBig(gx)
	if err != nil {
		t.Fatal(err)
	}
	enc := f.Bytes(x)
	if len(enc) != 21 {
		t.Fatalf("encoding length = %d, want 21", len(enc))
	}
	if !bytes.Equal(enc, gx.FillBytes(make([]byte, 21))) {
		t.Errorf("encoding mismatch: %x", enc)
	}
	if f.Big(x).Cmp(gx) != 0 {
		t.Error("Big round trip failed")
	}

	padded := append([]byte{0, 0, 0}, enc...)
	y, err := f.SetBytes(padded)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Equal(x, y) {
		t.Error("leading zeros changed the value")
	}

	tooWide := new(big.Int).Lsh(big.NewInt(1), 163)
	if _, err := f.FromBig(tooWide); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for 2^163, got %v", err)
	}
	if _, err := f.FromBig(big.NewInt(-1)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for -1, got %v", err)
	}
}
