package backend

import (
	"errors"
	"math/big"
)

// FixedBaseTable holds the multiples j * 2^(w*i) * P for every window
// position i and digit j of a w-bit window. It is immutable once built
// and may be shared between goroutines.
type FixedBaseTable struct {
	owner  *affineCurve
	window int
	rows   [][]Point
}

// Window returns the window width in bits.
func (t *FixedBaseTable) Window() int {
	return t.window
}

// Bits returns the widest scalar the table covers.
func (t *FixedBaseTable) Bits() int {
	return t.window * len(t.rows)
}

func (c *affineCurve) NewFixedBaseTable(p Point, window, bits int) (*FixedBaseTable, error) {
	if window < 1 || window > 8 {
		return nil, errors.New("window must be between 1 and 8 bits")
	}
	if bits < 1 {
		return nil, errors.New("table must cover at least one bit")
	}
	nrows := (bits + window - 1) / window
	width := 1 << uint(window)

	rows := make([][]Point, nrows)
	base := p
	for i := range rows {
		row := make([]Point, width)
		row[0] = c.Infinity()
		for j := 1; j < width; j++ {
			row[j] = c.Add(row[j-1], base)
		}
		rows[i] = row
		for d := 0; d < window; d++ {
			base = c.Double(base)
		}
	}
	return &FixedBaseTable{owner: c, window: window, rows: rows}, nil
}

// FixedBaseMul adds one table entry per window of k, with no doublings.
func (c *affineCurve) FixedBaseMul(t *FixedBaseTable, k *big.Int) (Point, error) {
	if t.owner != c {
		return Point{}, ErrForeignState
	}
	if k.Sign() < 0 || k.BitLen() > t.Bits() {
		return Point{}, ErrScalarRange
	}
	r := c.Infinity()
	for i, row := range t.rows {
		digit := 0
		for b := t.window - 1; b >= 0; b-- {
			digit = digit<<1 | int(k.Bit(i*t.window+b))
		}
		if digit != 0 {
			r = c.Add(r, row[digit])
		}
	}
	return r, nil
}
