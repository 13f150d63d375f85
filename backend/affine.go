package backend

import (
	"fmt"
	"math/big"
	"runtime"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/f3rmion/ucot/gf2m"
	"golang.org/x/sync/errgroup"
)

// affineCurve is the pure-Go binding. All formulas are affine and pay one
// field inversion per addition or doubling.
type affineCurve struct {
	f    *gf2m.Field
	a, b gf2m.Element
}

func (c *affineCurve) Field() *gf2m.Field {
	return c.f
}

func (c *affineCurve) Infinity() Point {
	return Point{Inf: true}
}

func (c *affineCurve) CreatePoint(x, y *big.Int) (Point, error) {
	fx, err := c.f.FromBig(x)
	if err != nil {
		return Point{}, fmt.Errorf("x coordinate: %w", err)
	}
	fy, err := c.f.FromBig(y)
	if err != nil {
		return Point{}, fmt.Errorf("y coordinate: %w", err)
	}
	return Point{X: fx, Y: fy}, nil
}

// IsOnCurve checks y^2 + xy = x^3 + ax^2 + b. Infinity is on every curve.
func (c *affineCurve) IsOnCurve(p Point) bool {
	if p.Inf {
		return true
	}
	f := c.f
	x2 := f.Square(p.X)
	lhs := f.Add(f.Square(p.Y), f.Mul(p.X, p.Y))
	rhs := f.Add(f.Add(f.Mul(x2, p.X), f.Mul(c.a, x2)), c.b)
	return f.Equal(lhs, rhs)
}

func (c *affineCurve) Equal(p, q Point) bool {
	if p.Inf || q.Inf {
		return p.Inf == q.Inf
	}
	return c.f.Equal(p.X, q.X) && c.f.Equal(p.Y, q.Y)
}

// Negate returns (x, x + y).
func (c *affineCurve) Negate(p Point) Point {
	if p.Inf {
		return p
	}
	return Point{X: p.X, Y: c.f.Add(p.X, p.Y)}
}

func (c *affineCurve) Add(p, q Point) Point {
	if p.Inf {
		return q
	}
	if q.Inf {
		return p
	}
	f := c.f
	if f.Equal(p.X, q.X) {
		if f.Equal(p.Y, q.Y) {
			return c.Double(p)
		}
		return c.Infinity()
	}
	sx := f.Add(p.X, q.X)
	// sx is non-zero since the x coordinates differ.
	inv, _ := f.Inv(sx)
	lambda := f.Mul(f.Add(p.Y, q.Y), inv)
	x3 := f.Add(f.Add(f.Square(lambda), lambda), f.Add(sx, c.a))
	y3 := f.Add(f.Add(f.Mul(lambda, f.Add(p.X, x3)), x3), p.Y)
	return Point{X: x3, Y: y3}
}

func (c *affineCurve) Double(p Point) Point {
	f := c.f
	if p.Inf || f.IsZero(p.X) {
		return c.Infinity()
	}
	inv, _ := f.Inv(p.X)
	lambda := f.Add(p.X, f.Mul(p.Y, inv))
	x3 := f.Add(f.Add(f.Square(lambda), lambda), c.a)
	y3 := f.Add(f.Square(p.X), f.Mul(f.Add(lambda, f.One()), x3))
	return Point{X: x3, Y: y3}
}

// ScalarMul runs a left-to-right double-and-add over the NAF of |k|.
func (c *affineCurve) ScalarMul(p Point, k *big.Int) Point {
	if p.Inf || k.Sign() == 0 {
		return c.Infinity()
	}
	abs := new(big.Int).Abs(k)
	if k.Sign() < 0 {
		p = c.Negate(p)
	}
	naf := make([]int8, abs.BitLen()+1)
	n := ecc.NafDecomposition(abs, naf)
	neg := c.Negate(p)

	r := c.Infinity()
	for i := n - 1; i >= 0; i-- {
		r = c.Double(r)
		switch naf[i] {
		case 1:
			r = c.Add(r, p)
		case -1:
			r = c.Add(r, neg)
		}
	}
	return r
}

// MultiScalarMul interleaves the NAFs of all scalars so that the doublings
// are shared. The inputs are split into cfg.NbTasks chunks whose partial
// sums are computed concurrently.
func (c *affineCurve) MultiScalarMul(ps []Point, ks []*big.Int, cfg ecc.MultiExpConfig) (Point, error) {
	if len(ps) != len(ks) {
		return Point{}, ErrLengthMismatch
	}
	if len(ps) == 0 {
		return c.Infinity(), nil
	}
	tasks := cfg.NbTasks
	if tasks <= 0 {
		tasks = runtime.NumCPU()
	}
	if tasks > len(ps) {
		tasks = len(ps)
	}
	chunk := (len(ps) + tasks - 1) / tasks

	partial := make([]Point, tasks)
	var eg errgroup.Group
	for t := 0; t < tasks; t++ {
		lo := t * chunk
		hi := lo + chunk
		if hi > len(ps) {
			hi = len(ps)
		}
		if lo >= hi {
			partial[t] = c.Infinity()
			continue
		}
		t := t
		eg.Go(func() error {
			partial[t] = c.interleaved(ps[lo:hi], ks[lo:hi])
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Point{}, err
	}

	r := c.Infinity()
	for _, p := range partial {
		r = c.Add(r, p)
	}
	return r, nil
}

func (c *affineCurve) interleaved(ps []Point, ks []*big.Int) Point {
	nafs := make([][]int8, len(ps))
	pos := make([]Point, len(ps))
	neg := make([]Point, len(ps))
	longest := 0
	for i, k := range ks {
		abs := new(big.Int).Abs(k)
		p := ps[i]
		if k.Sign() < 0 {
			p = c.Negate(p)
		}
		naf := make([]int8, abs.BitLen()+1)
		n := ecc.NafDecomposition(abs, naf)
		nafs[i] = naf[:n]
		pos[i] = p
		neg[i] = c.Negate(p)
		if n > longest {
			longest = n
		}
	}

	r := c.Infinity()
	for bit := longest - 1; bit >= 0; bit-- {
		r = c.Double(r)
		for i, naf := range nafs {
			if bit >= len(naf) {
				continue
			}
			switch naf[bit] {
			case 1:
				r = c.Add(r, pos[i])
			case -1:
				r = c.Add(r, neg[i])
			}
		}
	}
	return r
}
