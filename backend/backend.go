package backend

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/f3rmion/ucot/gf2m"
)

var (
	// ErrNotLoaded is returned by Bind before Load has succeeded.
	ErrNotLoaded = errors.New("arithmetic backend not loaded")
	// ErrForeignState is returned when a value produced by one bound curve
	// is passed to another.
	ErrForeignState = errors.New("value belongs to a different curve binding")
	// ErrScalarRange is returned when a scalar does not fit a fixed-base table.
	ErrScalarRange = errors.New("scalar outside precomputed table range")
	// ErrLengthMismatch is returned when points and scalars differ in count.
	ErrLengthMismatch = errors.New("number of points and scalars differ")
)

// Point is a raw affine point on a bound curve. Inf marks the point at
// infinity, in which case X and Y are ignored.
//
// The backend makes no claim that a Point lies on the curve, let alone in
// a prime-order subgroup.
type Point struct {
	X, Y gf2m.Element
	Inf  bool
}

// CurveSpec describes the curve y^2 + xy = x^3 + ax^2 + b over GF(2^M).
type CurveSpec struct {
	M         int
	Exponents []int
	A, B      *big.Int
}

// Arithmetic is the raw point-operation contract of one bound curve.
//
// Implementations do no validation beyond what each method documents.
// Callers own membership checks and must not mix values between bindings.
type Arithmetic interface {
	// Field returns the underlying binary field.
	Field() *gf2m.Field
	// Infinity returns the point at infinity.
	Infinity() Point
	// CreatePoint builds a point from affine coordinates. Only the field
	// range is checked.
	CreatePoint(x, y *big.Int) (Point, error)
	// IsOnCurve evaluates the curve equation at p.
	IsOnCurve(p Point) bool
	// Equal reports whether p and q are the same point.
	Equal(p, q Point) bool
	// Add returns p + q.
	Add(p, q Point) Point
	// Double returns 2p.
	Double(p Point) Point
	// Negate returns -p.
	Negate(p Point) Point
	// ScalarMul returns k*p. Negative k is allowed.
	ScalarMul(p Point, k *big.Int) Point
	// MultiScalarMul returns the sum of ks[i]*ps[i], split across
	// cfg.NbTasks concurrent tasks.
	MultiScalarMul(ps []Point, ks []*big.Int, cfg ecc.MultiExpConfig) (Point, error)
	// NewFixedBaseTable precomputes multiples of p for scalars of up to
	// bits bits, window bits at a time.
	NewFixedBaseTable(p Point, window, bits int) (*FixedBaseTable, error)
	// FixedBaseMul returns k*p for the base of t.
	FixedBaseMul(t *FixedBaseTable, k *big.Int) (Point, error)
}

var (
	loadOnce sync.Once
	loadErr  error
	loaded   atomic.Bool
)

// Load initializes the backend. It is safe to call any number of times
// from any goroutine; only the first call does work, and every call
// returns the result of that first call.
func Load() error {
	loadOnce.Do(func() {
		loadErr = selfTest()
		loaded.Store(loadErr == nil)
	})
	return loadErr
}

// Bind returns the arithmetic for the curve described by spec. Load must
// have succeeded first.
func Bind(spec CurveSpec) (Arithmetic, error) {
	if !loaded.Load() {
		return nil, ErrNotLoaded
	}
	f, err := gf2m.New(spec.M, spec.Exponents...)
	if err != nil {
		return nil, err
	}
	a, err := f.FromBig(spec.A)
	if err != nil {
		return nil, fmt.Errorf("coefficient a: %w", err)
	}
	b, err := f.FromBig(spec.B)
	if err != nil {
		return nil, fmt.Errorf("coefficient b: %w", err)
	}
	if f.IsZero(b) {
		return nil, errors.New("coefficient b must be non-zero")
	}
	return &affineCurve{f: f, a: a, b: b}, nil
}

// selfTest checks field inversion on GF(2^11) before any curve is bound.
func selfTest() error {
	f, err := gf2m.New(11, 2)
	if err != nil {
		return err
	}
	x, _ := f.FromUint64(0x5a3)
	inv, err := f.Inv(x)
	if err != nil {
		return err
	}
	if !f.Equal(f.Mul(x, inv), f.One()) {
		return errors.New("backend self test failed: field inversion")
	}
	return nil
}
