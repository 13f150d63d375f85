// Package backend is the raw point-arithmetic boundary for binary-field
// elliptic curves y^2 + xy = x^3 + ax^2 + b.
//
// The [Arithmetic] interface is deliberately narrow: point creation,
// addition, doubling, negation, scalar multiplication, batched
// multi-scalar multiplication, fixed-base tables and the curve equation
// test. It knows nothing about subgroups, element ownership or protocols.
// Its output is never treated as validated by the packages above it.
//
// The backend must be initialized with [Load] before any curve is bound
// with [Bind]. Load is idempotent and safe for concurrent use:
//
//	if err := backend.Load(); err != nil {
//		return err
//	}
//	arith, err := backend.Bind(backend.CurveSpec{M: 163, Exponents: []int{7, 6, 3}, A: a, B: b})
//
// The bundled binding is pure Go and uses affine coordinates throughout.
package backend
