package ec2m

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/f3rmion/ucot/backend"
	"github.com/f3rmion/ucot/group"
)

// Batched reports whether SimultaneousMultiExponentiate over n bases uses
// the batched algorithm rather than n separate exponentiations.
func (g *Group) Batched(n int) bool {
	if g.params.Koblitz && g.cfg.koblitzFallback {
		return false
	}
	return n >= g.cfg.threshold
}

// SimultaneousMultiExponentiate returns the product of bases[i]^ks[i].
//
// Koblitz curves and inputs with fewer bases than the configured threshold
// are computed one exponentiation at a time. Otherwise the backend
// interleaves all scalars so that doublings are shared. Both paths give
// the same result.
func (g *Group) SimultaneousMultiExponentiate(bases []group.Element, ks []*big.Int) (group.Element, error) {
	if len(bases) != len(ks) {
		return nil, group.ErrLengthMismatch
	}
	if !g.Batched(len(bases)) {
		return group.NaiveMultiExponentiate(g, bases, ks)
	}

	points := make([]backend.Point, len(bases))
	for i, b := range bases {
		el, err := g.element(b)
		if err != nil {
			return nil, err
		}
		if ks[i] == nil {
			return nil, errNilScalar
		}
		points[i] = el.p
	}
	p, err := g.arith.MultiScalarMul(points, ks, ecc.MultiExpConfig{NbTasks: g.cfg.tasks})
	if err != nil {
		return nil, err
	}
	return &Element{g: g, p: p}, nil
}
