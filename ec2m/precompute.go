package ec2m

import (
	"math/big"

	"github.com/f3rmion/ucot/backend"
	"github.com/f3rmion/ucot/group"
)

// ExponentiateWithPrecomputedBase returns base^k using a fixed-base table
// built on first use and cached for the lifetime of the group. Tables
// cover scalars up to the bit length of q; wider or negative scalars are
// handled by plain exponentiation.
func (g *Group) ExponentiateWithPrecomputedBase(base group.Element, k *big.Int) (group.Element, error) {
	el, err := g.element(base)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, errNilScalar
	}
	if el.p.Inf {
		return g.id, nil
	}
	if k.Sign() < 0 || k.BitLen() > g.params.Q.BitLen() {
		return g.Exponentiate(base, k)
	}

	t, err := g.table(el)
	if err != nil {
		return nil, err
	}
	p, err := g.arith.FixedBaseMul(t, k)
	if err != nil {
		return nil, err
	}
	return &Element{g: g, p: p}, nil
}

// table returns the cached table for el, building it if needed. Concurrent
// first requests for the same base share a single build.
func (g *Group) table(el *Element) (*backend.FixedBaseTable, error) {
	key := string(g.mapToBytes(el))
	if t, ok := g.tables.Load(key); ok {
		return t.(*backend.FixedBaseTable), nil
	}
	v, err, _ := g.flight.Do(key, func() (interface{}, error) {
		if t, ok := g.tables.Load(key); ok {
			return t, nil
		}
		t, err := g.arith.NewFixedBaseTable(el.p, g.cfg.window, g.params.Q.BitLen())
		if err != nil {
			return nil, err
		}
		actual, _ := g.tables.LoadOrStore(key, t)
		return actual, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*backend.FixedBaseTable), nil
}

// PrecomputedBases returns the number of cached base tables.
func (g *Group) PrecomputedBases() int {
	n := 0
	g.tables.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}
