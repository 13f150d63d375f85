// Package ottest provides an honest oblivious transfer sender and CRS
// sampling for tests.
package ottest

import (
	"errors"
	"io"
	"math/big"

	"github.com/f3rmion/ucot/group"
	"github.com/f3rmion/ucot/kdf"
	"github.com/f3rmion/ucot/ot"
)

// NewCRS samples g0, g1, h0, h1 as independent random powers of the
// generator.
func NewCRS(g group.Group, rng io.Reader) (*ot.CRS, error) {
	var es [4]group.Element
	for i := range es {
		k, err := nonZeroScalar(g, rng)
		if err != nil {
			return nil, err
		}
		if es[i], err = g.Exponentiate(g.Generator(), k); err != nil {
			return nil, err
		}
	}
	return ot.NewCRS(g, es[0], es[1], es[2], es[3])
}

func nonZeroScalar(g group.Group, rng io.Reader) (*big.Int, error) {
	for {
		k, err := g.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		if k.Sign() != 0 {
			return k, nil
		}
	}
}

// Sender is the honest sender of the DDH oblivious transfer.
type Sender struct {
	Group group.Group
	CRS   *ot.CRS
	KDF   kdf.KDF
	Rand  io.Reader
}

// Respond answers the receiver's first message with encryptions of x0
// and x1.
func (s *Sender) Respond(m *ot.ReceiverMessage, x0, x1 []byte) (*ot.SenderMessage, error) {
	if len(x0) != len(x1) {
		return nil, errors.New("sender inputs differ in length")
	}
	k := s.KDF
	if k == nil {
		k = kdf.Default()
	}
	gs := [2]group.Element{s.CRS.G0, s.CRS.G1}
	hs := [2]group.Element{s.CRS.H0, s.CRS.H1}
	xs := [2][]byte{x0, x1}

	var us [2]group.Element
	var cs [2][]byte
	for b := 0; b < 2; b++ {
		sb, err := s.Group.RandomScalar(s.Rand)
		if err != nil {
			return nil, err
		}
		tb, err := s.Group.RandomScalar(s.Rand)
		if err != nil {
			return nil, err
		}
		ks := []*big.Int{sb, tb}
		if us[b], err = s.Group.SimultaneousMultiExponentiate([]group.Element{gs[b], hs[b]}, ks); err != nil {
			return nil, err
		}
		v, err := s.Group.SimultaneousMultiExponentiate([]group.Element{m.G, m.H}, ks)
		if err != nil {
			return nil, err
		}
		seed, err := s.Group.MapToBytes(v)
		if err != nil {
			return nil, err
		}
		mask, err := k.DeriveKey(seed, len(xs[b]))
		if err != nil {
			return nil, err
		}
		cs[b] = make([]byte, len(xs[b]))
		for i := range cs[b] {
			cs[b][i] = xs[b][i] ^ mask[i]
		}
	}
	return &ot.SenderMessage{U0: us[0], U1: us[1], C0: cs[0], C1: cs[1]}, nil
}
