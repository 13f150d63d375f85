package ot

import (
	"fmt"

	"github.com/f3rmion/ucot/group"
)

// CRS is the common reference string (g0, g1, h0, h1). It must not be a
// DDH tuple; establishing it honestly is the job of session setup.
type CRS struct {
	G0, G1, H0, H1 group.Element
}

// NewCRS checks that the four elements are non-identity members of g.
func NewCRS(g group.Group, g0, g1, h0, h1 group.Element) (*CRS, error) {
	crs := &CRS{G0: g0, G1: g1, H0: h0, H1: h1}
	if err := crs.validate(g); err != nil {
		return nil, err
	}
	return crs, nil
}

func (c *CRS) validate(g group.Group) error {
	names := [4]string{"g0", "g1", "h0", "h1"}
	for i, e := range [4]group.Element{c.G0, c.G1, c.H0, c.H1} {
		if e == nil || !g.IsMember(e) || e.IsIdentity() {
			return &ConfigError{
				Group: g.Name(),
				Err:   fmt.Errorf("%w: %s", ErrInvalidCRS, names[i]),
			}
		}
	}
	return nil
}
