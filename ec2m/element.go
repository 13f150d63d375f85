package ec2m

import (
	"fmt"
	"math/big"

	"github.com/f3rmion/ucot/backend"
	"github.com/f3rmion/ucot/group"
)

// Element is a point of a [Group]: either the point at infinity or an
// affine pair (x, y). Elements are immutable.
type Element struct {
	g *Group
	p backend.Point
}

// IsIdentity reports whether e is the point at infinity.
func (e *Element) IsIdentity() bool {
	return e.p.Inf
}

// Equal reports whether b is the same point of the same group.
func (e *Element) Equal(b group.Element) bool {
	o, ok := b.(*Element)
	if !ok || o == nil || o.g != e.g {
		return false
	}
	return e.g.arith.Equal(e.p, o.p)
}

// X returns the affine x coordinate, or nil for the identity.
func (e *Element) X() *big.Int {
	if e.p.Inf {
		return nil
	}
	return e.g.arith.Field().Big(e.p.X)
}

// Y returns the affine y coordinate, or nil for the identity.
func (e *Element) Y() *big.Int {
	if e.p.Inf {
		return nil
	}
	return e.g.arith.Field().Big(e.p.Y)
}

func (e *Element) String() string {
	if e.p.Inf {
		return "O"
	}
	return fmt.Sprintf("(%#x, %#x)", e.X(), e.Y())
}
