package ec2m

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/f3rmion/ucot/backend"
	"github.com/f3rmion/ucot/group"
	"golang.org/x/sync/singleflight"
)

var errNilScalar = errors.New("nil exponent")

// Group is the prime-order subgroup of a binary-field elliptic curve.
// It implements [group.Group] and is safe for concurrent use.
type Group struct {
	params Params
	cfg    config
	arith  backend.Arithmetic
	gen    *Element
	id     *Element

	// tables caches fixed-base tables keyed by MapToBytes of the base.
	// Entries are added once and never replaced.
	tables sync.Map
	flight singleflight.Group
}

var _ group.Group = (*Group)(nil)

// New builds the group described by p. The generator is checked to lie on
// the curve and to have order p.Q.
func New(p Params, opts ...Option) (*Group, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	p = p.clone()
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("curve %s: %w", p.Name, err)
	}

	if err := backend.Load(); err != nil {
		return nil, fmt.Errorf("failed to load arithmetic backend: %w", err)
	}
	arith, err := backend.Bind(backend.CurveSpec{M: p.M, Exponents: p.Basis, A: p.A, B: p.B})
	if err != nil {
		return nil, fmt.Errorf("curve %s: %w", p.Name, err)
	}

	g := &Group{params: p, cfg: cfg, arith: arith}
	g.id = &Element{g: g, p: arith.Infinity()}

	gp, err := arith.CreatePoint(p.Gx, p.Gy)
	if err != nil {
		return nil, fmt.Errorf("curve %s generator: %w: %v", p.Name, group.ErrInvalidElement, err)
	}
	if gp.Inf || !arith.IsOnCurve(gp) {
		return nil, fmt.Errorf("curve %s generator: %w: not on curve", p.Name, group.ErrInvalidElement)
	}
	if !arith.ScalarMul(gp, p.Q).Inf {
		return nil, fmt.Errorf("curve %s generator: order is not q", p.Name)
	}
	g.gen = &Element{g: g, p: gp}
	return g, nil
}

// NewNamed builds the named curve, for example "B-233".
func NewNamed(name string, opts ...Option) (*Group, error) {
	p, ok := ParamsByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown curve %q", name)
	}
	return New(p, opts...)
}

// Name returns the curve name.
func (g *Group) Name() string {
	return g.params.Name
}

// Params returns a copy of the curve parameters.
func (g *Group) Params() Params {
	return g.params.clone()
}

// Koblitz reports whether the curve is a Koblitz curve.
func (g *Group) Koblitz() bool {
	return g.params.Koblitz
}

// Assumptions reports DLog, CDH and DDH.
func (g *Group) Assumptions() group.Assumption {
	return group.DLog | group.CDH | group.DDH
}

// Generator returns the base point of order q.
func (g *Group) Generator() group.Element {
	return g.gen
}

// Order returns a copy of the prime subgroup order q.
func (g *Group) Order() *big.Int {
	return new(big.Int).Set(g.params.Q)
}

// Identity returns the point at infinity.
func (g *Group) Identity() group.Element {
	return g.id
}

// NewElement returns the point (x, y). It fails with
// [group.ErrInvalidElement] if the point is not on the curve. Subgroup
// membership is not checked.
func (g *Group) NewElement(x, y *big.Int) (*Element, error) {
	p, err := g.arith.CreatePoint(x, y)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", group.ErrInvalidElement, err)
	}
	if !g.arith.IsOnCurve(p) {
		return nil, fmt.Errorf("%w: point is not on curve %s", group.ErrInvalidElement, g.params.Name)
	}
	return &Element{g: g, p: p}, nil
}

// element unwraps e, rejecting values that belong to another group.
func (g *Group) element(e group.Element) (*Element, error) {
	el, ok := e.(*Element)
	if !ok || el == nil || el.g != g {
		return nil, group.ErrTypeMismatch
	}
	return el, nil
}

// IsMember checks the curve equation and then that e^q is the identity.
// The second step is skipped when the cofactor is one.
func (g *Group) IsMember(e group.Element) bool {
	el, err := g.element(e)
	if err != nil {
		return false
	}
	if el.p.Inf {
		return true
	}
	if !g.arith.IsOnCurve(el.p) {
		return false
	}
	if g.params.Cofactor.Cmp(big.NewInt(1)) == 0 {
		return true
	}
	return g.arith.ScalarMul(el.p, g.params.Q).Inf
}

// Invert returns -e, that is (x, x + y).
func (g *Group) Invert(e group.Element) (group.Element, error) {
	el, err := g.element(e)
	if err != nil {
		return nil, err
	}
	return &Element{g: g, p: g.arith.Negate(el.p)}, nil
}

// Multiply returns the group operation a + b in additive curve notation.
func (g *Group) Multiply(a, b group.Element) (group.Element, error) {
	x, err := g.element(a)
	if err != nil {
		return nil, err
	}
	y, err := g.element(b)
	if err != nil {
		return nil, err
	}
	return &Element{g: g, p: g.arith.Add(x.p, y.p)}, nil
}

// Exponentiate returns k * base. Negative k is allowed.
func (g *Group) Exponentiate(base group.Element, k *big.Int) (group.Element, error) {
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
	return &Element{g: g, p: g.arith.ScalarMul(el.p, k)}, nil
}

// Encode returns the fixed-width big-endian coordinates of e.
func (g *Group) Encode(e group.Element) (*group.ElementData, error) {
	el, err := g.element(e)
	if err != nil {
		return nil, err
	}
	if el.p.Inf {
		return &group.ElementData{Infinity: true}, nil
	}
	f := g.arith.Field()
	return &group.ElementData{X: f.Bytes(el.p.X), Y: f.Bytes(el.p.Y)}, nil
}

// Reconstruct rebuilds an element from its encoding. Coordinates must be
// field elements in every case; unless trusted is set, the point must
// also be a member of the subgroup.
func (g *Group) Reconstruct(trusted bool, d *group.ElementData) (group.Element, bool) {
	if d == nil {
		return nil, false
	}
	if d.Infinity {
		if len(d.X) != 0 || len(d.Y) != 0 {
			return nil, false
		}
		return g.id, true
	}
	f := g.arith.Field()
	x, err := f.SetBytes(d.X)
	if err != nil {
		return nil, false
	}
	y, err := f.SetBytes(d.Y)
	if err != nil {
		return nil, false
	}
	el := &Element{g: g, p: backend.Point{X: x, Y: y}}
	if !trusted && !g.IsMember(el) {
		return nil, false
	}
	return el, true
}

// MapToBytes returns 0x00 for the identity and 0x04 || x || y otherwise,
// with fixed-width coordinates.
func (g *Group) MapToBytes(e group.Element) ([]byte, error) {
	el, err := g.element(e)
	if err != nil {
		return nil, err
	}
	return g.mapToBytes(el), nil
}

func (g *Group) mapToBytes(el *Element) []byte {
	if el.p.Inf {
		return []byte{0x00}
	}
	f := g.arith.Field()
	n := f.ByteLen()
	out := make([]byte, 1+2*n)
	out[0] = 0x04
	copy(out[1:], f.Bytes(el.p.X))
	copy(out[1+n:], f.Bytes(el.p.Y))
	return out
}

// EncodeBytes is not available on binary curves.
func (g *Group) EncodeBytes([]byte) (group.Element, error) {
	return nil, group.ErrNotSupported
}

// DecodeToBytes is not available on binary curves.
func (g *Group) DecodeToBytes(group.Element) ([]byte, error) {
	return nil, group.ErrNotSupported
}

// RandomScalar returns a uniform scalar in [0, q). A nil reader means
// crypto/rand.
func (g *Group) RandomScalar(r io.Reader) (*big.Int, error) {
	if r == nil {
		r = rand.Reader
	}
	return rand.Int(r, g.params.Q)
}
