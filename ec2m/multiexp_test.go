package ec2m

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/f3rmion/ucot/group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBases(t *testing.T, g *Group, rng *rand.Rand, n int) []group.Element {
	t.Helper()
	bases := make([]group.Element, n)
	for i, k := range randomScalars(rng, g.Order(), n) {
		b, err := g.Exponentiate(g.Generator(), k)
		require.NoError(t, err)
		bases[i] = b
	}
	return bases
}

func TestMultiExpStrategy(t *testing.T) {
	nonKoblitz := newGroup(t, T11A)
	assert.False(t, nonKoblitz.Batched(59))
	assert.True(t, nonKoblitz.Batched(60))

	koblitz := newGroup(t, T11K)
	assert.False(t, koblitz.Batched(1000))

	noFallback := newGroup(t, T11K, WithKoblitzFallback(false), WithMultiExpThreshold(2))
	assert.False(t, noFallback.Batched(1))
	assert.True(t, noFallback.Batched(2))
}

// TestMultiExpMatchesSequential compares every configuration with a
// reference computed one exponentiation at a time.
func TestMultiExpMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, p := range []Params{T11A, T11B, T11K} {
		for _, n := range []int{0, 1, 2, 59, 60, 61, 150} {
			g := newGroup(t, p)
			bases := randomBases(t, g, rng, n)
			ks := randomScalars(rng, g.Order(), n)
			if n > 0 {
				// Negative and wide scalars go through the same paths.
				ks[0] = new(big.Int).Neg(ks[0])
				ks[n-1] = new(big.Int).Lsh(ks[n-1], 40)
			}

			want, err := group.NaiveMultiExponentiate(g, bases, ks)
			require.NoError(t, err)

			configs := map[string]*Group{
				"default":    g,
				"batched":    newGroup(t, p, WithMultiExpThreshold(0), WithKoblitzFallback(false)),
				"sequential": newGroup(t, p, WithMultiExpThreshold(1<<30)),
				"one task":   newGroup(t, p, WithMultiExpThreshold(0), WithKoblitzFallback(false), WithMultiExpTasks(1)),
			}
			for name, h := range configs {
				// Elements are owned by g, so move them into h first.
				hb := rebase(t, g, h, bases)
				got, err := h.SimultaneousMultiExponentiate(hb, ks)
				require.NoError(t, err)
				wantH := rebase(t, g, h, []group.Element{want})[0]
				assert.True(t, got.Equal(wantH), "%s n=%d %s", p.Name, n, name)
			}
		}
	}
}

func TestMultiExpNISTCurves(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, p := range []Params{B163, K163} {
		g := newGroup(t, p, WithKoblitzFallback(false))
		for _, n := range []int{10, 60} {
			bases := randomBases(t, g, rng, n)
			ks := randomScalars(rng, g.Order(), n)
			want, err := group.NaiveMultiExponentiate(g, bases, ks)
			require.NoError(t, err)
			got, err := g.SimultaneousMultiExponentiate(bases, ks)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "%s n=%d", p.Name, n)
		}
	}
}

func TestMultiExpLengthMismatch(t *testing.T) {
	g := newGroup(t, T11A)
	_, err := g.SimultaneousMultiExponentiate([]group.Element{g.Generator()}, nil)
	assert.ErrorIs(t, err, group.ErrLengthMismatch)
}

// rebase maps elements of g to the same points of h.
func rebase(t *testing.T, g, h *Group, es []group.Element) []group.Element {
	t.Helper()
	out := make([]group.Element, len(es))
	for i, e := range es {
		d, err := g.Encode(e)
		require.NoError(t, err)
		r, ok := h.Reconstruct(false, d)
		require.True(t, ok)
		out[i] = r
	}
	return out
}

func TestPrecomputedBase(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for _, p := range []Params{T11A, T11K, B163} {
		for _, w := range []int{1, 4, 6} {
			g := newGroup(t, p, WithWindow(w))
			base := exp(t, g, g.Generator(), 12345)
			require.Equal(t, 0, g.PrecomputedBases())

			ks := append(randomScalars(rng, g.Order(), 8),
				big.NewInt(0),
				big.NewInt(1),
				new(big.Int).Sub(g.Order(), big.NewInt(1)),
				g.Order(),
				big.NewInt(-5),
				new(big.Int).Lsh(g.Order(), 3),
			)
			for i, k := range ks {
				want, err := g.Exponentiate(base, k)
				require.NoError(t, err)
				got, err := g.ExponentiateWithPrecomputedBase(base, k)
				require.NoError(t, err)
				assert.True(t, got.Equal(want), "%s w=%d k=%v (call %d)", p.Name, w, k, i)
			}
			assert.Equal(t, 1, g.PrecomputedBases())

			got, err := g.ExponentiateWithPrecomputedBase(g.Identity(), big.NewInt(9))
			require.NoError(t, err)
			assert.True(t, got.IsIdentity())

			_, err = g.ExponentiateWithPrecomputedBase(g.Generator(), big.NewInt(9))
			require.NoError(t, err)
			assert.Equal(t, 2, g.PrecomputedBases())
		}
	}
}
