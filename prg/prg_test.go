package prg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, SeedSize)
	a, err := New(seed)
	require.NoError(t, err)
	b, err := New(seed)
	require.NoError(t, err)

	x := make([]byte, 100)
	y := make([]byte, 100)
	_, _ = a.Read(x)
	_, _ = b.Read(y[:40])
	_, _ = b.Read(y[40:])
	assert.Equal(t, x, y, "split reads must continue the same stream")

	_, _ = a.Read(x[:10])
	assert.NotEqual(t, y[:10], x[:10], "stream must advance")
}

func TestSeedLength(t *testing.T) {
	_, err := New(make([]byte, 16))
	assert.Error(t, err)
}

func TestNewRandom(t *testing.T) {
	a, err := NewRandom()
	require.NoError(t, err)
	b, err := NewRandom()
	require.NoError(t, err)
	x, y := make([]byte, 32), make([]byte, 32)
	_, _ = a.Read(x)
	_, _ = b.Read(y)
	assert.NotEqual(t, x, y)
}

func TestChoiceBits(t *testing.T) {
	bits, err := ChoiceBits(bytes.NewReader([]byte{0x05, 0x80}), 16)
	require.NoError(t, err)
	for i, want := range map[uint]bool{0: true, 1: false, 2: true, 7: false, 15: true} {
		assert.Equal(t, want, bits.Test(i), "bit %d", i)
	}
	assert.Equal(t, uint(3), bits.Count())

	_, err = ChoiceBits(bytes.NewReader([]byte{1}), 9)
	assert.Error(t, err)
}
