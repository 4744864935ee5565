package coord

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVector(t *testing.T, exp, v Vector) {
	t.Helper()
	assert.InDelta(t, exp[0], v[0], 1e-9, "x")
	assert.InDelta(t, exp[1], v[1], 1e-9, "y")
	assert.InDelta(t, exp[2], v[2], 1e-9, "w")
}

func TestIdentity(t *testing.T) {
	v := NewVector(3, -4)
	assert.Equal(t, v, v.Mul(Identity()))

	m := Rotation(0.3).Mul(Translation(1, 2))
	assert.Equal(t, m, m.Mul(Identity()))
	assert.Equal(t, m, Identity().Mul(m))
}

func TestTranslation(t *testing.T) {
	v := NewVector(2, 0).Mul(Translation(0, -1))
	assert.Equal(t, NewVector(2, -1), v)
}

func TestRotation(t *testing.T) {
	// row vectors rotate clockwise through the counter-clockwise matrix
	v := NewVector(2, 0).Mul(Rotation(math.Pi / 2))
	assertVector(t, Vector{0, -2, 1}, v)

	m := Rotation(math.Pi / 4).Mul(Rotation(math.Pi / 4))
	assertVector(t, Vector{0, -2, 1}, NewVector(2, 0).Mul(m))
}

func TestMatrix_Mul_Order(t *testing.T) {
	a := Rotation(math.Pi / 3).Mul(Translation(1, 2))
	b := Translation(1, 2).Mul(Rotation(math.Pi / 3))

	va := NewVector(1, 1).Mul(a)
	vb := NewVector(1, 1).Mul(b)
	assert.NotEqual(t, va, vb)

	// rotate first, then offset
	rot := NewVector(1, 1).Mul(Rotation(math.Pi / 3))
	assertVector(t, Vector{rot[0] + 1, rot[1] + 2, 1}, va)
}

func TestVector_Round(t *testing.T) {
	v := Vector{1.23456, -0.004999, 1}.Round(2)
	assert.Equal(t, Vector{1.23, 0, 1}, v)

	assert.Equal(t, v, v.Round(2))

	assert.Equal(t, Vector{0.12, 0, 1}, Vector{0.125, 0, 1}.Round(2))
}

func TestVector_Round_Range(t *testing.T) {
	v := Vector{2.5, 1.25, 1}
	assert.Equal(t, v, v.Round(400))
	assert.Equal(t, Vector{2, 1, 1}, v.Round(-400))

	big := Vector{math.MaxFloat64, -1e300, 1}
	assert.Equal(t, big, big.Round(MaxPrecision))
	assert.True(t, big.Round(MaxPrecision).IsFinite())
}

func TestMatrix_IsFinite(t *testing.T) {
	assert.True(t, Rotation(1).Mul(Translation(3, 4)).IsFinite())
	assert.False(t, Translation(math.Inf(1), 0).IsFinite())
	assert.False(t, Rotation(math.NaN()).IsFinite())
}

func TestVector_IsFinite(t *testing.T) {
	assert.True(t, NewVector(1, 2).IsFinite())
	assert.False(t, NewVector(math.NaN(), 2).IsFinite())
	assert.False(t, NewVector(1, math.Inf(1)).IsFinite())
}
