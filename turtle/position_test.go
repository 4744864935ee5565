package turtle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const d45 = math.Pi / 4

func xy(p *Position) [2]float64 {
	v := p.Vector()
	return [2]float64{v[0], v[1]}
}

func TestPosition_Translate(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, [2]float64{0, 0}, xy(p))

	p.Translate(1, 0).Translate(1, 0).Translate(0, -1)
	assert.Equal(t, [2]float64{2, -1}, xy(p))
	assert.Equal(t, 1.0, p.Vector()[2])
}

func TestPosition_SetAbsolute(t *testing.T) {
	p := NewPosition().Translate(5, 5).SetAbsolute(-1, 3)
	assert.Equal(t, [2]float64{-1, 3}, xy(p))
	assert.Equal(t, 1.0, p.Vector()[2])
}

func TestPosition_RotateLocal(t *testing.T) {
	p := NewPosition().Translate(2, 0)

	p.RotateLocal(d45).RotateLocal(d45)
	p.Snap(DefaultSnap)
	assert.Equal(t, [2]float64{0, 2}, xy(p))

	p.RotateLocal(d45).RotateLocal(d45).Snap(DefaultSnap)
	assert.Equal(t, [2]float64{-2, 0}, xy(p))

	p.RotateLocal(d45).RotateLocal(d45).Snap(DefaultSnap)
	assert.Equal(t, [2]float64{0, -2}, xy(p))

	p.RotateLocal(math.Pi / 2).Snap(DefaultSnap)
	assert.Equal(t, [2]float64{2, 0}, xy(p))
}

func TestPosition_Snap(t *testing.T) {
	p := NewPosition().SetAbsolute(1.23456, -7.891)

	p.Snap(2)
	once := xy(p)
	assert.Equal(t, [2]float64{1.23, -7.89}, once)

	p.Snap(2)
	assert.Equal(t, once, xy(p))

	p.Snap(0)
	assert.Equal(t, [2]float64{1, -8}, xy(p))
}
