package turtle

import (
	"math"

	"github.com/mastercactapus/gturtle/coord"
)

// Position is the turtle location in its local frame.
type Position struct {
	xy coord.Vector
}

// NewPosition returns a turtle at the local origin.
func NewPosition() *Position {
	return &Position{xy: coord.NewVector(0, 0)}
}

// Vector returns the homogeneous coordinate of the turtle.
func (p *Position) Vector() coord.Vector { return p.xy }

// Translate moves the turtle by dx,dy.
func (p *Position) Translate(dx, dy float64) *Position {
	p.xy[0] += dx
	p.xy[1] += dy
	return p
}

// SetAbsolute puts the turtle at x,y.
func (p *Position) SetAbsolute(x, y float64) *Position {
	p.xy[0] = x
	p.xy[1] = y
	return p
}

// RotateLocal rotates the turtle counter-clockwise by theta radians
// around the local origin.
func (p *Position) RotateLocal(theta float64) *Position {
	s, c := math.Sincos(theta)
	x, y := p.xy[0], p.xy[1]
	p.xy[0] = x*c - y*s
	p.xy[1] = x*s + y*c
	return p
}

// Snap rounds the turtle to precision decimal digits, clearing
// drift left by rotations that should land on exact values.
func (p *Position) Snap(precision int) *Position {
	p.xy = p.xy.Round(precision)
	return p
}
