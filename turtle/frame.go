package turtle

import "github.com/mastercactapus/gturtle/coord"

// Frame maps local turtle coordinates to output coordinates.
//
// Operations post-multiply, so they apply in call order.
type Frame struct {
	m coord.Matrix
}

// NewFrame returns the identity frame.
func NewFrame() *Frame {
	return &Frame{m: coord.Identity()}
}

// Matrix returns the accumulated transform.
func (f *Frame) Matrix() coord.Matrix { return f.m }

// Translate moves the frame by dx,dy. A fixed turtle point
// appears shifted by -dx,-dy in the output.
func (f *Frame) Translate(dx, dy float64) *Frame {
	f.m = f.m.Mul(coord.Translation(-dx, -dy))
	return f
}

// Rotate turns the frame by theta radians. A fixed turtle
// point appears to turn clockwise.
func (f *Frame) Rotate(theta float64) *Frame {
	f.m = f.m.Mul(coord.Rotation(theta))
	return f
}

// Project returns the output coordinate of the turtle under frame f.
func Project(p *Position, f *Frame) (x, y float64) {
	v := p.Vector().Mul(f.Matrix())
	return v[0], v[1]
}
