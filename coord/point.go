package coord

import (
	"math"
)

// Point is a 3D position, as reported by a bed probe.
type Point struct{ X, Y, Z float64 }

func (p Point) Cross(op Point) Point {
	return Point{
		p.Y*op.Z - p.Z*op.Y,
		p.Z*op.X - p.X*op.Z,
		p.X*op.Y - p.Y*op.X,
	}
}
func (p Point) Dot(op Point) float64 {
	return p.X*op.X + p.Y*op.Y + p.Z*op.Z
}
func (p Point) Mul(val float64) Point {
	p.X *= val
	p.Y *= val
	p.Z *= val
	return p
}

// Add will add the target values to p.
func (p Point) Add(target Point) Point {
	p.X += target.X
	p.Y += target.Y
	p.Z += target.Z
	return p
}

// Sub will subtract the target values from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	p.Z -= target.Z
	return p
}

// XY drops Z and returns the homogeneous 2D vector.
func (p Point) XY() Vector {
	return NewVector(p.X, p.Y)
}

// IsFinite returns false if any coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return Vector{p.X, p.Y, p.Z}.IsFinite()
}

// DistanceXY will return the 2D distance to p from (x,y).
func (p Point) DistanceXY(x, y float64) float64 {
	return math.Hypot(x-p.X, y-p.Y)
}
