package coord

import "math"

// Vector is a 2D point in homogeneous coordinates (x, y, 1).
type Vector [3]float64

// NewVector returns the homogeneous vector for x,y.
func NewVector(x, y float64) Vector {
	return Vector{x, y, 1}
}

func (v Vector) X() float64 { return v[0] }
func (v Vector) Y() float64 { return v[1] }

// Mul will return the row vector product v·m.
func (v Vector) Mul(m Matrix) Vector {
	var res Vector
	for j := 0; j < 3; j++ {
		res[j] = v[0]*m[0][j] + v[1]*m[1][j] + v[2]*m[2][j]
	}
	return res
}

// MaxPrecision is the largest number of decimals Round can keep.
// A float64 holds no more than 15 significant decimal digits.
const MaxPrecision = 15

// Round will round x and y to prec decimal digits.
//
// Ties go to the even digit. prec is clamped to 0..MaxPrecision, and
// components too large to scale are returned as they are.
func (v Vector) Round(prec int) Vector {
	if prec < 0 {
		prec = 0
	} else if prec > MaxPrecision {
		prec = MaxPrecision
	}
	p := math.Pow(10, float64(prec))
	v[0] = roundScaled(v[0], p)
	v[1] = roundScaled(v[1], p)
	return v
}

func roundScaled(x, p float64) float64 {
	r := math.RoundToEven(x*p) / p
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return x
	}
	return r
}

// IsFinite returns false if any component is NaN or infinite.
func (v Vector) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
