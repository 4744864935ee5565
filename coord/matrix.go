package coord

import "math"

// Matrix is a 3x3 affine transform applied to row vectors.
//
// Translation lives in the bottom row.
type Matrix [3][3]float64

func Identity() Matrix {
	return Matrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Rotation returns the matrix
//
//	cos(theta)  -sin(theta)  0
//	sin(theta)   cos(theta)  0
//	0            0           1
func Rotation(theta float64) Matrix {
	s, c := math.Sincos(theta)
	return Matrix{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

// Translation returns a matrix that offsets a row vector by dx,dy.
func Translation(dx, dy float64) Matrix {
	m := Identity()
	m[2][0] = dx
	m[2][1] = dy
	return m
}

// Mul returns m·op.
func (m Matrix) Mul(op Matrix) Matrix {
	var res Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[i][j] = m[i][0]*op[0][j] + m[i][1]*op[1][j] + m[i][2]*op[2][j]
		}
	}
	return res
}

// IsFinite returns false if any element is NaN or infinite.
func (m Matrix) IsFinite() bool {
	for _, row := range m {
		if !Vector(row).IsFinite() {
			return false
		}
	}
	return true
}
