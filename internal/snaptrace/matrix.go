package snaptrace

import "gonum.org/v1/gonum/spatial/r3"

// 3×3 matrix (row-major)
type Mat3 struct {
	M [3][3]Real
}

func I3() Mat3 {
	return Mat3{M: [3][3]Real{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// Mat3FromCols builds the matrix whose columns are a, b and c.
func Mat3FromCols(a, b, c r3.Vec) Mat3 {
	return Mat3{M: [3][3]Real{
		{a.X, b.X, c.X},
		{a.Y, b.Y, c.Y},
		{a.Z, b.Z, c.Z},
	}}
}

func (A Mat3) Mul(B Mat3) Mat3 {
	var R Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += A.M[r][k] * B.M[k][c]
			}
			R.M[r][c] = sum
		}
	}
	return R
}

func (A Mat3) Transpose() Mat3 {
	var R Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R.M[r][c] = A.M[c][r]
		}
	}
	return R
}

func (A Mat3) MulVec(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: A.M[0][0]*v.X + A.M[0][1]*v.Y + A.M[0][2]*v.Z,
		Y: A.M[1][0]*v.X + A.M[1][1]*v.Y + A.M[1][2]*v.Z,
		Z: A.M[2][0]*v.X + A.M[2][1]*v.Y + A.M[2][2]*v.Z,
	}
}
