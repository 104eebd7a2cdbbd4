package snaptrace

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// orthonormal2 builds a tangent basis (u, v) for unit n without branching on a helper axis
// (Duff et al., "Building an Orthonormal Basis, Revisited").
func orthonormal2(n r3.Vec) (u, v r3.Vec) {
	sign := math.Copysign(1, n.Z)
	a := -1 / (sign + n.Z)
	b := n.X * n.Y * a
	u = r3.Vec{X: 1 + sign*n.X*n.X*a, Y: sign * b, Z: -sign * n.X}
	v = r3.Vec{X: b, Y: sign + n.Y*n.Y*a, Z: -n.Y}
	return u, v
}

// sampleDiffuseDir returns a cosine-weighted unit direction on the hemisphere around unit N.
// Construction: pick a point uniformly in the unit disk for the tangent part,
// then lift it onto the hemisphere with the normal component sqrt(1 - r^2).
func sampleDiffuseDir(N r3.Vec, rng *rand.Rand) r3.Vec {
	U, V := orthonormal2(N)

	r := math.Sqrt(rng.Float64())
	phi := 2 * math.Pi * rng.Float64()
	tx, ty := r*math.Cos(phi), r*math.Sin(phi)

	nn2 := 1 - (tx*tx + ty*ty)
	if nn2 < 0 {
		nn2 = 0
	}
	nn := math.Sqrt(nn2)

	dir := r3.Add(r3.Add(r3.Scale(tx, U), r3.Scale(ty, V)), r3.Scale(nn, N))
	return unitOr(dir, N)
}

// Uniform point inside the unit ball (rejection).
func sampleUnitBall(rng *rand.Rand) r3.Vec {
	for {
		p := r3.Vec{X: 2*rng.Float64() - 1, Y: 2*rng.Float64() - 1, Z: 2*rng.Float64() - 1}
		if r3.Norm2(p) < 1 {
			return p
		}
	}
}
