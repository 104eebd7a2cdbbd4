package snaptrace

import "gonum.org/v1/gonum/spatial/r3"

// reflection about a unit normal (assume unit I,N)
func reflect3(I, N r3.Vec) r3.Vec {
	return r3.Sub(I, r3.Scale(2*r3.Dot(I, N), N))
}

// Schlick Fresnel term for reflectance f0 at normal incidence.
func schlick(f0, cosTheta Real) Real {
	x := 1 - clamp01(cosTheta)
	x2 := x * x
	return f0 + (1-f0)*x2*x2*x
}
