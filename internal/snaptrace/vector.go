package snaptrace

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// axisOf returns component a (0=X, 1=Y, 2=Z) of v.
func axisOf(v r3.Vec, a int) Real {
	switch a {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func vmin(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)}
}

func vmax(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)}
}

// unitOr normalizes v, returning fallback for (near) zero vectors.
func unitOr(v, fallback r3.Vec) r3.Vec {
	l2 := r3.Norm2(v)
	if l2 < 1e-24 {
		return fallback
	}
	return r3.Scale(1/math.Sqrt(l2), v)
}

func vecFinite(v r3.Vec) bool { return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z) }
