package snaptrace

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type objectHit struct {
	t     Real
	N     r3.Vec    // outward unit normal
	mat   *Material // outline hits carry the outline material
	color RGB       // per-primitive color
	inv   bool      // ray started inside the object
}

// nearestHitLinear scans every scene object with an AABB pre-cull.
func nearestHitLinear(scene *Scene, O, D r3.Vec, tMax Real) (objectHit, bool) {
	best := objectHit{}
	okAny := false
	bestT := tMax
	if !isFinite(bestT) {
		bestT = 1e300
	}
	rr := computeRayRecips(D)
	for i := range scene.leaves {
		l := &scene.leaves[i]
		if ok, tNear := rayAABB(O, l.min, l.max, rr); !ok || tNear > bestT {
			continue
		}
		if hit, ok := l.intersect(O, D); ok && hit.t > epsHit && hit.t < bestT {
			bestT, best, okAny = hit.t, hit, true
		}
	}
	return best, okAny
}

// (Optional helper): a convenience that searches unbounded.
func nearestHitLinearAll(scene *Scene, O, D r3.Vec) (objectHit, bool) {
	return nearestHitLinear(scene, O, D, math.Inf(1))
}
