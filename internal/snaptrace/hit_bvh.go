package snaptrace

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// nearestHitBVH returns the closest positive t hit among all scene objects.
// It uses the BVH (AABB tree) built by Scene.prepare. tMax can be +Inf to search everything.
func nearestHitBVH(scene *Scene, O, D r3.Vec, tMax Real) (objectHit, bool) {
	if scene.root == nil {
		return objectHit{}, false
	}
	return traverseNearest(scene.root, O, D, tMax)
}

// (Optional helper): a convenience that searches unbounded.
func nearestHitBVHAll(scene *Scene, O, D r3.Vec) (objectHit, bool) {
	return nearestHitBVH(scene, O, D, math.Inf(1))
}
