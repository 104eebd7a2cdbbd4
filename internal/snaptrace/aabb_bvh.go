package snaptrace

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

type bvhLeaf struct {
	min, max  r3.Vec
	intersect func(O, D r3.Vec) (objectHit, bool)
}

type AABBNode struct {
	min, max r3.Vec
	left     *AABBNode
	right    *AABBNode
	leafObjs []bvhLeaf // non-nil ⇒ leaf
}

func collectSceneObjects(s *Scene) []bvhLeaf {
	n := 0
	for _, g := range s.Spheres {
		n += g.Len()
	}
	out := make([]bvhLeaf, 0, n+12*len(s.Boxes))

	for _, g := range s.Spheres {
		if g == nil {
			continue
		}
		for i := 0; i < g.Len(); i++ {
			obj, idx := g, i
			mn, mx := obj.bounds(idx)
			out = append(out, bvhLeaf{
				min: mn, max: mx,
				intersect: func(O, D r3.Vec) (objectHit, bool) { return obj.intersect(idx, O, D) },
			})
		}
	}
	for _, b := range s.Boxes {
		if b == nil {
			continue
		}
		for e := range b.Edges {
			obj, idx := b, e
			mn, mx := obj.bounds(idx)
			out = append(out, bvhLeaf{
				min: mn, max: mx,
				intersect: func(O, D r3.Vec) (objectHit, bool) { return obj.intersect(idx, O, D) },
			})
		}
	}
	return out
}

// buildBVH sorts objs in place.
func buildBVH(objs []bvhLeaf) *AABBNode {
	return buildBVHRec(objs, 0)
}

func buildBVHRec(objs []bvhLeaf, depth int) *AABBNode {
	n := len(objs)
	if n == 0 {
		return nil
	}
	if n <= AABBBVHMaxLeafSize {
		minP, maxP := objs[0].min, objs[0].max
		for i := 1; i < n; i++ {
			minP, maxP = aabbUnion(minP, maxP, objs[i].min, objs[i].max)
		}
		return &AABBNode{min: minP, max: maxP, leafObjs: objs}
	}

	// Union bounds and centroid spreads
	minP, maxP := objs[0].min, objs[0].max
	cmin := centroidOf(objs[0])
	cmax := cmin
	for i := 1; i < n; i++ {
		minP, maxP = aabbUnion(minP, maxP, objs[i].min, objs[i].max)
		c := centroidOf(objs[i])
		cmin, cmax = vmin(cmin, c), vmax(cmax, c)
	}
	spread := r3.Sub(cmax, cmin)
	axis := longestAxis(spread)

	// If all centroids coincide (degenerate), fall back to longest box extent axis.
	if axisOf(spread, axis) <= 1e-18 {
		axis = longestAxis(r3.Sub(maxP, minP))
	}

	// Sort by chosen centroid axis, split at median
	sort.SliceStable(objs, func(i, j int) bool {
		return getCentroidAxis(objs[i], axis) < getCentroidAxis(objs[j], axis)
	})
	mid := n / 2
	left := buildBVHRec(objs[:mid], depth+1)
	right := buildBVHRec(objs[mid:], depth+1)

	return &AABBNode{min: minP, max: maxP, left: left, right: right}
}

func longestAxis(v r3.Vec) int {
	axis := 0
	if v.Y > axisOf(v, axis) {
		axis = 1
	}
	if v.Z > axisOf(v, axis) {
		axis = 2
	}
	return axis
}

func aabbUnion(aMin, aMax, bMin, bMax r3.Vec) (r3.Vec, r3.Vec) {
	return vmin(aMin, bMin), vmax(aMax, bMax)
}

func centroid(a, b Real) Real { return (a + b) * 0.5 }

func centroidOf(o bvhLeaf) r3.Vec { return r3.Scale(0.5, r3.Add(o.min, o.max)) }

func getCentroidAxis(o bvhLeaf, axis int) Real {
	return centroid(axisOf(o.min, axis), axisOf(o.max, axis))
}

func computeRayRecips(d r3.Vec) rayRecips {
	const eps = 1e-18
	rr := rayRecips{}
	if x := d.X; x > eps || x < -eps {
		rr.invX = 1 / x
	} else {
		rr.parX = true
	}
	if y := d.Y; y > eps || y < -eps {
		rr.invY = 1 / y
	} else {
		rr.parY = true
	}
	if z := d.Z; z > eps || z < -eps {
		rr.invZ = 1 / z
	} else {
		rr.parZ = true
	}
	return rr
}

// Nearest-hit traversal (iterative, stack-based). Prunes by current best t.
func traverseNearest(root *AABBNode, O, D r3.Vec, tMax Real) (objectHit, bool) {
	if root == nil {
		return objectHit{}, false
	}
	bestT := tMax
	if !isFinite(bestT) {
		bestT = 1e300
	}
	var best objectHit
	found := false
	rr := computeRayRecips(D)

	type entry struct {
		n    *AABBNode
		tmin Real
	}
	stack := make([]entry, 0, 64)
	stack = append(stack, entry{n: root})
	for len(stack) > 0 {
		// pop
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ok, tmin := rayAABB(O, e.n.min, e.n.max, rr)
		if !ok || tmin > bestT {
			continue
		}

		if e.n.leafObjs != nil {
			for i := range e.n.leafObjs {
				if h, ok := e.n.leafObjs[i].intersect(O, D); ok && h.t > epsHit && h.t < bestT {
					bestT, best, found = h.t, h, true
				}
			}
			continue
		}

		// order children near→far (push far first so near is processed next)
		var lOK bool
		var lT Real
		if e.n.left != nil {
			lOK, lT = rayAABB(O, e.n.left.min, e.n.left.max, rr)
			lOK = lOK && lT <= bestT
		}
		var rOK bool
		var rT Real
		if e.n.right != nil {
			rOK, rT = rayAABB(O, e.n.right.min, e.n.right.max, rr)
			rOK = rOK && rT <= bestT
		}
		if lOK && rOK {
			if lT < rT {
				stack = append(stack, entry{e.n.right, rT}, entry{e.n.left, lT})
			} else {
				stack = append(stack, entry{e.n.left, lT}, entry{e.n.right, rT})
			}
		} else if lOK {
			stack = append(stack, entry{e.n.left, lT})
		} else if rOK {
			stack = append(stack, entry{e.n.right, rT})
		}
	}

	if found && bestT < math.Inf(1) {
		return best, true
	}
	return objectHit{}, false
}
