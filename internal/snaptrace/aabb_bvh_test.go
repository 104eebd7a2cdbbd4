package snaptrace

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// Build a synthetic leaf whose intersect always returns the provided t.
func mkLeaf(min, max r3.Vec, t Real) bvhLeaf {
	return bvhLeaf{
		min: min,
		max: max,
		intersect: func(O, D r3.Vec) (objectHit, bool) {
			return objectHit{t: t}, true
		},
	}
}

func TestRayAABB(t *testing.T) {
	mn, mx := r3.Vec{X: -1, Y: -1, Z: -1}, r3.Vec{X: 1, Y: 1, Z: 1}

	ok, tmin := rayAABB(r3.Vec{Z: -5}, mn, mx, computeRayRecips(r3.Vec{Z: 1}))
	require.True(t, ok)
	assert.InDelta(t, 4, tmin, 1e-12)

	// origin inside: entry clamps to 0
	ok, tmin = rayAABB(r3.Vec{}, mn, mx, computeRayRecips(r3.Vec{Z: 1}))
	require.True(t, ok)
	assert.Equal(t, Real(0), tmin)

	ok, _ = rayAABB(r3.Vec{Z: 5}, mn, mx, computeRayRecips(r3.Vec{Z: 1}))
	assert.False(t, ok, "box behind the ray")

	// parallel and outside the X slab
	ok, _ = rayAABB(r3.Vec{X: 2, Z: -5}, mn, mx, computeRayRecips(r3.Vec{Z: 1}))
	assert.False(t, ok)
}

func TestComputeRayRecips(t *testing.T) {
	rr := computeRayRecips(r3.Vec{Y: 2, Z: -4})
	assert.True(t, rr.parX)
	assert.False(t, rr.parY)
	assert.Equal(t, 0.5, rr.invY)
	assert.Equal(t, -0.25, rr.invZ)
}

func TestAABBHelpers(t *testing.T) {
	uMin, uMax := aabbUnion(r3.Vec{}, r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: -1, Y: 1, Z: 2}, r3.Vec{X: 2, Y: 1.5, Z: 3.5})
	assert.Equal(t, r3.Vec{X: -1}, uMin)
	assert.Equal(t, r3.Vec{X: 2, Y: 2, Z: 3.5}, uMax)

	l := bvhLeaf{min: r3.Vec{X: 1, Y: 2, Z: 3}, max: r3.Vec{X: 3, Y: 6, Z: 7}}
	assert.Equal(t, Real(2), getCentroidAxis(l, 0))
	assert.Equal(t, Real(4), getCentroidAxis(l, 1))
	assert.Equal(t, Real(5), getCentroidAxis(l, 2))
	assert.Equal(t, 1, longestAxis(r3.Vec{X: 1, Y: 5, Z: 2}))
	assert.Equal(t, 2, longestAxis(r3.Vec{X: 1, Y: 1, Z: 2}))
}

func TestBuildBVHLeaves(t *testing.T) {
	var objs []bvhLeaf
	for i := 0; i < 9; i++ {
		x := Real(i)
		objs = append(objs, mkLeaf(r3.Vec{X: x}, r3.Vec{X: x + 0.5, Y: 0.5, Z: 0.5}, 1))
	}
	root := buildBVH(objs)
	require.NotNil(t, root)
	c := bvhCount(root, map[*AABBNode]bvhCounts{})
	assert.Equal(t, 9, c.objs)
	assert.Equal(t, r3.Vec{}, root.min)
	assert.Equal(t, r3.Vec{X: 8.5, Y: 0.5, Z: 0.5}, root.max)

	var check func(n *AABBNode)
	check = func(n *AABBNode) {
		if n.leafObjs != nil {
			assert.LessOrEqual(t, len(n.leafObjs), AABBBVHMaxLeafSize)
			return
		}
		check(n.left)
		check(n.right)
	}
	check(root)
	assert.Nil(t, buildBVH(nil))
}

func TestTraverseNearestPicksClosest(t *testing.T) {
	objs := []bvhLeaf{
		mkLeaf(r3.Vec{X: -1, Y: -1, Z: 2}, r3.Vec{X: 1, Y: 1, Z: 3}, 7),
		mkLeaf(r3.Vec{X: -1, Y: -1, Z: 0}, r3.Vec{X: 1, Y: 1, Z: 1}, 5),
		{ // off the ray
			min: r3.Vec{X: 5, Y: 5, Z: 5}, max: r3.Vec{X: 6, Y: 6, Z: 6},
			intersect: func(O, D r3.Vec) (objectHit, bool) { return objectHit{}, false },
		},
	}
	root := buildBVH(objs)
	h, ok := traverseNearest(root, r3.Vec{Z: -5}, r3.Vec{Z: 1}, math.Inf(1))
	require.True(t, ok)
	assert.Equal(t, Real(5), h.t)

	_, ok = traverseNearest(root, r3.Vec{Z: -5}, r3.Vec{Z: 1}, 4)
	assert.False(t, ok, "tMax prunes both hits")
}

func randomSphereScene(t *testing.T, n int, seed int64) *Scene {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	mat, err := NewMaterial(Yellow, Roughness, Specular, 0, 1)
	require.NoError(t, err)
	s, err := NewSpheres(n, SphereRadius, mat)
	require.NoError(t, err)
	s.OutlineWidth = OutlineWidth
	for i := range s.Position {
		s.Position[i] = r3.Vec{X: 8*rng.Float64() - 4, Y: 8*rng.Float64() - 4, Z: 8*rng.Float64() - 4}
	}
	b, err := NewBox([]Real{8}, BoxRadius, SolidMaterial(Black))
	require.NoError(t, err)
	scene := NewScene(NewDevice())
	scene.AddSpheres(s)
	scene.AddBox(b)
	scene.prepare()
	return scene
}

func TestBVHMatchesLinear(t *testing.T) {
	scene := randomSphereScene(t, 60, 3)
	assert.Equal(t, 60+12, scene.NumObjects())
	rng := rand.New(rand.NewSource(4))
	hits := 0
	for k := 0; k < 2000; k++ {
		O := r3.Vec{X: 12*rng.Float64() - 6, Y: 12*rng.Float64() - 6, Z: 12*rng.Float64() - 6}
		D := sampleDiffuseDir(r3.Unit(r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}), rng)
		hl, okL := nearestHitLinearAll(scene, O, D)
		hb, okB := nearestHitBVHAll(scene, O, D)
		require.Equal(t, okL, okB, "ray %d", k)
		if okL {
			hits++
			assert.InDelta(t, hl.t, hb.t, 1e-9, "ray %d", k)
			assert.Same(t, hl.mat, hb.mat, "ray %d", k)
		}
	}
	assert.Greater(t, hits, 100)
}

func TestUseBVHSwitches(t *testing.T) {
	small := randomSphereScene(t, 0, 1) // box edges only
	big := randomSphereScene(t, 20, 1)
	assert.True(t, small.useBVH(), "12 edges is above the threshold")
	assert.True(t, big.useBVH())

	NeverBVH = true
	assert.False(t, big.useBVH())
	NeverBVH = false

	empty := NewScene(NewDevice())
	empty.prepare()
	assert.False(t, empty.useBVH())
	AlwaysBVH = true
	assert.True(t, empty.useBVH())
	AlwaysBVH = false
	_, ok := empty.nearestHit(r3.Vec{}, r3.Vec{Z: 1}, math.Inf(1))
	assert.False(t, ok)
}

func TestDumpAABBBVH(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, DumpAABBBVH(&buf, randomSphereScene(t, 20, 5)))
	assert.Contains(t, buf.String(), "[BVH] root: nodes=")
	assert.Contains(t, buf.String(), "objs=32")
	assert.Contains(t, buf.String(), "\tLEAF")

	buf.Reset()
	assert.False(t, DumpAABBBVH(&buf, NewScene(NewDevice())))
	assert.Equal(t, "[BVH] <empty>\n", buf.String())
}
