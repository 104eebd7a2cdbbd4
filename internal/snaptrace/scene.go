package snaptrace

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// Scene is everything a PathTracer needs for one image: geometry, lights, camera and
// background. Geometry is frozen once the scene is first sampled.
type Scene struct {
	Device          *Device
	Spheres         []*Spheres
	Boxes           []*Box
	Lights          []*Light
	Camera          *Orthographic
	Background      RGB  // seen by camera rays that miss everything
	BackgroundAlpha Real // alpha written for those rays

	// cached acceleration structures
	once   sync.Once
	leaves []bvhLeaf
	root   *AABBNode
}

// NewScene creates an empty scene with a black, transparent background.
func NewScene(d *Device) *Scene {
	return &Scene{Device: d}
}

func (s *Scene) AddSpheres(g *Spheres) {
	s.Spheres = append(s.Spheres, g)
}

func (s *Scene) AddBox(b *Box) {
	s.Boxes = append(s.Boxes, b)
}

// prepare collects the scene objects and builds the BVH once.
func (s *Scene) prepare() {
	s.once.Do(func() {
		s.leaves = collectSceneObjects(s)
		if len(s.leaves) > 0 {
			objs := make([]bvhLeaf, len(s.leaves))
			copy(objs, s.leaves)
			s.root = buildBVH(objs)
		}
		DebugLog("Prepared scene: objects=%d, lights=%d, bvh=%v", len(s.leaves), len(s.Lights), s.useBVH())
	})
}

// NumObjects is the number of intersectable primitives (spheres plus box edges).
func (s *Scene) NumObjects() int {
	s.prepare()
	return len(s.leaves)
}

func (s *Scene) useBVH() bool {
	if NeverBVH {
		return false
	}
	return AlwaysBVH || len(s.leaves) >= AABBBVHFromNObjects
}

func (s *Scene) nearestHit(O, D r3.Vec, tMax Real) (objectHit, bool) {
	if s.useBVH() {
		return nearestHitBVH(s, O, D, tMax)
	}
	return nearestHitLinear(s, O, D, tMax)
}

// skyRadiance sums the lights seen along an escaping unit direction d.
func (s *Scene) skyRadiance(d r3.Vec) RGB {
	var c RGB
	for _, l := range s.Lights {
		if r, ok := l.radianceAlong(d); ok {
			c = c.Add(r)
		}
	}
	return c
}
