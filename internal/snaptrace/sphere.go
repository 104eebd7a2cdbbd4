package snaptrace

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Spheres is a set of N spheres sharing one material. Each sphere has its own
// position, radius and color; the material's PrimitiveColorMix decides how much
// of the per-sphere color shows.
type Spheres struct {
	Position []r3.Vec
	Radius   []Real
	Color    []RGB
	Material *Material
	// Rays passing within OutlineWidth of the silhouette hit Outline instead.
	Outline      *Material
	OutlineWidth Real
}

// NewSpheres allocates n spheres of the given radius at the origin, colored with the
// material color and a black outline of zero width.
func NewSpheres(n int, radius Real, mat *Material) (*Spheres, error) {
	if n < 0 {
		return nil, fmt.Errorf("sphere count must be >= 0, got %d", n)
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("sphere radius must be > 0, got %.6g", radius)
	}
	if mat == nil {
		return nil, errors.New("sphere material must be set")
	}
	s := &Spheres{
		Position: make([]r3.Vec, n),
		Radius:   make([]Real, n),
		Color:    make([]RGB, n),
		Material: mat,
		Outline:  SolidMaterial(RGB{}),
	}
	for i := 0; i < n; i++ {
		s.Radius[i] = radius
		s.Color[i] = mat.Color
	}
	return s, nil
}

func (s *Spheres) Len() int { return len(s.Position) }

func (s *Spheres) bounds(i int) (r3.Vec, r3.Vec) {
	r := s.Radius[i]
	ext := r3.Vec{X: r, Y: r, Z: r}
	return r3.Sub(s.Position[i], ext), r3.Add(s.Position[i], ext)
}

// intersectRaySphere solves |O + tD - C|^2 = r^2 and returns the first positive root.
// inv reports that O was inside, so the root is the exit.
func intersectRaySphere(O, D, C r3.Vec, r Real) (t Real, inv bool, ok bool) {
	oc := r3.Sub(O, C)
	a := r3.Dot(D, D)
	b := 2 * r3.Dot(oc, D)
	c := r3.Dot(oc, oc) - r*r
	disc := b*b - 4*a*c
	if disc < 0 || a == 0 {
		return 0, false, false
	}
	sqrtD := math.Sqrt(disc)
	inv2a := 1 / (2 * a)
	t0 := (-b - sqrtD) * inv2a
	t1 := (-b + sqrtD) * inv2a
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	t = t0
	if t <= epsHit {
		t = t1
		inv = true
	}
	if t <= epsHit {
		return 0, false, false
	}
	return t, inv, true
}

func (s *Spheres) intersect(i int, O, D r3.Vec) (objectHit, bool) {
	C, r := s.Position[i], s.Radius[i]
	t, inv, ok := intersectRaySphere(O, D, C, r)
	if !ok {
		return objectHit{}, false
	}
	P := r3.Add(O, r3.Scale(t, D))
	hit := objectHit{
		t:     t,
		N:     r3.Scale(1/r, r3.Sub(P, C)),
		mat:   s.Material,
		color: s.Color[i],
		inv:   inv,
	}
	if !inv && s.OutlineWidth > 0 && s.Outline != nil {
		// squared distance between the ray line and the center
		oc := r3.Sub(C, O)
		dd := r3.Dot(D, D)
		proj := r3.Dot(oc, D)
		d2 := r3.Dot(oc, oc) - proj*proj/dd
		inner := r - s.OutlineWidth
		if inner <= 0 || d2 > inner*inner {
			hit.mat = s.Outline
		}
	}
	return hit, true
}
