package snaptrace

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is the wireframe outline of a periodic simulation box centered on the origin.
// Dims is [Lx, Ly, Lz, xy, xz, yz]; the edges are 12 capped cylinders of Radius.
type Box struct {
	Dims     [6]Real
	Radius   Real
	Material *Material
	Edges    [12][2]r3.Vec
}

// boxDims expands 1..6 box values to [Lx, Ly, Lz, xy, xz, yz]. A single value is a
// cube; zero Ly/Lz default to Lx.
func boxDims(v []Real) ([6]Real, error) {
	var d [6]Real
	if len(v) == 0 || len(v) > 6 {
		return d, fmt.Errorf("box needs 1 to 6 values, got %d", len(v))
	}
	copy(d[:], v)
	for i, x := range d {
		if !isFinite(x) {
			return d, fmt.Errorf("box value %d is not finite", i)
		}
	}
	if !(d[0] > 0) {
		return d, fmt.Errorf("box edge length must be > 0, got %.6g", d[0])
	}
	if d[1] == 0 {
		d[1] = d[0]
	}
	if d[2] == 0 {
		d[2] = d[0]
	}
	if d[1] < 0 || d[2] < 0 {
		return d, fmt.Errorf("box edge lengths must be > 0, got %+v", d[:3])
	}
	return d, nil
}

// boxMatrix returns the matrix whose columns are the box lattice vectors.
func boxMatrix(d [6]Real) Mat3 {
	Lx, Ly, Lz, xy, xz, yz := d[0], d[1], d[2], d[3], d[4], d[5]
	return Mat3FromCols(
		r3.Vec{X: Lx},
		r3.Vec{X: xy * Ly, Y: Ly},
		r3.Vec{X: xz * Lz, Y: yz * Lz, Z: Lz},
	)
}

// boxCorners returns the 8 corners; corner bit 0/1/2 selects the +a1/+a2/+a3 side.
func boxCorners(d [6]Real) [8]r3.Vec {
	h := boxMatrix(d)
	var out [8]r3.Vec
	for c := 0; c < 8; c++ {
		f := r3.Vec{
			X: Real(c&1) - 0.5,
			Y: Real((c>>1)&1) - 0.5,
			Z: Real((c>>2)&1) - 0.5,
		}
		out[c] = h.MulVec(f)
	}
	return out
}

func NewBox(dims []Real, radius Real, mat *Material) (*Box, error) {
	d, err := boxDims(dims)
	if err != nil {
		return nil, err
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("box radius must be > 0, got %.6g", radius)
	}
	if mat == nil {
		return nil, errors.New("box material must be set")
	}
	b := &Box{Dims: d, Radius: radius, Material: mat}
	corners := boxCorners(d)
	e := 0
	for c := 0; c < 8; c++ {
		for bit := 0; bit < 3; bit++ {
			if c&(1<<bit) != 0 {
				continue
			}
			b.Edges[e] = [2]r3.Vec{corners[c], corners[c|1<<bit]}
			e++
		}
	}
	DebugLog("Created box dims=%+v radius=%.3f", d, radius)
	return b, nil
}

func (b *Box) bounds(e int) (r3.Vec, r3.Vec) {
	ext := r3.Vec{X: b.Radius, Y: b.Radius, Z: b.Radius}
	p1, p2 := b.Edges[e][0], b.Edges[e][1]
	return r3.Sub(vmin(p1, p2), ext), r3.Add(vmax(p1, p2), ext)
}

func (b *Box) intersect(e int, O, D r3.Vec) (objectHit, bool) {
	t, N, ok := intersectRayCylinder(O, D, b.Edges[e][0], b.Edges[e][1], b.Radius)
	if !ok {
		return objectHit{}, false
	}
	return objectHit{t: t, N: N, mat: b.Material, color: b.Material.Color}, true
}

// intersectRayCylinder intersects a ray with a finite cylinder from p1 to p2, caps included.
// It returns the smallest positive t and the outward surface normal there.
func intersectRayCylinder(O, D, p1, p2 r3.Vec, radius Real) (Real, r3.Vec, bool) {
	v := r3.Sub(p2, p1)
	L := r3.Norm(v)
	if L == 0 {
		return 0, r3.Vec{}, false
	}
	axis := r3.Scale(1/L, v)
	dp := r3.Sub(O, p1)

	tMin := math.Inf(1)
	hit := false
	var N r3.Vec

	// lateral surface
	dDotA := r3.Dot(D, axis)
	dPerp := r3.Sub(D, r3.Scale(dDotA, axis))
	dpPerp := r3.Sub(dp, r3.Scale(r3.Dot(dp, axis), axis))
	A := r3.Dot(dPerp, dPerp)
	B := 2 * r3.Dot(dPerp, dpPerp)
	C := r3.Dot(dpPerp, dpPerp) - radius*radius
	if A > 1e-18 {
		if disc := B*B - 4*A*C; disc >= 0 {
			sq := math.Sqrt(disc)
			for _, t := range [2]Real{(-B - sq) / (2 * A), (-B + sq) / (2 * A)} {
				if t <= epsHit || t >= tMin {
					continue
				}
				P := r3.Add(O, r3.Scale(t, D))
				proj := r3.Dot(r3.Sub(P, p1), axis)
				if proj < 0 || proj > L {
					continue
				}
				tMin, hit = t, true
				N = unitOr(r3.Sub(P, r3.Add(p1, r3.Scale(proj, axis))), axis)
			}
		}
	}

	// caps
	if math.Abs(dDotA) > 1e-18 {
		for _, cp := range [2]struct {
			c r3.Vec
			n r3.Vec
		}{{p1, r3.Scale(-1, axis)}, {p2, axis}} {
			t := r3.Dot(r3.Sub(cp.c, O), axis) / dDotA
			if t <= epsHit || t >= tMin {
				continue
			}
			P := r3.Add(O, r3.Scale(t, D))
			if r3.Norm2(r3.Sub(P, cp.c)) <= radius*radius {
				tMin, hit, N = t, true, cp.n
			}
		}
	}
	return tMin, N, hit
}
