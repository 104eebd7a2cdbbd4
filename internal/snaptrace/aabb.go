package snaptrace

import "gonum.org/v1/gonum/spatial/r3"

type rayRecips struct {
	invX, invY, invZ Real
	parX, parY, parZ bool // parallel flags (|D| < eps)
}

// rayAABB is the slab test. The returned entry distance is clamped to 0 when O
// is inside the box.
func rayAABB(O r3.Vec, minP, maxP r3.Vec, rr rayRecips) (bool, Real) {
	tmin, tmax := -1e300, 1e300

	// X
	if !rr.parX {
		t1 := (minP.X - O.X) * rr.invX
		t2 := (maxP.X - O.X) * rr.invX
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if O.X < minP.X || O.X > maxP.X {
		return false, 0
	}

	// Y
	if !rr.parY {
		t1 := (minP.Y - O.Y) * rr.invY
		t2 := (maxP.Y - O.Y) * rr.invY
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if O.Y < minP.Y || O.Y > maxP.Y {
		return false, 0
	}

	// Z
	if !rr.parZ {
		t1 := (minP.Z - O.Z) * rr.invZ
		t2 := (maxP.Z - O.Z) * rr.invZ
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if O.Z < minP.Z || O.Z > maxP.Z {
		return false, 0
	}

	if tmax < 0 || tmin > tmax {
		return false, 0
	}
	if tmin < 0 {
		tmin = 0
	}
	return true, tmin
}
