package snaptrace

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Orthographic is a parallel-projection camera. Height is the visible extent of the
// film along Up in scene units; the width follows the image aspect ratio.
type Orthographic struct {
	Position r3.Vec
	LookAt   r3.Vec
	Up       r3.Vec
	Height   Real

	// cached orthonormal basis
	dir, right, up r3.Vec
}

func NewOrthographic(position, lookAt, up r3.Vec, height Real) (*Orthographic, error) {
	if !(height > 0) || !isFinite(height) {
		return nil, fmt.Errorf("camera height must be > 0, got %.6g", height)
	}
	d := r3.Sub(lookAt, position)
	if r3.Norm(d) == 0 {
		return nil, errors.New("camera position and look_at must differ")
	}
	d = r3.Unit(d)
	right := r3.Cross(d, up)
	if r3.Norm(right) < 1e-12 {
		return nil, errors.New("camera up must not be parallel to the view direction")
	}
	right = r3.Unit(right)
	c := &Orthographic{
		Position: position,
		LookAt:   lookAt,
		Up:       up,
		Height:   height,
		dir:      d,
		right:    right,
		up:       r3.Cross(right, d),
	}
	DebugLog("Created orthographic camera %+v", c)
	return c, nil
}

// Ray returns the origin and unit direction for film coordinates fx, fy in [-0.5, 0.5]
// (fy grows upward). aspect is width/height of the image.
func (c *Orthographic) Ray(fx, fy, aspect Real) (r3.Vec, r3.Vec) {
	o := r3.Add(c.Position, r3.Add(
		r3.Scale(fx*c.Height*aspect, c.right),
		r3.Scale(fy*c.Height, c.up),
	))
	return o, c.dir
}
