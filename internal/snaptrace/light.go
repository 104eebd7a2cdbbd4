package snaptrace

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Light is a directional area light at infinity: a disk of angular half-size Theta
// seen in Direction. A light of color c fully facing a diffuse surface of albedo a
// makes it reflect a*c, whatever Theta is.
type Light struct {
	Direction r3.Vec // unit, points from the scene toward the light
	Color     RGB
	Theta     Real // half-angle in radians, (0, π]

	// cached
	cosTheta Real
	radiance RGB
}

// NewLight constructs a directional light and precomputes its radiance.
func NewLight(dir r3.Vec, color RGB, theta Real) (*Light, error) {
	if theta <= 0 || theta > math.Pi {
		return nil, errors.New("theta must be in (0, π]")
	}
	if r3.Norm(dir) == 0 || !vecFinite(dir) {
		return nil, errors.New("direction must be non-zero")
	}
	if color.R < 0 || color.G < 0 || color.B < 0 {
		return nil, fmt.Errorf("light color must be non-negative, got %+v", color)
	}
	// Irradiance of a cap of radiance L centered on the normal is L*π*sin²θ (θ ≤ π/2),
	// a diffuse surface reflects albedo*E/π, so L = c / sin²θ. Beyond π/2 the
	// visible hemisphere is fully covered.
	s := math.Sin(math.Min(theta, math.Pi/2))
	L := &Light{
		Direction: r3.Unit(dir),
		Color:     color,
		Theta:     theta,
		cosTheta:  math.Cos(theta),
		radiance:  color.Scale(1 / (s * s)),
	}
	DebugLog("Created light %+v", L)
	return L, nil
}

// radianceAlong returns the light's radiance for an escaping unit direction d.
func (l *Light) radianceAlong(d r3.Vec) (RGB, bool) {
	if r3.Dot(d, l.Direction) < l.cosTheta {
		return RGB{}, false
	}
	return l.radiance, true
}

// DefaultLights is the fixed two-light rig: a soft fill from +Z covering the whole
// sphere and a key light from (1,1,1).
func DefaultLights() []*Light {
	fill, err := NewLight(r3.Vec{X: 0, Y: 0, Z: 1}, RGB{0.8, 0.8, 0.8}, math.Pi)
	if err != nil {
		panic(err)
	}
	key, err := NewLight(r3.Vec{X: 1, Y: 1, Z: 1}, RGB{1.1, 1.1, 1.1}, math.Pi/3)
	if err != nil {
		panic(err)
	}
	return []*Light{fill, key}
}
