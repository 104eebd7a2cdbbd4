package snaptrace

import (
	"fmt"
	"math"
)

// RGB stores linear color components.
type RGB struct {
	R, G, B Real
}

func (c RGB) Add(o RGB) RGB    { return RGB{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c RGB) Mul(o RGB) RGB    { return RGB{c.R * o.R, c.G * o.G, c.B * o.B} }
func (c RGB) Scale(s Real) RGB { return RGB{c.R * s, c.G * s, c.B * s} }

// Lerp blends c toward o by t in [0,1].
func (c RGB) Lerp(o RGB, t Real) RGB {
	if t >= 1 {
		return o
	}
	return RGB{c.R + (o.R-c.R)*t, c.G + (o.G-c.G)*t, c.B + (o.B-c.B)*t}
}

// Ch returns channel ChR, ChG or ChB.
func (c RGB) Ch(ch int) Real {
	switch ch {
	case ChR:
		return c.R
	case ChG:
		return c.G
	default:
		return c.B
	}
}

// clamp01 clamps each channel to [0,1].
func (c RGB) clamp01() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// Linear converts an sRGB color (components in [0,1]) to linear RGB.
func Linear(c RGB) RGB {
	return RGB{srgbToLinear(c.R), srgbToLinear(c.G), srgbToLinear(c.B)}
}

func srgbToLinear(x Real) Real {
	if x <= 0.04045 {
		return x / 12.92
	}
	return math.Pow((x+0.055)/1.055, 2.4)
}

func linearToSRGB(x Real) Real {
	if x >= 1 {
		return 1
	}
	x = clamp01(x)
	if x <= 0.0031308 {
		return x * 12.92
	}
	return 1.055*math.Pow(x, 1/2.4) - 0.055
}

// Material describes how a geometry responds to light.
type Material struct {
	Color     RGB
	Roughness Real // 0 = mirror-like specular lobe, 1 = very blurry
	Specular  Real // scales the dielectric F0
	// Solid in [0,1]: 1 renders Color flat, without lighting (outlines, box edges).
	Solid Real
	// PrimitiveColorMix in [0,1]: 0 uses Color, 1 uses the per-primitive color.
	PrimitiveColorMix Real
}

// NewMaterial validates every knob to be in [0,1].
func NewMaterial(color RGB, roughness, specular, solid, mix Real) (*Material, error) {
	in01 := func(x Real) bool { return x >= 0 && x <= 1 }
	type knob struct {
		n string
		v Real
	}
	for _, k := range []knob{{"roughness", roughness}, {"specular", specular}, {"solid", solid}, {"primitiveColorMix", mix}} {
		if !in01(k.v) {
			return nil, fmt.Errorf("material %s must be in [0,1], got %.6g", k.n, k.v)
		}
	}
	if color.R < 0 || color.G < 0 || color.B < 0 {
		return nil, fmt.Errorf("material color must be non-negative, got %+v", color)
	}
	return &Material{
		Color:             color,
		Roughness:         roughness,
		Specular:          specular,
		Solid:             solid,
		PrimitiveColorMix: mix,
	}, nil
}

// SolidMaterial is an unlit flat color, used for outlines and box edges.
func SolidMaterial(color RGB) *Material {
	return &Material{Color: color, Solid: 1}
}

func (m *Material) colorFor(prim RGB) RGB { return m.Color.Lerp(prim, m.PrimitiveColorMix) }

func (m *Material) f0() Real { return 0.08 * m.Specular }
