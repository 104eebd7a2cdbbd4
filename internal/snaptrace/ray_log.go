package snaptrace

import (
	"sync/atomic"
)

type Category uint8

const (
	Hit         Category = iota // camera ray hit geometry
	Miss                        // camera ray missed, background
	Solid                       // path ended on a solid (unlit) material
	Diffuse                     // diffuse bounce
	Reflect                     // specular bounce
	Absorb                      // specular lobe went below the surface
	Escape                      // path left the scene toward the lights
	BounceLimit                 // path hit MaxBounces
	numCategories
)

var categoryNames = [numCategories]string{
	Hit:         "hit",
	Miss:        "miss",
	Solid:       "solid",
	Diffuse:     "diffuse",
	Reflect:     "reflect",
	Absorb:      "absorb",
	Escape:      "escape",
	BounceLimit: "bounce_limit",
}

func (c Category) String() string {
	if c < numCategories {
		return categoryNames[c]
	}
	return "unknown"
}

// RayStats counts path events; it is only fed when Debug is on.
type RayStats struct {
	counts [numCategories]atomic.Int64
}

var stats = &RayStats{}

func logRay(c Category) {
	stats.counts[c].Add(1)
}

// Count returns the number of events of category c since the last reset.
func (s *RayStats) Count(c Category) int64 { return s.counts[c].Load() }

func (s *RayStats) reset() {
	for i := range s.counts {
		s.counts[i].Store(0)
	}
}

func raysStats() {
	for c := Category(0); c < numCategories; c++ {
		DebugLog("Ray type %s: %d", c, stats.Count(c))
	}
}
