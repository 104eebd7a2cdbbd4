package snaptrace

// Channel indices for readability.
const (
	ChR          = 0
	ChG          = 1
	ChB          = 2
	FrameW       = 300
	FrameH       = 300
	Samples      = 100 // samples per pixel
	MaxBounces   = 6
	SphereRadius = 0.5
	OutlineWidth = 0.04
	BoxRadius    = 0.02
	Roughness    = 0.5
	Specular     = 0.5  // dielectric F0 = 0.08*Specular
	GIFDelayMs   = 1000 // per-frame display time
	MaxGIFKiB    = 3000 // larger movies get a warning
	PaletteSize  = 256
	MinVersion   = "0.13.0" // supported tracer versions: [MinVersion, MaxVersion)
	MaxVersion   = "0.14.0"
	ViewScale    = 2
	ViewTPS      = 60

	AABBBVHMaxLeafSize  = 2
	AABBBVHFromNObjects = 8 // below this the scene is scanned linearly
	// hot-loop constants reused across bounces
	epsHit    = 1e-9
	bumpShift = 1e-6
)
