package snaptrace

var (
	Debug     = false // set to true for verbose debug output
	PNG       = false // set to true to save one PNG per frame instead of the GIF movie
	RAW       = false // set to true to also dump raw linear radiance per frame
	AlwaysBVH = false // set to true to always use BVH for nearest hit calculations
	NeverBVH  = false // set to true to never use BVH for nearest hit calculations
	DumpBVH   = false // set to true to print the BVH of every sampled scene
)

// Shared by the package-level Render and RenderMovie. Not safe for concurrent use.
var (
	device = NewDevice()
	tracer = NewPathTracer(device, FrameW, FrameH)
	std    = &Renderer{
		Device:     device,
		Tracer:     tracer,
		Samples:    Samples,
		DelayMs:    GIFDelayMs,
		MaxGIFKiB:  MaxGIFKiB,
		TypeColors: DefaultTypeColors(),
	}
)

// Compile time check for the display implementations in this package.
var _ Display = FileDisplay{}
