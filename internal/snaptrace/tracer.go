package snaptrace

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"runtime"
)

// Device describes where tracing runs: the number of worker goroutines and the
// tracer version reported to callers.
type Device struct {
	Workers int
	Version string
}

func NewDevice() *Device {
	return &Device{Workers: runtime.NumCPU(), Version: Version}
}

// PathTracer renders scenes into fixed-size images. It keeps its linear radiance
// buffer between calls, so one tracer must not sample two scenes at once.
type PathTracer struct {
	Device     *Device
	W, H       int
	MaxBounces int
	Seed       int64 // 0 => seeded from the clock

	Buf   []Real // flat linear RGB of the last sample: (j*W + i)*3 + c
	Alpha []Real // per-pixel coverage of the last sample
}

// NewPathTracer allocates the radiance buffers for a w×h output.
func NewPathTracer(d *Device, w, h int) *PathTracer {
	if w <= 0 || h <= 0 {
		panic("image resolution must be positive")
	}
	if d == nil {
		d = NewDevice()
	}
	t := &PathTracer{
		Device:     d,
		W:          w,
		H:          h,
		MaxBounces: MaxBounces,
		Buf:        make([]Real, w*h*3),
		Alpha:      make([]Real, w*h),
	}
	DebugLog("Created path tracer resolution=(%d, %d), workers=%d", w, h, d.Workers)
	return t
}

// Flat buffer index helper (c ∈ {ChR,ChG,ChB}).
func (t *PathTracer) idx(i, j, c int) int {
	return (j*t.W+i)*3 + c
}

// Sample renders scene with samples rays per pixel and returns a new W×H image.
// Colors are converted from linear to sRGB; alpha is the fraction of samples that hit
// geometry, blended with the scene's background alpha.
func (t *PathTracer) Sample(scene *Scene, samples int) (*image.NRGBA, error) {
	if scene == nil {
		return nil, errors.New("scene must be set")
	}
	if scene.Camera == nil {
		return nil, errors.New("scene has no camera")
	}
	if samples <= 0 {
		return nil, fmt.Errorf("samples must be > 0, got %d", samples)
	}
	scene.prepare()
	if DumpBVH {
		DumpAABBBVH(os.Stdout, scene)
	}
	if Debug {
		stats.reset()
	}

	DebugLogOnce("Sampling with workers=%d, max bounces=%d", t.Device.Workers, t.MaxBounces)
	t.castRays(scene, samples)

	if Debug {
		raysStats()
	}
	return t.Image(), nil
}

// Image converts the last sample to an 8-bit sRGB image.
func (t *PathTracer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.W, t.H))
	toByte := func(v Real) uint8 {
		return uint8(math.Round(clamp01(v) * 255))
	}
	for j := 0; j < t.H; j++ {
		rowOff := j * img.Stride
		for i := 0; i < t.W; i++ {
			base := t.idx(i, j, ChR)
			p := rowOff + i*4
			img.Pix[p+0] = toByte(linearToSRGB(t.Buf[base+ChR]))
			img.Pix[p+1] = toByte(linearToSRGB(t.Buf[base+ChG]))
			img.Pix[p+2] = toByte(linearToSRGB(t.Buf[base+ChB]))
			img.Pix[p+3] = toByte(t.Alpha[j*t.W+i])
		}
	}
	return img
}
