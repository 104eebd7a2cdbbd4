package snaptrace

import (
	"fmt"
	"image"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"
)

// Fixed palette of the renderer, in linear RGB.
var (
	Blue   = Linear(RGB{0.25, 0.5, 1}).Scale(0.9)
	Orange = Linear(RGB{1.0, 0.714, 0.169}).Scale(0.9)
	Yellow = Linear(RGB{252.0 / 255, 209.0 / 255, 1.0 / 255})
	White  = RGB{1, 1, 1}
	Black  = RGB{}
)

// DefaultTypeColors colors type "A" blue and type "B" orange.
func DefaultTypeColors() map[string]RGB {
	return map[string]RGB{"A": Blue, "B": Orange}
}

// Renderer turns snapshots into images and movies. The zero value is not usable;
// use NewRenderer, or the package-level Render and RenderMovie.
type Renderer struct {
	Device     *Device
	Tracer     *PathTracer
	Samples    int  // samples per pixel
	DelayMs    int  // movie frame duration
	MaxGIFKiB  Real // movies above this size get a warning
	TypeColors map[string]RGB
	Triclinic  bool         // outline the snapshot's full box instead of a cube of side L
	Logger     *slog.Logger // nil => package Logger
}

// NewRenderer builds a renderer with its own device and tracer sized by cfg.
func NewRenderer(cfg *Config, logger *slog.Logger) *Renderer {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.withDefaults()
	}
	d := NewDevice()
	if cfg.Render.Workers > 0 {
		d.Workers = cfg.Render.Workers
	}
	t := NewPathTracer(d, cfg.Render.Width, cfg.Render.Height)
	t.MaxBounces = cfg.Render.MaxBounces
	t.Seed = cfg.Render.Seed
	return &Renderer{
		Device:     d,
		Tracer:     t,
		Samples:    cfg.Render.Samples,
		DelayMs:    cfg.Movie.DelayMs,
		MaxGIFKiB:  cfg.Movie.MaxKiB,
		TypeColors: DefaultTypeColors(),
		Triclinic:  cfg.Render.Triclinic,
		Logger:     logger,
	}
}

func (r *Renderer) log() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return Logger
}

// Render renders one snapshot with the shared device and tracer.
func Render(snap *Snapshot) (*image.NRGBA, error) {
	return std.Render(snap)
}

// Render warns about an unsupported tracer version, builds the scene for snap and
// samples it. The result has the tracer's fixed size whatever the particle count.
func (r *Renderer) Render(snap *Snapshot) (*image.NRGBA, error) {
	if v := r.Device.Version; !supportedVersion(v) {
		r.log().Warn("unsupported tracer version, expect errors",
			"version", v, "min", MinVersion, "max", MaxVersion)
	}
	scene, err := r.BuildScene(snap)
	if err != nil {
		return nil, err
	}
	return r.Tracer.Sample(scene, r.Samples)
}

// BuildScene configures spheres, box, lights, camera and background for snap.
func (r *Renderer) BuildScene(snap *Snapshot) (*Scene, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	L := snap.L()
	scene := NewScene(r.Device)

	// Per-sphere colors drive the look; Yellow only shows for unknown types.
	mat, err := NewMaterial(Yellow, Roughness, Specular, 0, 1)
	if err != nil {
		return nil, err
	}
	n := len(snap.Particles.Position)
	spheres, err := NewSpheres(n, SphereRadius, mat)
	if err != nil {
		return nil, err
	}
	for i, p := range snap.Particles.Position {
		spheres.Position[i] = r3.Vec{X: p[0], Y: p[1], Z: p[2]}
	}
	spheres.OutlineWidth = OutlineWidth
	for i, tid := range snap.Particles.TypeID {
		if c, ok := r.TypeColors[tid]; ok {
			spheres.Color[i] = c
		}
	}
	scene.AddSpheres(spheres)

	// a cube of side L unless the full (possibly tilted) box was asked for
	dims := []Real{L, L, L, 0, 0, 0}
	if r.Triclinic {
		dims = snap.Configuration.Box
	}
	box, err := NewBox(dims, BoxRadius, SolidMaterial(Black))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	scene.AddBox(box)

	scene.Lights = DefaultLights()
	cam, err := NewOrthographic(
		r3.Vec{X: L * 2, Y: L, Z: L * 2},
		r3.Vec{},
		r3.Vec{Y: 1},
		L*1.4+1,
	)
	if err != nil {
		return nil, err
	}
	scene.Camera = cam
	scene.Background = White
	scene.BackgroundAlpha = 1
	DebugLog("Built scene: particles=%d, L=%.3f", n, L)
	return scene, nil
}
