package snaptrace

import (
	"fmt"
	"image"
	"strings"
	"time"
)

// Run renders the trajectory at trajPath. By default it writes a looping GIF to
// outPath and hands the movie to every extra display. With PNG or RAW set it
// writes one PNG and/or raw radiance dump per frame next to outPath instead.
func Run(trajPath, outPath, cfgPath string, extra ...Display) error {
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	if Debug {
		cfg.Log.Level = "debug"
	}
	logger := NewLogger(cfg.Log, nil)
	SetLogger(logger)

	frames, err := LoadTrajectory(trajPath)
	if err != nil {
		return err
	}
	r := NewRenderer(cfg, logger)
	prefix := strings.TrimSuffix(outPath, ".gif")

	start := time.Now()
	if PNG || RAW {
		imgs := make([]*image.NRGBA, 0, len(frames))
		for k, f := range frames {
			img, err := r.Render(f)
			if err != nil {
				return fmt.Errorf("frame %d: %w", k, err)
			}
			if RAW {
				raw := fmt.Sprintf("%s_%d.raw", prefix, k)
				if err := r.Tracer.SaveRawRGB64(raw); err != nil {
					return err
				}
				DebugLog("Saved raw frame: %s", raw)
			}
			imgs = append(imgs, img)
		}
		if PNG {
			if err := SavePNGSequence(imgs, prefix); err != nil {
				return err
			}
			DebugLog("Saved PNG sequence with prefix: %s", prefix)
		}
		DebugLog("Frames: %d, time: %s", len(frames), time.Since(start))
		return nil
	}

	m, err := r.RenderMovie(frames)
	if err != nil {
		return err
	}
	DebugLog("Frames: %d, time: %s", len(frames), time.Since(start))
	displays := append([]Display{FileDisplay{Path: outPath}}, extra...)
	for _, d := range displays {
		if err := d.Show(m); err != nil {
			return err
		}
	}
	return nil
}
