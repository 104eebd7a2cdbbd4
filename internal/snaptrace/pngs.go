package snaptrace

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

// SavePNG writes img as a lossless PNG.
func SavePNG(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression} // still lossless
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// pngName is prefix_<k>.png, k zero-padded to the width of n-1.
func pngName(prefix string, k, n int) string {
	width := 1
	if n > 1 {
		width = int(math.Log10(Real(n-1))) + 1
	}
	return fmt.Sprintf("%s_%0*d.png", prefix, width, k)
}

// SavePNGSequence writes one PNG per frame: prefix_0.png, prefix_1.png, ...
func SavePNGSequence(frames []*image.NRGBA, prefix string) error {
	n := len(frames)
	for k, img := range frames {
		full := pngName(prefix, k, n)
		if err := SavePNG(img, full); err != nil {
			return err
		}
		DebugLog("[PNG] %s (%d/%d)", full, k+1, n)
	}
	return nil
}
