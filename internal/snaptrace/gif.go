package snaptrace

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"

	"github.com/ericpauley/go-quantize/quantize"
)

var ErrNoFrames = errors.New("no frames to render")

// Movie is an encoded looping GIF and the frames it was built from.
type Movie struct {
	GIF  *gif.GIF
	Data []byte
}

// SizeKiB is the encoded size in KiB.
func (m *Movie) SizeKiB() Real { return Real(len(m.Data)) / 1024 }

// Frames is the number of frames, the trailing blank one included.
func (m *Movie) Frames() int { return len(m.GIF.Image) }

// RenderMovie renders frames with the shared device and tracer.
func RenderMovie(frames []*Snapshot) (*Movie, error) {
	return std.RenderMovie(frames)
}

// RenderMovie renders every snapshot, quantizes all frames to the adaptive palette of
// frame 0, appends a blank white frame and encodes a looping GIF in memory.
func (r *Renderer) RenderMovie(frames []*Snapshot) (*Movie, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	delay := r.DelayMs / 10 // 100ths of a second
	if delay <= 0 {
		delay = GIFDelayMs / 10
	}

	first, err := r.Render(frames[0])
	if err != nil {
		return nil, fmt.Errorf("frame 0: %w", err)
	}
	pal := AdaptivePalette(first, PaletteSize)

	n := len(frames) + 1
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, n),
		Delay:     make([]int, 0, n),
		LoopCount: 0,
	}
	add := func(img image.Image) {
		out.Image = append(out.Image, QuantizeTo(img, pal))
		out.Delay = append(out.Delay, delay)
	}
	add(first)

	for i, f := range frames[1:] {
		img, err := r.Render(f)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i+1, err)
		}
		add(img)
		DebugLog("[GIF] %d/%d", i+2, len(frames))
	}
	add(BlankFrame(first.Bounds()))

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return nil, err
	}
	m := &Movie{GIF: out, Data: buf.Bytes()}
	if kib := m.SizeKiB(); kib > r.MaxGIFKiB {
		r.log().Warn("large GIF", "kib", kib, "limit_kib", r.MaxGIFKiB)
	}
	DebugLog("Encoded movie: frames=%d, size=%.1f KiB", m.Frames(), m.SizeKiB())
	return m, nil
}

// AdaptivePalette computes an n-color median cut palette of img's RGB (alpha ignored).
func AdaptivePalette(img image.Image, n int) color.Palette {
	q := quantize.MedianCutQuantizer{}
	return q.Quantize(make(color.Palette, 0, n), opaque(img))
}

// QuantizeTo maps img onto pal with Floyd-Steinberg dithering (alpha ignored).
func QuantizeTo(img image.Image, pal color.Palette) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, pal)
	draw.FloydSteinberg.Draw(p, b, opaque(img), b.Min)
	return p
}

// BlankFrame is an all-white opaque image.
func BlankFrame(r image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(r)
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// opaque drops the alpha channel: every pixel keeps its color channels at alpha 255.
func opaque(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	if src, ok := img.(*image.NRGBA); ok {
		copy(out.Pix, src.Pix)
		for i := 3; i < len(out.Pix); i += 4 {
			out.Pix[i] = 255
		}
		return out
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = 255
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
