// Package viewer plays rendered movies in a desktop window.
package viewer

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lukaszgryglicki/snaptrace/internal/snaptrace"
)

// Window shows a movie in a looping ebiten window. It blocks until the window closes.
type Window struct {
	Title string
	Scale int // window pixels per frame pixel
	TPS   int
}

// NewWindow builds a window from the view section of cfg.
func NewWindow(cfg snaptrace.ViewCfg) Window {
	return Window{Title: cfg.Title, Scale: cfg.Scale, TPS: snaptrace.ViewTPS}
}

func (w Window) Show(m *snaptrace.Movie) error {
	if m == nil || m.GIF == nil || len(m.GIF.Image) == 0 {
		return snaptrace.ErrNoFrames
	}
	tps := w.TPS
	if tps <= 0 {
		tps = snaptrace.ViewTPS
	}
	scale := w.Scale
	if scale <= 0 {
		scale = snaptrace.ViewScale
	}
	p := newPlayer(m, tps)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(p.w*scale, p.h*scale)
	ebiten.SetTPS(tps)
	err := ebiten.RunGame(p)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type player struct {
	frames []*ebiten.Image
	ticks  []int // ticks each frame stays on screen
	w, h   int
	cur    int
	tick   int
}

func newPlayer(m *snaptrace.Movie, tps int) *player {
	b := m.GIF.Image[0].Bounds()
	p := &player{w: b.Dx(), h: b.Dy()}
	for i, img := range m.GIF.Image {
		p.frames = append(p.frames, ebiten.NewImageFromImage(img))
		delay := 0
		if i < len(m.GIF.Delay) {
			delay = m.GIF.Delay[i]
		}
		p.ticks = append(p.ticks, frameTicks(delay, tps))
	}
	return p
}

// frameTicks converts a GIF delay in 100ths of a second to update ticks, at least one.
func frameTicks(delay, tps int) int {
	n := delay * tps / 100
	if n < 1 {
		n = 1
	}
	return n
}

func (p *player) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	p.tick++
	if p.tick >= p.ticks[p.cur] {
		p.tick = 0
		p.cur = (p.cur + 1) % len(p.frames)
	}
	return nil
}

func (p *player) Draw(screen *ebiten.Image) {
	screen.DrawImage(p.frames[p.cur], nil)
}

func (p *player) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.w, p.h
}
