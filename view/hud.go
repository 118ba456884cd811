package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/evergreen"
)

// hudRefresh is how often, in seconds, the overlay text is rebuilt.
const hudRefresh = 0.5

// hud shows FPS, TPS, the assembly state and factor. The text is refreshed
// every hudRefresh seconds and drawn onto its own backing image.
type hud struct {
	img   *ebiten.Image
	text  string
	since float64
	dirty bool
}

func newHUD() *hud {
	return &hud{since: hudRefresh}
}

func (h *hud) update(dt float64, eng *evergreen.Engine) {
	h.since += dt
	if h.since < hudRefresh {
		return
	}
	h.since = 0
	h.text = hudText(ebiten.ActualFPS(), ebiten.ActualTPS(), eng.State(), eng.Factor(), len(eng.Records()))
	h.dirty = true
}

func (h *hud) draw(screen *ebiten.Image) {
	if h.img == nil {
		// 220x64 fits four lines of debug text.
		h.img = ebiten.NewImage(220, 64)
	}
	if h.dirty {
		h.img.Clear()
		// Semi-transparent background for readability
		h.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(h.img, h.text)
		h.dirty = false
	}
	screen.DrawImage(h.img, nil)
}

func hudText(fps, tps float64, state evergreen.AssemblyState, factor float64, particles int) string {
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f\n%s  %.2f\nparticles: %d\n[space] toggle  [drag] orbit",
		fps, tps, state, factor, particles)
}

func rgba(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
