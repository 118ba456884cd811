// Package term draws an evergreen engine onto a terminal with tcell.
//
// Each terminal cell keeps the nearest particle that projects into it. Boxes,
// ornaments and the star get their own glyphs; colors fade toward the
// background with depth.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/evergreen"
	"github.com/phanxgames/evergreen/camera"
)

// cellAspect is the height/width ratio of a terminal cell.
const cellAspect = 2.0

// Glyphs per category. Small boxes use the lighter glyph.
const (
	glyphBox      = '■'
	glyphBoxSmall = '▪'
	glyphGlow     = '•'
	glyphStar     = '★'

	smallBoxScale = 0.45
	fogStrength   = 0.7
	fogSpan       = 50.0
)

// cell is one slot of the depth buffer.
type cell struct {
	depth float64
	glyph rune
	color evergreen.Color
	bold  bool
}

// Renderer projects engine transforms onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	orbit  *camera.Orbit
	bg     tcell.Color
	cells  []cell
	w, h   int
}

// NewRenderer draws onto screen, which must already be initialized.
func NewRenderer(screen tcell.Screen) *Renderer {
	r, g, b, _ := evergreen.Void.RGBA8()
	return &Renderer{
		screen: screen,
		orbit:  camera.NewOrbit(),
		bg:     tcell.NewRGBColor(int32(r), int32(g), int32(b)),
	}
}

// Orbit returns the camera.
func (r *Renderer) Orbit() *camera.Orbit {
	return r.orbit
}

// Draw renders the current transforms of eng and shows the frame.
func (r *Renderer) Draw(eng *evergreen.Engine) {
	w, h := r.screen.Size()
	r.resize(w, h)
	if w == 0 || h == 0 {
		return
	}
	r.rasterize(eng, r.orbit.Projector(w, h, cellAspect))

	base := tcell.StyleDefault.Background(r.bg)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := &r.cells[y*w+x]
			if c.glyph == 0 {
				r.screen.SetContent(x, y, ' ', nil, base)
				continue
			}
			st := base.Foreground(toTcell(c.color)).Bold(c.bold)
			r.screen.SetContent(x, y, c.glyph, nil, st)
		}
	}
	r.screen.Show()
}

// resize reallocates the depth buffer when the screen size changes.
func (r *Renderer) resize(w, h int) {
	if w == r.w && h == r.h && r.cells != nil {
		return
	}
	r.w, r.h = w, h
	r.cells = make([]cell, w*h)
}

// rasterize fills the depth buffer with the nearest particle per cell.
func (r *Renderer) rasterize(eng *evergreen.Engine, proj camera.Projector) {
	for i := range r.cells {
		r.cells[i] = cell{depth: math.Inf(1)}
	}
	records := eng.Records()
	for i, tr := range eng.Transforms() {
		sx, sy, depth, ok := proj.Project(tr.Position)
		if !ok {
			continue
		}
		x, y := int(math.Floor(sx)), int(math.Floor(sy))
		if x < 0 || y < 0 || x >= r.w || y >= r.h {
			continue
		}
		c := &r.cells[y*r.w+x]
		if depth >= c.depth {
			continue
		}
		fog := clamp01((depth-(r.orbit.Distance-fogSpan/2))/fogSpan) * fogStrength
		*c = cell{depth: depth, color: tr.Color.Blend(evergreen.Void, fog)}
		switch records[i].Category {
		case evergreen.CategoryBulk:
			c.glyph = glyphBox
			if tr.Scale < smallBoxScale {
				c.glyph = glyphBoxSmall
			}
		case evergreen.CategoryGlow:
			c.glyph = glyphGlow
			c.color = tr.Color
			c.bold = true
		case evergreen.CategoryStar:
			c.glyph = glyphStar
			c.color = tr.Color
			c.bold = true
		}
	}
}

func toTcell(c evergreen.Color) tcell.Color {
	r, g, b, _ := c.RGBA8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
