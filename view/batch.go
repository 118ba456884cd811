package view

import (
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/evergreen"
	"github.com/phanxgames/evergreen/camera"
)

// shape is the silhouette drawn for a sprite.
type shape uint8

const (
	shapeBox  shape = iota // rotated square
	shapeGlow              // small additive square
	shapeStar              // diamond that narrows as it spins
	shapeHalo              // soft additive square behind the star
)

// Sprite sizes in world units, matching the unit box, the radius-1
// icosahedron and the radius-1 octahedron.
const (
	boxSize  = 1.0
	glowSize = 2.0
	starSize = 2.0
	haloSize = 5.0

	haloAlpha = 0.3
	// fogStrength is how far the farthest particles fade toward the background.
	fogStrength = 0.6
	// fogSpan is the depth range, centered on the target, over which fog ramps.
	fogSpan = 50.0
)

// sprite is one projected particle ready for submission.
type sprite struct {
	x, y   float64
	depth  float64
	w, h   float64
	angle  float64
	color  evergreen.Color
	alpha  float32
	shape  shape
	source int // index into the engine's transform arena
}

// buildSprites projects every engine transform through proj, appends the
// visible ones to buf and sorts them far to near.
func buildSprites(buf []sprite, eng *evergreen.Engine, proj camera.Projector, orbitDist float64) []sprite {
	buf = buf[:0]
	records := eng.Records()
	for i, tr := range eng.Transforms() {
		sx, sy, depth, ok := proj.Project(tr.Position)
		if !ok {
			continue
		}
		px := proj.ScaleAt(depth) * tr.Scale
		fog := clamp01((depth-(orbitDist-fogSpan/2))/fogSpan) * fogStrength
		c := tr.Color.Blend(evergreen.Void, fog)

		switch records[i].Category {
		case evergreen.CategoryBulk:
			size := px * boxSize
			buf = append(buf, sprite{
				x: sx, y: sy, depth: depth, w: size, h: size,
				angle: tr.Rotation.Z + tr.Rotation.X*0.5,
				color: c, alpha: 1, shape: shapeBox, source: i,
			})
		case evergreen.CategoryGlow:
			size := px * glowSize
			buf = append(buf, sprite{
				x: sx, y: sy, depth: depth, w: size, h: size,
				color: tr.Color, alpha: 1, shape: shapeGlow, source: i,
			})
		case evergreen.CategoryStar:
			halo := px * haloSize
			buf = append(buf, sprite{
				x: sx, y: sy, depth: depth + 0.01, w: halo, h: halo,
				color: evergreen.GoldRose, alpha: haloAlpha, shape: shapeHalo, source: i,
			})
			size := px * starSize
			spin := 0.35 + 0.65*math.Abs(math.Cos(tr.Rotation.Y))
			buf = append(buf, sprite{
				x: sx, y: sy, depth: depth, w: size * spin, h: size,
				angle: tr.Rotation.Z,
				color: tr.Color, alpha: 1, shape: shapeStar, source: i,
			})
		}
	}
	slices.SortStableFunc(buf, func(a, b sprite) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		default:
			return 0
		}
	})
	return buf
}

// blend returns the compositing mode for a sprite's shape.
func (s *sprite) blend() ebiten.Blend {
	if s.shape == shapeGlow || s.shape == shapeHalo {
		return ebiten.BlendLighter
	}
	return ebiten.BlendSourceOver
}

// submitSprites draws sprites onto target in order, reusing op.
func submitSprites(target *ebiten.Image, sprites []sprite, op *ebiten.DrawImageOptions) {
	img := ensureWhitePixel()
	for i := range sprites {
		s := &sprites[i]
		op.GeoM.Reset()
		// Unit pixel centered on the origin, then sized, rotated and placed.
		op.GeoM.Translate(-0.5, -0.5)
		op.GeoM.Scale(s.w, s.h)
		if s.shape == shapeStar {
			op.GeoM.Rotate(math.Pi / 4)
		}
		op.GeoM.Rotate(s.angle)
		op.GeoM.Translate(s.x, s.y)

		op.ColorScale.Reset()
		a := s.alpha
		op.ColorScale.Scale(float32(s.color.R)*a, float32(s.color.G)*a, float32(s.color.B)*a, a)
		op.Blend = s.blend()

		target.DrawImage(img, op)
	}
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
