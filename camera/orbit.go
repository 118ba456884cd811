// Package camera provides an auto-rotating orbit camera and the projection
// math shared by the evergreen presentation shells.
package camera

import (
	"math"

	"github.com/phanxgames/evergreen"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Auto-rotate speeds, in turns per minute, for each assembly state.
const (
	AssembledSpin = 0.8
	ScatteredSpin = 0.2

	// spinBlend is how long a speed change takes, in seconds.
	spinBlend = 1.5
)

// Polar angle limits measured from the +Y axis.
const (
	MinPolar = math.Pi / 4
	MaxPolar = math.Pi / 1.5
)

// Orbit circles a target point. Azimuth and Polar place the eye on a sphere
// of radius Distance around Target.
type Orbit struct {
	// Target is the world point the camera looks at.
	Target evergreen.Vec3
	// Distance is the eye's distance from Target.
	Distance float64
	// Azimuth is the angle around the Y axis in radians.
	Azimuth float64
	// Polar is the angle down from the +Y axis in radians, kept within
	// [MinPolar, MaxPolar].
	Polar float64
	// FOV is the vertical field of view in radians.
	FOV float64
	// Near and Far bound the visible depth range.
	Near, Far float64

	spin      float64
	spinTween *gween.Tween
	zoomTween *gween.Tween
}

// NewOrbit returns a camera at (0, 2, 25) looking at the origin with a 45°
// field of view, spinning at the assembled speed.
func NewOrbit() *Orbit {
	eye := evergreen.Vec3{X: 0, Y: 2, Z: 25}
	dist := eye.Len()
	return &Orbit{
		Distance: dist,
		Azimuth:  0,
		Polar:    clampPolar(math.Acos(eye.Y / dist)),
		FOV:      45 * math.Pi / 180,
		Near:     0.1,
		Far:      200,
		spin:     AssembledSpin,
	}
}

// Spin returns the current auto-rotate speed in turns per minute.
func (o *Orbit) Spin() float64 {
	return o.spin
}

// SpinTo eases the auto-rotate speed to turnsPerMinute over duration seconds.
func (o *Orbit) SpinTo(turnsPerMinute float64, duration float32, fn ease.TweenFunc) {
	if duration <= 0 {
		o.spin = turnsPerMinute
		o.spinTween = nil
		return
	}
	o.spinTween = gween.New(float32(o.spin), float32(turnsPerMinute), duration, fn)
}

// FollowState eases the spin toward the speed matching s: brisk when the
// tree is assembled, lazy while scattered.
func (o *Orbit) FollowState(s evergreen.AssemblyState) {
	target := ScatteredSpin
	if s == evergreen.Assembled {
		target = AssembledSpin
	}
	o.SpinTo(target, spinBlend, ease.InOutQuad)
}

// ZoomTo eases Distance to d over duration seconds.
func (o *Orbit) ZoomTo(d float64, duration float32, fn ease.TweenFunc) {
	o.zoomTween = gween.New(float32(o.Distance), float32(d), duration, fn)
}

// Drag rotates the camera by the given angles, clamping the polar angle.
func (o *Orbit) Drag(dAzimuth, dPolar float64) {
	o.Azimuth += dAzimuth
	o.Polar = clampPolar(o.Polar + dPolar)
}

// Update advances the tweens and the auto-rotation by dt seconds.
func (o *Orbit) Update(dt float64) {
	if o.spinTween != nil {
		v, done := o.spinTween.Update(float32(dt))
		o.spin = float64(v)
		if done {
			o.spinTween = nil
		}
	}
	if o.zoomTween != nil {
		v, done := o.zoomTween.Update(float32(dt))
		o.Distance = float64(v)
		if done {
			o.zoomTween = nil
		}
	}
	o.Azimuth = math.Mod(o.Azimuth+o.spin*2*math.Pi/60*dt, 2*math.Pi)
}

// Eye returns the camera position in world space.
func (o *Orbit) Eye() evergreen.Vec3 {
	sinP, cosP := math.Sincos(o.Polar)
	sinA, cosA := math.Sincos(o.Azimuth)
	return o.Target.Add(evergreen.Vec3{
		X: o.Distance * sinP * sinA,
		Y: o.Distance * cosP,
		Z: o.Distance * sinP * cosA,
	})
}

// ViewProj returns projection * view for a viewport of the given aspect ratio.
func (o *Orbit) ViewProj(aspect float64) Mat4 {
	view := LookAt(o.Eye(), o.Target, evergreen.Vec3{Y: 1})
	return Perspective(o.FOV, aspect, o.Near, o.Far).Mul(view)
}

// Projector maps world points to a fixed-size viewport. Build one per frame
// with Orbit.Projector.
type Projector struct {
	vp            Mat4
	width, height float64
	pixelsPerUnit float64
	near, far     float64
}

// Projector snapshots the camera for a width x height viewport. pixelAspect
// is the height/width ratio of one pixel (1 for screens, about 2 for
// terminal cells).
func (o *Orbit) Projector(width, height int, pixelAspect float64) Projector {
	w, h := float64(width), float64(height)
	aspect := w / (h * pixelAspect)
	return Projector{
		vp:            o.ViewProj(aspect),
		width:         w,
		height:        h,
		pixelsPerUnit: h / 2 / math.Tan(o.FOV/2),
		near:          o.Near,
		far:           o.Far,
	}
}

// Project returns the screen position of p and its view depth. ok is false
// when p lies outside the depth range.
func (p Projector) Project(v evergreen.Vec3) (sx, sy, depth float64, ok bool) {
	x, y, _, w := p.vp.Apply(v)
	if w < p.near || w > p.far {
		return 0, 0, w, false
	}
	sx = (x/w + 1) / 2 * p.width
	sy = (1 - y/w) / 2 * p.height
	return sx, sy, w, true
}

// ScaleAt returns how many pixels (rows) one world unit spans at depth.
func (p Projector) ScaleAt(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return p.pixelsPerUnit / depth
}

func clampPolar(v float64) float64 {
	return math.Max(MinPolar, math.Min(MaxPolar, v))
}
