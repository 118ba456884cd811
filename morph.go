package evergreen

import "math"

const (
	// settleEpsilon is the distance at which the factor snaps to its target.
	settleEpsilon = 0.001

	// hoverThreshold is the factor above which the whole tree bobs.
	hoverThreshold = 0.9
	hoverFrequency = 0.5
	hoverAmplitude = 0.2

	bulkTumbleRate = 2.0
	bulkMinScale   = 0.2

	glowOrbitRadius    = 0.3
	glowOrbitFrequency = 2.0
	glowPulseFrequency = 3.0
	glowPulseAmplitude = 0.3

	starSpinRate    = 0.5
	starWobble      = 0.1
	starScaleMin    = 0.1
	starScaleTarget = 1.2
)

// Animator owns the assembly factor: 0 is fully scattered, 1 fully assembled.
// It approaches its target exponentially, scaled by speed and the tick delta.
type Animator struct {
	speed  float64
	factor float64
}

// NewAnimator returns an animator starting at factor, which is clamped to [0, 1].
func NewAnimator(speed, factor float64) *Animator {
	return &Animator{speed: speed, factor: clamp01(factor)}
}

// Factor returns the current assembly factor.
func (a *Animator) Factor() float64 {
	return a.factor
}

// Advance moves the factor toward the target of state by delta*speed and
// reports whether it now sits exactly on the target.
func (a *Animator) Advance(state AssemblyState, delta float64) bool {
	target := state.Target()
	if math.Abs(a.factor-target) > settleEpsilon {
		a.factor = clamp01(lerp(a.factor, target, delta*a.speed))
	} else {
		a.factor = target
	}
	return a.factor == target
}

// hoverOffset is the vertical bob shared by every particle once the tree has
// nearly formed.
func hoverOffset(t, elapsed float64) float64 {
	if t > hoverThreshold {
		return math.Sin(elapsed*hoverFrequency) * hoverAmplitude
	}
	return 0
}

// particleTransform derives the render transform of rec at factor t. index is
// the particle's position within its category and phases the glow motion.
func particleTransform(rec *ParticleRecord, index int, t, elapsed, hover float64) Transform {
	switch rec.Category {
	case CategoryBulk:
		return bulkTransform(rec, t, elapsed, hover)
	case CategoryGlow:
		return glowTransform(rec, index, t, elapsed, hover)
	case CategoryStar:
		return starTransform(rec, t, elapsed, hover)
	default:
		return Transform{Position: rec.Scatter, Scale: rec.Scale, Color: rec.Color}
	}
}

// bulkTransform tumbles boxes while scattered and freezes them as they land.
func bulkTransform(rec *ParticleRecord, t, elapsed, hover float64) Transform {
	pos := rec.Scatter.Lerp(rec.Assembled, t)
	pos.Y += hover

	spin := elapsed * (1 - t) * bulkTumbleRate
	rot := Vec3{rec.Rotation.X + spin, rec.Rotation.Y + spin, rec.Rotation.Z + spin}

	return Transform{
		Position: pos,
		Rotation: rot,
		Scale:    lerp(0, rec.Scale, t*(1-bulkMinScale)+bulkMinScale),
		Color:    rec.Color,
	}
}

// glowTransform orbits ornaments around their tree slot and pulses their size.
func glowTransform(rec *ParticleRecord, index int, t, elapsed, hover float64) Transform {
	phase := float64(index)
	orbit := t * math.Sin(elapsed+phase) * glowOrbitRadius
	sin, cos := math.Sincos(elapsed*glowOrbitFrequency + phase)

	target := rec.Assembled
	target.X += cos * orbit
	target.Z += sin * orbit

	pos := rec.Scatter.Lerp(target, t)
	pos.Y += hover

	pulse := 1 + math.Sin(elapsed*glowPulseFrequency+phase)*glowPulseAmplitude
	return Transform{
		Position: pos,
		Scale:    rec.Scale * pulse,
		Color:    rec.Color,
	}
}

// starTransform spins the star and pops it in as the tree completes.
func starTransform(rec *ParticleRecord, t, elapsed, hover float64) Transform {
	pos := rec.Scatter.Lerp(rec.Assembled, t)
	pos.Y += hover
	return Transform{
		Position: pos,
		Rotation: Vec3{0, elapsed * starSpinRate, math.Sin(elapsed) * starWobble},
		Scale:    lerp(starScaleMin, starScaleTarget, t),
		Color:    rec.Color,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
