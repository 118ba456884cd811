package evergreen

import "math"

// Vec3 is a 3D vector used for positions and Euler rotations throughout the API.
// Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Lerp linearly interpolates from v toward o by t. t is not clamped.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{lerp(v.X, o.X, t), lerp(v.Y, o.Y, t), lerp(v.Z, o.Z, t)}
}

// Color represents an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// RGBA8 returns the color as 8-bit channels with full alpha.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), 0xff
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}

// Range is a general-purpose half-open [Min, Max) range used by the generator.
type Range struct {
	Min, Max float64
}

// Category selects geometry, palette and secondary motion for a particle.
type Category uint8

const (
	CategoryBulk Category = iota // gift boxes forming the tree body
	CategoryGlow                 // small glowing ornaments orbiting the surface
	CategoryStar                 // the single star at the apex
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryBulk:
		return "bulk"
	case CategoryGlow:
		return "glow"
	case CategoryStar:
		return "star"
	default:
		return "unknown"
	}
}

// AssemblyState is the two-valued signal driving the animator's target.
type AssemblyState int32

const (
	Scattered AssemblyState = iota // particles dispersed through the scatter sphere
	Assembled                      // particles form the tree with the star on top
)

// String returns the state name.
func (s AssemblyState) String() string {
	if s == Assembled {
		return "assembled"
	}
	return "scattered"
}

// Target returns the assembly factor this state drives toward: 1 or 0.
func (s AssemblyState) Target() float64 {
	if s == Assembled {
		return 1
	}
	return 0
}

// Transform is the per-tick render output for one particle. Rotation holds
// Euler angles in radians applied in XYZ order.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    float64
	Color    Color
}
