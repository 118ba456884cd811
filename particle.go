package evergreen

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// StarID is the reserved id of the single star record.
const StarID = 9999

// Sampling ranges for the generator.
var (
	bulkRadial = Range{0, 1}
	glowRadial = Range{0.6, 1.2}
	bulkScale  = Range{0.3, 0.8}
	glowScale  = Range{0.1, 0.3}
	tiltRange  = Range{0, math.Pi}

	starScatterXZ = Range{-10, 10}
	starScatterY  = Range{20, 30}
)

const (
	starScale      = 1.5
	starApexOffset = 0.5
)

// ParticleRecord is the immutable per-particle dataset: where the particle
// sits when assembled, where it drifts when scattered, and how it looks.
type ParticleRecord struct {
	// ID is unique within its category; the star uses StarID.
	ID int
	// Assembled is the position on the tree.
	Assembled Vec3
	// Scatter is the position inside the scatter cloud.
	Scatter Vec3
	// Rotation is the base Euler orientation the tumble starts from.
	Rotation Vec3
	// Scale is the base scale, always > 0.
	Scale    float64
	Category Category
	Color    Color
}

// newRand returns a PCG source for seed, or a runtime-seeded one for zero.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GenerateBulkSet creates count records of the given category (bulk or glow)
// distributed in a cone of cfg.Height and cfg.Radius, each with a matching
// point in a sphere of cfg.ScatterRadius. Non-positive or non-finite
// geometry is rejected with ErrInvalidConfig.
func GenerateBulkSet(rng *rand.Rand, count int, category Category, cfg Config) ([]ParticleRecord, error) {
	if err := cfg.validateGeometry(); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %s count must be >= 0, got %d", ErrInvalidConfig, category, count)
	}
	var radial, scale Range
	switch category {
	case CategoryBulk:
		radial, scale = bulkRadial, bulkScale
	case CategoryGlow:
		radial, scale = glowRadial, glowScale
	default:
		return nil, fmt.Errorf("%w: cannot bulk-generate %s particles", ErrInvalidConfig, category)
	}
	palette := paletteFor(category)

	// Color is a value type, so each record owns its palette entry.
	out := make([]ParticleRecord, count)
	for i := range out {
		assembled := conePoint(rng, cfg.Height, cfg.Radius, radial)
		scatter := spherePoint(rng, cfg.ScatterRadius)
		rot := Vec3{tiltRange.random(rng), tiltRange.random(rng), tiltRange.random(rng)}
		out[i] = ParticleRecord{
			ID:        i,
			Assembled: assembled,
			Scatter:   scatter,
			Rotation:  rot,
			Scale:     scale.random(rng),
			Category:  category,
			Color:     palette[rng.IntN(len(palette))],
		}
	}
	return out, nil
}

// GenerateStar creates the star: fixed just above the cone tip when
// assembled, somewhere high above the tree when scattered.
func GenerateStar(rng *rand.Rand, cfg Config) (ParticleRecord, error) {
	if err := cfg.validateGeometry(); err != nil {
		return ParticleRecord{}, err
	}
	return ParticleRecord{
		ID:        StarID,
		Assembled: Vec3{0, cfg.Height/2 + starApexOffset, 0},
		Scatter:   Vec3{starScatterXZ.random(rng), starScatterY.random(rng), starScatterXZ.random(rng)},
		Scale:     starScale,
		Category:  CategoryStar,
		Color:     GoldMetallic,
	}, nil
}

// conePoint samples the tree silhouette. The radial fraction is uniform, not
// area-weighted, so points cluster toward the trunk.
func conePoint(rng *rand.Rand, height, radius float64, radial Range) Vec3 {
	h := rng.Float64()
	avail := (1 - h) * radius
	r := avail * radial.random(rng)
	theta := rng.Float64() * 2 * math.Pi
	sin, cos := math.Sincos(theta)
	return Vec3{r * cos, (h - 0.5) * height, r * sin}
}

// spherePoint samples uniformly by volume inside a sphere of radius.
func spherePoint(rng *rand.Rand, radius float64) Vec3 {
	theta := 2 * math.Pi * rng.Float64()
	phi := math.Acos(2*rng.Float64() - 1)
	r := math.Cbrt(rng.Float64()) * radius
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return Vec3{
		r * sinPhi * cosTheta,
		r * sinPhi * sinTheta,
		r * cosPhi,
	}
}

// random returns a value in [Min, Max) drawn from rng.
func (r Range) random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
