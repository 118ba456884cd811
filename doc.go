// Package evergreen is a particle morph engine that blends a scattered cloud
// of particles into a tree made of gift boxes, glowing ornaments and a star.
//
// The engine does no drawing. It generates an immutable dataset once, then on
// every tick derives a transform (position, rotation, scale, color) for each
// particle. Any render surface can consume them: the [view] package draws
// them with Ebitengine, the [term] package with tcell, and the [ecs] package
// mirrors them into a Donburi world.
//
// # Quick start
//
//	eng, err := evergreen.NewEngine(evergreen.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	// once per frame:
//	eng.Tick(elapsed, delta)
//	for i, tr := range eng.Transforms() {
//		// draw particle i at tr.Position ...
//	}
//	// on user input:
//	eng.Toggle()
//
// # Generation
//
// Every [ParticleRecord] stores two positions: one on the tree and one in the
// scatter sphere. Bulk particles fill the cone volume, glow particles hug and
// overshoot its surface, and the star sits just above the tip. Records never
// change after generation; [Engine.Reconfigure] replaces them wholesale.
//
// # Animation
//
// A single assembly factor in [0, 1] approaches 0 ([Scattered]) or 1
// ([Assembled]) by delta*AnimationSpeed per tick and snaps to the target once
// within 0.001. Each category layers its own motion on the interpolated
// position: boxes tumble while scattered, ornaments orbit and pulse, the star
// spins and pops in. Once the factor passes 0.9 the whole tree hovers.
//
// Ticks with a NaN or infinite clock are ignored, so a faulty driver never
// corrupts the transforms.
//
// # Concurrency
//
// Tick must be called from one goroutine. [Engine.SetAssemblyState] and
// [Engine.Toggle] may be called from anywhere; the next tick reads the latest
// value. Set [Config.Workers] to split the transform pass across goroutines.
//
// # Configuration
//
// [DefaultConfig] matches the stock scene. [LoadConfig] reads YAML:
//
//	height: 12
//	radius: 4.5
//	bulkCount: 1500
//	glowCount: 300
//	scatterRadius: 25
//	animationSpeed: 2.5
//	initialState: scattered
//	seed: 42
//
// [view]: https://pkg.go.dev/github.com/phanxgames/evergreen/view
// [term]: https://pkg.go.dev/github.com/phanxgames/evergreen/term
// [ecs]: https://pkg.go.dev/github.com/phanxgames/evergreen/ecs
package evergreen
