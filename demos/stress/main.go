// stress morphs a 20,000 particle tree back and forth on a looping timeline,
// spreading the transform pass over every CPU. Tick stats are printed to
// stderr once per simulated second. A stress test for the engine and the
// sprite pipeline.
package main

import (
	"log"
	"runtime"

	"github.com/phanxgames/evergreen"
	"github.com/phanxgames/evergreen/view"
)

const (
	screenW   = 1280
	screenH   = 720
	bulkCount = 18_000
	glowCount = 2_000
)

// The tree flips every three seconds, forever.
const script = `{
	"loop": true,
	"steps": [
		{"action": "wait", "seconds": 3},
		{"action": "scatter"},
		{"action": "wait", "seconds": 3},
		{"action": "assemble"}
	]
}`

func main() {
	cfg := evergreen.DefaultConfig()
	cfg.BulkCount = bulkCount
	cfg.GlowCount = glowCount
	cfg.Height = 16
	cfg.Radius = 6
	cfg.ScatterRadius = 32
	cfg.Workers = runtime.NumCPU()
	cfg.Debug = true
	cfg.InitialFactor = 1

	eng, err := evergreen.NewEngine(cfg)
	if err != nil {
		log.Fatal(err)
	}
	tl, err := evergreen.LoadTimeline([]byte(script))
	if err != nil {
		log.Fatal(err)
	}

	if err := view.Run(eng, view.RunConfig{
		Title:    "Evergreen: 20k Particles",
		Width:    screenW,
		Height:   screenH,
		Timeline: tl,
		ShowHUD:  true,
	}); err != nil {
		log.Fatal(err)
	}
}
