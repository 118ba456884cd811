package evergreen

import (
	"encoding/json"
	"fmt"
)

// timelineStep is a single action in a timeline script.
type timelineStep struct {
	Action  string  `json:"action"`
	Seconds float64 `json:"seconds,omitempty"`
}

// timelineScript is the top-level JSON structure for a timeline.
type timelineScript struct {
	Loop  bool           `json:"loop,omitempty"`
	Steps []timelineStep `json:"steps"`
}

// Timeline sequences state changes over simulated time, for unattended
// demos and scripted tests. Advance it once per frame with the same delta
// passed to Engine.Tick.
//
// Actions:
//
//	{"action": "assemble"}            target the tree
//	{"action": "scatter"}             target the cloud
//	{"action": "toggle"}              flip the current target
//	{"action": "wait", "seconds": 2}  hold for simulated seconds
type Timeline struct {
	steps  []timelineStep
	loop   bool
	cursor int
	wait   float64
	done   bool
}

// LoadTimeline parses a JSON timeline script.
func LoadTimeline(jsonData []byte) (*Timeline, error) {
	var script timelineScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse timeline: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse timeline: no steps")
	}
	hasWait := false
	for i, st := range script.Steps {
		switch st.Action {
		case "assemble", "scatter", "toggle":
		case "wait":
			if !(st.Seconds > 0) {
				return nil, fmt.Errorf("parse timeline: step %d: wait needs seconds > 0, got %v", i, st.Seconds)
			}
			hasWait = true
		default:
			return nil, fmt.Errorf("parse timeline: step %d: unknown action %q", i, st.Action)
		}
	}
	if script.Loop && !hasWait {
		return nil, fmt.Errorf("parse timeline: looping timeline needs at least one wait")
	}
	return &Timeline{steps: script.Steps, loop: script.Loop}, nil
}

// Done reports whether every step has run. A looping timeline never finishes.
func (tl *Timeline) Done() bool {
	return tl.done
}

// Advance consumes delta seconds of the timeline, applying every state change
// that comes due to e.
func (tl *Timeline) Advance(e *Engine, delta float64) {
	if !finite(delta) || delta < 0 {
		return
	}
	for !tl.done {
		if tl.wait > 0 {
			if delta < tl.wait {
				tl.wait -= delta
				return
			}
			delta -= tl.wait
			tl.wait = 0
		}
		if tl.cursor >= len(tl.steps) {
			if !tl.loop {
				tl.done = true
				return
			}
			tl.cursor = 0
		}

		st := tl.steps[tl.cursor]
		tl.cursor++

		switch st.Action {
		case "assemble":
			e.SetAssemblyState(Assembled)
		case "scatter":
			e.SetAssemblyState(Scattered)
		case "toggle":
			e.Toggle()
		case "wait":
			tl.wait = st.Seconds
		}
	}
}
