package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/evergreen"
)

// orbitStep is how far one arrow key press turns the camera, in radians.
const orbitStep = 0.1

// RunConfig configures Run.
type RunConfig struct {
	// FrameRate is the number of ticks per second. Zero means 30.
	FrameRate int
	// Timeline, if set, scripts the assembly state.
	Timeline *evergreen.Timeline
}

// Run drives eng on screen until ctx is cancelled or the user quits with q,
// escape or ctrl-c. Space and enter toggle the tree; arrow keys orbit.
// screen must be initialized; Run does not call Fini. The engine is released
// on return and may be run again.
func Run(ctx context.Context, screen tcell.Screen, eng *evergreen.Engine, cfg RunConfig) error {
	fps := cfg.FrameRate
	if fps <= 0 {
		fps = 30
	}
	r := NewRenderer(screen)
	r.orbit.FollowState(eng.State())
	unobserve := eng.Observe(evergreen.ObserverFuncs{
		StateChange: func(_, next evergreen.AssemblyState) { r.orbit.FollowState(next) },
	})
	defer unobserve()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	start := time.Now()
	last := start
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !handleEvent(ev, eng, r, screen) {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if cfg.Timeline != nil {
				cfg.Timeline.Advance(eng, dt)
			}
			eng.Tick(now.Sub(start).Seconds(), dt)
			r.orbit.Update(dt)
			r.Draw(eng)
		}
	}
}

// handleEvent applies one input event and reports whether to keep running.
func handleEvent(ev tcell.Event, eng *evergreen.Engine, r *Renderer, screen tcell.Screen) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			eng.Toggle()
		case tcell.KeyLeft:
			r.orbit.Drag(-orbitStep, 0)
		case tcell.KeyRight:
			r.orbit.Drag(orbitStep, 0)
		case tcell.KeyUp:
			r.orbit.Drag(0, -orbitStep)
		case tcell.KeyDown:
			r.orbit.Drag(0, orbitStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				eng.Toggle()
			}
		}
	case *tcell.EventResize:
		screen.Sync()
	}
	return true
}
