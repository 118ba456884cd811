package term

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/evergreen"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func newEngine(t *testing.T, bulk, glow int) *evergreen.Engine {
	t.Helper()
	cfg := evergreen.DefaultConfig()
	cfg.Seed = 11
	cfg.BulkCount = bulk
	cfg.GlowCount = glow
	cfg.InitialState = evergreen.Assembled
	cfg.InitialFactor = 1
	eng, err := evergreen.NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestDrawStarOnly(t *testing.T) {
	screen := newScreen(t, 80, 40)
	eng := newEngine(t, 0, 0)
	NewRenderer(screen).Draw(eng)

	void := toTcell(evergreen.Void)
	stars := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 80; x++ {
			mainc, _, style, _ := screen.GetContent(x, y)
			fg, bg, _ := style.Decompose()
			if bg != void {
				t.Fatalf("cell %d,%d background = %v, want void", x, y, bg)
			}
			switch mainc {
			case ' ':
			case glyphStar:
				stars++
				if fg != toTcell(evergreen.GoldMetallic) {
					t.Errorf("star foreground = %v", fg)
				}
				// The assembled star sits above the center line.
				if y >= 20 {
					t.Errorf("star at row %d, want upper half", y)
				}
			default:
				t.Errorf("unexpected glyph %q at %d,%d", mainc, x, y)
			}
		}
	}
	if stars != 1 {
		t.Errorf("star cells = %d, want 1", stars)
	}
}

func TestDrawGlyphs(t *testing.T) {
	screen := newScreen(t, 100, 50)
	eng := newEngine(t, 400, 80)
	NewRenderer(screen).Draw(eng)

	counts := map[rune]int{}
	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x++ {
			mainc, _, _, _ := screen.GetContent(x, y)
			counts[mainc]++
		}
	}
	if counts[glyphBox]+counts[glyphBoxSmall] == 0 {
		t.Error("no box glyphs drawn")
	}
	if counts[glyphGlow] == 0 {
		t.Error("no glow glyphs drawn")
	}
	drawn := 100*50 - counts[' ']
	if drawn > len(eng.Transforms()) {
		t.Errorf("%d cells drawn from %d particles", drawn, len(eng.Transforms()))
	}
}

func TestDrawResize(t *testing.T) {
	screen := newScreen(t, 40, 20)
	eng := newEngine(t, 50, 10)
	r := NewRenderer(screen)
	r.Draw(eng)
	if len(r.cells) != 40*20 {
		t.Fatalf("cells = %d", len(r.cells))
	}
	screen.SetSize(60, 30)
	r.Draw(eng)
	if len(r.cells) != 60*30 {
		t.Errorf("cells after resize = %d", len(r.cells))
	}
}

func TestRunQuitKey(t *testing.T) {
	screen := newScreen(t, 40, 20)
	eng := newEngine(t, 50, 10)
	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Run(ctx, screen, eng, RunConfig{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if eng.State() != evergreen.Scattered {
		t.Errorf("state = %v after space, want scattered", eng.State())
	}
}

func TestRunEscape(t *testing.T) {
	screen := newScreen(t, 40, 20)
	eng := newEngine(t, 10, 0)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Run(ctx, screen, eng, RunConfig{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunContextCancel(t *testing.T) {
	screen := newScreen(t, 40, 20)
	eng := newEngine(t, 10, 0)
	eng.SetAssemblyState(evergreen.Scattered)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	err := Run(ctx, screen, eng, RunConfig{FrameRate: 60})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run = %v, want deadline exceeded", err)
	}
	if eng.Factor() >= 1 {
		t.Errorf("factor = %v, want morphing toward scattered", eng.Factor())
	}
	if eng.Elapsed() <= 0 {
		t.Error("engine never ticked")
	}
}

func TestHandleEventArrows(t *testing.T) {
	screen := newScreen(t, 40, 20)
	eng := newEngine(t, 0, 0)
	r := NewRenderer(screen)
	az := r.Orbit().Azimuth
	if !handleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), eng, r, screen) {
		t.Fatal("right arrow quit")
	}
	if r.Orbit().Azimuth == az {
		t.Error("right arrow did not orbit")
	}
	if !handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), eng, r, screen) {
		t.Fatal("enter quit")
	}
	if eng.State() != evergreen.Scattered {
		t.Error("enter did not toggle")
	}
	if handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), eng, r, screen) {
		t.Error("ctrl-c did not quit")
	}
}
