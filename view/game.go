// Package view draws an evergreen engine with Ebitengine.
//
// The simplest way to get started is [Run], which opens a window and drives
// the engine for you:
//
//	eng, _ := evergreen.NewEngine(evergreen.DefaultConfig())
//	view.Run(eng, view.RunConfig{Title: "Evergreen", Width: 960, Height: 720})
//
// For full control, create a [Game] with [NewGame] and hand it to
// [ebiten.RunGame] yourself.
//
// Controls: space, enter or a click toggles the tree; dragging orbits the
// camera; F12 saves a screenshot; escape quits.
package view

import (
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/evergreen"
	"github.com/phanxgames/evergreen/camera"
)

const (
	// dragRadiansPerPixel converts mouse movement to orbit angles.
	dragRadiansPerPixel = 0.005
	// clickSlop is how far, in pixels, a press may move and still toggle.
	clickSlop = 4
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the window size in device-independent pixels.
	Width, Height int
	// Timeline, if set, scripts the assembly state instead of (or alongside)
	// user input.
	Timeline *evergreen.Timeline
	// ShowHUD draws FPS, state and factor in the top-left corner.
	ShowHUD bool
	// ScreenshotDir receives F12 captures. Defaults to "screenshots".
	ScreenshotDir string
}

// Game is an ebiten.Game that ticks an engine and renders its transforms.
type Game struct {
	eng   *evergreen.Engine
	orbit *camera.Orbit
	tl    *evergreen.Timeline
	hud   *hud

	clock         float64
	width, height int

	pressed      bool
	pressX       int
	pressY       int
	lastX, lastY int
	dragged      bool

	sprites []sprite
	op      ebiten.DrawImageOptions

	shots   []string
	shotDir string

	unobserve func()
}

// NewGame wraps eng. The camera spin follows the engine's assembly state
// until Close is called.
func NewGame(eng *evergreen.Engine, cfg RunConfig) *Game {
	g := &Game{
		eng:    eng,
		orbit:  camera.NewOrbit(),
		tl:     cfg.Timeline,
		width:  cfg.Width,
		height: cfg.Height,

		shotDir: cfg.ScreenshotDir,
	}
	if g.shotDir == "" {
		g.shotDir = defaultScreenshotDir
	}
	if cfg.ShowHUD {
		g.hud = newHUD()
	}
	g.orbit.FollowState(eng.State())
	g.unobserve = eng.Observe(evergreen.ObserverFuncs{
		StateChange: func(_, next evergreen.AssemblyState) { g.orbit.FollowState(next) },
	})
	return g
}

// Close detaches the game from its engine so the engine can be handed to
// another viewer. Calling it more than once is harmless.
func (g *Game) Close() {
	if g.unobserve != nil {
		g.unobserve()
		g.unobserve = nil
	}
}

// Orbit returns the camera so callers can adjust it.
func (g *Game) Orbit() *camera.Orbit {
	return g.orbit
}

// Update advances input, the timeline, the engine and the camera by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	dt := 1.0 / float64(ebiten.TPS())

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.eng.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.Screenshot(g.eng.State().String())
	}
	g.handlePointer()

	if g.tl != nil {
		g.tl.Advance(g.eng, dt)
	}
	g.clock += dt
	g.eng.Tick(g.clock, dt)
	g.orbit.Update(dt)
	if g.hud != nil {
		g.hud.update(dt, g.eng)
	}
	return nil
}

// handlePointer turns drags into orbit moves and short clicks into toggles.
func (g *Game) handlePointer() {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.pressed, g.dragged = true, false
		g.pressX, g.pressY = x, y
		g.lastX, g.lastY = x, y
	case g.pressed && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.pressed = false
		if !g.dragged {
			g.eng.Toggle()
		}
	case g.pressed:
		if abs(x-g.pressX) > clickSlop || abs(y-g.pressY) > clickSlop {
			g.dragged = true
		}
		if g.dragged {
			dx, dy := float64(x-g.lastX), float64(y-g.lastY)
			g.orbit.Drag(-dx*dragRadiansPerPixel, -dy*dragRadiansPerPixel)
		}
		g.lastX, g.lastY = x, y
	}
}

// Draw renders the particles far to near, then the HUD, then writes any
// queued screenshots.
func (g *Game) Draw(screen *ebiten.Image) {
	r, gr, b, _ := evergreen.Void.RGBA8()
	screen.Fill(rgba(r, gr, b))

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	proj := g.orbit.Projector(w, h, 1)
	g.sprites = buildSprites(g.sprites, g.eng, proj, g.orbit.Distance)
	submitSprites(screen, g.sprites, &g.op)

	if g.hud != nil {
		g.hud.draw(screen)
	}
	g.flushScreenshots(screen)
}

// Layout keeps a fixed logical resolution when one was configured, otherwise
// it follows the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.width > 0 && g.height > 0 {
		return g.width, g.height
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs eng until it is closed. Escape quits cleanly.
func Run(eng *evergreen.Engine, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	g := NewGame(eng, cfg)
	defer g.Close()
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func abs(v int) int {
	return int(math.Abs(float64(v)))
}
