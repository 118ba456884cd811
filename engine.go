package evergreen

import (
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest slice of particles handed to a worker.
const minChunk = 256

// Observer receives engine notifications. Callbacks run on the ticking
// goroutine, inside Tick.
type Observer interface {
	// OnStateChange fires on the first tick that sees a new assembly state.
	// Several changes between two ticks collapse into one.
	OnStateChange(prev, next AssemblyState)
	// OnSettled fires on the tick the factor lands exactly on its target.
	OnSettled(state AssemblyState, factor float64)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	StateChange func(prev, next AssemblyState)
	Settled     func(state AssemblyState, factor float64)
}

// OnStateChange calls f.StateChange if set.
func (f ObserverFuncs) OnStateChange(prev, next AssemblyState) {
	if f.StateChange != nil {
		f.StateChange(prev, next)
	}
}

// OnSettled calls f.Settled if set.
func (f ObserverFuncs) OnSettled(state AssemblyState, factor float64) {
	if f.Settled != nil {
		f.Settled(state, factor)
	}
}

// Engine owns a generated particle set and morphs it between the scattered
// cloud and the assembled tree. Drive it by calling Tick once per frame, then
// read Transforms.
//
// Records and transforms share one index space: bulk particles first, then
// glow particles, then the star.
type Engine struct {
	cfg     Config
	records []ParticleRecord
	// transforms is the arena rewritten on every tick.
	transforms []Transform
	bulkCount  int
	glowCount  int

	anim    *Animator
	state   atomic.Int32
	seen    AssemblyState
	settled bool
	elapsed float64

	observers []observerEntry
	nextObsID uint64
	stats     tickStats
}

// NewEngine validates cfg, generates the particle set and computes the
// initial transforms at elapsed time zero.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		anim: NewAnimator(cfg.AnimationSpeed, cfg.InitialFactor),
		seen: cfg.InitialState,
	}
	e.state.Store(int32(cfg.InitialState))
	if err := e.generate(cfg); err != nil {
		return nil, err
	}
	e.settled = e.anim.Factor() == cfg.InitialState.Target()
	e.writeTransforms()
	return e, nil
}

// generate replaces the dataset and arena for cfg.
func (e *Engine) generate(cfg Config) error {
	rng := newRand(cfg.Seed)
	bulk, err := GenerateBulkSet(rng, cfg.BulkCount, CategoryBulk, cfg)
	if err != nil {
		return err
	}
	glow, err := GenerateBulkSet(rng, cfg.GlowCount, CategoryGlow, cfg)
	if err != nil {
		return err
	}
	star, err := GenerateStar(rng, cfg)
	if err != nil {
		return err
	}
	records := make([]ParticleRecord, 0, len(bulk)+len(glow)+1)
	records = append(records, bulk...)
	records = append(records, glow...)
	records = append(records, star)

	e.cfg = cfg
	e.records = records
	e.bulkCount = len(bulk)
	e.glowCount = len(glow)
	e.transforms = make([]Transform, len(records))
	return nil
}

// Reconfigure validates cfg and regenerates every record. The assembly
// state, factor and clock carry over; cfg.InitialState and InitialFactor are
// ignored.
func (e *Engine) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	factor := e.anim.Factor()
	if err := e.generate(cfg); err != nil {
		return err
	}
	e.anim = NewAnimator(cfg.AnimationSpeed, factor)
	e.writeTransforms()
	return nil
}

// SetAssemblyState sets the target state. Safe to call from any goroutine;
// the next Tick reads the latest value. Any value other than Assembled is
// stored as Scattered.
func (e *Engine) SetAssemblyState(s AssemblyState) {
	if s != Assembled {
		s = Scattered
	}
	e.state.Store(int32(s))
}

// Toggle flips the target state and returns the new one.
func (e *Engine) Toggle() AssemblyState {
	for {
		cur := e.state.Load()
		next := Assembled
		if AssemblyState(cur) == Assembled {
			next = Scattered
		}
		if e.state.CompareAndSwap(cur, int32(next)) {
			return next
		}
	}
}

// State returns the current target state.
func (e *Engine) State() AssemblyState {
	return AssemblyState(e.state.Load())
}

type observerEntry struct {
	id uint64
	o  Observer
}

// Observe registers o for state-change and settle notifications and returns
// a function that removes it again. Both must be called from the goroutine
// that calls Tick, or while the engine is not ticking. An observer may
// remove itself from inside a callback.
func (e *Engine) Observe(o Observer) (unsubscribe func()) {
	e.nextObsID++
	id := e.nextObsID
	e.observers = append(e.observers, observerEntry{id: id, o: o})
	return func() {
		// Copy so a Tick already ranging over the old slice is unaffected.
		kept := make([]observerEntry, 0, len(e.observers))
		for _, en := range e.observers {
			if en.id != id {
				kept = append(kept, en)
			}
		}
		e.observers = kept
	}
}

// Tick advances the engine to elapsed seconds, delta seconds after the
// previous tick, and rewrites every transform. A tick with a non-finite clock
// or a negative delta is ignored and Tick returns false; the previous
// transforms stay valid.
func (e *Engine) Tick(elapsed, delta float64) bool {
	if !finite(elapsed) || !finite(delta) || delta < 0 {
		return false
	}
	var start time.Time
	if e.cfg.Debug {
		start = time.Now()
	}

	state := e.State()
	if state != e.seen {
		prev := e.seen
		e.seen = state
		e.settled = false
		for _, en := range e.observers {
			en.o.OnStateChange(prev, state)
		}
	}

	atTarget := e.anim.Advance(state, delta)
	e.elapsed = elapsed
	e.writeTransforms()

	if atTarget && !e.settled {
		e.settled = true
		for _, en := range e.observers {
			en.o.OnSettled(state, e.anim.Factor())
		}
	}

	if e.cfg.Debug {
		e.recordStats(time.Since(start), delta)
	}
	return true
}

// writeTransforms fills the arena from the current factor and clock.
func (e *Engine) writeTransforms() {
	t := e.anim.Factor()
	hover := hoverOffset(t, e.elapsed)
	n := len(e.records)

	workers := e.cfg.Workers
	if workers <= 1 || n < 2*minChunk {
		e.writeRange(0, n, t, hover)
		return
	}
	chunk := max((n+workers-1)/workers, minChunk)
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			e.writeRange(lo, hi, t, hover)
			return nil
		})
	}
	_ = g.Wait()
}

func (e *Engine) writeRange(lo, hi int, t, hover float64) {
	for i := lo; i < hi; i++ {
		rec := &e.records[i]
		e.transforms[i] = particleTransform(rec, rec.ID, t, e.elapsed, hover)
	}
}

// Factor returns the current assembly factor in [0, 1].
func (e *Engine) Factor() float64 {
	return e.anim.Factor()
}

// Elapsed returns the clock value of the last accepted tick.
func (e *Engine) Elapsed() float64 {
	return e.elapsed
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Records returns the generated dataset. Callers must not modify it.
func (e *Engine) Records() []ParticleRecord {
	return e.records
}

// Transforms returns the arena written by the last tick, one entry per
// record. The slice is reused; copy it to keep values across ticks.
func (e *Engine) Transforms() []Transform {
	return e.transforms
}

// BulkTransforms returns the bulk section of the arena.
func (e *Engine) BulkTransforms() []Transform {
	return e.transforms[:e.bulkCount]
}

// GlowTransforms returns the glow section of the arena.
func (e *Engine) GlowTransforms() []Transform {
	return e.transforms[e.bulkCount : e.bulkCount+e.glowCount]
}

// StarTransform returns the star's transform.
func (e *Engine) StarTransform() Transform {
	return e.transforms[len(e.transforms)-1]
}
