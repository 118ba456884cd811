package evergreen

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugInterval is the simulated time between two stats lines.
const debugInterval = 1.0

// debugOut is where debug stats are written.
var debugOut io.Writer = os.Stderr

// tickStats accumulates tick timings between two debug lines.
// Only populated when Config.Debug is true.
type tickStats struct {
	ticks    int
	busy     time.Duration
	worst    time.Duration
	simTime  float64
	lastLine string
}

// recordStats folds one tick into the running stats and prints a line once
// per debugInterval of simulated time.
func (e *Engine) recordStats(d time.Duration, delta float64) {
	s := &e.stats
	s.ticks++
	s.busy += d
	if d > s.worst {
		s.worst = d
	}
	s.simTime += delta
	if s.simTime < debugInterval {
		return
	}
	avg := s.busy / time.Duration(s.ticks)
	s.lastLine = fmt.Sprintf(
		"[evergreen] ticks: %d | avg: %v | worst: %v | particles: %d | workers: %d | state: %s | factor: %.3f",
		s.ticks, avg, s.worst, len(e.records), max(e.cfg.Workers, 1), e.State(), e.anim.Factor())
	_, _ = fmt.Fprintln(debugOut, s.lastLine)
	*s = tickStats{lastLine: s.lastLine}
}
