// Package observer watches a simulated run's primary artifact to judge
// whether the external agent reacted to it.
//
// Detection is purely passive: the observer polls existence, size, and
// mtime of a single path. Disappearance of the path is interpreted as the
// agent having consumed or moved it; anything else ends in a timeout.
package observer

import (
	"context"
	"os"
	"time"

	"mdqctest/internal/core"
)

// DefaultInterval is the fixed polling cadence. Deliberately coarse: the
// acquisition domain operates on multi-second time scales and polling keeps
// the harness portable and deterministic under test.
const DefaultInterval = time.Second

// Result is the outcome of one observation session.
type Result struct {
	Outcome core.Outcome
	Elapsed time.Duration
	Touches int // informational mtime changes seen while watching
}

// Observer polls a path at a fixed interval until it disappears or a
// timeout elapses.
type Observer struct {
	Interval time.Duration // 0 = DefaultInterval
	Reporter core.Reporter // nil = discard
	Clock    core.Clock    // nil = real time
}

func (o *Observer) interval() time.Duration {
	if o.Interval <= 0 {
		return DefaultInterval
	}
	return o.Interval
}

func (o *Observer) clock() core.Clock {
	if o.Clock == nil {
		return core.RealClock{}
	}
	return o.Clock
}

func (o *Observer) reporter() core.Reporter {
	if o.Reporter == nil {
		return core.NullReporter
	}
	return o.Reporter
}

// Observe polls path until it no longer exists (Processed), timeout elapses
// (Timeout), or ctx is cancelled (Timeout). An mtime change while watching
// is recorded as a touch but does not end the observation.
func (o *Observer) Observe(ctx context.Context, path string, timeout time.Duration) Result {
	clock := o.clock()
	start := clock.Now()

	var lastMtime time.Time
	if info, err := os.Stat(path); err == nil {
		lastMtime = info.ModTime()
	}

	ticker := time.NewTicker(o.interval())
	defer ticker.Stop()

	touches := 0
	for {
		select {
		case <-ctx.Done():
			return Result{Outcome: core.Timeout, Elapsed: clock.Since(start), Touches: touches}
		case <-ticker.C:
			info, err := os.Stat(path)
			if os.IsNotExist(err) {
				return Result{Outcome: core.Processed, Elapsed: clock.Since(start), Touches: touches}
			}
			if err == nil && !info.ModTime().Equal(lastMtime) {
				touches++
				lastMtime = info.ModTime()
				o.reporter().Report(core.Event{
					Timestamp: clock.Now(),
					Step:      "touch",
					Message:   path,
				})
			}
			if clock.Since(start) >= timeout {
				return Result{Outcome: core.Timeout, Elapsed: clock.Since(start), Touches: touches}
			}
		}
	}
}
