// Package suite sequences acquisition simulations and observations across
// vendors and aggregates pass/fail.
package suite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mdqctest/internal/acquisition"
	"mdqctest/internal/core"
	"mdqctest/internal/observer"
	"mdqctest/internal/progress"
	"mdqctest/internal/protocol"
)

// stabilityBuffer is added to the simulation duration when no explicit
// observe timeout is configured. It covers the agent's stability window
// (size unchanged for a threshold period) plus detection slack.
const stabilityBuffer = 90 * time.Second

// Config controls one suite invocation.
type Config struct {
	WatchFolder     string
	Vendors         []protocol.Vendor
	Duration        time.Duration
	FinalSize       int64
	ObserveTimeout  time.Duration // 0 = Duration + stabilityBuffer
	ObserveInterval time.Duration // 0 = observer default; shortened in tests
	Cleanup         bool
}

// VendorResult is the outcome of one vendor's simulate+observe cycle.
type VendorResult struct {
	Vendor  protocol.Vendor
	File    string
	Outcome core.Outcome
	Elapsed time.Duration
	Err     error
	Passed  bool
}

// Results aggregates per-vendor outcomes.
type Results struct {
	Vendors []VendorResult
}

// Passed reports the logical AND of all per-vendor outcomes.
func (r Results) Passed() bool {
	for _, v := range r.Vendors {
		if !v.Passed {
			return false
		}
	}
	return true
}

// Orchestrator runs the suite: for each vendor, build the protocol, run the
// simulator, then observe the primary artifact for the agent's reaction.
type Orchestrator struct {
	Config   Config
	Reporter core.Reporter     // progress events from simulator/observer
	Progress *progress.Printer // suite-level messages, nil = stdout
}

func New(cfg Config) *Orchestrator {
	return &Orchestrator{Config: cfg}
}

func (o *Orchestrator) printf(format string, args ...interface{}) {
	if o.Progress != nil {
		o.Progress.Printf(format, args...)
		return
	}
	fmt.Printf(format+"\n", args...)
}

// Run executes the suite sequentially. One vendor's failure is recorded and
// iteration continues; nothing aborts the remaining vendors.
func (o *Orchestrator) Run(ctx context.Context) Results {
	cfg := o.Config
	var results Results

	if err := os.MkdirAll(cfg.WatchFolder, 0o755); err != nil {
		for _, v := range cfg.Vendors {
			results.Vendors = append(results.Vendors, VendorResult{
				Vendor: v,
				Err:    fmt.Errorf("creating watch folder: %w", err),
			})
		}
		return results
	}

	var runs []*acquisition.Run
	for _, v := range cfg.Vendors {
		res := o.runVendor(ctx, v, &runs)
		results.Vendors = append(results.Vendors, res)
	}

	if cfg.Cleanup {
		o.printf("[Cleanup] Removing test files...")
		for _, run := range runs {
			if err := run.Cleanup(); err != nil {
				o.printf("  cleanup of %s failed: %v", run.RootPath, err)
			}
		}
	}

	return results
}

func (o *Orchestrator) runVendor(ctx context.Context, v protocol.Vendor, runs *[]*acquisition.Run) (res VendorResult) {
	res = VendorResult{Vendor: v}

	// A panic in one vendor's cycle is recorded like any other failure so
	// the remaining vendors still run.
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("panic: %v", r)
			res.Passed = false
		}
	}()

	p, err := protocol.For(v)
	if err != nil {
		res.Err = err
		return res
	}

	cfg := o.Config
	sim := acquisition.New(cfg.WatchFolder, p)
	sim.Reporter = o.Reporter

	o.printf("[%s] Starting acquisition (duration %v, %.1f MB)",
		v, cfg.Duration, float64(cfg.FinalSize)/(1024*1024))

	run, err := sim.Simulate(ctx, acquisition.Options{
		RunName:   acquisition.RunName("TEST_"+strings.ToUpper(string(v)), nil),
		Duration:  cfg.Duration,
		FinalSize: cfg.FinalSize,
	})
	if run != nil {
		*runs = append(*runs, run)
		res.File = filepath.Base(run.RootPath)
	}
	if err != nil {
		res.Err = err
		return res
	}

	timeout := cfg.ObserveTimeout
	if timeout <= 0 {
		timeout = cfg.Duration + stabilityBuffer
	}
	o.printf("[%s] Watching for agent response (timeout %v)", v, timeout)

	obs := &observer.Observer{
		Interval: cfg.ObserveInterval,
		Reporter: o.Reporter,
	}
	or := obs.Observe(ctx, run.DataPath, timeout)
	res.Outcome = or.Outcome
	res.Elapsed = or.Elapsed
	res.Passed = or.Outcome == core.Processed
	return res
}
