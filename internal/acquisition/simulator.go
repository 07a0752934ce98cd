// Package acquisition simulates vendor-specific mass spectrometry
// acquisitions by writing payload to a watch folder in timed increments.
package acquisition

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"

	"mdqctest/internal/core"
	"mdqctest/internal/protocol"
)

// minChunks is the lower bound on chunk count; longer runs get one chunk
// per second so growth stays visible to a polling watcher.
const minChunks = 10

// Options controls a single simulated acquisition.
type Options struct {
	RunName   string // "" = generated
	Duration  time.Duration
	FinalSize int64 // bytes
	// Unbounded keeps writing at the same cadence forever and never applies
	// the terminal marker transition. Used for timeout testing; stopped by
	// cancelling the context.
	Unbounded bool
}

// Run describes one simulated acquisition. Immutable once the protocol
// begins; the files it names are removed only by an explicit Cleanup.
type Run struct {
	WatchFolder string
	Vendor      protocol.Vendor
	Name        string
	RootPath    string // root artifact (single file or directory tree)
	DataPath    string // primary data file, polled for size/mtime
	FinalSize   int64
	Duration    time.Duration
}

// Cleanup removes the run's root artifact if present. Idempotent: a second
// call, or a call on an already-removed run, is not an error.
func (r *Run) Cleanup() error {
	if r == nil || r.RootPath == "" {
		return nil
	}
	return os.RemoveAll(r.RootPath)
}

// Simulator drives one vendor protocol over wall-clock time. Not safe for
// concurrent use; create one Simulator per run.
type Simulator struct {
	WatchFolder string
	Protocol    protocol.Protocol
	Reporter    core.Reporter // nil = discard
	Clock       core.Clock    // nil = real time
	payload     *Payload
}

// New creates a Simulator bound to a vendor protocol and watch folder.
func New(watchFolder string, p protocol.Protocol) *Simulator {
	return &Simulator{
		WatchFolder: watchFolder,
		Protocol:    p,
		payload:     NewPayload(),
	}
}

func (s *Simulator) reporter() core.Reporter {
	if s.Reporter == nil {
		return core.NullReporter
	}
	return s.Reporter
}

func (s *Simulator) clock() core.Clock {
	if s.Clock == nil {
		return core.RealClock{}
	}
	return s.Clock
}

// Simulate runs one complete acquisition cycle: marker creation, payload
// written in evenly paced chunks (each flushed and synced), then the
// completion transition.
//
// A write failure aborts the run and is returned to the caller; partial
// artifacts are left in place, as a real aborted acquisition would leave
// them. The returned Run is non-nil whenever the layout was created, so the
// caller can still Cleanup after an error.
func (s *Simulator) Simulate(ctx context.Context, opts Options) (*Run, error) {
	name := opts.RunName
	if name == "" {
		name = RunName("QC", s.clock())
	}
	root := s.Protocol.RootPath(s.WatchFolder, name)
	run := &Run{
		WatchFolder: s.WatchFolder,
		Vendor:      s.Protocol.Vendor,
		Name:        name,
		RootPath:    root,
		DataPath:    s.Protocol.DataPath(root),
		FinalSize:   opts.FinalSize,
		Duration:    opts.Duration,
	}

	chunkCount := int64(opts.Duration / time.Second)
	if chunkCount < minChunks {
		chunkCount = minChunks
	}
	chunkSize := opts.FinalSize / chunkCount
	remainder := opts.FinalSize - chunkSize*chunkCount
	interval := opts.Duration / time.Duration(chunkCount)

	if err := s.Protocol.Begin(root); err != nil {
		return run, err
	}
	if s.Protocol.Signaled() {
		s.report(run, "marker", 0, 0, "marker created")
	}

	f, err := os.OpenFile(run.DataPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return run, fmt.Errorf("opening data file: %w", err)
	}

	// rate.Every(0) is an infinite limit, so a zero duration writes
	// back-to-back with no pacing.
	limiter := rate.NewLimiter(rate.Every(interval), 1)

	var written int64
	for i := int64(0); opts.Unbounded || i < chunkCount; i++ {
		if err := limiter.Wait(ctx); err != nil {
			f.Close()
			return run, err
		}
		size := chunkSize
		if !opts.Unbounded && i == chunkCount-1 {
			size += remainder
		}
		if _, err := f.Write(s.payload.Chunk(size)); err != nil {
			f.Close()
			return run, fmt.Errorf("writing chunk %d: %w", i, err)
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return run, fmt.Errorf("syncing chunk %d: %w", i, err)
		}
		written += size
		s.report(run, "chunk", written, float64(i+1)/float64(chunkCount)*100, "")
	}

	if err := f.Close(); err != nil {
		return run, fmt.Errorf("closing data file: %w", err)
	}

	// The final chunk is synced before any marker transition happens.
	if err := s.Protocol.Finish(root); err != nil {
		return run, err
	}
	if s.Protocol.Signaled() {
		s.report(run, "marker", written, 100, "marker removed")
	}
	s.report(run, "complete", written, 100, "acquisition complete")

	return run, nil
}

func (s *Simulator) report(run *Run, step string, bytes int64, percent float64, msg string) {
	s.reporter().Report(core.Event{
		Timestamp: s.clock().Now(),
		Vendor:    string(run.Vendor),
		Run:       run.Name,
		Step:      step,
		Bytes:     bytes,
		Percent:   percent,
		Message:   msg,
	})
}
