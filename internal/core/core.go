// Package core defines the fundamental interfaces and types for the harness.
package core

import "time"

// Outcome is the terminal state of an observation session.
type Outcome int

const (
	// Watching is the looping state while the artifact is still present.
	Watching Outcome = iota
	// Processed means the watched artifact disappeared (consumed or moved by the agent).
	Processed
	// Timeout means the artifact was still present when the deadline elapsed.
	Timeout
)

func (o Outcome) String() string {
	switch o {
	case Processed:
		return "processed"
	case Timeout:
		return "timeout"
	default:
		return "watching"
	}
}

// Event represents a single observable side effect from a simulation or
// observation step: a chunk written, a marker transition, a touch on the
// watched artifact.
type Event struct {
	Timestamp time.Time
	Vendor    string
	Run       string
	Step      string // "chunk", "marker", "touch", ...
	Bytes     int64  // cumulative bytes written, for chunk events
	Percent   float64
	Message   string
}

// Reporter is the interface components use to surface progress events.
type Reporter interface {
	Report(Event)
}

// NullReporter discards all events.
var NullReporter Reporter = nullReporter{}

type nullReporter struct{}

func (nullReporter) Report(Event) {}
