// Package progress renders simulation and observation events on the
// terminal. Chunk events rewrite a single status line; everything else gets
// its own line.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"mdqctest/internal/core"
)

type Printer struct {
	quiet  bool
	output io.Writer
	mu     sync.Mutex
}

func NewPrinter(quiet bool) *Printer {
	return &Printer{
		quiet:  quiet,
		output: os.Stderr,
	}
}

func (p *Printer) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = w
}

// Report implements core.Reporter.
func (p *Printer) Report(e core.Event) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	switch e.Step {
	case "chunk":
		fmt.Fprintf(p.output, "\033[K  Writing... %.0f%% (%.2f MB)\r",
			e.Percent, float64(e.Bytes)/(1024*1024))
	case "touch":
		fmt.Fprintf(p.output, "\033[K  [INFO] File was touched (%s)\n", e.Message)
	default:
		fmt.Fprintf(p.output, "\033[K  %s\n", e.Message)
	}
}

func (p *Printer) Print(message string) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.output, "\033[K%s\n", message)
}

func (p *Printer) Printf(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.output, "\033[K"+format+"\n", args...)
}
