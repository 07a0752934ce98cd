package progress

import (
	"strings"
	"testing"

	"mdqctest/internal/core"
)

func TestReport_ChunkRewritesStatusLine(t *testing.T) {
	w := &core.MockWriter{}
	p := NewPrinter(false)
	p.SetOutput(w)

	p.Report(core.Event{Step: "chunk", Percent: 40, Bytes: 2 << 20})

	out := w.String()
	if !strings.Contains(out, "Writing... 40%") {
		t.Errorf("missing percent in %q", out)
	}
	if !strings.Contains(out, "2.00 MB") {
		t.Errorf("missing size in %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Errorf("chunk output should rewrite in place, got trailing newline")
	}
}

func TestReport_QuietSuppressesOutput(t *testing.T) {
	w := &core.MockWriter{}
	p := NewPrinter(true)
	p.SetOutput(w)

	p.Report(core.Event{Step: "chunk", Percent: 10})
	p.Print("message")
	p.Printf("formatted %d", 1)

	if w.String() != "" {
		t.Errorf("quiet printer produced output: %q", w.String())
	}
}

func TestReport_MarkerEventsGetOwnLine(t *testing.T) {
	w := &core.MockWriter{}
	p := NewPrinter(false)
	p.SetOutput(w)

	p.Report(core.Event{Step: "marker", Message: "marker created"})

	if !strings.Contains(w.String(), "marker created\n") {
		t.Errorf("marker event not printed on its own line: %q", w.String())
	}
}
