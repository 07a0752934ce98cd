package protocol

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse_AcceptsSupportedVendors(t *testing.T) {
	cases := []struct {
		input string
		want  Vendor
	}{
		{"thermo", Thermo},
		{"Thermo", Thermo},
		{"BRUKER", Bruker},
		{"agilent", Agilent},
		{" waters ", Waters},
	}
	for _, tc := range cases {
		got, err := Parse(tc.input)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParse_RejectsUnknownVendor(t *testing.T) {
	_, err := Parse("sciex")
	if !errors.Is(err, ErrUnknownVendor) {
		t.Fatalf("expected ErrUnknownVendor, got %v", err)
	}
}

func TestProtocol_Layouts(t *testing.T) {
	watch := "/watch"
	cases := []struct {
		vendor   Vendor
		root     string
		data     string
		marker   string
		done     string
		signaled bool
	}{
		{Thermo, "RUN.raw", "RUN.raw", "", "", false},
		{Agilent, "RUN.d", filepath.Join("RUN.d", "AcqData", "MSScan.bin"), "", "", false},
		{Bruker, "RUN.d", filepath.Join("RUN.d", "analysis.tdf"), filepath.Join("RUN.d", "analysis.tdf-journal"), "", true},
		{Waters, "RUN.raw", filepath.Join("RUN.raw", "_FUNC001.DAT"), filepath.Join("RUN.raw", "_LOCK_"), filepath.Join("RUN.raw", "_extern.inf"), true},
	}
	for _, tc := range cases {
		p, err := For(tc.vendor)
		if err != nil {
			t.Fatalf("For(%s): %v", tc.vendor, err)
		}
		root := p.RootPath(watch, "RUN")
		if want := filepath.Join(watch, tc.root); root != want {
			t.Errorf("%s root = %q, want %q", tc.vendor, root, want)
		}
		if got, want := p.DataPath(root), filepath.Join(watch, tc.data); got != want {
			t.Errorf("%s data = %q, want %q", tc.vendor, got, want)
		}
		wantMarker := ""
		if tc.marker != "" {
			wantMarker = filepath.Join(watch, tc.marker)
		}
		if got := p.MarkerPath(root); got != wantMarker {
			t.Errorf("%s marker = %q, want %q", tc.vendor, got, wantMarker)
		}
		wantDone := ""
		if tc.done != "" {
			wantDone = filepath.Join(watch, tc.done)
		}
		if got := p.DonePath(root); got != wantDone {
			t.Errorf("%s done = %q, want %q", tc.vendor, got, wantDone)
		}
		if p.Signaled() != tc.signaled {
			t.Errorf("%s Signaled() = %v, want %v", tc.vendor, p.Signaled(), tc.signaled)
		}
	}
}

func TestBegin_CreatesParentDirsAndMarker(t *testing.T) {
	p, _ := For(Bruker)
	root := p.RootPath(t.TempDir(), "QC_RUN")

	if err := p.Begin(root); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	if _, err := os.Stat(root); err != nil {
		t.Errorf("root directory not created: %v", err)
	}
	if _, err := os.Stat(p.MarkerPath(root)); err != nil {
		t.Errorf("marker not created before first write: %v", err)
	}
}

func TestBegin_ThermoCreatesOnlyWatchFolder(t *testing.T) {
	p, _ := For(Thermo)
	watch := filepath.Join(t.TempDir(), "nested", "watch")
	root := p.RootPath(watch, "QC_RUN")

	if err := p.Begin(root); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	// Single-file artifact: the root itself must not exist yet, only its parent.
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Errorf("root file should not exist before the first payload write")
	}
	if _, err := os.Stat(watch); err != nil {
		t.Errorf("watch folder not created: %v", err)
	}
}

func TestFinish_RemovesMarkerThenWritesCompletion(t *testing.T) {
	p, _ := For(Waters)
	root := p.RootPath(t.TempDir(), "QC_RUN")
	if err := p.Begin(root); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	// No completion marker may exist while the lock is held.
	if _, err := os.Stat(p.DonePath(root)); !os.IsNotExist(err) {
		t.Fatalf("_extern.inf exists before lock removal")
	}

	if err := p.Finish(root); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, err := os.Stat(p.MarkerPath(root)); !os.IsNotExist(err) {
		t.Errorf("lock still present after Finish")
	}
	if _, err := os.Stat(p.DonePath(root)); err != nil {
		t.Errorf("completion marker missing after Finish: %v", err)
	}
}

func TestFinish_BrukerRemovesJournal(t *testing.T) {
	p, _ := For(Bruker)
	root := p.RootPath(t.TempDir(), "QC_RUN")
	if err := p.Begin(root); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := p.Finish(root); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, err := os.Stat(p.MarkerPath(root)); !os.IsNotExist(err) {
		t.Errorf("journal still present after Finish")
	}
}
