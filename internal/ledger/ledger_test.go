package ledger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRead_MissingFileYieldsEmpty(t *testing.T) {
	got := Read(filepath.Join(t.TempDir(), "failed_files.json"))
	if len(got) != 0 {
		t.Errorf("expected empty slice, got %d records", len(got))
	}
}

func TestRead_MalformedDocumentYieldsEmpty(t *testing.T) {
	cases := map[string]string{
		"truncated":    `{"files": {`,
		"not json":     `hello`,
		"wrong shape":  `["a", "b"]`,
		"files scalar": `{"files": 3}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "failed_files.json")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if got := Read(path); len(got) != 0 {
				t.Errorf("expected empty slice, got %d records", len(got))
			}
		})
	}
}

func TestRead_OrdersMostRecentFirst(t *testing.T) {
	doc := `{
		"files": {
			"/data/a.raw": {"path": "/data/a.raw", "instrument_id": "thermo-01", "reason": "timeout", "failed_at": "2026-08-24T09:00:00Z", "retry_count": 2},
			"/data/b.d":   {"path": "/data/b.d",   "instrument_id": "bruker-02", "reason": "copy failed", "failed_at": "2026-08-25T11:30:00Z", "retry_count": 0}
		}
	}`
	path := filepath.Join(t.TempDir(), "failed_files.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	got := Read(path)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Path != "/data/b.d" {
		t.Errorf("first record = %q, want most recent failure", got[0].Path)
	}
	if got[0].Reason != "copy failed" || got[1].RetryCount != 2 {
		t.Errorf("fields not decoded: %+v", got)
	}
}

func TestParse_PathFallsBackToMapKey(t *testing.T) {
	doc := `{"files": {"/data/c.raw": {"reason": "checksum mismatch"}}}`
	got := Parse([]byte(doc))
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Path != "/data/c.raw" {
		t.Errorf("path = %q, want map key fallback", got[0].Path)
	}
}
