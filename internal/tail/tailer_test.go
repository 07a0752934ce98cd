package tail

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		t.Fatal(err)
	}
}

func TestPoll_MissingDirectoryYieldsEmptyBatch(t *testing.T) {
	tl := &Tailer{Dir: filepath.Join(t.TempDir(), "does-not-exist")}
	if got := tl.Poll(); len(got) != 0 {
		t.Errorf("expected empty batch, got %d entries", len(got))
	}
}

func TestPoll_ReadsIncrementally(t *testing.T) {
	dir := t.TempDir()
	log := filepath.Join(dir, "mdqc.log")
	appendLine(t, log, `{"timestamp":"2026-08-25T10:00:00Z","level":"INFO","message":"watcher started"}`)

	tl := &Tailer{Dir: dir}
	first := tl.Poll()
	if len(first) != 1 {
		t.Fatalf("first poll = %d entries, want 1", len(first))
	}
	if first[0].Message != "watcher started" || first[0].Level != "INFO" {
		t.Errorf("unexpected entry %+v", first[0])
	}

	// No new content: next poll is empty.
	if got := tl.Poll(); len(got) != 0 {
		t.Fatalf("poll without new content = %d entries, want 0", len(got))
	}

	appendLine(t, log, `{"timestamp":"2026-08-25T10:00:05Z","level":"WARN","message":"slow scan","fields":{"path":"/data/run.raw"}}`)
	second := tl.Poll()
	if len(second) != 1 {
		t.Fatalf("second poll = %d entries, want 1", len(second))
	}
	if second[0].Level != "WARN" || second[0].Path != "/data/run.raw" {
		t.Errorf("unexpected entry %+v", second[0])
	}
}

func TestPoll_MalformedLineDegradesToRaw(t *testing.T) {
	dir := t.TempDir()
	log := filepath.Join(dir, "mdqc.log")
	appendLine(t, log, `not json at all`)
	appendLine(t, log, `{"level":"ERROR","message":"disk full"}`)

	tl := &Tailer{Dir: dir}
	entries := tl.Poll()
	if len(entries) != 2 {
		t.Fatalf("poll = %d entries, want 2", len(entries))
	}
	if !entries[0].Raw || entries[0].Message != "not json at all" {
		t.Errorf("first entry not degraded to raw: %+v", entries[0])
	}
	// The malformed line must not corrupt decoding of the next one.
	if entries[1].Raw || entries[1].Level != "ERROR" {
		t.Errorf("second entry mis-decoded: %+v", entries[1])
	}

	// Offset must have advanced past both lines.
	if got := tl.Poll(); len(got) != 0 {
		t.Errorf("offset corrupted by malformed line: re-read %d entries", len(got))
	}
}

func TestPoll_RotationResetsCursorOnce(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "mdqc.2026-08-24.log")
	appendLine(t, old, `{"level":"INFO","message":"old file"}`)

	tl := &Tailer{Dir: dir}
	if got := tl.Poll(); len(got) != 1 {
		t.Fatalf("initial poll = %d entries, want 1", len(got))
	}

	// A newer file appears: the tailer switches and reads it from offset 0,
	// even though the old file still exists.
	newer := filepath.Join(dir, "mdqc.2026-08-25.log")
	appendLine(t, newer, `{"level":"INFO","message":"new file"}`)
	future := time.Now().Add(time.Minute)
	if err := os.Chtimes(newer, future, future); err != nil {
		t.Fatal(err)
	}

	entries := tl.Poll()
	if len(entries) != 1 {
		t.Fatalf("post-rotation poll = %d entries, want 1", len(entries))
	}
	if entries[0].Message != "new file" {
		t.Errorf("expected entry from rotated file, got %+v", entries[0])
	}

	// Bytes already consumed from the previous file are never re-read.
	if got := tl.Poll(); len(got) != 0 {
		t.Errorf("cursor reset more than once: %d entries", len(got))
	}
}

func TestDecode_FieldsAndDefaults(t *testing.T) {
	cases := []struct {
		name string
		line string
		want Entry
	}{
		{
			name: "full record",
			line: `{"timestamp":"t","level":"DEBUG","message":"m","target":"watcher","fields":{"path":"/p","instrument":"thermo-01"}}`,
			want: Entry{Timestamp: "t", Level: "DEBUG", Message: "m", Target: "watcher", Path: "/p", Instrument: "thermo-01"},
		},
		{
			name: "message nested in fields",
			line: `{"level":"INFO","fields":{"message":"nested"}}`,
			want: Entry{Level: "INFO", Message: "nested"},
		},
		{
			name: "missing level defaults to INFO",
			line: `{"message":"no level"}`,
			want: Entry{Level: "INFO", Message: "no level"},
		},
		{
			name: "json scalar is raw",
			line: `42`,
			want: Entry{Message: "42", Raw: true},
		},
		{
			name: "garbage is raw",
			line: `{"broken": `,
			want: Entry{Message: `{"broken": `, Raw: true},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decode(tc.line); got != tc.want {
				t.Errorf("Decode(%q) = %+v, want %+v", tc.line, got, tc.want)
			}
		})
	}
}
