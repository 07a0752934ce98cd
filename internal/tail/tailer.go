// Package tail follows the agent's structured log output across file
// rotations.
//
// Each poll cycle selects the most recently modified file matching the log
// naming pattern, reads forward from a saved byte offset, and decodes each
// newline-delimited JSON record independently. A newer file superseding the
// active one resets the cursor, matching how a daily log rotator behaves.
package tail

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultPattern matches the agent's log files inside the log directory.
const DefaultPattern = "mdqc*.log"

// DefaultInterval is the follow-mode polling cadence.
const DefaultInterval = 500 * time.Millisecond

// cursor tracks the read position within the active log file. The offset
// resets to zero whenever the active file's identity changes.
type cursor struct {
	path   string
	offset int64
}

// Tailer incrementally reads the newest matching log file in a directory.
// Not safe for concurrent use.
type Tailer struct {
	Dir      string
	Pattern  string        // "" = DefaultPattern
	Interval time.Duration // 0 = DefaultInterval
	Log      *slog.Logger  // nil = slog.Default()

	cur cursor
}

func (t *Tailer) pattern() string {
	if t.Pattern == "" {
		return DefaultPattern
	}
	return t.Pattern
}

func (t *Tailer) interval() time.Duration {
	if t.Interval <= 0 {
		return DefaultInterval
	}
	return t.Interval
}

func (t *Tailer) log() *slog.Logger {
	if t.Log == nil {
		return slog.Default()
	}
	return t.Log
}

// Latest returns the most recently modified file in dir matching pattern,
// or "" when the directory is absent or holds no matches.
func Latest(dir, pattern string) string {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil || len(matches) == 0 {
		return ""
	}
	var newest string
	var newestMtime time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMtime) {
			newest = m
			newestMtime = info.ModTime()
		}
	}
	return newest
}

func (t *Tailer) activeFile() string {
	return Latest(t.Dir, t.pattern())
}

// Poll performs one tail cycle and returns any new entries. Absence of the
// log directory or of any matching file yields an empty batch, never an
// error; read problems degrade to an empty batch as well, keeping the
// monitor available whatever state the agent's output is in.
func (t *Tailer) Poll() []Entry {
	active := t.activeFile()
	if active == "" {
		return nil
	}
	if active != t.cur.path {
		if t.cur.path != "" {
			t.log().Debug("switched to new log file", "file", filepath.Base(active))
		}
		t.cur = cursor{path: active}
	}

	f, err := os.Open(active)
	if err != nil {
		return nil
	}
	defer f.Close()

	if _, err := f.Seek(t.cur.offset, io.SeekStart); err != nil {
		return nil
	}
	data, err := io.ReadAll(f)
	if err != nil && len(data) == 0 {
		return nil
	}
	t.cur.offset += int64(len(data))

	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Decode(line))
	}
	return entries
}

// Follow polls until ctx is cancelled, invoking fn for each new entry.
// Restartable only by calling Follow again.
func (t *Tailer) Follow(ctx context.Context, fn func(Entry)) {
	ticker := time.NewTicker(t.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, e := range t.Poll() {
				fn(e)
			}
		}
	}
}
