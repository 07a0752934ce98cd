package monitor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"mdqctest/internal/config"
	"mdqctest/internal/ledger"
	"mdqctest/internal/tail"
)

// recentLines is how many log lines the status display shows.
const recentLines = 20

// maxLedgerShown caps how many failed files the status display lists.
const maxLedgerShown = 5

// ShowStatus writes a snapshot of the agent's observable state: config
// presence, failed-file ledger summary, and the tail of the newest log
// file. Missing artifacts degrade the display, never fail it.
func ShowStatus(w io.Writer, paths config.Paths, noColor bool) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "MD QC Agent Status")
	fmt.Fprintln(w, rule)

	if _, err := os.Stat(paths.ConfigFile); err == nil {
		fmt.Fprintf(w, "Config: %s\n", paths.ConfigFile)
	} else {
		fmt.Fprintf(w, "Config: NOT FOUND (%s)\n", paths.ConfigFile)
	}

	failed := ledger.Read(paths.LedgerFile)
	fmt.Fprintf(w, "Failed files: %d\n", len(failed))
	for i, rec := range failed {
		if i >= maxLedgerShown {
			break
		}
		fmt.Fprintf(w, "  - %s\n", rec.Path)
		fmt.Fprintf(w, "    Reason: %s\n", rec.Reason)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintln(w, "Recent Log Entries:")
	fmt.Fprintln(w, strings.Repeat("-", 60))

	entries := RecentEntries(paths.LogDir, recentLines)
	if len(entries) == 0 {
		fmt.Fprintln(w, "  (No log entries found)")
		return
	}
	for _, e := range entries {
		fmt.Fprintln(w, RenderEntry(e, noColor))
	}
}

// RecentEntries reads the last n entries from the newest matching log file.
// Absence of the directory or file yields nil.
func RecentEntries(logDir string, n int) []tail.Entry {
	latest := tail.Latest(logDir, "")
	if latest == "" {
		return nil
	}
	f, err := os.Open(latest)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	entries := make([]tail.Entry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, tail.Decode(line))
	}
	return entries
}
