package monitor

import (
	"fmt"
	"io"
	"os"
	"time"

	"mdqctest/internal/config"
	"mdqctest/internal/ledger"
	"mdqctest/internal/tail"
)

// staleLogThreshold is how old the newest log file may be before the agent
// is considered inactive.
const staleLogThreshold = 5 * time.Minute

// HealthCheck inspects the agent's artifacts and reports findings. Returns
// true when no issues were found.
func HealthCheck(w io.Writer, paths config.Paths) bool {
	fmt.Fprintln(w, "\nRunning health check...")

	var issues []string

	if _, err := os.Stat(paths.ConfigFile); err != nil {
		issues = append(issues, fmt.Sprintf("Config file not found: %s", paths.ConfigFile))
	}
	if _, err := os.Stat(paths.LogDir); err != nil {
		issues = append(issues, fmt.Sprintf("Log directory not found: %s", paths.LogDir))
	}

	if latest := tail.Latest(paths.LogDir, ""); latest != "" {
		if info, err := os.Stat(latest); err == nil {
			if age := time.Since(info.ModTime()); age > staleLogThreshold {
				issues = append(issues, fmt.Sprintf("No recent log activity (last update: %.1f min ago)", age.Minutes()))
			}
		}
	}

	if failed := ledger.Read(paths.LedgerFile); len(failed) > 0 {
		issues = append(issues, fmt.Sprintf("%d files in failed state", len(failed)))
	}

	if len(issues) > 0 {
		fmt.Fprintln(w, "Issues found:")
		for _, issue := range issues {
			fmt.Fprintf(w, "  - %s\n", issue)
		}
		return false
	}
	fmt.Fprintln(w, "All checks passed!")
	return true
}
