// Package ledger reads the agent's persisted record of files it failed to
// process (failed_files.json).
//
// The ledger is a monitoring convenience: a missing or malformed document
// is equivalent to zero failures and must never escalate to a hard failure
// of the monitor.
package ledger

import (
	"os"
	"sort"

	"github.com/tidwall/gjson"
)

// Record is one failed-file entry, keyed by path in the ledger document.
type Record struct {
	Path       string
	Instrument string
	Reason     string
	FailedAt   string
	RetryCount int
}

// Read loads all failed-file records from the ledger at path, most recent
// first. A missing file or an unparseable document yields an empty slice.
func Read(path string) []Record {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return Parse(data)
}

// Parse extracts records from a ledger document. The document shape is an
// object with a "files" mapping from path to record; anything else is
// treated as empty.
func Parse(data []byte) []Record {
	if !gjson.ValidBytes(data) {
		return nil
	}
	files := gjson.GetBytes(data, "files")
	if !files.IsObject() {
		return nil
	}

	var records []Record
	files.ForEach(func(key, value gjson.Result) bool {
		rec := Record{
			Path:       value.Get("path").String(),
			Instrument: value.Get("instrument_id").String(),
			Reason:     value.Get("reason").String(),
			FailedAt:   value.Get("failed_at").String(),
			RetryCount: int(value.Get("retry_count").Int()),
		}
		if rec.Path == "" {
			rec.Path = key.String()
		}
		records = append(records, rec)
		return true
	})

	// Most recent failure first; document order breaks ties.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].FailedAt > records[j].FailedAt
	})
	return records
}
