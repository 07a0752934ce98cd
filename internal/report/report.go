// Package report formats suite results for terminal and JSON output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"mdqctest/internal/suite"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Banner writes the suite header before any vendor runs.
func Banner(w io.Writer, watchFolder string, vendors []string, duration time.Duration, cleanup bool) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, headerStyle.Render("MD QC Agent Test Harness"))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Watch folder: %s\n", watchFolder)
	fmt.Fprintf(w, "Vendors to test: %s\n", strings.Join(vendors, ", "))
	fmt.Fprintf(w, "Acquisition duration: %v\n", duration)
	fmt.Fprintf(w, "Cleanup after test: %v\n", cleanup)
	fmt.Fprintln(w, rule)
}

// FormatText writes one pass/fail line per vendor plus the aggregate.
func FormatText(w io.Writer, r suite.Results, noColor bool) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, headerStyle.Render("Test Results Summary"))
	fmt.Fprintln(w, rule)

	for _, v := range r.Vendors {
		status := "PASS"
		style := passStyle
		if !v.Passed {
			status = "FAIL"
			style = failStyle
		}
		if !noColor {
			status = style.Render(status)
		}
		file := v.File
		if file == "" {
			file = "N/A"
		}
		fmt.Fprintf(w, "  [%s] %s: %s\n", status, v.Vendor, file)
		if v.Err != nil {
			fmt.Fprintf(w, "         Error: %v\n", v.Err)
		}
	}

	fmt.Fprintln(w, "")
	if r.Passed() {
		overall := "All vendors passed"
		if !noColor {
			overall = passStyle.Render(overall)
		}
		fmt.Fprintln(w, overall)
	} else {
		overall := "Suite failed"
		if !noColor {
			overall = failStyle.Render(overall)
		}
		fmt.Fprintln(w, overall)
	}
}

// FormatJSON writes results in machine-readable form.
func FormatJSON(w io.Writer, r suite.Results) {
	type jsonVendor struct {
		Vendor  string `json:"vendor"`
		File    string `json:"file,omitempty"`
		Outcome string `json:"outcome"`
		Elapsed string `json:"elapsed"`
		Passed  bool   `json:"passed"`
		Error   string `json:"error,omitempty"`
	}
	output := struct {
		Passed  bool         `json:"passed"`
		Vendors []jsonVendor `json:"vendors"`
	}{
		Passed:  r.Passed(),
		Vendors: make([]jsonVendor, 0, len(r.Vendors)),
	}
	for _, v := range r.Vendors {
		jv := jsonVendor{
			Vendor:  string(v.Vendor),
			File:    v.File,
			Outcome: v.Outcome.String(),
			Elapsed: v.Elapsed.Round(time.Millisecond).String(),
			Passed:  v.Passed,
		}
		if v.Err != nil {
			jv.Error = v.Err.Error()
		}
		output.Vendors = append(output.Vendors, jv)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(output) // stdout errors are unrecoverable
}
