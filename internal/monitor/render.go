// Package monitor displays the agent's status, logs, and failure ledger.
package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mdqctest/internal/tail"
)

var levelStyles = map[string]lipgloss.Style{
	"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	"TRACE": lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// RenderEntry formats one log entry for display. Raw entries pass through
// unchanged; structured entries get a colorized level tag plus the optional
// instrument and path context.
func RenderEntry(e tail.Entry, noColor bool) string {
	if e.Raw {
		return e.Message
	}

	tag := "[" + e.Level + "]"
	if style, ok := levelStyles[e.Level]; ok && !noColor {
		tag = style.Render(tag)
	}

	parts := []string{tag}
	if e.Instrument != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Instrument))
	}
	parts = append(parts, e.Message)
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Path))
	}
	return strings.Join(parts, " ")
}
