// Package logging configures the harness's own diagnostic logger.
package logging

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// New builds a terminal slog logger. Verbose lowers the level to debug;
// noColor disables ANSI styling for dumb terminals and piped output.
func New(verbose, noColor bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:   level,
		NoColor: noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Interactive runs don't need timestamps on every line.
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}
