// Package config handles harness configuration and agent path resolution.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// File and directory names inside the agent's data directory.
const (
	LogsDirName    = "logs"
	ConfigFileName = "config.toml"
	LedgerFileName = "failed_files.json"
)

// Paths locates the agent's on-disk artifacts. Core components only ever
// receive already-resolved paths from here; platform policy stays out of
// them.
type Paths struct {
	DataDir    string
	LogDir     string
	ConfigFile string
	LedgerFile string
}

// DefaultPaths resolves the agent's platform-dependent default locations:
// %LOCALAPPDATA%\MassDynamics\QC on Windows, ~/.local/share/mdqc elsewhere.
func DefaultPaths() Paths {
	var base string
	if runtime.GOOS == "windows" {
		base = filepath.Join(os.Getenv("LOCALAPPDATA"), "MassDynamics", "QC")
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		base = filepath.Join(home, ".local", "share", "mdqc")
	}
	return PathsIn(base)
}

// PathsIn derives all agent paths from an explicit data directory.
func PathsIn(dataDir string) Paths {
	return Paths{
		DataDir:    dataDir,
		LogDir:     filepath.Join(dataDir, LogsDirName),
		ConfigFile: filepath.Join(dataDir, ConfigFileName),
		LedgerFile: filepath.Join(dataDir, LedgerFileName),
	}
}
