// Package protocol describes the on-disk acquisition conventions of the
// supported mass spectrometry vendors.
//
// Each vendor is a pure data description: the shape of the run's root
// artifact, where the primary data file lives inside it, and which marker
// files encode acquisition-in-progress state. The acquisition simulator
// interprets these descriptions with a single shared write loop.
package protocol

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownVendor indicates a vendor name outside the supported set.
// It is a configuration error and is raised before any filesystem mutation.
var ErrUnknownVendor = errors.New("unknown vendor")

// Vendor identifies an instrument vendor.
type Vendor string

const (
	Thermo  Vendor = "thermo"
	Bruker  Vendor = "bruker"
	Agilent Vendor = "agilent"
	Waters  Vendor = "waters"
)

// Vendors returns all supported vendors in stable order.
func Vendors() []Vendor {
	return []Vendor{Thermo, Bruker, Agilent, Waters}
}

// Parse converts a vendor name (case-insensitive) into a Vendor.
func Parse(name string) (Vendor, error) {
	v := Vendor(strings.ToLower(strings.TrimSpace(name)))
	switch v {
	case Thermo, Bruker, Agilent, Waters:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q (supported: thermo, bruker, agilent, waters)", ErrUnknownVendor, name)
}

// Protocol is the on-disk layout and marker lifecycle for one vendor.
//
// The marker ordering is the contract a real watcher relies on: Begin fully
// syncs the in-progress marker before the first payload write, and Finish
// removes it only after the last payload chunk has been durably synced.
type Protocol struct {
	Vendor      Vendor
	RootSuffix  string // extension appended to the run name (".raw", ".d")
	DirArtifact bool   // root is a directory rather than a single file
	DataFile    string // primary data file relative to the root, for directory artifacts
	Marker      string // in-progress marker relative to the root, "" = none
	DoneMarker  string // companion marker written after Marker removal, "" = none
}

var protocols = map[Vendor]Protocol{
	Thermo: {
		Vendor:     Thermo,
		RootSuffix: ".raw",
	},
	Agilent: {
		Vendor:      Agilent,
		RootSuffix:  ".d",
		DirArtifact: true,
		DataFile:    filepath.Join("AcqData", "MSScan.bin"),
	},
	Bruker: {
		Vendor:      Bruker,
		RootSuffix:  ".d",
		DirArtifact: true,
		DataFile:    "analysis.tdf",
		Marker:      "analysis.tdf-journal",
	},
	Waters: {
		Vendor:      Waters,
		RootSuffix:  ".raw",
		DirArtifact: true,
		DataFile:    "_FUNC001.DAT",
		Marker:      "_LOCK_",
		DoneMarker:  "_extern.inf",
	},
}

// For returns the protocol for a vendor.
func For(v Vendor) (Protocol, error) {
	p, ok := protocols[v]
	if !ok {
		return Protocol{}, fmt.Errorf("%w: %q", ErrUnknownVendor, v)
	}
	return p, nil
}

// Signaled reports whether completion is signaled explicitly via the marker
// lifecycle. Vendors without markers require the watcher to infer completion
// from size stability.
func (p Protocol) Signaled() bool {
	return p.Marker != ""
}

// RootPath returns the run's root artifact path inside the watch folder.
func (p Protocol) RootPath(watchFolder, runName string) string {
	return filepath.Join(watchFolder, runName+p.RootSuffix)
}

// DataPath returns the primary data file for a run root. This is the file
// polled for size and mtime regardless of how many markers exist.
func (p Protocol) DataPath(rootPath string) string {
	if !p.DirArtifact {
		return rootPath
	}
	return filepath.Join(rootPath, p.DataFile)
}

// MarkerPath returns the in-progress marker path, or "" if the vendor has none.
func (p Protocol) MarkerPath(rootPath string) string {
	if p.Marker == "" {
		return ""
	}
	return filepath.Join(rootPath, p.Marker)
}

// DonePath returns the completion marker path, or "" if the vendor has none.
func (p Protocol) DonePath(rootPath string) string {
	if p.DoneMarker == "" {
		return ""
	}
	return filepath.Join(rootPath, p.DoneMarker)
}

// Begin prepares the run layout: parent directories first, then the
// in-progress marker, durably synced before any payload write happens.
func (p Protocol) Begin(rootPath string) error {
	dir := filepath.Dir(p.DataPath(rootPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating run layout: %w", err)
	}
	if m := p.MarkerPath(rootPath); m != "" {
		if err := writeSync(m, []byte("LOCK")); err != nil {
			return fmt.Errorf("creating marker: %w", err)
		}
	}
	return nil
}

// Finish applies the completion transitions: the in-progress marker is
// removed, then the completion marker (if any) is written. The caller must
// have synced the final payload chunk before calling Finish; marker absence
// must never race ahead of data completion.
func (p Protocol) Finish(rootPath string) error {
	if m := p.MarkerPath(rootPath); m != "" {
		if err := os.Remove(m); err != nil {
			return fmt.Errorf("removing marker: %w", err)
		}
	}
	if d := p.DonePath(rootPath); d != "" {
		if err := writeSync(d, []byte("Acquisition Complete\n")); err != nil {
			return fmt.Errorf("writing completion marker: %w", err)
		}
	}
	return nil
}

// writeSync writes a small file and fsyncs it before returning.
func writeSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
