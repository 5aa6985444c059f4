// Package config loads a project's jaotc.toml manifest: the target
// triple to compile for and where to write layout/trampoline output.
//
// Grounded on the teacher's internal/project (manifest discovery by
// walking up from a start directory looking for a well-known TOML file
// name) and cmd/surge/project_manifest.go's [package]/[run]-style
// sectioned config struct, retargeted from "find the module to build"
// to "find the target and output mode to compile for."
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// manifestFileName is this core's equivalent of the teacher's
// "surge.toml" well-known file name.
const manifestFileName = "jaotc.toml"

// ErrManifestNotFound is returned by FindManifest when no jaotc.toml is
// found walking up from the start directory.
var ErrManifestNotFound = errors.New("no jaotc.toml found")

// TargetConfig is the manifest's [target] section.
type TargetConfig struct {
	Triple string `toml:"triple"`
}

// OutputConfig is the manifest's [output] section.
type OutputConfig struct {
	// Mode selects what cmd/jaotc emits: "layout", "trampolines", or
	// "both".
	Mode string `toml:"mode"`
	// Dir is the directory layout/trampoline artifacts and the
	// compilation cache are written to.
	Dir string `toml:"dir"`
}

// Manifest is the parsed contents of a jaotc.toml file.
type Manifest struct {
	Target TargetConfig `toml:"target"`
	Output OutputConfig `toml:"output"`
}

// FindManifest walks up from startDir looking for a jaotc.toml, the way
// the teacher's internal/project.FindProjectRoot walks up looking for
// surge.toml.
func FindManifest(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

// Load parses the manifest at path and fills in this core's defaults
// (output mode "both", output dir "build").
func Load(path string) (Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	if m.Output.Mode == "" {
		m.Output.Mode = "both"
	}
	if m.Output.Dir == "" {
		m.Output.Dir = "build"
	}
	return m, nil
}
