package manifest

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// DefaultNames lists the manifest filenames recognized during discovery.
// Registry mirrors contain the lowercase variant often enough to matter.
var DefaultNames = []string{"Cargo.toml", "cargo.toml"}

// Manifest is the subset of a crate manifest the scanner needs: the
// package identity and the declared targets.
type Manifest struct {
	Package Package `toml:"package"`
	Lib     *Lib    `toml:"lib"`
	Bins    []Bin   `toml:"bin"`
}

type Package struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type Lib struct {
	Path string `toml:"path"`
}

type Bin struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Load parses a manifest file and validates its package identity.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if m.Package.Name == "" {
		return nil, fmt.Errorf("manifest %s declares no package name", path)
	}

	if m.Package.Version != "" {
		if _, err := semver.NewVersion(m.Package.Version); err != nil {
			return nil, fmt.Errorf("manifest %s: invalid version %q: %w", path, m.Package.Version, err)
		}
	}

	return &m, nil
}

// IsManifestName reports whether a filename is one of the recognized
// manifest names.
func IsManifestName(name string, names []string) bool {
	for _, candidate := range names {
		if name == candidate {
			return true
		}
	}
	return false
}
