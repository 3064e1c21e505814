package manifest

import (
	"os"
	"path/filepath"

	"github.com/cratesift/cratesift/classify"
)

// Root is one package root: the directory holding a manifest, plus the
// parsed manifest itself.
type Root struct {
	Dir      string
	Manifest *Manifest
}

// Targets resolves the root's declared targets to entry-file paths.
//
// Explicitly declared paths always become targets, even when the file is
// missing - a declared target that cannot be read must surface as an
// error, not vanish. The conventional defaults (src/main.rs, src/lib.rs)
// only apply when the file exists, since their absence just means the
// package does not have that target.
func (r *Root) Targets() []classify.Target {
	var targets []classify.Target

	for _, path := range r.binaryEntries() {
		targets = append(targets, classify.Target{Kind: classify.BinaryTarget, Path: path})
	}

	if path, ok := r.libraryEntry(); ok {
		targets = append(targets, classify.Target{Kind: classify.LibraryTarget, Path: path})
	}

	return targets
}

func (r *Root) binaryEntries() []string {
	if len(r.Manifest.Bins) > 0 {
		var entries []string
		for _, bin := range r.Manifest.Bins {
			if bin.Path != "" {
				entries = append(entries, filepath.Join(r.Dir, bin.Path))
			}
		}
		if len(entries) > 0 {
			return entries
		}
	}

	fallback := filepath.Join(r.Dir, "src", "main.rs")
	if fileExists(fallback) {
		return []string{fallback}
	}
	return nil
}

func (r *Root) libraryEntry() (string, bool) {
	if r.Manifest.Lib != nil && r.Manifest.Lib.Path != "" {
		return filepath.Join(r.Dir, r.Manifest.Lib.Path), true
	}

	fallback := filepath.Join(r.Dir, "src", "lib.rs")
	if fileExists(fallback) {
		return fallback, true
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
