package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cratesift/cratesift/classify"
	"github.com/cratesift/cratesift/manifest"
)

// Options configures a scan run.
type Options struct {
	Dialect       classify.Dialect
	ManifestNames []string
	Exclude       []string
	Workers       int
	CacheSize     int
}

// Scanner walks filesystem roots, discovers package manifests and
// classifies every discovered package. Classification itself is pure, so
// packages are processed in parallel.
type Scanner struct {
	opts  Options
	files *fileCache
}

// crateRoot is one discovered package root, possibly in a degraded
// state: the manifest failed to load, or nested manifests were found
// beneath it.
type crateRoot struct {
	dir       string
	man       *manifest.Manifest
	loadErr   error
	ambiguous bool
}

func New(opts Options) (*Scanner, error) {
	if len(opts.ManifestNames) == 0 {
		opts.ManifestNames = manifest.DefaultNames
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}

	files, err := newFileCache(opts.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Scanner{opts: opts, files: files}, nil
}

// Run scans every root path and returns one record per discovered crate.
// Only root-level I/O failures abort the run; everything below a root is
// captured in the per-package verdicts.
func (s *Scanner) Run(paths []string) (*Report, error) {
	var roots []*crateRoot
	for _, path := range paths {
		discovered, err := s.discoverRoots(path)
		if err != nil {
			return nil, err
		}
		roots = append(roots, discovered...)
	}

	crates := groupByName(roots)

	var (
		mu      sync.Mutex
		records []Record
	)

	var g errgroup.Group
	g.SetLimit(s.opts.Workers)

	for name, crateRoots := range crates {
		name, crateRoots := name, crateRoots
		g.Go(func() error {
			record := s.classifyCrate(name, crateRoots)

			mu.Lock()
			records = append(records, record)
			mu.Unlock()
			return nil
		})
	}

	// Workers only collect; they never fail the group.
	_ = g.Wait()

	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })

	return &Report{Records: records}, nil
}

// discoverRoots walks one root path and builds a crateRoot per manifest
// found, flagging nesting. A failure to read the root itself is fatal;
// unreadable subtrees are skipped.
func (s *Scanner) discoverRoots(rootPath string) ([]*crateRoot, error) {
	if _, err := os.Stat(rootPath); err != nil {
		return nil, fmt.Errorf("cannot scan root %s: %w", rootPath, err)
	}

	excl := NewExcludeMatcher(rootPath, s.opts.Exclude)

	var manifestPaths []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			return nil
		}

		if excl.ShouldSkip(path, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() && manifest.IsManifestName(d.Name(), s.opts.ManifestNames) {
			manifestPaths = append(manifestPaths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot scan root %s: %w", rootPath, err)
	}

	return buildRoots(manifestPaths), nil
}

// buildRoots turns manifest locations into package roots. A root with
// further manifests strictly beneath it, or more than one manifest in
// its own directory, becomes one ambiguous root; the extra manifests are
// attributed to it rather than treated as independent packages.
func buildRoots(manifestPaths []string) []*crateRoot {
	byDir := make(map[string][]string)
	var dirs []string
	for _, path := range manifestPaths {
		dir := filepath.Dir(path)
		if len(byDir[dir]) == 0 {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], path)
	}

	var roots []*crateRoot
	for _, dir := range dirs {
		if underAny(dir, dirs) {
			continue
		}

		paths := byDir[dir]
		root := &crateRoot{
			dir:       dir,
			ambiguous: len(paths) > 1 || anyUnder(dir, dirs),
		}
		root.man, root.loadErr = manifest.Load(paths[0])
		roots = append(roots, root)
	}

	return roots
}

func underAny(dir string, dirs []string) bool {
	for _, other := range dirs {
		if other != dir && strings.HasPrefix(dir, other+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

func anyUnder(dir string, dirs []string) bool {
	for _, other := range dirs {
		if other != dir && strings.HasPrefix(other, dir+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

// groupByName folds roots by crate name, so every extracted version of a
// crate contributes to one record. Identical name@version roots are
// deduplicated, keeping the first seen.
func groupByName(roots []*crateRoot) map[string][]*crateRoot {
	crates := make(map[string][]*crateRoot)
	seen := make(map[string]bool)

	for _, root := range roots {
		name := root.name()

		if root.man != nil && root.man.Package.Version != "" {
			key := name + "@" + root.man.Package.Version
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		crates[name] = append(crates[name], root)
	}

	return crates
}

// name returns the crate identity: the manifest package name, or the
// directory name when the manifest could not be loaded.
func (r *crateRoot) name() string {
	if r.man != nil && r.man.Package.Name != "" {
		return r.man.Package.Name
	}
	return filepath.Base(r.dir)
}

// classifyCrate classifies every root of one crate and reduces the root
// verdicts with the same policy used for targets within a package.
func (s *Scanner) classifyCrate(name string, roots []*crateRoot) Record {
	record := Record{Name: name}

	verdicts := make([]classify.Verdict, 0, len(roots))
	for _, root := range roots {
		result := s.classifyRoot(root)
		verdicts = append(verdicts, result.Verdict)

		if result.Diagnostic != "" && record.Diagnostic == "" {
			record.Diagnostic = result.Diagnostic
		}
		if root.man != nil && root.man.Package.Version != "" {
			record.Versions = append(record.Versions, root.man.Package.Version)
		}
	}

	record.Verdict = classify.ReduceVerdicts(verdicts)
	if record.Verdict == classify.NonTrivial {
		record.Diagnostic = ""
	}

	sort.Strings(record.Versions)
	return record
}

func (s *Scanner) classifyRoot(root *crateRoot) classify.PackageResult {
	if root.ambiguous {
		return classify.Package(s.opts.Dialect, s.files, nil, true)
	}
	if root.loadErr != nil {
		return classify.PackageResult{
			Verdict:    classify.Error,
			Diagnostic: root.loadErr.Error(),
		}
	}

	targets := (&manifest.Root{Dir: root.dir, Manifest: root.man}).Targets()
	return classify.Package(s.opts.Dialect, s.files, targets, false)
}
