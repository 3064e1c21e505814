package classify

import (
	"errors"
	"fmt"

	"github.com/cratesift/cratesift/scanner"
)

// ErrResolution marks a declared target whose entry file could not be
// located or read.
var ErrResolution = errors.New("entry point unresolvable")

// ErrAmbiguousManifest marks a package root with further manifests
// beneath it. Extracted crate files sometimes embed whole vendored
// crates; classifying across them produces false positives, so the
// condition is surfaced instead of resolved.
var ErrAmbiguousManifest = errors.New("nested manifests found in package subtree")

// TargetKind distinguishes the two target shapes a package can declare.
type TargetKind int

const (
	BinaryTarget TargetKind = iota
	LibraryTarget
)

func (k TargetKind) String() string {
	if k == LibraryTarget {
		return "lib"
	}
	return "bin"
}

// Target is one declared compilation unit with its resolved entry file.
type Target struct {
	Kind TargetKind
	Path string
}

// TargetResult is the outcome of classifying one target. Err is set when
// Verdict is Error and carries the parse or resolution failure.
type TargetResult struct {
	Target  Target
	Verdict Verdict
	Err     error
}

// PackageResult is the reduced outcome for one package root.
type PackageResult struct {
	Verdict    Verdict
	Targets    []TargetResult
	Diagnostic string
}

// FileScanner supplies structural scans of entry files to the package
// classifier. The scan layer provides a caching implementation.
type FileScanner interface {
	ScanFile(path string) (*scanner.FileScan, error)
}

// Package classifies every target of one package root and reduces the
// per-target verdicts to a package verdict. When the discovery layer has
// flagged the root as ambiguous (nested manifests), the package is
// reported Ambiguous without looking at any target: guessing which
// manifest wins would silently misclassify.
func Package(d Dialect, files FileScanner, targets []Target, ambiguous bool) PackageResult {
	if ambiguous {
		return PackageResult{
			Verdict:    Ambiguous,
			Diagnostic: ErrAmbiguousManifest.Error(),
		}
	}

	results := make([]TargetResult, 0, len(targets))
	for _, target := range targets {
		results = append(results, classifyTarget(d, files, target))
	}

	verdicts := make([]Verdict, len(results))
	diagnostic := ""
	for i, r := range results {
		verdicts[i] = r.Verdict
		if r.Err != nil && diagnostic == "" {
			diagnostic = r.Err.Error()
		}
	}

	reduced := ReduceVerdicts(verdicts)
	if reduced == NonTrivial {
		// A non-trivial sibling masks target errors.
		diagnostic = ""
	}

	return PackageResult{Verdict: reduced, Targets: results, Diagnostic: diagnostic}
}

func classifyTarget(d Dialect, files FileScanner, target Target) TargetResult {
	scan, err := files.ScanFile(target.Path)
	if err != nil {
		if !errors.Is(err, scanner.ErrParse) && !errors.Is(err, ErrResolution) {
			err = fmt.Errorf("%w: %v", ErrResolution, err)
		}
		return TargetResult{Target: target, Verdict: Error, Err: err}
	}

	var verdict Verdict
	switch target.Kind {
	case LibraryTarget:
		verdict = Library(d, scan)
	default:
		verdict = Binary(d, scan)
	}

	return TargetResult{Target: target, Verdict: verdict}
}
