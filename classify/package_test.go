package classify

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratesift/cratesift/scanner"
)

// fakeScanner serves canned scans keyed by path.
type fakeScanner struct {
	scans map[string]*scanner.FileScan
	errs  map[string]error
}

func (f *fakeScanner) ScanFile(path string) (*scanner.FileScan, error) {
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	if scan, ok := f.scans[path]; ok {
		return scan, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrResolution, path)
}

func trivialBinScan() *scanner.FileScan {
	return &scanner.FileScan{
		Items:    []scanner.Item{{Kind: scanner.ItemFunction, Name: "main"}},
		HasEntry: true,
		EntryBody: []scanner.Statement{{
			Kind:       scanner.StmtMacroCall,
			Macro:      "println",
			Literal:    "Hello, world!",
			HasLiteral: true,
			TokenCount: 1,
		}},
	}
}

func nonTrivialLibScan() *scanner.FileScan {
	return &scanner.FileScan{
		Items: []scanner.Item{{Kind: scanner.ItemFunction, Name: "add", Visibility: "pub"}},
	}
}

func TestPackageMixedTargets(t *testing.T) {
	files := &fakeScanner{scans: map[string]*scanner.FileScan{
		"src/main.rs": trivialBinScan(),
		"src/lib.rs":  nonTrivialLibScan(),
	}}

	result := Package(Rust(), files, []Target{
		{Kind: BinaryTarget, Path: "src/main.rs"},
		{Kind: LibraryTarget, Path: "src/lib.rs"},
	}, false)

	assert.Equal(t, NonTrivial, result.Verdict)
	require.Len(t, result.Targets, 2)
	assert.Equal(t, Trivial, result.Targets[0].Verdict)
	assert.Equal(t, NonTrivial, result.Targets[1].Verdict)
}

func TestPackageAllTrivial(t *testing.T) {
	files := &fakeScanner{scans: map[string]*scanner.FileScan{
		"src/main.rs": trivialBinScan(),
		"src/lib.rs":  {},
	}}

	result := Package(Rust(), files, []Target{
		{Kind: BinaryTarget, Path: "src/main.rs"},
		{Kind: LibraryTarget, Path: "src/lib.rs"},
	}, false)

	assert.Equal(t, Trivial, result.Verdict)
}

func TestPackageNoTargets(t *testing.T) {
	result := Package(Rust(), &fakeScanner{}, nil, false)
	assert.Equal(t, Trivial, result.Verdict)
}

func TestPackageErrorNotMaskedByTrivial(t *testing.T) {
	files := &fakeScanner{
		scans: map[string]*scanner.FileScan{"src/main.rs": trivialBinScan()},
		errs:  map[string]error{"src/lib.rs": fmt.Errorf("%w: src/lib.rs", ErrResolution)},
	}

	result := Package(Rust(), files, []Target{
		{Kind: BinaryTarget, Path: "src/main.rs"},
		{Kind: LibraryTarget, Path: "src/lib.rs"},
	}, false)

	assert.Equal(t, Error, result.Verdict)
	assert.NotEmpty(t, result.Diagnostic)
}

func TestPackageErrorMaskedByNonTrivial(t *testing.T) {
	files := &fakeScanner{
		scans: map[string]*scanner.FileScan{"src/lib.rs": nonTrivialLibScan()},
		errs:  map[string]error{"src/main.rs": fmt.Errorf("%w: src/main.rs", ErrResolution)},
	}

	result := Package(Rust(), files, []Target{
		{Kind: BinaryTarget, Path: "src/main.rs"},
		{Kind: LibraryTarget, Path: "src/lib.rs"},
	}, false)

	assert.Equal(t, NonTrivial, result.Verdict)
	assert.Empty(t, result.Diagnostic)
}

func TestPackageParseErrorSurfaced(t *testing.T) {
	files := &fakeScanner{
		errs: map[string]error{"src/lib.rs": fmt.Errorf("bad file: %w", scanner.ErrParse)},
	}

	result := Package(Rust(), files, []Target{{Kind: LibraryTarget, Path: "src/lib.rs"}}, false)

	assert.Equal(t, Error, result.Verdict)
	require.Len(t, result.Targets, 1)
	assert.True(t, errors.Is(result.Targets[0].Err, scanner.ErrParse))
}

func TestPackageUnknownErrorWrappedAsResolution(t *testing.T) {
	files := &fakeScanner{
		errs: map[string]error{"src/main.rs": errors.New("disk on fire")},
	}

	result := Package(Rust(), files, []Target{{Kind: BinaryTarget, Path: "src/main.rs"}}, false)

	require.Len(t, result.Targets, 1)
	assert.True(t, errors.Is(result.Targets[0].Err, ErrResolution))
}

func TestPackageAmbiguousIgnoresTargets(t *testing.T) {
	files := &fakeScanner{scans: map[string]*scanner.FileScan{
		"src/lib.rs": nonTrivialLibScan(),
	}}

	result := Package(Rust(), files, []Target{{Kind: LibraryTarget, Path: "src/lib.rs"}}, true)

	assert.Equal(t, Ambiguous, result.Verdict)
	assert.Empty(t, result.Targets)
	assert.NotEmpty(t, result.Diagnostic)
}

func TestReduceVerdicts(t *testing.T) {
	cases := []struct {
		name     string
		verdicts []Verdict
		want     Verdict
	}{
		{"empty", nil, Trivial},
		{"trivial pair", []Verdict{Trivial, Trivial}, Trivial},
		{"trivial and non-trivial", []Verdict{Trivial, NonTrivial}, NonTrivial},
		{"error and trivial", []Verdict{Error, Trivial}, Error},
		{"error and non-trivial", []Verdict{Error, NonTrivial}, NonTrivial},
		{"ambiguous and trivial", []Verdict{Ambiguous, Trivial}, Ambiguous},
		{"ambiguous and error", []Verdict{Error, Ambiguous}, Ambiguous},
		{"ambiguous and non-trivial", []Verdict{Ambiguous, NonTrivial}, NonTrivial},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ReduceVerdicts(tc.verdicts))
		})
	}
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "trivial", Trivial.String())
	assert.Equal(t, "non-trivial", NonTrivial.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "ambiguous", Ambiguous.String())
}

func TestVerdictMarshalJSON(t *testing.T) {
	data, err := NonTrivial.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"non-trivial"`, string(data))
}
