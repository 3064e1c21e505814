package classify

import "github.com/cratesift/cratesift/scanner"

// Library classifies a library target's entry file.
//
// Any exported top-level item of any kind makes the library non-trivial,
// including re-exports - the re-export target is never chased. Zero items
// or an all-private surface is trivial.
func Library(d Dialect, scan *scanner.FileScan) Verdict {
	for _, item := range scan.Items {
		if d.IsExported(item) {
			return NonTrivial
		}
	}
	return Trivial
}
