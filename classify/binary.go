package classify

import "github.com/cratesift/cratesift/scanner"

// Binary classifies a binary target's entry file.
//
// The file is trivial when it does nothing observable: no functions
// besides the entry function, and an entry body that is empty or is
// exactly one canonical greeting print. Anything else - an extra
// statement, a different literal, formatting arguments, or a helper
// function - is non-trivial.
func Binary(d Dialect, scan *scanner.FileScan) Verdict {
	for _, item := range scan.Items {
		if item.Kind == scanner.ItemFunction && item.Name != d.EntryFunction {
			return NonTrivial
		}
	}

	if !scan.HasEntry {
		// No entry function at all: the target cannot run anything.
		return Trivial
	}

	switch len(scan.EntryBody) {
	case 0:
		// An empty entry body does nothing, same as the greeting stub.
		return Trivial
	case 1:
		if d.IsCanonicalGreeting(scan.EntryBody[0]) {
			return Trivial
		}
		return NonTrivial
	default:
		return NonTrivial
	}
}
