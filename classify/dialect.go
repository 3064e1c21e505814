package classify

import "github.com/cratesift/cratesift/scanner"

// DefaultGreeting is the literal the canonical no-op binary prints. It
// matches the template cargo generates for a new binary crate.
const DefaultGreeting = "Hello, world!"

// Dialect carries the ecosystem-specific pieces of the heuristic: which
// statement counts as the canonical no-op print, and which visibility
// qualifier marks an item as exported. The classifiers themselves are
// ecosystem-neutral.
type Dialect struct {
	Name          string
	EntryFunction string
	PrintMacro    string
	Greeting      string
	ExportedVis   string
}

// Rust returns the dialect for extracted crates: a println! of the cargo
// template greeting, and plain pub visibility. Narrower qualifiers such
// as pub(crate) are not exported surface.
func Rust() Dialect {
	return Dialect{
		Name:          "rust",
		EntryFunction: "main",
		PrintMacro:    "println",
		Greeting:      DefaultGreeting,
		ExportedVis:   "pub",
	}
}

// IsCanonicalGreeting reports whether st is exactly a diagnostic print of
// the canonical greeting: the print macro, a single argument token, and
// a literal equal to the greeting. Formatting arguments or interpolation
// fail the token-count or equality checks.
func (d Dialect) IsCanonicalGreeting(st scanner.Statement) bool {
	return st.Kind == scanner.StmtMacroCall &&
		st.Macro == d.PrintMacro &&
		st.HasLiteral &&
		st.TokenCount == 1 &&
		st.Literal == d.Greeting
}

// IsExported reports whether an item is part of the target's public
// surface.
func (d Dialect) IsExported(item scanner.Item) bool {
	return item.Visibility == d.ExportedVis
}
