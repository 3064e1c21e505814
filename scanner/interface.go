package scanner

import (
	"errors"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrParse marks an entry-point file whose contents are not syntactically
// valid for the scanner's ecosystem. Callers distinguish it from read
// failures with errors.Is.
var ErrParse = errors.New("source is not syntactically valid")

// Scanner defines the interface for ecosystem-specific structural scanners
type Scanner interface {
	Ecosystem() string
	Close()
	ScanFile(filePath string) (*FileScan, error)
	ScanSource(source []byte) (*FileScan, error)
}

// BaseScanner provides common functionality for all ecosystem scanners
type BaseScanner struct {
	parser    *sitter.Parser
	ecosystem string
}

// FileScan is the structural summary of one entry-point file: every
// top-level declaration, plus the statements of the entry function when
// the file declares one.
type FileScan struct {
	Items     []Item
	EntryBody []Statement
	HasEntry  bool
}

// ItemKind identifies what sort of top-level declaration an Item is.
type ItemKind int

const (
	ItemFunction ItemKind = iota
	ItemStruct
	ItemEnum
	ItemConst
	ItemStatic
	ItemModule
	ItemTrait
	ItemTypeAlias
	ItemForeignMod
	ItemReexport
	ItemMacroCall
	ItemOther
)

// Item represents a top-level declaration found in an entry-point file
type Item struct {
	Kind       ItemKind
	Name       string // empty for declarations without a name, e.g. re-exports
	Visibility string // raw visibility qualifier text, empty when absent
}

// StatementKind identifies the shape of a statement in the entry body.
type StatementKind int

const (
	// StmtMacroCall is a macro-invocation statement, the shape a
	// diagnostic print takes in the ecosystems this tool targets.
	StmtMacroCall StatementKind = iota
	StmtOther
)

// Statement is one statement of the entry function's body, with enough
// structure to recognize a plain diagnostic print: the macro name, its
// first string-literal argument, and how many argument tokens follow the
// macro bang.
type Statement struct {
	Kind       StatementKind
	Macro      string // macro name without path qualifiers
	Literal    string // first string-literal argument, quotes stripped
	HasLiteral bool
	TokenCount int // named tokens inside the macro argument list
}
