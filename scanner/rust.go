// scanner/rust.go - Tree-sitter structural scan for Rust entry points
package scanner

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// rustEntryFunction is the name of the program entry point in Rust
// binary crates.
const rustEntryFunction = "main"

type RustScanner struct {
	BaseScanner
}

func NewRustScanner() (*RustScanner, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	return &RustScanner{
		BaseScanner: BaseScanner{
			parser:    parser,
			ecosystem: "rust",
		},
	}, nil
}

func (s *RustScanner) Close() {
}

func (s *RustScanner) ScanFile(filePath string) (*FileScan, error) {
	return s.scanFileGeneric(filePath, s)
}

// ScanSource scans one Rust source file and returns its structural
// summary. The tree is owned by this call and released before returning.
func (s *RustScanner) ScanSource(source []byte) (*FileScan, error) {
	tree, err := s.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	scan := &FileScan{}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)

		if isNonItem(child.Type()) {
			continue
		}

		item := s.itemFrom(child, source)
		scan.Items = append(scan.Items, item)

		if item.Kind == ItemFunction && item.Name == rustEntryFunction && !scan.HasEntry {
			scan.HasEntry = true
			scan.EntryBody = s.entryBody(child, source)
		}
	}

	return scan, nil
}

// isNonItem reports node types that appear at the top level but are not
// declarations: comments and attributes.
func isNonItem(nodeType string) bool {
	switch nodeType {
	case "line_comment", "block_comment", "attribute_item", "inner_attribute_item":
		return true
	}
	return false
}

func (s *RustScanner) itemFrom(node *sitter.Node, source []byte) Item {
	item := Item{
		Kind: rustItemKind(node.Type()),
		Name: fieldText(node, "name", source),
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "visibility_modifier" {
			item.Visibility = string(source[child.StartByte():child.EndByte()])
			break
		}
	}

	return item
}

func rustItemKind(nodeType string) ItemKind {
	switch nodeType {
	case "function_item":
		return ItemFunction
	case "struct_item":
		return ItemStruct
	case "enum_item":
		return ItemEnum
	case "const_item":
		return ItemConst
	case "static_item":
		return ItemStatic
	case "mod_item":
		return ItemModule
	case "trait_item":
		return ItemTrait
	case "type_item":
		return ItemTypeAlias
	case "foreign_mod_item":
		return ItemForeignMod
	case "use_declaration":
		return ItemReexport
	case "macro_invocation":
		return ItemMacroCall
	default:
		return ItemOther
	}
}

// entryBody collects the statements of the entry function's block,
// skipping comments so that a commented hello-world still reads as a
// single statement.
func (s *RustScanner) entryBody(fn *sitter.Node, source []byte) []Statement {
	body := fn.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var statements []Statement
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "line_comment" || child.Type() == "block_comment" {
			continue
		}
		statements = append(statements, s.statementFrom(child, source))
	}

	return statements
}

func (s *RustScanner) statementFrom(node *sitter.Node, source []byte) Statement {
	expr := node
	if node.Type() == "expression_statement" && node.NamedChildCount() > 0 {
		expr = node.NamedChild(0)
	}

	if expr.Type() != "macro_invocation" {
		return Statement{Kind: StmtOther}
	}

	st := Statement{
		Kind:  StmtMacroCall,
		Macro: macroName(expr, source),
	}

	args := childOfType(expr, "token_tree")
	if args == nil {
		return st
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		tok := args.NamedChild(i)
		if tok.Type() == "line_comment" || tok.Type() == "block_comment" {
			continue
		}
		st.TokenCount++

		if !st.HasLiteral && tok.Type() == "string_literal" {
			st.Literal = StripQuotes(string(source[tok.StartByte():tok.EndByte()]))
			st.HasLiteral = true
		}
	}

	return st
}

// macroName returns the invoked macro's name without any leading path
// segments, so std::println and println compare equal.
func macroName(node *sitter.Node, source []byte) string {
	mac := node.ChildByFieldName("macro")
	if mac == nil {
		return ""
	}

	name := string(source[mac.StartByte():mac.EndByte()])
	if idx := strings.LastIndex(name, "::"); idx >= 0 {
		name = name[idx+2:]
	}
	return name
}
