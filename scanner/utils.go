package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// CreateScanner creates the appropriate scanner based on file extension
func CreateScanner(filePath string) (Scanner, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".rs":
		return NewRustScanner()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// parse runs the tree-sitter parser over source and rejects trees with
// syntax errors. The returned tree must be closed by the caller.
func (bs *BaseScanner) parse(source []byte) (*sitter.Tree, error) {
	tree, err := bs.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if tree == nil {
		return nil, ErrParse
	}

	if tree.RootNode().HasError() {
		tree.Close()
		return nil, ErrParse
	}

	return tree, nil
}

// scanFileGeneric provides common file reading for all ecosystem scanners
func (bs *BaseScanner) scanFileGeneric(filePath string, s Scanner) (*FileScan, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	scan, err := s.ScanSource(source)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", filePath, err)
	}

	return scan, nil
}

// Ecosystem returns the ecosystem name for this scanner
func (bs *BaseScanner) Ecosystem() string {
	return bs.ecosystem
}

func (bs *BaseScanner) Close() {
}

// StripQuotes removes the surrounding quotes from a string literal's
// source text, including the prefix of Rust raw strings.
func StripQuotes(text string) string {
	text = strings.TrimPrefix(text, "r")
	text = strings.TrimLeft(text, "#")
	text = strings.TrimRight(text, "#")
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return text
}

// fieldText returns the source text of a node's named field, or the
// empty string for nodes without that field (e.g. re-exports have no
// name).
func fieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return string(source[child.StartByte():child.EndByte()])
}

// childOfType returns the first direct child with the given node type.
func childOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}
