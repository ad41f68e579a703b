// Package pyast provides a lossless parser for the target language: it
// parses source text with tree-sitter's Python grammar and exposes both
// the raw syntax tree (for the scope analyzer, C8) and a flat, trivia-
// preserving statement sequence (Block, for the rewriter, C10) — spec
// §4.4, component C4.
//
// Tree-sitter parsers require CGO_ENABLED=1, following the teacher's
// internal/parser/treesitter.go pooling pattern — trimmed to a single
// pooled Python parser, since pyflyby targets exactly one grammar.
package pyast

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/ingo-eichhorst/pyflyby/internal/text"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// Parser holds a pooled tree-sitter Python parser. Tree-sitter parsers
// are not thread-safe, so parse operations are serialized with a mutex;
// Trees returned from parsing are safe to use concurrently afterward.
type Parser struct {
	mu     sync.Mutex
	parser *tree_sitter.Parser
}

// NewParser creates a pooled Python parser.
func NewParser() (*Parser, error) {
	p := tree_sitter.NewParser()
	lang := tree_sitter.NewLanguage(tree_sitter_python.Language())
	if err := p.SetLanguage(lang); err != nil {
		p.Close()
		return nil, fmt.Errorf("set python language: %w", err)
	}
	return &Parser{parser: p}, nil
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// Parse parses ft's content, returning a Tree the caller must Close. If
// required is non-empty and the source syntax needs a directive not
// implied by required or by the source's own future-imports, parsing
// still succeeds — future-directive gating in this grammar is advisory
// (the grammar accepts the union of recent-version syntax per §4.4); the
// caller-required flags are folded into Tree.Flags() for downstream
// consumers (e.g. the formatter deciding whether a future import is
// already guaranteed).
func (p *Parser) Parse(ft text.FileText, required types.CompilerFlags) (*Tree, error) {
	p.mu.Lock()
	raw := p.parser.Parse(ft.Bytes(), nil)
	p.mu.Unlock()
	if raw == nil {
		return nil, &types.SyntaxError{Pos: ft.StartPos(), Msg: "tree-sitter parse returned nil", Context: ft.Filename()}
	}

	root := raw.RootNode()
	if root != nil && root.HasError() {
		pos := firstErrorPos(ft, root)
		raw.Close()
		return nil, &types.SyntaxError{Pos: pos, Msg: "invalid syntax", Context: ft.Filename()}
	}

	block := buildBlock(ft, root)
	flags := detectFlags(ft, block).Union(required)

	return &Tree{raw: raw, text: ft, block: block, flags: flags}, nil
}

// firstErrorPos walks to the first ERROR node tree-sitter produced and
// reports its position, falling back to the file start.
func firstErrorPos(ft text.FileText, node *tree_sitter.Node) types.FilePos {
	if node == nil {
		return ft.StartPos()
	}
	if node.IsError() {
		return ft.PosAt(int(node.StartByte()))
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.HasError() {
			return firstErrorPos(ft, child)
		}
	}
	return ft.StartPos()
}
