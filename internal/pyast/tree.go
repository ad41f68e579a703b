package pyast

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ingo-eichhorst/pyflyby/internal/text"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// Tree is a parsed file: the raw tree-sitter syntax tree (consumed
// directly by the scope analyzer, C8, which needs to descend into nested
// scopes that Block does not slice out) plus the derived top-level Block
// (consumed by the rewriter, C10).
type Tree struct {
	raw   *tree_sitter.Tree
	text  text.FileText
	block Block
	flags types.CompilerFlags
}

// Close releases the underlying tree-sitter tree. Safe to call once per
// Tree returned from Parser.Parse.
func (t *Tree) Close() {
	if t.raw != nil {
		t.raw.Close()
	}
}

// Root returns the tree-sitter module root node.
func (t *Tree) Root() *tree_sitter.Node { return t.raw.RootNode() }

// Text returns the FileText the tree was parsed from.
func (t *Tree) Text() text.FileText { return t.text }

// Block returns the top-level, trivia-preserving statement sequence.
func (t *Tree) Block() Block { return t.block }

// Flags returns the compiler flags declared by this file's own
// `from __future__ import ...` statements, unioned with whatever flags
// the caller required when parsing.
func (t *Tree) Flags() types.CompilerFlags { return t.flags }

// StatementText returns s's own source text, excluding its leading
// trivia — i.e. just the statement node itself, not the blank
// lines/comments Statement.Source() also carries. Returns "" for the
// synthetic trailing trivia-only pseudo-statement.
func (t *Tree) StatementText(s Statement) string {
	if s.node == nil {
		return ""
	}
	return nodeText(t.text, s.node)
}
