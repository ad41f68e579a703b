package pyast

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ingo-eichhorst/pyflyby/internal/text"
)

// Statement is one top-level statement together with the blank lines and
// comments that immediately precede it (its leading trivia). Source()
// always starts right after the previous statement's Source() ends, so
// concatenating every Statement's Source() in order losslessly
// reconstructs the file (§3 round-trip guarantee).
type Statement struct {
	source           text.FileText
	node             *tree_sitter.Node // nil for a trailing trivia-only pseudo-statement
	isImport         bool
	isTopLevelImport bool
	isDocstring      bool
}

// Source returns the statement's exact source slice, trivia included.
func (s Statement) Source() text.FileText { return s.source }

// IsImportStatement reports whether the statement's own node (ignoring
// leading trivia) is an import_statement, import_from_statement or
// future_import_statement node
// directly under the module — i.e. the kind the grammar itself assigns,
// not a deeper inspection of wrapped children.
func (s Statement) IsImportStatement() bool { return s.isImport }

// IsTopLevelImportStatement reports whether this statement both is an
// import statement and sits directly at module scope. The module-scope
// half holds for every Statement built by Block (by construction, Block
// only ever slices module-level children), so this is true exactly for
// the import statements, and false for every other statement and for
// the synthetic end-of-file trivia pseudo-statement. Kept as a named
// predicate because decorated
// or conditionally-wrapped imports (`if x: import y`) are NOT sliced as
// their own Statement — they appear as part of the enclosing
// if_statement/decorated_definition Statement, whose IsImportStatement
// is false, so this predicate naturally excludes them (§4.4).
func (s Statement) IsTopLevelImportStatement() bool { return s.isTopLevelImport }

// IsModuleDocstring reports whether this is the file's leading bare
// string-literal expression statement.
func (s Statement) IsModuleDocstring() bool { return s.isDocstring }

// Node returns the tree-sitter node for the statement's own text (not
// including leading trivia), or nil for the trailing trivia pseudo-
// statement that holds a file's final blank lines/comments.
func (s Statement) Node() *tree_sitter.Node { return s.node }

// Block is a file's top-level statement sequence.
type Block struct {
	Statements []Statement
}

// Source reconstructs the full original text by concatenating every
// statement's Source() in order — a round-trip assertion helper.
func (b Block) Source(filename string) text.FileText {
	texts := make([]text.FileText, len(b.Statements))
	for i, s := range b.Statements {
		texts[i] = s.source
	}
	return text.Concat(filename, texts...)
}

// buildBlock slices root's direct children into a trivia-preserving
// Statement sequence. Comment nodes are `extra` in the grammar and so
// appear as ordinary children interleaved with statement nodes; blank
// lines are not represented by any node at all. Both are folded into
// the leading trivia of whichever real statement follows them, and any
// trivia left over after the last real statement is appended to that
// statement's trailing range (or becomes a single trivia-only
// Statement, for an all-comment or empty file).
func buildBlock(ft text.FileText, root *tree_sitter.Node) Block {
	if root == nil {
		return Block{Statements: []Statement{{source: ft}}}
	}

	var stmts []Statement
	prevEnd := 0
	sawDocstring := false

	n := root.ChildCount()
	for i := uint(0); i < n; i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		kind := child.Kind()
		if kind == "comment" {
			continue // folded into the next real statement's leading trivia
		}

		start := int(child.StartByte())
		end := int(child.EndByte())
		if start < prevEnd {
			start = prevEnd
		}

		isImport := kind == "import_statement" || kind == "import_from_statement" || kind == "future_import_statement"
		isDocstring := !sawDocstring && len(stmts) == 0 && kind == "expression_statement" && isBareString(child)
		if isDocstring {
			sawDocstring = true
		}

		stmts = append(stmts, Statement{
			source:           ft.SliceOffsets(prevEnd, end),
			node:             child,
			isImport:         isImport,
			isTopLevelImport: isImport,
			isDocstring:      isDocstring,
		})
		prevEnd = end
	}

	if prevEnd < ft.Len() {
		if len(stmts) > 0 {
			last := &stmts[len(stmts)-1]
			last.source = ft.SliceOffsets(ft.OffsetAt(last.source.StartPos()), ft.Len())
		} else {
			stmts = append(stmts, Statement{source: ft.SliceOffsets(0, ft.Len())})
		}
	}

	if len(stmts) == 0 {
		stmts = append(stmts, Statement{source: ft})
	}

	return Block{Statements: stmts}
}

// isBareString reports whether node is an expression_statement whose
// sole child is a string literal (a docstring candidate).
func isBareString(node *tree_sitter.Node) bool {
	if node.NamedChildCount() != 1 {
		return false
	}
	child := node.NamedChild(0)
	return child != nil && child.Kind() == "string"
}
