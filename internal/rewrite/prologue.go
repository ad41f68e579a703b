package rewrite

import (
	"regexp"
	"strings"

	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
	"github.com/ingo-eichhorst/pyflyby/internal/text"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// findPrologue locates the import prologue (§4.10): an optional leading
// module-docstring statement, followed by a run of top-level import
// statements. Returns the exclusive end index into block.Statements and
// the docstring's index (-1 if none).
func findPrologue(block pyast.Block) (end int, docIdx int) {
	docIdx = -1
	i := 0
	if len(block.Statements) > 0 && block.Statements[0].IsModuleDocstring() {
		docIdx = 0
		i = 1
	}
	for i < len(block.Statements) && block.Statements[i].IsTopLevelImportStatement() {
		i++
	}
	return i, docIdx
}

// shebangPattern and codingPattern recognize the two preamble lines the
// splice preserves verbatim ahead of a synthesized import block, even
// when there is no module docstring to anchor them to (§4.10 "preserving
// pre-prologue trivia").
var (
	shebangPattern = regexp.MustCompile(`^#!`)
	codingPattern  = regexp.MustCompile(`coding[:=]\s*[-\w.]+`)
)

// preambleEndOffset returns the byte offset just past the file's
// shebang line and/or encoding-cookie line (each must appear within the
// first two physical lines), plus any blank lines immediately
// following them. 0 if there is no such preamble.
func preambleEndOffset(ft text.FileText) int {
	lines := 0
	if shebangPattern.MatchString(ft.LineText(1)) {
		lines = 1
	}
	codingLine := lines + 1
	if codingLine <= 2 && codingPattern.MatchString(ft.LineText(codingLine)) {
		lines = codingLine
	}
	for lines < ft.Lines() && ft.LineText(lines+1) == "" {
		lines++
	}
	if lines == 0 {
		return 0
	}
	return ft.OffsetAt(types.NewFilePos(lines+1, 1))
}

// collectPrologueImports parses every import statement in
// block.Statements[start:end] and unions their members into one
// ImportSet, skipping (with no error — this should not happen for a
// node the parser itself classified as an import statement) any that
// fail to re-parse from their own source text.
func collectPrologueImports(tree *pyast.Tree, block pyast.Block, start, end int) imports.ImportSet {
	set := imports.NewImportSet()
	for _, st := range block.Statements[start:end] {
		raw := tree.StatementText(st)
		parsed, err := imports.ParseImportStatementSource(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		for _, im := range parsed.Members() {
			set.Add(im)
		}
	}
	return set
}

// noqaPattern recognizes the side-effect-retention pragma: a trailing
// "# noqa" comment (case-insensitive) on an import statement's own
// line. Any other trailing comment is non-pragmatic (§4.10, §9 Open
// Questions: honored by every pass that might otherwise drop an
// import, not just tidy_imports).
var noqaPattern = regexp.MustCompile(`(?i)#\s*noqa\b`)

// prologueHasWildcard reports whether any import_from_statement in
// block.Statements[start:end] is a bare `from M import *`. The
// ImportSet model has no representation for an unexpanded wildcard, so
// every prologue-rewriting pass except replace_star_imports itself must
// refuse to touch a prologue containing one (it would otherwise be
// silently dropped from the rendered output).
func prologueHasWildcard(block pyast.Block, start, end int) bool {
	for _, st := range block.Statements[start:end] {
		node := st.Node()
		if node == nil || node.Kind() != "import_from_statement" {
			continue
		}
		n := node.NamedChildCount()
		for i := uint(0); i < n; i++ {
			if c := node.NamedChild(i); c != nil && c.Kind() == "wildcard_import" {
				return true
			}
		}
	}
	return false
}

// hasNoqaPragma reports whether st's source line carries the noqa
// pragma.
func hasNoqaPragma(tree *pyast.Tree, st pyast.Statement) bool {
	node := st.Node()
	if node == nil {
		return false
	}
	ft := tree.Text()
	line := ft.PosAt(int(node.EndByte())).Line
	return noqaPattern.MatchString(ft.LineText(line))
}
