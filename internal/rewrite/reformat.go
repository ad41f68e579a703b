package rewrite

import (
	"strings"

	"github.com/ingo-eichhorst/pyflyby/internal/format"
	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
)

// ReformatImportStatements implements §4.10 reformat_import_statements:
// it re-renders the import prologue with the given FormatParams, leaving
// everything outside the prologue byte-for-byte untouched.
func ReformatImportStatements(tree *pyast.Tree, opts Options) (Outcome, error) {
	if guard, ok := wildcardGuard(tree); ok {
		return guard, nil
	}
	return reformatSet(tree, opts, func(set imports.ImportSet) (imports.ImportSet, error) {
		return set, nil
	})
}

// wildcardGuard returns a ready-to-use unchanged Outcome (plus a
// diagnostic) and ok=true when tree's prologue contains a bare
// `from M import *` — every prologue-rewriting pass except
// replace_star_imports must bail out rather than silently drop it, since
// the ImportSet model can't represent an unexpanded wildcard (§4.10).
func wildcardGuard(tree *pyast.Tree) (Outcome, bool) {
	block := tree.Block()
	prologueEnd, docIdx := findPrologue(block)
	importsStart := 0
	if docIdx == 0 {
		importsStart = 1
	}
	if !prologueHasWildcard(block, importsStart, prologueEnd) {
		return Outcome{}, false
	}
	out := unchanged(tree.Text().String())
	out.Diagnostics = []Diagnostic{{
		Severity: SeverityWarning,
		Message:  "prologue contains an unexpanded `import *`; run replace_star_imports first",
	}}
	return out, true
}

// reformatSet is the shared splice machinery every prologue-level pass
// (reformat, tidy, star-replace, broken-removal, transform,
// canonicalize) builds on: collect the prologue's imports, let mutate
// adjust the set, render, and splice the result back over the prologue
// region. Callers other than ReplaceStarImports must run wildcardGuard
// first; ReplaceStarImports calls this directly once every wildcard in
// the prologue has already been resolved into plain members.
func reformatSet(tree *pyast.Tree, opts Options, mutate func(imports.ImportSet) (imports.ImportSet, error)) (Outcome, error) {
	ft := tree.Text()
	original := ft.String()
	block := tree.Block()

	if opts.cancelled() {
		return Outcome{Text: original, Cancelled: true}, nil
	}

	prologueEnd, docIdx := findPrologue(block)
	importsStart := 0
	if docIdx == 0 {
		importsStart = 1
	}

	set := collectPrologueImports(tree, block, importsStart, prologueEnd)

	mutated, err := mutate(set)
	if err != nil {
		return Outcome{}, err
	}

	rendered, err := format.Render(mutated, opts.Params, opts.AllowConflicts)
	if err != nil {
		return Outcome{}, err
	}

	preambleEnd := preambleEndOffset(ft)
	var preserved strings.Builder
	preserved.WriteString(original[:preambleEnd])
	if docIdx == 0 {
		docEnd := int(block.Statements[0].Node().EndByte())
		if rendered != "" && importsStart < prologueEnd {
			// Keep the trivia between the docstring and the first import.
			docEnd = int(block.Statements[importsStart].Node().StartByte())
		}
		preserved.WriteString(original[preambleEnd:docEnd])
		if rendered != "" && importsStart >= prologueEnd {
			preserved.WriteString("\n")
		}
	}

	var tail string
	if prologueEnd < len(block.Statements) {
		tailStart := ft.OffsetAt(block.Statements[prologueEnd].Source().StartPos())
		tail = original[tailStart:]
	}

	var out strings.Builder
	out.WriteString(preserved.String())
	if rendered != "" {
		out.WriteString(rendered)
		out.WriteString("\n")
		// One blank line separates the rendered block from whatever
		// follows, unless tail already opens with one — re-running the
		// pass must not grow the gap each time. tail opens with the
		// newline that ended the last prologue statement, which the
		// "\n" above replaces.
		tail = strings.TrimPrefix(tail, "\n")
		if tail != "" && !strings.HasPrefix(tail, "\n") {
			out.WriteString("\n")
		}
	}
	out.WriteString(tail)

	result := out.String()
	return Outcome{Text: result, Changed: result != original}, nil
}
