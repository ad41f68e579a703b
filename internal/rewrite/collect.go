package rewrite

import (
	"strings"

	"github.com/ingo-eichhorst/pyflyby/internal/format"
	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
)

// CollectImports implements the `collect` orchestration primitive named
// in §2's overview (distinct from reformat_import_statements/
// tidy_imports, which only ever touch the import *prologue*): it
// harvests every top-level import statement anywhere in the file —
// prologue or not — and renders them as one ImportSet, the way a
// contributor file's `known_imports` seed list is built from existing
// source.
func CollectImports(tree *pyast.Tree, opts Options) (Outcome, error) {
	original := tree.Text().String()
	if opts.cancelled() {
		return Outcome{Text: original, Cancelled: true}, nil
	}

	set := imports.NewImportSet()
	for _, st := range tree.Block().Statements {
		if !st.IsTopLevelImportStatement() {
			continue
		}
		raw := tree.StatementText(st)
		parsed, err := imports.ParseImportStatementSource(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		for _, im := range parsed.Members() {
			set.Add(im)
		}
	}

	rendered, err := format.Render(set, opts.Params, true)
	if err != nil {
		return Outcome{}, err
	}
	if rendered != "" {
		rendered += "\n"
	}
	return Outcome{Text: rendered, Changed: rendered != original}, nil
}
