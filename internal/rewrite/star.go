package rewrite

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// ReplaceStarImports implements §4.10 replace_star_imports: every
// `from M import *` in the prologue is expanded to an alphabetically
// sorted explicit member list by consulting the probe; a probe miss
// leaves that statement untouched and records a diagnostic.
func ReplaceStarImports(tree *pyast.Tree, opts Options) (Outcome, error) {
	if opts.cancelled() {
		return Outcome{Text: tree.Text().String(), Cancelled: true}, nil
	}

	var diags []Diagnostic
	block := tree.Block()
	prologueEnd, docIdx := findPrologue(block)
	importsStart := 0
	if docIdx == 0 {
		importsStart = 1
	}

	var expansions []imports.ImportStatement
	unresolved := false
	for _, st := range block.Statements[importsStart:prologueEnd] {
		node := st.Node()
		if node == nil || node.Kind() != "import_from_statement" || !fromStatementHasWildcard(node) {
			continue
		}
		module := fromModuleText(tree, node)
		exported, ok := opts.Probe.Exports(module)
		if !ok {
			unresolved = true
			diags = append(diags, Diagnostic{
				Pos:      tree.Text().PosAt(int(node.StartByte())),
				Severity: SeverityWarning,
				Message:  "probe could not expand `from " + module + " import *`",
			})
			continue
		}
		dn, err := types.ParseDottedName(module)
		if err != nil {
			unresolved = true
			continue
		}
		newSt, err := imports.NewImportStatement(dn, 0, exported.Items()...)
		if err != nil {
			unresolved = true
			continue
		}
		expansions = append(expansions, newSt)
	}

	// The ImportSet model has no way to represent a bare, unexpanded
	// `from M import *` — if any star in the prologue couldn't be
	// resolved, leave the whole prologue untouched rather than silently
	// dropping that statement from the rendered output.
	if unresolved {
		out := unchanged(tree.Text().String())
		out.Diagnostics = diags
		return out, nil
	}

	outcome, err := reformatSet(tree, opts, func(set imports.ImportSet) (imports.ImportSet, error) {
		for _, st := range expansions {
			for _, im := range st.Members() {
				set.Add(im)
			}
		}
		return set, nil
	})
	if err != nil {
		return Outcome{}, err
	}
	outcome.Diagnostics = diags
	return outcome, nil
}

func fromStatementHasWildcard(node *tree_sitter.Node) bool {
	n := node.NamedChildCount()
	for i := uint(0); i < n; i++ {
		if c := node.NamedChild(i); c != nil && c.Kind() == "wildcard_import" {
			return true
		}
	}
	return false
}

func fromModuleText(tree *pyast.Tree, node *tree_sitter.Node) string {
	if mod := node.ChildByFieldName("module_name"); mod != nil {
		return mod.Utf8Text(tree.Text().Bytes())
	}
	return ""
}
