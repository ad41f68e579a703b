package rewrite

import (
	"strings"

	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
	"github.com/ingo-eichhorst/pyflyby/internal/scope"
)

// TidyImports implements §4.10 tidy_imports: reformat, then consult the
// scope analyzer to add missing-name resolutions and drop unused
// imports (honoring the `# noqa` side-effect-retention pragma), add any
// not-yet-present mandatory imports, and apply the database's canonical
// rewrite rules — all within the single reformat splice.
func TidyImports(tree *pyast.Tree, opts Options) (Outcome, error) {
	if opts.cancelled() {
		return Outcome{Text: tree.Text().String(), Cancelled: true}, nil
	}
	if guard, ok := wildcardGuard(tree); ok {
		return guard, nil
	}

	result := scope.Analyze(tree)
	noqaNames := collectNoqaBoundNames(tree)

	var diags []Diagnostic
	outcome, err := reformatSet(tree, opts, func(set imports.ImportSet) (imports.ImportSet, error) {
		unused := imports.NewImportSet()
		for _, im := range result.Unused {
			if !noqaNames[im.BoundName()] {
				unused.Add(im)
				if set.Contains(im) {
					diags = append(diags, Diagnostic{Severity: SeverityWarning, Message: "unused import removed: " + im.BoundName()})
				}
			}
		}
		set = set.WithoutImports(unused)

		for _, name := range result.Missing {
			candidates := opts.DB.Known().ByBoundName(name)
			switch len(candidates) {
			case 0:
				diags = append(diags, Diagnostic{Severity: SeverityWarning, Message: "no known import resolves " + name})
			case 1:
				set.Add(candidates[0])
			default:
				if pref, ok := opts.DB.Preferred(name); ok {
					set.Add(pref)
				} else {
					diags = append(diags, Diagnostic{Severity: SeverityWarning, Message: "ambiguous candidates for " + name})
				}
			}
		}

		for _, im := range opts.DB.Mandatory().Items() {
			if !set.Contains(im) {
				set.Add(im)
			}
		}

		return applyCanonical(set, opts), nil
	})
	if err != nil {
		return Outcome{}, err
	}
	outcome.Diagnostics = diags
	return outcome, nil
}

// applyCanonical rewrites every member of set through the database's
// longest-matching canonical_imports rule, leaving unmatched members
// unchanged (§4.10 "Apply canonical_imports rewrite rules").
func applyCanonical(set imports.ImportSet, opts Options) imports.ImportSet {
	out := imports.NewImportSet()
	for _, im := range set.Items() {
		if rewritten, ok := opts.DB.Canonicalize(im); ok {
			out.Add(rewritten)
		} else {
			out.Add(im)
		}
	}
	return out
}

// collectNoqaBoundNames returns the bound names of every prologue import
// statement carrying the `# noqa` pragma — these survive the
// unused-import removal pass regardless of scope analysis (§4.10, §9
// Open Questions).
func collectNoqaBoundNames(tree *pyast.Tree) map[string]bool {
	block := tree.Block()
	prologueEnd, docIdx := findPrologue(block)
	importsStart := 0
	if docIdx == 0 {
		importsStart = 1
	}

	names := make(map[string]bool)
	for _, st := range block.Statements[importsStart:prologueEnd] {
		if !hasNoqaPragma(tree, st) {
			continue
		}
		raw := tree.StatementText(st)
		parsed, err := imports.ParseImportStatementSource(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		for _, im := range parsed.Members() {
			names[im.BoundName()] = true
		}
	}
	return names
}
