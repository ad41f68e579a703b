package rewrite

import (
	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
)

// RemoveBrokenImports implements §4.10 remove_broken_imports: every
// prologue import whose target fails to resolve against opts.Probe is
// dropped, honoring the `# noqa` side-effect-retention pragma the same
// way tidy_imports does.
func RemoveBrokenImports(tree *pyast.Tree, opts Options) (Outcome, error) {
	if opts.cancelled() {
		return Outcome{Text: tree.Text().String(), Cancelled: true}, nil
	}
	if guard, ok := wildcardGuard(tree); ok {
		return guard, nil
	}

	noqaNames := collectNoqaBoundNames(tree)

	var diags []Diagnostic
	outcome, err := reformatSet(tree, opts, func(set imports.ImportSet) (imports.ImportSet, error) {
		broken := make(map[string]bool)
		for _, im := range set.Items() {
			name := im.BoundName()
			if noqaNames[name] {
				continue
			}
			resolves, ok := opts.Probe.Resolves(im)
			if ok && !resolves {
				broken[name] = true
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Message:  "broken import removed: " + name,
				})
			}
		}
		return set.WithoutBoundNames(broken), nil
	})
	if err != nil {
		return Outcome{}, err
	}
	outcome.Diagnostics = diags
	return outcome, nil
}
