package rewrite

import (
	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/internal/importdb"
	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
)

// TransformImports implements §4.10 transform_imports: every prologue
// import whose fullname has one of rules' Old dotted prefixes is
// rewritten to the matching New prefix (longest Old wins), preserving
// the original bound name via Import.WithPrefixRewritten.
func TransformImports(tree *pyast.Tree, opts Options, rules []importdb.CanonicalRule) (Outcome, error) {
	if opts.cancelled() {
		return Outcome{Text: tree.Text().String(), Cancelled: true}, nil
	}
	if guard, ok := wildcardGuard(tree); ok {
		return guard, nil
	}

	return reformatSet(tree, opts, func(set imports.ImportSet) (imports.ImportSet, error) {
		out := imports.NewImportSet()
		for _, im := range set.Items() {
			out.Add(applyRules(im, rules))
		}
		return out, nil
	})
}

// applyRules rewrites im through the longest-matching Old prefix in
// rules, or returns im unchanged if none match — the same
// longest-prefix-wins policy importdb.DB.Canonicalize uses.
func applyRules(im imports.Import, rules []importdb.CanonicalRule) imports.Import {
	best := -1
	rewritten := im
	for _, rule := range rules {
		if out, ok := im.WithPrefixRewritten(rule.Old, rule.New); ok {
			if n := rule.Old.Len(); n > best {
				best = n
				rewritten = out
			}
		}
	}
	return rewritten
}

// CanonicalizeImports implements §4.10 canonicalize_imports: the same
// rewrite as TransformImports, sourcing its rules from opts.DB's
// canonical_imports directives rather than a caller-supplied list.
func CanonicalizeImports(tree *pyast.Tree, opts Options) (Outcome, error) {
	if opts.cancelled() {
		return Outcome{Text: tree.Text().String(), Cancelled: true}, nil
	}
	if guard, ok := wildcardGuard(tree); ok {
		return guard, nil
	}

	return reformatSet(tree, opts, func(set imports.ImportSet) (imports.ImportSet, error) {
		return applyCanonical(set, opts), nil
	})
}
