package scope

import "github.com/ingo-eichhorst/pyflyby/internal/pyast"

// Analyze computes the missing/unused sets for tree's whole syntax tree
// (not just its top-level Block — nested function and class bodies
// participate in scoping too) per §4.8.
func Analyze(tree *pyast.Tree) Result {
	return analyzeTree(tree)
}
