package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/pyflyby/internal/importdb"
	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
	"github.com/ingo-eichhorst/pyflyby/internal/rewrite"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

var transformRules []string

var transformCmd = &cobra.Command{
	Use:   "transform [files...]",
	Short: "Rewrite prologue imports whose dotted prefix matches an OLD=NEW --rule, preserving bound names",
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := parseTransformRules(transformRules)
		if err != nil {
			return &types.ExitError{Code: 2, Err: err}
		}
		return runFiles(args, func(tree *pyast.Tree, opts rewrite.Options) (rewrite.Outcome, error) {
			return rewrite.TransformImports(tree, opts, rules)
		})
	},
}

func init() {
	transformCmd.Flags().StringArrayVar(&transformRules, "rule", nil, "OLD=NEW dotted-prefix rewrite rule (repeatable)")
}

func parseTransformRules(raw []string) ([]importdb.CanonicalRule, error) {
	rules := make([]importdb.CanonicalRule, 0, len(raw))
	for _, r := range raw {
		old, new, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("--rule %q: expected OLD=NEW", r)
		}
		oldDN, err := types.ParseDottedName(strings.TrimSpace(old))
		if err != nil {
			return nil, fmt.Errorf("--rule %q: %w", r, err)
		}
		newDN, err := types.ParseDottedName(strings.TrimSpace(new))
		if err != nil {
			return nil, fmt.Errorf("--rule %q: %w", r, err)
		}
		rules = append(rules, importdb.CanonicalRule{Old: oldDN, New: newDN})
	}
	return rules, nil
}
