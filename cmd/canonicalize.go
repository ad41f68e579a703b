package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/pyflyby/internal/rewrite"
)

var canonicalizeCmd = &cobra.Command{
	Use:   "canonicalize [files...]",
	Short: "Rewrite prologue imports through the database's canonical_imports rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles(args, rewrite.CanonicalizeImports)
	},
}
