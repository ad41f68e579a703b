package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/pyflyby/internal/rewrite"
)

var tidyCmd = &cobra.Command{
	Use:   "tidy [files...]",
	Short: "Tidy the import prologue: drop unused, add missing, apply mandatory and canonical rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles(args, rewrite.TidyImports)
	},
}
