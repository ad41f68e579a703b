package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/pyflyby/internal/rewrite"
)

var reformatCmd = &cobra.Command{
	Use:   "reformat [files...]",
	Short: "Re-render the import prologue with the configured FormatParams, changing nothing else",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles(args, rewrite.ReformatImportStatements)
	},
}
