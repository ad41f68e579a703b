package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/pyflyby/internal/rewrite"
)

var collectCmd = &cobra.Command{
	Use:   "collect [files...]",
	Short: "Harvest every top-level import statement in a file into one rendered ImportSet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles(args, rewrite.CollectImports)
	},
}
