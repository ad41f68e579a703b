package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/pyflyby/internal/rewrite"
)

var replaceStarCmd = &cobra.Command{
	Use:   "replace-star [files...]",
	Short: "Expand `from M import *` into an explicit, alphabetized member list via the probe",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles(args, rewrite.ReplaceStarImports)
	},
}
