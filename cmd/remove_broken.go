package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/pyflyby/internal/rewrite"
)

var removeBrokenCmd = &cobra.Command{
	Use:   "remove-broken [files...]",
	Short: "Drop prologue imports that fail to resolve against the probe",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles(args, rewrite.RemoveBrokenImports)
	},
}
