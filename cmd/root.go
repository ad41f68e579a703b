package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/pyflyby/pkg/types"
	"github.com/ingo-eichhorst/pyflyby/pkg/version"
)

var (
	verbose       bool
	dbPath        []string
	write         bool
	alignImports  string
	maxLineLength int
	fromSpaces    int
	separateFrom  bool
	allowConflict bool
)

var rootCmd = &cobra.Command{
	Use:     "pyflyby",
	Short:   "pyflyby - tidy, reformat, and rewrite Python-style import blocks",
	Long:    "pyflyby parses a file's leading import prologue, reasons about bound and\nmissing names, and rewrites the prologue in place: tidying unused/missing\nimports, reformatting to a consistent style, replacing wildcard imports,\nremoving broken ones, and applying canonical or caller-supplied rewrite\nrules.",
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostics")
	rootCmd.PersistentFlags().StringSliceVar(&dbPath, "db", nil, "ImportDB path-list entries (repeatable; default ~/.pyflyby)")
	rootCmd.PersistentFlags().BoolVarP(&write, "write", "w", false, "write the result back to each input file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&alignImports, "align-imports", "none", "import-keyword alignment: none|tabstop|column:N")
	rootCmd.PersistentFlags().IntVar(&maxLineLength, "max-line-length", 79, "wrap column for rendered import lines")
	rootCmd.PersistentFlags().IntVar(&fromSpaces, "from-spaces", 1, "spaces after \"from MODULE\" before \"import\"")
	rootCmd.PersistentFlags().BoolVar(&separateFrom, "separate-from-imports", false, "blank line between plain and from imports")
	rootCmd.PersistentFlags().BoolVar(&allowConflict, "allow-conflicting-aliases", false, "permit two imports binding the same name in one render")
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(tidyCmd)
	rootCmd.AddCommand(reformatCmd)
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(canonicalizeCmd)
	rootCmd.AddCommand(replaceStarCmd)
	rootCmd.AddCommand(removeBrokenCmd)
	rootCmd.AddCommand(collectCmd)
}

// Execute runs the root command and exits with code 1 on error.
// ExitError is handled specially: its Code is used as the exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *types.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
