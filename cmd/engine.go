package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/ingo-eichhorst/pyflyby/internal/batch"
	"github.com/ingo-eichhorst/pyflyby/internal/diag"
	"github.com/ingo-eichhorst/pyflyby/internal/format"
	"github.com/ingo-eichhorst/pyflyby/internal/importdb"
	"github.com/ingo-eichhorst/pyflyby/internal/probe"
	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
	"github.com/ingo-eichhorst/pyflyby/internal/rewrite"
	"github.com/ingo-eichhorst/pyflyby/internal/text"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// rewriteFunc is the shape every internal/rewrite entry point shares.
type rewriteFunc func(tree *pyast.Tree, opts rewrite.Options) (rewrite.Outcome, error)

// buildParams turns the persistent formatting flags into a format.Params,
// returning a usage error (exit code 2) if --align-imports is malformed.
func buildParams() (format.Params, error) {
	p := format.DefaultParams()
	p.MaxLineLength = maxLineLength
	p.FromSpaces = fromSpaces
	p.SeparateFromImports = separateFrom

	switch {
	case alignImports == "none" || alignImports == "":
		p.AlignImports = format.AlignImports{Mode: format.AlignNone}
	case alignImports == "tabstop":
		p.AlignImports = format.AlignImports{Mode: format.AlignTabStop, Value: 4}
	case strings.HasPrefix(alignImports, "column:"):
		col, err := strconv.Atoi(strings.TrimPrefix(alignImports, "column:"))
		if err != nil {
			return format.Params{}, &types.ExitError{Code: 2, Err: fmt.Errorf("invalid --align-imports value %q", alignImports)}
		}
		p.AlignImports = format.AlignImports{Mode: format.AlignColumn, Value: col}
	default:
		return format.Params{}, &types.ExitError{Code: 2, Err: fmt.Errorf("invalid --align-imports value %q", alignImports)}
	}
	return p, nil
}

// outMu serializes stderr/stdout writes across concurrent batch
// workers; buildOptions's verbose warning dump and runOne's diagnostic
// printer both go through it.
var outMu sync.Mutex

// buildOptions resolves the shared rewrite.Options for a single target
// file: the ImportDB (built fresh from --db path-list entries, scoped to
// targetFile per §4.7's ancestor-walk resolution) and the null probe,
// since the core never imports target-language modules itself (§4.11).
func buildOptions(targetFile string) (rewrite.Options, error) {
	params, err := buildParams()
	if err != nil {
		return rewrite.Options{}, err
	}

	paths := dbPath
	if len(paths) == 0 {
		paths = []string{"-"} // no --db: the default path list
	}
	db, err := importdb.Build(paths, targetFile)
	if err != nil {
		return rewrite.Options{}, &types.ExitError{Code: 1, Err: err}
	}
	if verbose {
		outMu.Lock()
		for _, w := range db.Warnings() {
			fmt.Fprintln(os.Stderr, w.String())
		}
		outMu.Unlock()
	}

	return rewrite.Options{
		Params:         params,
		DB:             db,
		Probe:          probe.Null{},
		AllowConflicts: allowConflict,
	}, nil
}

// runOne parses content (named label, for diagnostics and docstring/
// shebang detection), runs op, prints diagnostics to stderr, and returns
// the rewritten text plus an exit code per §6: 0 clean, 100 diagnostics
// emitted but the rewrite itself succeeded, 1 fatal (syntax error).
func runOne(label, content string, op rewriteFunc) (result string, exitCode int, err error) {
	opts, err := buildOptions(label)
	if err != nil {
		return "", 2, err
	}

	parser, err := pyast.NewParser()
	if err != nil {
		return "", 1, &types.ExitError{Code: 1, Err: err}
	}
	defer parser.Close()

	ft := text.NewFile(content, label)
	tree, err := parser.Parse(ft, 0)
	if err != nil {
		if se, ok := err.(*types.SyntaxError); ok {
			se.Context = label
		}
		outMu.Lock()
		fmt.Fprintf(os.Stderr, "%s: error: %s\n", label, err)
		outMu.Unlock()
		return "", 1, nil
	}
	defer tree.Close()

	outcome, err := op(tree, opts)
	if err != nil {
		return "", 1, &types.ExitError{Code: 1, Err: err}
	}

	code := 0
	if len(outcome.Diagnostics) > 0 {
		// Every rewrite.Diagnostic is non-fatal by construction (fatal
		// conditions surface as a returned error instead), so both
		// rewrite.Severity values map to diag.LevelWarning here.
		outMu.Lock()
		printer := diag.NewPrinter(os.Stderr)
		for _, d := range outcome.Diagnostics {
			printer.Print(diag.Diagnostic{
				File:    label,
				Pos:     d.Pos,
				Level:   diag.LevelWarning,
				Message: d.Message,
			})
		}
		outMu.Unlock()
		code = 100
	}
	return outcome.Text, code, nil
}

// runFiles drives op over args: no args reads stdin and writes stdout;
// one or more args read/rewrite each file (in place with --write, else
// to stdout), running independent files concurrently via internal/batch
// (§4.14 — each file's own rewrite stays single-threaded; only the outer
// fan-out across files is concurrent).
func runFiles(args []string, op rewriteFunc) error {
	if len(args) == 0 {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return &types.ExitError{Code: 1, Err: err}
		}
		result, code, err := runOne("<stdin>", string(content), op)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, result)
		if code != 0 {
			return &types.ExitError{Code: code}
		}
		return nil
	}

	type fileOutcome struct {
		text string
		code int
	}
	outcomes := make([]fileOutcome, len(args))

	results := batch.Run(context.Background(), args, 0, func(_ context.Context, path string) error {
		idx := indexOf(args, path)
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		result, code, err := runOne(path, string(content), op)
		if err != nil {
			return err
		}
		outcomes[idx] = fileOutcome{text: result, code: code}
		return nil
	})

	worst := 0
	for i, r := range results {
		if r.Err != nil {
			outMu.Lock()
			fmt.Fprintf(os.Stderr, "%s: error: %s\n", r.Path, r.Err)
			outMu.Unlock()
			worst = 1
			continue
		}
		oc := outcomes[i]
		if write {
			if err := os.WriteFile(r.Path, []byte(oc.text), 0o644); err != nil {
				outMu.Lock()
				fmt.Fprintf(os.Stderr, "%s: error: %s\n", r.Path, err)
				outMu.Unlock()
				worst = 1
				continue
			}
		} else {
			outMu.Lock()
			fmt.Fprint(os.Stdout, oc.text)
			outMu.Unlock()
		}
		if oc.code > worst {
			worst = oc.code
		}
	}

	if worst != 0 {
		return &types.ExitError{Code: worst}
	}
	return nil
}

// indexOf finds path's position in args; paths are unique per CLI
// invocation (duplicates would just redundantly re-run), so linear scan
// is fine at CLI-argument scale.
func indexOf(args []string, path string) int {
	for i, a := range args {
		if a == path {
			return i
		}
	}
	return -1
}
