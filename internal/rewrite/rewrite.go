// Package rewrite implements the core orchestration algorithms —
// reformat_import_statements, tidy_imports, replace_star_imports,
// remove_broken_imports, transform_imports, canonicalize_imports, and
// collect — as a single-threaded, side-effect-free transformation over
// a parsed Block and an ImportDB (spec §4.10 — component C10).
package rewrite

import (
	"github.com/ingo-eichhorst/pyflyby/internal/format"
	"github.com/ingo-eichhorst/pyflyby/internal/importdb"
	"github.com/ingo-eichhorst/pyflyby/internal/probe"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// Options bundles the parameters every pass threads through: format
// params, the import database, the probe, an allow-conflicts policy for
// rendering, and a cooperative cancellation check (§5 "Cancellation").
type Options struct {
	Params         format.Params
	DB             importdb.DB
	Probe          probe.Probe
	AllowConflicts bool
	Cancel         func() bool // polled once at the start of a pass, not between statements; nil means never cancel
}

func (o Options) cancelled() bool {
	return o.Cancel != nil && o.Cancel()
}

// Severity distinguishes a Diagnostic's weight — never fatal on its own
// (§4.10 "unknown-name diagnostics are warnings, never fatal").
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityInfo
)

// Diagnostic is one non-fatal observation a pass recorded while
// transforming a file (an unresolved missing name, a probe failure, a
// removed unused or broken import, etc).
type Diagnostic struct {
	Pos      types.FilePos
	Severity Severity
	Message  string
}

// Outcome is the result of running one rewriter pass over a file.
type Outcome struct {
	Text        string
	Changed     bool
	Cancelled   bool
	Diagnostics []Diagnostic
}

func unchanged(original string) Outcome {
	return Outcome{Text: original, Changed: false}
}
