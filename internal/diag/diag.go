// Package diag defines the diagnostic model rewrite passes emit and the
// colorized terminal rendering of that model (spec §4.13 — component
// C13). It replaces the teacher's score/metric terminal renderer with a
// single stream of positioned messages, using the same coloring-gate
// idiom the teacher's spinner and terminal output use: colorize with
// fatih/color, but only when the destination is a real TTY.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// Level is a diagnostic's severity.
type Level int

const (
	LevelWarning Level = iota
	LevelError
)

// String renders the level the way it appears in a diagnostic line.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	default:
		return "warning"
	}
}

// Diagnostic is one positioned message a rewrite pass produced.
type Diagnostic struct {
	File    string
	Pos     types.FilePos
	Level   Level
	Message string
}

// String formats d as `<file>:<line>:<col>: <level>: <msg>`.
func (d Diagnostic) String() string {
	if d.Pos == (types.FilePos{}) {
		return fmt.Sprintf("%s: %s: %s", d.File, d.Level, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Pos.Line, d.Pos.Col, d.Level, d.Message)
}

// Printer renders diagnostics to an io.Writer, colorizing only when w is
// a terminal (NO_COLOR-respecting via fatih/color's own global switch).
type Printer struct {
	w       io.Writer
	warn    *color.Color
	errC    *color.Color
	colored bool
}

// NewPrinter builds a Printer for w, gating color on whether w is a TTY
// the same way the teacher's Spinner gates animation on isatty.
func NewPrinter(w io.Writer) *Printer {
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Printer{
		w:       w,
		warn:    color.New(color.FgYellow),
		errC:    color.New(color.FgRed),
		colored: colored,
	}
}

// Print writes d to the printer's writer, in color when gated on.
func (p *Printer) Print(d Diagnostic) {
	line := d.String()
	if !p.colored {
		fmt.Fprintln(p.w, line)
		return
	}
	switch d.Level {
	case LevelError:
		p.errC.Fprintln(p.w, line)
	default:
		p.warn.Fprintln(p.w, line)
	}
}

// PrintAll writes every diagnostic in ds, in order.
func (p *Printer) PrintAll(ds []Diagnostic) {
	for _, d := range ds {
		p.Print(d)
	}
}

// HasErrors reports whether ds contains any LevelError diagnostic.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Level == LevelError {
			return true
		}
	}
	return false
}
