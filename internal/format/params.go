// Package format renders an ImportSet into one or more import statements
// with alignment, grouping, ordering, and line-wrapping (spec §3 "Format
// Params", §4.9 — component C9).
package format

// AlignMode selects how the "import" keyword (or first alias column) is
// aligned after "from M" in a from-statement.
type AlignMode int

const (
	// AlignNone pads with a single space.
	AlignNone AlignMode = iota
	// AlignTabStop pads each statement to the next tab stop (Value
	// columns wide) after its own "from M"; the lengths of the other
	// "from M" prefixes in the group are not considered.
	AlignTabStop
	// AlignColumn pads to the fixed absolute column Value.
	AlignColumn
)

// AlignImports configures the Mode/Value pair for "import"-keyword
// alignment (§3 "align_imports").
type AlignImports struct {
	Mode  AlignMode
	Value int
}

// HangingIndentMode selects when a from-statement with too many aliases
// to fit on one line wraps into the parenthesized hanging-indent form.
type HangingIndentMode int

const (
	HangingAuto HangingIndentMode = iota
	HangingNever
	HangingAlways
)

// Params is the immutable FormatParams configuration record of §3. It is
// a plain Go struct with a functional-default constructor, never file-
// loaded at runtime — per spec §1's Non-goal excluding a `.pyproject`-
// style config loader (see SPEC_FULL.md "AMBIENT STACK").
type Params struct {
	AlignImports        AlignImports
	FromSpaces          int
	SeparateFromImports bool
	AlignFuture         bool
	HangingIndent       HangingIndentMode
	MaxLineLength       int
	IndentContinuation  int
	UseParens           bool
}

// DefaultParams returns pyflyby's stock formatting defaults: single-space
// alignment, one space after "from", 79-column wrap, 4-column
// continuation indent, auto hanging indent, parens only when wrapping.
func DefaultParams() Params {
	return Params{
		AlignImports:       AlignImports{Mode: AlignNone},
		FromSpaces:         1,
		MaxLineLength:      79,
		IndentContinuation: 4,
		HangingIndent:      HangingAuto,
	}
}
