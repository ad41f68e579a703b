package types

import "strings"

// CompilerFlags is a bitset over the future directives the target
// language recognizes (§3). Parsing a block yields the union of flags
// declared by its future-directive imports.
type CompilerFlags uint16

// Recognized future directives, in the order pyflyby renders them when a
// future-import prologue line must be synthesized.
const (
	FlagDivision CompilerFlags = 1 << iota
	FlagAbsoluteImport
	FlagPrintFunction
	FlagWithStatement
	FlagUnicodeLiterals
	FlagGeneratorStop
	FlagAnnotations
)

// futureDirectiveNames lists every recognized directive name alongside its
// flag, in canonical rendering order.
var futureDirectiveNames = []struct {
	Name string
	Flag CompilerFlags
}{
	{"division", FlagDivision},
	{"absolute_import", FlagAbsoluteImport},
	{"print_function", FlagPrintFunction},
	{"with_statement", FlagWithStatement},
	{"unicode_literals", FlagUnicodeLiterals},
	{"generator_stop", FlagGeneratorStop},
	{"annotations", FlagAnnotations},
}

// FutureDirectiveFlag returns the flag for a bare future-directive name
// (e.g. "print_function") and whether the name is recognized.
func FutureDirectiveFlag(name string) (CompilerFlags, bool) {
	for _, d := range futureDirectiveNames {
		if d.Name == name {
			return d.Flag, true
		}
	}
	return 0, false
}

// Has reports whether every bit set in want is also set in f.
func (f CompilerFlags) Has(want CompilerFlags) bool {
	return f&want == want
}

// Union returns f with other's bits added.
func (f CompilerFlags) Union(other CompilerFlags) CompilerFlags {
	return f | other
}

// Names returns the recognized directive names set in f, in canonical
// order.
func (f CompilerFlags) Names() []string {
	var names []string
	for _, d := range futureDirectiveNames {
		if f.Has(d.Flag) {
			names = append(names, d.Name)
		}
	}
	return names
}

// String renders f as a comma-joined list of directive names, or "none".
func (f CompilerFlags) String() string {
	names := f.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
