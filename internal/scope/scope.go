// Package scope analyzes a parsed Block for free ("missing") names and
// unused import bindings, mirroring the target language's lexical,
// class, function, and comprehension scoping rules (spec §4.8 —
// component C8).
package scope

import (
	"sort"
	"strconv"

	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// kind distinguishes the scoping behavior of a frame: function scopes
// hoist every name bound anywhere in their body; class scopes bind
// names but never expose them to a nested function scope; comprehension
// scopes behave like function scopes (Python 3 semantics).
type kind int

const (
	kindModule kind = iota
	kindFunction
	kindClass
	kindComprehension
)

// binding records where and how a name became local to a scope. imp
// carries the actual Import value when isImport is set, so a later
// binding that shadows an earlier import can report exactly which
// Import was shadowed (not just the bound name both share).
type binding struct {
	name     string
	pos      types.FilePos
	isImport bool
	imp      imports.Import
}

// use records a single read of a name, with the scope it was read from.
type use struct {
	name  string
	pos   types.FilePos
	scope *frame
}

// frame is one lexical scope: module, class, function, or comprehension.
type frame struct {
	k             kind
	parent        *frame
	bindings      map[string]binding
	shadowed      []imports.Import // imports overwritten by a later same-name binding; always unused (§4.8 tie-break)
	hasStarImport bool
	global        map[string]bool // names declared `global` in this frame
	nonlocal      map[string]bool // names declared `nonlocal` in this frame
	read          map[string]bool // names successfully resolved to a binding in this frame
}

func newFrame(k kind, parent *frame) *frame {
	return &frame{
		k:        k,
		parent:   parent,
		bindings: make(map[string]binding),
		global:   make(map[string]bool),
		nonlocal: make(map[string]bool),
		read:     make(map[string]bool),
	}
}

// bind records b as name's binding in f. When b shadows an earlier
// binding of the same name, the later-declared binding wins and, if the
// shadowed binding was an import, it is recorded as permanently unused
// — the earlier import can never be resolved to again in this frame
// (§4.8 "when two imports bind the same name ... the later-declared one
// wins, the earlier is reported unused").
func (f *frame) bind(b binding) {
	if f.global[b.name] || f.nonlocal[b.name] {
		return // explicitly not local to this frame
	}
	if old, ok := f.bindings[b.name]; ok {
		// A binding identical to the one it replaces (the same import
		// re-stated twice) isn't a tie-break: there's only one Import
		// value involved, and it must not be reported unused out from
		// under a later use of it.
		duplicate := old.isImport && b.isImport && old.imp.Equal(b.imp)
		if old.isImport && !duplicate {
			f.shadowed = append(f.shadowed, old.imp)
		}
	}
	f.bindings[b.name] = b
}

// lookup walks the frame chain from f for the frame that binds name:
// class frames are skipped (a nested function never sees its enclosing
// class's bindings), but a lookup starting directly in a class frame
// still checks the class frame itself before walking up.
func (f *frame) lookup(name string) (*frame, bool) {
	cur := f
	first := true
	for cur != nil {
		if cur.global[name] || cur.nonlocal[name] {
			cur = cur.parent
			first = false
			continue
		}
		if _, ok := cur.bindings[name]; ok && (first || cur.k != kindClass) {
			return cur, true
		}
		first = false
		cur = cur.parent
	}
	return nil, false
}

// anyStarImportInChain reports whether f or any ancestor frame contains
// a star import, which suppresses all "missing" reporting for simple
// names per §4.8.
func (f *frame) anyStarImportInChain() bool {
	for cur := f; cur != nil; cur = cur.parent {
		if cur.hasStarImport {
			return true
		}
	}
	return false
}

// Result is the scope analyzer's output for one Block (§3, §4.8). Unused
// names the exact shadowed-or-unread Import values (not bound names) so
// a caller can drop precisely those imports from an ImportSet even when
// another import sharing the same bound name must be kept (§4.8
// tie-break).
type Result struct {
	Missing []string         // free identifiers, sorted
	Unused  []imports.Import // unread or shadowed import bindings, sorted
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// importSortKey orders Imports deterministically by the same tuple that
// identifies them in an ImportSet.
func importSortKey(im imports.Import) string {
	return im.Fullname.String() + "\x00" + im.ImportAs + "\x00" + strconv.Itoa(im.Level)
}

func sortedImports(items []imports.Import) []imports.Import {
	out := append([]imports.Import(nil), items...)
	sort.Slice(out, func(i, j int) bool { return importSortKey(out[i]) < importSortKey(out[j]) })
	return out
}
