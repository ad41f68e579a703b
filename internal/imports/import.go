// Package imports implements the import statement model and the
// collections built on top of it: Import, ImportStatement, ImportSet, and
// ImportMap (spec §3, §4.5, §4.6 — components C5 and C6).
package imports

import (
	"strings"

	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// Import is a single imported symbol: `import fullname[ as import_as]` or,
// when FromStyle is set, `from fullname[:-1] import fullname[-1][ as
// import_as]`, with `level` leading dots for a relative import.
//
// FromStyle is not one of the three value-equality fields (see Equal) —
// it is how the parser and the formatter know which surface syntax this
// Import came from or should render as, the same way pyflyby's `split`
// triple carries `from_module == ""` as the plain-style marker rather
// than inventing an orthogonal style enum.
type Import struct {
	Fullname  types.DottedName
	ImportAs  string // "" means no alias
	Level     int    // leading-dot count; > 0 implies FromStyle
	FromStyle bool
}

// NewPlain builds a plain `import fullname[ as alias]`.
func NewPlain(fullname types.DottedName, alias string) Import {
	return Import{Fullname: fullname, ImportAs: alias}
}

// NewFrom builds a `from fromModule import member[ as alias]`, with
// `level` leading dots for relative imports.
func NewFrom(fromModule types.DottedName, member string, alias string, level int) Import {
	full := fromModule.Join(types.NewDottedNameFromAtoms([]string{member}))
	return Import{Fullname: full, ImportAs: alias, Level: level, FromStyle: true}
}

// HasAlias reports whether this import binds a name other than its
// default.
func (im Import) HasAlias() bool { return im.ImportAs != "" }

// BoundName returns the name this import introduces into the enclosing
// namespace: the alias if present, else the member for from-style
// imports, else the first atom of the full dotted path for plain
// imports (§3 "Bound name").
func (im Import) BoundName() string {
	if im.ImportAs != "" {
		return im.ImportAs
	}
	if im.FromStyle || im.Level > 0 {
		return im.Fullname.Last()
	}
	return im.Fullname.First()
}

// Split projects the Import into (fromModule, member, asName) per §3:
// fromModule = fullname[:-1] and member = fullname[-1] for from-style,
// or fromModule = "" (zero DottedName) and member = fullname for plain.
func (im Import) Split() (fromModule types.DottedName, member string, asName string) {
	if im.FromStyle || im.Level > 0 {
		return im.Fullname.DropLast(), im.Fullname.Last(), im.ImportAs
	}
	return types.DottedName{}, im.Fullname.String(), im.ImportAs
}

// Equal reports value equality over exactly the three spec-named fields:
// fullname, import_as, and level. Two otherwise-identical Imports that
// differ only in FromStyle are not expected to coexist in practice (that
// would mean the same dotted path was parsed from two different surface
// syntaxes), so FromStyle is intentionally excluded here.
func (im Import) Equal(other Import) bool {
	return im.Fullname.Equal(other.Fullname) && im.ImportAs == other.ImportAs && im.Level == other.Level
}

// WithPrefixRewritten returns a copy of im with a leading dotted prefix
// `old` of Fullname rewritten to `new`, preserving the original bound
// name by setting ImportAs when the rewrite would otherwise change it
// (§4.10 transform_imports/canonicalize_imports). ok is false if im's
// Fullname does not start with old.
func (im Import) WithPrefixRewritten(old, new types.DottedName) (Import, bool) {
	originalBound := im.BoundName()
	rewritten, ok := im.Fullname.WithPrefixReplaced(old, new)
	if !ok {
		return im, false
	}
	out := im
	out.Fullname = rewritten
	if out.ImportAs == "" {
		var newBound string
		if out.FromStyle || out.Level > 0 {
			newBound = rewritten.Last()
		} else {
			newBound = rewritten.First()
		}
		if newBound != originalBound {
			out.ImportAs = originalBound
		}
	}
	return out, true
}

// renderAlias returns " as alias" or "" when there's no alias.
func renderAlias(alias string) string {
	if alias == "" {
		return ""
	}
	return " as " + alias
}

// RenderPlain renders `import fullname[ as alias]`.
func (im Import) RenderPlain() string {
	return "import " + im.Fullname.String() + renderAlias(im.ImportAs)
}

// RenderFromAlias renders the from-clause alias list entry: `member[ as alias]`.
func (im Import) RenderFromAlias() string {
	_, member, alias := im.Split()
	return member + renderAlias(alias)
}

// dotsPrefix renders `level` leading dots for a relative from-module.
func dotsPrefix(level int) string {
	return strings.Repeat(".", level)
}
