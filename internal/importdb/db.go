// Package importdb builds and queries the ImportDB: the layered set of
// known/mandatory/forget/canonical imports a rewriter invocation
// consults, assembled once from a path specification and treated as
// immutable thereafter (spec §3 "ImportDB", §4.7 — component C7).
package importdb

import (
	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// CanonicalRule is one `OLD=NEW` dotted-prefix rewrite rule contributed
// by a `__canonical_imports__` directive.
type CanonicalRule struct {
	Old types.DottedName
	New types.DottedName
}

// DB is the immutable, fully-merged import database a single rewriter
// invocation consults. Construct with Build; the zero value is an empty,
// usable database.
type DB struct {
	known      imports.ImportSet
	mandatory  imports.ImportSet
	canonical  []CanonicalRule       // in directive-write order; last writer for a given Old wins on lookup
	preferred  map[string]imports.Import // bound name -> the known_imports candidate to prefer
	contributorFiles []string
	warnings   []Warning
}

// Known returns the known_imports set: resolution candidates for a
// missing name.
func (db DB) Known() imports.ImportSet { return db.known }

// Mandatory returns the mandatory_imports set: imports tidy_imports adds
// to every file unless forbidden.
func (db DB) Mandatory() imports.ImportSet { return db.mandatory }

// ContributorFiles lists the files that were scanned to build db, in
// processing order — useful for diagnostics.
func (db DB) ContributorFiles() []string { return append([]string(nil), db.contributorFiles...) }

// Warnings returns the non-fatal issues encountered while scanning
// contributor files (malformed directives, ignored statements). A
// contributor file that vanishes before it is read is skipped without a
// warning.
func (db DB) Warnings() []Warning { return append([]Warning(nil), db.warnings...) }

// Canonicalize applies the longest matching canonical_imports rule (by
// dotted-prefix length) to im's fullname, returning the rewritten Import
// and true, or im unchanged and false if no rule matches (§4.7, §4.10
// canonicalize_imports).
func (db DB) Canonicalize(im imports.Import) (imports.Import, bool) {
	best := -1
	var rewritten imports.Import
	for _, rule := range db.canonical {
		if out, ok := im.WithPrefixRewritten(rule.Old, rule.New); ok {
			if n := rule.Old.Len(); n >= best {
				best = n
				rewritten = out
			}
		}
	}
	if best < 0 {
		return im, false
	}
	return rewritten, true
}

// Preferred returns the preferred known-import candidate for a bound
// name, if the caller registered one via WithPreferred (§3
// "preferred_import"; no contributor-file directive produces this).
func (db DB) Preferred(boundName string) (imports.Import, bool) {
	im, ok := db.preferred[boundName]
	return im, ok
}

// WithPreferred returns a copy of db with a preferred_import override
// registered for boundName.
func (db DB) WithPreferred(boundName string, im imports.Import) DB {
	out := db
	out.preferred = make(map[string]imports.Import, len(db.preferred)+1)
	for k, v := range db.preferred {
		out.preferred[k] = v
	}
	out.preferred[boundName] = im
	return out
}

// Warning is a non-fatal issue recorded while building a DB.
type Warning struct {
	File string
	Msg  string
}

func (w Warning) String() string {
	if w.File == "" {
		return w.Msg
	}
	return w.File + ": " + w.Msg
}
