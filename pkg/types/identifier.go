// Package types holds the small, dependency-free data types shared across
// pyflyby's internal packages: dotted names, file positions, compiler
// flags, and the error taxonomy raised at the core's public boundaries.
package types

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern matches a single valid atom of a dotted name: an
// ASCII-leaning identifier, underscore-first allowed, no dots.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsValidIdentifier reports whether name is a single valid identifier atom.
func IsValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// DottedName is an ordered sequence of one or more non-empty identifier
// atoms, e.g. "a.b.c". It round-trips through String/ParseDottedName.
type DottedName struct {
	atoms []string
}

// ParseDottedName parses "a.b.c" into a DottedName, validating every atom.
func ParseDottedName(s string) (DottedName, error) {
	if s == "" {
		return DottedName{}, fmt.Errorf("empty dotted name")
	}
	atoms := strings.Split(s, ".")
	for _, a := range atoms {
		if !IsValidIdentifier(a) {
			return DottedName{}, fmt.Errorf("invalid dotted name %q: bad atom %q", s, a)
		}
	}
	return DottedName{atoms: atoms}, nil
}

// MustDottedName parses s and panics on error. Intended for literal,
// known-valid names in tests and constant tables.
func MustDottedName(s string) DottedName {
	d, err := ParseDottedName(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDottedNameFromAtoms builds a DottedName directly from atoms, without
// re-validating; callers that already hold validated atoms (e.g. the
// parser reading dotted_name nodes) can skip the re-parse.
func NewDottedNameFromAtoms(atoms []string) DottedName {
	cp := make([]string, len(atoms))
	copy(cp, atoms)
	return DottedName{atoms: cp}
}

// Atoms returns the ordered list of atoms. The returned slice is owned by
// the caller; mutating it does not affect d.
func (d DottedName) Atoms() []string {
	cp := make([]string, len(d.atoms))
	copy(cp, d.atoms)
	return cp
}

// Len returns the number of atoms.
func (d DottedName) Len() int { return len(d.atoms) }

// IsZero reports whether d holds no atoms (the zero value).
func (d DottedName) IsZero() bool { return len(d.atoms) == 0 }

// String renders the dotted name as "a.b.c".
func (d DottedName) String() string { return strings.Join(d.atoms, ".") }

// First returns the first atom, or "" if d is empty.
func (d DottedName) First() string {
	if len(d.atoms) == 0 {
		return ""
	}
	return d.atoms[0]
}

// Last returns the last atom, or "" if d is empty.
func (d DottedName) Last() string {
	if len(d.atoms) == 0 {
		return ""
	}
	return d.atoms[len(d.atoms)-1]
}

// Prefix returns the first n atoms as a new DottedName. n is clamped to
// [0, Len()].
func (d DottedName) Prefix(n int) DottedName {
	if n < 0 {
		n = 0
	}
	if n > len(d.atoms) {
		n = len(d.atoms)
	}
	return NewDottedNameFromAtoms(d.atoms[:n])
}

// DropLast returns d without its final atom ("a.b.c" -> "a.b"). Returns
// the zero DottedName if d has one or zero atoms.
func (d DottedName) DropLast() DottedName {
	if len(d.atoms) <= 1 {
		return DottedName{}
	}
	return NewDottedNameFromAtoms(d.atoms[:len(d.atoms)-1])
}

// Prefixes yields every non-empty prefix of d, shortest first: for "a.b.c"
// that is "a", "a.b", "a.b.c".
func (d DottedName) Prefixes() []DottedName {
	out := make([]DottedName, 0, len(d.atoms))
	for i := 1; i <= len(d.atoms); i++ {
		out = append(out, d.Prefix(i))
	}
	return out
}

// StartsWith reports whether d begins with every atom of other, in order.
func (d DottedName) StartsWith(other DottedName) bool {
	if other.Len() > d.Len() {
		return false
	}
	for i, a := range other.atoms {
		if d.atoms[i] != a {
			return false
		}
	}
	return true
}

// Equal reports atom-wise equality.
func (d DottedName) Equal(other DottedName) bool {
	if len(d.atoms) != len(other.atoms) {
		return false
	}
	for i := range d.atoms {
		if d.atoms[i] != other.atoms[i] {
			return false
		}
	}
	return true
}

// WithPrefixReplaced rewrites the leading old prefix of d to new, returning
// the rewritten name unchanged if d does not start with old. Used by
// transform_imports/canonicalize_imports (§4.10).
func (d DottedName) WithPrefixReplaced(old, new DottedName) (DottedName, bool) {
	if !d.StartsWith(old) {
		return d, false
	}
	rest := d.atoms[old.Len():]
	atoms := make([]string, 0, new.Len()+len(rest))
	atoms = append(atoms, new.atoms...)
	atoms = append(atoms, rest...)
	return NewDottedNameFromAtoms(atoms), true
}

// Join appends other's atoms after d's atoms.
func (d DottedName) Join(other DottedName) DottedName {
	atoms := make([]string, 0, d.Len()+other.Len())
	atoms = append(atoms, d.atoms...)
	atoms = append(atoms, other.atoms...)
	return NewDottedNameFromAtoms(atoms)
}
