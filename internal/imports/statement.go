package imports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// ImportStatement is a non-empty ordered collection of Imports that share
// the same FromModule and Level; it renders as one physical
// `from M import a, b as c` or a single `import x as y` (§3, §4.5).
type ImportStatement struct {
	FromModule types.DottedName // zero value means plain style
	Level      int
	members    []Import
}

// NewImportStatement groups members under the given (fromModule, level).
// Every member must be compatible (same from-style-ness, same from
// module, same level); callers that aren't sure should use Merge one
// Import at a time instead.
func NewImportStatement(fromModule types.DottedName, level int, members ...Import) (ImportStatement, error) {
	st := ImportStatement{FromModule: fromModule, Level: level}
	for _, m := range members {
		if err := st.checkCompatible(m); err != nil {
			return ImportStatement{}, err
		}
		st.members = append(st.members, m)
	}
	return st, nil
}

func (s ImportStatement) isPlain() bool {
	return s.FromModule.IsZero() && s.Level == 0
}

func (s ImportStatement) checkCompatible(im Import) error {
	fm, _, _ := im.Split()
	if im.Level != s.Level {
		return fmt.Errorf("import %s has level %d, statement has level %d", im.Fullname, im.Level, s.Level)
	}
	if s.isPlain() {
		if im.FromStyle || im.Level > 0 {
			return fmt.Errorf("import %s is from-style, statement is plain", im.Fullname)
		}
		return nil
	}
	if !im.FromStyle && im.Level == 0 {
		return fmt.Errorf("import %s is plain, statement is from-style", im.Fullname)
	}
	if !fm.Equal(s.FromModule) {
		return fmt.Errorf("import %s has from-module %s, statement has %s", im.Fullname, fm, s.FromModule)
	}
	return nil
}

// Merge appends a compatible Import (same FromModule and Level). It
// returns an error (ImportFormatError-shaped via the caller) if im is not
// compatible with the statement's group key.
func (s *ImportStatement) Merge(im Import) error {
	if err := s.checkCompatible(im); err != nil {
		return err
	}
	s.members = append(s.members, im)
	return nil
}

// Members returns the constituent Imports, in insertion order.
func (s ImportStatement) Members() []Import {
	cp := make([]Import, len(s.members))
	copy(cp, s.members)
	return cp
}

// Split breaks the statement back into its constituent Imports — the
// inverse of grouping by Merge/NewImportStatement.
func (s ImportStatement) Split() []Import {
	return s.Members()
}

// ParseImportStatementSource parses a single-statement source string like
// "from foo.bar import a, b as c" or "import x as y" into an
// ImportStatement. Used by the import database (§4.7) to interpret
// contributor __mandatory_imports__ / known-import strings, independent
// of the full tree-sitter parser.
func ParseImportStatementSource(src string) (ImportStatement, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return ImportStatement{}, &types.NonImportStatementError{Source: src}
	}
	if strings.HasPrefix(src, "from ") {
		return parseFromSource(src)
	}
	if strings.HasPrefix(src, "import ") {
		return parsePlainSource(src)
	}
	return ImportStatement{}, &types.NonImportStatementError{Source: src}
}

func parsePlainSource(src string) (ImportStatement, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(src, "import "))
	if rest == "" {
		return ImportStatement{}, &types.NonImportStatementError{Source: src}
	}
	parts := splitTopLevelCommas(rest)
	st := ImportStatement{}
	for _, p := range parts {
		name, alias, err := splitAsClause(p)
		if err != nil {
			return ImportStatement{}, err
		}
		dn, err := types.ParseDottedName(name)
		if err != nil {
			return ImportStatement{}, &types.ImportFormatError{Source: src, Reason: err.Error()}
		}
		if err := st.Merge(NewPlain(dn, alias)); err != nil {
			return ImportStatement{}, &types.ImportFormatError{Source: src, Reason: err.Error()}
		}
	}
	return st, nil
}

func parseFromSource(src string) (ImportStatement, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(src, "from "))
	idx := strings.Index(rest, " import ")
	if idx < 0 {
		return ImportStatement{}, &types.NonImportStatementError{Source: src}
	}
	modulePart := strings.TrimSpace(rest[:idx])
	aliasesPart := strings.TrimSpace(rest[idx+len(" import "):])
	aliasesPart = strings.TrimPrefix(aliasesPart, "(")
	aliasesPart = strings.TrimSuffix(aliasesPart, ")")

	level := 0
	for len(modulePart) > 0 && modulePart[0] == '.' {
		level++
		modulePart = modulePart[1:]
	}
	var fromModule types.DottedName
	if modulePart != "" {
		dn, err := types.ParseDottedName(modulePart)
		if err != nil {
			return ImportStatement{}, &types.ImportFormatError{Source: src, Reason: err.Error()}
		}
		fromModule = dn
	}
	if level == 0 && fromModule.IsZero() {
		return ImportStatement{}, &types.NonImportStatementError{Source: src}
	}

	st := ImportStatement{FromModule: fromModule, Level: level}
	for _, p := range splitTopLevelCommas(aliasesPart) {
		p = strings.TrimSpace(strings.TrimSuffix(p, ","))
		if p == "" {
			continue
		}
		if p == "*" {
			return ImportStatement{}, &types.ImportFormatError{Source: src, Reason: "star import not allowed in a contributor directive"}
		}
		member, alias, err := splitAsClause(p)
		if err != nil {
			return ImportStatement{}, err
		}
		if !types.IsValidIdentifier(member) {
			return ImportStatement{}, &types.ImportFormatError{Source: src, Reason: "invalid member " + member}
		}
		if err := st.Merge(NewFrom(fromModule, member, alias, level)); err != nil {
			return ImportStatement{}, &types.ImportFormatError{Source: src, Reason: err.Error()}
		}
	}
	if len(st.members) == 0 {
		return ImportStatement{}, &types.NonImportStatementError{Source: src}
	}
	return st, nil
}

func splitAsClause(s string) (name, alias string, err error) {
	s = strings.TrimSpace(s)
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		return fields[0], "", nil
	case 3:
		if fields[1] != "as" {
			return "", "", &types.ImportFormatError{Source: s, Reason: "expected 'as'"}
		}
		return fields[0], fields[2], nil
	default:
		return "", "", &types.ImportFormatError{Source: s, Reason: "malformed alias clause"}
	}
}

// splitTopLevelCommas splits on commas, trimming whitespace, ignoring
// empty trailing fields (so a dangling trailing comma is tolerated).
func splitTopLevelCommas(s string) []string {
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

// SortedMembers returns members ordered by (import_as or member) lower-
// cased, the alias-line ordering rule of §4.9.
func (s ImportStatement) SortedMembers() []Import {
	out := s.Members()
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(aliasSortKey(out[i])) < strings.ToLower(aliasSortKey(out[j]))
	})
	return out
}

func aliasSortKey(im Import) string {
	if im.ImportAs != "" {
		return im.ImportAs
	}
	_, member, _ := im.Split()
	return member
}
