package importdb

import "strings"

// The three recognized contributor-file directives (§4.7).
const (
	directiveMandatory = "__mandatory_imports__"
	directiveForget     = "__forget_imports__"
	directiveCanonical  = "__canonical_imports__"
)

// matchDirective reports whether stmt (a top-level statement's own text,
// trivia excluded) is an assignment to one of the three recognized
// directive names, returning the name and the trimmed right-hand side.
func matchDirective(stmt string) (name, rhs string, ok bool) {
	stmt = strings.TrimSpace(stmt)
	for _, d := range []string{directiveMandatory, directiveForget, directiveCanonical} {
		if strings.HasPrefix(stmt, d) {
			rest := strings.TrimSpace(stmt[len(d):])
			if !strings.HasPrefix(rest, "=") {
				continue
			}
			return d, strings.TrimSpace(rest[1:]), true
		}
	}
	return "", "", false
}

// extractStringList parses a `[ "a", "b", ... ]` literal into its
// unquoted string elements. Tolerant of a trailing comma; not a general
// expression evaluator — sufficient for the string-literal lists §4.7
// contributor directives use.
func extractStringList(rhs string) []string {
	body := stripBrackets(rhs, '[', ']')
	var out []string
	for _, part := range splitTopLevelCommas(body) {
		if s, ok := unquote(part); ok {
			out = append(out, s)
		}
	}
	return out
}

// extractStringDict parses a `{ "old": "new", ... }` literal into an
// ordered list of (key, value) pairs (order matters: "last writer wins"
// is a processing-order property, not a map property).
func extractStringDict(rhs string) [][2]string {
	body := stripBrackets(rhs, '{', '}')
	var out [][2]string
	for _, part := range splitTopLevelCommas(body) {
		idx := topLevelColon(part)
		if idx < 0 {
			continue
		}
		k, okK := unquote(strings.TrimSpace(part[:idx]))
		v, okV := unquote(strings.TrimSpace(part[idx+1:]))
		if okK && okV {
			out = append(out, [2]string{k, v})
		}
	}
	return out
}

func stripBrackets(s string, open, close byte) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == open && s[len(s)-1] == close {
		return s[1 : len(s)-1]
	}
	return s
}

func unquote(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if (q != '"' && q != '\'') || s[len(s)-1] != q {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// splitTopLevelCommas splits s on commas that are not inside a quoted
// string, discarding empty/whitespace-only fields (tolerates a trailing
// comma).
func splitTopLevelCommas(s string) []string {
	var out []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			cur.WriteByte(c)
		case c == ',':
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if strings.TrimSpace(cur.String()) != "" {
		out = append(out, cur.String())
	}
	trimmed := out[:0]
	for _, p := range out {
		if strings.TrimSpace(p) != "" {
			trimmed = append(trimmed, p)
		}
	}
	return trimmed
}

// topLevelColon finds the first colon outside a quoted string, or -1.
func topLevelColon(s string) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ':':
			return i
		}
	}
	return -1
}
