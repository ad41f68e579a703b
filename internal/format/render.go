package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

var futureModule = types.MustDottedName("__future__")

type fromGroupKey struct {
	level  int
	module string
}

// Render pretty-prints set as one or more import statements (§4.6
// pretty_print, §4.9 group ordering). If allowConflicts is false and two
// imports in set bind the same name, Render fails with an error wrapping
// *types.AmbiguousImport; if true, every candidate is emitted, grouped
// and sorted deterministically regardless of set insertion order (§8
// "Sort stability").
func Render(set imports.ImportSet, params Params, allowConflicts bool) (string, error) {
	if !allowConflicts {
		if err := checkNoConflicts(set); err != nil {
			return "", err
		}
	}

	future, plain, fromGroups := partition(set)

	var blocks []string
	if len(future) > 0 {
		st, err := imports.NewImportStatement(futureModule, 0, future...)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, renderFromStatement(st, params, true))
	}

	sort.SliceStable(plain, func(i, j int) bool {
		return strings.ToLower(plain[i].Fullname.String()) < strings.ToLower(plain[j].Fullname.String())
	})
	var bodyLines []string
	for _, im := range plain {
		bodyLines = append(bodyLines, im.RenderPlain())
	}

	keys := make([]fromGroupKey, 0, len(fromGroups))
	for k := range fromGroups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].level != keys[j].level {
			return keys[i].level < keys[j].level
		}
		return strings.ToLower(keys[i].module) < strings.ToLower(keys[j].module)
	})

	var fromLines []string
	for _, k := range keys {
		mod := types.DottedName{}
		if k.module != "" {
			parsed, err := types.ParseDottedName(k.module)
			if err != nil {
				return "", err
			}
			mod = parsed
		}
		st, err := imports.NewImportStatement(mod, k.level, fromGroups[k]...)
		if err != nil {
			return "", err
		}
		fromLines = append(fromLines, renderFromStatement(st, params, false))
	}

	if params.SeparateFromImports {
		if len(bodyLines) > 0 {
			blocks = append(blocks, strings.Join(bodyLines, "\n"))
		}
		if len(fromLines) > 0 {
			blocks = append(blocks, strings.Join(fromLines, "\n"))
		}
	} else {
		combined := append(append([]string{}, bodyLines...), fromLines...)
		if len(combined) > 0 {
			blocks = append(blocks, strings.Join(combined, "\n"))
		}
	}

	return strings.Join(blocks, "\n\n"), nil
}

// checkNoConflicts returns an error wrapping *types.AmbiguousImport for
// the first bound name with more than one candidate.
func checkNoConflicts(set imports.ImportSet) error {
	seen := map[string]bool{}
	for _, im := range set.Items() {
		name := im.BoundName()
		if seen[name] {
			continue
		}
		seen[name] = true
		if set.IsConflicting(name) {
			var candidates []string
			for _, c := range set.ByBoundName(name) {
				candidates = append(candidates, c.Fullname.String())
			}
			return fmt.Errorf("pretty-print: %w", &types.AmbiguousImport{Name: name, Candidates: candidates})
		}
	}
	return nil
}

// partition splits set into the future-directive group, the plain-style
// singles, and the from-style groups keyed by (level, from_module).
func partition(set imports.ImportSet) (future, plain []imports.Import, fromGroups map[fromGroupKey][]imports.Import) {
	fromGroups = make(map[fromGroupKey][]imports.Import)
	for _, im := range set.Items() {
		fromModule, _, _ := im.Split()
		switch {
		case (im.FromStyle || im.Level > 0) && im.Level == 0 && fromModule.Equal(futureModule):
			future = append(future, im)
		case !im.FromStyle && im.Level == 0:
			plain = append(plain, im)
		default:
			k := fromGroupKey{level: im.Level, module: fromModule.String()}
			fromGroups[k] = append(fromGroups[k], im)
		}
	}
	return future, plain, fromGroups
}

// renderFromStatement renders one `from M import ...` (or, for the
// future group, `from __future__ import ...`) statement, choosing the
// single-line or parenthesized hanging-indent form per §4.9. isFuture
// marks the future-directive group: by default (AlignFuture false) it
// always gets a plain single-space "import" gap regardless of
// AlignImports, since a lone `__future__` line rarely shares a sensible
// column with the rest of the file's from-groups; setting AlignFuture
// opts it into the general alignment scheme like any other group.
func renderFromStatement(st imports.ImportStatement, params Params, isFuture bool) string {
	members := st.SortedMembers()

	aliasStrs := make([]string, len(members))
	for i, m := range members {
		aliasStrs[i] = m.RenderFromAlias()
	}

	prefix := "from" + strings.Repeat(" ", max(params.FromSpaces, 1)) + dotsModule(st)
	gap := importKeywordGap(prefix, params)
	if isFuture && !params.AlignFuture {
		gap = " "
	}
	oneLineAliases := strings.Join(aliasStrs, ", ")
	useParens := params.UseParens && len(members) > 1

	oneLine := prefix + gap + "import " + wrapParens(oneLineAliases, useParens)

	fits := len(oneLine) <= params.MaxLineLength
	switch params.HangingIndent {
	case HangingNever:
		return oneLine
	case HangingAlways:
		if len(members) <= 1 {
			return oneLine
		}
		return hangingForm(prefix, gap, params, aliasStrs)
	default: // HangingAuto
		if fits {
			return oneLine
		}
		return hangingForm(prefix, gap, params, aliasStrs)
	}
}

func dotsModule(st imports.ImportStatement) string {
	return strings.Repeat(".", st.Level) + st.FromModule.String()
}

func wrapParens(s string, wrap bool) string {
	if !wrap {
		return s
	}
	return "(" + s + ")"
}

// importKeywordGap computes the spacing between "from M" and "import"
// per the AlignImports mode.
func importKeywordGap(prefix string, params Params) string {
	switch params.AlignImports.Mode {
	case AlignTabStop:
		tab := params.AlignImports.Value
		if tab <= 0 {
			tab = 1
		}
		col := len(prefix)
		pad := tab - (col % tab)
		if pad <= 0 {
			pad = tab
		}
		return strings.Repeat(" ", pad)
	case AlignColumn:
		target := params.AlignImports.Value
		if target > len(prefix) {
			return strings.Repeat(" ", target-len(prefix))
		}
		return " "
	default:
		return " "
	}
}

// hangingForm renders the open-paren hanging-indent form: one alias per
// line, trailing commas, closing paren on its own line.
func hangingForm(prefix, gap string, params Params, aliasStrs []string) string {
	indent := strings.Repeat(" ", max(params.IndentContinuation, 1))
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(gap)
	b.WriteString("import (\n")
	for _, a := range aliasStrs {
		b.WriteString(indent)
		b.WriteString(a)
		b.WriteString(",\n")
	}
	b.WriteString(indent)
	b.WriteString(")")
	return b.String()
}
