package pyast

import (
	"strings"

	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/internal/text"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// detectFlags scans block's top-level `from __future__ import ...`
// statements and folds each named directive into a CompilerFlags bitset
// (§3 CompilerFlags, §4.4). The grammar gives a future import its own
// future_import_statement node kind; an import_from_statement is also
// accepted, and detection is structural (module name match) for both.
func detectFlags(ft text.FileText, block Block) types.CompilerFlags {
	var flags types.CompilerFlags
	for _, st := range block.Statements {
		if !st.isTopLevelImport || st.node == nil {
			continue
		}
		if k := st.node.Kind(); k != "import_from_statement" && k != "future_import_statement" {
			continue
		}
		raw := nodeText(ft, st.node)
		parsed, err := imports.ParseImportStatementSource(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		if !parsed.FromModule.Equal(types.MustDottedName("__future__")) || parsed.Level != 0 {
			continue
		}
		for _, m := range parsed.Members() {
			_, member, _ := m.Split()
			if flag, ok := types.FutureDirectiveFlag(member); ok {
				flags = flags.Union(flag)
			}
		}
	}
	return flags
}

func nodeText(ft text.FileText, node interface {
	StartByte() uint
	EndByte() uint
}) string {
	b := ft.Bytes()
	s, e := int(node.StartByte()), int(node.EndByte())
	if s < 0 {
		s = 0
	}
	if e > len(b) {
		e = len(b)
	}
	if e < s {
		e = s
	}
	return string(b[s:e])
}
