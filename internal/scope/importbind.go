package scope

import "github.com/ingo-eichhorst/pyflyby/internal/imports"

// parseImportBindings returns the Imports an import statement's source
// text introduces, reusing the import-statement parser rather than
// re-deriving binding rules from the grammar a second time.
func parseImportBindings(src string) ([]imports.Import, error) {
	st, err := imports.ParseImportStatementSource(src)
	if err != nil {
		return nil, err
	}
	return st.Members(), nil
}
