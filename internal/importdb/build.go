package importdb

import (
	"os"

	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
	"github.com/ingo-eichhorst/pyflyby/internal/text"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// Build assembles a DB from an ordered path-list specification,
// resolving sentinels against targetFile (pass "" if none), scanning
// every contributor file's top-level statements left-to-right, and
// applying the §4.7 merge rules. File reads happen sequentially in
// deterministic order and tolerate a file vanishing mid-scan (§4.10
// suspension rule) — such a file is simply dropped, not an error.
func Build(pathList []string, targetFile string) (DB, error) {
	roots := ResolvePathList(pathList, targetFile)

	db := DB{known: imports.NewImportSet(), mandatory: imports.NewImportSet()}

	parser, err := pyast.NewParser()
	if err != nil {
		return DB{}, err
	}
	defer parser.Close()

	for _, root := range roots {
		ignore, _ := loadIgnore(root)
		for _, file := range listContributorFiles(root, ignore) {
			if err := db.applyContributor(parser, file); err != nil {
				db.warnings = append(db.warnings, Warning{File: file, Msg: err.Error()})
				continue
			}
			db.contributorFiles = append(db.contributorFiles, file)
		}
	}

	return db, nil
}

// applyContributor reads, parses, and folds one contributor file's
// directives into db in place.
func (db *DB) applyContributor(parser *pyast.Parser, file string) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil // vanished mid-scan: tolerated, not an error
	}

	ft := text.NewFile(string(raw), file)
	tree, err := parser.Parse(ft, 0)
	if err != nil {
		return err
	}
	defer tree.Close()

	for _, st := range tree.Block().Statements {
		if !st.IsTopLevelImportStatement() {
			db.applyNonImportStatement(tree, file, st)
			continue
		}
		stmtSrc := tree.StatementText(st)
		parsed, err := imports.ParseImportStatementSource(stmtSrc)
		if err != nil {
			db.warnings = append(db.warnings, Warning{File: file, Msg: "ignored malformed import: " + err.Error()})
			continue
		}
		for _, im := range parsed.Members() {
			db.known.Add(im)
		}
	}
	return nil
}

// applyNonImportStatement handles a module-level assignment statement:
// one of the three recognized directives, or else an ignored statement
// (warning).
func (db *DB) applyNonImportStatement(tree *pyast.Tree, file string, st pyast.Statement) {
	if st.Node() == nil {
		return // trailing trivia-only pseudo-statement: nothing to inspect
	}
	src := tree.StatementText(st)
	name, rhs, ok := matchDirective(src)
	if !ok {
		if st.IsModuleDocstring() {
			return // a leading docstring is not a directive but isn't a warning either
		}
		db.warnings = append(db.warnings, Warning{File: file, Msg: "ignored top-level statement (not an import or recognized directive)"})
		return
	}

	switch name {
	case directiveMandatory:
		for _, s := range extractStringList(rhs) {
			st, err := imports.ParseImportStatementSource(s)
			if err != nil {
				db.warnings = append(db.warnings, Warning{File: file, Msg: "malformed __mandatory_imports__ entry: " + err.Error()})
				continue
			}
			for _, im := range st.Members() {
				db.mandatory.Add(im)
			}
		}
	case directiveForget:
		for _, s := range extractStringList(rhs) {
			st, err := imports.ParseImportStatementSource(s)
			if err != nil {
				db.warnings = append(db.warnings, Warning{File: file, Msg: "malformed __forget_imports__ entry: " + err.Error()})
				continue
			}
			for _, target := range st.Members() {
				db.known = db.known.Filter(func(im imports.Import) bool { return !forgetMatches(im, target) })
				db.mandatory = db.mandatory.Filter(func(im imports.Import) bool { return !forgetMatches(im, target) })
			}
		}
	case directiveCanonical:
		for _, pair := range extractStringDict(rhs) {
			oldName, errOld := types.ParseDottedName(pair[0])
			newName, errNew := types.ParseDottedName(pair[1])
			if errOld != nil || errNew != nil {
				db.warnings = append(db.warnings, Warning{File: file, Msg: "malformed __canonical_imports__ entry: " + pair[0] + ": " + pair[1]})
				continue
			}
			db.canonical = append(db.canonical, CanonicalRule{Old: oldName, New: newName})
		}
	}
}

// forgetMatches reports whether im should be forgotten given a
// __forget_imports__ target: matching by fullname or bound name, the
// more conservative of the two candidate behaviors (§9 Open Questions).
func forgetMatches(im, target imports.Import) bool {
	return im.Fullname.Equal(target.Fullname) || im.BoundName() == target.BoundName()
}
