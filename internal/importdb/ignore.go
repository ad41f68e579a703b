package importdb

import (
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// ignoreFileName is the optional per-root ignore file consulted during
// directory-root traversal, so a contributor directory can exclude
// scratch or vendored files without an explicit --db entry per file.
const ignoreFileName = ".pyflybyignore"

// ignoreMatcher wraps a compiled gitignore pattern set.
type ignoreMatcher struct {
	gi *gitignore.GitIgnore
}

// loadIgnore compiles root's .pyflybyignore, if present. Returns nil, nil
// if there is none.
func loadIgnore(root string) (*ignoreMatcher, error) {
	path := filepath.Join(root, ignoreFileName)
	gi, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, nil // absent or unreadable: no ignore rules, not an error
	}
	return &ignoreMatcher{gi: gi}, nil
}

func (m *ignoreMatcher) matches(path string) bool {
	if m == nil || m.gi == nil {
		return false
	}
	return m.gi.MatchesPath(path)
}
