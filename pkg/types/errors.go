package types

import "fmt"

// SyntaxError means source could not be parsed. Fatal to the current file.
type SyntaxError struct {
	Pos     FilePos
	Msg     string
	Context string // optional filename, added by callers that have one
}

func (e *SyntaxError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s:%s: syntax error: %s", e.Context, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: syntax error: %s", e.Pos, e.Msg)
}

// NoSuchImportError is raised when a lookup the caller required to
// succeed failed.
type NoSuchImportError struct {
	Name string
}

func (e *NoSuchImportError) Error() string {
	return fmt.Sprintf("no known import binds %q", e.Name)
}

// ImportFormatError means a contributor file contained a malformed
// rewrite rule or import-statement string.
type ImportFormatError struct {
	Source string
	Reason string
}

func (e *ImportFormatError) Error() string {
	return fmt.Sprintf("malformed import directive %q: %s", e.Source, e.Reason)
}

// ProbeUnavailable means a probe operation was needed but the probe
// returned no answer; always downgraded to a diagnostic, never fatal.
type ProbeUnavailable struct {
	Module string
	Op     string // "exports" or "resolves"
}

func (e *ProbeUnavailable) Error() string {
	return fmt.Sprintf("probe could not answer %s(%s)", e.Op, e.Module)
}

// AmbiguousImport means multiple known imports bind the same name and no
// preferred_import disambiguates them; always a diagnostic.
type AmbiguousImport struct {
	Name       string
	Candidates []string // rendered fullnames, for display
}

func (e *AmbiguousImport) Error() string {
	return fmt.Sprintf("ambiguous import for %q: %v", e.Name, e.Candidates)
}

// NonImportStatementError is raised when a caller tries to construct an
// ImportStatement from non-import source text.
type NonImportStatementError struct {
	Source string
}

func (e *NonImportStatementError) Error() string {
	return fmt.Sprintf("not an import statement: %q", e.Source)
}

// ExitError carries a process exit code through an error return, the way
// a CLI's RunE propagates a specific exit status without losing the
// underlying error message. Sub-commands wrap terminal failures in
// ExitError; Execute unwraps it via errors.As.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
