package diag

import (
	"bytes"
	"testing"

	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

func TestDiagnosticStringWithAndWithoutPos(t *testing.T) {
	d := Diagnostic{File: "a.py", Pos: types.NewFilePos(3, 5), Level: LevelWarning, Message: "unused import"}
	want := "a.py:3:5: warning: unused import"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	noPos := Diagnostic{File: "a.py", Level: LevelError, Message: "syntax error"}
	want = "a.py: error: syntax error"
	if got := noPos.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPrinterWritesEachDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintAll([]Diagnostic{
		{File: "a.py", Level: LevelWarning, Message: "first"},
		{File: "a.py", Level: LevelError, Message: "second"},
	})
	got := buf.String()
	if got != "a.py: warning: first\na.py: error: second\n" {
		t.Errorf("unexpected printer output: %q", got)
	}
}

func TestHasErrors(t *testing.T) {
	if HasErrors(nil) {
		t.Error("HasErrors(nil) should be false")
	}
	if HasErrors([]Diagnostic{{Level: LevelWarning}}) {
		t.Error("HasErrors should be false when only warnings are present")
	}
	if !HasErrors([]Diagnostic{{Level: LevelWarning}, {Level: LevelError}}) {
		t.Error("HasErrors should be true when an error is present")
	}
}
