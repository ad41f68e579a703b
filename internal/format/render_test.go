package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

func TestRenderPlainSortedByFullname(t *testing.T) {
	set := imports.NewImportSet(
		imports.NewPlain(types.MustDottedName("sys"), ""),
		imports.NewPlain(types.MustDottedName("os"), ""),
	)
	out, err := Render(set, DefaultParams(), false)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "import os\nimport sys"
	if out != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestRenderFromGroupSortsMembers(t *testing.T) {
	set := imports.NewImportSet(
		imports.NewFrom(types.MustDottedName("foo.bar"), "c", "", 0),
		imports.NewFrom(types.MustDottedName("foo.bar"), "a", "", 0),
		imports.NewFrom(types.MustDottedName("foo.bar"), "b", "", 0),
	)
	out, err := Render(set, DefaultParams(), false)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "from foo.bar import a, b, c" {
		t.Errorf("Render() = %q, want sorted member list", out)
	}
}

func TestRenderFutureGroupSeparatedFromPlain(t *testing.T) {
	set := imports.NewImportSet(
		imports.NewFrom(types.MustDottedName("__future__"), "print_function", "", 0),
		imports.NewPlain(types.MustDottedName("os"), ""),
	)
	out, err := Render(set, DefaultParams(), false)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "from __future__ import print_function\n\nimport os"
	if out != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestRenderConflictingBoundNamesErrors(t *testing.T) {
	set := imports.NewImportSet(
		imports.NewFrom(types.MustDottedName("alpha"), "helper", "", 0),
		imports.NewFrom(types.MustDottedName("beta"), "helper", "", 0),
	)
	_, err := Render(set, DefaultParams(), false)
	if err == nil {
		t.Fatal("expected an error for conflicting bound names")
	}
	var ambiguous *types.AmbiguousImport
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected error to wrap *types.AmbiguousImport, got %v", err)
	}
}

func TestRenderAllowConflictsEmitsBoth(t *testing.T) {
	set := imports.NewImportSet(
		imports.NewFrom(types.MustDottedName("alpha"), "helper", "", 0),
		imports.NewFrom(types.MustDottedName("beta"), "helper", "", 0),
	)
	out, err := Render(set, DefaultParams(), true)
	if err != nil {
		t.Fatalf("Render with allowConflicts: %v", err)
	}
	if !strings.Contains(out, "alpha") || !strings.Contains(out, "beta") {
		t.Errorf("expected both conflicting candidates rendered, got %q", out)
	}
}

func TestRenderWrapsLongFromLineWithHangingIndent(t *testing.T) {
	set := imports.NewImportSet(
		imports.NewFrom(types.MustDottedName("a.very.long.module.path.here"), "first_name", "", 0),
		imports.NewFrom(types.MustDottedName("a.very.long.module.path.here"), "second_name", "", 0),
		imports.NewFrom(types.MustDottedName("a.very.long.module.path.here"), "third_name", "", 0),
	)
	params := DefaultParams()
	params.MaxLineLength = 20
	out, err := Render(set, params, false)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "import (\n") {
		t.Errorf("expected hanging-indent parenthesized form, got %q", out)
	}
}
