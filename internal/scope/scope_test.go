package scope_test

import (
	"sort"
	"testing"

	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
	"github.com/ingo-eichhorst/pyflyby/internal/scope"
	"github.com/ingo-eichhorst/pyflyby/internal/text"
)

func analyze(t *testing.T, src string) scope.Result {
	t.Helper()
	parser, err := pyast.NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	defer parser.Close()

	tree, err := parser.Parse(text.NewFile(src, "t.py"), 0)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	defer tree.Close()

	return scope.Analyze(tree)
}

func unusedBoundNames(r scope.Result) []string {
	out := make([]string, len(r.Unused))
	for i, im := range r.Unused {
		out[i] = im.BoundName()
	}
	sort.Strings(out)
	return out
}

// Scope soundness (§8): a name bound anywhere in a frame resolves for a
// read anywhere else in that frame, regardless of source order; a name
// never bound anywhere in the scope chain is reported missing; an import
// whose bound name is never read is reported unused.
func TestScopeSoundness(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		wantMissing []string
		wantUnused  []string
	}{
		{
			name:        "simple unused import",
			src:         "import os\n",
			wantUnused:  []string{"os"},
		},
		{
			name: "import used later resolves",
			src:  "import os\nprint(os.getcwd())\n",
		},
		{
			name:        "free name is missing",
			src:         "print(undefined_name)\n",
			wantMissing: []string{"undefined_name"},
		},
		{
			name: "function-local binding hoists regardless of source order",
			src:  "def f():\n    print(x)\n    x = 1\n",
		},
		{
			name: "star import suppresses missing",
			src:  "from os import *\nprint(whatever)\n",
		},
		{
			name: "class body does not leak into nested function",
			src:  "class C:\n    y = 1\n    def m(self):\n        return y\n",
			wantMissing: []string{"y"},
		},
		{
			name: "comprehension has its own scope",
			src:  "import os\nresult = [os.path.join(p) for p in paths]\n",
			wantMissing: []string{"paths"},
		},
		{
			name: "nested function sees enclosing import",
			src:  "import os\ndef f():\n    def g():\n        return os.getcwd()\n    return g()\n",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := analyze(t, tc.src)
			assertStringSlice(t, "Missing", got.Missing, tc.wantMissing)
			assertStringSlice(t, "Unused", unusedBoundNames(got), tc.wantUnused)
		})
	}
}

// §4.8 tie-break: when two imports bind the same name in a frame, the
// later-declared one wins and the earlier is reported unused — even
// though the shared bound name is read, so a by-bound-name unused check
// would wrongly call both of them used.
func TestScopeTieBreakLaterImportWins(t *testing.T) {
	got := analyze(t, "import foo as a\nimport bar as a\nprint(a)\n")

	if len(got.Unused) != 1 {
		t.Fatalf("Unused = %v, want exactly one shadowed import", got.Unused)
	}
	if got.Unused[0].Fullname.String() != "foo" {
		t.Errorf("shadowed import = %s, want foo (the earlier-declared one)", got.Unused[0].Fullname.String())
	}
}

// Restating the identical import twice is not a tie-break: there is only
// one Import value, and it must not be flagged unused out from under a
// later read of it.
func TestScopeDuplicateImportNotShadowed(t *testing.T) {
	got := analyze(t, "import os\nimport os\nprint(os.getcwd())\n")
	if len(got.Unused) != 0 {
		t.Errorf("Unused = %v, want none (duplicate import, both resolve to the same read)", got.Unused)
	}
}

// §4.8 annotation handling: a variable annotation's expression contributes
// a read even when the variable itself is never otherwise referenced.
func TestScopeVariableAnnotationIsARead(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"annotated assignment", "import typing\nx: typing.List = []\n"},
		{"bare annotation", "import typing\nx: typing.List\n"},
		{"function parameter annotation", "import typing\ndef f(x: typing.List):\n    return x\n"},
		{"function return annotation", "import typing\ndef f() -> typing.List:\n    return []\n"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := analyze(t, tc.src)
			if len(got.Unused) != 0 {
				t.Errorf("Unused = %v, want none (annotation reads typing)", got.Unused)
			}
		})
	}
}

// The other half of §4.8's annotation rule: a string-form forward
// reference contributes a read of each identifier atom in its text.
func TestScopeForwardReferenceAnnotationIsARead(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"variable forward ref", "import widgets\nx: \"widgets.Widget\" = None\n"},
		{"parameter forward ref", "import widgets\ndef f(x: \"widgets.Widget\"):\n    return x\n"},
		{"return forward ref", "import widgets\ndef f() -> \"widgets.Widget\":\n    return None\n"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := analyze(t, tc.src)
			if len(got.Unused) != 0 {
				t.Errorf("Unused = %v, want none (forward-reference string names widgets)", got.Unused)
			}
		})
	}
}

func assertStringSlice(t *testing.T, field string, got, want []string) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", field, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%s = %v, want %v", field, got, want)
		}
	}
}
