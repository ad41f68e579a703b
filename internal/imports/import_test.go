package imports

import (
	"testing"

	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

func TestImportBoundName(t *testing.T) {
	plain := NewPlain(types.MustDottedName("os.path"), "")
	if got := plain.BoundName(); got != "os" {
		t.Errorf("plain BoundName() = %q, want os", got)
	}

	aliased := NewPlain(types.MustDottedName("numpy"), "np")
	if got := aliased.BoundName(); got != "np" {
		t.Errorf("aliased BoundName() = %q, want np", got)
	}

	from := NewFrom(types.MustDottedName("os"), "path", "", 0)
	if got := from.BoundName(); got != "path" {
		t.Errorf("from BoundName() = %q, want path", got)
	}
}

func TestImportSplit(t *testing.T) {
	from := NewFrom(types.MustDottedName("os"), "path", "p", 0)
	module, member, as := from.Split()
	if module.String() != "os" || member != "path" || as != "p" {
		t.Errorf("Split() = (%q, %q, %q), want (os, path, p)", module, member, as)
	}

	plain := NewPlain(types.MustDottedName("sys"), "")
	module, member, as = plain.Split()
	if !module.IsZero() || member != "sys" || as != "" {
		t.Errorf("plain Split() = (%v, %q, %q), want (zero, sys, \"\")", module, member, as)
	}
}

func TestImportEqualIgnoresFromStyle(t *testing.T) {
	a := Import{Fullname: types.MustDottedName("a.b"), ImportAs: "x", Level: 0, FromStyle: false}
	b := Import{Fullname: types.MustDottedName("a.b"), ImportAs: "x", Level: 0, FromStyle: true}
	if !a.Equal(b) {
		t.Error("expected Equal to ignore FromStyle")
	}
}

func TestImportWithPrefixRewrittenPreservesBoundName(t *testing.T) {
	im := NewPlain(types.MustDottedName("numpy"), "")
	out, ok := im.WithPrefixRewritten(types.MustDottedName("numpy"), types.MustDottedName("numpy2"))
	if !ok {
		t.Fatal("expected rewrite to apply")
	}
	if out.Fullname.String() != "numpy2" {
		t.Errorf("Fullname = %q, want numpy2", out.Fullname)
	}
	if out.BoundName() != "numpy" {
		t.Errorf("BoundName() = %q, want numpy (original binding preserved via alias)", out.BoundName())
	}
	if out.ImportAs != "numpy" {
		t.Errorf("ImportAs = %q, want numpy", out.ImportAs)
	}
}

func TestImportWithPrefixRewrittenNoMatch(t *testing.T) {
	im := NewPlain(types.MustDottedName("scipy"), "")
	_, ok := im.WithPrefixRewritten(types.MustDottedName("numpy"), types.MustDottedName("numpy2"))
	if ok {
		t.Error("expected no rewrite for non-matching prefix")
	}
}
