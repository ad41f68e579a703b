package imports

import (
	"testing"

	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

func TestImportSetAddDeduplicates(t *testing.T) {
	s := NewImportSet()
	im := NewPlain(types.MustDottedName("os"), "")
	s.Add(im)
	s.Add(im)
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after adding the same import twice", s.Len())
	}
}

func TestImportSetByBoundNameConflict(t *testing.T) {
	s := NewImportSet(
		NewFrom(types.MustDottedName("alpha"), "helper", "", 0),
		NewFrom(types.MustDottedName("beta"), "helper", "", 0),
	)
	if !s.IsConflicting("helper") {
		t.Error("expected two distinct imports binding \"helper\" to conflict")
	}
	if got := len(s.ByBoundName("helper")); got != 2 {
		t.Errorf("ByBoundName(helper) returned %d candidates, want 2", got)
	}
}

func TestImportSetRemove(t *testing.T) {
	im := NewPlain(types.MustDottedName("sys"), "")
	s := NewImportSet(im)
	s.Remove(im)
	if s.Len() != 0 {
		t.Errorf("Len() = %d after Remove, want 0", s.Len())
	}
	if s.Contains(im) {
		t.Error("set should no longer contain the removed import")
	}
}

func TestImportSetSetOperations(t *testing.T) {
	a := NewImportSet(NewPlain(types.MustDottedName("os"), ""), NewPlain(types.MustDottedName("sys"), ""))
	b := NewImportSet(NewPlain(types.MustDottedName("sys"), ""))

	union := a.Union(b)
	if union.Len() != 2 {
		t.Errorf("Union Len() = %d, want 2", union.Len())
	}

	diff := a.Difference(b)
	if diff.Len() != 1 || !diff.Contains(NewPlain(types.MustDottedName("os"), "")) {
		t.Errorf("Difference should contain only os, got %d items", diff.Len())
	}

	inter := a.Intersection(b)
	if inter.Len() != 1 || !inter.Contains(NewPlain(types.MustDottedName("sys"), "")) {
		t.Errorf("Intersection should contain only sys, got %d items", inter.Len())
	}
}

func TestImportSetWithoutBoundNames(t *testing.T) {
	s := NewImportSet(
		NewPlain(types.MustDottedName("os"), ""),
		NewPlain(types.MustDottedName("sys"), ""),
	)
	out := s.WithoutBoundNames(map[string]bool{"sys": true})
	if out.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", out.Len())
	}
	if out.Contains(NewPlain(types.MustDottedName("sys"), "")) {
		t.Error("sys should have been filtered out")
	}
}

func TestImportSetItemsPreservesInsertionOrder(t *testing.T) {
	s := NewImportSet()
	s.Add(NewPlain(types.MustDottedName("zeta"), ""))
	s.Add(NewPlain(types.MustDottedName("alpha"), ""))
	items := s.Items()
	if len(items) != 2 || items[0].Fullname.String() != "zeta" || items[1].Fullname.String() != "alpha" {
		t.Errorf("Items() = %v, want insertion order [zeta, alpha]", items)
	}
}
