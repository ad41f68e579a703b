package probe

import (
	"testing"

	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

func TestNullProbeAlwaysUnavailable(t *testing.T) {
	var p Probe = Null{}

	if _, ok := p.Exports("os"); ok {
		t.Error("Null.Exports should always report ok=false")
	}

	im := imports.NewPlain(types.MustDottedName("os"), "")
	if _, ok := p.Resolves(im); ok {
		t.Error("Null.Resolves should always report ok=false")
	}
}
