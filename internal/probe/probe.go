// Package probe defines the import probe contract the rewriter consumes
// for star-expansion and broken-import removal (spec §4.11 — component
// C11), plus the null probe the core ships by default.
//
// The core never imports or executes target-language modules itself;
// every "does this resolve" / "what does this export" question is routed
// through a Probe, which a runtime-linked caller may back with a real
// interpreter. This is the "dynamic dispatch on duck-typed probes becomes
// an explicit interface" re-architecture of spec §9.
package probe

import "github.com/ingo-eichhorst/pyflyby/internal/imports"

// Probe answers semantic questions about importability and exports
// without the core performing imports itself.
type Probe interface {
	// Exports returns the public names M exposes, or ok=false if the
	// probe cannot answer (module not found, probe unavailable, etc).
	Exports(module string) (names imports.ImportSet, ok bool)

	// Resolves reports whether importing imp would succeed in the
	// intended environment, or ok=false if the probe cannot answer.
	Resolves(imp imports.Import) (resolves bool, ok bool)
}

// Null is the core's default probe: it answers "cannot tell" for every
// operation, making replace_star_imports and remove_broken_imports no-
// ops (§4.11).
type Null struct{}

// Exports always reports ok=false.
func (Null) Exports(string) (imports.ImportSet, bool) { return imports.ImportSet{}, false }

// Resolves always reports ok=false.
func (Null) Resolves(imports.Import) (bool, bool) { return false, false }

var _ Probe = Null{}
