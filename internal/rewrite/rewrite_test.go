package rewrite_test

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/ingo-eichhorst/pyflyby/internal/format"
	"github.com/ingo-eichhorst/pyflyby/internal/importdb"
	"github.com/ingo-eichhorst/pyflyby/internal/imports"
	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
	"github.com/ingo-eichhorst/pyflyby/internal/rewrite"
	"github.com/ingo-eichhorst/pyflyby/internal/text"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// scenarioFile mirrors the shape of a testdata/scenarios/*.yaml fixture
// (SPEC_FULL.md §4.15): each scenario supplies an input, an optional
// inline contributor-file set for the ImportDB, an optional rewrite op
// (defaulting to tidy), and the expected rendered output.
type scenarioFile struct {
	Scenarios []scenario `yaml:"scenarios"`
}

type scenario struct {
	Name          string              `yaml:"name"`
	Op            string              `yaml:"op"`
	DB            []string            `yaml:"db"`
	Input         string              `yaml:"input"`
	Want          string              `yaml:"want"`
	WantUnused    []string            `yaml:"wantUnused"`
	WantDiagnostic bool               `yaml:"wantDiagnostic"`
	Rules         []transformRuleYAML `yaml:"rules"`
	ProbeExports  map[string][]string `yaml:"probeExports"`
}

type transformRuleYAML struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// stubProbe answers Exports from a fixture's inline probeExports table;
// Resolves always reports "cannot tell" since no scenario here exercises
// remove_broken_imports against a live probe.
type stubProbe struct {
	exports map[string]imports.ImportSet
}

func (p stubProbe) Exports(module string) (imports.ImportSet, bool) {
	set, ok := p.exports[module]
	return set, ok
}

func (p stubProbe) Resolves(imports.Import) (bool, bool) { return false, false }

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob("../../testdata/scenarios/*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no scenario fixtures found")
	}

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		var file scenarioFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			t.Fatalf("%s: %v", path, err)
		}

		for _, sc := range file.Scenarios {
			sc := sc
			t.Run(sc.Name, func(t *testing.T) {
				runScenario(t, sc)
			})
		}
	}
}

func runScenario(t *testing.T, sc scenario) {
	t.Helper()

	db := buildScenarioDB(t, sc.DB)

	parser, err := pyast.NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	defer parser.Close()

	ft := text.NewFile(sc.Input, sc.Name+".py")
	tree, err := parser.Parse(ft, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	opts := rewrite.Options{
		Params: format.DefaultParams(),
		DB:     db,
		Probe:  stubProbe{exports: scenarioExports(sc.ProbeExports)},
	}

	op := resolveOp(t, sc)
	outcome, err := op(tree, opts)
	if err != nil {
		t.Fatalf("rewrite op: %v", err)
	}

	if outcome.Text != sc.Want {
		t.Errorf("output mismatch\n--- got ---\n%s\n--- want ---\n%s", outcome.Text, sc.Want)
	}

	if sc.WantDiagnostic && len(outcome.Diagnostics) == 0 {
		t.Error("expected a diagnostic, got none")
	}
	if !sc.WantDiagnostic && sc.Op == "" && len(sc.WantUnused) == 0 && len(outcome.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", outcome.Diagnostics)
	}
	for _, name := range sc.WantUnused {
		reported := false
		for _, d := range outcome.Diagnostics {
			if d.Message == "unused import removed: "+name {
				reported = true
			}
		}
		if !reported {
			t.Errorf("expected %q reported unused, got diagnostics: %v", name, outcome.Diagnostics)
		}
	}
}

func resolveOp(t *testing.T, sc scenario) func(*pyast.Tree, rewrite.Options) (rewrite.Outcome, error) {
	t.Helper()
	switch sc.Op {
	case "", "tidy":
		return rewrite.TidyImports
	case "reformat":
		return rewrite.ReformatImportStatements
	case "replace-star":
		return rewrite.ReplaceStarImports
	case "remove-broken":
		return rewrite.RemoveBrokenImports
	case "canonicalize":
		return rewrite.CanonicalizeImports
	case "transform":
		rules := make([]importdb.CanonicalRule, 0, len(sc.Rules))
		for _, r := range sc.Rules {
			old, err := types.ParseDottedName(r.Old)
			if err != nil {
				t.Fatalf("rule old %q: %v", r.Old, err)
			}
			nw, err := types.ParseDottedName(r.New)
			if err != nil {
				t.Fatalf("rule new %q: %v", r.New, err)
			}
			rules = append(rules, importdb.CanonicalRule{Old: old, New: nw})
		}
		return func(tree *pyast.Tree, opts rewrite.Options) (rewrite.Outcome, error) {
			return rewrite.TransformImports(tree, opts, rules)
		}
	default:
		t.Fatalf("unknown scenario op %q", sc.Op)
		return nil
	}
}

func scenarioExports(raw map[string][]string) map[string]imports.ImportSet {
	out := make(map[string]imports.ImportSet, len(raw))
	for module, names := range raw {
		dn := types.MustDottedName(module)
		set := imports.NewImportSet()
		for _, name := range names {
			set.Add(imports.NewFrom(dn, name, "", 0))
		}
		out[module] = set
	}
	return out
}

// buildScenarioDB materializes each inline contributor-file body as a
// temp file in one shared temp directory and builds an ImportDB with
// each file as its own --db path entry, in body order (§4.7).
func buildScenarioDB(t *testing.T, bodies []string) importdb.DB {
	t.Helper()
	if len(bodies) == 0 {
		return importdb.DB{}
	}

	dir := t.TempDir()
	var roots []string
	for i, body := range bodies {
		name := filepath.Join(dir, scenarioContributorName(i))
		if err := os.WriteFile(name, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		roots = append(roots, name)
	}

	db, err := importdb.Build(roots, filepath.Join(dir, "target.py"))
	if err != nil {
		t.Fatalf("importdb.Build: %v", err)
	}
	return db
}

func scenarioContributorName(i int) string {
	return "contrib" + string(rune('0'+i)) + ".py"
}
