package pyast_test

import (
	"testing"

	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
	"github.com/ingo-eichhorst/pyflyby/internal/text"
)

func mustParse(t *testing.T, src string) *pyast.Tree {
	t.Helper()
	parser, err := pyast.NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	t.Cleanup(parser.Close)

	tree, err := parser.Parse(text.NewFile(src, "t.py"), 0)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	t.Cleanup(tree.Close)
	return tree
}

// Parser round-trip (§8): concatenating every Statement's Source() in
// order must losslessly reconstruct the original file, trivia and all.
func TestParserRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"\n",
		"# just a comment\n",
		"import os\n",
		"import os\nimport sys\n\n\ndef f():\n    return os.path.join(sys.argv[0])\n",
		"\"\"\"docstring\"\"\"\nimport os\n\nx = 1\n",
		"import os  # trailing comment\nx = os.getcwd()",
		"if True:\n    import os\nelse:\n    import sys\n",
		"x = 1\n\n\n\ny = 2\n",
	}

	for _, src := range cases {
		src := src
		t.Run(src, func(t *testing.T) {
			tree := mustParse(t, src)
			got := tree.Block().Source("t.py").String()
			if got != src {
				t.Errorf("round-trip mismatch\n--- got ---\n%q\n--- want ---\n%q", got, src)
			}
		})
	}
}

func TestBlockSlicesTopLevelImportsOnly(t *testing.T) {
	tree := mustParse(t, "import os\nif True:\n    import sys\nx = os.getcwd()\n")
	block := tree.Block()

	var topLevel []string
	for _, st := range block.Statements {
		if st.IsTopLevelImportStatement() {
			topLevel = append(topLevel, tree.StatementText(st))
		}
	}
	if len(topLevel) != 1 || topLevel[0] != "import os" {
		t.Fatalf("top-level imports = %v, want exactly [\"import os\"] (the conditional import must not count)", topLevel)
	}
}

func TestModuleDocstringDetection(t *testing.T) {
	tree := mustParse(t, "\"\"\"hello\"\"\"\nimport os\n")
	stmts := tree.Block().Statements
	if len(stmts) < 2 || !stmts[0].IsModuleDocstring() {
		t.Fatalf("expected first statement to be flagged as module docstring, got %#v", stmts)
	}
	if stmts[1].IsModuleDocstring() {
		t.Fatal("import statement must not be flagged as a docstring")
	}
}

func TestParseSyntaxError(t *testing.T) {
	parser, err := pyast.NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	defer parser.Close()

	_, err = parser.Parse(text.NewFile("def f(:\n    pass\n", "bad.py"), 0)
	if err == nil {
		t.Fatal("expected a syntax error for malformed input")
	}
}
