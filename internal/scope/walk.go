package scope

import (
	"regexp"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ingo-eichhorst/pyflyby/internal/pyast"
	"github.com/ingo-eichhorst/pyflyby/internal/text"
	"github.com/ingo-eichhorst/pyflyby/pkg/types"
)

// scopeBoundaryKinds are the node kinds that introduce a new frame; a
// binding pass never descends past one (its bindings belong to the
// child frame, collected when that child frame is entered).
var scopeBoundaryKinds = map[string]bool{
	"function_definition":      true,
	"lambda":                   true,
	"class_definition":         true,
	"list_comprehension":       true,
	"set_comprehension":        true,
	"dictionary_comprehension": true,
	"generator_expression":     true,
}

// walker carries the immutable inputs (source text, for position
// lookups) through the recursive bind/use passes.
type walker struct {
	ft     text.FileText
	uses   []use
	frames []*frame
}

// newChildFrame creates a frame and registers it with the walker so the
// final unused-import pass can visit every frame, even one reachable
// by no use at all (e.g. an import bound but never referenced anywhere,
// in an otherwise empty function body).
func (w *walker) newChildFrame(k kind, parent *frame) *frame {
	f := newFrame(k, parent)
	w.frames = append(w.frames, f)
	return f
}

func (w *walker) pos(n *tree_sitter.Node) types.FilePos {
	return w.ft.PosAt(int(n.StartByte()))
}

// bindingsPass records every name this frame binds directly (not via a
// nested scope), hoisted regardless of source order (§4.8 "bound
// anywhere ... treated as local").
func (w *walker) bindingsPass(node *tree_sitter.Node, f *frame) {
	if node == nil {
		return
	}
	kind := node.Kind()
	if kind == "function_definition" || kind == "class_definition" {
		// The def/class name itself binds in this frame.
		if name := node.ChildByFieldName("name"); name != nil {
			f.bind(binding{name: name.Utf8Text(w.ft.Bytes()), pos: w.pos(name)})
		}
	}
	if scopeBoundaryKinds[kind] {
		return // handled when the child frame is entered, not here
	}

	switch kind {
	case "global_statement":
		forEachIdentifier(node, func(n *tree_sitter.Node) { f.global[n.Utf8Text(w.ft.Bytes())] = true })
	case "nonlocal_statement":
		forEachIdentifier(node, func(n *tree_sitter.Node) { f.nonlocal[n.Utf8Text(w.ft.Bytes())] = true })
	case "assignment":
		if left := node.ChildByFieldName("left"); left != nil {
			w.bindTargets(left, f)
		}
		if t := node.ChildByFieldName("type"); t != nil {
			w.usesPassAnnotation(t, f)
		}
	case "augmented_assignment":
		if left := node.ChildByFieldName("left"); left != nil {
			w.bindTargets(left, f)
		}
	case "named_expression":
		if left := node.ChildByFieldName("name"); left != nil && left.Kind() == "identifier" {
			f.bind(binding{name: left.Utf8Text(w.ft.Bytes()), pos: w.pos(left)})
		}
	case "for_statement":
		if left := node.ChildByFieldName("left"); left != nil {
			w.bindTargets(left, f)
		}
	case "with_item":
		if alias := node.ChildByFieldName("alias"); alias != nil {
			w.bindTargets(alias, f)
		}
	case "except_clause":
		// `except E as name:` — last named child after the exception
		// expression, when present, is the bound identifier.
		if nc := node.NamedChildCount(); nc >= 2 {
			if n := node.NamedChild(nc - 1); n != nil && n.Kind() == "identifier" {
				f.bind(binding{name: n.Utf8Text(w.ft.Bytes()), pos: w.pos(n)})
			}
		}
	case "import_statement", "import_from_statement":
		for _, b := range importBindings(node, w.ft) {
			f.bind(b)
		}
		if kind == "import_from_statement" && hasWildcard(node) {
			f.hasStarImport = true
		}
	}

	n := node.NamedChildCount()
	for i := uint(0); i < n; i++ {
		w.bindingsPass(node.NamedChild(i), f)
	}
}

// bindTargets extracts identifiers bound by an assignment-like target
// expression: a bare identifier binds; an attribute or subscript target
// instead *reads* its base (it mutates something, doesn't bind a name);
// tuple/list patterns recurse over their elements.
func (w *walker) bindTargets(target *tree_sitter.Node, f *frame) {
	switch target.Kind() {
	case "identifier":
		f.bind(binding{name: target.Utf8Text(w.ft.Bytes()), pos: w.pos(target)})
	case "tuple_pattern", "list_pattern", "pattern_list":
		n := target.NamedChildCount()
		for i := uint(0); i < n; i++ {
			w.bindTargets(target.NamedChild(i), f)
		}
	case "attribute", "subscript":
		w.usesPass(target, f) // base object is read, not bound
	default:
		// Starred patterns, etc: best-effort recurse into named children.
		n := target.NamedChildCount()
		for i := uint(0); i < n; i++ {
			w.bindTargets(target.NamedChild(i), f)
		}
	}
}

// usesPass records every name read under node (within the current
// frame), recursing into nested scopes by creating and fully
// processing their own child frame.
func (w *walker) usesPass(node *tree_sitter.Node, f *frame) {
	if node == nil {
		return
	}
	kind := node.Kind()

	switch kind {
	case "identifier":
		w.uses = append(w.uses, use{name: node.Utf8Text(w.ft.Bytes()), pos: w.pos(node), scope: f})
		return
	case "assignment", "augmented_assignment":
		if left := node.ChildByFieldName("left"); left != nil && (left.Kind() == "attribute" || left.Kind() == "subscript") {
			w.usesPass(left, f)
		}
		if t := node.ChildByFieldName("type"); t != nil {
			w.usesPassAnnotation(t, f)
		}
		if right := node.ChildByFieldName("right"); right != nil {
			w.usesPass(right, f)
		}
		return
	case "for_statement":
		if right := node.ChildByFieldName("right"); right != nil {
			w.usesPass(right, f)
		}
		if body := node.ChildByFieldName("body"); body != nil {
			w.usesPass(body, f)
		}
		if alt := node.ChildByFieldName("alternative"); alt != nil {
			w.usesPass(alt, f)
		}
		return
	case "attribute":
		// `obj.attr` reads obj; attr is a member name, not a variable.
		w.usesPass(node.ChildByFieldName("object"), f)
		return
	case "import_statement", "import_from_statement", "future_import_statement", "global_statement", "nonlocal_statement":
		return // purely binding/declarative, no reads
	case "function_definition":
		w.enterFunction(node, f)
		return
	case "lambda":
		w.enterLambda(node, f)
		return
	case "class_definition":
		w.enterClass(node, f)
		return
	case "list_comprehension", "set_comprehension", "dictionary_comprehension", "generator_expression":
		w.enterComprehension(node, f)
		return
	}

	n := node.NamedChildCount()
	for i := uint(0); i < n; i++ {
		w.usesPass(node.NamedChild(i), f)
	}
}

// forwardRefIdentifier extracts identifier atoms out of a forward-reference
// annotation string's content, e.g. "Dict[str, Foo]" -> Dict, str, Foo.
var forwardRefIdentifier = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// usesPassAnnotation records reads for an annotation expression: an
// ordinary expression recurses through usesPass as normal, while a
// string literal is a PEP 484 forward reference whose quoted text names
// a type that was never parsed as code, so its identifier atoms are
// read directly out of the string's content (§4.8 "string-form
// forward-reference annotations contribute reads").
func (w *walker) usesPassAnnotation(node *tree_sitter.Node, f *frame) {
	if node == nil {
		return
	}
	if node.Kind() == "string" {
		pos := w.pos(node)
		content := stringLiteralContent(node.Utf8Text(w.ft.Bytes()))
		for _, atom := range forwardRefIdentifier.FindAllString(content, -1) {
			w.uses = append(w.uses, use{name: atom, pos: pos, scope: f})
		}
		return
	}
	w.usesPass(node, f)
}

// stringLiteralContent strips a Python string node's prefix letters
// (r, b, f, u, in any combination) and surrounding quotes (triple or
// single), leaving just the literal's text content.
func stringLiteralContent(raw string) string {
	i := 0
	for i < len(raw) && strings.ContainsRune("rRbBfFuU", rune(raw[i])) {
		i++
	}
	rest := raw[i:]
	for _, q := range []string{`"""`, "'''"} {
		if len(rest) >= 2*len(q) && strings.HasPrefix(rest, q) && strings.HasSuffix(rest, q) {
			return rest[len(q) : len(rest)-len(q)]
		}
	}
	if len(rest) >= 2 {
		if c := rest[0]; (c == '"' || c == '\'') && rest[len(rest)-1] == c {
			return rest[1 : len(rest)-1]
		}
	}
	return rest
}

func forEachIdentifier(node *tree_sitter.Node, fn func(*tree_sitter.Node)) {
	n := node.NamedChildCount()
	for i := uint(0); i < n; i++ {
		c := node.NamedChild(i)
		if c != nil && c.Kind() == "identifier" {
			fn(c)
		}
	}
}

func hasWildcard(node *tree_sitter.Node) bool {
	n := node.NamedChildCount()
	for i := uint(0); i < n; i++ {
		if c := node.NamedChild(i); c != nil && c.Kind() == "wildcard_import" {
			return true
		}
	}
	return false
}

// importBindings extracts the bindings an import/import-from statement
// introduces, by delegating to the import-statement parser on the
// node's own source text (the scope analyzer doesn't duplicate the
// import grammar — it reuses the parser's rendering round-trip). Each
// binding carries its originating Import so a later same-name binding
// that shadows it can report exactly which Import was shadowed.
func importBindings(node *tree_sitter.Node, ft text.FileText) []binding {
	raw := node.Utf8Text(ft.Bytes())
	members, err := parseImportBindings(raw)
	if err != nil {
		return nil
	}
	out := make([]binding, 0, len(members))
	for _, im := range members {
		out = append(out, binding{name: im.BoundName(), isImport: true, imp: im})
	}
	return out
}

// enterFunction pushes a function frame: parameters bind in the new
// frame; default values and annotations are read in the *enclosing*
// frame (they're evaluated at def time); decorators are read in the
// enclosing frame too.
func (w *walker) enterFunction(node *tree_sitter.Node, parent *frame) {
	// Decorators live as siblings under decorated_definition and are
	// already reached by the generic recursion that found this node.
	child := w.newChildFrame(kindFunction, parent)

	if params := node.ChildByFieldName("parameters"); params != nil {
		w.bindParameters(params, child, parent)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		w.usesPassAnnotation(ret, parent)
	}

	if body := node.ChildByFieldName("body"); body != nil {
		w.bindingsPass(body, child)
		w.usesPass(body, child)
	}
}

// bindParameters binds each parameter name into child, while reading
// its default value and annotation expressions in parent (the scope
// active where the def statement itself appears).
func (w *walker) bindParameters(params *tree_sitter.Node, child, parent *frame) {
	n := params.NamedChildCount()
	for i := uint(0); i < n; i++ {
		p := params.NamedChild(i)
		if p == nil {
			continue
		}
		switch p.Kind() {
		case "identifier":
			child.bind(binding{name: p.Utf8Text(w.ft.Bytes()), pos: w.pos(p)})
		case "typed_parameter", "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil {
				child.bind(binding{name: name.Utf8Text(w.ft.Bytes()), pos: w.pos(name)})
			} else if nc := p.NamedChild(0); nc != nil && nc.Kind() == "identifier" {
				child.bind(binding{name: nc.Utf8Text(w.ft.Bytes()), pos: w.pos(nc)})
			}
			if t := p.ChildByFieldName("type"); t != nil {
				w.usesPassAnnotation(t, parent)
			}
			if v := p.ChildByFieldName("value"); v != nil {
				w.usesPass(v, parent)
			}
		case "list_splat_pattern", "dictionary_splat_pattern":
			if nc := p.NamedChildCount(); nc > 0 {
				if id := p.NamedChild(0); id != nil && id.Kind() == "identifier" {
					child.bind(binding{name: id.Utf8Text(w.ft.Bytes()), pos: w.pos(id)})
				}
			}
		}
	}
}

func (w *walker) enterLambda(node *tree_sitter.Node, parent *frame) {
	child := w.newChildFrame(kindFunction, parent)
	if params := node.ChildByFieldName("parameters"); params != nil {
		w.bindParameters(params, child, parent)
	}
	if body := node.ChildByFieldName("body"); body != nil {
		w.bindingsPass(body, child)
		w.usesPass(body, child)
	}
}

func (w *walker) enterClass(node *tree_sitter.Node, parent *frame) {
	if sc := node.ChildByFieldName("superclasses"); sc != nil {
		w.usesPass(sc, parent)
	}
	child := w.newChildFrame(kindClass, parent)
	if body := node.ChildByFieldName("body"); body != nil {
		w.bindingsPass(body, child)
		w.usesPass(body, child)
	}
}

// enterComprehension handles the `for` clause(s): the first clause's
// iterable is evaluated in the enclosing frame, every subsequent clause
// and the result expression evaluate in the comprehension's own frame
// (Python 3 semantics).
func (w *walker) enterComprehension(node *tree_sitter.Node, parent *frame) {
	child := w.newChildFrame(kindComprehension, parent)

	n := node.NamedChildCount()
	firstForSeen := false
	for i := uint(0); i < n; i++ {
		c := node.NamedChild(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "for_in_clause":
			left := c.ChildByFieldName("left")
			right := c.ChildByFieldName("right")
			if right != nil {
				if !firstForSeen {
					w.usesPass(right, parent)
				} else {
					w.usesPass(right, child)
				}
			}
			if left != nil {
				w.bindTargets(left, child)
			}
			firstForSeen = true
		case "if_clause":
			w.usesPass(c, child)
		default:
			w.usesPass(c, child)
		}
	}
}

// analyzeTree builds the module frame and walks the whole tree.
func analyzeTree(tree *pyast.Tree) Result {
	w := &walker{ft: tree.Text()}
	root := tree.Root()

	module := w.newChildFrame(kindModule, nil)
	w.bindingsPass(root, module)
	w.usesPass(root, module)

	return resolve(w.frames, w.uses)
}
