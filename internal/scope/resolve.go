package scope

import (
	"strings"

	"github.com/ingo-eichhorst/pyflyby/internal/imports"
)

// builtinNames lists, space-delimited, names always bound by the target
// language's builtins module: a read of one that no frame binds is not missing.
const builtinNames = " abs all any ascii bin bool breakpoint bytearray bytes callable chr classmethod compile complex delattr dict dir divmod enumerate eval exec filter float format frozenset getattr globals hasattr hash help hex id input int isinstance issubclass iter len list locals map max memoryview min next object oct open ord pow print property range repr reversed round set setattr slice sorted staticmethod str sum super tuple type vars zip __import__ __name__ __file__ __doc__ __builtins__ NotImplemented Ellipsis BaseException Exception ArithmeticError AssertionError AttributeError EOFError ImportError ModuleNotFoundError IndexError KeyError KeyboardInterrupt LookupError MemoryError NameError NotImplementedError OSError IOError OverflowError RecursionError RuntimeError StopIteration SyntaxError SystemExit TypeError UnicodeError ValueError ZeroDivisionError Warning DeprecationWarning UserWarning "

// resolve matches every recorded use against the scope chain it was
// read from, marking the binding frame's name as read, and accumulates
// the two output sets: missing (unresolved, not suppressed by a star
// import anywhere in the chain) and unused. An import is unused either
// because it is the frame's live binding for its name and no resolved
// use ever marked that name read, or because a later binding shadowed
// it outright (§4.8 tie-break) — a shadowed import is unconditionally
// unused regardless of whether its name is read afterward, since reads
// of that name resolve to the later binding, never to it.
func resolve(frames []*frame, uses []use) Result {
	missing := make(map[string]bool)

	for _, u := range uses {
		target, ok := u.scope.lookup(u.name)
		if ok {
			target.read[u.name] = true
			continue
		}
		if u.scope.anyStarImportInChain() {
			continue // suppressed: any of the * imports might bind this name
		}
		if strings.Contains(builtinNames, " "+u.name+" ") {
			continue
		}
		missing[u.name] = true
	}

	var unused []imports.Import
	for _, f := range frames {
		for name, b := range f.bindings {
			if b.isImport && !f.read[name] {
				unused = append(unused, b.imp)
			}
		}
		unused = append(unused, f.shadowed...)
	}

	return Result{Missing: sortedKeys(missing), Unused: sortedImports(unused)}
}
