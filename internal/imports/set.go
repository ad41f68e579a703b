package imports

// setKey is the de-duplication key for an Import: its three
// equality-bearing fields (§3 "Two Imports are equal iff...").
func setKey(im Import) string {
	return im.Fullname.String() + "\x00" + im.ImportAs + "\x00" + itoa(im.Level)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// ImportSet is a set of Imports (no duplicates under Import equality)
// with O(1)-average lookup by fullname and by bound name (§3, §4.6).
type ImportSet struct {
	byKey      map[string]Import
	order      []string // insertion order of keys, for deterministic iteration
	byFullname map[string][]Import
	byBoundAs  map[string][]Import
}

// NewImportSet builds an ImportSet from zero or more Imports, silently
// de-duplicating.
func NewImportSet(items ...Import) ImportSet {
	s := emptySet()
	for _, im := range items {
		s.Add(im)
	}
	return s
}

func emptySet() ImportSet {
	return ImportSet{
		byKey:      make(map[string]Import),
		byFullname: make(map[string][]Import),
		byBoundAs:  make(map[string][]Import),
	}
}

// Add inserts im, a no-op if an equal Import is already present.
func (s *ImportSet) Add(im Import) {
	if s.byKey == nil {
		*s = emptySet()
	}
	k := setKey(im)
	if _, ok := s.byKey[k]; ok {
		return
	}
	s.byKey[k] = im
	s.order = append(s.order, k)
	s.byFullname[im.Fullname.String()] = append(s.byFullname[im.Fullname.String()], im)
	s.byBoundAs[im.BoundName()] = append(s.byBoundAs[im.BoundName()], im)
}

// Remove deletes im (by value equality) if present.
func (s *ImportSet) Remove(im Import) {
	if s.byKey == nil {
		return
	}
	k := setKey(im)
	if _, ok := s.byKey[k]; !ok {
		return
	}
	delete(s.byKey, k)
	for i, ok := range s.order {
		if ok == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.byFullname[im.Fullname.String()] = removeEqual(s.byFullname[im.Fullname.String()], im)
	s.byBoundAs[im.BoundName()] = removeEqual(s.byBoundAs[im.BoundName()], im)
}

func removeEqual(items []Import, im Import) []Import {
	out := items[:0:0]
	for _, it := range items {
		if !it.Equal(im) {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Contains reports whether an equal Import is present.
func (s ImportSet) Contains(im Import) bool {
	if s.byKey == nil {
		return false
	}
	_, ok := s.byKey[setKey(im)]
	return ok
}

// Len returns the number of distinct Imports.
func (s ImportSet) Len() int { return len(s.byKey) }

// Items returns all Imports in stable insertion order.
func (s ImportSet) Items() []Import {
	out := make([]Import, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.byKey[k])
	}
	return out
}

// ByFullname returns the candidates sharing the given fully-qualified
// dotted name, or nil.
func (s ImportSet) ByFullname(fullname string) []Import {
	return append([]Import(nil), s.byFullname[fullname]...)
}

// ByBoundName returns the candidates that bind the given name
// (`by_import_as[name]` in §4.6), or nil.
func (s ImportSet) ByBoundName(name string) []Import {
	return append([]Import(nil), s.byBoundAs[name]...)
}

// IsConflicting reports whether more than one candidate binds name
// (§4.6 "conflict policy").
func (s ImportSet) IsConflicting(name string) bool {
	return len(s.byBoundAs[name]) > 1
}

// Union returns a new set containing every Import in s or other.
func (s ImportSet) Union(other ImportSet) ImportSet {
	out := NewImportSet(s.Items()...)
	for _, im := range other.Items() {
		out.Add(im)
	}
	return out
}

// Difference returns a new set containing Imports in s that are not in
// other.
func (s ImportSet) Difference(other ImportSet) ImportSet {
	out := emptySet()
	for _, im := range s.Items() {
		if !other.Contains(im) {
			out.Add(im)
		}
	}
	return out
}

// Intersection returns a new set containing Imports present in both s and
// other.
func (s ImportSet) Intersection(other ImportSet) ImportSet {
	out := emptySet()
	for _, im := range s.Items() {
		if other.Contains(im) {
			out.Add(im)
		}
	}
	return out
}

// Filter returns a new set containing only the Imports for which pred
// returns true.
func (s ImportSet) Filter(pred func(Import) bool) ImportSet {
	out := emptySet()
	for _, im := range s.Items() {
		if pred(im) {
			out.Add(im)
		}
	}
	return out
}

// WithoutImports returns s minus every Import present in other — an
// alias for Difference matching the §4.6 operation name.
func (s ImportSet) WithoutImports(other ImportSet) ImportSet {
	return s.Difference(other)
}

// WithoutBoundNames returns a new set excluding every Import whose bound
// name is in names. Used by remove_broken_imports to drop broken imports
// (§4.10).
func (s ImportSet) WithoutBoundNames(names map[string]bool) ImportSet {
	return s.Filter(func(im Import) bool { return !names[im.BoundName()] })
}
