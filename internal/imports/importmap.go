package imports

import "github.com/ingo-eichhorst/pyflyby/pkg/types"

// ImportMap maps a DottedName (typically an "old" prefix) to the
// ImportSet of candidate rewrites, used by transform_imports /
// canonicalize_imports (§3, §4.10).
type ImportMap struct {
	entries map[string]ImportSet
	keys    map[string]types.DottedName // string key -> original DottedName, for iteration
	order   []string
}

// NewImportMap builds an empty ImportMap.
func NewImportMap() ImportMap {
	return ImportMap{
		entries: make(map[string]ImportSet),
		keys:    make(map[string]types.DottedName),
	}
}

// Add inserts im into the set keyed by prefix, creating the entry if
// necessary.
func (m *ImportMap) Add(prefix types.DottedName, im Import) {
	if m.entries == nil {
		*m = NewImportMap()
	}
	k := prefix.String()
	if _, ok := m.entries[k]; !ok {
		m.keys[k] = prefix
		m.order = append(m.order, k)
	}
	set := m.entries[k]
	set.Add(im)
	m.entries[k] = set
}

// Get returns the ImportSet registered for prefix, and whether it exists.
func (m ImportMap) Get(prefix types.DottedName) (ImportSet, bool) {
	set, ok := m.entries[prefix.String()]
	return set, ok
}

// Keys returns the registered prefixes in insertion order.
func (m ImportMap) Keys() []types.DottedName {
	out := make([]types.DottedName, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.keys[k])
	}
	return out
}

// Len returns the number of distinct prefixes registered.
func (m ImportMap) Len() int { return len(m.entries) }
