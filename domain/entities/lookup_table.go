package entities

// TableKind names one of the two lookup tables
type TableKind string

const (
	SelectorTable TableKind = "selectors"
	URLTable      TableKind = "urls"
)

// LookupTable maps business terms to CSS selectors or URL fragments.
// It is immutable once built.
type LookupTable struct {
	entries map[string]string
}

// NewLookupTable copies entries into a new table
func NewLookupTable(entries map[string]string) *LookupTable {
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &LookupTable{entries: copied}
}

// Get looks a term up with an exact, case-sensitive match
func (t *LookupTable) Get(term string) (string, bool) {
	v, ok := t.entries[term]
	return v, ok
}

// Len returns the number of terms
func (t *LookupTable) Len() int {
	return len(t.entries)
}
