// Package strtab is a small string-interning table: every distinct string
// is stored once and addressed by a stable, dense ID, the same "intern
// once, address by index" idiom internal/ir's Interner uses for types.
package strtab

// ID addresses a string within a Table. The zero value never corresponds
// to an interned string (Table reserves index 0), matching the
// ir.NoTypeID convention of keeping zero free as a "no value" sentinel.
type ID uint32

// Table interns strings and hands back stable IDs.
type Table struct {
	strings []string
	index   map[string]ID
}

// New creates an empty table.
func New() *Table {
	return &Table{
		strings: []string{""},
		index:   make(map[string]ID, 64),
	}
}

// Intern returns the ID for s, allocating a new one if s hasn't been seen
// before. The empty string is never interned; it always returns 0.
func (t *Table) Intern(s string) int {
	if s == "" {
		return 0
	}
	if id, ok := t.index[s]; ok {
		return int(id)
	}
	id := ID(len(t.strings))
	t.strings = append(t.strings, s)
	t.index[s] = id
	return int(id)
}

// Lookup returns the string for id.
func (t *Table) Lookup(id ID) (string, bool) {
	if int(id) >= len(t.strings) {
		return "", false
	}
	return t.strings[id], id != 0
}
