package class

import (
	"fmt"
	"sort"
)

const enumRootClass = "java/lang/Enum"

// Table is a small in-memory stand-in for "the front end's class table"
// (spec.md §3). A driver or test populates it directly, or loads it from
// a TOML class manifest (see LoadManifest in manifest.go); nothing in
// this package parses class files.
type Table struct {
	classes map[string]*Class
	// chains caches each class's full superclass name chain (root last)
	// so IsEnum/IsNativeObject/IsStruct don't re-walk it on every call
	// (SPEC_FULL.md §3 addition).
	chains map[string][]string
}

// NewTable creates an empty class table.
func NewTable() *Table {
	return &Table{classes: make(map[string]*Class), chains: make(map[string][]string)}
}

// Add registers c, replacing any prior class of the same name and
// invalidating cached superclass chains.
func (t *Table) Add(c *Class) {
	t.classes[c.Name] = c
	t.chains = make(map[string][]string)
}

// Lookup returns the class named name, if present.
func (t *Table) Lookup(name string) (*Class, bool) {
	c, ok := t.classes[name]
	return c, ok
}

// MustLookup panics if name is not present; used by internal callers that
// have already validated the name against the table.
func (t *Table) MustLookup(name string) *Class {
	c, ok := t.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("class: unknown class %q", name))
	}
	return c
}

// Names returns every class name registered in t, sorted for
// deterministic iteration (used by cmd/jaotc's diagnose command to walk
// a loaded manifest in a stable order).
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.classes))
	for name := range t.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SuperChain returns the ordered chain of superclass names above c,
// starting with c.Super and ending at the root (a class with no known
// superclass, or one not present in this table).
func (t *Table) SuperChain(c *Class) []string {
	if chain, ok := t.chains[c.Name]; ok {
		return chain
	}
	var chain []string
	seen := map[string]bool{c.Name: true}
	cur := c
	for cur.Super != "" {
		if seen[cur.Super] {
			break // malformed cyclic hierarchy; stop rather than loop forever
		}
		seen[cur.Super] = true
		chain = append(chain, cur.Super)
		next, ok := t.Lookup(cur.Super)
		if !ok {
			break
		}
		cur = next
	}
	t.chains[c.Name] = chain
	return chain
}

// IsEnum reports whether c's direct superclass is the enum root
// (spec.md §4.3.6: "one level; deeper is not enum-ness by this rule").
func (t *Table) IsEnum(c *Class) bool {
	return c.Super == enumRootClass
}

// isSubclassOf reports whether c transitively extends markerClass.
func (t *Table) isSubclassOf(c *Class, markerClass string) bool {
	for _, name := range t.SuperChain(c) {
		if name == markerClass {
			return true
		}
	}
	return false
}

// IsNativeObject reports whether c transitively extends the
// "NativeObject" marker class (spec.md §4.3.6).
func (t *Table) IsNativeObject(c *Class) bool {
	return t.isSubclassOf(c, "NativeObject")
}

// IsStruct reports whether c transitively extends the "Struct" marker
// class (spec.md §4.3.6).
func (t *Table) IsStruct(c *Class) bool {
	return t.isSubclassOf(c, "Struct")
}
