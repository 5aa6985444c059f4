// Package class defines the read-only view of a managed class table that
// spec.md §3 presupposes the (out-of-scope) class-file front end already
// built and hands to the mapper. It is a plain, cycle-free data
// container: no parsing, no verification.
package class

// Field is one field of a managed class, described exactly by the tuple
// spec.md §3 names: "(owner-class, name, type-descriptor, static?,
// final?, volatile?)".
type Field struct {
	Owner      string
	Name       string
	Descriptor string
	Static     bool
	Final      bool
	Volatile   bool
}

// Class is a read-only view of one managed class: its internal name,
// optional superclass name, and its declared fields in source order
// (field ordering per spec.md §4.3.2 is applied downstream by
// internal/mapper, not stored here).
type Class struct {
	Name    string
	Super   string
	Fields  []Field
	Native  bool // hint the front end sets for a class known to be native-backed
}

// InstanceFields returns the non-static fields of c, in declared order.
func (c *Class) InstanceFields() []Field {
	return filterFields(c.Fields, false)
}

// StaticFields returns the static fields of c, in declared order.
func (c *Class) StaticFields() []Field {
	return filterFields(c.Fields, true)
}

func filterFields(fields []Field, static bool) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Static == static {
			out = append(out, f)
		}
	}
	return out
}
