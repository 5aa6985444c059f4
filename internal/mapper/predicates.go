package mapper

import "jaotc/internal/class"

// IsEnum reports whether c's direct superclass is the enum root. The
// test is one level; deeper is not enum-ness by this rule (spec.md
// §4.3.6).
func (m *Mapper) IsEnum(table *class.Table, c *class.Class) bool {
	return table.IsEnum(c)
}

// IsNativeObject reports whether c transitively extends the
// "NativeObject" marker class (spec.md §4.3.6).
func (m *Mapper) IsNativeObject(table *class.Table, c *class.Class) bool {
	return table.IsNativeObject(c)
}

// IsStruct reports whether c transitively extends the "Struct" marker
// class (spec.md §4.3.6).
func (m *Mapper) IsStruct(table *class.Table, c *class.Class) bool {
	return table.IsStruct(c)
}
