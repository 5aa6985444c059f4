package mapper

import (
	"jaotc/internal/class"
	"jaotc/internal/ir"
)

// StaticLayout computes the class-side (static) layout of c (spec.md
// §4.3.4): identical ordering and padding rules as InstanceLayout but
// without a parent chain, wrapped inside a two-field structure
// {ClassHeader, {static-fields...}} so every emitted class object
// begins with the shared class header. The returned LayoutRecipe lets
// internal/compilation's disk cache rebuild the same ir.TypeID against
// a future, unrelated Interner (see ReplayLayout).
func (m *Mapper) StaticLayout(c *class.Class) (ir.TypeID, LayoutRecipe, error) {
	ordered, err := m.OrderFields(c.StaticFields())
	if err != nil {
		return 0, LayoutRecipe{}, err
	}

	i8 := m.Types.Builtins().I8
	var fields []ir.StructField
	var slots []LayoutSlot
	offset := 0
	for _, f := range ordered {
		d, err := ParseDescriptor(f.Descriptor)
		if err != nil {
			return 0, LayoutRecipe{}, err
		}
		falign, err := m.FieldAlignment(d)
		if err != nil {
			return 0, LayoutRecipe{}, err
		}
		fsize, err := m.FieldSize(d)
		if err != nil {
			return 0, LayoutRecipe{}, err
		}
		if pad := padFor(offset, falign); pad > 0 {
			padBytes := mustU32(pad, "mapper: field pad overflow")
			fields = append(fields, ir.StructField{Name: "$pad", Type: m.Types.Array(i8, padBytes)})
			slots = append(slots, LayoutSlot{Name: "$pad", PadBytes: padBytes})
			offset += pad
		}
		fields = append(fields, ir.StructField{Name: f.Name, Type: m.StorageType(d)})
		slots = append(slots, LayoutSlot{Name: f.Name, Descriptor: f.Descriptor})
		offset += fsize
	}

	statics := m.Types.Struct(fields, true)
	staticsRecipe := LayoutRecipe{Packed: true, Slots: slots}

	ty := m.Types.Struct([]ir.StructField{
		{Name: "header", Type: m.classHeader},
		{Name: "statics", Type: statics},
	}, false)
	recipe := LayoutRecipe{Slots: []LayoutSlot{
		{Name: "header", Header: true},
		{Name: "statics", Super: &staticsRecipe},
	}}
	return ty, recipe, nil
}
