package mapper

import (
	"errors"

	"jaotc/internal/ir"
)

var errEmptyLayoutSlot = errors.New("mapper: layout slot has no header, super, pad, or descriptor set")

// LayoutRecipe is a serializable description of one struct level of an
// instance or static layout: enough to rebuild the exact same ir.TypeID
// shape against any Interner without re-running field ordering or
// alignment/size computation, both already baked into the recipe by
// InstanceLayout/StaticLayout. This exists because ir.TypeID values are
// only meaningful relative to the Interner that produced them
// (internal/ir.Interner.Lookup indexes straight into its own arena) —
// internal/compilation's disk cache must persist this instead of a raw
// TypeID if a cache hit is to mean anything against the fresh Interner
// a later process builds.
type LayoutRecipe struct {
	Packed bool
	Slots  []LayoutSlot
}

// LayoutSlot is one field slot in a LayoutRecipe. Exactly one of Header,
// Super, PadBytes (>0), or Descriptor (!="") applies, in that priority
// order, mirroring the four kinds of ir.StructField that
// InstanceLayout/StaticLayout ever emit: the shared class header, a
// nested struct ($super or the statics body), an explicit pad/tailpad
// array, or a real field routed through StorageType.
type LayoutSlot struct {
	Name       string
	Header     bool
	Super      *LayoutRecipe
	PadBytes   uint32
	Descriptor string
}

// ReplayLayout rebuilds r's ir.TypeID against m's Interner. Since
// Types.Struct/Types.Array/StorageType are all pure, content-addressed
// constructions, replaying a recipe captured from one Interner against
// a different one (with the same target and the same deterministic
// Mapper.New bootstrap order) yields a structurally identical type,
// not merely an equal-looking one.
func (m *Mapper) ReplayLayout(r LayoutRecipe) (ir.TypeID, error) {
	i8 := m.Types.Builtins().I8
	fields := make([]ir.StructField, 0, len(r.Slots))
	for _, slot := range r.Slots {
		switch {
		case slot.Header:
			fields = append(fields, ir.StructField{Name: slot.Name, Type: m.classHeader})
		case slot.Super != nil:
			nested, err := m.ReplayLayout(*slot.Super)
			if err != nil {
				return 0, err
			}
			fields = append(fields, ir.StructField{Name: slot.Name, Type: nested})
		case slot.PadBytes > 0:
			fields = append(fields, ir.StructField{Name: slot.Name, Type: m.Types.Array(i8, slot.PadBytes)})
		case slot.Descriptor != "":
			d, err := ParseDescriptor(slot.Descriptor)
			if err != nil {
				return 0, err
			}
			fields = append(fields, ir.StructField{Name: slot.Name, Type: m.StorageType(d)})
		default:
			return 0, errEmptyLayoutSlot
		}
	}
	return m.Types.Struct(fields, r.Packed), nil
}
