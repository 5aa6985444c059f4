package mapper

import (
	"jaotc/internal/class"
	"jaotc/internal/ir"
)

// InstanceLayout computes the recursive instance layout of c (spec.md
// §4.3.3): the root class contributes an empty parent, each subclass
// appends its own canonically-ordered fields after the parent's full
// layout, tail-padded to the subclass's own most-strict field alignment
// before the subclass's fields are appended. The result is a packed
// structure — mandatory because explicit padding is inserted by hand;
// automatic padding on top of it would double-count. The returned
// LayoutRecipe lets internal/compilation's disk cache rebuild the same
// ir.TypeID against a future, unrelated Interner (see ReplayLayout).
func (m *Mapper) InstanceLayout(table *class.Table, c *class.Class) (ir.TypeID, LayoutRecipe, error) {
	b := &instanceBuilder{mapper: m, table: table}
	offset := 0
	// The outermost call has no subclass of its own asking for tail
	// alignment, so it pads only to its own natural alignment (1 means
	// "no extra tail padding beyond what §4.3.3's per-level bookkeeping
	// already produced"), matching the source program's top-level
	// getInstanceType(...) call.
	return b.build(c, 1, &offset)
}

type instanceBuilder struct {
	mapper *Mapper
	table  *class.Table
}

// build lays out one level of the class chain: parent (if any) nested
// first, then c's own fields each preceded by an explicit byte-pad, then
// tail padding to subClassAlign. offset threads the cumulative byte
// position across the whole recursion, mirroring the source program's
// mutable superSize[0] accumulator.
func (b *instanceBuilder) build(c *class.Class, subClassAlign int, offset *int) (ir.TypeID, LayoutRecipe, error) {
	ordered, err := b.mapper.OrderFields(c.InstanceFields())
	if err != nil {
		return 0, LayoutRecipe{}, err
	}

	// The alignment the parent's tail padding must satisfy is this
	// class's own first (most-strict, since fields are alignment-
	// descending-sorted) field's alignment.
	superAlign := 1
	if len(ordered) > 0 {
		d, err := ParseDescriptor(ordered[0].Descriptor)
		if err != nil {
			return 0, LayoutRecipe{}, err
		}
		superAlign, err = b.mapper.FieldAlignment(d)
		if err != nil {
			return 0, LayoutRecipe{}, err
		}
	}

	var fields []ir.StructField
	var slots []LayoutSlot
	if c.Super != "" {
		if parent, ok := b.table.Lookup(c.Super); ok {
			parentTy, parentRecipe, err := b.build(parent, superAlign, offset)
			if err != nil {
				return 0, LayoutRecipe{}, err
			}
			fields = append(fields, ir.StructField{Name: "$super", Type: parentTy})
			slots = append(slots, LayoutSlot{Name: "$super", Super: &parentRecipe})
		}
	}

	i8 := b.mapper.Types.Builtins().I8
	for _, f := range ordered {
		d, err := ParseDescriptor(f.Descriptor)
		if err != nil {
			return 0, LayoutRecipe{}, err
		}
		falign, err := b.mapper.FieldAlignment(d)
		if err != nil {
			return 0, LayoutRecipe{}, err
		}
		fsize, err := b.mapper.FieldSize(d)
		if err != nil {
			return 0, LayoutRecipe{}, err
		}
		if pad := padFor(*offset, falign); pad > 0 {
			padBytes := mustU32(pad, "mapper: field pad overflow")
			fields = append(fields, ir.StructField{Name: "$pad", Type: b.mapper.Types.Array(i8, padBytes)})
			slots = append(slots, LayoutSlot{Name: "$pad", PadBytes: padBytes})
			*offset += pad
		}
		fields = append(fields, ir.StructField{Name: f.Name, Type: b.mapper.StorageType(d)})
		slots = append(slots, LayoutSlot{Name: f.Name, Descriptor: f.Descriptor})
		*offset += fsize
	}

	if pad := padFor(*offset, subClassAlign); pad > 0 {
		padBytes := mustU32(pad, "mapper: tail pad overflow")
		fields = append(fields, ir.StructField{Name: "$tailpad", Type: b.mapper.Types.Array(i8, padBytes)})
		slots = append(slots, LayoutSlot{Name: "$tailpad", PadBytes: padBytes})
		*offset += pad
	}

	return b.mapper.Types.Struct(fields, true), LayoutRecipe{Packed: true, Slots: slots}, nil
}

// padFor returns the number of bytes needed to advance offset to the
// next multiple of align (0 if already aligned or align <= 1).
func padFor(offset, align int) int {
	if align <= 1 {
		return 0
	}
	rem := offset % align
	if rem == 0 {
		return 0
	}
	return align - rem
}
