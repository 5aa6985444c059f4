package mapper

import (
	"sort"

	"jaotc/internal/class"
	"jaotc/internal/ir"
)

// orderedField pairs a managed field with the properties its sort key
// needs, computed once up front so the comparator does no I/O.
type orderedField struct {
	field    class.Field
	desc     Descriptor
	isRef    bool
	align    int
	size     int
	kindName string
}

// OrderFields sorts fields into the canonical, declaration-order-
// independent layout order of spec.md §4.3.2:
//
//  1. references first (pointers precede all primitives)
//  2. among remaining fields, higher alignment first
//  3. among equal alignment, larger size first
//  4. among equal size, by low-level IR type-tag name ascending
//  5. final tiebreaker: field name ascending
//
// The sort is stable, so it is idempotent under repeated application
// (spec.md §8 property 5: sort(sort(x)) = sort(x)).
func (m *Mapper) OrderFields(fields []class.Field) ([]class.Field, error) {
	prepared := make([]orderedField, len(fields))
	for i, f := range fields {
		d, err := ParseDescriptor(f.Descriptor)
		if err != nil {
			return nil, err
		}
		align, err := m.FieldAlignment(d)
		if err != nil {
			return nil, err
		}
		size, err := m.FieldSize(d)
		if err != nil {
			return nil, err
		}
		ty := m.StorageType(d)
		t, _ := m.Types.Lookup(ty)
		prepared[i] = orderedField{
			field:    f,
			desc:     d,
			isRef:    d.Kind == KindReference || d.Kind == KindArray,
			align:    align,
			size:     size,
			kindName: t.Kind.String(),
		}
	}

	sort.SliceStable(prepared, func(i, j int) bool {
		a, b := prepared[i], prepared[j]
		if a.isRef != b.isRef {
			return a.isRef // references first
		}
		if a.align != b.align {
			return a.align > b.align // higher alignment first
		}
		if a.size != b.size {
			return a.size > b.size // larger size first
		}
		if a.kindName != b.kindName {
			return a.kindName < b.kindName // type-tag name ascending
		}
		return a.field.Name < b.field.Name // field name ascending
	})

	out := make([]class.Field, len(prepared))
	for i, p := range prepared {
		out[i] = p.field
	}
	return out, nil
}

// fieldKindName returns the tie-break token OrderFields uses for an IR
// kind (the same string ir.Kind.String gives).
func fieldKindName(k ir.Kind) string { return k.String() }
