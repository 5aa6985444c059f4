package mapper

import (
	"fmt"

	"jaotc/internal/ir"
	"jaotc/internal/layout"
	"jaotc/internal/target"
)

// execEnvSlots is the fixed pointer-sized slot count of the ExecEnv
// structure (spec.md §4.3.5's "a fixed structure of pointer-sized slots
// plus one 32-bit slot"). Pinned at 8 to match the one concrete shape
// the original source gives its Env struct (8 i8* fields + 1 i32),
// recorded as an Open-Question resolution in DESIGN.md rather than a
// free invention.
const execEnvSlots = 8

// Mapper converts managed descriptors and managed classes into
// internal/ir types, using types and lay to resolve sizes/alignments.
type Mapper struct {
	Types  *ir.Interner
	Target target.Target
	Layout *layout.Engine

	objectPtr   ir.TypeID
	envPtr      ir.TypeID
	classHeader ir.TypeID
}

// New builds a Mapper over types, bound to target tgt and layout engine
// lay (lay must itself be bound to the same Types and tgt).
func New(types *ir.Interner, tgt target.Target, lay *layout.Engine) *Mapper {
	m := &Mapper{Types: types, Target: tgt, Layout: lay}
	m.objectPtr = types.Pointer(types.Opaque("Object"))
	m.buildExecEnv()
	m.buildClassHeader()
	return m
}

// ObjectPtr returns the shared Pointer(Object) type used for every
// managed reference value (spec.md §4.3.1's "L...;", "[..." row).
func (m *Mapper) ObjectPtr() ir.TypeID { return m.objectPtr }

// EnvPtr returns the pointer-to-execution-environment type that is
// always the first parameter of every compiled method (spec.md
// glossary: "EnvPtr").
func (m *Mapper) EnvPtr() ir.TypeID { return m.envPtr }

// ClassHeaderType returns the fixed class-header structure type used to
// prefix every static (class-side) layout (spec.md §4.3.4).
func (m *Mapper) ClassHeaderType() ir.TypeID { return m.classHeader }

func (m *Mapper) buildExecEnv() {
	b := m.Types.Builtins()
	fields := make([]ir.StructField, 0, execEnvSlots+1)
	for i := 0; i < execEnvSlots; i++ {
		fields = append(fields, ir.StructField{Name: fmt.Sprintf("slot%d", i), Type: m.Types.Pointer(b.I8)})
	}
	fields = append(fields, ir.StructField{Name: "flags", Type: b.I32})
	env := m.Types.DefineStruct("ExecEnv", fields, false)
	m.envPtr = m.Types.Pointer(env)
}

func (m *Mapper) buildClassHeader() {
	b := m.Types.Builtins()
	// Forward-declare so the super pointer can reference the type being
	// defined, then bind the body (spec.md §4.1's Opaque/DefineStruct
	// forward-declaration contract).
	opaque := m.Types.Opaque("ClassHeader")
	fields := []ir.StructField{
		{Name: "vtable", Type: m.Types.Pointer(m.Types.Opaque("VTable"))},
		{Name: "name", Type: m.Types.Pointer(b.I8)},
		{Name: "instanceSize", Type: b.I32},
		{Name: "super", Type: m.Types.Pointer(opaque)},
	}
	m.classHeader = m.Types.DefineStruct("ClassHeader", fields, false)
}

// StorageType returns the IR type used when a value of descriptor d is
// stored in a field or passed as a method parameter (spec.md §4.3.1's
// "storage" mapping — sub-word integers are not widened).
func (m *Mapper) StorageType(d Descriptor) ir.TypeID {
	b := m.Types.Builtins()
	switch d.Kind {
	case KindBoolean, KindByte:
		return b.I8
	case KindShort, KindChar:
		return b.I16
	case KindInt:
		return b.I32
	case KindLong:
		return b.I64
	case KindFloat:
		return b.Float
	case KindDouble:
		return b.Double
	case KindVoid:
		return b.Void
	case KindReference, KindArray:
		return m.objectPtr
	default:
		return b.Void
	}
}

// LocalType returns the IR type used when a value of descriptor d lives
// on the evaluation stack or in a local slot: identical to StorageType
// except sub-word integers are widened to Integer(32) (spec.md §4.3.1,
// §9 "widening of sub-word integers" — the core exposes only this
// mapping; the front end is responsible for emitting the actual
// extension/truncation instructions).
func (m *Mapper) LocalType(d Descriptor) ir.TypeID {
	ty := m.StorageType(d)
	t, ok := m.Types.Lookup(ty)
	if ok && t.Kind == ir.KindInteger && t.Bits < 32 {
		return m.Types.Builtins().I32
	}
	return ty
}

// SignExtends reports whether loading a local value of descriptor d
// requires sign extension: true for B and S, the two sign-extending
// sub-word primitives (spec.md §4.3.1).
func (d Descriptor) SignExtends() bool {
	return d.Kind == KindByte || d.Kind == KindShort
}

// ZeroExtends reports whether loading a local value of descriptor d
// requires zero extension: true only for C, the sole unsigned primitive
// (spec.md §4.3.1, §8's "isUnsigned" note).
func (d Descriptor) ZeroExtends() bool {
	return d.Kind == KindChar
}
