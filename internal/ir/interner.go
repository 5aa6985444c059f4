package ir

import (
	"fmt"
	"strconv"
	"strings"

	"jaotc/internal/strtab"
)

// typeKey is the structural key for every variant whose payload is itself
// comparable (everything except named/anonymous Structure and Function,
// which carry slices and are deduplicated through nameIndex/shapeIndex
// instead).
type typeKey struct {
	Kind  Kind
	Bits  uint8
	Elem  TypeID
	Count uint32
	Name  uint32
}

// Interner is a hash-consed arena of IR types: every distinct structural
// type is allocated exactly once and addressed by a stable TypeID for the
// lifetime of the Interner. This is the "arena + stable index" model
// spec.md §9 calls for in place of an owning-reference type graph, so a
// struct can hold a pointer to its own type without the Go value cycling.
type Interner struct {
	strings *strtab.Table

	types []Type
	index map[typeKey]TypeID

	structs []structInfo
	fns     []fnInfo

	// nameIndex resolves a named Opaque/Structure to its TypeID so a
	// forward declaration and its later definition share one slot.
	nameIndex map[uint32]TypeID
	// shapeIndex deduplicates anonymous structures and function types,
	// which cannot be embedded directly in a comparable typeKey.
	shapeIndex map[string]TypeID

	builtins Builtins
}

// Builtins caches the TypeIDs of the handful of primitives every
// compilation needs.
type Builtins struct {
	Void   TypeID
	Bool   TypeID // Integer(1)
	I8     TypeID
	I16    TypeID
	I32    TypeID
	I64    TypeID
	Float  TypeID
	Double TypeID
}

// NewInterner creates an empty arena seeded with the primitive builtins.
// strs is the string table used to resolve Opaque/Structure names; callers
// typically share one strtab.Table across the whole compilation.
func NewInterner(strs *strtab.Table) *Interner {
	if strs == nil {
		strs = strtab.New()
	}
	in := &Interner{
		strings:    strs,
		types:      []Type{{Kind: KindInvalid}},
		index:      make(map[typeKey]TypeID, 64),
		nameIndex:  make(map[uint32]TypeID, 16),
		shapeIndex: make(map[string]TypeID, 64),
	}
	in.builtins = Builtins{
		Void:   in.intern(Type{Kind: KindVoid}),
		Bool:   in.Integer(1),
		I8:     in.Integer(8),
		I16:    in.Integer(16),
		I32:    in.Integer(32),
		I64:    in.Integer(64),
		Float:  in.intern(Type{Kind: KindFloat}),
		Double: in.intern(Type{Kind: KindDouble}),
	}
	return in
}

// Builtins returns the cached primitive TypeIDs.
func (in *Interner) Builtins() Builtins { return in.builtins }

// Strings returns the string table backing Opaque/Structure names.
func (in *Interner) Strings() *strtab.Table { return in.strings }

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is not valid within this Interner.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("ir: invalid TypeID")
	}
	return t
}

func (in *Interner) intern(t Type) TypeID {
	key := typeKey{Kind: t.Kind, Bits: t.Bits, Elem: t.Elem, Count: t.Count, Name: t.Name}
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.push(t, key)
}

func (in *Interner) push(t Type, key typeKey) TypeID {
	id := in.pushNoKey(t)
	in.index[key] = id
	return id
}

// pushNoKey allocates a type without registering it in the typeKey index;
// used for anonymous structures and functions, which are deduplicated
// through shapeIndex instead since their payload is not itself comparable.
func (in *Interner) pushNoKey(t Type) TypeID {
	id := TypeID(mustU32(len(in.types), "ir: type arena overflow"))
	in.types = append(in.types, t)
	return id
}

// Void returns the Void type.
func (in *Interner) Void() TypeID { return in.builtins.Void }

// Integer returns Integer(bits). bits must be one of 1, 8, 16, 32, 64.
func (in *Interner) Integer(bits uint8) TypeID {
	return in.intern(Type{Kind: KindInteger, Bits: bits})
}

// Float returns the single-precision float type.
func (in *Interner) Float() TypeID { return in.builtins.Float }

// Double returns the double-precision float type.
func (in *Interner) Double() TypeID { return in.builtins.Double }

// Pointer returns Pointer(elem). elem may be NoTypeID only transiently
// while an Opaque forward declaration is being resolved.
func (in *Interner) Pointer(elem TypeID) TypeID {
	return in.intern(Type{Kind: KindPointer, Elem: elem})
}

// Array returns Array(elem, count).
func (in *Interner) Array(elem TypeID, count uint32) TypeID {
	return in.intern(Type{Kind: KindArray, Elem: elem, Count: count})
}

// Opaque declares (or returns the existing TypeID for) a named, as-yet
// undefined structure. Calling Opaque twice with the same name returns
// the same TypeID; calling DefineStruct later on that TypeID binds a body
// to it without changing its identity, matching spec.md §4.1's "named
// structures may be forward-declared ... and later defined; both
// representations participate in equality by name."
func (in *Interner) Opaque(name string) TypeID {
	nameID := mustU32(in.strings.Intern(name), "ir: string id overflow")
	if id, ok := in.nameIndex[nameID]; ok {
		return id
	}
	slot := in.appendStructInfo(structInfo{})
	id := in.push(Type{Kind: KindOpaque, Name: nameID, Payload: slot}, typeKey{Kind: KindOpaque, Name: nameID})
	in.nameIndex[nameID] = id
	return id
}

// DefineStruct binds fields and packedness to a named structure, either
// completing a prior Opaque forward declaration or creating the name
// fresh. Defining the same name twice with a different shape panics: per
// spec.md §3, "named structures with the same name must be consistent
// within a compilation."
func (in *Interner) DefineStruct(name string, fields []StructField, packed bool) TypeID {
	nameID := mustU32(in.strings.Intern(name), "ir: string id overflow")
	if id, ok := in.nameIndex[nameID]; ok {
		t := in.types[id]
		info := &in.structs[t.Payload]
		if info.Defined {
			if !sameShape(info.Fields, fields) || info.Packed != packed {
				panic(fmt.Sprintf("ir: inconsistent redefinition of structure %q", name))
			}
			return id
		}
		info.Fields = cloneFields(fields)
		info.Packed = packed
		info.Defined = true
		t.Kind = KindStruct
		in.types[id] = t
		return id
	}
	slot := in.appendStructInfo(structInfo{Fields: cloneFields(fields), Packed: packed, Defined: true})
	id := in.push(Type{Kind: KindStruct, Name: nameID, Payload: slot}, typeKey{Kind: KindStruct, Name: nameID})
	in.nameIndex[nameID] = id
	return id
}

// Struct returns an anonymous packed-or-natural structure type, structurally
// deduplicated by its field list and packedness.
func (in *Interner) Struct(fields []StructField, packed bool) TypeID {
	key := shapeKeyStruct(fields, packed)
	if id, ok := in.shapeIndex[key]; ok {
		return id
	}
	slot := in.appendStructInfo(structInfo{Fields: cloneFields(fields), Packed: packed, Defined: true})
	id := in.pushNoKey(Type{Kind: KindStruct, Payload: slot})
	in.shapeIndex[key] = id
	return id
}

// Function returns the Function(result, params, varargs) type,
// structurally deduplicated.
func (in *Interner) Function(result TypeID, params []TypeID, varargs bool) TypeID {
	key := shapeKeyFunc(result, params, varargs)
	if id, ok := in.shapeIndex[key]; ok {
		return id
	}
	slot := mustU32(len(in.fns), "ir: function arena overflow")
	in.fns = append(in.fns, fnInfo{FuncInfo{Params: append([]TypeID(nil), params...), Result: result, Varargs: varargs}})
	id := in.push(Type{Kind: KindFunction, Payload: slot}, typeKey{})
	delete(in.index, typeKey{})
	in.shapeIndex[key] = id
	return id
}

// StructFields returns a copy of the fields of a Structure TypeID.
func (in *Interner) StructFields(id TypeID) ([]StructField, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindStruct {
		return nil, false
	}
	info := &in.structs[t.Payload]
	return cloneFields(info.Fields), true
}

// StructPacked reports whether the Structure TypeID is packed.
func (in *Interner) StructPacked(id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindStruct {
		return false
	}
	return in.structs[t.Payload].Packed
}

// StructName returns the name of a named Structure/Opaque TypeID.
func (in *Interner) StructName(id TypeID) (string, bool) {
	t, ok := in.Lookup(id)
	if !ok || (t.Kind != KindStruct && t.Kind != KindOpaque) || t.Name == 0 {
		return "", false
	}
	return in.strings.Lookup(strtab.ID(t.Name))
}

// FuncInfo returns the signature of a Function TypeID.
func (in *Interner) FuncInfo(id TypeID) (FuncInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindFunction {
		return FuncInfo{}, false
	}
	info := in.fns[t.Payload]
	return FuncInfo{Params: append([]TypeID(nil), info.Params...), Result: info.Result, Varargs: info.Varargs}, true
}

func (in *Interner) appendStructInfo(info structInfo) uint32 {
	slot := mustU32(len(in.structs), "ir: struct arena overflow")
	in.structs = append(in.structs, info)
	return slot
}

func cloneFields(fields []StructField) []StructField {
	if len(fields) == 0 {
		return nil
	}
	return append([]StructField(nil), fields...)
}

func sameShape(a, b []StructField) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Type != b[i].Type {
			return false
		}
	}
	return true
}

func shapeKeyStruct(fields []StructField, packed bool) string {
	var b strings.Builder
	b.WriteString("struct:")
	if packed {
		b.WriteByte('p')
	}
	for _, f := range fields {
		b.WriteByte(';')
		b.WriteString(f.Name)
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(f.Type), 10))
	}
	return b.String()
}

func shapeKeyFunc(result TypeID, params []TypeID, varargs bool) string {
	var b strings.Builder
	b.WriteString("fn:")
	b.WriteString(strconv.FormatUint(uint64(result), 10))
	if varargs {
		b.WriteByte('v')
	}
	for _, p := range params {
		b.WriteByte(';')
		b.WriteString(strconv.FormatUint(uint64(p), 10))
	}
	return b.String()
}
