// Package layout implements the Data Layout Engine (spec.md §4.2): given
// a target triple fixed at construction, it answers store-size,
// alloc-size, and alignment for any internal/ir.TypeID. All operations
// are pure functions of the type and the target; no I/O, no mutation of
// shared state beyond an internal memoization cache.
package layout

import (
	"fortio.org/safecast"

	"jaotc/internal/ir"
	"jaotc/internal/target"
)

// TypeLayout is the resolved ABI layout of one IR type on one Target.
type TypeLayout struct {
	// StoreSize is the number of bytes a naive load/store moves.
	StoreSize int
	// AllocSize is StoreSize rounded up to Align — the spacing between
	// consecutive elements of an array of this type.
	AllocSize int
	// Align is the required alignment boundary in bytes.
	Align int

	// FieldOffsets/FieldAligns are populated for KindStruct only, one
	// entry per field in declaration order.
	FieldOffsets []int
	FieldAligns  []int
}

// Engine computes and caches layouts for one (Target, Interner) pair.
type Engine struct {
	Target target.Target
	Types  *ir.Interner

	cache map[ir.TypeID]cacheEntry
}

type cacheEntry struct {
	layout TypeLayout
	err    error
}

// New creates a layout Engine bound to t and types.
func New(t target.Target, types *ir.Interner) *Engine {
	return &Engine{Target: t, Types: types, cache: make(map[ir.TypeID]cacheEntry, 64)}
}

// AllocSize returns the memory footprint of one value of ty when
// allocated — StoreSize rounded up to Align (spec.md §4.2, glossary).
func (e *Engine) AllocSize(ty ir.TypeID) (int, error) {
	l, err := e.LayoutOf(ty)
	return l.AllocSize, err
}

// StoreSize returns the bytes a naive load/store of ty moves.
func (e *Engine) StoreSize(ty ir.TypeID) (int, error) {
	l, err := e.LayoutOf(ty)
	return l.StoreSize, err
}

// Alignment returns the required alignment boundary for ty.
func (e *Engine) Alignment(ty ir.TypeID) (int, error) {
	l, err := e.LayoutOf(ty)
	return l.Align, err
}

// FieldOffset returns the byte offset of field idx within struct type ty.
func (e *Engine) FieldOffset(ty ir.TypeID, idx int) (int, error) {
	l, err := e.LayoutOf(ty)
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(l.FieldOffsets) {
		return 0, &Error{Kind: ErrFieldIndexOutOfRange, Type: ty}
	}
	return l.FieldOffsets[idx], nil
}

// LayoutOf computes (and memoizes) the full layout of ty. A struct that
// is unsized because it recurses into itself by value (never possible
// for managed classes, whose fields are by-reference except primitives,
// but defended against for a malformed/cyclic class table per spec.md
// §4.2) yields ErrRecursiveUnsized.
func (e *Engine) LayoutOf(ty ir.TypeID) (TypeLayout, error) {
	if entry, ok := e.cache[ty]; ok {
		return entry.layout, entry.err
	}
	state := newVisitState()
	l, err := e.layoutOf(ty, state)
	e.cache[ty] = cacheEntry{layout: l, err: err}
	return l, err
}

type visitState struct {
	onStack map[ir.TypeID]bool
}

func newVisitState() *visitState {
	return &visitState{onStack: make(map[ir.TypeID]bool, 8)}
}

func (e *Engine) layoutOf(ty ir.TypeID, state *visitState) (TypeLayout, error) {
	if ty == ir.NoTypeID {
		return TypeLayout{}, nil
	}
	if state.onStack[ty] {
		return TypeLayout{}, &Error{Kind: ErrRecursiveUnsized, Type: ty}
	}
	t, ok := e.Types.Lookup(ty)
	if !ok {
		return TypeLayout{}, &Error{Kind: ErrUnknownType, Type: ty}
	}

	ptrBytes := e.Target.PointerBytes()
	is64 := ptrBytes == 8

	switch t.Kind {
	case ir.KindVoid:
		return TypeLayout{}, nil

	case ir.KindInteger:
		return integerLayout(t.Bits, is64), nil

	case ir.KindFloat:
		return TypeLayout{StoreSize: 4, AllocSize: 4, Align: 4}, nil

	case ir.KindDouble:
		if is64 {
			return TypeLayout{StoreSize: 8, AllocSize: 8, Align: 8}, nil
		}
		return TypeLayout{StoreSize: 8, AllocSize: 8, Align: 4}, nil

	case ir.KindPointer:
		align := 4
		if is64 {
			align = 8
		}
		return TypeLayout{StoreSize: ptrBytes, AllocSize: ptrBytes, Align: align}, nil

	case ir.KindOpaque:
		return TypeLayout{}, &Error{Kind: ErrOpaqueUndefined, Type: ty}

	case ir.KindStruct:
		state.onStack[ty] = true
		l, err := e.structLayout(ty, state)
		delete(state.onStack, ty)
		return l, err

	case ir.KindArray:
		state.onStack[ty] = true
		l, err := e.arrayLayout(t, state)
		delete(state.onStack, ty)
		return l, err

	case ir.KindFunction:
		// Function types are never stored by value; only Pointer(Function)
		// values exist on the evaluation stack or in a struct field. The
		// engine still answers a query so a caller that mistakenly asks
		// for one gets the pointer-sized answer a function pointer would
		// have, rather than a panic.
		align := 4
		if is64 {
			align = 8
		}
		return TypeLayout{StoreSize: ptrBytes, AllocSize: ptrBytes, Align: align}, nil

	default:
		return TypeLayout{}, &Error{Kind: ErrUnknownType, Type: ty}
	}
}

func integerLayout(bits uint8, is64 bool) TypeLayout {
	switch bits {
	case 1, 8:
		return TypeLayout{StoreSize: 1, AllocSize: 1, Align: 1}
	case 16:
		return TypeLayout{StoreSize: 2, AllocSize: 2, Align: 2}
	case 32:
		return TypeLayout{StoreSize: 4, AllocSize: 4, Align: 4}
	case 64:
		if is64 {
			return TypeLayout{StoreSize: 8, AllocSize: 8, Align: 8}
		}
		return TypeLayout{StoreSize: 8, AllocSize: 8, Align: 4}
	default:
		return TypeLayout{StoreSize: int(bits+7) / 8, AllocSize: int(bits+7) / 8, Align: 1}
	}
}

func (e *Engine) structLayout(ty ir.TypeID, state *visitState) (TypeLayout, error) {
	fields, _ := e.Types.StructFields(ty)
	packed := e.Types.StructPacked(ty)

	if len(fields) == 0 {
		return TypeLayout{Align: 1}, nil
	}

	offsets := make([]int, len(fields))
	aligns := make([]int, len(fields))
	size := 0
	align := 1

	for i, f := range fields {
		fl, err := e.layoutOf(f.Type, state)
		if err != nil {
			return TypeLayout{}, err
		}
		fAlign := fl.Align
		if fAlign <= 0 {
			fAlign = 1
		}
		if !packed {
			size = roundUp(size, fAlign)
		}
		offsets[i] = size
		aligns[i] = fAlign
		size += fl.AllocSize
		if !packed {
			align = maxInt(align, fAlign)
		}
	}
	if packed {
		align = 1
	}

	// A structure's store size includes its trailing padding, so it
	// equals its alloc size.
	alloc := roundUp(size, align)
	return TypeLayout{
		StoreSize:    alloc,
		AllocSize:    alloc,
		Align:        align,
		FieldOffsets: offsets,
		FieldAligns:  aligns,
	}, nil
}

func (e *Engine) arrayLayout(t ir.Type, state *visitState) (TypeLayout, error) {
	elemLayout, err := e.layoutOf(t.Elem, state)
	if err != nil {
		return TypeLayout{}, err
	}
	elemAlign := elemLayout.Align
	if elemAlign <= 0 {
		elemAlign = 1
	}
	stride := roundUp(elemLayout.StoreSize, elemAlign)
	count, cerr := safecast.Conv[int](t.Count)
	if cerr != nil {
		return TypeLayout{}, &Error{Kind: ErrLengthConversion, Type: ir.NoTypeID, Err: cerr}
	}
	size := stride * count
	return TypeLayout{StoreSize: size, AllocSize: size, Align: elemAlign}, nil
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
