package mapper

import (
	"fmt"
	"strings"

	"jaotc/internal/ir"
)

// ConstExprKind distinguishes the two null-pointer-indexing constant
// forms spec.md §4.3.6 describes.
type ConstExprKind uint8

const (
	ConstExprSizeOf ConstExprKind = iota
	ConstExprOffsetOf
)

// ConstExpr is a target-independent symbolic IR constant emitted via the
// "null pointer indexing" trick: ptrtoint(getelementptr null[0], idx…,
// to i32). Representing sizes and offsets this way lets the back end
// fold them into link-time constants instead of baking host-computed
// numbers into the emitted code (spec.md §4.3.6).
type ConstExpr struct {
	Kind    ConstExprKind
	Type    ir.TypeID
	Indices []int // OffsetOf only; SizeOf always indexes [1]
}

// String renders the const expression in the pseudo-IR textual form the
// null-pointer-GEP trick is named for. Its exact spelling is not
// contractual — analogous to the IR type algebra's pretty printer
// (spec.md §4.1) — only the (Kind, Type, Indices) tuple is.
func (c ConstExpr) String() string {
	switch c.Kind {
	case ConstExprSizeOf:
		return fmt.Sprintf("ptrtoint(gep(null(%d*), 1) to i32)", c.Type)
	case ConstExprOffsetOf:
		idx := make([]string, len(c.Indices))
		for i, n := range c.Indices {
			idx[i] = fmt.Sprintf("%d", n)
		}
		return fmt.Sprintf("ptrtoint(gep(null(%d*), 0, %s) to i32)", c.Type, strings.Join(idx, ", "))
	default:
		return "<invalid const expr>"
	}
}

// SizeOf emits the symbolic size-of constant for ty (spec.md §4.3.6).
func (m *Mapper) SizeOf(ty ir.TypeID) ConstExpr {
	return ConstExpr{Kind: ConstExprSizeOf, Type: ty}
}

// OffsetOf emits the symbolic offset-of constant for the field path idx
// within ty (spec.md §4.3.6).
func (m *Mapper) OffsetOf(ty ir.TypeID, idx ...int) ConstExpr {
	indices := append([]int{0}, idx...)
	return ConstExpr{Kind: ConstExprOffsetOf, Type: ty, Indices: indices}
}

// FieldPointerPlan is the "reference to the last instruction" spec.md
// §4.3.6 asks field-pointer to return: the pointer type of the final
// bitcast, plus enough information for the (out-of-scope) instruction
// emitter to synthesize the bitcast/gep/bitcast triple. This core stops
// at the plan; lowering it to actual instructions is the emitter's job.
type FieldPointerPlan struct {
	// BytePointerType is Pointer(Integer(8)), the type of the
	// intermediate byte-pointer bitcast.
	BytePointerType ir.TypeID
	// ByteOffset is the byte offset the getelementptr step advances by.
	ByteOffset int
	// ResultType is Pointer(fieldTy), the type of the final bitcast —
	// "a reference to the last" instruction spec.md §4.3.6 calls for.
	ResultType ir.TypeID
}

// FieldPointer synthesizes the (bitcast base to i8*; gep by byte-offset;
// bitcast to field-ty*) plan spec.md §4.3.6 describes.
func (m *Mapper) FieldPointer(byteOffset int, fieldTy ir.TypeID) FieldPointerPlan {
	return FieldPointerPlan{
		BytePointerType: m.Types.Pointer(m.Types.Builtins().I8),
		ByteOffset:      byteOffset,
		ResultType:      m.Types.Pointer(fieldTy),
	}
}
