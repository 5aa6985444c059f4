package ir

import "fmt"

// Kind enumerates every variant of the low-level IR type algebra.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindInteger
	KindFloat
	KindDouble
	KindPointer
	KindOpaque
	KindStruct
	KindFunction
	KindArray
)

// String returns the canonical spelling of the kind's variant discriminant.
// This spelling is used as a tie-breaker token by the field-ordering rules
// in package mapper — it must stay stable once released (spec.md §9).
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindPointer:
		return "pointer"
	case KindOpaque:
		return "opaque"
	case KindStruct:
		return "struct"
	case KindFunction:
		return "function"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}
