package diag

// Code identifies the taxonomy entry spec.md §7 assigns a diagnostic to.
// Numbered in thousand-blocks per producing package, matching the
// teacher's own category-range numbering scheme in internal/diag/codes.go
// (lexical 1000s, syntax 2000s, ...) scaled down to this core's four
// packages.
type Code uint16

const (
	UnknownCode Code = 0

	// Mapper / descriptor-grammar failures (spec.md §7 "malformed
	// descriptor", "unsupported type").
	MapperMalformedDescriptor Code = 1000
	MapperUnsupportedType     Code = 1001
	MapperUnknownClass        Code = 1002

	// Layout failures (spec.md §4.2's error table).
	LayoutOpaqueUndefined    Code = 2000
	LayoutRecursiveUnsized   Code = 2001
	LayoutUnknownType        Code = 2002
	LayoutFieldIndexOOR      Code = 2003

	// Target-triple failures (spec.md §7 "target-triple unsupported").
	TargetUnsupportedTriple Code = 3000

	// Trampoline failures (spec.md §7 "trampoline variant misuse" — these
	// are internal invariant violations and in practice surface as a
	// panic, but a Code exists so a diagnostic can still be recorded if a
	// caller recovers and reports rather than crashing).
	TrampolineVariantMisuse Code = 4000
)

func (c Code) String() string {
	switch c {
	case UnknownCode:
		return "unknown"
	case MapperMalformedDescriptor:
		return "mapper-malformed-descriptor"
	case MapperUnsupportedType:
		return "mapper-unsupported-type"
	case MapperUnknownClass:
		return "mapper-unknown-class"
	case LayoutOpaqueUndefined:
		return "layout-opaque-undefined"
	case LayoutRecursiveUnsized:
		return "layout-recursive-unsized"
	case LayoutUnknownType:
		return "layout-unknown-type"
	case LayoutFieldIndexOOR:
		return "layout-field-index-out-of-range"
	case TargetUnsupportedTriple:
		return "target-unsupported-triple"
	case TrampolineVariantMisuse:
		return "trampoline-variant-misuse"
	default:
		return "unknown"
	}
}
