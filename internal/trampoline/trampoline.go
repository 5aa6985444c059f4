// Package trampoline implements the Trampoline Model: a family of
// tagged linkage records forming an ordered, hash-consed set, each
// yielding exactly one uniquely mangled symbol name (spec.md §4.4).
//
// Grounded on the teacher's internal/mono package: InstantiationMap's
// tuple-keyed dedup and mono/print.go's sort.SliceStable over
// (Kind, Sym, TypeArgs) are the direct model for Set's dedup and total
// order, generalized from monomorphization instantiations to linkage
// trampolines. The original_source/ BridgeCall.java class hierarchy
// (compareTo chain, hashCode/equals, toString delegating to a symbol
// function) is replaced per spec.md §9's redesign flag with the single
// tagged struct below.
package trampoline

import (
	"fmt"

	"jaotc/internal/ir"
	"jaotc/internal/mangle"
	"jaotc/internal/mapper"
)

// Trampoline is one symbolic linkage stub: a tagged tuple plus whichever
// optional fields its Kind requires. All fields beyond Kind are shared
// payload — spec.md §9's "shared tuple becomes common payload" redesign
// of the original's class hierarchy.
type Trampoline struct {
	Kind Kind

	CallingClass     string
	TargetClass      string
	MemberName       string
	MemberDescriptor string
	Static           bool
}

// Make constructs and validates a Trampoline, panicking if a tuple field
// its Kind requires is missing. This is "trampoline variant misuse"
// (spec.md §7): an internal invariant violation, not a recoverable
// diagnostic, because it can only be triggered by a caller inside this
// module passing an inconsistent tuple — never by untrusted input.
func Make(t Trampoline) Trampoline {
	req := t.Kind.requires()
	missing := func(name string) {
		panic(fmt.Sprintf("trampoline variant misuse: %s trampoline missing required field %s", t.Kind, name))
	}
	if req.callingClass && t.CallingClass == "" {
		missing("CallingClass")
	}
	if req.targetClass && t.TargetClass == "" {
		missing("TargetClass")
	}
	if req.memberName && t.MemberName == "" {
		missing("MemberName")
	}
	if req.memberDesc && t.MemberDescriptor == "" {
		missing("MemberDescriptor")
	}
	return t
}

// key is the tuple Set dedups and indexes by — every field except
// computed ones (there are none yet, but the original's BridgeCall
// separates identity fields from cached hashCode/symbol the same way).
type key struct {
	kind             Kind
	callingClass     string
	targetClass      string
	memberName       string
	memberDescriptor string
	static           bool
}

func (t Trampoline) key() key {
	return key{t.Kind, t.CallingClass, t.TargetClass, t.MemberName, t.MemberDescriptor, t.Static}
}

// less implements the total order spec.md §4.4 fixes: kind tag, then
// calling-class, then target-class, then member-name, then
// member-descriptor, lexicographically, nulls (the empty string) before
// non-nulls — which plain Go string comparison already gives, since "" is
// lexicographically smallest. Static (false before true) breaks the last
// tie, since it is part of the Set key.
func (t Trampoline) less(o Trampoline) bool {
	if t.Kind != o.Kind {
		return t.Kind < o.Kind
	}
	if t.CallingClass != o.CallingClass {
		return t.CallingClass < o.CallingClass
	}
	if t.TargetClass != o.TargetClass {
		return t.TargetClass < o.TargetClass
	}
	if t.MemberName != o.MemberName {
		return t.MemberName < o.MemberName
	}
	if t.MemberDescriptor != o.MemberDescriptor {
		return t.MemberDescriptor < o.MemberDescriptor
	}
	return !t.Static && o.Static
}

// Symbol delegates to internal/mangle to produce the stable, injective,
// valid-linker-symbol name spec.md §4.4 requires (kept in a separate
// package since the mangling scheme is independently ABI-versioned).
func (t Trampoline) Symbol() string {
	static := "0"
	if t.Static {
		static = "1"
	}
	return mangle.Encode(t.Kind.tag(), t.CallingClass, t.TargetClass, t.MemberName, t.MemberDescriptor, static)
}

// Signature computes the IR function type of t's emitted stub (spec.md
// §4.4's "Function-type projection"). Kind.isNativeSignature reports
// whether t uses the native calling convention (receiver always passed,
// even for static members, because the native calling convention needs
// the class handle) instead of the managed signature from §4.3.5.
// Field-access and class-reference kinds have no managed-method
// descriptor to parse, so their stub signatures are assembled directly
// from EnvPtr/ObjectPtr and the field's storage type.
func (t Trampoline) Signature(m *mapper.Mapper) (ir.TypeID, error) {
	if t.Kind.isNativeSignature() {
		return m.NativeMethodSignature(t.MemberDescriptor, t.Static)
	}

	switch t.Kind {
	case InvokeVirtual, InvokeSpecial, InvokeInterface:
		return m.MethodSignature(t.MemberDescriptor, false)
	case InvokeStatic:
		return m.MethodSignature(t.MemberDescriptor, true)
	case GetField:
		fieldTy, err := t.fieldStorageType(m)
		if err != nil {
			return 0, err
		}
		return m.Types.Function(fieldTy, []ir.TypeID{m.EnvPtr(), m.ObjectPtr()}, false), nil
	case PutField:
		fieldTy, err := t.fieldStorageType(m)
		if err != nil {
			return 0, err
		}
		void := m.Types.Builtins().Void
		return m.Types.Function(void, []ir.TypeID{m.EnvPtr(), m.ObjectPtr(), fieldTy}, false), nil
	case GetStatic:
		fieldTy, err := t.fieldStorageType(m)
		if err != nil {
			return 0, err
		}
		return m.Types.Function(fieldTy, []ir.TypeID{m.EnvPtr()}, false), nil
	case PutStatic:
		fieldTy, err := t.fieldStorageType(m)
		if err != nil {
			return 0, err
		}
		void := m.Types.Builtins().Void
		return m.Types.Function(void, []ir.TypeID{m.EnvPtr(), fieldTy}, false), nil
	case LdcClass, New:
		return m.Types.Function(m.ObjectPtr(), []ir.TypeID{m.EnvPtr()}, false), nil
	case Checkcast:
		return m.Types.Function(m.ObjectPtr(), []ir.TypeID{m.EnvPtr(), m.ObjectPtr()}, false), nil
	case Instanceof:
		return m.Types.Function(m.Types.Builtins().I8, []ir.TypeID{m.EnvPtr(), m.ObjectPtr()}, false), nil
	case NewArray:
		return m.Types.Function(m.ObjectPtr(), []ir.TypeID{m.EnvPtr(), m.Types.Builtins().I32}, false), nil
	default:
		return 0, fmt.Errorf("trampoline: kind %s has no signature projection", t.Kind)
	}
}

// fieldStorageType parses t.MemberDescriptor as a plain field descriptor
// (not a method descriptor — field-access and class-reference kinds
// never carry parentheses) and maps it to its storage IR type.
func (t Trampoline) fieldStorageType(m *mapper.Mapper) (ir.TypeID, error) {
	d, err := mapper.ParseDescriptor(t.MemberDescriptor)
	if err != nil {
		return 0, err
	}
	return m.StorageType(d), nil
}
