package mapper

import "jaotc/internal/ir"

// MethodSignature computes the IR function type for a managed instance
// or static method with descriptor desc (spec.md §4.3.5):
//
//	params = [EnvPtr] ++ [ObjectPtr if not static] ++ [IR-type(Pi) ...]
//	return = IR-type(R)
func (m *Mapper) MethodSignature(desc string, static bool) (ir.TypeID, error) {
	return m.functionSignature(desc, static, false)
}

// NativeMethodSignature computes the IR function type for the native
// variant of a method: static native methods also receive the class
// handle (ObjectPtr) as their second parameter, since the native
// prologue needs it to resolve static fields (spec.md §4.3.5).
func (m *Mapper) NativeMethodSignature(desc string, static bool) (ir.TypeID, error) {
	return m.functionSignature(desc, static, true)
}

func (m *Mapper) functionSignature(desc string, static, native bool) (ir.TypeID, error) {
	md, err := ParseDescriptor(desc)
	if err != nil {
		return 0, err
	}
	if md.Kind != KindMethod {
		return 0, &Error{Kind: ErrNotAMethodDescriptor, Detail: desc}
	}

	params := make([]ir.TypeID, 0, len(md.Params)+2)
	params = append(params, m.envPtr)
	if !static {
		params = append(params, m.objectPtr)
	} else if native {
		params = append(params, m.objectPtr)
	}
	for _, p := range md.Params {
		params = append(params, m.StorageType(p))
	}
	ret := m.StorageType(*md.Return)
	return m.Types.Function(ret, params, false), nil
}
