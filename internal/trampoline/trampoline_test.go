package trampoline_test

import (
	"testing"

	"jaotc/internal/ir"
	"jaotc/internal/layout"
	"jaotc/internal/mapper"
	"jaotc/internal/target"
	"jaotc/internal/trampoline"
)

func newMapper(t *testing.T) *mapper.Mapper {
	t.Helper()
	tgt, err := target.Parse("x86_64-unknown-linux")
	if err != nil {
		t.Fatal(err)
	}
	in := ir.NewInterner(nil)
	lay := layout.New(tgt, in)
	return mapper.New(in, tgt, lay)
}

func TestMakePanicsOnMissingRequiredField(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a trampoline missing MemberDescriptor")
		}
	}()
	trampoline.Make(trampoline.Trampoline{
		Kind:         trampoline.InvokeVirtual,
		CallingClass: "a/A",
		TargetClass:  "b/B",
		MemberName:   "run",
	})
}

func TestMakeAcceptsWellFormedTuple(t *testing.T) {
	tr := trampoline.Make(trampoline.Trampoline{
		Kind:         trampoline.New,
		CallingClass: "a/A",
		TargetClass:  "b/B",
	})
	if tr.Kind != trampoline.New {
		t.Fatalf("Kind = %v; want New", tr.Kind)
	}
}

// TestTrampolineOrdering pins spec.md §8 scenario 8: two BridgeCall
// trampolines with identical calling/target classes order by
// (methodName, methodDesc) lexicographically.
func TestTrampolineOrdering(t *testing.T) {
	a := trampoline.Make(trampoline.Trampoline{
		Kind: trampoline.BridgeCall, CallingClass: "a/A", TargetClass: "b/B",
		MemberName: "run", MemberDescriptor: "()V",
	})
	b := trampoline.Make(trampoline.Trampoline{
		Kind: trampoline.BridgeCall, CallingClass: "a/A", TargetClass: "b/B",
		MemberName: "run", MemberDescriptor: "(I)V",
	})
	c := trampoline.Make(trampoline.Trampoline{
		Kind: trampoline.BridgeCall, CallingClass: "a/A", TargetClass: "b/B",
		MemberName: "stop", MemberDescriptor: "()V",
	})

	s := trampoline.NewSet()
	s.Add(b)
	s.Add(c)
	s.Add(a)
	got := s.Sorted()
	if len(got) != 3 {
		t.Fatalf("len(Sorted()) = %d; want 3", len(got))
	}
	want := []string{"run()V", "run(I)V", "stop()V"}
	for i, w := range want {
		gotName := got[i].MemberName + got[i].MemberDescriptor
		if gotName != w {
			t.Fatalf("Sorted()[%d] = %s; want %s", i, gotName, w)
		}
	}
}

// TestSetDedupIsAMathematicalSet pins spec.md §4.4's "no duplicates
// under the tuple equality" invariant.
func TestSetDedupIsAMathematicalSet(t *testing.T) {
	s := trampoline.NewSet()
	t1 := trampoline.Make(trampoline.Trampoline{
		Kind: trampoline.InvokeStatic, CallingClass: "a/A", TargetClass: "b/B",
		MemberName: "run", MemberDescriptor: "()V",
	})
	t2 := trampoline.Make(trampoline.Trampoline{
		Kind: trampoline.InvokeStatic, CallingClass: "a/A", TargetClass: "b/B",
		MemberName: "run", MemberDescriptor: "()V",
	})
	s.Add(t1)
	s.Add(t2)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d; want 1 (t1 and t2 are tuple-equal)", s.Len())
	}
}

// TestMergeIsCommutative pins spec.md §4.4: "the merge is a set union
// ... it commutes and associates, so ordering of merges is irrelevant."
func TestMergeIsCommutative(t *testing.T) {
	a1 := trampoline.Make(trampoline.Trampoline{Kind: trampoline.New, CallingClass: "x", TargetClass: "A"})
	a2 := trampoline.Make(trampoline.Trampoline{Kind: trampoline.New, CallingClass: "x", TargetClass: "B"})

	left := trampoline.NewSet()
	left.Add(a1)
	right := trampoline.NewSet()
	right.Add(a2)
	left.Merge(right)

	left2 := trampoline.NewSet()
	left2.Add(a2)
	right2 := trampoline.NewSet()
	right2.Add(a1)
	left2.Merge(right2)

	if len(left.Sorted()) != len(left2.Sorted()) {
		t.Fatalf("merge order changed set size")
	}
	for i := range left.Sorted() {
		if left.Sorted()[i] != left2.Sorted()[i] {
			t.Fatalf("merge order changed iteration order at %d", i)
		}
	}
}

func TestSymbolIsStableAndInjective(t *testing.T) {
	a := trampoline.Make(trampoline.Trampoline{
		Kind: trampoline.BridgeCall, CallingClass: "a/A", TargetClass: "b/B",
		MemberName: "run", MemberDescriptor: "()V",
	})
	b := trampoline.Make(trampoline.Trampoline{
		Kind: trampoline.BridgeCall, CallingClass: "a/A", TargetClass: "b/B",
		MemberName: "run", MemberDescriptor: "(I)V",
	})
	if a.Symbol() != a.Symbol() {
		t.Fatal("Symbol() is not stable across calls")
	}
	if a.Symbol() == b.Symbol() {
		t.Fatalf("distinct trampolines mangled to the same symbol: %q", a.Symbol())
	}
}

func TestSignatureInstanceInvoke(t *testing.T) {
	m := newMapper(t)
	tr := trampoline.Make(trampoline.Trampoline{
		Kind: trampoline.InvokeVirtual, CallingClass: "a/A", TargetClass: "b/B",
		MemberName: "run", MemberDescriptor: "(I)V",
	})
	sig, err := tr.Signature(m)
	if err != nil {
		t.Fatal(err)
	}
	fi, ok := m.Types.FuncInfo(sig)
	if !ok {
		t.Fatal("Signature() did not return a function type")
	}
	if len(fi.Params) != 3 {
		t.Fatalf("params = %v; want 3 (EnvPtr, ObjectPtr, I32)", fi.Params)
	}
}

func TestSignatureGetField(t *testing.T) {
	m := newMapper(t)
	tr := trampoline.Make(trampoline.Trampoline{
		Kind: trampoline.GetField, CallingClass: "a/A", TargetClass: "b/B",
		MemberName: "x", MemberDescriptor: "I",
	})
	sig, err := tr.Signature(m)
	if err != nil {
		t.Fatal(err)
	}
	fi, ok := m.Types.FuncInfo(sig)
	if !ok {
		t.Fatal("Signature() did not return a function type")
	}
	if len(fi.Params) != 2 {
		t.Fatalf("params = %v; want 2 (EnvPtr, ObjectPtr)", fi.Params)
	}
	if fi.Result != m.Types.Builtins().I32 {
		t.Errorf("result = %d; want I32", fi.Result)
	}
}

func TestSignatureBridgeCallUsesNativeConvention(t *testing.T) {
	m := newMapper(t)
	tr := trampoline.Make(trampoline.Trampoline{
		Kind: trampoline.BridgeCall, CallingClass: "a/A", TargetClass: "b/B",
		MemberName: "run", MemberDescriptor: "(I)V", Static: true,
	})
	sig, err := tr.Signature(m)
	if err != nil {
		t.Fatal(err)
	}
	fi, ok := m.Types.FuncInfo(sig)
	if !ok {
		t.Fatal("Signature() did not return a function type")
	}
	if len(fi.Params) != 3 {
		t.Fatalf("params = %v; want 3 (EnvPtr, ObjectPtr class handle, I32)", fi.Params)
	}
	if fi.Params[1] != m.ObjectPtr() {
		t.Errorf("params[1] = %d; want ObjectPtr (native static convention still passes a handle)", fi.Params[1])
	}
}
