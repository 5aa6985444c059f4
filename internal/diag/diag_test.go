package diag_test

import (
	"testing"

	"jaotc/internal/diag"
)

func TestBagHasErrorsOnlyAboveThreshold(t *testing.T) {
	b := diag.NewBag()
	b.Add(diag.New(diag.SevInfo, diag.UnknownCode, "C", "", "note"))
	if b.HasErrors() {
		t.Fatal("an info-only bag should not report HasErrors")
	}
	b.Add(diag.Errorf(diag.MapperUnsupportedType, "C", "f", "bad type"))
	if !b.HasErrors() {
		t.Fatal("expected HasErrors after adding a SevError diagnostic")
	}
	if b.HasFatal() {
		t.Fatal("SevError alone should not count as HasFatal")
	}
}

func TestBagSortIsStableByClassThenMember(t *testing.T) {
	b := diag.NewBag()
	b.Add(diag.Errorf(diag.MapperUnsupportedType, "B", "y", "msg"))
	b.Add(diag.Errorf(diag.MapperUnsupportedType, "A", "z", "msg"))
	b.Add(diag.Errorf(diag.MapperUnsupportedType, "A", "x", "msg"))
	b.Sort()
	items := b.Items()
	if items[0].Class != "A" || items[0].Member != "x" {
		t.Fatalf("items[0] = %+v; want A#x first", items[0])
	}
	if items[1].Class != "A" || items[1].Member != "z" {
		t.Fatalf("items[1] = %+v; want A#z second", items[1])
	}
}

func TestBagMerge(t *testing.T) {
	a := diag.NewBag()
	a.Add(diag.Errorf(diag.MapperUnsupportedType, "A", "", "msg"))
	b := diag.NewBag()
	b.Add(diag.Errorf(diag.MapperUnsupportedType, "B", "", "msg"))
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", a.Len())
	}
}
