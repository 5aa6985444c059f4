package strtab_test

import (
	"testing"

	"jaotc/internal/strtab"
)

func TestInternIsIdempotent(t *testing.T) {
	tab := strtab.New()
	a := tab.Intern("com/example/Foo")
	b := tab.Intern("com/example/Foo")
	if a != b {
		t.Fatalf("interning the same string twice gave different IDs: %d vs %d", a, b)
	}
}

func TestInternDistinctStringsGetDistinctIDs(t *testing.T) {
	tab := strtab.New()
	a := tab.Intern("com/example/Foo")
	b := tab.Intern("com/example/Bar")
	if a == b {
		t.Fatalf("distinct strings collided on ID %d", a)
	}
}

func TestEmptyStringIsAlwaysID0(t *testing.T) {
	tab := strtab.New()
	if id := tab.Intern(""); id != 0 {
		t.Fatalf("Intern(\"\") = %d, want 0", id)
	}
	if _, ok := tab.Lookup(strtab.ID(0)); ok {
		t.Fatalf("Lookup(0) should report not-ok for the reserved empty slot")
	}
}

func TestLookupRoundTrips(t *testing.T) {
	tab := strtab.New()
	id := tab.Intern("com/example/Foo")
	got, ok := tab.Lookup(strtab.ID(id))
	if !ok || got != "com/example/Foo" {
		t.Fatalf("Lookup(%d) = %q, %v, want %q, true", id, got, ok, "com/example/Foo")
	}
}
