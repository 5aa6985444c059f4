package trampoline

import "sort"

// Set is a hash-consed, deterministically ordered collection of
// trampolines: a mathematical set under tuple equality (spec.md §4.4's
// "the trampoline set is a mathematical set; no duplicates under the
// tuple equality"), with iteration in the total order §4.4 fixes.
//
// Grounded on the teacher's internal/mono.InstantiationMap: a
// map-backed store for O(1) dedup, dumped through a cached
// sort.SliceStable slice for deterministic iteration (mono/print.go).
type Set struct {
	byKey  map[key]Trampoline
	sorted []Trampoline // nil when stale; rebuilt lazily by Sorted.
}

// NewSet returns an empty trampoline set.
func NewSet() *Set {
	return &Set{byKey: make(map[key]Trampoline)}
}

// Add inserts t, deduping under the tuple-equality rule. Re-adding an
// already-present trampoline is a no-op, matching a mathematical set's
// union operation (spec.md §4.4's merge-is-commutative-and-associative
// requirement: Add is how per-class subsets get unioned).
func (s *Set) Add(t Trampoline) {
	k := t.key()
	if _, ok := s.byKey[k]; ok {
		return
	}
	s.byKey[k] = t
	s.sorted = nil
}

// Merge unions o into s (spec.md §4.4: "the merge is a set union ... it
// commutes and associates, so ordering of merges is irrelevant to the
// result"). Safe to call with a freshly-built per-class Set.
func (s *Set) Merge(o *Set) {
	for _, t := range o.byKey {
		s.Add(t)
	}
}

// Len reports the number of distinct trampolines in s.
func (s *Set) Len() int { return len(s.byKey) }

// Has reports whether t (by tuple equality) is already in s.
func (s *Set) Has(t Trampoline) bool {
	_, ok := s.byKey[t.key()]
	return ok
}

// Sorted returns s's trampolines in the total order spec.md §4.4 fixes:
// "the final serialized order is imposed by the total order ... not by
// merge order." The slice is cached and only rebuilt after a mutation.
func (s *Set) Sorted() []Trampoline {
	if s.sorted == nil {
		out := make([]Trampoline, 0, len(s.byKey))
		for _, t := range s.byKey {
			out = append(out, t)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].less(out[j]) })
		s.sorted = out
	}
	return s.sorted
}
