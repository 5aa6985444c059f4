package diag

import "sort"

// Bag accumulates diagnostics across a compilation instead of aborting
// on the first failure, matching spec.md §7's "the core surfaces errors
// as explicit result values ... it does not abort the process."
type Bag struct {
	items []Diagnostic
}

// NewBag returns an empty Bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add appends d.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// HasErrors reports whether any accumulated diagnostic is at least
// SevError.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// HasFatal reports whether any accumulated diagnostic is SevFatal — an
// internal invariant violation that should terminate the whole
// compilation rather than just skip the offending class (spec.md §7's
// "internal invariant violations terminate compilation").
func (b *Bag) HasFatal() bool {
	for _, d := range b.items {
		if d.Severity == SevFatal {
			return true
		}
	}
	return false
}

// Len reports the number of accumulated diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the accumulated diagnostics. Callers must not mutate the
// returned slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends other's diagnostics onto b.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by class, then member, then severity
// (descending), then code — for deterministic CLI output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		a, c := b.items[i], b.items[j]
		if a.Class != c.Class {
			return a.Class < c.Class
		}
		if a.Member != c.Member {
			return a.Member < c.Member
		}
		if a.Severity != c.Severity {
			return a.Severity > c.Severity
		}
		return a.Code < c.Code
	})
}
