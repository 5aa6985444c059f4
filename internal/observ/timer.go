// Package observ times the phases of a compilation run. Unlike a
// general-purpose stopwatch keyed by arbitrary names, phases are
// identified by a small closed PhaseKind enum tied to
// internal/compilation's per-class pipeline (cache lookup, layout
// computation, trampoline merge, cache write), and a Timer is safe for
// concurrent Begin/End calls since internal/compilation.Compile times
// each class's work from its own errgroup goroutine against one shared
// Timer.
package observ

import (
	"fmt"
	"sync"
	"time"
)

// PhaseKind identifies one stage of internal/compilation.Compile's
// per-class pipeline.
type PhaseKind uint8

const (
	PhaseUnknown PhaseKind = iota
	PhaseCacheLookup
	PhaseLayoutCompute
	PhaseTrampolineMerge
	PhaseCacheWrite
)

// String returns the canonical spelling used in Summary's output.
func (k PhaseKind) String() string {
	switch k {
	case PhaseCacheLookup:
		return "cache-lookup"
	case PhaseLayoutCompute:
		return "layout-compute"
	case PhaseTrampolineMerge:
		return "trampoline-merge"
	case PhaseCacheWrite:
		return "cache-write"
	default:
		return "unknown"
	}
}

// phase records one timed occurrence of a PhaseKind.
type phase struct {
	Kind  PhaseKind
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer accumulates phase timings across a compilation run. Every class
// in internal/compilation's errgroup fan-out begins and ends its own
// cache-lookup/layout-compute/cache-write occurrences on the same Timer
// from its own goroutine, so Begin/End take a lock.
type Timer struct {
	mu     sync.Mutex
	phases []phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]phase, 0, 8)} }

// Begin starts a new occurrence of kind and returns a handle for End.
func (t *Timer) Begin(kind PhaseKind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, phase{Kind: kind, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes the occurrence idx names, attaching an optional note
// (e.g. a class name, for Summary's output).
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Summary returns a human-readable breakdown, one line per PhaseKind
// that occurred at least once, plus a grand total.
func (t *Timer) Summary() string {
	report := t.Report()
	out := "timings:\n"
	for _, p := range report.Phases {
		out += fmt.Sprintf("  %-20s %5d occ %9.2f ms\n", p.Kind, p.Count, p.TotalMS)
	}
	out += fmt.Sprintf("  %-20s %9.2f ms\n", "total", report.TotalMS)
	return out
}

// PhaseReport is one PhaseKind's aggregated timing across every
// occurrence recorded during the run — internal/compilation begins a
// fresh cache-lookup/layout-compute/cache-write occurrence per class, so
// a busy kind accumulates one Count per class that passed through it.
type PhaseReport struct {
	Kind    PhaseKind `json:"kind"`
	Count   int       `json:"count"`
	TotalMS float64   `json:"total_ms"`
}

// Report is the aggregated, JSON-serializable view of a Timer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report aggregates every recorded occurrence by PhaseKind, in first-seen
// order, and computes the grand total across all of them.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}

	agg := make(map[PhaseKind]*PhaseReport, 4)
	order := make([]PhaseKind, 0, 4)
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		pr, ok := agg[p.Kind]
		if !ok {
			pr = &PhaseReport{Kind: p.Kind}
			agg[p.Kind] = pr
			order = append(order, p.Kind)
		}
		pr.Count++
		pr.TotalMS += durationToMillis(p.Dur)
	}

	phases := make([]PhaseReport, len(order))
	for i, k := range order {
		phases[i] = *agg[k]
	}
	return Report{TotalMS: durationToMillis(total), Phases: phases}
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
