// Package compilation orchestrates per-class layout and trampoline
// computation across a whole set of managed classes (spec.md §5).
//
// Grounded on the teacher's internal/driver.ParseDir/TokenizeDir:
// errgroup-bounded fan-out over a fixed input list writing into an
// index-addressed results slice (no mutex needed there because each
// goroutine owns a disjoint slice index), plus a single shared mutable
// resource — here internal/ir's interner, there source.Interner and
// ast.Builder — guarded by one mutex for the operations that actually
// mutate it. The on-disk cache follows internal/driver.DiskCache
// (cache.go, this package).
package compilation

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"jaotc/internal/class"
	"jaotc/internal/diag"
	"jaotc/internal/ir"
	"jaotc/internal/layout"
	"jaotc/internal/mapper"
	"jaotc/internal/observ"
	"jaotc/internal/target"
	"jaotc/internal/trampoline"
)

// ClassWork is one class's compilation input: the class itself, its raw
// classfile bytes (for the cache digest), and the trampolines a
// (out-of-scope) bytecode scan discovered references to within it.
type ClassWork struct {
	Class       *class.Class
	RawBytes    []byte
	Trampolines []trampoline.Trampoline
}

// ClassResult is one class's computed layout.
type ClassResult struct {
	ClassName      string
	InstanceLayout ir.TypeID
	StaticLayout   ir.TypeID
	FromCache      bool
}

// Result is the whole-compilation output: every class's layout plus the
// merged, totally ordered trampoline set (spec.md §5: "the final
// serialized order is imposed by the total order ... not by merge
// order").
type Result struct {
	Types       *ir.Interner
	Classes     []ClassResult
	Trampolines *trampoline.Set
	Timing      observ.Report
}

// Compile fans per-class layout computation out across jobs goroutines
// (0 meaning GOMAXPROCS), merges each class's trampoline subset into one
// compilation-wide set, and returns a Bag of accumulated diagnostics.
// Per-class failures are recorded as SevError and that class's result is
// simply omitted while the other classes continue. Compile records no
// SevFatal diagnostic of its own and never stops the remaining classes
// early; callers check Bag.HasFatal themselves.
func Compile(ctx context.Context, table *class.Table, work []ClassWork, tgt target.Target, cache *DiskCache, jobs int) (*Result, *diag.Bag) {
	timer := observ.NewTimer()

	types := ir.NewInterner(nil)
	lay := layout.New(tgt, types)
	m := mapper.New(types, tgt, lay)

	var mu sync.Mutex // guards types/lay/m: the one shared mutable resource (spec.md §5)
	bag := diag.NewBag()
	var bagMu sync.Mutex

	results := make([]*ClassResult, len(work))
	trampolines := trampoline.NewSet()
	var trampMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, w := range work {
		i, w := i, w
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			key := HashClassBytes(w.RawBytes)
			lookup := timer.Begin(observ.PhaseCacheLookup)
			cached, hit, getErr := cache.Get(key)
			timer.End(lookup, w.Class.Name)
			if getErr == nil && hit {
				compute := timer.Begin(observ.PhaseLayoutCompute)
				mu.Lock()
				instTy, instErr := m.ReplayLayout(cached.InstanceLayout)
				var staticTy ir.TypeID
				var staticErr error
				if instErr == nil {
					staticTy, staticErr = m.ReplayLayout(cached.StaticLayout)
				}
				mu.Unlock()
				timer.End(compute, w.Class.Name)

				// A cache hit's recipe still has to be replayed against
				// this run's own Interner (ir.TypeID is only meaningful
				// relative to the Interner that produced it) — a replay
				// failure means a corrupt or foreign-schema entry, not a
				// class-level diagnostic, so it is handled the same as a
				// miss rather than silently swallowed.
				if instErr != nil || staticErr != nil {
					bagMu.Lock()
					bag.Add(diag.New(diag.SevWarning, diag.UnknownCode, w.Class.Name, "", "cache replay failed, recomputing: "+firstErr(instErr, staticErr).Error()))
					bagMu.Unlock()
				} else {
					results[i] = &ClassResult{
						ClassName:      cached.ClassName,
						InstanceLayout: instTy,
						StaticLayout:   staticTy,
						FromCache:      true,
					}
					merge := timer.Begin(observ.PhaseTrampolineMerge)
					trampMu.Lock()
					for _, ct := range cached.Trampolines {
						trampolines.Add(decodeTrampoline(ct))
					}
					trampMu.Unlock()
					timer.End(merge, w.Class.Name)
					return nil
				}
			}

			compute := timer.Begin(observ.PhaseLayoutCompute)
			mu.Lock()
			instTy, instRecipe, instErr := m.InstanceLayout(table, w.Class)
			var staticTy ir.TypeID
			var staticRecipe mapper.LayoutRecipe
			var staticErr error
			if instErr == nil {
				staticTy, staticRecipe, staticErr = m.StaticLayout(w.Class)
			}
			mu.Unlock()
			timer.End(compute, w.Class.Name)

			if instErr != nil {
				bagMu.Lock()
				bag.Add(diag.Errorf(diag.MapperUnsupportedType, w.Class.Name, "", instErr.Error()))
				bagMu.Unlock()
				return nil
			}
			if staticErr != nil {
				bagMu.Lock()
				bag.Add(diag.Errorf(diag.MapperUnsupportedType, w.Class.Name, "", staticErr.Error()))
				bagMu.Unlock()
				return nil
			}

			results[i] = &ClassResult{
				ClassName:      w.Class.Name,
				InstanceLayout: instTy,
				StaticLayout:   staticTy,
			}

			merge := timer.Begin(observ.PhaseTrampolineMerge)
			trampMu.Lock()
			for _, tr := range w.Trampolines {
				trampolines.Add(tr)
			}
			trampMu.Unlock()
			timer.End(merge, w.Class.Name)

			write := timer.Begin(observ.PhaseCacheWrite)
			putErr := cache.Put(key, &CachedClass{
				ClassName:      w.Class.Name,
				InstanceLayout: instRecipe,
				StaticLayout:   staticRecipe,
				Trampolines:    encodeTrampolines(w.Trampolines),
			})
			timer.End(write, w.Class.Name)
			if putErr != nil {
				bagMu.Lock()
				bag.Add(diag.New(diag.SevWarning, diag.UnknownCode, w.Class.Name, "", "cache write failed: "+putErr.Error()))
				bagMu.Unlock()
			}
			return nil
		})
	}

	// errgroup's error is only a context-cancellation signal here: every
	// per-class failure is recorded into bag rather than returned, per
	// spec.md §7's "the driver may skip that class and continue."
	_ = g.Wait()

	out := make([]ClassResult, 0, len(work))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}

	return &Result{
		Types:       types,
		Classes:     out,
		Trampolines: trampolines,
		Timing:      timer.Report(),
	}, bag
}

func encodeTrampolines(ts []trampoline.Trampoline) []CachedTrampoline {
	out := make([]CachedTrampoline, len(ts))
	for i, t := range ts {
		out[i] = CachedTrampoline{
			Kind:             uint8(t.Kind),
			CallingClass:     t.CallingClass,
			TargetClass:      t.TargetClass,
			MemberName:       t.MemberName,
			MemberDescriptor: t.MemberDescriptor,
			Static:           t.Static,
		}
	}
	return out
}

// firstErr returns whichever of a, b is non-nil, preferring a — used to
// report a single representative error when a cache-hit replay fails on
// either the instance or static layout.
func firstErr(a, b error) error {
	if a != nil {
		return a
	}
	return b
}

func decodeTrampoline(ct CachedTrampoline) trampoline.Trampoline {
	return trampoline.Trampoline{
		Kind:             trampoline.Kind(ct.Kind),
		CallingClass:     ct.CallingClass,
		TargetClass:      ct.TargetClass,
		MemberName:       ct.MemberName,
		MemberDescriptor: ct.MemberDescriptor,
		Static:           ct.Static,
	}
}
