package observ_test

import (
	"testing"

	"jaotc/internal/observ"
)

func TestReportAggregatesByPhaseKind(t *testing.T) {
	timer := observ.NewTimer()

	a := timer.Begin(observ.PhaseCacheLookup)
	timer.End(a, "a/A")
	b := timer.Begin(observ.PhaseLayoutCompute)
	timer.End(b, "a/A")
	c := timer.Begin(observ.PhaseCacheLookup)
	timer.End(c, "b/B")

	report := timer.Report()
	var lookups, computes int
	for _, p := range report.Phases {
		switch p.Kind {
		case observ.PhaseCacheLookup:
			lookups = p.Count
		case observ.PhaseLayoutCompute:
			computes = p.Count
		}
	}
	if lookups != 2 {
		t.Fatalf("cache-lookup count = %d; want 2", lookups)
	}
	if computes != 1 {
		t.Fatalf("layout-compute count = %d; want 1", computes)
	}
}

func TestReportOnEmptyTimerIsZeroValue(t *testing.T) {
	timer := observ.NewTimer()
	report := timer.Report()
	if report.TotalMS != 0 || len(report.Phases) != 0 {
		t.Fatalf("Report() on an empty Timer = %+v; want zero value", report)
	}
}

func TestEndIgnoresOutOfRangeIndex(t *testing.T) {
	timer := observ.NewTimer()
	timer.End(5, "ignored") // must not panic
	if report := timer.Report(); len(report.Phases) != 0 {
		t.Fatalf("End on an invalid index must not record a phase, got %+v", report)
	}
}
