// Package diag implements the error taxonomy spec.md §7 describes:
// explicit, kind-tagged result values the core surfaces instead of
// aborting the process, plus an accumulator so a driver can keep going
// past per-class failures. The Bag has no size cap and does not
// deduplicate; Sort orders it on request.
//
// Grounded on the teacher's internal/diag package (Severity, Bag's
// accumulate-don't-abort shape), with
// Diagnostic's source.Span anchor replaced by a plain class-name string:
// this core has no lexer/parser front end, so there is no source span to
// point at — only the managed class or descriptor that failed.
package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
	SevFatal
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	case SevFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}
