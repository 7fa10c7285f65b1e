// Package rostererr defines the typed error taxonomy of spec.md §7, so
// callers can switch on an error's Kind field instead of matching message
// strings.
package rostererr

import "fmt"

// Kind classifies a roster-building error.
type Kind int

const (
	// KindInputShape covers missing columns, unparseable dates, and
	// unknown availability vocabulary.
	KindInputShape Kind = iota
	// KindCoverageInfeasible: an unconnected workplace has no eligible
	// worker on some day.
	KindCoverageInfeasible
	// KindQuotaMismatch: the sum of a workplace's quotas across workers
	// doesn't match the expected slot count. Non-fatal by itself.
	KindQuotaMismatch
	// KindRotatingOverload: a rotating worker's eligible days fall short
	// of the configured scheduled count.
	KindRotatingOverload
	// KindSolverFailure: the CP-SAT solver returned a non-feasible status.
	KindSolverFailure
)

func (k Kind) String() string {
	switch k {
	case KindInputShape:
		return "input-shape"
	case KindCoverageInfeasible:
		return "coverage-infeasible"
	case KindQuotaMismatch:
		return "quota-mismatch"
	case KindRotatingOverload:
		return "rotating-overload"
	case KindSolverFailure:
		return "solver-failure"
	default:
		return "unknown"
	}
}

// Error is a roster-building error carrying its Kind and, where
// applicable, the offending day/workplace location.
type Error struct {
	Kind    Kind
	Message string

	// Day/Workplace are set for KindCoverageInfeasible errors, pointing at
	// the (day, workplace) pair that has no eligible worker.
	Day       int
	Workplace string

	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// New creates an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error of the given kind, wrapping an existing error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// CoverageInfeasible builds the §4.4(a) fatal error for an unconnected
// workplace with no eligible worker on a given day.
func CoverageInfeasible(day int, workplaceName string) *Error {
	return &Error{
		Kind:      KindCoverageInfeasible,
		Message:   fmt.Sprintf("no eligible worker is available for %s on day %d; add a placeholder preschedule entry and decrement the corresponding quota", workplaceName, day),
		Day:       day,
		Workplace: workplaceName,
	}
}
