package main

import (
	"errors"

	"github.com/hospitalops/surgroster/internal/rostererr"
)

// exitCodeFor maps a roster-building error to a process exit code, so a
// caller scripting this CLI can distinguish failure classes without
// parsing stderr.
func exitCodeFor(err error) int {
	var rerr *rostererr.Error
	if !errors.As(err, &rerr) {
		return 1
	}
	switch rerr.Kind {
	case rostererr.KindInputShape:
		return 2
	case rostererr.KindCoverageInfeasible:
		return 3
	case rostererr.KindRotatingOverload:
		return 4
	case rostererr.KindSolverFailure:
		return 5
	default:
		return 1
	}
}
