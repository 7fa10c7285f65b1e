// Package solve drives the CP-SAT solver over a built model and classifies
// its terminal status (spec.md §4.7).
package solve

import (
	"runtime"

	log "github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"

	"github.com/hospitalops/surgroster/internal/rostererr"
)

// Params carries the solver tuning knobs taken from the run configuration.
type Params struct {
	TimeLimitSeconds float64
	PrintLogs        bool
}

// Run solves the given CP-SAT builder's model and returns the solver
// response. Only OPTIMAL and FEASIBLE statuses are accepted; any other
// terminal status is reported as a *rostererr.Error of
// KindSolverFailure.
func Run(b *cpmodel.Builder, p Params) (*cmpb.CpSolverResponse, error) {
	modelProto, err := b.Model()
	if err != nil {
		return nil, rostererr.Wrap(rostererr.KindSolverFailure, err, "building the CP-SAT model proto")
	}

	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(p.TimeLimitSeconds),
		NumSearchWorkers: proto.Int32(int32(runtime.NumCPU())),
	}
	if p.PrintLogs {
		params.LogSearchProgress = proto.Bool(true)
	}

	log.Infof("solving with time_limit=%.1fs num_search_workers=%d", p.TimeLimitSeconds, *params.NumSearchWorkers)

	response, err := cpmodel.SolveCpModelWithParameters(modelProto, params)
	if err != nil {
		return nil, rostererr.Wrap(rostererr.KindSolverFailure, err, "solving the CP-SAT model")
	}

	status := response.GetStatus()
	log.Infof("solver finished with status %s", status)

	switch status {
	case cmpb.CpSolverStatus_OPTIMAL, cmpb.CpSolverStatus_FEASIBLE:
		return response, nil
	default:
		return nil, rostererr.New(rostererr.KindSolverFailure,
			"solver returned status %s; check the prechecker's warnings for a likely cause", status)
	}
}
