package solve_test

import (
	"testing"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalops/surgroster/internal/rostererr"
	"github.com/hospitalops/surgroster/internal/solve"
)

func TestRunReturnsFeasibleResponse(t *testing.T) {
	b := cpmodel.NewCpModelBuilder()
	x := b.NewBoolVar()
	y := b.NewBoolVar()
	b.AddBoolOr(x, y)

	resp, err := solve.Run(b, solve.Params{TimeLimitSeconds: 5})
	require.NoError(t, err)
	assert.Contains(t, []cmpb.CpSolverStatus{cmpb.CpSolverStatus_OPTIMAL, cmpb.CpSolverStatus_FEASIBLE}, resp.GetStatus())
}

func TestRunReportsInfeasibleAsSolverFailure(t *testing.T) {
	b := cpmodel.NewCpModelBuilder()
	x := b.NewBoolVar()
	b.AddEquality(x, cpmodel.NewConstant(1))
	b.AddEquality(x, cpmodel.NewConstant(0))

	_, err := solve.Run(b, solve.Params{TimeLimitSeconds: 5})
	require.Error(t, err)
	var rerr *rostererr.Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, rostererr.KindSolverFailure, rerr.Kind)
}
