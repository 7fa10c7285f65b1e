package objective_test

import (
	"testing"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalops/surgroster/internal/calendar"
	"github.com/hospitalops/surgroster/internal/config"
	"github.com/hospitalops/surgroster/internal/model"
	"github.com/hospitalops/surgroster/internal/objective"
	"github.com/hospitalops/surgroster/internal/preschedule"
	"github.com/hospitalops/surgroster/internal/solve"
	"github.com/hospitalops/surgroster/internal/worker"
	"github.com/hospitalops/surgroster/internal/workplace"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func placeholdersExcept(dayIdx int, keep ...workplace.Workplace) []preschedule.Entry {
	kept := make(map[workplace.Workplace]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}
	var out []preschedule.Entry
	for p := 0; p < workplace.Count; p++ {
		wp := workplace.Workplace(p)
		if kept[wp] {
			continue
		}
		out = append(out, preschedule.Entry{WorkerName: "placeholder", Day: dayIdx, Workplace: p})
	}
	return out
}

// TestAssemblePrefersTheYesEligibleMatching builds a two-worker, two-slot
// instance where either perfect matching satisfies every hard constraint,
// and checks that a positive weight_preferred_workplace_assignment steers
// the solver toward the matching where both workers land on their YES
// workplace rather than their MAYBE one (S3).
func TestAssemblePrefersTheYesEligibleMatching(t *testing.T) {
	days, err := calendar.Generate(day(2026, 3, 2), day(2026, 3, 2))
	require.NoError(t, err)

	entries := placeholdersExcept(0, workplace.Day1, workplace.Day2)
	avail := []worker.Availability{{Day: worker.Neutral, Night: worker.Forbidden}}
	workers := []worker.Worker{
		{
			Name: "A",
			Eligibility: map[int]worker.Eligibility{
				int(workplace.Day1): worker.Yes,
				int(workplace.Day2): worker.Maybe,
			},
			Availability: avail,
		},
		{
			Name: "B",
			Eligibility: map[int]worker.Eligibility{
				int(workplace.Day1): worker.Maybe,
				int(workplace.Day2): worker.Yes,
			},
			Availability: avail,
		},
	}
	bind := preschedule.New(entries, map[string]bool{"A": true, "B": true})

	m := model.Build(workers, days, bind, model.Config{WorkplaceWeights: config.WorkplaceWeights{}})
	cfg := config.Config{WeightPreferredWorkplaceAssignment: 10}
	objective.Assemble(m.Builder, m.Penalties, cfg)

	resp, err := solve.Run(m.Builder, solve.Params{TimeLimitSeconds: 5})
	require.NoError(t, err)

	assert.True(t, cpmodel.SolutionBooleanValue(resp, m.Work[model.Key{Worker: 0, Day: 0, Workplace: int(workplace.Day1)}]))
	assert.True(t, cpmodel.SolutionBooleanValue(resp, m.Work[model.Key{Worker: 1, Day: 0, Workplace: int(workplace.Day2)}]))
	assert.Equal(t, int64(-2), cpmodel.SolutionIntegerValue(resp, m.Penalties.PreferredWorkplace))
}
