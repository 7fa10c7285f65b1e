package result_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalops/surgroster/internal/calendar"
	"github.com/hospitalops/surgroster/internal/config"
	"github.com/hospitalops/surgroster/internal/model"
	"github.com/hospitalops/surgroster/internal/preschedule"
	"github.com/hospitalops/surgroster/internal/result"
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

func buildSolvedSingleWorkerModel(t *testing.T) (*model.Model, *preschedule.Binding, []calendar.Day) {
	t.Helper()
	days, err := calendar.Generate(day(2026, 3, 2), day(2026, 3, 2))
	require.NoError(t, err)

	entries := placeholdersExcept(0, workplace.Day1)
	workers := []worker.Worker{
		{
			Name:         "Novak",
			Eligibility:  map[int]worker.Eligibility{int(workplace.Day1): worker.Yes},
			Availability: []worker.Availability{{Day: worker.Neutral, Night: worker.Forbidden}},
		},
	}
	bind := preschedule.New(entries, map[string]bool{"Novak": true})

	m := model.Build(workers, days, bind, model.Config{WorkplaceWeights: config.WorkplaceWeights{}})
	return m, bind, days
}

func TestBuildScheduleReproducesPreassignmentsAndSolvedCells(t *testing.T) {
	m, bind, _ := buildSolvedSingleWorkerModel(t)
	resp, err := solve.Run(m.Builder, solve.Params{TimeLimitSeconds: 5})
	require.NoError(t, err)

	schedule := result.BuildSchedule(m, resp, bind)
	require.Len(t, schedule.Rows, 1)

	dayIdx := int(workplace.Day1) + 1
	assert.Equal(t, "Novak", schedule.Rows[0][dayIdx])

	placeholderIdx := int(workplace.Day2) + 1
	assert.Equal(t, "placeholder", schedule.Rows[0][placeholderIdx])
}

func TestBuildStatsCountsAssignmentsPerWorker(t *testing.T) {
	m, _, _ := buildSolvedSingleWorkerModel(t)
	resp, err := solve.Run(m.Builder, solve.Params{TimeLimitSeconds: 5})
	require.NoError(t, err)

	stats := result.BuildStats(m, resp)
	require.Len(t, stats.Rows, 1)
	assert.Equal(t, "Novak", stats.Rows[0][0])
	assert.Equal(t, "1", stats.Rows[0][int(workplace.Day1)+1])
	assert.Equal(t, "0", stats.Rows[0][int(workplace.Day2)+1])
}

func TestBuildSummaryReportsTheSoleWorker(t *testing.T) {
	m, _, _ := buildSolvedSingleWorkerModel(t)
	resp, err := solve.Run(m.Builder, solve.Params{TimeLimitSeconds: 5})
	require.NoError(t, err)

	summary := result.BuildSummary(m, resp)
	assert.Equal(t, "Novak", summary.MostShiftsWorker)
	assert.Equal(t, 1, summary.MostShiftsCount)
	assert.Equal(t, "Novak", summary.FewestShiftsWorker)
	assert.Equal(t, 1, summary.FewestShiftsCount)
}

func TestWriteCSVWritesHeaderThenRows(t *testing.T) {
	var buf bytes.Buffer
	err := result.WriteCSV(&buf, []string{"DATE", "KRG 1"}, [][]string{{"2026-03-02", "Novak"}})
	require.NoError(t, err)
	assert.Equal(t, "DATE,KRG 1\n2026-03-02,Novak\n", buf.String())
}
