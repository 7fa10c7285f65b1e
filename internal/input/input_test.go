package input_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalops/surgroster/internal/input"
	"github.com/hospitalops/surgroster/internal/worker"
)

const sampleWorkersJSON = `[
  {
    "name": "Novak",
    "included": "full",
    "status": "3rd year",
    "specialty_wishes": "abdominal",
    "specialty_master": "abdominal",
    "eligibility": {"KRG 1": "yes", "KRG N - B": "maybe"},
    "availability": [[0, 1], [1, 0]],
    "quota_abd_duty": 2,
    "quota_abd_oncall": 0,
    "quota_trauma_oncall": 0,
    "reduce_nights": 1
  }
]`

func resolveName(workplaceIndex map[string]int) func(string) (int, error) {
	return func(name string) (int, error) {
		idx, ok := workplaceIndex[name]
		if !ok {
			return 0, fmt.Errorf("unknown name %q", name)
		}
		return idx, nil
	}
}

func TestDecodeWorkersAndConvert(t *testing.T) {
	recs, err := input.DecodeWorkers(strings.NewReader(sampleWorkersJSON))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	resolver := resolveName(map[string]int{"KRG 1": 0, "KRG N - B": 5})
	w, err := recs[0].ToWorker(resolver)
	require.NoError(t, err)

	assert.Equal(t, "Novak", w.Name)
	assert.Equal(t, worker.Full, w.Included)
	assert.Equal(t, worker.StatusYear3, w.Status)
	assert.Equal(t, worker.Yes, w.Eligibility[0])
	assert.Equal(t, worker.Maybe, w.Eligibility[5])
	assert.Equal(t, worker.Preference(0), w.Availability[0].Day)
	assert.Equal(t, worker.Preference(1), w.Availability[0].Night)
	assert.Equal(t, 2, w.QuotaAbdDuty)
	assert.Equal(t, 1, w.ReduceNights)
}

func TestDecodePrescheduleAndConvert(t *testing.T) {
	const sample = `[{"worker_name": "Novak", "date": "2026-03-02", "workplace": "KRG 1"}]`
	recs, err := input.DecodePreschedule(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	e, err := recs[0].ToEntry(
		func(date string) (int, error) {
			assert.Equal(t, "2026-03-02", date)
			return 0, nil
		},
		resolveName(map[string]int{"KRG 1": 0}),
	)
	require.NoError(t, err)
	assert.Equal(t, "Novak", e.WorkerName)
	assert.Equal(t, 0, e.Day)
	assert.Equal(t, 0, e.Workplace)
}

func TestToWorkerRejectsUnknownIncludedValue(t *testing.T) {
	rec := input.WorkerRecord{Name: "Novak", Included: "bogus"}
	_, err := rec.ToWorker(resolveName(nil))
	assert.Error(t, err)
}

func TestLoadPrescheduleWithEmptyPathYieldsNil(t *testing.T) {
	recs, err := input.LoadPreschedule("")
	require.NoError(t, err)
	assert.Nil(t, recs)
}
