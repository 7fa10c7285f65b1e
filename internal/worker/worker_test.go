package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusDerivation(t *testing.T) {
	cases := []struct {
		status   Status
		wantYear int
		wantMin  int
	}{
		{StatusYear1, 1, 0},
		{StatusYear2, 2, 5},
		{StatusYear3, 3, 4},
		{StatusYear4, 4, 3},
		{StatusYear5, 5, 2},
		{StatusYear6, 6, 1},
		{StatusPreExam, 6, 0},
		{StatusSpecialist, 6, 0},
	}
	for _, c := range cases {
		w := Worker{Status: c.status}
		assert.Equal(t, c.wantYear, w.YearOfSpecialization(), "year for %v", c.status)
		assert.Equal(t, c.wantMin, w.MinNightShifts(), "min nights for %v", c.status)
	}
}

func TestMaxNightShiftsNeverBelowMin(t *testing.T) {
	w := Worker{Status: StatusYear2, ReduceNights: 5} // default max would be 0
	assert.Equal(t, 5, w.MinNightShifts())
	assert.Equal(t, 5, w.MaxNightShifts())

	w2 := Worker{Status: StatusYear6, ReduceNights: 1}
	assert.Equal(t, 1, w2.MinNightShifts())
	assert.Equal(t, 4, w2.MaxNightShifts())
}

func TestEligibilityDefaultsToNo(t *testing.T) {
	w := Worker{}
	assert.Equal(t, No, w.EligibilityFor(3))

	w.Eligibility = map[int]Eligibility{3: Yes}
	assert.Equal(t, Yes, w.EligibilityFor(3))
	assert.Equal(t, No, w.EligibilityFor(4))
}

func TestIsRotatingEitherSlot(t *testing.T) {
	assert.True(t, Worker{SpecialtyWishes: "rotating"}.IsRotating())
	assert.True(t, Worker{SpecialtyMaster: "Rotating"}.IsRotating())
	assert.False(t, Worker{SpecialtyWishes: "general surgery"}.IsRotating())
}

func TestWorksNightShifts(t *testing.T) {
	w := Worker{Eligibility: map[int]Eligibility{5: Maybe}}
	assert.True(t, w.WorksNightShifts([]int{5, 6, 7}))

	w2 := Worker{Eligibility: map[int]Eligibility{5: No}}
	assert.False(t, w2.WorksNightShifts([]int{5, 6, 7}))
}
