package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateInclusiveAndOrdered(t *testing.T) {
	days, err := Generate(date(2026, 3, 1), date(2026, 3, 5))
	require.NoError(t, err)
	require.Len(t, days, 5)

	assert.Equal(t, date(2026, 3, 1), days[0].Date)
	assert.Equal(t, date(2026, 3, 5), days[4].Date)
	for i := 1; i < len(days); i++ {
		assert.True(t, days[i].Date.After(days[i-1].Date))
	}
}

func TestGenerateRejectsInvertedRange(t *testing.T) {
	_, err := Generate(date(2026, 3, 5), date(2026, 3, 1))
	assert.Error(t, err)
}

func TestWeekendClassification(t *testing.T) {
	// 2026-03-01 is a Sunday.
	days, err := Generate(date(2026, 2, 27), date(2026, 3, 2))
	require.NoError(t, err)

	byDate := map[string]Kind{}
	for _, d := range days {
		byDate[d.String()] = d.Kind
	}
	assert.Equal(t, Workday, byDate["2026-02-27"])
	assert.Equal(t, Weekend, byDate["2026-02-28"])
	assert.Equal(t, Weekend, byDate["2026-03-01"])
	assert.Equal(t, Workday, byDate["2026-03-02"])
}

func TestHolidayTakesPrecedenceOverWorkday(t *testing.T) {
	days, err := Generate(date(2026, 5, 1), date(2026, 5, 1))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, Holiday, days[0].Kind)
	assert.True(t, days[0].IsWeekendOrHoliday())
	assert.False(t, days[0].IsWorkday())
}

func TestWeekendPairs(t *testing.T) {
	days, err := Generate(date(2026, 2, 26), date(2026, 3, 3))
	require.NoError(t, err)

	pairs := WeekendPairs(days)
	require.Len(t, pairs, 1)
	assert.Equal(t, days[pairs[0].First].String(), "2026-02-28")
	assert.Equal(t, days[pairs[0].Second].String(), "2026-03-01")
}
