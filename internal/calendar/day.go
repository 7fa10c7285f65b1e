// Package calendar produces the ordered list of days for a planning
// horizon, each tagged workday, weekend, or holiday.
package calendar

import (
	"fmt"
	"time"
)

// Kind classifies a Day.
type Kind int

const (
	Workday Kind = iota
	Weekend
	Holiday
)

// Day is a single calendar date tagged with its Kind.
type Day struct {
	Date time.Time
	Kind Kind
}

// IsWorkday is true only for Workday-kind days.
func (d Day) IsWorkday() bool {
	return d.Kind == Workday
}

// IsWeekendOrHoliday is true for Weekend- or Holiday-kind days.
func (d Day) IsWeekendOrHoliday() bool {
	return d.Kind == Weekend || d.Kind == Holiday
}

// IsWeekend is true only for Weekend-kind days (Holiday is tracked
// separately even when it falls on a Saturday/Sunday).
func (d Day) IsWeekend() bool {
	return d.Kind == Weekend
}

// String renders the day as an ISO date.
func (d Day) String() string {
	return d.Date.Format("2006-01-02")
}

// WeekendPair is an ordered pair of consecutive indices (d, d+1) into a Day
// slice where both days are weekend days.
type WeekendPair struct {
	First, Second int
}

// Generate produces the ordered sequence of Day records from start to end,
// inclusive of both endpoints, classifying each as workday, weekend, or
// holiday. Weekend is Saturday/Sunday; holiday is membership in the fixed
// Slovenian public-holiday set for that year; everything else is a workday.
func Generate(start, end time.Time) ([]Day, error) {
	start = truncateToDate(start)
	end = truncateToDate(end)
	if end.Before(start) {
		return nil, fmt.Errorf("calendar: end date %s is before start date %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	holidaysByYear := map[int]map[string]bool{}
	days := make([]Day, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		year := d.Year()
		set, ok := holidaysByYear[year]
		if !ok {
			set = holidaySetForYear(year)
			holidaysByYear[year] = set
		}

		kind := Workday
		switch {
		case set[d.Format("2006-01-02")]:
			kind = Holiday
		case d.Weekday() == time.Saturday || d.Weekday() == time.Sunday:
			kind = Weekend
		}
		days = append(days, Day{Date: d, Kind: kind})
	}

	return days, nil
}

// WeekendPairs enumerates every (d, d+1) index pair where both days are
// weekend days (Saturday followed by Sunday).
func WeekendPairs(days []Day) []WeekendPair {
	var pairs []WeekendPair
	for i := 0; i+1 < len(days); i++ {
		if days[i].IsWeekend() && days[i+1].IsWeekend() {
			pairs = append(pairs, WeekendPair{First: i, Second: i + 1})
		}
	}
	return pairs
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
