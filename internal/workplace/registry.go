// Package workplace enumerates the fixed set of staffed positions a worker
// can be assigned to and classifies them into day, night, and unconnected
// (24h, self-contained) stations.
package workplace

import "fmt"

// Workplace is a stable index into the fixed, closed set of workplaces.
type Workplace int

// The eleven workplaces, in registry order. Day workplaces occupy indices
// 0-4, night workplaces 5-7, unconnected workplaces 8-10.
const (
	Day1 Workplace = iota // KRG 1
	Day2                  // KRG 2 (abdominal day station)
	Day3                  // KRG 3 (MOP day station)
	Day4                  // KRG 4
	Day5                  // KRG 5

	NightB   // KRG N - B
	NightMOP // KRG N - MOP, the distinguished weekend-pattern station
	NightABD // KRG N - ABD

	AbdDuty        // ABDOMEN: 24h abdominal duty, every day
	AbdOnCall      // ABD prip.: 24h abdominal on-call, workdays only
	TraumaOnCall   // TRAVMA: 24h trauma on-call, every day
)

// Count is the total number of registered workplaces.
const Count = int(TraumaOnCall) + 1

// names holds the canonical display name for each workplace, in index order.
var names = [Count]string{
	"KRG 1", "KRG 2", "KRG 3", "KRG 4", "KRG 5",
	"KRG N - B", "KRG N - MOP", "KRG N - ABD",
	"ABDOMEN", "ABD prip.", "TRAVMA",
}

// DayWorkplaces is the ordered list of day-workplace indices.
var DayWorkplaces = []Workplace{Day1, Day2, Day3, Day4, Day5}

// NightWorkplaces is the ordered list of night-workplace indices.
var NightWorkplaces = []Workplace{NightB, NightMOP, NightABD}

// UnconnectedWorkplaces is the ordered list of unconnected-workplace indices.
var UnconnectedWorkplaces = []Workplace{AbdDuty, AbdOnCall, TraumaOnCall}

// All is every registered workplace, in index order.
var All = []Workplace{
	Day1, Day2, Day3, Day4, Day5,
	NightB, NightMOP, NightABD,
	AbdDuty, AbdOnCall, TraumaOnCall,
}

// String returns the canonical display name of the workplace.
func (w Workplace) String() string {
	if w < 0 || int(w) >= Count {
		return fmt.Sprintf("Workplace(%d)", int(w))
	}
	return names[w]
}

// IsDay reports whether w is one of the five standard daytime stations.
func (w Workplace) IsDay() bool {
	return w >= Day1 && w <= Day5
}

// IsNight reports whether w is one of the three nighttime stations.
func (w Workplace) IsNight() bool {
	return w >= NightB && w <= NightABD
}

// IsUnconnected reports whether w is a 24h duty that precludes any other
// assignment on the same day for the same worker.
func (w Workplace) IsUnconnected() bool {
	return w >= AbdDuty && w <= TraumaOnCall
}

// IsOnCallWorkdayOnly reports whether w only applies on workdays (only true
// of the abdominal on-call station).
func (w Workplace) IsOnCallWorkdayOnly() bool {
	return w == AbdOnCall
}

// IndexOf returns the Workplace with the given canonical name.
func IndexOf(name string) (Workplace, error) {
	for i, n := range names {
		if n == name {
			return Workplace(i), nil
		}
	}
	return -1, fmt.Errorf("workplace: unknown name %q", name)
}
