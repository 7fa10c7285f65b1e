// Package worker defines the immutable per-worker record consumed by the
// model builder: status tier, eligibility, availability, quotas, and caps.
// Reading these records out of the wishes/master-sheet tabular inputs is
// out of scope for this package — it receives already-joined, already
// canonicalized records (see spec.md §4.3).
package worker

import (
	"strings"

	"github.com/hospitalops/surgroster/internal/workplace"
)

// Included classifies how fully a worker participates in the roster.
type Included int

const (
	// Full is a normally-scheduled worker, bound only by the hard/soft
	// constraints of the model.
	Full Included = iota
	// Limited is a worker pinned to an exact day-shift and night-shift
	// count (PinnedDayShifts/PinnedNightShifts).
	Limited
	// Excluded workers are filtered out before modeling.
	Excluded
)

// Eligibility tags how a worker may staff a given workplace.
type Eligibility int

const (
	No Eligibility = iota
	Maybe
	Yes
)

// Preference is a per-slot (day or night) availability marker.
type Preference int

const (
	Forbidden Preference = -1
	Neutral   Preference = 0
	Prefer    Preference = 1
)

// Availability is a worker's day-slot/night-slot preference pair for a
// single day.
type Availability struct {
	Day   Preference
	Night Preference
}

// Rotating is the sentinel specialty value (a.k.a. KROŽEČI in the source
// domain) that pins a worker to an exact total assignment count (H13) and
// leaves the worker out of workload equalization (S7); the other hard
// constraints still apply.
const Rotating = "rotating"

// Status is a worker's specialization-status string, from the fixed
// vocabulary of §6's status table.
type Status string

const (
	StatusYear1       Status = "1st year"
	StatusYear2       Status = "2nd year"
	StatusYear3       Status = "3rd year"
	StatusYear4       Status = "4th year"
	StatusYear5       Status = "5th year"
	StatusYear6       Status = "6th year"
	StatusPreExam     Status = "<6 months to exam"
	StatusSpecialist  Status = "Specialist"
)

var statusYear = map[Status]int{
	StatusYear1:      1,
	StatusYear2:      2,
	StatusYear3:      3,
	StatusYear4:      4,
	StatusYear5:      5,
	StatusYear6:      6,
	StatusPreExam:    6,
	StatusSpecialist: 6,
}

var statusMinNights = map[Status]int{
	StatusYear1:      0,
	StatusYear2:      5,
	StatusYear3:      4,
	StatusYear4:      3,
	StatusYear5:      2,
	StatusYear6:      1,
	StatusPreExam:    0,
	StatusSpecialist: 0,
}

// Worker is an immutable per-worker record.
type Worker struct {
	Name     string
	Included Included
	Status   Status

	SpecialtyWishes string
	SpecialtyMaster string

	// Eligibility holds a tag for the 8 standard (day+night) workplaces,
	// keyed by workplace index. Entries for unconnected workplaces are not
	// consulted: EligibilityFor derives those from the quota fields.
	Eligibility map[int]Eligibility

	// Availability[d] is this worker's (day_slot, night_slot) pair for day
	// index d.
	Availability []Availability

	QuotaAbdDuty      int
	QuotaAbdOnCall    int
	QuotaTraumaOnCall int

	// MaxDayShifts is an optional cap on total day-shift count. Nil means
	// unbounded.
	MaxDayShifts *int

	// ReduceNights reduces the default night-shift upper bound of 5.
	ReduceNights int

	// PinnedDayShifts/PinnedNightShifts are required (non-nil) for
	// Included == Limited workers, giving their exact shift counts.
	PinnedDayShifts   *int
	PinnedNightShifts *int
}

// EligibilityFor returns the worker's eligibility for the workplace at the
// given index. A standard workplace absent from the map is No. An
// unconnected workplace is Yes when the worker's quota for it is > 0 and
// No otherwise.
func (w Worker) EligibilityFor(index int) Eligibility {
	switch workplace.Workplace(index) {
	case workplace.AbdDuty:
		return eligibleIfQuota(w.QuotaAbdDuty)
	case workplace.AbdOnCall:
		return eligibleIfQuota(w.QuotaAbdOnCall)
	case workplace.TraumaOnCall:
		return eligibleIfQuota(w.QuotaTraumaOnCall)
	}
	if w.Eligibility == nil {
		return No
	}
	return w.Eligibility[index]
}

func eligibleIfQuota(quota int) Eligibility {
	if quota > 0 {
		return Yes
	}
	return No
}

// IsRotating reports whether the worker carries the KROŽEČI/"rotating"
// sentinel in either specialty slot.
func (w Worker) IsRotating() bool {
	return strings.EqualFold(w.SpecialtyWishes, Rotating) || strings.EqualFold(w.SpecialtyMaster, Rotating)
}

// YearOfSpecialization derives the 1..6 year from the worker's status.
func (w Worker) YearOfSpecialization() int {
	return statusYear[w.Status]
}

// MinNightShifts derives the minimum required night-shift count from the
// worker's status.
func (w Worker) MinNightShifts() int {
	return statusMinNights[w.Status]
}

// MaxNightShifts is the per-worker night-shift upper bound: the default of
// 5, reduced by ReduceNights, but never below MinNightShifts.
func (w Worker) MaxNightShifts() int {
	max := 5 - w.ReduceNights
	min := w.MinNightShifts()
	if max < min {
		return min
	}
	return max
}

// WorksNightShifts reports whether this worker is eligible (YES or MAYBE)
// for any night workplace. nightWorkplaceIndices is the set of workplace
// indices classified as night stations.
func (w Worker) WorksNightShifts(nightWorkplaceIndices []int) bool {
	for _, idx := range nightWorkplaceIndices {
		if e := w.EligibilityFor(idx); e == Yes || e == Maybe {
			return true
		}
	}
	return false
}
