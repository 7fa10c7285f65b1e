// Package precheck validates a roster input before the model is built,
// catching shape problems that would otherwise surface only as an opaque
// solver infeasibility (spec.md §4.4).
package precheck

import (
	"github.com/golang/glog"

	"github.com/hospitalops/surgroster/internal/calendar"
	"github.com/hospitalops/surgroster/internal/preschedule"
	"github.com/hospitalops/surgroster/internal/rostererr"
	"github.com/hospitalops/surgroster/internal/worker"
	"github.com/hospitalops/surgroster/internal/workplace"
)

// Config carries the tuning knobs the prechecker needs from the run
// configuration.
type Config struct {
	RotatingScheduledCount int
}

// Run executes checks (a) through (e) of spec.md §4.4 against the given
// roster, days, and preschedule. It returns the first fatal error
// encountered (coverage infeasibility, rotating-worker overload, or a
// limited worker without pinned counts) and logs every non-fatal mismatch
// as a glog warning.
func Run(workers []worker.Worker, days []calendar.Day, bind *preschedule.Binding, cfg Config) error {
	if err := checkUnconnectedCoverage(workers, days, bind); err != nil {
		return err
	}
	checkQuotaSums(workers, days)
	if err := checkRotatingEligibility(workers, days, cfg.RotatingScheduledCount); err != nil {
		return err
	}
	if err := checkLimitedWorkersPinned(workers); err != nil {
		return err
	}
	checkNightShiftBoundSanity(workers, days)
	return nil
}

// checkUnconnectedCoverage implements §4.4(a): every unconnected workplace
// must have, on every applicable day, either a preschedule entry or at
// least one worker with a positive quota who is available that day.
func checkUnconnectedCoverage(workers []worker.Worker, days []calendar.Day, bind *preschedule.Binding) error {
	for _, wp := range workplace.UnconnectedWorkplaces {
		for dd, day := range days {
			if wp.IsOnCallWorkdayOnly() && !day.IsWorkday() {
				continue
			}
			if bind != nil && bind.IsPreassigned(dd, int(wp)) {
				continue
			}
			if hasAvailableQuotaHolder(workers, dd, wp) {
				continue
			}
			return rostererr.CoverageInfeasible(dd, wp.String())
		}
	}
	return nil
}

func hasAvailableQuotaHolder(workers []worker.Worker, day int, wp workplace.Workplace) bool {
	for _, w := range workers {
		if quotaFor(w, wp) <= 0 {
			continue
		}
		if day >= len(w.Availability) {
			continue
		}
		avail := w.Availability[day]
		if isZeroOrPrefer(avail.Day) && isZeroOrPrefer(avail.Night) {
			return true
		}
	}
	return false
}

func quotaFor(w worker.Worker, wp workplace.Workplace) int {
	switch wp {
	case workplace.AbdDuty:
		return w.QuotaAbdDuty
	case workplace.AbdOnCall:
		return w.QuotaAbdOnCall
	case workplace.TraumaOnCall:
		return w.QuotaTraumaOnCall
	default:
		return 0
	}
}

func isZeroOrPrefer(p worker.Preference) bool {
	return p == worker.Neutral || p == worker.Prefer
}

// checkQuotaSums implements §4.4(b): the summed quotas across all workers
// should equal the expected slot count for each unconnected workplace. A
// mismatch is only a warning — it may or may not manifest as infeasibility
// once the preschedule and coverage constraint interact.
func checkQuotaSums(workers []worker.Worker, days []calendar.Day) {
	workdays := 0
	for _, d := range days {
		if d.IsWorkday() {
			workdays++
		}
	}

	sums := map[workplace.Workplace]int{}
	for _, w := range workers {
		sums[workplace.AbdDuty] += w.QuotaAbdDuty
		sums[workplace.AbdOnCall] += w.QuotaAbdOnCall
		sums[workplace.TraumaOnCall] += w.QuotaTraumaOnCall
	}

	expect := map[workplace.Workplace]int{
		workplace.AbdDuty:      len(days),
		workplace.AbdOnCall:    workdays,
		workplace.TraumaOnCall: len(days),
	}

	for _, wp := range workplace.UnconnectedWorkplaces {
		if sums[wp] != expect[wp] {
			glog.Warningf("quota mismatch for %s: workers' quotas sum to %d, expected %d", wp, sums[wp], expect[wp])
		}
	}
}

// checkRotatingEligibility implements §4.4(c).
func checkRotatingEligibility(workers []worker.Worker, days []calendar.Day, rotatingScheduledCount int) error {
	for _, w := range workers {
		if !w.IsRotating() {
			continue
		}
		eligibleDays := 0
		for dd := range days {
			if dd >= len(w.Availability) {
				continue
			}
			if isZeroOrPrefer(w.Availability[dd].Day) {
				eligibleDays++
			}
		}
		if eligibleDays < rotatingScheduledCount {
			return rostererr.New(rostererr.KindRotatingOverload,
				"rotating worker %q has %d eligible days, below the configured rotating_scheduled_count of %d",
				w.Name, eligibleDays, rotatingScheduledCount)
		}
	}
	return nil
}

// checkLimitedWorkersPinned implements §4.4(d).
func checkLimitedWorkersPinned(workers []worker.Worker) error {
	for _, w := range workers {
		if w.Included != worker.Limited {
			continue
		}
		if w.PinnedDayShifts == nil || w.PinnedNightShifts == nil {
			return rostererr.New(rostererr.KindInputShape,
				"limited worker %q is missing pinned_day_shifts or pinned_night_shifts", w.Name)
		}
	}
	return nil
}

// checkNightShiftBoundSanity implements §4.4(e): a global feasibility
// sanity check on the night-shift bounds, logged as a warning since a real
// violation will surface as solver infeasibility anyway. It also warns about
// each night-eligible worker whose ReduceNights pushes 5 - ReduceNights
// below MinNightShifts, where the upper bound is raised to the minimum.
func checkNightShiftBoundSanity(workers []worker.Worker, days []calendar.Day) {
	capacity := len(workplace.NightWorkplaces) * len(days)

	minSum, maxSum := 0, 0
	for _, w := range workers {
		if !w.WorksNightShifts(nightIndices()) {
			continue
		}
		if 5-w.ReduceNights < w.MinNightShifts() {
			glog.Warningf("worker %q: 5 - reduce_nights (%d) is below min_night_shifts (%d); the night-shift upper bound is raised to the minimum",
				w.Name, 5-w.ReduceNights, w.MinNightShifts())
		}
		minSum += w.MinNightShifts()
		maxSum += w.MaxNightShifts()
	}

	if minSum > capacity {
		glog.Warningf("sum of min_night_shifts (%d) exceeds night-slot capacity (%d)", minSum, capacity)
	}
	if maxSum < capacity {
		glog.Warningf("sum of max_night_shifts (%d) is below night-slot capacity (%d)", maxSum, capacity)
	}
}

func nightIndices() []int {
	idx := make([]int, len(workplace.NightWorkplaces))
	for i, wp := range workplace.NightWorkplaces {
		idx[i] = int(wp)
	}
	return idx
}
