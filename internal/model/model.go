// Package model builds the CP-SAT model for a single roster run: the
// work[w,d,p] Boolean assignment grid, the fourteen hard constraints of
// spec.md §4.5, and the auxiliary variables the soft penalties of §4.6 are
// expressed over.
package model

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/hospitalops/surgroster/internal/calendar"
	"github.com/hospitalops/surgroster/internal/config"
	"github.com/hospitalops/surgroster/internal/preschedule"
	"github.com/hospitalops/surgroster/internal/worker"
	"github.com/hospitalops/surgroster/internal/workplace"
)

// Key addresses a single work[w,d,p] Boolean: worker index, day index,
// workplace index.
type Key struct {
	Worker    int
	Day       int
	Workplace int
}

// WorkloadTerm pairs a worker index with its weighted-workload IntVar
// (S7), for the result materializer to read back after solving.
type WorkloadTerm struct {
	Worker int
	Total  cpmodel.IntVar
}

// Penalties collects every auxiliary variable the soft objective of §4.6
// is built from.
type Penalties struct {
	PreferentialDay         cpmodel.IntVar   // S1
	PreferentialUnconnected cpmodel.IntVar   // S2
	PreferredWorkplace      cpmodel.IntVar   // S3
	ConsecutiveNights       []cpmodel.BoolVar // S4
	WorkplaceBalance        []cpmodel.IntVar  // S5
	SeniorWeekendBonus      cpmodel.IntVar    // S6
	WorkloadMax             cpmodel.IntVar    // S7
	WorkloadMin             cpmodel.IntVar    // S7
	WorkloadTerms           []WorkloadTerm    // S7, per worker (rotating excluded)
}

// Model is the fully-built CP-SAT model together with the handles needed
// to read back a solution: the work grid and the soft-penalty variables.
type Model struct {
	Builder *cpmodel.Builder
	Work    map[Key]cpmodel.BoolVar

	Workers []worker.Worker
	Days    []calendar.Day

	Penalties Penalties
}

// Config carries the tuning parameters the model builder needs beyond the
// roster itself.
type Config struct {
	RotatingScheduledCount int
	WorkplaceWeights       config.WorkplaceWeights
}

func sum(vars []cpmodel.BoolVar) *cpmodel.LinearExpr {
	e := cpmodel.NewLinearExpr()
	for _, v := range vars {
		e.Add(v)
	}
	return e
}

// Build constructs the full CP-SAT model for the given roster, honoring
// the preschedule binding, and returns the Model with every handle needed
// for objective assembly and result materialization.
func Build(workers []worker.Worker, days []calendar.Day, bind *preschedule.Binding, cfg Config) *Model {
	b := cpmodel.NewCpModelBuilder()
	m := &Model{
		Builder: b,
		Work:    make(map[Key]cpmodel.BoolVar, len(workers)*len(days)*workplace.Count),
		Workers: workers,
		Days:    days,
	}

	for w := range workers {
		for d := range days {
			for p := 0; p < workplace.Count; p++ {
				m.Work[Key{w, d, p}] = b.NewBoolVar()
			}
		}
	}

	namesByWorker := make(map[string]int, len(workers))
	for w, wk := range workers {
		namesByWorker[wk.Name] = w
	}

	addCoverage(b, m, bind)       // H1
	addPinned(b, m, bind, namesByWorker) // H2
	addEligibility(b, m)          // H3
	addUnconnectedQuotas(b, m)    // H4
	addNoNightToNextDay(b, m)     // H5
	addNoSameWorkdayDayAndNight(b, m) // H6
	addUnconnectedExclusivity(b, m)   // H7
	addNoThreeConsecutiveDays(b, m) // H9
	addAvailability(b, m)           // H8
	addWeekends(b, m)     // H10
	addDayShiftCap(b, m)  // H11
	addNightShiftWindow(b, m) // H12
	addRotatingQuota(b, m, cfg.RotatingScheduledCount) // H13
	addLimitedPins(b, m) // H14

	m.Penalties.PreferentialDay = addPreferentialDayPenalty(b, m)          // S1
	m.Penalties.PreferentialUnconnected = addPreferentialUnconnectedPenalty(b, m) // S2
	m.Penalties.PreferredWorkplace = addPreferredWorkplacePenalty(b, m)    // S3
	m.Penalties.ConsecutiveNights = addConsecutiveNightsPenalty(b, m)      // S4
	m.Penalties.WorkplaceBalance = addWorkplaceBalancePenalty(b, m)        // S5
	m.Penalties.SeniorWeekendBonus = addSeniorWeekendBonus(b, m)           // S6
	m.Penalties.WorkloadMax, m.Penalties.WorkloadMin, m.Penalties.WorkloadTerms = addWorkloadEqualization(b, m, cfg.WorkplaceWeights) // S7

	return m
}

func dayWorkplaces(m *Model, w, d int) []cpmodel.BoolVar {
	out := make([]cpmodel.BoolVar, 0, len(workplace.DayWorkplaces))
	for _, p := range workplace.DayWorkplaces {
		out = append(out, m.Work[Key{w, d, int(p)}])
	}
	return out
}

func nightWorkplaces(m *Model, w, d int) []cpmodel.BoolVar {
	out := make([]cpmodel.BoolVar, 0, len(workplace.NightWorkplaces))
	for _, p := range workplace.NightWorkplaces {
		out = append(out, m.Work[Key{w, d, int(p)}])
	}
	return out
}

func unconnectedWorkplaces(m *Model, w, d int) []cpmodel.BoolVar {
	out := make([]cpmodel.BoolVar, 0, len(workplace.UnconnectedWorkplaces))
	for _, p := range workplace.UnconnectedWorkplaces {
		out = append(out, m.Work[Key{w, d, int(p)}])
	}
	return out
}

func allWorkplaces(m *Model, w, d int) []cpmodel.BoolVar {
	out := make([]cpmodel.BoolVar, 0, workplace.Count)
	for p := 0; p < workplace.Count; p++ {
		out = append(out, m.Work[Key{w, d, p}])
	}
	return out
}

// addCoverage is H1.
func addCoverage(b *cpmodel.Builder, m *Model, bind *preschedule.Binding) {
	for d, day := range m.Days {
		for p := 0; p < workplace.Count; p++ {
			wp := workplace.Workplace(p)

			var total int64 = 1
			switch {
			case bind != nil && bind.IsOffRoster(d, p):
				total = 0
			case wp.IsOnCallWorkdayOnly() && !day.IsWorkday():
				total = 0
			}

			vars := make([]cpmodel.BoolVar, len(m.Workers))
			for w := range m.Workers {
				vars[w] = m.Work[Key{w, d, p}]
			}
			b.AddEquality(sum(vars), cpmodel.NewConstant(total))
		}
	}
}

// addPinned is H2.
func addPinned(b *cpmodel.Builder, m *Model, bind *preschedule.Binding, namesByWorker map[string]int) {
	if bind == nil {
		return
	}
	for _, e := range bind.Entries() {
		w, ok := namesByWorker[e.WorkerName]
		if !ok {
			continue
		}
		b.AddEquality(m.Work[Key{w, e.Day, e.Workplace}], cpmodel.NewConstant(1))
	}
}

// addEligibility is H3.
func addEligibility(b *cpmodel.Builder, m *Model) {
	for w, wk := range m.Workers {
		for p := 0; p < workplace.Count; p++ {
			if wk.EligibilityFor(p) != worker.No {
				continue
			}
			for d := range m.Days {
				b.AddEquality(m.Work[Key{w, d, p}], cpmodel.NewConstant(0))
			}
		}
	}
}

// addUnconnectedQuotas is H4.
func addUnconnectedQuotas(b *cpmodel.Builder, m *Model) {
	for w, wk := range m.Workers {
		abdDuty := make([]cpmodel.BoolVar, 0, len(m.Days))
		abdOnCall := make([]cpmodel.BoolVar, 0, len(m.Days))
		trauma := make([]cpmodel.BoolVar, 0, len(m.Days))
		for d, day := range m.Days {
			abdDuty = append(abdDuty, m.Work[Key{w, d, int(workplace.AbdDuty)}])
			trauma = append(trauma, m.Work[Key{w, d, int(workplace.TraumaOnCall)}])
			if day.IsWorkday() {
				abdOnCall = append(abdOnCall, m.Work[Key{w, d, int(workplace.AbdOnCall)}])
			}
		}
		b.AddEquality(sum(abdDuty), cpmodel.NewConstant(int64(wk.QuotaAbdDuty)))
		b.AddEquality(sum(abdOnCall), cpmodel.NewConstant(int64(wk.QuotaAbdOnCall)))
		b.AddEquality(sum(trauma), cpmodel.NewConstant(int64(wk.QuotaTraumaOnCall)))
	}
}

// addNoNightToNextDay is H5.
func addNoNightToNextDay(b *cpmodel.Builder, m *Model) {
	for w := range m.Workers {
		for d := 0; d < len(m.Days)-1; d++ {
			expr := cpmodel.NewLinearExpr().AddSum(boolArgs(nightWorkplaces(m, w, d))...)
			expr.AddSum(boolArgs(dayWorkplaces(m, w, d+1))...)
			b.AddLessOrEqual(expr, cpmodel.NewConstant(1))
		}
	}
}

// addNoSameWorkdayDayAndNight is H6.
func addNoSameWorkdayDayAndNight(b *cpmodel.Builder, m *Model) {
	for w := range m.Workers {
		for d, day := range m.Days {
			if !day.IsWorkday() {
				continue
			}
			expr := cpmodel.NewLinearExpr().AddSum(boolArgs(dayWorkplaces(m, w, d))...)
			expr.AddSum(boolArgs(nightWorkplaces(m, w, d))...)
			b.AddLessOrEqual(expr, cpmodel.NewConstant(1))
		}
	}
}

// addUnconnectedExclusivity is H7.
func addUnconnectedExclusivity(b *cpmodel.Builder, m *Model) {
	for w := range m.Workers {
		for d := range m.Days {
			isAtUnconnected := b.NewBoolVar()
			b.AddMaxEquality(isAtUnconnected, boolArgs(unconnectedWorkplaces(m, w, d))...)
			b.AddEquality(sum(allWorkplaces(m, w, d)), cpmodel.NewConstant(1)).OnlyEnforceIf(isAtUnconnected)
		}
	}
}

// addAvailability is H8.
func addAvailability(b *cpmodel.Builder, m *Model) {
	for w, wk := range m.Workers {
		for d := range m.Days {
			avail := availabilityFor(wk, d)

			if isZeroOrPrefer(avail.Day) {
				b.AddLessOrEqual(sum(dayWorkplaces(m, w, d)), cpmodel.NewConstant(1))
			} else {
				b.AddEquality(sum(dayWorkplaces(m, w, d)), cpmodel.NewConstant(0))
			}

			if isZeroOrPrefer(avail.Night) {
				b.AddLessOrEqual(sum(nightWorkplaces(m, w, d)), cpmodel.NewConstant(1))
			} else {
				b.AddEquality(sum(nightWorkplaces(m, w, d)), cpmodel.NewConstant(0))
			}

			if isZeroOrPrefer(avail.Day) && isZeroOrPrefer(avail.Night) {
				b.AddLessOrEqual(sum(unconnectedWorkplaces(m, w, d)), cpmodel.NewConstant(1))
			} else {
				b.AddEquality(sum(unconnectedWorkplaces(m, w, d)), cpmodel.NewConstant(0))
			}
		}
	}
}

// addNoThreeConsecutiveDays is H9.
func addNoThreeConsecutiveDays(b *cpmodel.Builder, m *Model) {
	working := make([][]cpmodel.BoolVar, len(m.Workers))
	for w := range m.Workers {
		working[w] = make([]cpmodel.BoolVar, len(m.Days))
		for d := range m.Days {
			wv := b.NewBoolVar()
			b.AddMaxEquality(wv, boolArgs(allWorkplaces(m, w, d))...)
			working[w][d] = wv
		}
	}
	for w := range m.Workers {
		for d := 0; d <= len(m.Days)-3; d++ {
			e := cpmodel.NewLinearExpr()
			e.Add(working[w][d])
			e.Add(working[w][d+1])
			e.Add(working[w][d+2])
			b.AddLessOrEqual(e, cpmodel.NewConstant(2))
		}
	}
}

// addWeekends is H10.
func addWeekends(b *cpmodel.Builder, m *Model) {
	pairs := calendar.WeekendPairs(m.Days)
	nightIdx := nightIndices()

	for w, wk := range m.Workers {
		if wk.WorksNightShifts(nightIdx) {
			addNightWorkerWeekendRule(b, m, w)
		} else {
			addDayOnlyWorkerWeekendRule(b, m, w, pairs)
		}
	}
}

func addNightWorkerWeekendRule(b *cpmodel.Builder, m *Model, w int) {
	var mop24 []cpmodel.BoolVar

	for d, day := range m.Days {
		if !day.IsWeekendOrHoliday() {
			continue
		}

		worksMopDay := b.NewBoolVar()
		b.AddEquality(m.Work[Key{w, d, int(workplace.Day3)}], worksMopDay)
		mopDayPartners := sum([]cpmodel.BoolVar{
			m.Work[Key{w, d, int(workplace.NightABD)}],
			m.Work[Key{w, d, int(workplace.NightB)}],
		})
		b.AddEquality(mopDayPartners, cpmodel.NewConstant(1)).OnlyEnforceIf(worksMopDay)
		b.AddLessOrEqual(mopDayPartners, cpmodel.NewConstant(1)).OnlyEnforceIf(worksMopDay.Not())

		worksMopNight := b.NewBoolVar()
		b.AddEquality(m.Work[Key{w, d, int(workplace.NightMOP)}], worksMopNight)
		mopNightPartners := sum([]cpmodel.BoolVar{
			m.Work[Key{w, d, int(workplace.Day2)}],
			m.Work[Key{w, d, int(workplace.Day1)}],
		})
		b.AddEquality(mopNightPartners, cpmodel.NewConstant(1)).OnlyEnforceIf(worksMopNight)
		b.AddLessOrEqual(mopNightPartners, cpmodel.NewConstant(1)).OnlyEnforceIf(worksMopNight.Not())

		works24 := b.NewBoolVar()
		b.AddMaxEquality(works24, worksMopDay, worksMopNight)

		if d < len(m.Days)-1 {
			b.AddEquality(sum(allWorkplaces(m, w, d+1)), cpmodel.NewConstant(0)).OnlyEnforceIf(works24)
		}
		if d > 0 {
			b.AddEquality(sum(allWorkplaces(m, w, d-1)), cpmodel.NewConstant(0)).OnlyEnforceIf(works24)
		}

		mop24 = append(mop24, worksMopDay, worksMopNight)
	}

	b.AddLessOrEqual(sum(mop24), cpmodel.NewConstant(1))
}

func addDayOnlyWorkerWeekendRule(b *cpmodel.Builder, m *Model, w int, pairs []calendar.WeekendPair) {
	var worksPair []cpmodel.BoolVar

	for _, pr := range pairs {
		shiftsD1 := sum(dayWorkplaces(m, w, pr.First))
		shiftsD2 := sum(dayWorkplaces(m, w, pr.Second))

		worksD1 := b.NewBoolVar()
		b.AddGreaterOrEqual(shiftsD1, cpmodel.NewConstant(1)).OnlyEnforceIf(worksD1)
		b.AddEquality(shiftsD1, cpmodel.NewConstant(0)).OnlyEnforceIf(worksD1.Not())

		worksD2 := b.NewBoolVar()
		b.AddGreaterOrEqual(shiftsD2, cpmodel.NewConstant(1)).OnlyEnforceIf(worksD2)
		b.AddEquality(shiftsD2, cpmodel.NewConstant(0)).OnlyEnforceIf(worksD2.Not())

		pair := b.NewBoolVar()
		b.AddBoolAnd(worksD1, worksD2).OnlyEnforceIf(pair)
		b.AddBoolOr(worksD1.Not(), worksD2.Not()).OnlyEnforceIf(pair.Not())

		worksPair = append(worksPair, pair)
	}

	b.AddLessOrEqual(sum(worksPair), cpmodel.NewConstant(1))
}

// addDayShiftCap is H11.
func addDayShiftCap(b *cpmodel.Builder, m *Model) {
	for w, wk := range m.Workers {
		if wk.MaxDayShifts == nil {
			continue
		}
		var all []cpmodel.BoolVar
		for d := range m.Days {
			all = append(all, dayWorkplaces(m, w, d)...)
		}
		b.AddLessOrEqual(sum(all), cpmodel.NewConstant(int64(*wk.MaxDayShifts)))
	}
}

// addNightShiftWindow is H12.
func addNightShiftWindow(b *cpmodel.Builder, m *Model) {
	nightIdx := nightIndices()
	for w, wk := range m.Workers {
		if !wk.WorksNightShifts(nightIdx) {
			continue
		}
		mn := wk.MinNightShifts()
		mx := wk.MaxNightShifts()

		var all []cpmodel.BoolVar
		for d := range m.Days {
			all = append(all, nightWorkplaces(m, w, d)...)
		}

		if mn == 0 && mx == 0 {
			b.AddEquality(sum(all), cpmodel.NewConstant(0))
			continue
		}
		b.AddGreaterOrEqual(sum(all), cpmodel.NewConstant(int64(mn)))
		b.AddLessOrEqual(sum(all), cpmodel.NewConstant(int64(mx)))
	}
}

// addRotatingQuota is H13.
func addRotatingQuota(b *cpmodel.Builder, m *Model, rotatingScheduledCount int) {
	for w, wk := range m.Workers {
		if !wk.IsRotating() {
			continue
		}
		var all []cpmodel.BoolVar
		for d := range m.Days {
			all = append(all, allWorkplaces(m, w, d)...)
		}
		b.AddEquality(sum(all), cpmodel.NewConstant(int64(rotatingScheduledCount)))
	}
}

// addLimitedPins is H14.
func addLimitedPins(b *cpmodel.Builder, m *Model) {
	for w, wk := range m.Workers {
		if wk.Included != worker.Limited {
			continue
		}
		var allDay, allNight []cpmodel.BoolVar
		for d := range m.Days {
			allDay = append(allDay, dayWorkplaces(m, w, d)...)
			allNight = append(allNight, nightWorkplaces(m, w, d)...)
		}
		if wk.PinnedDayShifts != nil {
			b.AddEquality(sum(allDay), cpmodel.NewConstant(int64(*wk.PinnedDayShifts)))
		}
		if wk.PinnedNightShifts != nil {
			b.AddEquality(sum(allNight), cpmodel.NewConstant(int64(*wk.PinnedNightShifts)))
		}
	}
}

func availabilityFor(wk worker.Worker, d int) worker.Availability {
	if d >= len(wk.Availability) {
		return worker.Availability{Day: worker.Forbidden, Night: worker.Forbidden}
	}
	return wk.Availability[d]
}

func isZeroOrPrefer(p worker.Preference) bool {
	return p == worker.Neutral || p == worker.Prefer
}

func nightIndices() []int {
	idx := make([]int, len(workplace.NightWorkplaces))
	for i, p := range workplace.NightWorkplaces {
		idx[i] = int(p)
	}
	return idx
}

func boolArgs(vars []cpmodel.BoolVar) []cpmodel.LinearArgument {
	out := make([]cpmodel.LinearArgument, len(vars))
	for i, v := range vars {
		out[i] = v
	}
	return out
}
