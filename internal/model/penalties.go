package model

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/hospitalops/surgroster/internal/calendar"
	"github.com/hospitalops/surgroster/internal/config"
	"github.com/hospitalops/surgroster/internal/worker"
	"github.com/hospitalops/surgroster/internal/workplace"
)

// addPreferentialDayPenalty is S1: reward assignments landing on a slot the
// worker marked Prefer.
func addPreferentialDayPenalty(b *cpmodel.Builder, m *Model) cpmodel.IntVar {
	upperBound := int64(len(m.Workers) * len(m.Days) * workplace.Count)
	v := b.NewIntVar(0, upperBound).WithName("preferential_day")

	var terms []cpmodel.BoolVar
	for w, wk := range m.Workers {
		for d := range m.Days {
			avail := availabilityFor(wk, d)
			if avail.Day == worker.Prefer {
				terms = append(terms, dayWorkplaces(m, w, d)...)
			}
			if avail.Night == worker.Prefer {
				terms = append(terms, nightWorkplaces(m, w, d)...)
			}
		}
	}
	b.AddEquality(v, sum(terms))
	return v
}

// addPreferentialUnconnectedPenalty is S2: reward unconnected-workplace
// assignments when the worker is available all day.
func addPreferentialUnconnectedPenalty(b *cpmodel.Builder, m *Model) cpmodel.IntVar {
	upperBound := int64(len(m.Workers) * len(m.Days))
	v := b.NewIntVar(0, upperBound).WithName("preferential_unconnected")

	var terms []cpmodel.BoolVar
	for w, wk := range m.Workers {
		for d := range m.Days {
			avail := availabilityFor(wk, d)
			if avail.Day == worker.Prefer && avail.Night == worker.Prefer {
				terms = append(terms, unconnectedWorkplaces(m, w, d)...)
			}
		}
	}
	b.AddEquality(v, sum(terms))
	return v
}

// addPreferredWorkplacePenalty is S3: MAYBE assignments minus YES
// assignments, so the objective can favor YES over MAYBE.
func addPreferredWorkplacePenalty(b *cpmodel.Builder, m *Model) cpmodel.IntVar {
	bound := int64(len(m.Workers) * len(m.Days) * workplace.Count)
	v := b.NewIntVarFromDomain(cpmodel.NewDomain(-bound, bound)).WithName("preferred_workplace")

	var maybeTerms, yesTerms []cpmodel.BoolVar
	for w, wk := range m.Workers {
		for p := 0; p < workplace.Count; p++ {
			switch wk.EligibilityFor(p) {
			case worker.Maybe:
				for d := range m.Days {
					maybeTerms = append(maybeTerms, m.Work[Key{w, d, p}])
				}
			case worker.Yes:
				for d := range m.Days {
					yesTerms = append(yesTerms, m.Work[Key{w, d, p}])
				}
			}
		}
	}

	expr := cpmodel.NewLinearExpr().AddSum(boolArgs(maybeTerms)...)
	for _, t := range yesTerms {
		expr.AddTerm(t, -1)
	}
	b.AddEquality(v, expr)
	return v
}

// addConsecutiveNightsPenalty is S4: one Boolean per (worker, day) that is
// true iff the worker has a night assignment on both that day and the next.
func addConsecutiveNightsPenalty(b *cpmodel.Builder, m *Model) []cpmodel.BoolVar {
	var out []cpmodel.BoolVar

	for w := range m.Workers {
		for d := 0; d < len(m.Days)-1; d++ {
			nightToday := b.NewBoolVar()
			b.AddGreaterOrEqual(sum(nightWorkplaces(m, w, d)), cpmodel.NewConstant(1)).OnlyEnforceIf(nightToday)
			b.AddEquality(sum(nightWorkplaces(m, w, d)), cpmodel.NewConstant(0)).OnlyEnforceIf(nightToday.Not())

			nightTomorrow := b.NewBoolVar()
			b.AddGreaterOrEqual(sum(nightWorkplaces(m, w, d+1)), cpmodel.NewConstant(1)).OnlyEnforceIf(nightTomorrow)
			b.AddEquality(sum(nightWorkplaces(m, w, d+1)), cpmodel.NewConstant(0)).OnlyEnforceIf(nightTomorrow.Not())

			consecutive := b.NewBoolVar()
			b.AddBoolAnd(nightToday, nightTomorrow).OnlyEnforceIf(consecutive)
			b.AddBoolOr(nightToday.Not(), nightTomorrow.Not()).OnlyEnforceIf(consecutive.Not())

			out = append(out, consecutive)
		}
	}
	return out
}

// addWorkplaceBalancePenalty is S5: for each worker with more than one YES
// (connected) workplace, the range between their busiest and quietest such
// workplace.
func addWorkplaceBalancePenalty(b *cpmodel.Builder, m *Model) []cpmodel.IntVar {
	var out []cpmodel.IntVar
	numDays := int64(len(m.Days))

	for w, wk := range m.Workers {
		var yesConnected []int
		for p := 0; p < workplace.Count; p++ {
			wp := workplace.Workplace(p)
			if wp.IsUnconnected() {
				continue
			}
			if wk.EligibilityFor(p) == worker.Yes {
				yesConnected = append(yesConnected, p)
			}
		}
		if len(yesConnected) <= 1 {
			continue
		}

		counts := make([]cpmodel.LinearArgument, len(yesConnected))
		for i, p := range yesConnected {
			var perDay []cpmodel.BoolVar
			for d := range m.Days {
				perDay = append(perDay, m.Work[Key{w, d, p}])
			}
			counts[i] = sum(perDay)
		}

		maxCount := b.NewIntVar(0, numDays).WithName("max_workplace")
		minCount := b.NewIntVar(0, numDays).WithName("min_workplace")
		b.AddMaxEquality(maxCount, counts...)
		b.AddMinEquality(minCount, counts...)

		rangeVar := b.NewIntVar(0, numDays).WithName("workplace_range")
		b.AddEquality(rangeVar, cpmodel.NewLinearExpr().Add(maxCount).AddTerm(minCount, -1))

		out = append(out, rangeVar)
	}
	return out
}

// addSeniorWeekendBonus is S6: a weighted bonus for assigning both days of
// a weekend pair's trauma on-call slot to the same worker, weighted
// exponentially in favor of more senior workers.
func addSeniorWeekendBonus(b *cpmodel.Builder, m *Model) cpmodel.IntVar {
	pairs := calendar.WeekendPairs(m.Days)
	maxYear := 0
	for _, wk := range m.Workers {
		if y := wk.YearOfSpecialization(); y > maxYear {
			maxYear = y
		}
	}

	upperBound := int64(len(pairs) * len(m.Workers) * 128)
	v := b.NewIntVar(0, upperBound).WithName("senior_weekend_bonus")

	expr := cpmodel.NewLinearExpr()
	for _, pr := range pairs {
		for w, wk := range m.Workers {
			both := b.NewBoolVar()
			traumaSum := sum([]cpmodel.BoolVar{
				m.Work[Key{w, pr.First, int(workplace.TraumaOnCall)}],
				m.Work[Key{w, pr.Second, int(workplace.TraumaOnCall)}],
			})
			b.AddEquality(traumaSum, cpmodel.NewConstant(2)).OnlyEnforceIf(both)
			b.AddNotEqual(traumaSum, cpmodel.NewConstant(2)).OnlyEnforceIf(both.Not())

			seniority := maxYear - wk.YearOfSpecialization()
			weight := int64(1) << uint(7-seniority)
			if weight < 0 {
				weight = 0
			}
			expr.AddTerm(both, weight)
		}
	}
	b.AddEquality(v, expr)
	return v
}

// addWorkloadEqualization is S7: the primary objective term, minimizing the
// spread between each non-rotating worker's weighted workload.
func addWorkloadEqualization(b *cpmodel.Builder, m *Model, weights config.WorkplaceWeights) (max, min cpmodel.IntVar, terms []WorkloadTerm) {
	maxWeight := weights.Workday
	for _, x := range []int{weights.Weekend, weights.Night1, weights.Night2, weights.Night3, weights.Night4, weights.Night5, weights.Night6} {
		if x > maxWeight {
			maxWeight = x
		}
	}
	maxPossibleWork := int64(len(m.Days) * maxWeight)

	for w, wk := range m.Workers {
		if wk.IsRotating() {
			continue
		}

		total := b.NewIntVar(0, maxPossibleWork).WithName("total_workload")
		expr := cpmodel.NewLinearExpr()
		for d, day := range m.Days {
			for _, p := range workplace.DayWorkplaces {
				weight := dayOrWeekendWeight(weights, day)
				expr.AddTerm(m.Work[Key{w, d, int(p)}], int64(weight))
			}
			for _, p := range workplace.NightWorkplaces {
				weight := weights.NightWeight(wk.YearOfSpecialization())
				expr.AddTerm(m.Work[Key{w, d, int(p)}], int64(weight))
			}
		}
		b.AddEquality(total, expr)

		terms = append(terms, WorkloadTerm{Worker: w, Total: total})
	}

	targets := make([]cpmodel.LinearArgument, len(terms))
	for i, t := range terms {
		targets[i] = t.Total
	}

	max = b.NewIntVar(0, maxPossibleWork).WithName("max_workload")
	min = b.NewIntVar(0, maxPossibleWork).WithName("min_workload")
	b.AddMaxEquality(max, targets...)
	b.AddMinEquality(min, targets...)
	return max, min, terms
}

func dayOrWeekendWeight(weights config.WorkplaceWeights, day calendar.Day) int {
	if day.IsWorkday() {
		return weights.Workday
	}
	return weights.Weekend
}
