// Package objective assembles the weighted CP-SAT objective from the
// penalty/bonus variables the model builder exposes (spec.md §4.6).
package objective

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/hospitalops/surgroster/internal/config"
	"github.com/hospitalops/surgroster/internal/model"
)

// Assemble builds and installs the single weighted Minimize objective:
//
//	W_equal · S7
//	  + W_consec_nights · S4
//	  + W_balance · S5
//	  − W_pref_day · (S1 + S2)
//	  + W_pref_workplace · S3
//	  − W_weekend_trauma · S6
func Assemble(b *cpmodel.Builder, p model.Penalties, cfg config.Config) {
	expr := cpmodel.NewLinearExpr()

	expr.AddTerm(p.WorkloadMax, int64(cfg.WeightEqualWorkload))
	expr.AddTerm(p.WorkloadMin, -int64(cfg.WeightEqualWorkload))

	for _, cn := range p.ConsecutiveNights {
		expr.AddTerm(cn, int64(cfg.WeightConsecutiveNights))
	}

	for _, bal := range p.WorkplaceBalance {
		expr.AddTerm(bal, int64(cfg.WeightEquallyDistributedWorkplaces))
	}

	expr.AddTerm(p.PreferentialDay, -int64(cfg.WeightPreferredDayAssignment))
	expr.AddTerm(p.PreferentialUnconnected, -int64(cfg.WeightPreferredDayAssignment))

	expr.AddTerm(p.PreferredWorkplace, int64(cfg.WeightPreferredWorkplaceAssignment))

	expr.AddTerm(p.SeniorWeekendBonus, -int64(cfg.WeightWeekendTravmaprip))

	b.Minimize(expr)
}
