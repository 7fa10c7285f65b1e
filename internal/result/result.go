// Package result materializes a solved model into the (D+1)×(|workplaces|+1)
// schedule table and the per-worker statistics table of spec.md §4.8, and
// writes both to CSV.
package result

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/hospitalops/surgroster/internal/model"
	"github.com/hospitalops/surgroster/internal/preschedule"
	"github.com/hospitalops/surgroster/internal/workplace"
)

// Schedule is the dense day×workplace assignment table, header row
// included.
type Schedule struct {
	Header []string
	Rows   [][]string
}

// Stats is the per-worker shift-count table, sorted by specialty_master,
// header row included.
type Stats struct {
	Header []string
	Rows   [][]string
}

// Summary reports the largest/smallest shift-count and workload holders,
// the run-level narrative spec.md §4.8 asks for.
type Summary struct {
	MostShiftsWorker     string
	MostShiftsCount      int
	FewestShiftsWorker   string
	FewestShiftsCount    int
	LargestWorkloadName  string
	LargestWorkload      int64
	SmallestWorkloadName string
	SmallestWorkload     int64
}

func header() []string {
	h := make([]string, 0, workplace.Count+1)
	h = append(h, "DATE")
	for _, wp := range workplace.All {
		h = append(h, wp.String())
	}
	return h
}

// BuildSchedule fills the dense schedule table: preschedule entries appear
// verbatim (even for workers outside the roster), every other cell holds
// the solved assignment's unique worker name or stays empty.
func BuildSchedule(m *model.Model, response *cmpb.CpSolverResponse, bind *preschedule.Binding) Schedule {
	h := header()
	rows := make([][]string, len(m.Days))

	for d, day := range m.Days {
		row := make([]string, len(h))
		row[0] = day.String()
		rows[d] = row
	}

	if bind != nil {
		for _, e := range bind.Entries() {
			if e.Day < 0 || e.Day >= len(rows) {
				continue
			}
			rows[e.Day][e.Workplace+1] = e.WorkerName
		}
	}

	for d := range m.Days {
		for p := 0; p < workplace.Count; p++ {
			for w, wk := range m.Workers {
				if cpmodel.SolutionBooleanValue(response, m.Work[model.Key{Worker: w, Day: d, Workplace: p}]) {
					rows[d][p+1] = wk.Name
				}
			}
		}
	}

	return Schedule{Header: h, Rows: rows}
}

// BuildStats counts, per worker and per workplace, how many times that
// worker was assigned there, sorted by specialty_master.
func BuildStats(m *model.Model, response *cmpb.CpSolverResponse) Stats {
	h := header()
	h[0] = "NAME"

	type row struct {
		specialtyMaster string
		cells           []string
	}
	rowsByWorker := make([]row, len(m.Workers))

	for w, wk := range m.Workers {
		cells := make([]string, workplace.Count+1)
		cells[0] = wk.Name
		for p := 0; p < workplace.Count; p++ {
			count := 0
			for d := range m.Days {
				if cpmodel.SolutionBooleanValue(response, m.Work[model.Key{Worker: w, Day: d, Workplace: p}]) {
					count++
				}
			}
			cells[p+1] = fmt.Sprintf("%d", count)
		}
		rowsByWorker[w] = row{specialtyMaster: wk.SpecialtyMaster, cells: cells}
	}

	sort.SliceStable(rowsByWorker, func(i, j int) bool {
		return rowsByWorker[i].specialtyMaster < rowsByWorker[j].specialtyMaster
	})

	rows := make([][]string, len(rowsByWorker))
	for i, r := range rowsByWorker {
		rows[i] = r.cells
	}

	return Stats{Header: h, Rows: rows}
}

// BuildSummary reports the largest/smallest total-shift-count workers and
// the largest/smallest weighted-workload workers (S7's terms).
func BuildSummary(m *model.Model, response *cmpb.CpSolverResponse) Summary {
	var s Summary

	shiftCounts := make([]int, len(m.Workers))
	for w := range m.Workers {
		total := 0
		for d := range m.Days {
			for p := 0; p < workplace.Count; p++ {
				if cpmodel.SolutionBooleanValue(response, m.Work[model.Key{Worker: w, Day: d, Workplace: p}]) {
					total++
				}
			}
		}
		shiftCounts[w] = total
	}

	mostIdx, fewestIdx := 0, 0
	for w := range m.Workers {
		if shiftCounts[w] > shiftCounts[mostIdx] {
			mostIdx = w
		}
		if shiftCounts[w] < shiftCounts[fewestIdx] {
			fewestIdx = w
		}
	}
	if len(m.Workers) > 0 {
		s.MostShiftsWorker = m.Workers[mostIdx].Name
		s.MostShiftsCount = shiftCounts[mostIdx]
		s.FewestShiftsWorker = m.Workers[fewestIdx].Name
		s.FewestShiftsCount = shiftCounts[fewestIdx]
	}

	if len(m.Penalties.WorkloadTerms) > 0 {
		largest := m.Penalties.WorkloadTerms[0]
		smallest := m.Penalties.WorkloadTerms[0]
		largestVal := cpmodel.SolutionIntegerValue(response, largest.Total)
		smallestVal := largestVal
		for _, t := range m.Penalties.WorkloadTerms[1:] {
			v := cpmodel.SolutionIntegerValue(response, t.Total)
			if v > largestVal {
				largest, largestVal = t, v
			}
			if v < smallestVal {
				smallest, smallestVal = t, v
			}
		}
		s.LargestWorkloadName = m.Workers[largest.Worker].Name
		s.LargestWorkload = largestVal
		s.SmallestWorkloadName = m.Workers[smallest.Worker].Name
		s.SmallestWorkload = smallestVal
	}

	return s
}

// WriteCSV writes a table (header + rows) as CSV to w, quoting a field only
// where the CSV format requires it.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = false
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("result: writing header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("result: writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
