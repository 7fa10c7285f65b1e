package main

import (
	"fmt"
	"os"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/hospitalops/surgroster/internal/calendar"
	"github.com/hospitalops/surgroster/internal/config"
	"github.com/hospitalops/surgroster/internal/input"
	"github.com/hospitalops/surgroster/internal/model"
	"github.com/hospitalops/surgroster/internal/objective"
	"github.com/hospitalops/surgroster/internal/precheck"
	"github.com/hospitalops/surgroster/internal/preschedule"
	"github.com/hospitalops/surgroster/internal/result"
	"github.com/hospitalops/surgroster/internal/rostererr"
	"github.com/hospitalops/surgroster/internal/solve"
	"github.com/hospitalops/surgroster/internal/worker"
	"github.com/hospitalops/surgroster/internal/workplace"
)

type generateOptions struct {
	configPath      string
	workersPath     string
	preschedulePath string
	scheduleOutPath string
	statsOutPath    string
}

func newGenerateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Builds and solves a monthly roster from JSON inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to the run configuration JSON")
	cmd.Flags().StringVar(&opts.workersPath, "workers", "", "path to the worker records JSON")
	cmd.Flags().StringVar(&opts.preschedulePath, "preschedule", "", "path to the preschedule JSON (optional)")
	cmd.Flags().StringVar(&opts.scheduleOutPath, "schedule-out", "schedule.csv", "path to write the solved schedule CSV")
	cmd.Flags().StringVar(&opts.statsOutPath, "stats-out", "stats.csv", "path to write the per-worker stats CSV")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("workers")

	return cmd
}

func runGenerate(opts generateOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return rostererr.Wrap(rostererr.KindInputShape, err, "loading configuration")
	}

	start, end, err := cfg.ParseDates()
	if err != nil {
		return rostererr.Wrap(rostererr.KindInputShape, err, "parsing configured horizon")
	}
	days, err := calendar.Generate(start, end)
	if err != nil {
		return rostererr.Wrap(rostererr.KindInputShape, err, "generating calendar")
	}
	dateToIndex := make(map[string]int, len(days))
	for i, d := range days {
		dateToIndex[d.String()] = i
	}

	workers, rosterNames, err := loadWorkers(opts.workersPath)
	if err != nil {
		return err
	}

	bind, err := loadPreschedule(opts.preschedulePath, dateToIndex, rosterNames)
	if err != nil {
		return err
	}

	if err := precheck.Run(workers, days, bind, precheck.Config{
		RotatingScheduledCount: cfg.RotatingScheduledCount,
	}); err != nil {
		return err
	}

	m := model.Build(workers, days, bind, model.Config{
		RotatingScheduledCount: cfg.RotatingScheduledCount,
		WorkplaceWeights:       cfg.WorkplaceWeights,
	})
	objective.Assemble(m.Builder, m.Penalties, cfg)

	response, err := solve.Run(m.Builder, solve.Params{
		TimeLimitSeconds: cfg.TimeLimit,
		PrintLogs:        cfg.PrintLogs,
	})
	if err != nil {
		return err
	}

	schedule := result.BuildSchedule(m, response, bind)
	if err := writeCSVFile(opts.scheduleOutPath, schedule.Header, schedule.Rows); err != nil {
		return rostererr.Wrap(rostererr.KindSolverFailure, err, "writing schedule output")
	}

	stats := result.BuildStats(m, response)
	if err := writeCSVFile(opts.statsOutPath, stats.Header, stats.Rows); err != nil {
		return rostererr.Wrap(rostererr.KindSolverFailure, err, "writing stats output")
	}

	printSummary(result.BuildSummary(m, response))

	return nil
}

// loadWorkers reads and converts the worker records, dropping Excluded
// workers before they ever reach the model (spec.md §4.3).
func loadWorkers(path string) ([]worker.Worker, map[string]bool, error) {
	records, err := input.LoadWorkers(path)
	if err != nil {
		return nil, nil, rostererr.Wrap(rostererr.KindInputShape, err, "loading worker records")
	}

	workers := make([]worker.Worker, 0, len(records))
	rosterNames := make(map[string]bool, len(records))
	for _, rec := range records {
		w, err := rec.ToWorker(workplaceIndex)
		if err != nil {
			return nil, nil, rostererr.Wrap(rostererr.KindInputShape, err, "converting worker record")
		}
		if w.Included == worker.Excluded {
			continue
		}
		workers = append(workers, w)
		rosterNames[w.Name] = true
	}
	return workers, rosterNames, nil
}

func loadPreschedule(path string, dateToIndex map[string]int, rosterNames map[string]bool) (*preschedule.Binding, error) {
	records, err := input.LoadPreschedule(path)
	if err != nil {
		return nil, rostererr.Wrap(rostererr.KindInputShape, err, "loading preschedule records")
	}

	entries := make([]preschedule.Entry, 0, len(records))
	for _, rec := range records {
		e, err := rec.ToEntry(func(date string) (int, error) {
			idx, ok := dateToIndex[date]
			if !ok {
				return 0, fmt.Errorf("date %q falls outside the configured horizon", date)
			}
			return idx, nil
		}, workplaceIndex)
		if err != nil {
			return nil, rostererr.Wrap(rostererr.KindInputShape, err, "converting preschedule record")
		}
		entries = append(entries, e)
	}

	return preschedule.New(entries, rosterNames), nil
}

func workplaceIndex(name string) (int, error) {
	wp, err := workplace.IndexOf(name)
	return int(wp), err
}

func writeCSVFile(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return result.WriteCSV(f, header, rows)
}

func printSummary(s result.Summary) {
	log.Infof("most shifts: %s (%d), fewest shifts: %s (%d)",
		s.MostShiftsWorker, s.MostShiftsCount, s.FewestShiftsWorker, s.FewestShiftsCount)
	log.Infof("largest workload: %s (%d), smallest workload: %s (%d)",
		s.LargestWorkloadName, s.LargestWorkload, s.SmallestWorkloadName, s.SmallestWorkload)

	fmt.Printf("most shifts:       %-20s %d\n", s.MostShiftsWorker, s.MostShiftsCount)
	fmt.Printf("fewest shifts:     %-20s %d\n", s.FewestShiftsWorker, s.FewestShiftsCount)
	fmt.Printf("largest workload:  %-20s %d\n", s.LargestWorkloadName, s.LargestWorkload)
	fmt.Printf("smallest workload: %-20s %d\n", s.SmallestWorkloadName, s.SmallestWorkload)
}
