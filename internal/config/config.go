// Package config decodes the JSON run configuration: the solver's weight
// knobs, the horizon, and a handful of tuning parameters (spec.md §6).
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// WorkplaceWeights carries the per-night-year, workday, and weekend
// per-shift weights used by the workload-equalization term (S7).
type WorkplaceWeights struct {
	Night1  int `json:"night_1"`
	Night2  int `json:"night_2"`
	Night3  int `json:"night_3"`
	Night4  int `json:"night_4"`
	Night5  int `json:"night_5"`
	Night6  int `json:"night_6"`
	Workday int `json:"workday"`
	Weekend int `json:"weekend"`
}

// NightWeight returns the weight for a night shift worked by a worker at
// the given year of specialization (1..6).
func (w WorkplaceWeights) NightWeight(year int) int {
	switch year {
	case 1:
		return w.Night1
	case 2:
		return w.Night2
	case 3:
		return w.Night3
	case 4:
		return w.Night4
	case 5:
		return w.Night5
	default:
		return w.Night6
	}
}

// Config is the full run configuration: the horizon, solver tuning knobs,
// and the objective's weights.
type Config struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	RotatingScheduledCount int `json:"rotating_scheduled_count"`

	WorkplaceWeights WorkplaceWeights `json:"workplace_weights"`

	WeightEqualWorkload                int `json:"weight_equal_workload"`
	WeightConsecutiveNights            int `json:"weight_consecutive_nights"`
	WeightEquallyDistributedWorkplaces int `json:"weight_equally_distributed_workplaces"`
	WeightPreferredDayAssignment       int `json:"weight_preferred_day_assignment"`
	WeightPreferredWorkplaceAssignment int `json:"weight_preferred_workplace_assignment"`
	WeightWeekendTravmaprip            int `json:"weight_weekend_travmaprip"`

	PrintLogs bool    `json:"print_logs"`
	TimeLimit float64 `json:"time_limit"`
}

// ParseDates parses StartDate/EndDate as ISO dates.
func (c Config) ParseDates() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("config: invalid start_date %q: %w", c.StartDate, err)
	}
	end, err = time.Parse("2006-01-02", c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("config: invalid end_date %q: %w", c.EndDate, err)
	}
	return start, end, nil
}

// Load decodes a Config from the JSON file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: opening %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode decodes a Config from r.
func Decode(r io.Reader) (Config, error) {
	var c Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("config: decoding: %w", err)
	}
	return c, nil
}
