// Package input decodes the already-canonicalized worker and preschedule
// JSON records the CLI consumes. Joining the raw wishes file and master
// sheet into these records is out of scope (spec.md §3): by the time a
// record reaches this package, names are canonicalized and every field is
// populated.
package input

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hospitalops/surgroster/internal/preschedule"
	"github.com/hospitalops/surgroster/internal/worker"
)

// WorkerRecord is the wire shape of a single worker.
type WorkerRecord struct {
	Name            string `json:"name"`
	Included        string `json:"included"` // "full" | "limited" | "excluded"
	Status          string `json:"status"`
	SpecialtyWishes string `json:"specialty_wishes"`
	SpecialtyMaster string `json:"specialty_master"`

	// Eligibility maps a canonical workplace name (see internal/workplace)
	// to "yes" | "maybe" | "no".
	Eligibility map[string]string `json:"eligibility"`

	// Availability[d] is a two-element array [day_slot, night_slot], each
	// -1, 0, or +1.
	Availability [][2]int `json:"availability"`

	QuotaAbdDuty      int `json:"quota_abd_duty"`
	QuotaAbdOnCall    int `json:"quota_abd_oncall"`
	QuotaTraumaOnCall int `json:"quota_trauma_oncall"`

	MaxDayShifts      *int `json:"max_day_shifts,omitempty"`
	ReduceNights      int  `json:"reduce_nights"`
	PinnedDayShifts   *int `json:"pinned_day_shifts,omitempty"`
	PinnedNightShifts *int `json:"pinned_night_shifts,omitempty"`
}

// PrescheduleRecord is the wire shape of a single preschedule entry.
type PrescheduleRecord struct {
	WorkerName string `json:"worker_name"`
	Date       string `json:"date"` // ISO date; resolved to a day index by the caller
	Workplace  string `json:"workplace"`
}

// DecodeWorkers decodes a JSON array of WorkerRecord from r.
func DecodeWorkers(r io.Reader) ([]WorkerRecord, error) {
	var recs []WorkerRecord
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("input: decoding worker records: %w", err)
	}
	return recs, nil
}

// LoadWorkers reads and decodes a JSON array of WorkerRecord from path.
func LoadWorkers(path string) ([]WorkerRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: opening %s: %w", path, err)
	}
	defer f.Close()
	return DecodeWorkers(f)
}

// DecodePreschedule decodes a JSON array of PrescheduleRecord from r.
func DecodePreschedule(r io.Reader) ([]PrescheduleRecord, error) {
	var recs []PrescheduleRecord
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("input: decoding preschedule records: %w", err)
	}
	return recs, nil
}

// LoadPreschedule reads and decodes a JSON array of PrescheduleRecord from
// path. An empty/missing path yields an empty slice — a preschedule is
// optional.
func LoadPreschedule(path string) ([]PrescheduleRecord, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: opening %s: %w", path, err)
	}
	defer f.Close()
	return DecodePreschedule(f)
}

var includedByName = map[string]worker.Included{
	"full":     worker.Full,
	"limited":  worker.Limited,
	"excluded": worker.Excluded,
}

var eligibilityByName = map[string]worker.Eligibility{
	"yes":   worker.Yes,
	"maybe": worker.Maybe,
	"no":    worker.No,
}

// ToWorker converts a WorkerRecord into an internal/worker.Worker, resolving
// workplace names through nameToIndex (normally workplace.IndexOf).
func (rec WorkerRecord) ToWorker(nameToIndex func(string) (int, error)) (worker.Worker, error) {
	included, ok := includedByName[rec.Included]
	if !ok {
		return worker.Worker{}, fmt.Errorf("input: worker %q: unknown included value %q", rec.Name, rec.Included)
	}

	eligibility := make(map[int]worker.Eligibility, len(rec.Eligibility))
	for name, tag := range rec.Eligibility {
		idx, err := nameToIndex(name)
		if err != nil {
			return worker.Worker{}, fmt.Errorf("input: worker %q: %w", rec.Name, err)
		}
		e, ok := eligibilityByName[tag]
		if !ok {
			return worker.Worker{}, fmt.Errorf("input: worker %q: unknown eligibility tag %q for %q", rec.Name, tag, name)
		}
		eligibility[idx] = e
	}

	availability := make([]worker.Availability, len(rec.Availability))
	for d, pair := range rec.Availability {
		availability[d] = worker.Availability{
			Day:   worker.Preference(pair[0]),
			Night: worker.Preference(pair[1]),
		}
	}

	return worker.Worker{
		Name:              rec.Name,
		Included:          included,
		Status:            worker.Status(rec.Status),
		SpecialtyWishes:   rec.SpecialtyWishes,
		SpecialtyMaster:   rec.SpecialtyMaster,
		Eligibility:       eligibility,
		Availability:      availability,
		QuotaAbdDuty:      rec.QuotaAbdDuty,
		QuotaAbdOnCall:    rec.QuotaAbdOnCall,
		QuotaTraumaOnCall: rec.QuotaTraumaOnCall,
		MaxDayShifts:      rec.MaxDayShifts,
		ReduceNights:      rec.ReduceNights,
		PinnedDayShifts:   rec.PinnedDayShifts,
		PinnedNightShifts: rec.PinnedNightShifts,
	}, nil
}

// ToEntry converts a PrescheduleRecord into a preschedule.Entry, resolving
// the date through dateToIndex and the workplace name through nameToIndex.
func (rec PrescheduleRecord) ToEntry(dateToIndex func(string) (int, error), nameToIndex func(string) (int, error)) (preschedule.Entry, error) {
	day, err := dateToIndex(rec.Date)
	if err != nil {
		return preschedule.Entry{}, fmt.Errorf("input: preschedule entry for %q: %w", rec.WorkerName, err)
	}
	wp, err := nameToIndex(rec.Workplace)
	if err != nil {
		return preschedule.Entry{}, fmt.Errorf("input: preschedule entry for %q: %w", rec.WorkerName, err)
	}
	return preschedule.Entry{WorkerName: rec.WorkerName, Day: day, Workplace: wp}, nil
}
