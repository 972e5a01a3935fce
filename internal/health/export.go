// Package health parses daily health exports into store models. The export
// is a plain JSON file already in physical units (ms, bpm, minutes, kcal);
// acquiring it from a device or vendor API is out of scope here.
package health

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"readiness/internal/store"
)

// Export is the top-level shape of a daily export file.
type Export struct {
	Days []Day `json:"days"`
}

// Day is one calendar day of exported signals. Pointer fields are omitted
// from the JSON when the source didn't record them.
type Day struct {
	Date            string   `json:"date"` // YYYY-MM-DD
	HRV             *float64 `json:"hrv_ms"`
	RestingHR       *float64 `json:"resting_hr_bpm"`
	RespiratoryRate *float64 `json:"respiratory_rate"`

	Sleep    *Sleep    `json:"sleep"`
	Activity *Activity `json:"activity"`
	Workouts []Workout `json:"workouts"`
}

// Sleep is one night ending on the day's date.
type Sleep struct {
	InBedMinutes  float64   `json:"in_bed_minutes"`
	AsleepMinutes float64   `json:"asleep_minutes"`
	DeepMinutes   float64   `json:"deep_minutes"`
	REMMinutes    float64   `json:"rem_minutes"`
	CoreMinutes   float64   `json:"core_minutes"`
	AwakeMinutes  float64   `json:"awake_minutes"`
	EfficiencyPct *float64  `json:"efficiency_pct"`
	Disturbances  int       `json:"disturbances"`
	SleepOnset    time.Time `json:"sleep_onset"`
	WakeTime      time.Time `json:"wake_time"`
}

// Activity is the day's non-workout movement totals.
type Activity struct {
	Steps        int     `json:"steps"`
	ActiveEnergy float64 `json:"active_energy_kcal"`
}

// Workout is a single exported exercise session.
type Workout struct {
	Type            string   `json:"type"`
	DurationSeconds int      `json:"duration_seconds"`
	AverageHR       *float64 `json:"average_hr_bpm"`
	MaxHR           *float64 `json:"max_hr_bpm"`
	AveragePower    *float64 `json:"average_power_watts"`
	StrengthRPE     *float64 `json:"strength_rpe"`
	ZoneSeconds     *[5]int  `json:"zone_seconds"`
}

// ParseFile reads and parses an export file.
func ParseFile(path string) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes an export and validates day dates. Duplicate dates are an
// error: an export with two entries for one day is ambiguous, not mergeable.
func Parse(r io.Reader) (*Export, error) {
	var export Export
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}

	seen := make(map[string]bool, len(export.Days))
	for i := range export.Days {
		d := &export.Days[i]
		if _, err := time.Parse("2006-01-02", d.Date); err != nil {
			return nil, fmt.Errorf("day %d: bad date %q: %w", i, d.Date, err)
		}
		if seen[d.Date] {
			return nil, fmt.Errorf("duplicate date %s in export", d.Date)
		}
		seen[d.Date] = true
	}

	return &export, nil
}

// Observation converts a day's top-level signals into a store model.
func (d *Day) Observation() store.DailyObservation {
	return store.DailyObservation{
		Date:            d.Date,
		HRV:             d.HRV,
		RestingHR:       d.RestingHR,
		RespiratoryRate: d.RespiratoryRate,
	}
}

// SleepRecord converts the day's sleep, or nil when none was exported.
func (d *Day) SleepRecord() *store.SleepRecord {
	if d.Sleep == nil {
		return nil
	}
	return &store.SleepRecord{
		Date:          d.Date,
		InBedMinutes:  d.Sleep.InBedMinutes,
		AsleepMinutes: d.Sleep.AsleepMinutes,
		DeepMinutes:   d.Sleep.DeepMinutes,
		REMMinutes:    d.Sleep.REMMinutes,
		CoreMinutes:   d.Sleep.CoreMinutes,
		AwakeMinutes:  d.Sleep.AwakeMinutes,
		EfficiencyPct: d.Sleep.EfficiencyPct,
		Disturbances:  d.Sleep.Disturbances,
		SleepOnset:    d.Sleep.SleepOnset,
		WakeTime:      d.Sleep.WakeTime,
	}
}

// DailyActivity converts the day's movement totals, or nil when absent.
func (d *Day) DailyActivity() *store.DailyActivity {
	if d.Activity == nil {
		return nil
	}
	return &store.DailyActivity{
		Date:         d.Date,
		Steps:        d.Activity.Steps,
		ActiveEnergy: d.Activity.ActiveEnergy,
	}
}

// WorkoutRecords converts the day's workouts.
func (d *Day) WorkoutRecords() []store.Workout {
	workouts := make([]store.Workout, 0, len(d.Workouts))
	for i := range d.Workouts {
		w := &d.Workouts[i]
		workouts = append(workouts, store.Workout{
			Date:            d.Date,
			Type:            w.Type,
			DurationSeconds: w.DurationSeconds,
			AverageHR:       w.AverageHR,
			MaxHR:           w.MaxHR,
			AveragePower:    w.AveragePower,
			StrengthRPE:     w.StrengthRPE,
			ZoneSeconds:     w.ZoneSeconds,
		})
	}
	return workouts
}
