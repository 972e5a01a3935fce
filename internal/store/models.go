package store

import "time"

// DailyObservation represents one calendar day's raw physiological signals.
// All values are in the units they were recorded in (ms, bpm, breaths/min);
// absent signals are nil.
type DailyObservation struct {
	Date            string   `db:"date"`             // YYYY-MM-DD
	HRV             *float64 `db:"hrv"`              // rMSSD, milliseconds
	RestingHR       *float64 `db:"resting_hr"`       // bpm
	RespiratoryRate *float64 `db:"respiratory_rate"` // breaths/min

	// SleepScore is the previously computed sleep score for this date,
	// joined in for baseline windows. Nil until scored.
	SleepScore *float64 `db:"sleep_score"`

	Sleep    *SleepRecord
	Activity *DailyActivity
	Workouts []Workout
}

// SleepRecord represents one night of sleep ending on Date.
type SleepRecord struct {
	Date          string    `db:"date"`
	InBedMinutes  float64   `db:"in_bed_minutes"`
	AsleepMinutes float64   `db:"asleep_minutes"`
	DeepMinutes   float64   `db:"deep_minutes"`
	REMMinutes    float64   `db:"rem_minutes"`
	CoreMinutes   float64   `db:"core_minutes"`
	AwakeMinutes  float64   `db:"awake_minutes"`
	EfficiencyPct *float64  `db:"efficiency_pct"` // nullable; derived from minutes when absent
	Disturbances  int       `db:"disturbances"`   // wake events
	SleepOnset    time.Time `db:"sleep_onset"`
	WakeTime      time.Time `db:"wake_time"`
}

// DailyActivity represents non-workout movement for a day.
type DailyActivity struct {
	Date         string  `db:"date"`
	Steps        int     `db:"steps"`
	ActiveEnergy float64 `db:"active_energy"` // kcal
}

// Workout represents a single exercise session.
type Workout struct {
	ID              int64    `db:"id"`
	Date            string   `db:"date"`
	Type            string   `db:"type"` // "cycling", "running", "strength", "other"
	DurationSeconds int      `db:"duration_seconds"`
	AverageHR       *float64 `db:"average_hr"`    // bpm, nullable
	MaxHR           *float64 `db:"max_hr"`        // bpm, nullable
	AveragePower    *float64 `db:"average_power"` // watts, nullable
	StrengthRPE     *float64 `db:"strength_rpe"`  // session RPE 1-10, nullable

	// Time-in-zone distribution, seconds per HR zone 1-5. Nil when the
	// source didn't provide zone data.
	ZoneSeconds *[5]int
}

// WorkoutTypeStrength is the workout type whose load is estimated from
// session RPE when no heart rate data exists.
const WorkoutTypeStrength = "strength"

// LoadState represents the persisted CTL/ATL state as of a date.
type LoadState struct {
	Date string  `db:"date"`
	CTL  float64 `db:"ctl"`
	ATL  float64 `db:"atl"`
}

// DailyScores represents the computed scores for a day.
type DailyScores struct {
	Date         string    `db:"date"`
	Recovery     *float64  `db:"recovery"`
	RecoveryBand string    `db:"recovery_band"`
	Sleep        *float64  `db:"sleep"`
	SleepBand    string    `db:"sleep_band"`
	Strain       *float64  `db:"strain"`
	StrainBand   string    `db:"strain_band"`
	TRIMP        float64   `db:"trimp"` // day's raw training impulse fed to the load model
	AlcoholFlag  bool      `db:"alcohol_flag"`
	ComputedAt   time.Time `db:"computed_at"`
}
