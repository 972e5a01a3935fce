package store

import (
	"database/sql"
	"time"
)

// UpsertObservation stores or updates a day's physiological signals.
func (db *DB) UpsertObservation(o *DailyObservation) error {
	_, err := db.Exec(`
		INSERT INTO observations (date, hrv, resting_hr, respiratory_rate)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			hrv = excluded.hrv,
			resting_hr = excluded.resting_hr,
			respiratory_rate = excluded.respiratory_rate,
			updated_at = CURRENT_TIMESTAMP
	`, o.Date, o.HRV, o.RestingHR, o.RespiratoryRate)
	return err
}

// UpsertSleepRecord stores or updates the night ending on record.Date.
func (db *DB) UpsertSleepRecord(r *SleepRecord) error {
	_, err := db.Exec(`
		INSERT INTO sleep_records (
			date, in_bed_minutes, asleep_minutes, deep_minutes, rem_minutes,
			core_minutes, awake_minutes, efficiency_pct, disturbances,
			sleep_onset, wake_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			in_bed_minutes = excluded.in_bed_minutes,
			asleep_minutes = excluded.asleep_minutes,
			deep_minutes = excluded.deep_minutes,
			rem_minutes = excluded.rem_minutes,
			core_minutes = excluded.core_minutes,
			awake_minutes = excluded.awake_minutes,
			efficiency_pct = excluded.efficiency_pct,
			disturbances = excluded.disturbances,
			sleep_onset = excluded.sleep_onset,
			wake_time = excluded.wake_time
	`,
		r.Date, r.InBedMinutes, r.AsleepMinutes, r.DeepMinutes, r.REMMinutes,
		r.CoreMinutes, r.AwakeMinutes, r.EfficiencyPct, r.Disturbances,
		r.SleepOnset.Unix(), r.WakeTime.Unix(),
	)
	return err
}

// UpsertDailyActivity stores or updates a day's step/energy totals.
func (db *DB) UpsertDailyActivity(a *DailyActivity) error {
	_, err := db.Exec(`
		INSERT INTO daily_activity (date, steps, active_energy)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			steps = excluded.steps,
			active_energy = excluded.active_energy
	`, a.Date, a.Steps, a.ActiveEnergy)
	return err
}

// ReplaceWorkouts replaces all workouts stored for a date.
// Imports are per-day snapshots, so replace avoids duplicate sessions.
func (db *DB) ReplaceWorkouts(date string, workouts []Workout) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM workouts WHERE date = ?`, date); err != nil {
		return err
	}

	for _, w := range workouts {
		var z1, z2, z3, z4, z5 *int
		if w.ZoneSeconds != nil {
			z1, z2, z3, z4, z5 = &w.ZoneSeconds[0], &w.ZoneSeconds[1], &w.ZoneSeconds[2], &w.ZoneSeconds[3], &w.ZoneSeconds[4]
		}
		_, err := tx.Exec(`
			INSERT INTO workouts (
				date, type, duration_seconds, average_hr, max_hr,
				average_power, strength_rpe,
				zone1_seconds, zone2_seconds, zone3_seconds, zone4_seconds, zone5_seconds
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			date, w.Type, w.DurationSeconds, w.AverageHR, w.MaxHR,
			w.AveragePower, w.StrengthRPE, z1, z2, z3, z4, z5,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetObservation retrieves a fully assembled observation for one date:
// signals, sleep record, daily activity, workouts and any stored sleep score.
func (db *DB) GetObservation(date string) (*DailyObservation, error) {
	row := db.QueryRow(`
		SELECT o.date, o.hrv, o.resting_hr, o.respiratory_rate, s.sleep
		FROM observations o
		LEFT JOIN daily_scores s ON s.date = o.date
		WHERE o.date = ?
	`, date)

	var o DailyObservation
	err := row.Scan(&o.Date, &o.HRV, &o.RestingHR, &o.RespiratoryRate, &o.SleepScore)
	if err == sql.ErrNoRows {
		return nil, ErrNoObservation
	}
	if err != nil {
		return nil, err
	}

	if err := db.attachDayDetail(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetObservationWindow retrieves assembled observations for the `days`
// calendar days ending at endDate (inclusive), in chronological order.
// Days with no stored data are simply absent from the result.
func (db *DB) GetObservationWindow(endDate string, days int) ([]DailyObservation, error) {
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, err
	}
	start := end.AddDate(0, 0, -(days - 1)).Format("2006-01-02")

	rows, err := db.Query(`
		SELECT o.date, o.hrv, o.resting_hr, o.respiratory_rate, s.sleep
		FROM observations o
		LEFT JOIN daily_scores s ON s.date = o.date
		WHERE o.date >= ? AND o.date <= ?
		ORDER BY o.date ASC
	`, start, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var window []DailyObservation
	for rows.Next() {
		var o DailyObservation
		if err := rows.Scan(&o.Date, &o.HRV, &o.RestingHR, &o.RespiratoryRate, &o.SleepScore); err != nil {
			return nil, err
		}
		window = append(window, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range window {
		if err := db.attachDayDetail(&window[i]); err != nil {
			return nil, err
		}
	}
	return window, nil
}

// ListObservationDates returns all observation dates in chronological order.
func (db *DB) ListObservationDates() ([]string, error) {
	rows, err := db.Query(`SELECT date FROM observations ORDER BY date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (db *DB) attachDayDetail(o *DailyObservation) error {
	sleep, err := db.getSleepRecord(o.Date)
	if err != nil {
		return err
	}
	o.Sleep = sleep

	activity, err := db.getDailyActivity(o.Date)
	if err != nil {
		return err
	}
	o.Activity = activity

	workouts, err := db.getWorkouts(o.Date)
	if err != nil {
		return err
	}
	o.Workouts = workouts
	return nil
}

func (db *DB) getSleepRecord(date string) (*SleepRecord, error) {
	row := db.QueryRow(`
		SELECT date, in_bed_minutes, asleep_minutes, deep_minutes, rem_minutes,
			core_minutes, awake_minutes, efficiency_pct, disturbances,
			sleep_onset, wake_time
		FROM sleep_records WHERE date = ?
	`, date)

	var r SleepRecord
	var onset, wake int64
	err := row.Scan(
		&r.Date, &r.InBedMinutes, &r.AsleepMinutes, &r.DeepMinutes, &r.REMMinutes,
		&r.CoreMinutes, &r.AwakeMinutes, &r.EfficiencyPct, &r.Disturbances,
		&onset, &wake,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.SleepOnset = time.Unix(onset, 0).UTC()
	r.WakeTime = time.Unix(wake, 0).UTC()
	return &r, nil
}

func (db *DB) getDailyActivity(date string) (*DailyActivity, error) {
	row := db.QueryRow(`SELECT date, steps, active_energy FROM daily_activity WHERE date = ?`, date)

	var a DailyActivity
	err := row.Scan(&a.Date, &a.Steps, &a.ActiveEnergy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (db *DB) getWorkouts(date string) ([]Workout, error) {
	rows, err := db.Query(`
		SELECT id, date, type, duration_seconds, average_hr, max_hr,
			average_power, strength_rpe,
			zone1_seconds, zone2_seconds, zone3_seconds, zone4_seconds, zone5_seconds
		FROM workouts WHERE date = ? ORDER BY id ASC
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		var w Workout
		var z1, z2, z3, z4, z5 *int
		err := rows.Scan(
			&w.ID, &w.Date, &w.Type, &w.DurationSeconds, &w.AverageHR, &w.MaxHR,
			&w.AveragePower, &w.StrengthRPE, &z1, &z2, &z3, &z4, &z5,
		)
		if err != nil {
			return nil, err
		}
		if z1 != nil && z2 != nil && z3 != nil && z4 != nil && z5 != nil {
			zones := [5]int{*z1, *z2, *z3, *z4, *z5}
			w.ZoneSeconds = &zones
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}
