package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Daily physiological signals (one row per calendar day)
		`CREATE TABLE IF NOT EXISTS observations (
			date TEXT PRIMARY KEY,
			hrv REAL,
			resting_hr REAL,
			respiratory_rate REAL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// One night of sleep ending on date
		`CREATE TABLE IF NOT EXISTS sleep_records (
			date TEXT PRIMARY KEY,
			in_bed_minutes REAL NOT NULL,
			asleep_minutes REAL NOT NULL,
			deep_minutes REAL NOT NULL DEFAULT 0,
			rem_minutes REAL NOT NULL DEFAULT 0,
			core_minutes REAL NOT NULL DEFAULT 0,
			awake_minutes REAL NOT NULL DEFAULT 0,
			efficiency_pct REAL,
			disturbances INTEGER NOT NULL DEFAULT 0,
			sleep_onset INTEGER NOT NULL,
			wake_time INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Non-workout movement per day
		`CREATE TABLE IF NOT EXISTS daily_activity (
			date TEXT PRIMARY KEY,
			steps INTEGER NOT NULL DEFAULT 0,
			active_energy REAL NOT NULL DEFAULT 0
		)`,

		// Exercise sessions
		`CREATE TABLE IF NOT EXISTS workouts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			type TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL,
			average_hr REAL,
			max_hr REAL,
			average_power REAL,
			strength_rpe REAL,
			zone1_seconds INTEGER,
			zone2_seconds INTEGER,
			zone3_seconds INTEGER,
			zone4_seconds INTEGER,
			zone5_seconds INTEGER,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date)`,

		// CTL/ATL state per day; TSB is derived on read, never stored
		`CREATE TABLE IF NOT EXISTS load_states (
			date TEXT PRIMARY KEY,
			ctl REAL NOT NULL,
			atl REAL NOT NULL,
			computed_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Computed daily scores
		`CREATE TABLE IF NOT EXISTS daily_scores (
			date TEXT PRIMARY KEY,
			recovery REAL,
			recovery_band TEXT,
			sleep REAL,
			sleep_band TEXT,
			strain REAL,
			strain_band TEXT,
			trimp REAL NOT NULL DEFAULT 0,
			alcohol_flag INTEGER NOT NULL DEFAULT 0,
			computed_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
