package store

import (
	"database/sql"
	"time"
)

// SaveDailyScores stores or updates computed scores for a date.
func (db *DB) SaveDailyScores(s *DailyScores) error {
	_, err := db.Exec(`
		INSERT INTO daily_scores (
			date, recovery, recovery_band, sleep, sleep_band,
			strain, strain_band, trimp, alcohol_flag, computed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(date) DO UPDATE SET
			recovery = excluded.recovery,
			recovery_band = excluded.recovery_band,
			sleep = excluded.sleep,
			sleep_band = excluded.sleep_band,
			strain = excluded.strain,
			strain_band = excluded.strain_band,
			trimp = excluded.trimp,
			alcohol_flag = excluded.alcohol_flag,
			computed_at = CURRENT_TIMESTAMP
	`,
		s.Date, s.Recovery, s.RecoveryBand, s.Sleep, s.SleepBand,
		s.Strain, s.StrainBand, s.TRIMP, boolToInt(s.AlcoholFlag),
	)
	return err
}

// GetDailyScores retrieves scores for a date.
func (db *DB) GetDailyScores(date string) (*DailyScores, error) {
	row := db.QueryRow(`
		SELECT date, recovery, recovery_band, sleep, sleep_band,
			strain, strain_band, trimp, alcohol_flag, computed_at
		FROM daily_scores WHERE date = ?
	`, date)

	s, err := scanScores(row)
	if err == sql.ErrNoRows {
		return nil, ErrNoScores
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetScoreHistory retrieves scores for the days ending at endDate
// (inclusive), in chronological order.
func (db *DB) GetScoreHistory(endDate string, days int) ([]DailyScores, error) {
	rows, err := db.Query(`
		SELECT date, recovery, recovery_band, sleep, sleep_band,
			strain, strain_band, trimp, alcohol_flag, computed_at
		FROM daily_scores
		WHERE date <= ? ORDER BY date DESC LIMIT ?
	`, endDate, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []DailyScores
	for rows.Next() {
		s, err := scanScores(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScores(row rowScanner) (*DailyScores, error) {
	var s DailyScores
	var flag int
	var computedAt string
	err := row.Scan(
		&s.Date, &s.Recovery, &s.RecoveryBand, &s.Sleep, &s.SleepBand,
		&s.Strain, &s.StrainBand, &s.TRIMP, &flag, &computedAt,
	)
	if err != nil {
		return nil, err
	}
	s.AlcoholFlag = flag != 0
	if t, err := time.Parse("2006-01-02 15:04:05", computedAt); err == nil {
		s.ComputedAt = t
	}
	return &s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
