package store

import "database/sql"

// SaveLoadState stores or updates the CTL/ATL state for a date.
func (db *DB) SaveLoadState(s *LoadState) error {
	_, err := db.Exec(`
		INSERT INTO load_states (date, ctl, atl)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			ctl = excluded.ctl,
			atl = excluded.atl,
			computed_at = CURRENT_TIMESTAMP
	`, s.Date, s.CTL, s.ATL)
	return err
}

// GetLoadState retrieves the stored state for a date.
func (db *DB) GetLoadState(date string) (*LoadState, error) {
	row := db.QueryRow(`SELECT date, ctl, atl FROM load_states WHERE date = ?`, date)

	var s LoadState
	err := row.Scan(&s.Date, &s.CTL, &s.ATL)
	if err == sql.ErrNoRows {
		return nil, ErrNoLoadState
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetLatestLoadStateBefore retrieves the most recent state strictly before a date.
func (db *DB) GetLatestLoadStateBefore(date string) (*LoadState, error) {
	row := db.QueryRow(`
		SELECT date, ctl, atl FROM load_states
		WHERE date < ? ORDER BY date DESC LIMIT 1
	`, date)

	var s LoadState
	err := row.Scan(&s.Date, &s.CTL, &s.ATL)
	if err == sql.ErrNoRows {
		return nil, ErrNoLoadState
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetLoadStates retrieves stored states for the `days` calendar days ending
// at endDate (inclusive), in chronological order.
func (db *DB) GetLoadStates(endDate string, days int) ([]LoadState, error) {
	rows, err := db.Query(`
		SELECT date, ctl, atl FROM load_states
		WHERE date <= ? ORDER BY date DESC LIMIT ?
	`, endDate, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []LoadState
	for rows.Next() {
		var s LoadState
		if err := rows.Scan(&s.Date, &s.CTL, &s.ATL); err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order
	for i, j := 0, len(states)-1; i < j; i, j = i+1, j-1 {
		states[i], states[j] = states[j], states[i]
	}
	return states, nil
}

// DeleteLoadStatesFrom removes all states on or after a date. Used before
// a chronological recompute so stale states never survive an import.
func (db *DB) DeleteLoadStatesFrom(date string) error {
	_, err := db.Exec(`DELETE FROM load_states WHERE date >= ?`, date)
	return err
}
