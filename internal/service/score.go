package service

import (
	"errors"
	"fmt"
	"time"

	"readiness/internal/analysis"
	"readiness/internal/config"
	"readiness/internal/health"
	"readiness/internal/store"
)

// ScoreService orchestrates importing health exports and scoring days
type ScoreService struct {
	store      *store.DB
	profile    analysis.AthleteProfile
	windowDays int
	minDays    int
}

// NewScoreService creates a new score service from the loaded config
func NewScoreService(db *store.DB, cfg *config.Config) *ScoreService {
	return &ScoreService{
		store:      db,
		profile:    cfg.Profile(),
		windowDays: cfg.Baseline.WindowDays,
		minDays:    cfg.Baseline.MinDays,
	}
}

// ImportResult contains the results of an import operation
type ImportResult struct {
	DaysImported int
	DaysScored   int
}

// ImportExport stores every day in the export and rescores from the earliest
// imported date forward. Scores are chronological derivations, so a
// backfilled day invalidates everything after it.
func (s *ScoreService) ImportExport(export *health.Export) (*ImportResult, error) {
	result := &ImportResult{}
	if len(export.Days) == 0 {
		return result, nil
	}

	earliest := export.Days[0].Date
	for i := range export.Days {
		day := &export.Days[i]
		if day.Date < earliest {
			earliest = day.Date
		}

		if err := s.storeDay(day); err != nil {
			return result, fmt.Errorf("storing %s: %w", day.Date, err)
		}
		result.DaysImported++
	}

	scored, err := s.RecomputeFrom(earliest)
	result.DaysScored = scored
	if err != nil {
		return result, err
	}
	return result, nil
}

func (s *ScoreService) storeDay(day *health.Day) error {
	obs := day.Observation()
	if err := s.store.UpsertObservation(&obs); err != nil {
		return fmt.Errorf("observation: %w", err)
	}
	if sleep := day.SleepRecord(); sleep != nil {
		if err := s.store.UpsertSleepRecord(sleep); err != nil {
			return fmt.Errorf("sleep: %w", err)
		}
	}
	if activity := day.DailyActivity(); activity != nil {
		if err := s.store.UpsertDailyActivity(activity); err != nil {
			return fmt.Errorf("activity: %w", err)
		}
	}
	// Exports are per-day snapshots: replace, never append
	if err := s.store.ReplaceWorkouts(day.Date, day.WorkoutRecords()); err != nil {
		return fmt.Errorf("workouts: %w", err)
	}
	return nil
}

// RecomputeFrom rescores every day from the given date through the last
// observation, in chronological order. Calendar days with no observation
// still decay the load state: a rest day is stress 0, not a skipped day.
// Returns the number of days scored.
func (s *ScoreService) RecomputeFrom(from string) (int, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return 0, fmt.Errorf("bad date %q: %w", from, err)
	}

	// Stale states after the cut must never survive: a recompute that
	// crashes midway leaves a shorter history, not a wrong one.
	if err := s.store.DeleteLoadStatesFrom(from); err != nil {
		return 0, fmt.Errorf("clearing load states: %w", err)
	}

	dates, err := s.store.ListObservationDates()
	if err != nil {
		return 0, err
	}

	observed := make(map[string]bool, len(dates))
	var last string
	for _, d := range dates {
		if d < from {
			continue
		}
		observed[d] = true
		last = d
	}
	if last == "" {
		return 0, nil
	}
	end, err := time.Parse("2006-01-02", last)
	if err != nil {
		return 0, fmt.Errorf("bad stored date %q: %w", last, err)
	}

	state := analysis.TrainingLoadState{}
	hasHistory := false
	if prev, err := s.store.GetLatestLoadStateBefore(from); err == nil {
		state = analysis.TrainingLoadState{CTL: prev.CTL, ATL: prev.ATL}
		hasHistory = true
	} else if !errors.Is(err, store.ErrNoLoadState) {
		return 0, err
	}

	scored := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")

		if !observed[date] {
			state = analysis.Advance(state, 0)
			if err := s.store.SaveLoadState(&store.LoadState{Date: date, CTL: state.CTL, ATL: state.ATL}); err != nil {
				return scored, fmt.Errorf("saving load state for %s: %w", date, err)
			}
			hasHistory = true
			continue
		}

		out, err := s.scoreDay(date, state, hasHistory)
		if err != nil {
			return scored, fmt.Errorf("scoring %s: %w", date, err)
		}

		state = out.Load
		hasHistory = true
		scored++
	}

	return scored, nil
}

// scoreDay assembles one day's inputs, scores it, and persists the results.
func (s *ScoreService) scoreDay(date string, prev analysis.TrainingLoadState, hasHistory bool) (analysis.DayScores, error) {
	obs, err := s.store.GetObservation(date)
	if err != nil {
		return analysis.DayScores{}, err
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return analysis.DayScores{}, err
	}
	yesterday := day.AddDate(0, 0, -1).Format("2006-01-02")

	window, err := s.store.GetObservationWindow(yesterday, s.windowDays)
	if err != nil {
		return analysis.DayScores{}, err
	}

	in := analysis.DayInputs{
		Today:           *obs,
		Window:          window,
		Profile:         s.profile,
		PrevLoad:        prev,
		HasLoadHistory:  hasHistory,
		MinBaselineDays: s.minDays,
	}
	if prevScores, err := s.store.GetDailyScores(yesterday); err == nil {
		in.YesterdaySleepScore = prevScores.Sleep
		in.YesterdayStrain = prevScores.Strain
	} else if !errors.Is(err, store.ErrNoScores) {
		return analysis.DayScores{}, err
	}

	out, err := analysis.ComputeDayScores(in)
	if err != nil {
		return analysis.DayScores{}, err
	}

	if err := s.store.SaveLoadState(&store.LoadState{Date: date, CTL: out.Load.CTL, ATL: out.Load.ATL}); err != nil {
		return analysis.DayScores{}, fmt.Errorf("saving load state: %w", err)
	}

	scores := store.DailyScores{
		Date:         date,
		Recovery:     &out.Recovery.Score,
		RecoveryBand: string(out.Recovery.Band),
		Strain:       &out.Strain.Score,
		StrainBand:   string(out.Strain.Band),
		TRIMP:        out.Stress,
		AlcoholFlag:  out.Recovery.AlcoholEffect,
	}
	if out.Sleep != nil {
		scores.Sleep = &out.Sleep.Score
		scores.SleepBand = string(out.Sleep.Band)
	}
	if err := s.store.SaveDailyScores(&scores); err != nil {
		return analysis.DayScores{}, fmt.Errorf("saving scores: %w", err)
	}

	return out, nil
}
