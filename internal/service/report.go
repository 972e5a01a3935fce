package service

import (
	"errors"

	"readiness/internal/analysis"
	"readiness/internal/store"
)

// QueryService provides read-only queries for the CLI
type QueryService struct {
	store *store.DB
}

// NewQueryService creates a new query service
func NewQueryService(db *store.DB) *QueryService {
	return &QueryService{store: db}
}

// DayReport contains everything the daily report displays
type DayReport struct {
	Date   string
	Scores *store.DailyScores

	HasLoad         bool
	Load            analysis.TrainingLoadState
	TSB             float64
	FormDescription string
}

// GetDayReport fetches the scores and load state for one day.
// Returns store.ErrNoScores when the day was never scored.
func (q *QueryService) GetDayReport(date string) (*DayReport, error) {
	scores, err := q.store.GetDailyScores(date)
	if err != nil {
		return nil, err
	}

	report := &DayReport{Date: date, Scores: scores}

	load, err := q.store.GetLoadState(date)
	if err != nil && !errors.Is(err, store.ErrNoLoadState) {
		return nil, err
	}
	if err == nil {
		report.HasLoad = true
		report.Load = analysis.TrainingLoadState{CTL: load.CTL, ATL: load.ATL}
		report.TSB = report.Load.TSB()
		report.FormDescription = analysis.FormDescription(report.TSB)
	}

	return report, nil
}

// Trend contains score and load history for charting
type Trend struct {
	Scores []store.DailyScores
	Loads  []store.LoadState
}

// GetTrend fetches up to `days` days of history ending at endDate
func (q *QueryService) GetTrend(endDate string, days int) (*Trend, error) {
	scores, err := q.store.GetScoreHistory(endDate, days)
	if err != nil {
		return nil, err
	}
	loads, err := q.store.GetLoadStates(endDate, days)
	if err != nil {
		return nil, err
	}
	return &Trend{Scores: scores, Loads: loads}, nil
}

// RecoverySeries returns the recovery scores that exist, in order.
func (t *Trend) RecoverySeries() []float64 {
	return scoreSeries(t.Scores, func(s *store.DailyScores) *float64 { return s.Recovery })
}

// SleepSeries returns the sleep scores that exist, in order.
func (t *Trend) SleepSeries() []float64 {
	return scoreSeries(t.Scores, func(s *store.DailyScores) *float64 { return s.Sleep })
}

// StrainSeries returns the strain scores that exist, in order.
func (t *Trend) StrainSeries() []float64 {
	return scoreSeries(t.Scores, func(s *store.DailyScores) *float64 { return s.Strain })
}

// CTLSeries returns the fitness trajectory.
func (t *Trend) CTLSeries() []float64 {
	series := make([]float64, len(t.Loads))
	for i := range t.Loads {
		series[i] = t.Loads[i].CTL
	}
	return series
}

// ATLSeries returns the fatigue trajectory.
func (t *Trend) ATLSeries() []float64 {
	series := make([]float64, len(t.Loads))
	for i := range t.Loads {
		series[i] = t.Loads[i].ATL
	}
	return series
}

func scoreSeries(scores []store.DailyScores, pick func(*store.DailyScores) *float64) []float64 {
	var series []float64
	for i := range scores {
		if v := pick(&scores[i]); v != nil {
			series = append(series, *v)
		}
	}
	return series
}
