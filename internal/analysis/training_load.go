package analysis

import (
	"sort"
	"time"
)

// TrainingLoadState holds CTL/ATL as of a day. TSB is always derived, never
// stored. Each day's state is a pure function of the previous day's state
// and that day's stress, so callers can persist state and update
// incrementally without replaying history.
type TrainingLoadState struct {
	CTL float64 // Chronic Training Load (42-day EWMA) - "Fitness"
	ATL float64 // Acute Training Load (7-day EWMA) - "Fatigue"
}

// TSB returns the Training Stress Balance (CTL - ATL) - "Form".
func (s TrainingLoadState) TSB() float64 {
	return s.CTL - s.ATL
}

// Advance computes the next day's state from the previous day's state and
// that day's training stress.
//
//	CTL' = CTL + (stress - CTL) / 42
//	ATL' = ATL + (stress - ATL) / 7
//
// Advance must be called once per calendar day in chronological order. A day
// with no training is stress 0, not a skipped call: skipping days would
// corrupt the decay.
func Advance(prev TrainingLoadState, todayStress float64) TrainingLoadState {
	return TrainingLoadState{
		CTL: prev.CTL + (todayStress-prev.CTL)/CTLTimeConstant,
		ATL: prev.ATL + (todayStress-prev.ATL)/ATLTimeConstant,
	}
}

// Replay applies Advance sequentially from a zero state, returning the state
// after each day. Replaying is numerically identical to advancing
// incrementally day by day.
func Replay(dailyStress []float64) []TrainingLoadState {
	if len(dailyStress) == 0 {
		return nil
	}

	states := make([]TrainingLoadState, len(dailyStress))
	var state TrainingLoadState
	for i, stress := range dailyStress {
		state = Advance(state, stress)
		states[i] = state
	}
	return states
}

// DailyStress represents training stress for a single day.
type DailyStress struct {
	Date   time.Time
	Stress float64
}

// DayLoad represents the load state for a day in a trend series.
type DayLoad struct {
	Date time.Time
	TrainingLoadState
}

// LoadTrend computes the day-by-day CTL/ATL trajectory from dated stress
// values, starting from a zero state. Multiple entries on the same day are
// summed, and calendar gaps are filled with zero-stress rest days.
func LoadTrend(daily []DailyStress) []DayLoad {
	if len(daily) == 0 {
		return nil
	}

	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date.Before(daily[j].Date)
	})

	stressByDay := make(map[string]float64)
	for _, d := range daily {
		key := d.Date.Format("2006-01-02")
		stressByDay[key] += d.Stress
	}

	startDate := daily[0].Date.Truncate(24 * time.Hour)
	endDate := daily[len(daily)-1].Date.Truncate(24 * time.Hour)

	var trend []DayLoad
	var state TrainingLoadState
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		state = Advance(state, stressByDay[d.Format("2006-01-02")])
		trend = append(trend, DayLoad{Date: d, TrainingLoadState: state})
	}
	return trend
}

// FormDescription returns a human-readable description of TSB.
func FormDescription(tsb float64) string {
	switch {
	case tsb > 25:
		return "Very fresh (possibly detrained)"
	case tsb > 10:
		return "Fresh and ready to go hard"
	case tsb > 0:
		return "Neutral - good for training"
	case tsb > -10:
		return "Slightly fatigued"
	case tsb > -25:
		return "Tired but building fitness"
	default:
		return "Very fatigued - rest needed"
	}
}
