package analysis

import (
	"time"

	"readiness/internal/store"
)

// SignalKind identifies a daily signal a baseline can be computed over.
type SignalKind int

const (
	SignalHRV SignalKind = iota
	SignalRestingHR
	SignalRespiratoryRate
	SignalSleepDuration
	SignalSleepScore
	SignalWakeTime
)

// ComputeBaseline returns the arithmetic mean of a signal across the window,
// dropping days where the signal is absent. When fewer than minDays values
// survive, ok is false: "no baseline yet" is a distinct state, not zero —
// new users with thin history must not be scored against a zero baseline.
func ComputeBaseline(kind SignalKind, window []store.DailyObservation, minDays int) (baseline float64, ok bool) {
	if minDays <= 0 {
		minDays = DefaultMinBaselineDays
	}

	var sum float64
	var count int
	for i := range window {
		v, present := extractSignal(kind, &window[i])
		if !present {
			continue
		}
		sum += v
		count++
	}

	if count < minDays {
		return 0, false
	}
	return sum / float64(count), true
}

// extractSignal pulls one signal's value out of a day, reporting absence.
func extractSignal(kind SignalKind, o *store.DailyObservation) (float64, bool) {
	switch kind {
	case SignalHRV:
		if o.HRV != nil {
			return *o.HRV, true
		}
	case SignalRestingHR:
		if o.RestingHR != nil {
			return *o.RestingHR, true
		}
	case SignalRespiratoryRate:
		if o.RespiratoryRate != nil {
			return *o.RespiratoryRate, true
		}
	case SignalSleepDuration:
		if o.Sleep != nil {
			return o.Sleep.AsleepMinutes, true
		}
	case SignalSleepScore:
		if o.SleepScore != nil {
			return *o.SleepScore, true
		}
	case SignalWakeTime:
		if o.Sleep != nil && !o.Sleep.WakeTime.IsZero() {
			return clockMinutes(o.Sleep.WakeTime), true
		}
	}
	return 0, false
}

// clockMinutes is the wall-clock position of t as minutes after midnight,
// used so wake-time baselines compare times of day rather than instants.
func clockMinutes(t time.Time) float64 {
	h, m, s := t.Clock()
	return float64(h)*60 + float64(m) + float64(s)/60
}
