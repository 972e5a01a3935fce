package analysis

import (
	"math"
	"testing"
	"time"

	"readiness/internal/store"
)

func TestComputeBaseline(t *testing.T) {
	tests := []struct {
		name     string
		kind     SignalKind
		window   []store.DailyObservation
		minDays  int
		expected float64
		ok       bool
	}{
		{
			name: "hrv mean of full window",
			kind: SignalHRV,
			window: []store.DailyObservation{
				{HRV: floatPtr(60)},
				{HRV: floatPtr(70)},
				{HRV: floatPtr(80)},
			},
			minDays:  3,
			expected: 70.0,
			ok:       true,
		},
		{
			name: "missing days are dropped, not zeroed",
			kind: SignalHRV,
			window: []store.DailyObservation{
				{HRV: floatPtr(40)},
				{},
				{HRV: floatPtr(60)},
				{},
				{HRV: floatPtr(50)},
			},
			minDays:  3,
			expected: 50.0,
			ok:       true,
		},
		{
			name: "below minDays yields no baseline",
			kind: SignalHRV,
			window: []store.DailyObservation{
				{HRV: floatPtr(40)},
				{HRV: floatPtr(60)},
			},
			minDays: 3,
			ok:      false,
		},
		{
			name:    "empty window yields no baseline",
			kind:    SignalHRV,
			window:  nil,
			minDays: 3,
			ok:      false,
		},
		{
			name: "resting hr baseline",
			kind: SignalRestingHR,
			window: []store.DailyObservation{
				{RestingHR: floatPtr(52)},
				{RestingHR: floatPtr(54)},
				{RestingHR: floatPtr(56)},
				{RestingHR: floatPtr(58)},
			},
			minDays:  3,
			expected: 55.0,
			ok:       true,
		},
		{
			name: "sleep duration comes from the sleep record",
			kind: SignalSleepDuration,
			window: []store.DailyObservation{
				{Sleep: &store.SleepRecord{AsleepMinutes: 420}},
				{Sleep: &store.SleepRecord{AsleepMinutes: 450}},
				{Sleep: &store.SleepRecord{AsleepMinutes: 480}},
			},
			minDays:  3,
			expected: 450.0,
			ok:       true,
		},
		{
			name: "sleep score baseline skips unscored days",
			kind: SignalSleepScore,
			window: []store.DailyObservation{
				{SleepScore: floatPtr(80)},
				{},
				{SleepScore: floatPtr(90)},
				{SleepScore: floatPtr(70)},
			},
			minDays:  3,
			expected: 80.0,
			ok:       true,
		},
		{
			name: "respiratory rate with a longer window",
			kind: SignalRespiratoryRate,
			window: []store.DailyObservation{
				{RespiratoryRate: floatPtr(14.0)},
				{RespiratoryRate: floatPtr(14.5)},
				{RespiratoryRate: floatPtr(15.5)},
				{RespiratoryRate: floatPtr(16.0)},
			},
			minDays:  4,
			expected: 15.0,
			ok:       true,
		},
		{
			name: "zero minDays falls back to the default minimum",
			kind: SignalHRV,
			window: []store.DailyObservation{
				{HRV: floatPtr(40)},
				{HRV: floatPtr(60)},
			},
			minDays: 0,
			ok:      false, // default minimum is 3
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := ComputeBaseline(tt.kind, tt.window, tt.minDays)
			if ok != tt.ok {
				t.Fatalf("ComputeBaseline() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ComputeBaseline() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestComputeBaselineWakeTime(t *testing.T) {
	// Wake times average as minutes after midnight: 06:30, 07:00, 07:30 -> 07:00.
	window := []store.DailyObservation{
		{Sleep: &store.SleepRecord{WakeTime: time.Date(2024, 1, 1, 6, 30, 0, 0, time.UTC)}},
		{Sleep: &store.SleepRecord{WakeTime: time.Date(2024, 1, 2, 7, 0, 0, 0, time.UTC)}},
		{Sleep: &store.SleepRecord{WakeTime: time.Date(2024, 1, 3, 7, 30, 0, 0, time.UTC)}},
	}

	result, ok := ComputeBaseline(SignalWakeTime, window, 3)
	if !ok {
		t.Fatal("ComputeBaseline() ok = false, want true")
	}
	if math.Abs(result-420) > 0.001 {
		t.Errorf("ComputeBaseline() = %v, want 420 (07:00)", result)
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
