package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"readiness/internal/store"
)

func wakeAt(hour, min int) time.Time {
	return time.Date(2024, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestCalculateSleepPerfectNight(t *testing.T) {
	// Exactly the needed duration, 100% efficiency, no disturbances, wake
	// time on baseline: every component should score exactly 100.
	night := store.SleepRecord{
		InBedMinutes:  480,
		AsleepMinutes: 480,
		DeepMinutes:   96,    // 20% of asleep time
		REMMinutes:    105.6, // 22% of asleep time
		Disturbances:  0,
		WakeTime:      wakeAt(7, 0),
	}
	baselines := SleepBaselines{WakeMinutes: 420, HasWakeMinutes: true}

	result, err := CalculateSleep(night, baselines)
	if err != nil {
		t.Fatalf("CalculateSleep() error = %v", err)
	}

	for _, name := range []string{"performance", "efficiency", "quality", "disturbances", "timing"} {
		if got := result.Components[name]; math.Abs(got-100) > 0.001 {
			t.Errorf("%s = %v, want 100", name, got)
		}
	}
	if math.Abs(result.Score-100) > 0.001 {
		t.Errorf("Score = %v, want 100", result.Score)
	}
	if result.Band != BandOptimal {
		t.Errorf("Band = %v, want %v", result.Band, BandOptimal)
	}
}

func TestCalculateSleepComponents(t *testing.T) {
	baselines := SleepBaselines{WakeMinutes: 420, HasWakeMinutes: true}

	tests := []struct {
		name      string
		night     store.SleepRecord
		baselines SleepBaselines
		component string
		expected  float64
		delta     float64
	}{
		{
			name: "performance is capped at 100",
			night: store.SleepRecord{
				InBedMinutes: 600, AsleepMinutes: 560, WakeTime: wakeAt(7, 0),
			},
			baselines: baselines,
			component: "performance",
			expected:  100,
			delta:     0.001,
		},
		{
			name: "performance scales with the shortfall",
			night: store.SleepRecord{
				InBedMinutes: 400, AsleepMinutes: 360, WakeTime: wakeAt(7, 0),
			},
			baselines: baselines,
			// 360/480 * 100 = 75
			component: "performance",
			expected:  75,
			delta:     0.001,
		},
		{
			name: "personalized need overrides the default",
			night: store.SleepRecord{
				InBedMinutes: 480, AsleepMinutes: 420, WakeTime: wakeAt(7, 0),
			},
			baselines: SleepBaselines{NeedMinutes: 420, WakeMinutes: 420, HasWakeMinutes: true},
			component: "performance",
			expected:  100,
			delta:     0.001,
		},
		{
			name: "efficiency derives from minutes when not recorded",
			night: store.SleepRecord{
				InBedMinutes: 480, AsleepMinutes: 400, WakeTime: wakeAt(7, 0),
			},
			baselines: baselines,
			// 400/480 * 100 = 83.33
			component: "efficiency",
			expected:  83.33,
			delta:     0.01,
		},
		{
			name: "recorded efficiency wins over derivation",
			night: store.SleepRecord{
				InBedMinutes: 480, AsleepMinutes: 400, EfficiencyPct: floatPtr(90), WakeTime: wakeAt(7, 0),
			},
			baselines: baselines,
			component: "efficiency",
			expected:  90,
			delta:     0.001,
		},
		{
			name: "stage quality rewards deep and REM up to expectation",
			night: store.SleepRecord{
				InBedMinutes: 480, AsleepMinutes: 420,
				DeepMinutes: 63,   // 15% of 420: 50 * 0.75 = 37.5
				REMMinutes:  92.4, // 22% of 420: full 50
				WakeTime:    wakeAt(7, 0),
			},
			baselines: baselines,
			component: "quality",
			expected:  87.5,
			delta:     0.01,
		},
		{
			name: "excess deep sleep earns nothing extra",
			night: store.SleepRecord{
				InBedMinutes: 480, AsleepMinutes: 420,
				DeepMinutes: 168, // 40% of asleep time, capped at the expected share
				REMMinutes:  92.4,
				WakeTime:    wakeAt(7, 0),
			},
			baselines: baselines,
			component: "quality",
			expected:  100,
			delta:     0.01,
		},
		{
			name: "each disturbance costs points",
			night: store.SleepRecord{
				InBedMinutes: 480, AsleepMinutes: 440, Disturbances: 4, WakeTime: wakeAt(7, 0),
			},
			baselines: baselines,
			// 100 - 4*12.5 = 50
			component: "disturbances",
			expected:  50,
			delta:     0.001,
		},
		{
			name: "disturbances floor at zero",
			night: store.SleepRecord{
				InBedMinutes: 480, AsleepMinutes: 440, Disturbances: 12, WakeTime: wakeAt(7, 0),
			},
			baselines: baselines,
			component: "disturbances",
			expected:  0,
			delta:     0.001,
		},
		{
			name: "late wake is penalized",
			night: store.SleepRecord{
				InBedMinutes: 480, AsleepMinutes: 440, WakeTime: wakeAt(8, 0),
			},
			baselines: baselines,
			// 60 min off baseline: 100 * (1 - 60/120) = 50
			component: "timing",
			expected:  50,
			delta:     0.001,
		},
		{
			name: "early wake is penalized the same as late",
			night: store.SleepRecord{
				InBedMinutes: 480, AsleepMinutes: 440, WakeTime: wakeAt(6, 0),
			},
			baselines: baselines,
			component: "timing",
			expected:  50,
			delta:     0.001,
		},
		{
			name: "wake deviation wraps around midnight",
			night: store.SleepRecord{
				InBedMinutes: 480, AsleepMinutes: 440, WakeTime: wakeAt(0, 10),
			},
			// baseline 23:50 -> 20 minutes apart, not 1420
			baselines: SleepBaselines{WakeMinutes: 1430, HasWakeMinutes: true},
			component: "timing",
			expected:  83.33,
			delta:     0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateSleep(tt.night, tt.baselines)
			if err != nil {
				t.Fatalf("CalculateSleep() error = %v", err)
			}
			got, present := result.Components[tt.component]
			if !present {
				t.Fatalf("component %q missing from breakdown", tt.component)
			}
			if math.Abs(got-tt.expected) > tt.delta {
				t.Errorf("%s = %v, want %v (±%v)", tt.component, got, tt.expected, tt.delta)
			}
		})
	}
}

func TestCalculateSleepWeighting(t *testing.T) {
	night := store.SleepRecord{
		InBedMinutes:  480,
		AsleepMinutes: 420, // performance 87.5, efficiency 87.5
		DeepMinutes:   63,  // quality 87.5 with the REM below
		REMMinutes:    92.4,
		Disturbances:  2, // 75
		WakeTime:      wakeAt(7, 30),
	}
	baselines := SleepBaselines{WakeMinutes: 420, HasWakeMinutes: true} // timing 75

	result, err := CalculateSleep(night, baselines)
	if err != nil {
		t.Fatalf("CalculateSleep() error = %v", err)
	}

	// 0.30*87.5 + 0.32*87.5 + 0.22*87.5 + 0.14*75 + 0.02*75 = 85.5
	if math.Abs(result.Score-85.5) > 0.01 {
		t.Errorf("Score = %v, want 85.5", result.Score)
	}
	if result.Band != BandOptimal {
		t.Errorf("Band = %v, want %v", result.Band, BandOptimal)
	}
}

func TestCalculateSleepNoWakeBaseline(t *testing.T) {
	// Without a wake-time baseline the timing component drops out and the
	// remaining weights renormalize rather than scoring against nothing.
	night := store.SleepRecord{
		InBedMinutes:  480,
		AsleepMinutes: 420,
		DeepMinutes:   63,
		REMMinutes:    92.4,
		Disturbances:  2,
		WakeTime:      wakeAt(7, 30),
	}

	result, err := CalculateSleep(night, SleepBaselines{})
	if err != nil {
		t.Fatalf("CalculateSleep() error = %v", err)
	}

	if _, present := result.Components["timing"]; present {
		t.Error("timing component should be absent without a baseline")
	}
	// (0.30*87.5 + 0.32*87.5 + 0.22*87.5 + 0.14*75) / 0.98 = 85.71
	if math.Abs(result.Score-85.71) > 0.01 {
		t.Errorf("Score = %v, want 85.71", result.Score)
	}
}

func TestCalculateSleepDomainViolations(t *testing.T) {
	tests := []struct {
		name  string
		night store.SleepRecord
	}{
		{"negative duration", store.SleepRecord{InBedMinutes: -10, AsleepMinutes: 0}},
		{"asleep exceeds in-bed", store.SleepRecord{InBedMinutes: 400, AsleepMinutes: 420}},
		{"efficiency above 100", store.SleepRecord{InBedMinutes: 480, AsleepMinutes: 420, EfficiencyPct: floatPtr(120)}},
		{"negative disturbances", store.SleepRecord{InBedMinutes: 480, AsleepMinutes: 420, Disturbances: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateSleep(tt.night, SleepBaselines{})
			if !errors.Is(err, ErrDomainViolation) {
				t.Errorf("error = %v, want ErrDomainViolation", err)
			}
		})
	}
}
