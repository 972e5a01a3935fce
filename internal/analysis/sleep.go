package analysis

import (
	"math"

	"readiness/internal/store"
)

// SleepBaselines carries the rolling references the sleep score compares
// against. HasWakeMinutes is false until enough history exists; the timing
// component then drops out rather than scoring against a made-up reference.
type SleepBaselines struct {
	WakeMinutes    float64 // baseline wake time, minutes after midnight
	HasWakeMinutes bool
	NeedMinutes    float64 // personalized sleep need; 0 means the default
}

// CalculateSleep scores one night of sleep from five weighted components:
// performance (duration vs. need), stage quality (deep + REM presence),
// efficiency, disturbances, and wake-time consistency. Components without
// the data they need drop out and the remaining weights renormalize.
func CalculateSleep(night store.SleepRecord, baselines SleepBaselines) (ScoreResult, error) {
	if err := validateSleep(&night); err != nil {
		return ScoreResult{}, err
	}

	need := baselines.NeedMinutes
	if need <= 0 {
		need = DefaultSleepNeedMinutes
	}

	components := make(map[string]float64)
	var weightedSum, totalWeight float64
	add := func(name string, score, weight float64) {
		components[name] = score
		weightedSum += score * weight
		totalWeight += weight
	}

	// Performance: how much of the needed sleep was actually obtained.
	add("performance", math.Min(100, night.AsleepMinutes/need*100), SleepWeightPerformance)

	// Stage quality: deep and REM presence against expected shares of
	// total sleep time.
	add("quality", stageQuality(&night), SleepWeightStageQuality)

	// Efficiency: time asleep over time in bed.
	if eff, ok := sleepEfficiency(&night); ok {
		add("efficiency", eff, SleepWeightEfficiency)
	}

	// Disturbances: each wake event costs points, floored at zero.
	add("disturbances", math.Max(0, 100-DisturbancePenalty*float64(night.Disturbances)), SleepWeightDisturbances)

	// Timing: deviation from the baseline wake time in either direction.
	if baselines.HasWakeMinutes && !night.WakeTime.IsZero() {
		deviation := wakeDeviation(clockMinutes(night.WakeTime), baselines.WakeMinutes)
		add("timing", math.Max(0, 100*(1-deviation/TimingFullPenaltyMin)), SleepWeightTiming)
	}

	score := 0.0
	if totalWeight > 0 {
		score = clamp(weightedSum/totalWeight, 0, 100)
	}

	return ScoreResult{
		Score:      score,
		Band:       SleepBands.Classify(score),
		Components: components,
	}, nil
}

func validateSleep(night *store.SleepRecord) error {
	for _, d := range []struct {
		name  string
		value float64
	}{
		{"in-bed", night.InBedMinutes},
		{"asleep", night.AsleepMinutes},
		{"deep", night.DeepMinutes},
		{"rem", night.REMMinutes},
		{"core", night.CoreMinutes},
		{"awake", night.AwakeMinutes},
	} {
		if d.value < 0 {
			return domainErrorf("%s duration %.1f minutes is negative", d.name, d.value)
		}
	}
	if night.Disturbances < 0 {
		return domainErrorf("disturbance count %d is negative", night.Disturbances)
	}
	if night.InBedMinutes > 0 && night.AsleepMinutes > night.InBedMinutes {
		return domainErrorf("asleep %.1f minutes exceeds in-bed %.1f minutes", night.AsleepMinutes, night.InBedMinutes)
	}
	if night.EfficiencyPct != nil && (*night.EfficiencyPct < 0 || *night.EfficiencyPct > 100) {
		return domainErrorf("efficiency %.1f%% outside [0, 100]", *night.EfficiencyPct)
	}
	return nil
}

// stageQuality rewards deep and REM time up to their expected fractions of
// total sleep; excess past the expectation earns nothing extra.
func stageQuality(night *store.SleepRecord) float64 {
	if night.AsleepMinutes <= 0 {
		return 0
	}
	deepFraction := night.DeepMinutes / night.AsleepMinutes
	remFraction := night.REMMinutes / night.AsleepMinutes

	deepScore := 50 * math.Min(1, deepFraction/ExpectedDeepFraction)
	remScore := 50 * math.Min(1, remFraction/ExpectedREMFraction)
	return deepScore + remScore
}

// sleepEfficiency prefers the recorded efficiency percentage, deriving it
// from minutes otherwise. ok is false when neither exists.
func sleepEfficiency(night *store.SleepRecord) (float64, bool) {
	if night.EfficiencyPct != nil {
		return *night.EfficiencyPct, true
	}
	if night.InBedMinutes > 0 {
		return night.AsleepMinutes / night.InBedMinutes * 100, true
	}
	return 0, false
}

// wakeDeviation is the circular distance between two wall-clock positions
// in minutes, so a 23:50 vs 00:10 comparison reads as 20 minutes, not 1420.
func wakeDeviation(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 1440-d)
}
