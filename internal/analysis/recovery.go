package analysis

import "math"

// RecoveryInputs are the signals the recovery score combines. Pointers are
// nil when a signal or its baseline is absent; absent components drop out of
// the weighting instead of scoring against zero.
type RecoveryInputs struct {
	HRV         *float64 // today's HRV, ms
	RestingHR   *float64 // today's RHR, bpm
	HRVBaseline *float64 // rolling baselines; nil until established
	RHRBaseline *float64

	YesterdaySleepScore *float64
	TSB                 *float64 // training stress balance from the load model
	YesterdayStrain     *float64 // yesterday's strain, for the alcohol heuristic
}

// RecoveryResult is a ScoreResult plus the alcohol-effect heuristic flag.
// The flag is a weak signal surfaced for display; it never alters the score.
type RecoveryResult struct {
	ScoreResult
	AlcoholEffect bool
}

// CalculateRecovery combines HRV deviation, RHR deviation, yesterday's sleep
// score and training stress balance into a 0-100 recovery score.
func CalculateRecovery(in RecoveryInputs) (RecoveryResult, error) {
	if err := validateRecovery(&in); err != nil {
		return RecoveryResult{}, err
	}

	components := make(map[string]float64)
	var weightedSum, totalWeight float64
	add := func(name string, score, weight float64) {
		components[name] = score
		weightedSum += score * weight
		totalWeight += weight
	}

	hrvDeviation, hrvOK := deviationFromBaseline(in.HRV, in.HRVBaseline)
	if hrvOK {
		add("hrv", hrvSubScore(hrvDeviation), RecoveryWeightHRV)
	}

	rhrDeviation, rhrOK := deviationFromBaseline(in.RestingHR, in.RHRBaseline)
	if rhrOK {
		add("rhr", rhrSubScore(rhrDeviation), RecoveryWeightRHR)
	}

	if in.YesterdaySleepScore != nil {
		add("sleep", clamp(*in.YesterdaySleepScore, 0, 100), RecoveryWeightSleep)
	}

	if in.TSB != nil {
		add("training_load", tsbSubScore(*in.TSB), RecoveryWeightTSB)
	}

	score := 0.0
	if totalWeight > 0 {
		score = clamp(weightedSum/totalWeight, 0, 100)
	}

	return RecoveryResult{
		ScoreResult: ScoreResult{
			Score:      score,
			Band:       RecoveryBands.Classify(score),
			Components: components,
		},
		AlcoholEffect: alcoholEffect(hrvDeviation, hrvOK, rhrDeviation, rhrOK, in.YesterdayStrain),
	}, nil
}

func validateRecovery(in *RecoveryInputs) error {
	if in.HRV != nil && *in.HRV <= 0 {
		return domainErrorf("HRV %.1f ms is not positive", *in.HRV)
	}
	if in.RestingHR != nil && *in.RestingHR <= 0 {
		return domainErrorf("resting HR %.1f bpm is not positive", *in.RestingHR)
	}
	if in.YesterdaySleepScore != nil && (*in.YesterdaySleepScore < 0 || *in.YesterdaySleepScore > 100) {
		return domainErrorf("sleep score %.1f outside [0, 100]", *in.YesterdaySleepScore)
	}
	return nil
}

// deviationFromBaseline returns the fractional deviation of a signal from
// its baseline. ok is false when either side is missing or the baseline is
// non-positive (a zero baseline degrades to "no baseline", never divides).
func deviationFromBaseline(value, baseline *float64) (float64, bool) {
	if value == nil || baseline == nil || *baseline <= 0 {
		return 0, false
	}
	return (*value - *baseline) / *baseline, true
}

// hrvSubScore rewards at-or-above-baseline HRV and penalizes deficits more
// than proportionally: a 25% drop hurts far more than 2.5x a 10% drop.
func hrvSubScore(deviation float64) float64 {
	if deviation >= 0 {
		return math.Min(100, BaselineSubScore+HRVBonusScale*deviation)
	}
	deficit := -deviation
	penalty := HRVPenaltyLinearScale*deficit + HRVPenaltyQuadScale*deficit*deficit
	return math.Max(0, BaselineSubScore-penalty)
}

// rhrSubScore penalizes elevated RHR and rewards suppressed RHR up to a
// cap; a dramatic drop below baseline is not "more recovered", it can mean
// something is wrong, so the bonus saturates.
func rhrSubScore(deviation float64) float64 {
	if deviation > 0 {
		return math.Max(0, BaselineSubScore-RHRPenaltyScale*deviation)
	}
	bonus := math.Min(RHRBonusCap, RHRBonusScale*(-deviation))
	return math.Min(100, BaselineSubScore+bonus)
}

// tsbSubScore maps training stress balance onto 0-100: fresh (positive TSB)
// contributes above neutral, accumulated fatigue below.
func tsbSubScore(tsb float64) float64 {
	return clamp(TSBNeutralScore+TSBScoreScale*tsb, 0, 100)
}

// alcoholEffect detects the characteristic signature of alcohol (or
// illness): suppressed HRV with simultaneously elevated RHR, not explained
// by heavy training the day before. Both thresholds must be crossed.
func alcoholEffect(hrvDeviation float64, hrvOK bool, rhrDeviation float64, rhrOK bool, yesterdayStrain *float64) bool {
	if !hrvOK || !rhrOK {
		return false
	}
	suppressed := hrvDeviation <= -AlcoholHRVSuppression
	elevated := rhrDeviation >= AlcoholRHRElevation
	heavyTraining := yesterdayStrain != nil && *yesterdayStrain >= StrainHighThreshold
	return suppressed && elevated && !heavyTraining
}
