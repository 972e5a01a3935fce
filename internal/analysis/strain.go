package analysis

import (
	"math"

	"readiness/internal/store"
)

// Sex selects the TRIMP exponential weighting coefficient.
type Sex int

const (
	SexMale Sex = iota
	SexFemale
)

// AthleteProfile holds the athlete parameters the engines need.
type AthleteProfile struct {
	Sex              Sex
	RestingHR        float64  // bpm
	MaxHR            float64  // bpm
	FTP              *float64 // watts, nil if unknown
	SleepNeedMinutes float64  // 0 means the default need
}

func (p AthleteProfile) trimpCoefficient() float64 {
	if p.Sex == SexFemale {
		return TRIMPCoefficientFemale
	}
	return TRIMPCoefficientMale
}

// RecoveryFactorInputs are the under-recovery signals that modulate how
// much scored strain a day's physical output produces.
type RecoveryFactorInputs struct {
	HRV                 *float64 // today's HRV, ms
	HRVBaseline         *float64 // rolling baseline, nil if not yet established
	YesterdaySleepScore *float64
}

// CalculateStrain converts a day's workouts and non-exercise activity into
// a bounded strain score. Missing inputs (no workouts, no activity) degrade
// to zero contributions; invalid inputs (negative durations, non-positive
// heart rates) are domain violations and fail loudly.
func CalculateStrain(workouts []store.Workout, activity *store.DailyActivity, rec RecoveryFactorInputs, profile AthleteProfile) (ScoreResult, error) {
	var cardioTRIMP, strengthLoad float64

	for i := range workouts {
		w := &workouts[i]
		if err := validateWorkout(w); err != nil {
			return ScoreResult{}, err
		}

		if w.Type == store.WorkoutTypeStrength {
			load, err := strengthSessionLoad(w, profile)
			if err != nil {
				return ScoreResult{}, err
			}
			strengthLoad += load
			continue
		}

		trimp, err := workoutTRIMP(w, profile)
		if err != nil {
			return ScoreResult{}, err
		}
		cardioTRIMP += trimp
	}

	activityLoad, activitySat, err := nonExerciseLoad(activity)
	if err != nil {
		return ScoreResult{}, err
	}

	// Cumulative physiological disturbance for the day.
	epoc := (cardioTRIMP + strengthLoad) * EPOCCoefficient

	// Logarithmic compression: a single monster workout shouldn't saturate
	// the scale and hide differences among moderate days.
	totalLoad := cardioTRIMP + strengthLoad + activityLoad
	rawStrain := StrainScale * math.Log(1+totalLoad/EPOCNormalizer)
	rawStrain = clamp(rawStrain, 0, StrainCeiling)

	factor := recoveryFactor(rec)
	score := clamp(rawStrain*factor, 0, StrainCeiling)

	return ScoreResult{
		Score: score,
		Band:  StrainBands.Classify(score),
		Components: map[string]float64{
			"cardio":          math.Min(100, epoc/CardioFullEPOC*100),
			"strength":        math.Min(100, strengthLoad/StrengthFullLoad*100),
			"activity":        activitySat * 100,
			"trimp":           cardioTRIMP + strengthLoad,
			"epoc":            epoc,
			"raw_strain":      rawStrain,
			"recovery_factor": factor,
		},
	}, nil
}

func validateWorkout(w *store.Workout) error {
	if w.DurationSeconds < 0 {
		return domainErrorf("workout duration %d seconds is negative", w.DurationSeconds)
	}
	if w.AverageHR != nil && *w.AverageHR <= 0 {
		return domainErrorf("workout average HR %.1f is not positive", *w.AverageHR)
	}
	if w.AveragePower != nil && *w.AveragePower < 0 {
		return domainErrorf("workout average power %.1f is negative", *w.AveragePower)
	}
	if w.StrengthRPE != nil && (*w.StrengthRPE < 0 || *w.StrengthRPE > MaxSessionRPE) {
		return domainErrorf("session RPE %.1f outside [0, %v]", *w.StrengthRPE, MaxSessionRPE)
	}
	if w.ZoneSeconds != nil {
		for zone, secs := range w.ZoneSeconds {
			if secs < 0 {
				return domainErrorf("zone %d time %d seconds is negative", zone+1, secs)
			}
		}
	}
	return nil
}

// workoutTRIMP computes a single cardio workout's training impulse. Heart
// rate gives a Banister TRIMP; average power gives a TSS-style proxy; with
// both, the blend favors power. Zone time distribution is the fallback when
// no average HR exists (Edwards-style zonal TRIMP).
func workoutTRIMP(w *store.Workout, profile AthleteProfile) (float64, error) {
	hrTRIMP := banisterTRIMP(w, profile)
	if hrTRIMP == 0 && w.ZoneSeconds != nil {
		hrTRIMP = zonalTRIMP(w.ZoneSeconds)
	}

	powerTSS := powerStress(w, profile)

	switch {
	case powerTSS > 0 && hrTRIMP > 0:
		return PowerBlendWeight*powerTSS + (1-PowerBlendWeight)*hrTRIMP, nil
	case powerTSS > 0:
		return powerTSS, nil
	default:
		return hrTRIMP, nil
	}
}

// banisterTRIMP = duration (min) x HR-reserve fraction x e^(b x fraction),
// b differentiated by sex. Returns 0 when HR data or a usable HR reserve is
// missing.
func banisterTRIMP(w *store.Workout, profile AthleteProfile) float64 {
	if w.AverageHR == nil {
		return 0
	}

	hrReserve := profile.MaxHR - profile.RestingHR
	if hrReserve <= 0 {
		return 0
	}

	hrRatio := (*w.AverageHR - profile.RestingHR) / hrReserve
	hrRatio = clamp(hrRatio, 0, 1)

	duration := float64(w.DurationSeconds) / 60.0
	return duration * hrRatio * math.Exp(profile.trimpCoefficient()*hrRatio)
}

// zonalTRIMP sums minutes-in-zone weighted by zone index (Edwards).
func zonalTRIMP(zones *[5]int) float64 {
	var trimp float64
	for i, secs := range zones {
		trimp += float64(secs) / 60.0 * float64(i+1)
	}
	return trimp
}

// powerStress is a TSS-style proxy: hours x IF^2 x 100, IF = avg power / FTP.
func powerStress(w *store.Workout, profile AthleteProfile) float64 {
	if w.AveragePower == nil || profile.FTP == nil || *profile.FTP <= 0 {
		return 0
	}
	intensity := *w.AveragePower / *profile.FTP
	hours := float64(w.DurationSeconds) / 3600.0
	return hours * intensity * intensity * 100
}

// strengthSessionLoad estimates a strength session's load. Sensor HR wins
// when present; otherwise session RPE x duration, scaled into
// TRIMP-comparable units. With neither, the session contributes nothing.
func strengthSessionLoad(w *store.Workout, profile AthleteProfile) (float64, error) {
	if hrTRIMP := banisterTRIMP(w, profile); hrTRIMP > 0 {
		return hrTRIMP, nil
	}
	if w.StrengthRPE == nil {
		return 0, nil
	}
	minutes := float64(w.DurationSeconds) / 60.0
	return *w.StrengthRPE * minutes * StrengthRPEScale, nil
}

// nonExerciseLoad converts steps and active energy into a bounded load with
// diminishing returns, so incidental daily movement can't produce
// disproportionate strain. Returns the TRIMP-equivalent load and the
// saturation fraction in [0, 1).
func nonExerciseLoad(activity *store.DailyActivity) (load, saturation float64, err error) {
	if activity == nil {
		return 0, 0, nil
	}
	if activity.Steps < 0 {
		return 0, 0, domainErrorf("step count %d is negative", activity.Steps)
	}
	if activity.ActiveEnergy < 0 {
		return 0, 0, domainErrorf("active energy %.1f kcal is negative", activity.ActiveEnergy)
	}

	effort := float64(activity.Steps)/StepSaturation + activity.ActiveEnergy/EnergySaturation
	saturation = 1 - math.Exp(-effort)
	return NonExerciseMaxLoad * saturation, saturation, nil
}

// recoveryFactor derives the strain multiplier from today's HRV deviation
// and yesterday's sleep. Missing inputs are neutral (factor 1.0).
func recoveryFactor(rec RecoveryFactorInputs) float64 {
	factor := 1.0

	if rec.HRV != nil && rec.HRVBaseline != nil && *rec.HRVBaseline > 0 {
		deviation := (*rec.HRV - *rec.HRVBaseline) / *rec.HRVBaseline
		if deviation < 0 {
			factor -= math.Min(HRVDeficitFactorCap, -deviation*HRVDeficitFactorScale)
		}
	}

	if rec.YesterdaySleepScore != nil && *rec.YesterdaySleepScore < SleepFactorThreshold {
		deficit := SleepFactorThreshold - *rec.YesterdaySleepScore
		factor -= math.Min(SleepFactorCap, deficit*SleepFactorScale)
	}

	return clamp(factor, RecoveryFactorFloor, 1.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
