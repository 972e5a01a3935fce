package analysis

import (
	"readiness/internal/store"
)

// DayInputs gathers everything needed to score one calendar day. Window is
// the trailing baseline window ending the day before Today; PrevLoad is the
// load state through yesterday. The caller owns assembling these from
// whatever persistence it uses.
type DayInputs struct {
	Today   store.DailyObservation
	Window  []store.DailyObservation
	Profile AthleteProfile

	PrevLoad            TrainingLoadState
	HasLoadHistory      bool
	YesterdaySleepScore *float64
	YesterdayStrain     *float64

	MinBaselineDays int // 0 means the default
}

// DayScores is the output of scoring one day. Sleep is nil when no sleep
// record exists for the day; Strain and Recovery are always produced
// (degrading to their floors on missing data). Load is the state after
// applying the day's training stress.
type DayScores struct {
	Sleep    *ScoreResult
	Strain   ScoreResult
	Recovery RecoveryResult
	Load     TrainingLoadState
	Stress   float64 // raw training impulse fed to the load model
}

// ComputeDayScores runs the engines for one day in dependency order:
// baselines first, then sleep, strain, the load update, and recovery.
// Recovery reads TSB from the state through yesterday; the load state then
// advances with today's stress.
func ComputeDayScores(in DayInputs) (DayScores, error) {
	var out DayScores

	hrvBaseline := baselinePtr(SignalHRV, in.Window, in.MinBaselineDays)
	rhrBaseline := baselinePtr(SignalRestingHR, in.Window, in.MinBaselineDays)

	sleepBaselines := SleepBaselines{NeedMinutes: in.Profile.SleepNeedMinutes}
	if wake, ok := ComputeBaseline(SignalWakeTime, in.Window, in.MinBaselineDays); ok {
		sleepBaselines.WakeMinutes = wake
		sleepBaselines.HasWakeMinutes = true
	}

	if in.Today.Sleep != nil {
		sleep, err := CalculateSleep(*in.Today.Sleep, sleepBaselines)
		if err != nil {
			return DayScores{}, err
		}
		out.Sleep = &sleep
	}

	strain, err := CalculateStrain(in.Today.Workouts, in.Today.Activity, RecoveryFactorInputs{
		HRV:                 in.Today.HRV,
		HRVBaseline:         hrvBaseline,
		YesterdaySleepScore: in.YesterdaySleepScore,
	}, in.Profile)
	if err != nil {
		return DayScores{}, err
	}
	out.Strain = strain
	out.Stress = strain.Components["trimp"]

	recoveryInputs := RecoveryInputs{
		HRV:                 in.Today.HRV,
		RestingHR:           in.Today.RestingHR,
		HRVBaseline:         hrvBaseline,
		RHRBaseline:         rhrBaseline,
		YesterdaySleepScore: in.YesterdaySleepScore,
		YesterdayStrain:     in.YesterdayStrain,
	}
	if in.HasLoadHistory {
		tsb := in.PrevLoad.TSB()
		recoveryInputs.TSB = &tsb
	}

	recovery, err := CalculateRecovery(recoveryInputs)
	if err != nil {
		return DayScores{}, err
	}
	out.Recovery = recovery

	out.Load = Advance(in.PrevLoad, out.Stress)
	return out, nil
}

func baselinePtr(kind SignalKind, window []store.DailyObservation, minDays int) *float64 {
	if b, ok := ComputeBaseline(kind, window, minDays); ok {
		return &b
	}
	return nil
}
