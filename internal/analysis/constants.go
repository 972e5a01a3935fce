package analysis

// Training load model time constants (days). The fitness/fatigue model uses
// exponentially-weighted averages with fixed 42-day (chronic) and 7-day
// (acute) horizons.
const (
	CTLTimeConstant = 42.0
	ATLTimeConstant = 7.0
)

// Banister TRIMP exponential weighting coefficients, differentiated by sex.
const (
	TRIMPCoefficientMale   = 1.92
	TRIMPCoefficientFemale = 1.67
)

// Power-based training stress. When average power and FTP are both known,
// the blended workout load favors power, since power is the more direct
// load proxy for cycling.
const (
	PowerBlendWeight = 0.7
)

// Strength session load. With no sensor data, load is estimated from
// session RPE x duration (Foster), scaled into TRIMP-comparable units.
const (
	StrengthRPEScale = 0.4
	StrengthFullLoad = 200.0 // TRIMP-equivalent load scoring 100 on the strength sub-score
	MaxSessionRPE    = 10.0
)

// Non-exercise load. Steps and active energy saturate so incidental
// movement can't dominate a day's strain.
const (
	StepSaturation     = 12000.0 // steps
	EnergySaturation   = 600.0   // kcal
	NonExerciseMaxLoad = 35.0    // TRIMP-equivalent ceiling
)

// EPOC conversion and the logarithmic strain transform.
const (
	EPOCCoefficient = 0.65
	CardioFullEPOC  = 260.0 // EPOC scoring 100 on the cardio sub-score

	StrainScale    = 6.0
	EPOCNormalizer = 50.0
	StrainCeiling  = 21.0
)

// Recovery factor modulation. Strain "costs" more when under-recovered;
// the multiplier never drops below RecoveryFactorFloor.
const (
	RecoveryFactorFloor   = 0.85
	HRVDeficitFactorScale = 0.4 // factor penalty per unit of HRV deficit fraction
	HRVDeficitFactorCap   = 0.10
	SleepFactorThreshold  = 70.0  // sleep scores below this reduce the factor
	SleepFactorScale      = 0.002 // factor penalty per point below the threshold
	SleepFactorCap        = 0.05
)

// Sleep score component weights. Timing is deliberately light: one late
// night shouldn't sink an otherwise excellent score.
const (
	SleepWeightPerformance  = 0.30
	SleepWeightStageQuality = 0.32
	SleepWeightEfficiency   = 0.22
	SleepWeightDisturbances = 0.14
	SleepWeightTiming       = 0.02
)

// Sleep component curves.
const (
	DefaultSleepNeedMinutes = 480.0
	ExpectedDeepFraction    = 0.20 // share of asleep time
	ExpectedREMFraction     = 0.22
	DisturbancePenalty      = 12.5  // points per wake event
	TimingFullPenaltyMin    = 120.0 // wake-time deviation scoring 0
)

// Recovery score component weights.
const (
	RecoveryWeightHRV   = 0.40
	RecoveryWeightRHR   = 0.25
	RecoveryWeightSleep = 0.25
	RecoveryWeightTSB   = 0.10
)

// Recovery component curves. At-baseline scores 85; above-baseline HRV and
// below-baseline RHR earn up to 15 bonus points; deficits are penalized
// more than proportionally.
const (
	BaselineSubScore = 85.0

	HRVBonusScale         = 100.0 // points per unit of positive deviation fraction
	HRVPenaltyLinearScale = 120.0
	HRVPenaltyQuadScale   = 160.0
	RHRPenaltyScale       = 180.0
	RHRBonusScale         = 120.0
	RHRBonusCap           = 15.0

	TSBNeutralScore = 50.0
	TSBScoreScale   = 2.0 // points per unit of TSB
)

// Alcohol/illness heuristic thresholds. The signature is suppressed HRV
// with simultaneously elevated RHR, absent heavy same-day training.
const (
	AlcoholHRVSuppression = 0.20 // fraction below baseline
	AlcoholRHRElevation   = 0.10 // fraction above baseline
)

// Baselines require at least this many non-missing days by default.
const DefaultMinBaselineDays = 3

// Band cut points (inclusive lower bounds of the higher band).
var (
	defaultRecoveryThresholds = []float64{60, 70, 80}
	defaultSleepThresholds    = []float64{60, 70, 80}
	defaultStrainThresholds   = []float64{8, 14, 18}
)

// StrainHighThreshold marks the start of the High strain band; days at or
// above it count as heavy training for the alcohol heuristic.
const StrainHighThreshold = 14.0
