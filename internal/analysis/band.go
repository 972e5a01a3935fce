package analysis

// Band is an ordinal qualitative classification of a score.
type Band string

// Recovery and sleep bands.
const (
	BandPoor    Band = "Poor"
	BandFair    Band = "Fair"
	BandGood    Band = "Good"
	BandOptimal Band = "Optimal"
)

// Strain bands.
const (
	BandLight    Band = "Light"
	BandModerate Band = "Moderate"
	BandHigh     Band = "High"
	BandAllOut   Band = "All Out"
)

// BandScale maps a score range onto ordinal bands. Thresholds are ascending
// inclusive lower bounds: a score at a threshold belongs to the higher band.
// Labels must have exactly one more entry than Thresholds so every score
// maps to a band.
type BandScale struct {
	Thresholds []float64
	Labels     []Band
}

// Classify returns the band for a score.
func (s BandScale) Classify(score float64) Band {
	idx := 0
	for _, threshold := range s.Thresholds {
		if score >= threshold {
			idx++
		}
	}
	return s.Labels[idx]
}

// WithThresholds returns a copy of the scale using explicit cut points.
// Cut points are a calibration choice; the label set stays fixed and the
// threshold count must match the original scale's.
func (s BandScale) WithThresholds(thresholds []float64) BandScale {
	if len(thresholds) != len(s.Thresholds) {
		return s
	}
	return BandScale{Thresholds: thresholds, Labels: s.Labels}
}

// Default scales for the three score types.
var (
	RecoveryBands = BandScale{
		Thresholds: defaultRecoveryThresholds,
		Labels:     []Band{BandPoor, BandFair, BandGood, BandOptimal},
	}
	SleepBands = BandScale{
		Thresholds: defaultSleepThresholds,
		Labels:     []Band{BandPoor, BandFair, BandGood, BandOptimal},
	}
	StrainBands = BandScale{
		Thresholds: defaultStrainThresholds,
		Labels:     []Band{BandLight, BandModerate, BandHigh, BandAllOut},
	}
)

// ScoreResult is the output of a scoring engine: a bounded numeric score,
// its band, and named sub-scores for diagnostics. Produced fresh on every
// call and never mutated.
type ScoreResult struct {
	Score      float64
	Band       Band
	Components map[string]float64
}
