package analysis

import "testing"

func TestBandScaleClassify(t *testing.T) {
	tests := []struct {
		name     string
		scale    BandScale
		score    float64
		expected Band
	}{
		{"recovery well below first cut", RecoveryBands, 12, BandPoor},
		{"recovery just below first cut", RecoveryBands, 59.9, BandPoor},
		{"recovery boundary belongs to higher band", RecoveryBands, 60, BandFair},
		{"recovery mid fair", RecoveryBands, 65, BandFair},
		{"recovery boundary 70", RecoveryBands, 70, BandGood},
		{"recovery boundary 80", RecoveryBands, 80, BandOptimal},
		{"recovery top of range", RecoveryBands, 100, BandOptimal},
		{"sleep zero", SleepBands, 0, BandPoor},
		{"sleep optimal", SleepBands, 92, BandOptimal},
		{"strain rest day", StrainBands, 0, BandLight},
		{"strain boundary 8", StrainBands, 8, BandModerate},
		{"strain boundary 14", StrainBands, 14, BandHigh},
		{"strain boundary 18", StrainBands, 18, BandAllOut},
		{"strain ceiling", StrainBands, 21, BandAllOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.scale.Classify(tt.score)
			if result != tt.expected {
				t.Errorf("Classify(%v) = %v, want %v", tt.score, result, tt.expected)
			}
		})
	}
}

func TestBandScaleMonotonic(t *testing.T) {
	// Increasing the score must never decrease the band.
	for _, scale := range []BandScale{RecoveryBands, SleepBands, StrainBands} {
		lastIdx := -1
		for score := 0.0; score <= 100; score += 0.5 {
			band := scale.Classify(score)
			idx := bandIndex(scale, band)
			if idx < lastIdx {
				t.Fatalf("band went backwards at score %v: %v", score, band)
			}
			lastIdx = idx
		}
	}
}

func TestBandScaleWithThresholds(t *testing.T) {
	custom := RecoveryBands.WithThresholds([]float64{50, 65, 85})
	if got := custom.Classify(55); got != BandFair {
		t.Errorf("Classify(55) with custom cuts = %v, want %v", got, BandFair)
	}
	if got := custom.Classify(84); got != BandGood {
		t.Errorf("Classify(84) with custom cuts = %v, want %v", got, BandGood)
	}

	// Mismatched threshold count keeps the original scale.
	unchanged := RecoveryBands.WithThresholds([]float64{10})
	if got := unchanged.Classify(60); got != BandFair {
		t.Errorf("Classify(60) after bad override = %v, want %v", got, BandFair)
	}
}

func bandIndex(scale BandScale, band Band) int {
	for i, label := range scale.Labels {
		if label == band {
			return i
		}
	}
	return -1
}
