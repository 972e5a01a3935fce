package config

import (
	"strings"
	"testing"

	"readiness/internal/analysis"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Athlete.Sex != "male" {
		t.Errorf("Athlete.Sex = %q, want %q", cfg.Athlete.Sex, "male")
	}
	if cfg.Athlete.RestingHR != 50 {
		t.Errorf("Athlete.RestingHR = %v, want 50", cfg.Athlete.RestingHR)
	}
	if cfg.Athlete.MaxHR != 185 {
		t.Errorf("Athlete.MaxHR = %v, want 185", cfg.Athlete.MaxHR)
	}
	if cfg.Athlete.SleepNeedMinutes != 480 {
		t.Errorf("Athlete.SleepNeedMinutes = %v, want 480", cfg.Athlete.SleepNeedMinutes)
	}
	if cfg.Baseline.WindowDays != 14 || cfg.Baseline.MinDays != 3 {
		t.Errorf("Baseline = %+v, want 14-day window, 3-day minimum", cfg.Baseline)
	}

	// No custom bands by default
	if len(cfg.Bands.Recovery) != 0 || len(cfg.Bands.Sleep) != 0 || len(cfg.Bands.Strain) != 0 {
		t.Errorf("Bands should be empty by default, got %+v", cfg.Bands)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "custom bands",
			mutate: func(c *Config) { c.Bands.Recovery = []float64{50, 65, 80} },
		},
		{
			name:        "bad sex",
			mutate:      func(c *Config) { c.Athlete.Sex = "m" },
			expectError: true,
			errContains: "athlete.sex",
		},
		{
			name:        "missing heart rates",
			mutate:      func(c *Config) { c.Athlete.RestingHR = 0 },
			expectError: true,
			errContains: "resting_hr",
		},
		{
			name:        "resting above max",
			mutate:      func(c *Config) { c.Athlete.RestingHR = 190 },
			expectError: true,
			errContains: "resting_hr",
		},
		{
			name:        "negative FTP",
			mutate:      func(c *Config) { c.Athlete.FTP = -10 },
			expectError: true,
			errContains: "ftp",
		},
		{
			name:        "min days above window",
			mutate:      func(c *Config) { c.Baseline.MinDays = 30 },
			expectError: true,
			errContains: "min_days",
		},
		{
			name:        "wrong band count",
			mutate:      func(c *Config) { c.Bands.Sleep = []float64{60, 80} },
			expectError: true,
			errContains: "bands.sleep",
		},
		{
			name:        "unsorted bands",
			mutate:      func(c *Config) { c.Bands.Strain = []float64{14, 8, 18} },
			expectError: true,
			errContains: "ascending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestProfile(t *testing.T) {
	cfg := Config{
		Athlete: AthleteConfig{
			Sex:              "female",
			RestingHR:        48,
			MaxHR:            188,
			FTP:              240,
			SleepNeedMinutes: 460,
		},
	}

	profile := cfg.Profile()
	if profile.Sex != analysis.SexFemale {
		t.Errorf("Sex = %v, want SexFemale", profile.Sex)
	}
	if profile.RestingHR != 48 || profile.MaxHR != 188 {
		t.Errorf("heart rates = %v/%v, want 48/188", profile.RestingHR, profile.MaxHR)
	}
	if profile.FTP == nil || *profile.FTP != 240 {
		t.Errorf("FTP = %v, want 240", profile.FTP)
	}
	if profile.SleepNeedMinutes != 460 {
		t.Errorf("SleepNeedMinutes = %v, want 460", profile.SleepNeedMinutes)
	}

	// FTP of zero means unknown, not a 0-watt threshold
	cfg.Athlete.FTP = 0
	if p := cfg.Profile(); p.FTP != nil {
		t.Errorf("FTP = %v, want nil when unset", *p.FTP)
	}
}
