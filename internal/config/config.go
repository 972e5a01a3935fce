package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"readiness/internal/analysis"
)

// Config represents the application configuration
type Config struct {
	Athlete  AthleteConfig  `json:"athlete"`
	Bands    BandsConfig    `json:"bands"`
	Baseline BaselineConfig `json:"baseline"`
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	Sex              string  `json:"sex"` // "male" or "female"
	RestingHR        float64 `json:"resting_hr"`
	MaxHR            float64 `json:"max_hr"`
	FTP              float64 `json:"ftp"` // watts, 0 if unknown
	SleepNeedMinutes float64 `json:"sleep_need_minutes"`
}

// BandsConfig holds optional custom band cut points. Each list is three
// ascending lower bounds; an empty list keeps the built-in defaults.
type BandsConfig struct {
	Recovery []float64 `json:"recovery"`
	Sleep    []float64 `json:"sleep"`
	Strain   []float64 `json:"strain"`
}

// BaselineConfig holds the rolling-baseline window settings
type BaselineConfig struct {
	WindowDays int `json:"window_days"`
	MinDays    int `json:"min_days"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Athlete: AthleteConfig{
			Sex:              "male",
			RestingHR:        50,
			MaxHR:            185,
			SleepNeedMinutes: 480,
		},
		Baseline: BaselineConfig{
			WindowDays: 14,
			MinDays:    3,
		},
	}
}

// Load reads the configuration from ~/.readiness/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Athlete.Sex == "" {
		cfg.Athlete.Sex = defaults.Athlete.Sex
	}
	if cfg.Athlete.RestingHR == 0 {
		cfg.Athlete.RestingHR = defaults.Athlete.RestingHR
	}
	if cfg.Athlete.MaxHR == 0 {
		cfg.Athlete.MaxHR = defaults.Athlete.MaxHR
	}
	if cfg.Athlete.SleepNeedMinutes == 0 {
		cfg.Athlete.SleepNeedMinutes = defaults.Athlete.SleepNeedMinutes
	}
	if cfg.Baseline.WindowDays == 0 {
		cfg.Baseline.WindowDays = defaults.Baseline.WindowDays
	}
	if cfg.Baseline.MinDays == 0 {
		cfg.Baseline.MinDays = defaults.Baseline.MinDays
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.readiness/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	return Save(&example)
}

// Validate checks if the config has usable values
func (c *Config) Validate() error {
	if c.Athlete.Sex != "male" && c.Athlete.Sex != "female" {
		return fmt.Errorf("athlete.sex must be \"male\" or \"female\", got %q", c.Athlete.Sex)
	}
	if c.Athlete.RestingHR <= 0 || c.Athlete.MaxHR <= 0 {
		return errors.New("athlete.resting_hr and athlete.max_hr are required")
	}
	if c.Athlete.RestingHR >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.resting_hr (%v) must be less than athlete.max_hr (%v)", c.Athlete.RestingHR, c.Athlete.MaxHR)
	}
	if c.Athlete.FTP < 0 {
		return fmt.Errorf("athlete.ftp (%v) must not be negative", c.Athlete.FTP)
	}
	if c.Baseline.MinDays > c.Baseline.WindowDays {
		return fmt.Errorf("baseline.min_days (%d) must not exceed baseline.window_days (%d)", c.Baseline.MinDays, c.Baseline.WindowDays)
	}

	for _, bands := range []struct {
		name       string
		thresholds []float64
	}{
		{"bands.recovery", c.Bands.Recovery},
		{"bands.sleep", c.Bands.Sleep},
		{"bands.strain", c.Bands.Strain},
	} {
		if err := validateThresholds(bands.name, bands.thresholds); err != nil {
			return err
		}
	}

	return nil
}

func validateThresholds(name string, thresholds []float64) error {
	if len(thresholds) == 0 {
		return nil
	}
	if len(thresholds) != 3 {
		return fmt.Errorf("%s must list exactly 3 cut points, got %d", name, len(thresholds))
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return fmt.Errorf("%s cut points must be strictly ascending", name)
		}
	}
	return nil
}

// Profile converts the athlete settings into the analysis profile
func (c *Config) Profile() analysis.AthleteProfile {
	profile := analysis.AthleteProfile{
		Sex:              analysis.SexMale,
		RestingHR:        c.Athlete.RestingHR,
		MaxHR:            c.Athlete.MaxHR,
		SleepNeedMinutes: c.Athlete.SleepNeedMinutes,
	}
	if c.Athlete.Sex == "female" {
		profile.Sex = analysis.SexFemale
	}
	if c.Athlete.FTP > 0 {
		ftp := c.Athlete.FTP
		profile.FTP = &ftp
	}
	return profile
}

// ApplyBands installs any custom cut points on the shared band scales
func (c *Config) ApplyBands() {
	analysis.RecoveryBands = analysis.RecoveryBands.WithThresholds(c.Bands.Recovery)
	analysis.SleepBands = analysis.SleepBands.WithThresholds(c.Bands.Sleep)
	analysis.StrainBands = analysis.StrainBands.WithThresholds(c.Bands.Strain)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".readiness", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".readiness"), nil
}
