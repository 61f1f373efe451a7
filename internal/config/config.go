package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Remote  RemoteConfig  `json:"remote"`
	Athlete AthleteConfig `json:"athlete"`
	Display DisplayConfig `json:"display"`
}

// RemoteConfig holds the training platform API settings. The token can
// also come from the TRAINLAB_API_TOKEN environment variable (or a .env
// file), which takes precedence over the config file.
type RemoteConfig struct {
	BaseURL  string `json:"base_url"`
	APIToken string `json:"api_token"`
}

// AthleteConfig holds athlete-specific settings used to seed the
// stored profile. Zero means unset.
type AthleteConfig struct {
	FTPWatts    float64 `json:"ftp_watts"`
	ThresholdHR float64 `json:"threshold_hr"`
	MaxHR       float64 `json:"max_hr"`
	RestingHR   float64 `json:"resting_hr"`
	WeightKg    float64 `json:"weight_kg"`
	BirthDate   string  `json:"birth_date"` // YYYY-MM-DD
	StartingCTL float64 `json:"starting_ctl"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"`
	ChartDays    int    `json:"chart_days"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			DistanceUnit: "km",
			ChartDays:    90,
		},
	}
}

// Load reads the configuration from ~/.trainlab/config.json.
// A .env file in the working directory is loaded first so that
// TRAINLAB_API_TOKEN can override the stored token.
func Load() (*Config, error) {
	// Best effort; a missing .env is not an error
	_ = godotenv.Load()

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
	if cfg.Display.DistanceUnit == "" {
		cfg.Display.DistanceUnit = defaults.Display.DistanceUnit
	}
	if cfg.Display.ChartDays == 0 {
		cfg.Display.ChartDays = defaults.Display.ChartDays
	}

	if token := os.Getenv("TRAINLAB_API_TOKEN"); token != "" {
		cfg.Remote.APIToken = token
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.trainlab/config.json
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

	example := Config{
		Remote: RemoteConfig{
			BaseURL:  "https://api.example-training.com/v1",
			APIToken: "YOUR_API_TOKEN",
		},
		Athlete: AthleteConfig{
			FTPWatts:    250,
			ThresholdHR: 165,
			MaxHR:       185,
			RestingHR:   50,
			WeightKg:    72,
		},
		Display: DisplayConfig{
			DistanceUnit: "km",
			ChartDays:    90,
		},
	}

	return Save(&example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	// Validate display units
	if c.Display.DistanceUnit != "" && c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "mi" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"mi\", got %q", c.Display.DistanceUnit)
	}
	if c.Display.ChartDays < 0 {
		return fmt.Errorf("display.chart_days must be positive, got %d", c.Display.ChartDays)
	}

	// Validate threshold_hr < max_hr when both are set
	if c.Athlete.ThresholdHR > 0 && c.Athlete.MaxHR > 0 && c.Athlete.ThresholdHR >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.threshold_hr (%v) must be less than athlete.max_hr (%v)", c.Athlete.ThresholdHR, c.Athlete.MaxHR)
	}
	if c.Athlete.FTPWatts < 0 {
		return fmt.Errorf("athlete.ftp_watts must be positive, got %v", c.Athlete.FTPWatts)
	}
	if c.Athlete.WeightKg < 0 {
		return fmt.Errorf("athlete.weight_kg must be positive, got %v", c.Athlete.WeightKg)
	}

	return nil
}

// HasRemote reports whether remote sync is configured
func (c *Config) HasRemote() bool {
	return c.Remote.BaseURL != "" && c.Remote.APIToken != "" && c.Remote.APIToken != "YOUR_API_TOKEN"
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".trainlab", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".trainlab"), nil
}
