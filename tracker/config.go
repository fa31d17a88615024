package tracker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the noise and timing parameters of a motion model.
type Config struct {
	// Dt is the time between successive Predict calls, in the caller's
	// frame units. Velocities are reported per Dt.
	Dt float64 `yaml:"dt"`
	// InitialPoseUncertainty scales the whole initial covariance.
	InitialPoseUncertainty float64 `yaml:"initial_pose_uncertainty"`
	// InitialVelocityUncertainty further scales the velocity block of the
	// initial covariance, on top of InitialPoseUncertainty.
	InitialVelocityUncertainty float64 `yaml:"initial_velocity_uncertainty"`
	// VelocityProcessNoise scales the velocity block of the process noise.
	VelocityProcessNoise float64 `yaml:"velocity_process_noise"`
	// MeasurementNoiseScale inflates the measurement noise. Zero disables it.
	MeasurementNoiseScale float64 `yaml:"measurement_noise_scale"`
}

func DefaultConfig() Config {
	return Config{
		Dt:                         1.0,
		InitialPoseUncertainty:     10.0,
		InitialVelocityUncertainty: 1000.0,
		VelocityProcessNoise:       0.01,
		MeasurementNoiseScale:      0,
	}
}

// Validate reports the first parameter that would produce a degenerate filter.
func (c Config) Validate() error {
	switch {
	case c.Dt <= 0:
		return fmt.Errorf("dt must be positive, got %v", c.Dt)
	case c.InitialPoseUncertainty <= 0:
		return fmt.Errorf("initial_pose_uncertainty must be positive, got %v", c.InitialPoseUncertainty)
	case c.InitialVelocityUncertainty <= 0:
		return fmt.Errorf("initial_velocity_uncertainty must be positive, got %v", c.InitialVelocityUncertainty)
	case c.VelocityProcessNoise <= 0:
		return fmt.Errorf("velocity_process_noise must be positive, got %v", c.VelocityProcessNoise)
	case c.MeasurementNoiseScale < 0:
		return errors.New("measurement_noise_scale must not be negative")
	}
	return nil
}

// LoadConfig reads a YAML file. Fields missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return cfg, fmt.Errorf("config file must have .yaml or .yml extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", cleanPath, err)
	}
	return cfg, nil
}

// Option adjusts the Config of a model under construction.
type Option func(*Config)

func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

// WithMeasurementNoiseScale inflates R by scale.
func WithMeasurementNoiseScale(scale float64) Option {
	return func(c *Config) { c.MeasurementNoiseScale = scale }
}
