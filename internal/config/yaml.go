// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"scope/internal/log"
	"scope/internal/render"
	"scope/internal/spectral"
	"scope/internal/synth"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config represents the main application configuration structure, loaded from YAML.
type Config struct {
	Debug    bool           `yaml:"debug"`     // Enable debug logging.
	LogLevel string         `yaml:"log_level"` // Logging level (e.g., "debug", "info", "warn", "error").
	Render   RenderConfig   `yaml:"render"`    // Trace drawing settings.
	Spectral SpectralConfig `yaml:"spectral"`  // FFT mode settings.
	Measure  MeasureConfig  `yaml:"measure"`   // Automatic measurement settings.
	Viewport ViewportConfig `yaml:"viewport"`  // Drawing area for headless analysis.
	Signal   SignalConfig   `yaml:"signal"`    // Synthesized input signal.
	Display  DisplayConfig  `yaml:"display"`   // Text output settings.
}

// RenderConfig holds settings related to sample selection for drawing.
type RenderConfig struct {
	Mode               string `yaml:"mode"`                 // "minmax", "line" or "points".
	Density            int    `yaml:"density"`              // Density level for line/points, 1..100.
	Color              string `yaml:"color"`                // Trace color, opaque to the core.
	MaxAnalysisSamples int    `yaml:"max_analysis_samples"` // Stride cap for minmax analysis windows (0 disables).
}

// SpectralConfig holds settings related to FFT analysis.
type SpectralConfig struct {
	Window string `yaml:"window"` // Window function name (e.g., "hann", "hamming").
	Peaks  int    `yaml:"peaks"`  // Number of peaks to report.
}

// MeasureConfig holds settings related to automatic measurements.
type MeasureConfig struct {
	Hysteresis float64 `yaml:"hysteresis"` // Crossing threshold distance from the mean, fraction of Vpp.
}

// ViewportConfig is the drawing area in pixels.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SignalConfig describes the synthesized input signal.
type SignalConfig struct {
	SampleRate float64           `yaml:"sample_rate"` // Hz.
	Duration   float64           `yaml:"duration"`    // Seconds.
	StartTime  float64           `yaml:"start_time"`  // Seconds.
	Seed       uint64            `yaml:"seed"`        // Seed for noise and spikes.
	Components []synth.Component `yaml:"components"`  // Summed waveform components.
}

// DisplayConfig holds settings related to text output.
type DisplayConfig struct {
	Locale string `yaml:"locale"` // BCP 47 tag for digit grouping (e.g., "pl", "en-US").
}

// LoadConfig loads configuration from a YAML file specified by path. If path is empty,
// it searches default locations ("scope.yaml"). If no file is found, it uses built-in
// defaults. After loading defaults or from file, it applies environment variable
// overrides and validates the final configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		candidates := []string{DefaultConfigFile}
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	log.Debugf("Config: Loaded %s", path)

	// Apply environment variable overrides AFTER loading from file.
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("log_level '%s' is not a known level", c.LogLevel))
	}

	// Render
	if _, err := render.ParseMode(c.Render.Mode); err != nil {
		errs = append(errs, fmt.Errorf("render.mode: %w", err))
	}
	if c.Render.Density < MinDensity || c.Render.Density > MaxDensity {
		errs = append(errs, fmt.Errorf("render.density %d outside [%d, %d]", c.Render.Density, MinDensity, MaxDensity))
	}
	if c.Render.MaxAnalysisSamples < 0 {
		errs = append(errs, fmt.Errorf("render.max_analysis_samples must not be negative"))
	}

	// Spectral
	if _, err := spectral.ParseWindowFunc(c.Spectral.Window); err != nil {
		errs = append(errs, fmt.Errorf("spectral.window: %w", err))
	}
	if c.Spectral.Peaks < 0 {
		errs = append(errs, fmt.Errorf("spectral.peaks must not be negative"))
	}

	// Measure
	if !(c.Measure.Hysteresis > 0) || c.Measure.Hysteresis >= MaxHysteresis {
		errs = append(errs, fmt.Errorf("measure.hysteresis %g outside (0, %g)", c.Measure.Hysteresis, MaxHysteresis))
	}

	// Viewport
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport %dx%d must be positive", c.Viewport.Width, c.Viewport.Height))
	}

	// Signal
	if !(c.Signal.SampleRate > 0) || !(c.Signal.Duration > 0) {
		errs = append(errs, fmt.Errorf("signal.sample_rate and signal.duration must be positive"))
	} else if n := c.Signal.SampleRate * c.Signal.Duration; n > MaxSamples {
		errs = append(errs, fmt.Errorf("signal would have %.0f samples, limit is %d", n, MaxSamples))
	}
	for i, comp := range c.Signal.Components {
		if err := comp.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("signal.components[%d]: %w", i, err))
		}
	}

	// Display
	if _, err := language.Parse(c.Display.Locale); err != nil {
		errs = append(errs, fmt.Errorf("display.locale: %w", err))
	}

	return errors.Join(errs...)
}

// applyEnvOverrides applies the ENV_* variables on top of the file and
// default values. Unparseable values are ignored.
func (cfg *Config) applyEnvOverrides() {
	// ENV_{...}
	// These are general overrides.

	// ENV_DEBUG
	if val, ok := os.LookupEnv("ENV_DEBUG"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			cfg.Debug = bVal
			log.Infof("Config: Overriding debug from env: %v", bVal)
		}
	}
	// ENV_LOG_LEVEL
	if val, ok := os.LookupEnv("ENV_LOG_LEVEL"); ok {
		cfg.LogLevel = val
		log.Infof("Config: Overriding log_level from env: %s", val)
	}

	// ENV_RENDER_{...}
	// These are specific to trace drawing.

	// ENV_RENDER_MODE
	if val, ok := os.LookupEnv("ENV_RENDER_MODE"); ok {
		cfg.Render.Mode = val
		log.Infof("Config: Overriding render.mode from env: %s", val)
	}
	// ENV_RENDER_DENSITY
	if val, ok := os.LookupEnv("ENV_RENDER_DENSITY"); ok {
		if iVal, err := strconv.Atoi(val); err == nil {
			cfg.Render.Density = iVal
			log.Infof("Config: Overriding render.density from env: %d", iVal)
		}
	}

	// ENV_SPECTRAL_{...}
	// These are specific to FFT mode.

	// ENV_SPECTRAL_WINDOW
	if val, ok := os.LookupEnv("ENV_SPECTRAL_WINDOW"); ok {
		cfg.Spectral.Window = val
		log.Infof("Config: Overriding spectral.window from env: %s", val)
	}
	// ENV_SPECTRAL_PEAKS
	if val, ok := os.LookupEnv("ENV_SPECTRAL_PEAKS"); ok {
		if iVal, err := strconv.Atoi(val); err == nil {
			cfg.Spectral.Peaks = iVal
			log.Infof("Config: Overriding spectral.peaks from env: %d", iVal)
		}
	}
}
