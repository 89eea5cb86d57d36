// SPDX-License-Identifier: MIT
package config

import "scope/internal/synth"

// Core configuration constants that define the boundaries and defaults
// for the scope.
const (
	// Default values for the scope configuration
	DefaultDebug              = false     // Quiet operation
	DefaultLogLevel           = "info"    // Informational logging
	DefaultRenderMode         = "minmax"  // Lossless aggregation
	DefaultRenderDensity      = 50        // Middle of the density slider
	DefaultRenderColor        = "#33ff99" // Trace color, passed through
	DefaultMaxAnalysisSamples = 0         // Analyse the raw visible range
	DefaultSpectralWindow     = "hann"    // Hann taper before the FFT
	DefaultSpectralPeaks      = 5         // Peaks reported in FFT mode
	DefaultHysteresis         = 0.2       // Threshold distance as a fraction of Vpp
	DefaultViewportWidth      = 800       // Pixels
	DefaultViewportHeight     = 400       // Pixels
	DefaultSampleRate         = 1e6       // 1 MHz
	DefaultDuration           = 10e-3     // 10 ms
	DefaultStartTime          = 0.0       // Seconds
	DefaultSeed               = 1         // Noise and spikes seed
	DefaultLocale             = "pl"      // Digit grouping of the density indicator

	// Limits
	MinDensity    = 1
	MaxDensity    = 100
	MaxHysteresis = 0.5        // Thresholds must stay inside the signal range
	MaxSamples    = 50_000_000 // Largest synthesized signal
)

// DefaultConfigFile is looked up in the working directory when no path is
// given.
const DefaultConfigFile = "scope.yaml"

// DefaultComponents is the signal synthesized when the config names none.
func DefaultComponents() []synth.Component {
	return []synth.Component{{Wave: synth.Sine, Frequency: 1000, Amplitude: 1}}
}

// NewConfig creates a new Config instance with default values.
// This is the base configuration before a config file, environment
// variables or command line flags are applied.
func NewConfig() *Config {
	return &Config{
		Debug:    DefaultDebug,
		LogLevel: DefaultLogLevel,
		Render: RenderConfig{
			Mode:               DefaultRenderMode,
			Density:            DefaultRenderDensity,
			Color:              DefaultRenderColor,
			MaxAnalysisSamples: DefaultMaxAnalysisSamples,
		},
		Spectral: SpectralConfig{
			Window: DefaultSpectralWindow,
			Peaks:  DefaultSpectralPeaks,
		},
		Measure: MeasureConfig{
			Hysteresis: DefaultHysteresis,
		},
		Viewport: ViewportConfig{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		},
		Signal: SignalConfig{
			SampleRate: DefaultSampleRate,
			Duration:   DefaultDuration,
			StartTime:  DefaultStartTime,
			Seed:       DefaultSeed,
			Components: DefaultComponents(),
		},
		Display: DisplayConfig{
			Locale: DefaultLocale,
		},
	}
}
