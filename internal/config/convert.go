// SPDX-License-Identifier: MIT
package config

import (
	"scope/internal/log"
	"scope/internal/render"
	"scope/internal/scope"
	"scope/internal/spectral"
	"scope/internal/synth"
	"scope/internal/view"
)

// Level returns the configured log level, DEBUG when Debug is set.
func (c *Config) Level() log.LogLevel {
	if c.Debug {
		return log.LevelDebug
	}
	level, _ := log.ParseLevel(c.LogLevel)
	return level
}

// RenderOptions converts the render section. Call Validate first; invalid
// values fall back to defaults.
func (c *Config) RenderOptions() render.Options {
	mode, _ := render.ParseMode(c.Render.Mode)
	return render.Options{Mode: mode, Level: c.Render.Density, Color: c.Render.Color}
}

// ScopeOptions converts the config into controller options.
func (c *Config) ScopeOptions() scope.Options {
	window, _ := spectral.ParseWindowFunc(c.Spectral.Window)
	return scope.Options{
		Render:             c.RenderOptions(),
		Window:             window,
		Peaks:              c.Spectral.Peaks,
		Hysteresis:         c.Measure.Hysteresis,
		MaxAnalysisSamples: c.Render.MaxAnalysisSamples,
	}
}

// SynthParams returns the sampling grid of the synthesized signal.
func (c *Config) SynthParams() synth.Params {
	return synth.Params{
		SampleRate: c.Signal.SampleRate,
		Duration:   c.Signal.Duration,
		StartTime:  c.Signal.StartTime,
	}
}

// ViewportSize returns the configured viewport.
func (c *Config) ViewportSize() view.Viewport {
	return view.Viewport{Width: float64(c.Viewport.Width), Height: float64(c.Viewport.Height)}
}
