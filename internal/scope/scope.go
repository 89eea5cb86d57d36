// SPDX-License-Identifier: MIT
/*
Package scope is the oscilloscope controller. It owns the loaded Signal, the
view state and the viewport, and switches between the time view and the
spectrum view.

Every analysis reads the block render.Selector.Window extracts for the time
view, so the spectrum, the automatic measurements and the drawn trace always
describe the same samples.

A Scope is driven from a single goroutine and is not safe for concurrent use.
*/
package scope

import (
	"errors"
	"fmt"

	"scope/internal/log"
	"scope/internal/measure"
	"scope/internal/render"
	"scope/internal/signal"
	"scope/internal/spectral"
	"scope/internal/view"

	"go.uber.org/zap"
)

// ErrFrequencyDomain is returned for time-domain tools while the spectrum is
// shown.
var ErrFrequencyDomain = errors.New("not available in frequency domain")

// Options configure a Scope.
type Options struct {
	Render             render.Options
	Window             spectral.WindowFunc
	Peaks              int
	Hysteresis         float64
	MaxAnalysisSamples int
}

// DefaultOptions mirrors the config defaults.
func DefaultOptions() Options {
	return Options{
		Render:     render.DefaultOptions(),
		Window:     spectral.Hann,
		Peaks:      spectral.DefaultPeaks,
		Hysteresis: measure.DefaultHysteresis,
	}
}

// Scope ties the view transform, render selector, spectral analyzer and
// measurement engine to one signal.
type Scope struct {
	opts Options

	sig      *signal.Signal
	fft      bool
	spectrum *signal.Spectrum
	series   *signal.Signal
	peaks    []spectral.Peak

	state view.State
	vp    view.Viewport

	selector *render.Selector
	analyzer *spectral.Analyzer
	logger   *zap.SugaredLogger
}

// New returns an empty Scope.
func New(opts Options) *Scope {
	opts.Render.Level = opts.Render.ClampedLevel()
	if opts.Render.Mode == "" {
		opts.Render.Mode = render.MinMax
	}
	return &Scope{
		opts:     opts,
		selector: render.NewSelector(opts.MaxAnalysisSamples),
		analyzer: spectral.NewAnalyzer(opts.Window, opts.Peaks),
		logger:   log.Named("scope"),
	}
}

// Load replaces the signal, leaves spectrum mode and fits the view. A signal
// with fewer than two samples is accepted and shows nothing.
func (s *Scope) Load(sig *signal.Signal) error {
	if sig == nil {
		return fmt.Errorf("load: nil signal: %w", signal.ErrInsufficientData)
	}
	s.sig = sig
	s.fft = false
	s.clearSpectrum()
	s.state = view.State{}

	if err := sig.Check(); err != nil {
		s.logger.Debugw("loaded signal needs correction", "samples", sig.Len(), "reason", err)
	}
	s.logger.Infow("signal loaded", "samples", sig.Len(), "increment", sig.Increment, "start", sig.StartTime)

	if s.vp.Width <= 0 || s.vp.Height <= 0 {
		return nil
	}
	return s.refit()
}

// Signal returns the loaded time-domain signal.
func (s *Scope) Signal() *signal.Signal { return s.sig }

// Resize sets the viewport and refits the view. An invalid viewport is
// rejected and the previous one kept.
func (s *Scope) Resize(vp view.Viewport) error {
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("resize to %gx%g: %w", vp.Width, vp.Height, view.ErrInvalidViewport)
	}
	s.vp = vp
	return s.refit()
}

// refit resets the view after a new signal or viewport. A series too short
// to transform leaves the view unset; Render and the analyses then report no
// data.
func (s *Scope) refit() error {
	err := s.ResetView()
	if errors.Is(err, signal.ErrInsufficientData) {
		s.logger.Debugw("view not fitted", "samples", s.current().Len())
		return nil
	}
	return err
}

// Viewport returns the current viewport.
func (s *Scope) Viewport() view.Viewport { return s.vp }

// View returns a copy of the view state.
func (s *Scope) View() view.State { return s.state }

// RenderOptions returns the time-view render options.
func (s *Scope) RenderOptions() render.Options { return s.opts.Render }

// SetRenderOptions replaces the time-view render options. The spectrum is
// always drawn as a line.
func (s *Scope) SetRenderOptions(o render.Options) {
	o.Level = o.ClampedLevel()
	if o.Mode == "" {
		o.Mode = render.MinMax
	}
	s.opts.Render = o
}

// current is the series on screen.
func (s *Scope) current() *signal.Signal {
	if s.fft {
		return s.series
	}
	return s.sig
}

func (s *Scope) extent() signal.Extent {
	return s.current().Extent()
}

// ResetView fits the current series into the viewport.
func (s *Scope) ResetView() error {
	_, err := s.state.Reset(s.extent(), s.vp)
	return err
}

// Zoom zooms one axis around a pixel.
func (s *Scope) Zoom(pixel float64, dir view.Direction, axis view.Axis) error {
	_, err := s.state.Zoom(s.extent(), s.vp, pixel, dir, axis)
	return err
}

// Pan moves the view by a pixel delta.
func (s *Scope) Pan(dx, dy float64) error {
	_, err := s.state.Pan(s.extent(), s.vp, dx, dy)
	return err
}

// BeginPan starts a drag.
func (s *Scope) BeginPan(x, y float64) { s.state.BeginPan(x, y) }

// DragTo continues a drag.
func (s *Scope) DragTo(x, y float64) error {
	_, err := s.state.DragTo(s.extent(), s.vp, x, y)
	return err
}

// EndPan finishes a drag.
func (s *Scope) EndPan() { s.state.EndPan() }

// Render selects what to draw for the current series. The frame is valid
// until the next call.
func (s *Scope) Render() render.Frame {
	opts := s.opts.Render
	if s.fft {
		opts.Mode = render.Line
	}
	return s.selector.Select(&s.state, s.vp, s.current(), opts)
}

// AnalysisWindow returns the time-view block the analyses run on.
func (s *Scope) AnalysisWindow() (render.AnalysisWindow, error) {
	if s.fft {
		return render.AnalysisWindow{}, ErrFrequencyDomain
	}
	return s.selector.Window(&s.state, s.vp, s.sig, s.opts.Render)
}

// FFTEnabled reports whether the spectrum is shown.
func (s *Scope) FFTEnabled() bool { return s.fft }

// ToggleFFT switches between the time view and the spectrum of what the time
// view currently shows. Either way the new view is reset. When the spectrum
// cannot be computed the scope still enters spectrum mode with no spectrum
// and the error is returned.
func (s *Scope) ToggleFFT() error {
	if s.fft {
		s.fft = false
		s.clearSpectrum()
		return s.refit()
	}

	w, err := s.AnalysisWindow()
	s.fft = true
	if err != nil {
		s.clearSpectrum()
		s.logger.Debugw("spectrum unavailable", "reason", err)
		return fmt.Errorf("spectrum: %w", err)
	}

	sp, err := s.analyzer.Compute(w.Samples, w.Increment)
	if err != nil {
		s.clearSpectrum()
		return fmt.Errorf("spectrum: %w", err)
	}
	s.spectrum = sp
	s.series = sp.Series()
	s.peaks = s.analyzer.Peaks(sp)
	s.logger.Debugw("spectrum computed", "window", w.Step, "size", sp.Size, "nyquist", sp.Nyquist)

	return s.refit()
}

func (s *Scope) clearSpectrum() {
	s.spectrum = nil
	s.series = nil
	s.peaks = nil
}

// Spectrum returns the current spectrum, or nil.
func (s *Scope) Spectrum() *signal.Spectrum { return s.spectrum }

// SetPeakCount changes how many peaks are reported.
func (s *Scope) SetPeakCount(k int) {
	s.analyzer.MaxPeaks = k
	s.opts.Peaks = k
	if s.spectrum != nil {
		s.peaks = s.analyzer.Peaks(s.spectrum)
	}
}

// Peaks returns the strongest peaks of the current spectrum.
func (s *Scope) Peaks() []spectral.Peak { return s.peaks }

// Measure runs the automatic measurements on the time view.
func (s *Scope) Measure() (measure.Result, error) {
	w, err := s.AnalysisWindow()
	if err != nil {
		return measure.Result{}, err
	}
	return measure.Analyze(w.Samples, w.Increment, s.opts.Hysteresis)
}

// ReadCursors reads the cursors against the time view.
func (s *Scope) ReadCursors(c measure.Cursors) (measure.CursorReading, error) {
	if s.fft {
		return measure.CursorReading{}, ErrFrequencyDomain
	}
	if !s.extent().Usable() {
		return measure.CursorReading{}, signal.ErrInsufficientData
	}
	if s.vp.Width <= 0 || s.vp.Height <= 0 {
		return measure.CursorReading{}, view.ErrInvalidViewport
	}
	return measure.ReadCursors(&s.state, s.vp, c), nil
}

// Probe is the domain position under a pixel.
type Probe struct {
	Domain signal.Domain
	X      float64 // seconds or Hz
	Y      float64 // volts or dB
}

// Probe returns the domain values under pixel (px, py), or false when the
// pixel lies outside the viewport or nothing is shown.
func (s *Scope) Probe(px, py float64) (Probe, bool) {
	cur := s.current()
	if cur.Len() == 0 || px < 0 || py < 0 || px > s.vp.Width || py > s.vp.Height {
		return Probe{}, false
	}
	return Probe{Domain: cur.Domain, X: s.state.InvX(px), Y: s.state.InvY(py)}, true
}
