// SPDX-License-Identifier: MIT
package cmd

import (
	"errors"
	"fmt"
	"io"

	"scope/internal/config"
	"scope/internal/log"
	"scope/internal/measure"
	"scope/internal/scope"
	"scope/internal/signal"
	"scope/internal/synth"
	"scope/internal/units"
	"scope/internal/view"
)

// NewScope synthesizes the configured signal and loads it into a Scope sized
// to the configured viewport.
func NewScope(cfg *config.Config) (*scope.Scope, error) {
	sig, err := synth.Generate(cfg.SynthParams(), cfg.Signal.Components, synth.NewRand(cfg.Signal.Seed))
	if err != nil {
		return nil, fmt.Errorf("failed to generate signal: %w", err)
	}

	sc := scope.New(cfg.ScopeOptions())
	if err := sc.Resize(cfg.ViewportSize()); err != nil {
		return nil, err
	}
	if err := sc.Load(sig); err != nil {
		return nil, err
	}
	return sc, nil
}

// RunAnalyze renders the configured signal headlessly and writes a report of
// the frame, the measurements and, with --fft, the spectrum.
func RunAnalyze(w io.Writer, inv *Invocation) error {
	cfg := inv.Config
	printer, err := units.NewPrinter(cfg.Display.Locale)
	if err != nil {
		return err
	}

	sc, err := NewScope(cfg)
	if err != nil {
		return err
	}

	sig := sc.Signal()
	fmt.Fprintf(w, "Signal:     %s samples, %s, %s\n",
		printer.Sprintf("%d", sig.Len()),
		units.Format(1/sig.Increment, "Sa/s"),
		units.Format(sig.Duration(), "s"))

	// Too few samples leave the view unset; every section then reports no value.
	vp := sc.Viewport()
	if sig.Extent().Usable() {
		for i := 0; i < inv.Zoom; i++ {
			if err := sc.Zoom(vp.Width/2, view.In, view.X); err != nil {
				return fmt.Errorf("zoom step %d: %w", i+1, err)
			}
		}
		if inv.Pan != 0 {
			if err := sc.Pan(-inv.Pan, 0); err != nil {
				return fmt.Errorf("pan: %w", err)
			}
		}
		st := sc.View()
		fmt.Fprintf(w, "View:       %s .. %s\n",
			units.Format(st.InvX(0), "s"), units.Format(st.InvX(vp.Width), "s"))
	} else {
		fmt.Fprintf(w, "View:       %s\n", units.NoValue)
	}

	frame := sc.Render()
	if frame.Empty() {
		fmt.Fprintf(w, "Render:     %s\n", units.NoValue)
	} else {
		fmt.Fprintf(w, "Render:     %s, density %s\n", frame.Mode, units.DensityLabel(frame.Stats, printer))
	}

	win, err := sc.AnalysisWindow()
	if err == nil {
		fmt.Fprintf(w, "Window:     %s samples, stride %d, %s\n",
			printer.Sprintf("%d", len(win.Samples)), win.Step, units.Format(win.SampleRate(), "Sa/s"))
	} else {
		fmt.Fprintf(w, "Window:     %s\n", units.NoValue)
	}

	res, err := sc.Measure()
	switch {
	case errors.Is(err, signal.ErrInsufficientData):
		fmt.Fprintf(w, "Measure:    %s\n", units.NoValue)
	case err != nil:
		return err
	default:
		writeMeasurements(w, res)
	}

	if !inv.FFT {
		return nil
	}

	if err := sc.ToggleFFT(); err != nil {
		log.Warnf("Analyze: spectrum unavailable: %v", err)
		fmt.Fprintf(w, "Spectrum:   %s\n", units.NoValue)
		return nil
	}
	sp := sc.Spectrum()
	fmt.Fprintf(w, "Spectrum:   N=%d from %d samples, resolution %s, Nyquist %s\n",
		sp.Size, sp.WindowLength, units.Format(sp.Resolution(), "Hz"), units.Format(sp.Nyquist, "Hz"))
	fmt.Fprintf(w, "            %.1f dB .. %.1f dB\n", sp.MinDB, sp.MaxDB)
	for i, p := range sc.Peaks() {
		fmt.Fprintf(w, "Peak %d:     %s at %.1f dB\n", i+1, units.Format(p.Frequency, "Hz"), p.Magnitude)
	}
	return nil
}

func writeMeasurements(w io.Writer, res measure.Result) {
	fmt.Fprintf(w, "Vpp:        %s\n", units.Format(res.Vpp, "V"))
	fmt.Fprintf(w, "Vmax:       %s\n", units.Format(res.Vmax, "V"))
	fmt.Fprintf(w, "Vmin:       %s\n", units.Format(res.Vmin, "V"))
	fmt.Fprintf(w, "Vavg:       %s\n", units.Format(res.Vavg, "V"))
	fmt.Fprintf(w, "Vrms:       %s\n", units.Format(res.Vrms, "V"))
	fmt.Fprintf(w, "Period:     %s\n", units.FormatOptional(res.Period, res.Periodic, "s"))
	fmt.Fprintf(w, "Frequency:  %s\n", units.FormatOptional(res.Frequency, res.Periodic, "Hz"))
}
