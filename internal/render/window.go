// SPDX-License-Identifier: MIT
package render

import (
	"fmt"

	"scope/internal/log"
	"scope/internal/signal"
	"scope/internal/view"
)

// AnalysisWindow is the sample block measurement and spectral analysis run
// on, with the increment it effectively has after striding.
type AnalysisWindow struct {
	Samples   []float64
	Increment float64
	Step      int
}

// SampleRate is 1/Increment.
func (w AnalysisWindow) SampleRate() float64 {
	return 1 / w.Increment
}

// Window extracts the analysis block for the current view using the same
// reduction as drawing. MinMax yields the raw visible range, strided only when
// MaxAnalysisSamples is set and exceeded. Line and Points yield the drawing
// stride, so a low density level lowers the effective sample rate and moves
// the Nyquist frequency of any spectrum computed from the block.
//
// The returned samples are a fresh copy the caller may modify.
func (s *Selector) Window(st *view.State, vp view.Viewport, sig *signal.Signal, opts Options) (AnalysisWindow, error) {
	start, end := VisibleRange(st, vp, sig)
	visible := end - start
	if visible < 2 {
		return AnalysisWindow{}, fmt.Errorf("analysis window has %d samples: %w", max(visible, 0), signal.ErrInsufficientData)
	}

	step := 1
	switch opts.Mode {
	case Line, Points:
		step = Step(visible, vp.Width, opts.ClampedLevel())
	default:
		if s.MaxAnalysisSamples > 0 && visible > s.MaxAnalysisSamples {
			step = visible / s.MaxAnalysisSamples
		}
	}

	out := make([]float64, 0, (visible+step-1)/step)
	for i := start; i < end; i += step {
		out = append(out, float64(sig.Samples[i]))
	}
	if len(out) < 2 {
		return AnalysisWindow{}, fmt.Errorf("analysis window has %d samples after stride %d: %w", len(out), step, signal.ErrInsufficientData)
	}

	log.Debugf("Render: analysis window [%d, %d) mode %s step %d", start, end, opts.Mode, step)
	return AnalysisWindow{Samples: out, Increment: sig.Increment * float64(step), Step: step}, nil
}
