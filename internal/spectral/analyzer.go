// SPDX-License-Identifier: MIT
/*
Package spectral turns a block of time-domain samples into a one-sided
log-magnitude spectrum and extracts its strongest peaks.

The block is tapered (Hann by default), zero-padded to the next power of two
and transformed with the in-package radix-2 FFT. Bin k of the result holds
20·log10(|X[k]|/N) for k in [0, N/2); exact zeros stay -Inf in the output but
are left out of MinDB and MaxDB.

All frequency math uses the increment the block was sampled at, which after
stride decimation differs from the capture's increment.
*/
package spectral

import (
	"fmt"
	"math"

	"scope/internal/log"
	"scope/internal/signal"
	"scope/pkg/bitint"
)

// Defaults used when nothing else is configured.
const (
	DefaultPeaks = 5

	// Reported range when no bin has a finite magnitude.
	FallbackMinDB = -100.0
	FallbackMaxDB = 0.0
)

// fftWorkspace holds buffers reused across Compute calls.
type fftWorkspace struct {
	re []float64
	im []float64
}

func (w *fftWorkspace) resize(n int) {
	if cap(w.re) < n {
		w.re = make([]float64, n)
		w.im = make([]float64, n)
	}
	w.re = w.re[:n]
	w.im = w.im[:n]
}

// Analyzer computes spectra with a fixed window function and peak count.
// It is not safe for concurrent use.
type Analyzer struct {
	Window   WindowFunc
	MaxPeaks int

	workspace fftWorkspace
}

// NewAnalyzer returns an Analyzer. A non-positive maxPeaks disables peak
// reporting.
func NewAnalyzer(windowType WindowFunc, maxPeaks int) *Analyzer {
	log.Debugf("Spectral: Initializing analyzer (Window: %s, Peaks: %d)", windowType, maxPeaks)
	return &Analyzer{Window: windowType, MaxPeaks: maxPeaks}
}

// Compute returns the spectrum of samples taken every increment seconds. The
// samples slice is not modified. Fewer than two samples yield
// signal.ErrInsufficientData and no spectrum.
func (a *Analyzer) Compute(samples []float64, increment float64) (*signal.Spectrum, error) {
	n := len(samples)
	if n < 2 {
		return nil, fmt.Errorf("spectrum needs at least 2 samples, got %d: %w", n, signal.ErrInsufficientData)
	}
	if !(increment > 0) || math.IsInf(increment, 0) {
		log.Debugf("Spectral: increment %g replaced by %g", increment, signal.MinIncrement)
		increment = signal.MinIncrement
	}

	size := bitint.NextPowerOfTwo(n)
	ws := &a.workspace
	ws.resize(size)

	copy(ws.re, samples)
	applyWindow(ws.re[:n], a.Window)
	clear(ws.re[n:])
	clear(ws.im)

	if err := FFT(ws.re, ws.im); err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	bins := size / 2
	sp := &signal.Spectrum{
		Magnitudes:         make([]float64, bins),
		Size:               size,
		WindowLength:       n,
		EffectiveIncrement: increment,
		Nyquist:            1 / (2 * increment),
		MinDB:              math.Inf(1),
		MaxDB:              math.Inf(-1),
	}

	norm := 1 / float64(size)
	for k := range bins {
		db := 20 * math.Log10(math.Hypot(ws.re[k], ws.im[k])*norm)
		sp.Magnitudes[k] = db
		if math.IsInf(db, 0) || math.IsNaN(db) {
			continue
		}
		sp.MinDB = math.Min(sp.MinDB, db)
		sp.MaxDB = math.Max(sp.MaxDB, db)
	}
	if math.IsInf(sp.MinDB, 1) {
		sp.MinDB, sp.MaxDB = FallbackMinDB, FallbackMaxDB
	}

	return sp, nil
}

// Peaks returns the analyzer's top peaks of sp.
func (a *Analyzer) Peaks(sp *signal.Spectrum) []Peak {
	return FindPeaks(sp, a.MaxPeaks)
}
