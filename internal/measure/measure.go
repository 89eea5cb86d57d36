// SPDX-License-Identifier: MIT
/*
Package measure computes the automatic oscilloscope measurements over an
analysis window: extremes, mean, RMS, peak-to-peak, and the period found by a
hysteresis threshold crossing detector.
*/
package measure

import (
	"fmt"
	"math"

	"scope/internal/signal"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultHysteresis is the threshold distance from the mean as a fraction of
// Vpp.
const DefaultHysteresis = 0.2

// Result holds the measurements of one window. Period and Frequency are only
// meaningful when Periodic is true.
type Result struct {
	Vpp  float64
	Vmax float64
	Vmin float64
	Vavg float64
	Vrms float64

	Period    float64 // seconds
	Frequency float64 // Hz
	Periodic  bool
	Cycles    int // number of periods averaged
}

// Analyze measures samples taken every increment seconds. It needs at least
// two samples.
func Analyze(samples []float64, increment, hysteresis float64) (Result, error) {
	if len(samples) < 2 {
		return Result{}, fmt.Errorf("measurement needs at least 2 samples, got %d: %w", len(samples), signal.ErrInsufficientData)
	}

	r := Result{
		Vmin: floats.Min(samples),
		Vmax: floats.Max(samples),
		Vavg: stat.Mean(samples, nil),
		Vrms: math.Sqrt(floats.Dot(samples, samples) / float64(len(samples))),
	}
	r.Vpp = r.Vmax - r.Vmin

	high := r.Vavg + hysteresis*r.Vpp
	low := r.Vavg - hysteresis*r.Vpp
	sum, count := crossingPeriods(samples, high, low)
	if count > 0 {
		r.Period = sum / float64(count) * increment
		r.Frequency = 1 / r.Period
		r.Periodic = true
		r.Cycles = count
	}
	return r, nil
}

// crossingPeriods scans for rising crossings of high, re-armed only after the
// signal falls through low. It returns the summed distance in samples
// between consecutive rising crossings and how many distances there were.
func crossingPeriods(samples []float64, high, low float64) (sum float64, count int) {
	seekingRise := true
	lastRise := -1

	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		switch {
		case seekingRise && prev < high && cur >= high:
			if lastRise >= 0 {
				sum += float64(i - lastRise)
				count++
			}
			lastRise = i
			seekingRise = false
		case !seekingRise && prev > low && cur <= low:
			seekingRise = true
		}
	}
	return sum, count
}
