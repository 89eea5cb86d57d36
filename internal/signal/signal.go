// SPDX-License-Identifier: MIT
/*
Package signal holds the sample data shared by the view, render, spectral and
measurement packages.

A Signal is immutable once built: the core never writes into Samples, and a
new capture replaces the whole value. Min and Max are cached at construction
so the view can fit the vertical axis without scanning the buffer.
*/
package signal

import (
	"errors"
	"fmt"
	"math"
)

// MinIncrement replaces a zero or negative sample increment so the time axis
// never divides by zero.
const MinIncrement = 1e-12

var (
	// ErrInsufficientData is returned when an operation gets fewer samples than
	// it needs. It means "no result", never a fatal condition.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateRange describes a zero-width value or time range. The core
	// corrects these ranges itself; the error is only reported by Check.
	ErrDegenerateRange = errors.New("degenerate range")
)

// Domain tells whether a series is indexed by time or by frequency.
type Domain int

const (
	Time Domain = iota
	Frequency
)

func (d Domain) String() string {
	if d == Frequency {
		return "frequency"
	}
	return "time"
}

// Signal is an evenly sampled series.
type Signal struct {
	Samples   []float32
	StartTime float64 // Domain value of sample 0 (seconds, or Hz for spectra)
	Increment float64 // Domain step between samples, always > 0
	Min       float32
	Max       float32
	Domain    Domain
}

// New builds a time-domain Signal and caches its extremes. The samples slice
// is retained, not copied.
func New(samples []float32, startTime, increment float64) *Signal {
	s := &Signal{
		Samples:   samples,
		StartTime: startTime,
		Increment: sanitizeIncrement(increment),
		Domain:    Time,
	}
	s.Min, s.Max = bounds(samples)
	return s
}

// Len returns the number of samples.
func (s *Signal) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Samples)
}

// Duration is the span covered by the samples, count × increment.
func (s *Signal) Duration() float64 {
	return float64(s.Len()) * s.Increment
}

// Extent describes the logical domain the view has to fit.
func (s *Signal) Extent() Extent {
	if s == nil {
		return Extent{}
	}
	return Extent{
		Domain: s.Domain,
		Start:  s.StartTime,
		Span:   s.Duration(),
		MinY:   float64(s.Min),
		MaxY:   float64(s.Max),
		Count:  len(s.Samples),
	}
}

// IndexAt converts a domain value to a fractional sample index.
func (s *Signal) IndexAt(v float64) float64 {
	return (v - s.StartTime) / s.Increment
}

// ValueAt converts a sample index to its domain value.
func (s *Signal) ValueAt(i int) float64 {
	return s.StartTime + float64(i)*s.Increment
}

// Check reports the ranges the core will have to correct. A nil error means
// the signal is usable as is.
func (s *Signal) Check() error {
	if s.Len() < 2 {
		return fmt.Errorf("signal has %d samples: %w", s.Len(), ErrInsufficientData)
	}
	if s.Min == s.Max {
		return fmt.Errorf("flat signal at %g: %w", s.Min, ErrDegenerateRange)
	}
	return nil
}

// Extent is the part of a series the view transform needs: where the domain
// starts, how wide it is, and the value range.
type Extent struct {
	Domain Domain
	Start  float64
	Span   float64
	MinY   float64
	MaxY   float64
	Count  int
}

// Usable reports whether transform operations can act on the extent.
func (e Extent) Usable() bool {
	return e.Count >= 2
}

// SafeSpan returns Span, or a span of one MinIncrement per sample when the
// span collapsed to zero.
func (e Extent) SafeSpan() float64 {
	if e.Span > 0 && !math.IsInf(e.Span, 0) {
		return e.Span
	}
	return float64(max(e.Count, 1)) * MinIncrement
}

func sanitizeIncrement(inc float64) float64 {
	if inc > 0 && !math.IsInf(inc, 0) && !math.IsNaN(inc) {
		return inc
	}
	return MinIncrement
}

func bounds(samples []float32) (lo, hi float32) {
	if len(samples) == 0 {
		return 0, 0
	}
	lo, hi = samples[0], samples[0]
	for _, v := range samples[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
