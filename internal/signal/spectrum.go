// SPDX-License-Identifier: MIT
package signal

import "math"

// Spectrum is a one-sided log-magnitude spectrum.
type Spectrum struct {
	Magnitudes         []float64 // dB per bin, len = Size/2; may hold -Inf
	Size               int       // FFT length N after zero padding
	WindowLength       int       // Samples taken from the view before padding
	EffectiveIncrement float64   // Seconds per sample of the analysed window
	Nyquist            float64   // Hz
	MinDB              float64   // Smallest finite magnitude
	MaxDB              float64   // Largest finite magnitude
}

// Bins returns the number of magnitude bins.
func (s *Spectrum) Bins() int {
	if s == nil {
		return 0
	}
	return len(s.Magnitudes)
}

// Resolution is the width of one bin in Hz.
func (s *Spectrum) Resolution() float64 {
	if s.Bins() == 0 {
		return 0
	}
	return s.Nyquist / float64(len(s.Magnitudes))
}

// BinFrequency returns the frequency of bin i in Hz.
func (s *Spectrum) BinFrequency(i int) float64 {
	return float64(i) * s.Resolution()
}

// Series exposes the spectrum as a frequency-domain Signal so the same view
// transform and selector can draw it. The dB values are narrowed to float32;
// -Inf bins stay -Inf.
func (s *Spectrum) Series() *Signal {
	samples := make([]float32, len(s.Magnitudes))
	for i, db := range s.Magnitudes {
		samples[i] = float32(db)
	}
	inc := MinIncrement
	if len(samples) > 0 && s.Nyquist > 0 {
		inc = s.Nyquist / float64(len(samples))
	}
	return &Signal{
		Samples:   samples,
		StartTime: 0,
		Increment: inc,
		Min:       float32(s.MinDB),
		Max:       float32(s.MaxDB),
		Domain:    Frequency,
	}
}

// IsFinite reports whether bin i holds a plottable value.
func (s *Spectrum) IsFinite(i int) bool {
	v := s.Magnitudes[i]
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
