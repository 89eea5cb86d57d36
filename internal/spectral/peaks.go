// SPDX-License-Identifier: MIT
package spectral

import (
	"sort"

	"scope/internal/signal"
)

// Peak is a local maximum of a spectrum.
type Peak struct {
	Index     int
	Frequency float64 // Hz
	Magnitude float64 // dB
}

// FindPeaks returns up to k local maxima of sp, strongest first. A bin is a
// peak when it is strictly above both neighbours, so the first and last bins
// never qualify. Equal magnitudes keep ascending bin order.
func FindPeaks(sp *signal.Spectrum, k int) []Peak {
	if k <= 0 || sp.Bins() < 3 {
		return nil
	}

	mags := sp.Magnitudes
	var peaks []Peak
	for i := 1; i < len(mags)-1; i++ {
		if mags[i] > mags[i-1] && mags[i] > mags[i+1] {
			peaks = append(peaks, Peak{Index: i, Frequency: sp.BinFrequency(i), Magnitude: mags[i]})
		}
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Magnitude > peaks[j].Magnitude
	})
	if len(peaks) > k {
		peaks = peaks[:k]
	}
	return peaks
}
