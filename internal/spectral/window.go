// SPDX-License-Identifier: MIT
package spectral

import (
	"fmt"
	"strings"

	"scope/internal/log"

	"gonum.org/v1/gonum/dsp/window"
)

// WindowFunc selects the taper applied before the transform.
type WindowFunc int

// Available window functions. Hann is the default.
const (
	BartlettHann WindowFunc = iota
	Blackman
	BlackmanNuttall
	Hann
	Hamming
	Lanczos
	Nuttall
	Rectangular
)

var windowNames = map[WindowFunc]string{
	BartlettHann:    "bartletthann",
	Blackman:        "blackman",
	BlackmanNuttall: "blackmannuttall",
	Hann:            "hann",
	Hamming:         "hamming",
	Lanczos:         "lanczos",
	Nuttall:         "nuttall",
	Rectangular:     "rectangular",
}

func (w WindowFunc) String() string {
	if name, ok := windowNames[w]; ok {
		return name
	}
	return fmt.Sprintf("WindowFunc(%d)", int(w))
}

// ParseWindowFunc converts a string name (case-insensitive) to a WindowFunc
// enum, returns a known default (Hann) and an error if the name is unknown.
func ParseWindowFunc(name string) (WindowFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bartletthann":
		return BartlettHann, nil
	case "blackman":
		return Blackman, nil
	case "blackmannuttall":
		return BlackmanNuttall, nil
	case "hann", "hanning":
		return Hann, nil
	case "hamming":
		return Hamming, nil
	case "lanczos":
		return Lanczos, nil
	case "nuttall":
		return Nuttall, nil
	case "rectangular", "rect", "none":
		return Rectangular, nil
	default:
		return Hann, fmt.Errorf("unknown FFT window function name: '%s'", name)
	}
}

// applyWindow multiplies samples in place by the selected window. Unknown
// types fall back to Hann.
func applyWindow(samples []float64, windowType WindowFunc) {
	switch windowType {
	case BartlettHann:
		window.BartlettHann(samples)
	case Blackman:
		window.Blackman(samples)
	case BlackmanNuttall:
		window.BlackmanNuttall(samples)
	case Hann:
		window.Hann(samples)
	case Hamming:
		window.Hamming(samples)
	case Lanczos:
		window.Lanczos(samples)
	case Nuttall:
		window.Nuttall(samples)
	case Rectangular:
	default:
		log.Warnf("Spectral: Unknown window function type %d, defaulting to Hann", windowType)
		window.Hann(samples)
	}
}
