// SPDX-License-Identifier: MIT
// Package units formats measured values for display.
package units

import (
	"fmt"
	"math"

	"scope/internal/render"
	"scope/internal/signal"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoValue is shown for a value that could not be measured.
const NoValue = "---"

// DefaultLocale groups digits the way the density indicator always has.
const DefaultLocale = "pl"

var prefixes = []struct {
	limit  float64
	scale  float64
	prefix string
}{
	{1e9, 1e-9, "G"},
	{1e6, 1e-6, "M"},
	{1e3, 1e-3, "k"},
	{1, 1, ""},
	{1e-3, 1e3, "m"},
	{1e-6, 1e6, "µ"},
	{1e-9, 1e9, "n"},
}

// Format renders value with an SI prefix and two decimals, e.g. "1.50 kHz".
// Values below a nano fall back to exponent notation.
func Format(value float64, unit string) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NoValue
	}
	abs := math.Abs(value)
	for _, p := range prefixes {
		if abs >= p.limit {
			return fmt.Sprintf("%.2f %s%s", value*p.scale, p.prefix, unit)
		}
	}
	if value == 0 {
		return "0 " + unit
	}
	return fmt.Sprintf("%.2e %s", value, unit)
}

// FormatOptional is Format for values that may be absent.
func FormatOptional(value float64, ok bool, unit string) string {
	if !ok {
		return NoValue
	}
	return Format(value, unit)
}

// NewPrinter returns a printer for a BCP 47 locale such as "pl" or "en-US".
func NewPrinter(locale string) (*message.Printer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return message.NewPrinter(tag), nil
}

// DensityLabel is the information density indicator: "Auto" for minmax,
// "displayed / total" with locale digit grouping otherwise, and "" when
// nothing is drawn.
func DensityLabel(stats *render.Stats, p *message.Printer) string {
	if stats == nil {
		return ""
	}
	if stats.Mode == render.MinMax {
		return "Auto"
	}
	if p == nil {
		p = message.NewPrinter(language.Polish)
	}
	return p.Sprintf("%d / %d", stats.Displayed, stats.Total)
}

// AxisLabel names the axes of a series, e.g. ("Time [s]", "Voltage [V]").
func AxisLabel(d signal.Domain) (x, y string) {
	if d == signal.Frequency {
		return "Frequency [Hz]", "Magnitude [dB]"
	}
	return "Time [s]", "Voltage [V]"
}
