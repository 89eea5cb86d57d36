// SPDX-License-Identifier: MIT
package render

import (
	"fmt"
	"strings"
)

// Mode selects how samples are reduced for drawing.
type Mode string

const (
	// MinMax draws one vertical segment per pixel column. Lossless.
	MinMax Mode = "minmax"
	// Line draws a stride-decimated polyline.
	Line Mode = "line"
	// Points draws stride-decimated markers.
	Points Mode = "points"
)

// Density levels.
const (
	MinLevel     = 1
	MaxLevel     = 100
	DefaultLevel = 50
)

// Modes lists the modes in the order a viewer cycles through them.
var Modes = []Mode{MinMax, Line, Points}

// ParseMode converts a mode name (case-insensitive). Unknown names return
// MinMax and an error.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case MinMax, "min-max":
		return MinMax, nil
	case Line:
		return Line, nil
	case Points, "point":
		return Points, nil
	default:
		return MinMax, fmt.Errorf("unknown render mode: '%s'", name)
	}
}

// Next returns the mode after m in Modes.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return MinMax
}

// Options are the caller's render settings. Color is passed through
// untouched.
type Options struct {
	Mode  Mode
	Level int
	Color string
}

// DefaultOptions returns minmax at the default density.
func DefaultOptions() Options {
	return Options{Mode: MinMax, Level: DefaultLevel}
}

// ClampedLevel returns Level limited to [MinLevel, MaxLevel].
func (o Options) ClampedLevel() int {
	return min(max(o.Level, MinLevel), MaxLevel)
}
