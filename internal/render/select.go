// SPDX-License-Identifier: MIT
/*
Package render decides which samples of a Signal are drawn for the current
view.

Two reduction paths exist and are kept apart. MinMax aggregates every visible
sample into per-column extremes and loses nothing. Line and Points walk the
visible range with an integer stride and drop the samples in between; the
stride is chosen from the density level so the caller controls the cost.
*/
package render

import (
	"math"

	"scope/internal/signal"
	"scope/internal/view"
)

// Column is one minmax pixel column covering samples [Start, End).
type Column struct {
	X          int
	Min, Max   float32
	Start, End int
}

// Point is a transformed sample position.
type Point struct {
	X, Y  float64
	Index int
}

// Stats summarises a frame for the density indicator.
type Stats struct {
	Mode      Mode
	Displayed int
	Total     int
}

// Frame is the output of Select. Columns is set in MinMax mode, Points
// otherwise. Stats is nil when nothing is visible.
type Frame struct {
	Mode    Mode
	Columns []Column
	Points  []Point
	Stats   *Stats
}

// Empty reports whether the frame has nothing to draw.
func (f Frame) Empty() bool { return f.Stats == nil }

// Selector produces frames into buffers it reuses between calls, so a warm
// Selector does not allocate. A Frame is only valid until the next Select.
// A Selector is not safe for concurrent use.
type Selector struct {
	// MaxAnalysisSamples caps the MinMax analysis window by striding.
	// Zero keeps the raw visible range.
	MaxAnalysisSamples int

	columns []Column
	points  []Point
	stats   Stats
}

// NewSelector returns a Selector with the given MinMax analysis cap.
func NewSelector(maxAnalysisSamples int) *Selector {
	return &Selector{MaxAnalysisSamples: max(maxAnalysisSamples, 0)}
}

// Select computes what to draw for sig under st.
func (s *Selector) Select(st *view.State, vp view.Viewport, sig *signal.Signal, opts Options) Frame {
	frame := Frame{Mode: opts.Mode}
	start, end := VisibleRange(st, vp, sig)
	if end <= start || vp.Width <= 0 {
		return frame
	}

	switch opts.Mode {
	case Line, Points:
		s.points = s.points[:0]
		step := Step(end-start, vp.Width, opts.ClampedLevel())
		for i := start; i < end; i += step {
			s.points = append(s.points, Point{
				X:     st.ToX(sig.ValueAt(i)),
				Y:     st.ToY(float64(sig.Samples[i])),
				Index: i,
			})
		}
		frame.Points = s.points
		s.stats = Stats{Mode: opts.Mode, Displayed: len(s.points), Total: end - start}
	default:
		frame.Mode = MinMax
		frame.Columns = s.minMax(st, vp, sig)
		s.stats = Stats{Mode: MinMax, Displayed: end - start, Total: end - start}
	}

	frame.Stats = &s.stats
	return frame
}

// minMax aggregates each pixel column. A column starts where the previous
// one ended unless that would leave it empty, which only happens when there
// is less than one sample per column.
func (s *Selector) minMax(st *view.State, vp view.Viewport, sig *signal.Signal) []Column {
	s.columns = s.columns[:0]
	n := sig.Len()
	cols := int(math.Ceil(vp.Width))
	prevEnd := -1

	for px := range cols {
		lo := clampIndex(math.Floor(sig.IndexAt(st.InvX(float64(px)))), n)
		hi := clampIndex(math.Ceil(sig.IndexAt(st.InvX(float64(px+1)))), n)
		if lo < prevEnd && prevEnd < hi {
			lo = prevEnd
		}
		if lo >= hi {
			continue
		}

		mn, mx := sig.Samples[lo], sig.Samples[lo]
		for _, v := range sig.Samples[lo+1 : hi] {
			if v < mn {
				mn = v
			}
			if v > mx {
				mx = v
			}
		}
		s.columns = append(s.columns, Column{X: px, Min: mn, Max: mx, Start: lo, End: hi})
		prevEnd = hi
	}
	return s.columns
}

// VisibleRange returns the half-open index range of samples inside the
// viewport's horizontal extent.
func VisibleRange(st *view.State, vp view.Viewport, sig *signal.Signal) (start, end int) {
	n := sig.Len()
	if n == 0 || st.ScaleX == 0 || vp.Width <= 0 {
		return 0, 0
	}
	start = clampIndex(math.Floor(sig.IndexAt(st.InvX(0))), n)
	end = clampIndex(math.Ceil(sig.IndexAt(st.InvX(vp.Width))), n)
	if end < start {
		return start, start
	}
	return start, end
}

// Step is the stride for Line and Points. The target density moves linearly
// from 2×width at level 1 to every visible sample at level 100.
func Step(pointsInView int, width float64, level int) int {
	if pointsInView <= 0 {
		return 1
	}
	level = min(max(level, MinLevel), MaxLevel)
	base := 2 * width
	density := base + (float64(pointsInView)-base)*float64(level-1)/float64(MaxLevel-1)
	if density <= 0 {
		return 1
	}
	return max(1, int(math.Floor(float64(pointsInView)/density)))
}

func clampIndex(f float64, n int) int {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= float64(n):
		return n
	default:
		return int(f)
	}
}
