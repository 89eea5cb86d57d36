// SPDX-License-Identifier: MIT
package measure

import (
	"math"

	"scope/internal/view"
)

// Cursors are two vertical time cursors (T1, T2) and two horizontal value
// cursors (V1, V2), each a fraction of the viewport width or height.
type Cursors struct {
	T1, T2 float64
	V1, V2 float64
}

// DefaultCursors places the cursors at a quarter and three quarters of the
// viewport. V1 is the lower value cursor, so V2 reads above it.
func DefaultCursors() Cursors {
	return Cursors{T1: 0.25, T2: 0.75, V1: 0.75, V2: 0.25}
}

// CursorReading is what the cursors measure under the current view.
type CursorReading struct {
	T1, T2 float64
	V1, V2 float64
	DeltaT float64
	DeltaV float64
}

// Frequency returns 1/DeltaT, or false when the time cursors coincide.
func (r CursorReading) Frequency() (float64, bool) {
	if r.DeltaT <= 0 {
		return 0, false
	}
	return 1 / r.DeltaT, true
}

// ReadCursors converts cursor positions to domain values through st.
func ReadCursors(st *view.State, vp view.Viewport, c Cursors) CursorReading {
	r := CursorReading{
		T1: st.InvX(c.T1 * vp.Width),
		T2: st.InvX(c.T2 * vp.Width),
		V1: st.InvY(c.V1 * vp.Height),
		V2: st.InvY(c.V2 * vp.Height),
	}
	r.DeltaT = math.Abs(r.T1 - r.T2)
	r.DeltaV = math.Abs(r.V1 - r.V2)
	return r
}
