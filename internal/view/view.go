// SPDX-License-Identifier: MIT
/*
Package view implements the affine mapping between domain values (seconds or
Hz on X, volts or dB on Y) and viewport pixels, together with the pan and zoom
operations that mutate it.

Each axis maps as pixel = value*scale + offset. The Y scale is negative so
larger values are drawn higher. Every mutating method clamps the offsets
before it returns, so the caller always observes a constrained State.
*/
package view

import (
	"errors"
	"fmt"
	"math"

	"scope/internal/log"
	"scope/internal/signal"
)

// ZoomStep is the relative scale change of one zoom step.
const ZoomStep = 0.1

// ErrInvalidViewport is returned for a viewport without positive area.
var ErrInvalidViewport = errors.New("invalid viewport")

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

func (v Viewport) valid() bool {
	return v.Width > 0 && v.Height > 0 && !math.IsInf(v.Width, 0) && !math.IsInf(v.Height, 0)
}

// Axis selects the axis a zoom applies to.
type Axis int

const (
	X Axis = iota
	Y
)

func (a Axis) String() string {
	if a == Y {
		return "y"
	}
	return "x"
}

// Direction of a zoom step.
type Direction int

const (
	In Direction = iota
	Out
)

// State is the pan/zoom state of one view.
type State struct {
	ScaleX  float64
	ScaleY  float64
	OffsetX float64
	OffsetY float64

	Panning bool
	LastX   float64
	LastY   float64
}

// ToX maps a domain value to a horizontal pixel.
func (s *State) ToX(v float64) float64 { return v*s.ScaleX + s.OffsetX }

// ToY maps a sample value to a vertical pixel.
func (s *State) ToY(v float64) float64 { return v*s.ScaleY + s.OffsetY }

// InvX maps a horizontal pixel back to a domain value.
func (s *State) InvX(px float64) float64 { return (px - s.OffsetX) / s.ScaleX }

// InvY maps a vertical pixel back to a sample value.
func (s *State) InvY(py float64) float64 { return (py - s.OffsetY) / s.ScaleY }

// Reset fits the whole extent into the viewport.
func (s *State) Reset(ext signal.Extent, vp Viewport) (State, error) {
	if err := check(ext, vp); err != nil {
		return *s, err
	}
	if ext.Span <= 0 {
		log.Debugf("View: zero span over %d samples, using minimum increment", ext.Count)
	}
	if ext.MinY == ext.MaxY {
		log.Debugf("View: flat %s range at %g, widening", ext.Domain, ext.MinY)
	}

	s.ScaleX = FitScaleX(ext, vp)
	s.OffsetX = -xStart(ext) * s.ScaleX

	bottom, top := yBounds(ext)
	s.ScaleY = -vp.Height / (top - bottom)
	s.OffsetY = -top * s.ScaleY
	return *s, nil
}

// Zoom scales one axis by 1 ± ZoomStep around pixel, keeping the value under
// pixel where it is. Zooming out stops at the scale Reset would compute.
func (s *State) Zoom(ext signal.Extent, vp Viewport, pixel float64, dir Direction, axis Axis) (State, error) {
	if err := check(ext, vp); err != nil {
		return *s, err
	}

	factor := 1 + ZoomStep
	if dir == Out {
		factor = 1 - ZoomStep
	}

	switch axis {
	case X:
		fit := FitScaleX(ext, vp)
		scale, ok := zoomScale(s.ScaleX, fit, factor, dir)
		if !ok {
			return *s, nil
		}
		val := s.InvX(pixel)
		s.ScaleX = scale
		s.OffsetX = pixel - val*scale
	case Y:
		fit := FitScaleY(ext, vp)
		scale, ok := zoomScale(s.ScaleY, fit, factor, dir)
		if !ok {
			return *s, nil
		}
		val := s.InvY(pixel)
		s.ScaleY = scale
		s.OffsetY = pixel - val*scale
	default:
		return *s, fmt.Errorf("unknown axis %d", axis)
	}

	return s.Constrain(ext, vp)
}

// zoomScale returns the next scale, or false when a zoom-out is already at
// the fit scale.
func zoomScale(scale, fit, factor float64, dir Direction) (float64, bool) {
	if dir == Out {
		if math.Abs(scale) <= math.Abs(fit) {
			return scale, false
		}
		next := scale * factor
		if math.Abs(next) < math.Abs(fit) {
			next = fit
		}
		return next, true
	}
	return scale * factor, true
}

// Pan moves the view by a pixel delta.
func (s *State) Pan(ext signal.Extent, vp Viewport, dx, dy float64) (State, error) {
	if err := check(ext, vp); err != nil {
		return *s, err
	}
	s.OffsetX += dx
	s.OffsetY += dy
	return s.Constrain(ext, vp)
}

// BeginPan starts a drag at pointer position (x, y).
func (s *State) BeginPan(x, y float64) State {
	s.Panning = true
	s.LastX, s.LastY = x, y
	return *s
}

// DragTo pans by the pointer movement since the last position. It does
// nothing unless a drag is in progress.
func (s *State) DragTo(ext signal.Extent, vp Viewport, x, y float64) (State, error) {
	if !s.Panning {
		return *s, nil
	}
	dx, dy := x-s.LastX, y-s.LastY
	st, err := s.Pan(ext, vp, dx, dy)
	if err != nil {
		return st, err
	}
	s.LastX, s.LastY = x, y
	return *s, nil
}

// EndPan finishes a drag.
func (s *State) EndPan() State {
	s.Panning = false
	return *s
}

// Constrain clamps both offsets. An axis whose padded extent is smaller than
// the viewport is centered; otherwise its boundaries may not move inside the
// viewport edges.
func (s *State) Constrain(ext signal.Extent, vp Viewport) (State, error) {
	if err := check(ext, vp); err != nil {
		return *s, err
	}
	start := xStart(ext)
	s.OffsetX = clampAxis(s.OffsetX, s.ScaleX, start, start+ext.SafeSpan(), vp.Width)

	bottom, top := yBounds(ext)
	s.OffsetY = clampAxis(s.OffsetY, s.ScaleY, bottom, top, vp.Height)
	return *s, nil
}

func clampAxis(offset, scale, lo, hi, size float64) float64 {
	a, b := lo*scale+offset, hi*scale+offset
	if a > b {
		a, b = b, a
	}
	if b-a < size {
		return size/2 - (lo+hi)/2*scale
	}
	if a > 0 {
		return offset - a
	}
	if b < size {
		return offset + size - b
	}
	return offset
}

// FitScaleX is the horizontal scale that shows the whole domain.
func FitScaleX(ext signal.Extent, vp Viewport) float64 {
	return vp.Width / ext.SafeSpan()
}

// FitScaleY is the vertical scale that shows the whole padded value range.
func FitScaleY(ext signal.Extent, vp Viewport) float64 {
	bottom, top := yBounds(ext)
	return -vp.Height / (top - bottom)
}

func xStart(ext signal.Extent) float64 {
	if ext.Domain == signal.Frequency {
		return 0
	}
	return ext.Start
}

// yBounds returns the padded value range. Time series get 10 % on both sides
// and a ±1 widening when flat. Spectra get ±10 dB when flat and the padding
// split 80/20 between top and bottom.
func yBounds(ext signal.Extent) (bottom, top float64) {
	lo, hi := ext.MinY, ext.MaxY
	if ext.Domain == signal.Frequency {
		if lo == hi {
			lo, hi = lo-10, hi+10
		}
		pad := 0.1 * (hi - lo)
		if pad == 0 {
			pad = 10
		}
		return lo - 0.2*pad, hi + 0.8*pad
	}

	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	pad := 0.1 * (hi - lo)
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}

func check(ext signal.Extent, vp Viewport) error {
	if !ext.Usable() {
		return fmt.Errorf("view over %d samples: %w", ext.Count, signal.ErrInsufficientData)
	}
	if !vp.valid() {
		return fmt.Errorf("viewport %gx%g: %w", vp.Width, vp.Height, ErrInvalidViewport)
	}
	return nil
}
