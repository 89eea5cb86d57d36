// SPDX-License-Identifier: MIT
package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/go-audio/audio"
)

func TestNewCachesBounds(t *testing.T) {
	s := New([]float32{0.5, -2, 3, 1}, 1e-3, 1e-6)

	if s.Min != -2 || s.Max != 3 {
		t.Errorf("bounds = [%g, %g], want [-2, 3]", s.Min, s.Max)
	}
	if s.Domain != Time {
		t.Errorf("Domain = %s, want time", s.Domain)
	}

	ext := s.Extent()
	if ext.Count != 4 || math.Abs(ext.Span-4e-6) > 1e-18 || ext.Start != 1e-3 {
		t.Errorf("Extent() = %+v", ext)
	}
}

func TestNewGuardsIncrement(t *testing.T) {
	for _, inc := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		s := New([]float32{1, 2}, 0, inc)
		if s.Increment != MinIncrement {
			t.Errorf("New(increment=%g).Increment = %g, want MinIncrement", inc, s.Increment)
		}
	}
}

func TestIndexRoundTrip(t *testing.T) {
	s := New(make([]float32, 100), 0.25, 0.01)
	for _, i := range []int{0, 1, 42, 99} {
		if got := s.IndexAt(s.ValueAt(i)); math.Abs(got-float64(i)) > 1e-9 {
			t.Errorf("IndexAt(ValueAt(%d)) = %g", i, got)
		}
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		sig  *Signal
		want error
	}{
		{"empty", New(nil, 0, 1), ErrInsufficientData},
		{"single sample", New([]float32{1}, 0, 1), ErrInsufficientData},
		{"flat", New([]float32{2, 2, 2}, 0, 1), ErrDegenerateRange},
		{"ok", New([]float32{1, 2}, 0, 1), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sig.Check()
			if !errors.Is(err, tt.want) {
				t.Errorf("Check() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExtentSafeSpan(t *testing.T) {
	ext := Extent{Count: 10}
	if got := ext.SafeSpan(); got != 10*MinIncrement {
		t.Errorf("SafeSpan() = %g, want %g", got, 10*MinIncrement)
	}
	ext.Span = 2
	if got := ext.SafeSpan(); got != 2 {
		t.Errorf("SafeSpan() = %g, want 2", got)
	}
	if (Extent{Count: 1}).Usable() {
		t.Error("a single-sample extent must not be usable")
	}
}

func TestSpectrumSeries(t *testing.T) {
	sp := &Spectrum{
		Magnitudes: []float64{math.Inf(-1), -20, -6, -40},
		Size:       8,
		Nyquist:    400,
		MinDB:      -40,
		MaxDB:      -6,
	}

	if sp.Resolution() != 100 {
		t.Errorf("Resolution() = %g, want 100", sp.Resolution())
	}
	if sp.BinFrequency(2) != 200 {
		t.Errorf("BinFrequency(2) = %g, want 200", sp.BinFrequency(2))
	}
	if sp.IsFinite(0) || !sp.IsFinite(1) {
		t.Error("IsFinite misreports -Inf bin")
	}

	series := sp.Series()
	ext := series.Extent()
	if ext.Domain != Frequency || ext.Span != 400 || ext.MinY != -40 || ext.MaxY != -6 {
		t.Errorf("Series().Extent() = %+v", ext)
	}
	if !math.IsInf(float64(series.Samples[0]), -1) {
		t.Errorf("-Inf bin lost in Series(): %g", series.Samples[0])
	}
}

func TestFromPCM(t *testing.T) {
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 48000},
		Data:           []int{16384, 1, -16384, 2, 0, 3},
		SourceBitDepth: 16,
	}

	s, err := FromPCM(buf, 0.5)
	if err != nil {
		t.Fatalf("FromPCM() error = %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 frames", s.Len())
	}
	want := []float32{0.5, -0.5, 0}
	for i, v := range want {
		if s.Samples[i] != v {
			t.Errorf("sample %d = %g, want %g", i, s.Samples[i], v)
		}
	}
	if math.Abs(s.Increment-1.0/48000) > 1e-15 || s.StartTime != 0.5 {
		t.Errorf("timing = (%g, %g)", s.StartTime, s.Increment)
	}
}

func TestFromPCMFloatBuffer(t *testing.T) {
	buf := &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: 1000},
		Data:   []float64{0.25, 0.75},
	}

	s, err := FromPCM(buf, 0)
	if err != nil {
		t.Fatalf("FromPCM() error = %v", err)
	}
	if s.Min != 0.25 || s.Max != 0.75 {
		t.Errorf("bounds = [%g, %g]", s.Min, s.Max)
	}
}

func TestFromPCMRejectsMissingFormat(t *testing.T) {
	if _, err := FromPCM(&audio.FloatBuffer{Data: []float64{1}}, 0); err == nil {
		t.Error("expected error for buffer without format")
	}
	if _, err := FromPCM(nil, 0); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("FromPCM(nil) = %v, want ErrInsufficientData", err)
	}
}
