// SPDX-License-Identifier: MIT
package tui

import (
	"strings"
	"testing"

	"scope/internal/render"
	"scope/internal/scope"
	"scope/internal/synth"
	"scope/internal/units"
	"scope/internal/view"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	sig, err := synth.Generate(
		synth.Params{SampleRate: 1e5, Duration: 0.01},
		[]synth.Component{{Wave: synth.Sine, Frequency: 1000, Amplitude: 1}},
		nil,
	)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	sc := scope.New(scope.DefaultOptions())
	if err := sc.Load(sig); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	m, err := NewModel(sc, "en")
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func press(m Model, keys string) Model {
	for _, r := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestWindowSizeResizesScope(t *testing.T) {
	m := newTestModel(t)

	want := view.Viewport{Width: 80, Height: 24 - chromeRows}
	if got := m.scope.Viewport(); got != want {
		t.Errorf("Viewport() = %+v, want %+v", got, want)
	}
	if !m.ready {
		t.Fatalf("model not ready after WindowSizeMsg: %v", m.err)
	}

	out := m.View()
	if !strings.Contains(out, "minmax") || !strings.Contains(out, "Auto") {
		t.Errorf("View() lacks mode and density:\n%s", out)
	}
}

func TestSingleSampleSignal(t *testing.T) {
	sig, err := synth.Generate(
		synth.Params{SampleRate: 1e6, Duration: 1.5e-6},
		[]synth.Component{{Wave: synth.Sine, Frequency: 1000, Amplitude: 1}},
		nil,
	)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	sc := scope.New(scope.DefaultOptions())
	if err := sc.Load(sig); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	m, err := NewModel(sc, "en")
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = next.(Model)
	if !m.ready {
		t.Fatalf("model not ready: %v", m.err)
	}

	m.showMeasure, m.showCursors = true, true
	out := m.View()
	if strings.Contains(out, string(trace)) || strings.Contains(out, "density") {
		t.Errorf("View() drew a trace for one sample:\n%s", out)
	}
	if !strings.Contains(m.statusLine(), "Vpp "+units.NoValue) {
		t.Errorf("statusLine() = %q", m.statusLine())
	}

	m = press(m, "+r")
	if m.err == nil {
		t.Error("zoom on one sample reported no error")
	}
}

func TestKeys(t *testing.T) {
	m := newTestModel(t)
	fit := m.scope.View()

	m = press(m, "+")
	if m.scope.View().ScaleX <= fit.ScaleX {
		t.Errorf("+ did not zoom in: %g -> %g", fit.ScaleX, m.scope.View().ScaleX)
	}
	m = press(m, "r")
	if m.scope.View() != fit {
		t.Errorf("r did not reset the view: %+v, want %+v", m.scope.View(), fit)
	}

	m = press(m, "m")
	if got := m.scope.RenderOptions().Mode; got != render.Line {
		t.Errorf("mode after m = %s, want line", got)
	}
	m = press(m, "[[")
	if got := m.scope.RenderOptions().Level; got != render.DefaultLevel-2*densityStep {
		t.Errorf("level after [[ = %d", got)
	}

	m = press(m, "f")
	if !m.scope.FFTEnabled() || m.scope.Spectrum() == nil {
		t.Fatalf("f did not enter spectrum mode: err = %v", m.err)
	}
	if !strings.Contains(m.View(), "Frequency [Hz]") {
		t.Errorf("spectrum title missing:\n%s", m.View())
	}
	if strings.Contains(m.titleLine(m.scope.Render()), "density") {
		t.Errorf("density shown in spectrum view: %q", m.titleLine(m.scope.Render()))
	}

	m = press(m, "a")
	if !strings.Contains(m.statusLine(), "not available in spectrum view") && !strings.Contains(m.statusLine(), "---") {
		t.Errorf("measurements in spectrum view = %q", m.statusLine())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q did not quit")
	}
	_ = next
}

func TestMouse(t *testing.T) {
	m := newTestModel(t)
	fit := m.scope.View()

	next, _ := m.Update(tea.MouseMsg{X: 20, Y: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	m = next.(Model)
	zoomed := m.scope.View()
	if zoomed.ScaleX <= fit.ScaleX || zoomed.ScaleY != fit.ScaleY {
		t.Fatalf("wheel did not zoom X only: %+v", zoomed)
	}
	// The pointer column keeps its domain value.
	if got, want := zoomed.InvX(20), fit.InvX(20); got-want > 1e-12 || want-got > 1e-12 {
		t.Errorf("value under pointer moved: %g -> %g", want, got)
	}

	next, _ = m.Update(tea.MouseMsg{X: 40, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = next.(Model)
	next, _ = m.Update(tea.MouseMsg{X: 30, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	m = next.(Model)
	if m.scope.View().OffsetX >= zoomed.OffsetX {
		t.Errorf("drag left did not move the trace left: %g -> %g", zoomed.OffsetX, m.scope.View().OffsetX)
	}
	next, _ = m.Update(tea.MouseMsg{X: 30, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	m = next.(Model)
	if m.scope.View().Panning {
		t.Error("release did not end the drag")
	}

	next, _ = m.Update(tea.MouseMsg{X: 10, Y: 3, Action: tea.MouseActionMotion})
	m = next.(Model)
	if !m.probing || !strings.Contains(m.statusLine(), "s,") {
		t.Errorf("hover did not probe: %q", m.statusLine())
	}
}

func TestCanvasDraw(t *testing.T) {
	c := newCanvas(4, 5)
	st := view.State{ScaleX: 1, ScaleY: -1, OffsetY: 4}

	c.draw(&st, render.Frame{
		Mode:    render.MinMax,
		Columns: []render.Column{{X: 1, Min: 1, Max: 3}},
		Stats:   &render.Stats{Mode: render.MinMax},
	})
	for y := range 5 {
		want := blank
		if y >= 1 && y <= 3 {
			want = trace
		}
		if got := c.at(1, y); got != want {
			t.Errorf("minmax cell (1,%d) = %q, want %q", y, got, want)
		}
	}

	c.draw(&st, render.Frame{
		Mode:   render.Points,
		Points: []render.Point{{X: 0, Y: 0}, {X: 3.5, Y: 4.2}, {X: 2, Y: 99}},
		Stats:  &render.Stats{Mode: render.Points},
	})
	if c.at(0, 0) != dot || c.at(3, 4) != dot {
		t.Errorf("points not marked:\n%s", c)
	}
	if c.at(1, 1) != blank {
		t.Errorf("stale minmax cell survived redraw")
	}

	c.draw(&st, render.Frame{
		Mode:   render.Line,
		Points: []render.Point{{X: 0, Y: 0}, {X: 3, Y: 3}},
		Stats:  &render.Stats{Mode: render.Line},
	})
	for i := range 4 {
		if c.at(i, i) != stroke {
			t.Errorf("line misses cell (%d,%d):\n%s", i, i, c)
		}
	}
}
