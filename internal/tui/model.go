// SPDX-License-Identifier: MIT
/*
Package tui browses a loaded scope.Scope in the terminal.

Every terminal cell of the plot area is one viewport pixel, so the view
transform, render selection and measurements run exactly as they would for a
graphical front end of the same size.
*/
package tui

import (
	"errors"
	"fmt"
	"strings"

	"scope/internal/measure"
	"scope/internal/render"
	"scope/internal/scope"
	"scope/internal/signal"
	"scope/internal/units"
	"scope/internal/view"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/message"
)

// Rows outside the plot: title, status and help.
const chromeRows = 3

// Fraction of the plot a pan key moves, and the density step of [ and ].
const (
	panFraction = 0.1
	densityStep = 5
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")).
			Bold(true)
)

// Model is the Bubble Tea model of the scope screen.
type Model struct {
	scope   *scope.Scope
	printer *message.Printer
	keys    keyMap
	help    help.Model
	canvas  *canvas

	width, height int
	ready         bool

	showMeasure bool
	showPeaks   bool
	showCursors bool
	cursors     measure.Cursors
	probe       scope.Probe
	probing     bool
	err         error
}

// NewModel returns a model for sc. Digits are grouped for locale.
func NewModel(sc *scope.Scope, locale string) (Model, error) {
	p, err := units.NewPrinter(locale)
	if err != nil {
		return Model{}, err
	}
	return Model{
		scope:   sc,
		printer: p,
		keys:    defaultKeyMap(),
		help:    help.New(),
		canvas:  newCanvas(0, 0),
		cursors: measure.DefaultCursors(),
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		plotH := max(msg.Height-chromeRows, 1)
		m.canvas = newCanvas(msg.Width, plotH)
		m.err = m.scope.Resize(view.Viewport{Width: float64(msg.Width), Height: float64(plotH)})
		m.ready = m.err == nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.err = m.handleKey(msg)

	case tea.MouseMsg:
		m.err = m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) error {
	sc := m.scope
	vp := sc.Viewport()
	panX, panY := vp.Width*panFraction, vp.Height*panFraction

	switch {
	case key.Matches(msg, m.keys.Left):
		return sc.Pan(panX, 0)
	case key.Matches(msg, m.keys.Right):
		return sc.Pan(-panX, 0)
	case key.Matches(msg, m.keys.Up):
		return sc.Pan(0, panY)
	case key.Matches(msg, m.keys.Down):
		return sc.Pan(0, -panY)
	case key.Matches(msg, m.keys.ZoomIn):
		return sc.Zoom(vp.Width/2, view.In, view.X)
	case key.Matches(msg, m.keys.ZoomOut):
		return sc.Zoom(vp.Width/2, view.Out, view.X)
	case key.Matches(msg, m.keys.ZoomInY):
		return sc.Zoom(vp.Height/2, view.In, view.Y)
	case key.Matches(msg, m.keys.ZoomOutY):
		return sc.Zoom(vp.Height/2, view.Out, view.Y)
	case key.Matches(msg, m.keys.Reset):
		return sc.ResetView()
	case key.Matches(msg, m.keys.Mode):
		opts := sc.RenderOptions()
		opts.Mode = opts.Mode.Next()
		sc.SetRenderOptions(opts)
	case key.Matches(msg, m.keys.Sparser):
		opts := sc.RenderOptions()
		opts.Level = max(opts.Level-densityStep, render.MinLevel)
		sc.SetRenderOptions(opts)
	case key.Matches(msg, m.keys.Denser):
		opts := sc.RenderOptions()
		opts.Level = min(opts.Level+densityStep, render.MaxLevel)
		sc.SetRenderOptions(opts)
	case key.Matches(msg, m.keys.FFT):
		return sc.ToggleFFT()
	case key.Matches(msg, m.keys.Measure):
		m.showMeasure = !m.showMeasure
	case key.Matches(msg, m.keys.Peaks):
		m.showPeaks = !m.showPeaks
	case key.Matches(msg, m.keys.Cursors):
		m.showCursors = !m.showCursors
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// handleMouse maps terminal cells to viewport pixels. The plot starts below
// the title row.
func (m *Model) handleMouse(msg tea.MouseMsg) error {
	sc := m.scope
	x, y := float64(msg.X), float64(msg.Y-1)

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		dir := view.In
		if msg.Button == tea.MouseButtonWheelDown {
			dir = view.Out
		}
		if msg.Ctrl {
			return sc.Zoom(y, dir, view.Y)
		}
		return sc.Zoom(x, dir, view.X)

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		sc.BeginPan(x, y)

	case msg.Action == tea.MouseActionMotion:
		if sc.View().Panning {
			return sc.DragTo(x, y)
		}
		m.probe, m.probing = sc.Probe(x, y)

	case msg.Action == tea.MouseActionRelease:
		sc.EndPan()
	}
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		if m.err != nil {
			return errorStyle.Render(m.err.Error())
		}
		return "Initializing..."
	}

	sc := m.scope
	frame := sc.Render()
	st := sc.View()
	m.canvas.draw(&st, frame)

	color := sc.RenderOptions().Color
	plot := m.canvas.String()
	if color != "" {
		plot = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(plot)
	}

	return strings.Join([]string{
		m.titleLine(frame),
		plot,
		m.statusLine(),
		m.help.View(m.keys),
	}, "\n")
}

func (m Model) titleLine(frame render.Frame) string {
	sc := m.scope
	domain := signal.Time
	if sc.FFTEnabled() {
		domain = signal.Frequency
	}
	xLabel, yLabel := units.AxisLabel(domain)

	title := titleStyle.Render("Scope")
	info := fmt.Sprintf(" %s  %s / %s", sc.RenderOptions().Mode, xLabel, yLabel)
	if label := units.DensityLabel(frame.Stats, m.printer); label != "" && !sc.FFTEnabled() {
		info += "  density " + label
	}
	return title + infoStyle.Render(info)
}

func (m Model) statusLine() string {
	var parts []string

	if m.err != nil {
		parts = append(parts, errorStyle.Render(describe(m.err)))
	}
	if m.probing {
		xUnit, yUnit := "s", "V"
		if m.probe.Domain == signal.Frequency {
			xUnit, yUnit = "Hz", "dB"
		}
		parts = append(parts, fmt.Sprintf("%s, %s", units.Format(m.probe.X, xUnit), units.Format(m.probe.Y, yUnit)))
	}
	if m.showMeasure {
		parts = append(parts, m.measurements())
	}
	if m.showPeaks {
		parts = append(parts, m.peaks())
	}
	if m.showCursors {
		parts = append(parts, m.cursorReading())
	}

	return infoStyle.Render(strings.Join(parts, "  |  "))
}

func (m Model) measurements() string {
	res, err := m.scope.Measure()
	if err != nil {
		return "Vpp " + units.NoValue
	}
	return strings.Join([]string{
		"Vpp " + units.Format(res.Vpp, "V"),
		"Vrms " + units.Format(res.Vrms, "V"),
		"Vavg " + units.Format(res.Vavg, "V"),
		"f " + units.FormatOptional(res.Frequency, res.Periodic, "Hz"),
	}, "  ")
}

func (m Model) peaks() string {
	peaks := m.scope.Peaks()
	if len(peaks) == 0 {
		return "peaks " + units.NoValue
	}
	out := make([]string, len(peaks))
	for i, p := range peaks {
		out[i] = fmt.Sprintf("%s %.1f dB", units.Format(p.Frequency, "Hz"), p.Magnitude)
	}
	return strings.Join(out, ", ")
}

func describe(err error) string {
	switch {
	case errors.Is(err, signal.ErrInsufficientData):
		return "not enough samples in view"
	case errors.Is(err, scope.ErrFrequencyDomain):
		return "not available in spectrum view"
	case errors.Is(err, view.ErrInvalidViewport):
		return "terminal too small"
	}
	return err.Error()
}

func (m Model) cursorReading() string {
	r, err := m.scope.ReadCursors(m.cursors)
	if err != nil {
		return "cursors " + units.NoValue
	}
	f, ok := r.Frequency()
	return fmt.Sprintf("ΔT %s  ΔV %s  1/ΔT %s",
		units.Format(r.DeltaT, "s"), units.Format(r.DeltaV, "V"), units.FormatOptional(f, ok, "Hz"))
}

// Run starts the terminal UI and blocks until the user quits.
func Run(sc *scope.Scope, locale string) error {
	model, err := NewModel(sc, locale)
	if err != nil {
		return err
	}
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err = p.Run()
	return err
}
