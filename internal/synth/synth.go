// SPDX-License-Identifier: MIT
/*
Package synth generates test signals as a sum of waveform components.

Periodic components (sine, square, triangle, sawtooth) take a frequency in Hz
and a phase in degrees and are skipped when their frequency is not positive.
DC, noise and spikes ignore both. Spikes fire on each sample with probability
Density percent, with a random sign.

Noise and spikes draw from the supplied *rand.Rand, so a fixed seed yields
the same signal every run.
*/
package synth

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"scope/internal/signal"

	"github.com/go-audio/audio"
	"gopkg.in/yaml.v3"
)

// Wave names a component shape.
type Wave string

const (
	Sine     Wave = "sine"
	Square   Wave = "square"
	Triangle Wave = "triangle"
	Sawtooth Wave = "sawtooth"
	DC       Wave = "dc"
	Noise    Wave = "noise"
	Spikes   Wave = "spikes"
)

// Periodic reports whether the wave uses frequency and phase.
func (w Wave) Periodic() bool {
	switch w {
	case Sine, Square, Triangle, Sawtooth:
		return true
	}
	return false
}

func (w Wave) valid() bool {
	return w.Periodic() || w == DC || w == Noise || w == Spikes
}

// UnmarshalYAML accepts wave names in any case, e.g. "Sine".
func (w *Wave) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	*w = Wave(strings.ToLower(strings.TrimSpace(name)))
	return nil
}

// Component is one summand of the generated signal.
type Component struct {
	Wave      Wave    `yaml:"wave"`
	Frequency float64 `yaml:"frequency"` // Hz
	Amplitude float64 `yaml:"amplitude"` // V
	Phase     float64 `yaml:"phase"`     // degrees
	Density   float64 `yaml:"density"`   // percent, spikes only
}

// Params sets the sampling grid.
type Params struct {
	SampleRate float64 // Hz
	Duration   float64 // seconds
	StartTime  float64 // seconds
}

var ErrInvalidParams = errors.New("sample rate and duration must be positive")

// NewRand returns a deterministic source for Render and Generate.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Render sums comps over floor(Duration·SampleRate) samples into a mono PCM
// buffer.
func Render(p Params, comps []Component, rng *rand.Rand) (*audio.FloatBuffer, error) {
	if !(p.SampleRate > 0) || !(p.Duration > 0) {
		return nil, fmt.Errorf("synth: rate %g, duration %g: %w", p.SampleRate, p.Duration, ErrInvalidParams)
	}
	if rng == nil {
		rng = NewRand(0)
	}

	n := int(math.Floor(p.Duration * p.SampleRate))
	data := make([]float64, n)
	inc := 1 / p.SampleRate

	for _, c := range comps {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("synth: %w", err)
		}
		if c.Wave.Periodic() && c.Frequency <= 0 {
			continue
		}
		for i := range data {
			data[i] += c.value(float64(i)*inc, rng)
		}
	}

	return &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: int(math.Round(p.SampleRate))},
		Data:   data,
	}, nil
}

// Generate renders comps and wraps the result as a Signal. The increment is
// taken from p, not from the buffer's integer sample rate.
func Generate(p Params, comps []Component, rng *rand.Rand) (*signal.Signal, error) {
	buf, err := Render(p, comps, rng)
	if err != nil {
		return nil, err
	}
	sig, err := signal.FromPCM(buf, p.StartTime)
	if err != nil {
		return nil, fmt.Errorf("synth: %w", err)
	}
	return signal.New(sig.Samples, p.StartTime, 1/p.SampleRate), nil
}

func (c Component) value(t float64, rng *rand.Rand) float64 {
	phaseRad := c.Phase * math.Pi / 180
	arg := 2*math.Pi*c.Frequency*t + phaseRad

	switch c.Wave {
	case Sine:
		return c.Amplitude * math.Sin(arg)
	case Square:
		return c.Amplitude * sign(math.Sin(arg))
	case Triangle:
		return c.Amplitude * (2 / math.Pi) * math.Asin(math.Sin(arg))
	case Sawtooth:
		x := t*c.Frequency + c.Phase/360
		return c.Amplitude * 2 * (x - math.Floor(0.5+x))
	case DC:
		return c.Amplitude
	case Noise:
		return c.Amplitude * (2*rng.Float64() - 1)
	case Spikes:
		if rng.Float64() < c.Density/100 {
			if rng.Float64() > 0.5 {
				return c.Amplitude
			}
			return -c.Amplitude
		}
	}
	return 0
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Validate reports a component Render would reject.
func (c Component) Validate() error {
	if !c.Wave.valid() {
		return fmt.Errorf("unknown wave type '%s'", c.Wave)
	}
	return nil
}

// ParseComponent parses the command-line form of a component:
//
//	sine:1000[:amp[:phase]]     (also square, triangle, sawtooth)
//	dc:amp
//	noise:amp
//	spikes:amp[:density]
//
// Amplitude defaults to 1 and spike density to 1 %.
func ParseComponent(s string) (Component, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	c := Component{Wave: Wave(strings.ToLower(parts[0])), Amplitude: 1, Density: 1}
	if !c.Wave.valid() {
		return Component{}, fmt.Errorf("unknown wave type '%s' in %q", parts[0], s)
	}

	var fields []*float64
	switch {
	case c.Wave.Periodic():
		fields = []*float64{&c.Frequency, &c.Amplitude, &c.Phase}
		if len(parts) < 2 {
			return Component{}, fmt.Errorf("%s component %q needs a frequency", c.Wave, s)
		}
	case c.Wave == Spikes:
		fields = []*float64{&c.Amplitude, &c.Density}
	default:
		fields = []*float64{&c.Amplitude}
	}

	args := parts[1:]
	if len(args) > len(fields) {
		return Component{}, fmt.Errorf("too many fields in %s component %q", c.Wave, s)
	}
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return Component{}, fmt.Errorf("invalid number %q in %q: %w", arg, s, err)
		}
		*fields[i] = v
	}
	return c, nil
}

// String returns the form ParseComponent accepts.
func (c Component) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	switch {
	case c.Wave.Periodic():
		return fmt.Sprintf("%s:%s:%s:%s", c.Wave, f(c.Frequency), f(c.Amplitude), f(c.Phase))
	case c.Wave == Spikes:
		return fmt.Sprintf("%s:%s:%s", c.Wave, f(c.Amplitude), f(c.Density))
	default:
		return fmt.Sprintf("%s:%s", c.Wave, f(c.Amplitude))
	}
}
