// SPDX-License-Identifier: MIT
package synth

import (
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestGenerateSampleCount(t *testing.T) {
	sig, err := Generate(Params{SampleRate: 1e6, Duration: 1e-3, StartTime: 0.25}, []Component{{Wave: Sine, Frequency: 1000, Amplitude: 1}}, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if sig.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", sig.Len())
	}
	if sig.StartTime != 0.25 || math.Abs(sig.Increment-1e-6) > 1e-18 {
		t.Errorf("timing = (%g, %g)", sig.StartTime, sig.Increment)
	}
	if sig.Max > 1 || sig.Min < -1 || sig.Max < 0.99 {
		t.Errorf("range = [%g, %g]", sig.Min, sig.Max)
	}
}

func TestWaveValues(t *testing.T) {
	p := Params{SampleRate: 8, Duration: 1}
	tests := []struct {
		name string
		comp Component
		want []float64
	}{
		{"sine", Component{Wave: Sine, Frequency: 1, Amplitude: 2}, []float64{0, math.Sqrt2, 2, math.Sqrt2, 0, -math.Sqrt2, -2, -math.Sqrt2}},
		{"sine 90 degrees", Component{Wave: Sine, Frequency: 1, Amplitude: 1, Phase: 90}, []float64{1, math.Sqrt2 / 2, 0, -math.Sqrt2 / 2, -1, -math.Sqrt2 / 2, 0, math.Sqrt2 / 2}},
		{"square", Component{Wave: Square, Frequency: 1, Amplitude: 1}, []float64{0, 1, 1, 1, 0, -1, -1, -1}},
		{"triangle", Component{Wave: Triangle, Frequency: 1, Amplitude: 1}, []float64{0, 0.5, 1, 0.5, 0, -0.5, -1, -0.5}},
		{"sawtooth", Component{Wave: Sawtooth, Frequency: 1, Amplitude: 1}, []float64{0, 0.25, 0.5, 0.75, -1, -0.75, -0.5, -0.25}},
		{"dc", Component{Wave: DC, Amplitude: -0.5}, []float64{-0.5, -0.5, -0.5, -0.5, -0.5, -0.5, -0.5, -0.5}},
		{"zero frequency skipped", Component{Wave: Sine, Amplitude: 1}, make([]float64, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Render(p, []Component{tt.comp}, nil)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if len(buf.Data) != len(tt.want) {
				t.Fatalf("got %d samples, want %d", len(buf.Data), len(tt.want))
			}
			for i, want := range tt.want {
				// sin(pi) and friends are not exact zeros
				if math.Abs(buf.Data[i]-want) > 1e-9 && !(tt.comp.Wave == Square && want == 0) {
					t.Errorf("sample %d = %g, want %g", i, buf.Data[i], want)
				}
			}
		})
	}
}

func TestComponentsAreSummed(t *testing.T) {
	comps := []Component{
		{Wave: DC, Amplitude: 1},
		{Wave: Sine, Frequency: 1, Amplitude: 1},
	}
	buf, err := Render(Params{SampleRate: 4, Duration: 1}, comps, nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if math.Abs(buf.Data[1]-2) > 1e-12 || math.Abs(buf.Data[3]) > 1e-12 {
		t.Errorf("Data = %v", buf.Data)
	}
	if buf.Format.SampleRate != 4 || buf.Format.NumChannels != 1 {
		t.Errorf("Format = %+v", buf.Format)
	}
}

func TestNoiseAndSpikesDeterministic(t *testing.T) {
	comps := []Component{{Wave: Noise, Amplitude: 0.1}, {Wave: Spikes, Amplitude: 5, Density: 10}}
	p := Params{SampleRate: 1000, Duration: 1}

	a, err := Render(p, comps, NewRand(42))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b, _ := Render(p, comps, NewRand(42))

	spikes := 0
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatalf("sample %d differs between runs with the same seed", i)
		}
		if math.Abs(a.Data[i]) > 1 {
			spikes++
		}
	}
	// 10 % of 1000 samples
	if spikes < 50 || spikes > 150 {
		t.Errorf("got %d spikes, want about 100", spikes)
	}
}

func TestRenderInvalidParams(t *testing.T) {
	for _, p := range []Params{{SampleRate: 0, Duration: 1}, {SampleRate: 100, Duration: -1}, {SampleRate: math.NaN(), Duration: 1}} {
		if _, err := Render(p, nil, nil); !errors.Is(err, ErrInvalidParams) {
			t.Errorf("Render(%+v) error = %v, want ErrInvalidParams", p, err)
		}
	}
	if _, err := Render(Params{SampleRate: 10, Duration: 1}, []Component{{Wave: "chirp"}}, nil); err == nil {
		t.Error("Render accepted an unknown wave type")
	}
}

func TestParseComponent(t *testing.T) {
	tests := []struct {
		in      string
		want    Component
		wantErr bool
	}{
		{in: "sine:1000", want: Component{Wave: Sine, Frequency: 1000, Amplitude: 1, Density: 1}},
		{in: "Square:50:0.5:90", want: Component{Wave: Square, Frequency: 50, Amplitude: 0.5, Phase: 90, Density: 1}},
		{in: "dc:2.5", want: Component{Wave: DC, Amplitude: 2.5, Density: 1}},
		{in: "noise", want: Component{Wave: Noise, Amplitude: 1, Density: 1}},
		{in: "spikes:3:0.5", want: Component{Wave: Spikes, Amplitude: 3, Density: 0.5}},
		{in: "sine", wantErr: true},
		{in: "sine:abc", wantErr: true},
		{in: "dc:1:2", wantErr: true},
		{in: "chirp:100", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseComponent(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseComponent(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseComponent(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComponentStringRoundTrip(t *testing.T) {
	for _, in := range []string{"sine:1000:1:90", "sawtooth:2.5:0.1:0", "spikes:5:2", "dc:-1"} {
		c, err := ParseComponent(in)
		if err != nil {
			t.Fatalf("ParseComponent(%q) error = %v", in, err)
		}
		if got := c.String(); got != in {
			t.Errorf("String() = %q, want %q", got, in)
		}
	}
}

func TestWaveUnmarshalYAML(t *testing.T) {
	var comps []Component
	src := "- wave: Square\n  frequency: 2\n- wave: NOISE\n  amplitude: 0.1\n"
	if err := yaml.Unmarshal([]byte(src), &comps); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if comps[0].Wave != Square || comps[1].Wave != Noise {
		t.Errorf("waves = %q, %q", comps[0].Wave, comps[1].Wave)
	}
	for i, c := range comps {
		if err := c.Validate(); err != nil {
			t.Errorf("component %d: Validate() = %v", i, err)
		}
	}

	if err := yaml.Unmarshal([]byte("- wave: [sine]\n"), &comps); err == nil {
		t.Error("Unmarshal accepted a non-scalar wave")
	}
}

func TestValidateMatchesRender(t *testing.T) {
	p := Params{SampleRate: 10, Duration: 1}
	for _, w := range []Wave{Sine, Square, Triangle, Sawtooth, DC, Noise, Spikes, "Sine", "chirp", ""} {
		c := Component{Wave: w, Frequency: 1, Amplitude: 1}
		_, renderErr := Render(p, []Component{c}, NewRand(1))
		if validErr := c.Validate(); (validErr == nil) != (renderErr == nil) {
			t.Errorf("%q: Validate() = %v, Render() = %v", w, validErr, renderErr)
		}
	}
}
