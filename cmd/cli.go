// SPDX-License-Identifier: MIT
package cmd

import (
	"fmt"

	"scope/internal/config"
	"scope/internal/synth"
	"scope/pkg/build"

	"github.com/spf13/cobra"
)

// Commands selected by ParseArgs.
const (
	CommandAnalyze = "analyze"
	CommandView    = "view"
)

// Invocation is the parsed command line: which command to run and the
// configuration it runs with. Command is empty when cobra already handled the
// request, e.g. for --help or --version.
type Invocation struct {
	Command string
	Config  *config.Config

	// Analyze only.
	Zoom int     // Zoom-in steps around the viewport center
	Pan  float64 // Pixels to move toward later samples after zooming
	FFT  bool    // Report the spectrum of the analysed view
}

// flagValues are the raw flag targets. They only replace config values for
// flags given on the command line.
type flagValues struct {
	configPath string
	verbose    bool
	logLevel   string

	waves    []string
	rate     float64
	duration float64
	seed     uint64

	mode    string
	density int
	window  string
	peaks   int
	width   int
	height  int
	locale  string
}

// ParseArgs parses args (without the program name), loads the configuration
// and applies flag overrides on top of it.
func ParseArgs(args []string) (*Invocation, error) {
	buildInfo := build.GetBuildFlags()
	inv := &Invocation{}
	fv := &flagValues{}

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         "Inspect large sampled signals in time and frequency domain",
		Version:       buildInfo.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return inv.resolve(cmd, fv, CommandView)
		},
	}

	// Display help message
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// View command
	viewCmd := &cobra.Command{
		Use:   CommandView,
		Short: "Browse the signal interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return inv.resolve(cmd, fv, CommandView)
		},
	}
	rootCmd.AddCommand(viewCmd)

	// Analyze command
	analyzeCmd := &cobra.Command{
		Use:   CommandAnalyze,
		Short: "Print render statistics, measurements and spectrum peaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inv.Zoom < 0 {
				return fmt.Errorf("--zoom must not be negative, got %d", inv.Zoom)
			}
			return inv.resolve(cmd, fv, CommandAnalyze)
		},
	}
	analyzeCmd.Flags().IntVarP(&inv.Zoom, "zoom", "z", 0,
		"Zoom in this many steps around the center before analysing")
	analyzeCmd.Flags().Float64Var(&inv.Pan, "pan", 0,
		"Pan this many pixels toward later samples after zooming (negative pans back)")
	analyzeCmd.Flags().BoolVarP(&inv.FFT, "fft", "f", false,
		"Compute the spectrum of the analysed view and list its peaks")
	rootCmd.AddCommand(analyzeCmd)

	// Configuration
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&fv.configPath, "config", "c", "",
		"Path to a YAML config file. Default is ./"+config.DefaultConfigFile+" when present")
	flags.BoolVarP(&fv.verbose, "verbose", "v", config.DefaultDebug,
		"Show verbose output")
	flags.StringVar(&fv.logLevel, "log-level", config.DefaultLogLevel,
		"Log level: debug, info, warn or error")

	// Signal
	flags.StringArrayVarP(&fv.waves, "wave", "w", nil,
		"Signal component, repeatable: sine:HZ[:AMP[:PHASE]], square:..., triangle:..., sawtooth:..., dc:AMP, noise:AMP, spikes:AMP[:DENSITY]")
	flags.Float64VarP(&fv.rate, "sample-rate", "s", config.DefaultSampleRate,
		"Sample rate, measured in Hertz (Hz)")
	flags.Float64VarP(&fv.duration, "duration", "d", config.DefaultDuration,
		"Signal duration in seconds")
	flags.Uint64Var(&fv.seed, "seed", config.DefaultSeed,
		"Seed for noise and spikes")

	// Render
	flags.StringVarP(&fv.mode, "mode", "m", config.DefaultRenderMode,
		"Render mode: minmax, line or points")
	flags.IntVar(&fv.density, "density", config.DefaultRenderDensity,
		"Density level for line and points modes (1-100)")
	flags.StringVar(&fv.window, "window", config.DefaultSpectralWindow,
		"FFT window function")
	flags.IntVarP(&fv.peaks, "peaks", "p", config.DefaultSpectralPeaks,
		"Number of spectrum peaks to report")
	flags.IntVar(&fv.width, "width", config.DefaultViewportWidth,
		"Viewport width in pixels")
	flags.IntVar(&fv.height, "height", config.DefaultViewportHeight,
		"Viewport height in pixels")
	flags.StringVar(&fv.locale, "locale", config.DefaultLocale,
		"Locale for digit grouping, e.g. pl or en-US")

	// Execute the CLI
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	return inv, nil
}

// resolve loads the configuration and overlays the flags the user set.
func (inv *Invocation) resolve(cmd *cobra.Command, fv *flagValues, command string) error {
	cfg, err := config.LoadConfig(fv.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Debug = fv.verbose
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = fv.logLevel
	}
	if flags.Changed("wave") {
		comps := make([]synth.Component, 0, len(fv.waves))
		for _, w := range fv.waves {
			c, err := synth.ParseComponent(w)
			if err != nil {
				return fmt.Errorf("--wave %q: %w", w, err)
			}
			comps = append(comps, c)
		}
		cfg.Signal.Components = comps
	}
	if flags.Changed("sample-rate") {
		cfg.Signal.SampleRate = fv.rate
	}
	if flags.Changed("duration") {
		cfg.Signal.Duration = fv.duration
	}
	if flags.Changed("seed") {
		cfg.Signal.Seed = fv.seed
	}
	if flags.Changed("mode") {
		cfg.Render.Mode = fv.mode
	}
	if flags.Changed("density") {
		cfg.Render.Density = fv.density
	}
	if flags.Changed("window") {
		cfg.Spectral.Window = fv.window
	}
	if flags.Changed("peaks") {
		cfg.Spectral.Peaks = fv.peaks
	}
	if flags.Changed("width") {
		cfg.Viewport.Width = fv.width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = fv.height
	}
	if flags.Changed("locale") {
		cfg.Display.Locale = fv.locale
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	inv.Command = command
	inv.Config = cfg
	return nil
}
