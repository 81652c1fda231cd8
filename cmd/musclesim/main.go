package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/fluidx-lab/musclesim/internal/analysis"
	"github.com/fluidx-lab/musclesim/internal/config"
	"github.com/fluidx-lab/musclesim/internal/dynamo"
	"github.com/fluidx-lab/musclesim/internal/integrators"
	"github.com/fluidx-lab/musclesim/internal/metrics"
	"github.com/fluidx-lab/musclesim/internal/muscle"
	"github.com/fluidx-lab/musclesim/internal/render"
	"github.com/fluidx-lab/musclesim/internal/storage"
	"github.com/fluidx-lab/musclesim/internal/sweep"
	"github.com/fluidx-lab/musclesim/internal/viz"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt         float64
	duration   float64
	integrator string

	restLength float64
	radius     float64
	modulus    float64
	damping    float64
	mass       float64
	load       float64
	amplitude  float64
	pulseWidth float64
	period     float64
	minStroke  float64
	maxStroke  float64

	fps       int
	vidWidth  int
	vidHeight int
	format    string
	output    string
	rings     int
	charts    bool
	saveRun   bool

	plotColumn   string
	exportFormat string
	exportOut    string

	sweepParam  string
	sweepFrom   float64
	sweepTo     float64
	sweepSteps  int
	sweepMetric string
)

// main is the entry point for the musclesim CLI; the bare command runs one
// full simulation and renders the video, subcommands cover the terminal
// live view and stored runs.
func main() {
	rootCmd := &cobra.Command{
		Use:   "musclesim",
		Short: "hydraulic artificial muscle simulator",
		Long: "Simulates a pressure-driven artificial muscle under a cyclic\n" +
			"square-wave drive and renders the contraction as a video.",
		RunE: runSimulation,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".musclesim", "data directory for stored runs")

	addSimFlags(rootCmd)
	addMuscleFlags(rootCmd)
	rootCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "video frame rate")
	rootCmd.Flags().IntVar(&vidWidth, "width", config.DefaultWidth, "frame width in pixels")
	rootCmd.Flags().IntVar(&vidHeight, "height", config.DefaultHeight, "frame height in pixels")
	rootCmd.Flags().StringVar(&format, "format", "mp4", "video container (mp4 or gif)")
	rootCmd.Flags().StringVar(&output, "output", "out/muscle.mp4", "video output path")
	rootCmd.Flags().IntVar(&rings, "rings", config.DefaultRings, "corrugation rings drawn on the tube")
	rootCmd.Flags().BoolVar(&charts, "charts", true, "write summary charts next to the video")
	rootCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run to the data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the muscle contract in the terminal",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	addMuscleFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotColumn, "column", "", "single column to plot (length, velocity, pressure, strain)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format (json or csv)")
	exportCmd.Flags().StringVar(&exportOut, "output", "", "output file (default stdout)")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the drive across a range of one parameter",
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	addMuscleFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "damping", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 500.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")
	sweepCmd.Flags().StringVar(&sweepMetric, "rank", "contraction_max", "metric to rank the points by")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in parameter presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDAMPING\tPULSE\tPERIOD\tLOAD")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.1f\t%.1fs\t%.1fs\t%.0fN\n",
					name, p.Muscle.Damping, p.Muscle.PulseWidth, p.Muscle.Period, p.Muscle.Load)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(liveCmd, listCmd, plotCmd, exportCmd, deleteCmd, analyzeCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration in seconds")
	cmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator (euler, rk4, leapfrog)")
}

func addMuscleFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&restLength, "rest-length", muscle.DefaultRestLength, "rest length in m")
	cmd.Flags().Float64Var(&radius, "radius", muscle.DefaultRadius, "rest radius in m")
	cmd.Flags().Float64Var(&modulus, "modulus", muscle.DefaultElasticModulus, "elastic modulus in Pa")
	cmd.Flags().Float64Var(&damping, "damping", muscle.DefaultDamping, "damping in N*s/m")
	cmd.Flags().Float64Var(&mass, "mass", muscle.DefaultMass, "end mass in kg")
	cmd.Flags().Float64Var(&load, "load", muscle.DefaultLoad, "tensile load in N")
	cmd.Flags().Float64Var(&amplitude, "amplitude", muscle.DefaultPressureAmp, "pulse pressure in Pa")
	cmd.Flags().Float64Var(&pulseWidth, "pulse-width", muscle.DefaultPulseWidth, "pulse width in seconds")
	cmd.Flags().Float64Var(&period, "period", muscle.DefaultPeriod, "pulse period in seconds")
	cmd.Flags().Float64Var(&minStroke, "min-stroke", muscle.DefaultMinStroke, "travel floor as fraction of rest length (0 disables)")
	cmd.Flags().Float64Var(&maxStroke, "max-stroke", muscle.DefaultMaxStroke, "travel ceiling as fraction of rest length (0 disables)")
}

// resolveConfig layers the preset, the config file and explicit flags
// over the defaults. Flags win over the file, the file over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if f.Changed("time") {
		cfg.Sim.Duration = duration
	}
	if f.Changed("integrator") {
		cfg.Sim.Integrator = integrator
	}
	if f.Changed("rest-length") {
		cfg.Muscle.RestLength = restLength
	}
	if f.Changed("radius") {
		cfg.Muscle.Radius = radius
	}
	if f.Changed("modulus") {
		cfg.Muscle.ElasticModulus = modulus
	}
	if f.Changed("damping") {
		cfg.Muscle.Damping = damping
	}
	if f.Changed("mass") {
		cfg.Muscle.Mass = mass
	}
	if f.Changed("load") {
		cfg.Muscle.Load = load
	}
	if f.Changed("amplitude") {
		cfg.Muscle.PressureAmp = amplitude
	}
	if f.Changed("pulse-width") {
		cfg.Muscle.PulseWidth = pulseWidth
	}
	if f.Changed("period") {
		cfg.Muscle.Period = period
	}
	if f.Changed("min-stroke") {
		cfg.Muscle.MinStroke = minStroke
	}
	if f.Changed("max-stroke") {
		cfg.Muscle.MaxStroke = maxStroke
	}
	if f.Changed("fps") {
		cfg.Render.FPS = fps
	}
	if f.Changed("width") {
		cfg.Render.Width = vidWidth
	}
	if f.Changed("height") {
		cfg.Render.Height = vidHeight
	}
	if f.Changed("format") {
		cfg.Render.Format = format
	}
	if f.Changed("output") {
		cfg.Render.Output = output
	}
	if f.Changed("rings") {
		cfg.Render.Rings = rings
	}
	if f.Changed("charts") {
		cfg.Render.Charts = charts
	}

	// Switching to gif without naming an output keeps the extension honest.
	if cfg.Render.Format == "gif" && !f.Changed("output") && filepath.Ext(cfg.Render.Output) == ".mp4" {
		cfg.Render.Output = cfg.Render.Output[:len(cfg.Render.Output)-4] + ".gif"
	}

	return cfg, nil
}

func buildMuscle(cfg *config.Config) (*muscle.Muscle, dynamo.Integrator, error) {
	mus, err := muscle.New(cfg.MuscleParams())
	if err != nil {
		return nil, nil, err
	}
	integ, err := integrators.New(cfg.Sim.Integrator)
	if err != nil {
		return nil, nil, err
	}
	return mus, integ, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	mus, integ, err := buildMuscle(cfg)
	if err != nil {
		return err
	}

	sim := dynamo.New(mus, integ, mus.Waveform())
	sim.SetConstraint(mus.Stroke())
	sim.AddMetric(metrics.NewContraction(mus.Params().RestLength))
	sim.AddMetric(metrics.NewPeakVelocity())
	sim.AddMetric(metrics.NewPressureDuty())

	runCfg := cfg.RunConfig()
	fmt.Printf("simulating %.1fs of actuation (dt=%.4fs, %s)...\n",
		runCfg.Duration, runCfg.Dt, cfg.Sim.Integrator)
	start := time.Now()

	result, err := sim.Run(context.Background(), mus.InitialState(), runCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("samples: %d\n", result.Samples())
	fmt.Printf("travel clamps: %d\n", result.ClampCount)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(mus, runCfg, cfg.Sim.Integrator, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	opts := render.Options{
		FPS:    cfg.Render.FPS,
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		Rings:  cfg.Render.Rings,
		Format: cfg.Render.Format,
		Output: cfg.Render.Output,
	}
	fmt.Printf("\nrendering %d fps %s...\n", opts.FPS, opts.Format)
	path, err := render.WriteVideo(result, mus.Params(), opts)
	if err != nil {
		if errors.Is(err, render.ErrEncoderMissing) {
			return fmt.Errorf("%w (install ffmpeg or pass --format gif)", err)
		}
		return err
	}
	fmt.Printf("video: %s\n", path)

	if cfg.Render.Charts {
		chartDir := filepath.Dir(opts.Output)
		if err := render.SaveCharts(chartDir, result, mus.Params()); err != nil {
			return err
		}
		fmt.Printf("charts: %s\n", chartDir)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	mus, integ, err := buildMuscle(cfg)
	if err != nil {
		return err
	}
	return viz.Run(mus, integ, cfg.Sim.Dt)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tINTEG\tSAMPLES\tCLAMPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%s\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Samples,
			run.ClampCount,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	data, err := st.LoadRun(runID)
	if err != nil {
		return err
	}
	if len(data.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(data.Times))

	pressures := make([]float64, len(data.Pressures))
	for i, p := range data.Pressures {
		pressures[i] = p / 1e6
	}

	series := []struct {
		name    string
		caption string
		data    []float64
	}{
		{"length", "length [m]", data.Lengths},
		{"velocity", "velocity [m/s]", data.Velocities},
		{"pressure", "pressure [MPa]", pressures},
		{"strain", "strain", data.Strains},
	}

	if plotColumn != "" {
		known := false
		for _, s := range series {
			if s.name == plotColumn {
				known = true
			}
		}
		if !known {
			return fmt.Errorf("unknown column: %s (length, velocity, pressure, strain)", plotColumn)
		}
	}

	for _, s := range series {
		if plotColumn != "" && s.name != plotColumn {
			continue
		}
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch exportFormat {
	case "json":
		return st.ExportJSON(w, runID)
	case "csv":
		return st.ExportCSV(w, runID)
	default:
		return fmt.Errorf("unknown export format: %s (json or csv)", exportFormat)
	}
}

func deleteRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	data, err := st.LoadRun(runID)
	if err != nil {
		return err
	}
	if len(data.Lengths) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	spec := analysis.PowerSpectrum(data.Lengths, meta.Dt)
	if len(spec.Power) < 8 {
		return fmt.Errorf("trace too short to analyze")
	}

	// The drive and ring-down lines sit far below Nyquist.
	graph := asciigraph.Plot(spec.Power[:len(spec.Power)/4],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (length)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, _ := spec.Peak()
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	p := meta.Params
	if p["period"] > 0 {
		fmt.Printf("pulse rate: %.3f hz\n", 1.0/p["period"])
	}
	mp := muscle.Params{
		RestLength:     p["rest_length"],
		Radius:         p["radius"],
		ElasticModulus: p["elastic_modulus"],
	}
	if mp.RestLength > 0 && mp.Radius > 0 && mp.ElasticModulus > 0 {
		if ring := analysis.RingFrequency(mp.Stiffness(), p["damping"], p["mass"]); ring > 0 {
			fmt.Printf("ring-down frequency: %.3f hz\n", ring)
		}
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if sweepSteps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}

	s := &sweep.Sweep{
		Base:       cfg.MuscleParams(),
		Integrator: cfg.Sim.Integrator,
		Config:     cfg.RunConfig(),
	}
	values := sweep.Linspace(sweepFrom, sweepTo, sweepSteps)

	fmt.Printf("sweeping %s over [%g, %g] in %d steps (%.1fs each)...\n",
		sweepParam, sweepFrom, sweepTo, sweepSteps, cfg.Sim.Duration)

	points, err := s.Run(context.Background(), sweepParam, values)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tCONTRACTION\tPEAK VEL\tDUTY\tCLAMPS")
	for _, pt := range points {
		fmt.Fprintf(w, "%g\t%.4f\t%.3f\t%.3f\t%d\n",
			pt.Value,
			pt.Metrics["contraction_max"],
			pt.Metrics["velocity_peak"],
			pt.Metrics["pressure_duty"],
			pt.ClampCount,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := sweep.Best(points, sweepMetric); ok {
		fmt.Printf("\nbest %s: %s=%g (%.4f)\n", sweepMetric, sweepParam, best.Value, best.Metrics[sweepMetric])
	}

	return nil
}
