package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/gassim/internal/analysis"
	"github.com/san-kum/gassim/internal/config"
	"github.com/san-kum/gassim/internal/export"
	"github.com/san-kum/gassim/internal/gas"
	"github.com/san-kum/gassim/internal/gui"
	"github.com/san-kum/gassim/internal/metrics"
	"github.com/san-kum/gassim/internal/runner"
	"github.com/san-kum/gassim/internal/storage"
	"github.com/san-kum/gassim/internal/viz"
)

var (
	dataDir     string
	width       float64
	height      float64
	radius      float64
	colFactor   float64
	bodies      int
	maxSpeed    float64
	tickMS      float64
	durationMS  float64
	seed        int64
	sampleEvery int
	configFile  string
	preset      string
	svgScale    float64
	bins        int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gassim",
		Short: "ideal gas particle simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live terminal view when no command given
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gassim", "data directory")

	addSimFlags := func(cmd *cobra.Command) {
		cmd.Flags().Float64Var(&width, "width", gas.DefaultWidth, "world width")
		cmd.Flags().Float64Var(&height, "height", gas.DefaultHeight, "world height")
		cmd.Flags().Float64Var(&radius, "radius", gas.DefaultRadius, "body radius")
		cmd.Flags().Float64Var(&colFactor, "col-factor", gas.DefaultColRadiusFactor, "collision radius as a multiple of body radius")
		cmd.Flags().IntVar(&bodies, "bodies", gas.DefaultBodies, "number of bodies")
		cmd.Flags().Float64Var(&maxSpeed, "max-speed", gas.DefaultMaxSpeed, "max initial speed per axis (px/ms)")
		cmd.Flags().Float64Var(&tickMS, "tick", gas.DefaultTickDuration, "tick duration (ms)")
		cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	}
	addSimFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless simulation and save the result",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Float64Var(&durationMS, "time", config.DefaultDurationMS, "simulated duration (ms)")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "record a snapshot every N ticks")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live terminal visualization",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}
	addSimFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run simulation in a raylib window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}
	addSimFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot kinetic energy over a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "speed distribution and pressure estimate",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bins, "bins", 12, "histogram buckets")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run states to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and states to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final stored snapshot to SVG on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 2, "pixels per world unit")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.List() {
				fmt.Println(name)
			}
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark tick throughput",
		RunE:  benchTicks,
	}
	addSimFlags(benchCmd)

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig assembles the effective configuration: defaults, then
// preset, then config file, with explicitly set flags winning last.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.Get(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.List())
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

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("radius") {
		cfg.Radius = radius
	}
	if flags.Changed("col-factor") {
		cfg.ColRadiusFactor = colFactor
	}
	if flags.Changed("bodies") {
		cfg.Bodies = bodies
	}
	if flags.Changed("max-speed") {
		cfg.MaxSpeed = maxSpeed
	}
	if flags.Changed("tick") {
		cfg.TickMS = tickMS
	}
	if flags.Changed("time") {
		cfg.DurationMS = durationMS
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if cfg.Seed == 0 || flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim, err := gas.New(cfg.World(), cfg.Bodies, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}

	r := runner.New(sim)
	r.AddMetric(metrics.NewKineticEnergy())
	r.AddMetric(metrics.NewMomentum())
	r.AddMetric(metrics.NewCollisionRate())

	log.Infow("starting run",
		"bodies", cfg.Bodies,
		"world", fmt.Sprintf("%gx%g", cfg.Width, cfg.Height),
		"tick_ms", cfg.TickMS,
		"duration_ms", cfg.DurationMS,
		"seed", cfg.Seed,
	)
	start := time.Now()

	result, err := r.Run(context.Background(), runner.Config{
		Duration:    cfg.DurationMS,
		SampleEvery: cfg.SampleEvery,
	})
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg, result, sim.Digest())
	if err != nil {
		return err
	}

	log.Infow("run complete",
		"run_id", runID,
		"ticks", result.TicksRun,
		"elapsed", time.Since(start),
		"collisions", result.FinalStat.Collisions,
	)
	for name, val := range result.Metrics {
		log.Infow("metric", "name", name, "value", val)
	}
	return nil
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

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBODIES\tTICKS\tCOLLISIONS\tSEED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Bodies, r.TicksRun, r.Collisions, r.Seed)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, snaps, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("run %s has no sampled states", args[0])
	}

	series := make([]float64, len(snaps))
	for i, snap := range snaps {
		series[i] = metrics.Kinetic(snap)
	}

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(15),
		asciigraph.Caption("total kinetic energy over sampled ticks"),
	))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.LoadMeta(args[0])
	if err != nil {
		return err
	}
	_, snaps, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("run %s has no sampled states", args[0])
	}

	final := snaps[len(snaps)-1]
	stats := analysis.Summarize(final)
	counts, binWidth := analysis.Histogram(final, bins)

	fmt.Println(asciigraph.Plot(counts,
		asciigraph.Height(10),
		asciigraph.Caption(fmt.Sprintf("speed distribution (bin width %.4f px/ms)", binWidth)),
	))

	world := gas.World{Width: meta.Width, Height: meta.Height}
	elapsed := float64(meta.TicksRun) * meta.TickMS
	pressure := analysis.Pressure(gas.Stats{WallImpulse: meta.WallImpulse}, world, elapsed)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "mean speed\t%.5f px/ms\n", stats.Mean)
	fmt.Fprintf(w, "rms speed\t%.5f px/ms\n", stats.RMS)
	fmt.Fprintf(w, "max speed\t%.5f px/ms\n", stats.Max)
	fmt.Fprintf(w, "collisions\t%d\n", meta.Collisions)
	fmt.Fprintf(w, "wall bounces\t%d\n", meta.WallBounces)
	fmt.Fprintf(w, "pressure\t%.3e\n", pressure)
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	times, snaps, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, times, snaps)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.LoadMeta(args[0])
	if err != nil {
		return err
	}
	times, snaps, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, meta, times, snaps)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.LoadMeta(args[0])
	if err != nil {
		return err
	}
	_, snaps, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("run %s has no sampled states", args[0])
	}

	world := gas.World{Width: meta.Width, Height: meta.Height, Radius: meta.Radius}
	_, err = fmt.Print(export.SnapshotSVG(snaps[len(snaps)-1], world, svgScale))
	return err
}

func benchTicks(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	for _, n := range []int{100, 200, 400, 800} {
		sim, err := gas.New(cfg.World(), n, rand.New(rand.NewSource(cfg.Seed)))
		if err != nil {
			return err
		}

		const ticks = 200
		start := time.Now()
		for i := 0; i < ticks; i++ {
			sim.Step()
		}
		elapsed := time.Since(start)

		log.Infow("bench",
			"bodies", n,
			"ticks", ticks,
			"total", elapsed,
			"per_tick", elapsed/ticks,
		)
	}
	return nil
}
