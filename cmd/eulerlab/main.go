package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/eulerlab/internal/analysis"
	"github.com/san-kum/eulerlab/internal/automation"
	"github.com/san-kum/eulerlab/internal/config"
	"github.com/san-kum/eulerlab/internal/dynamo"
	"github.com/san-kum/eulerlab/internal/experiment"
	"github.com/san-kum/eulerlab/internal/export"
	"github.com/san-kum/eulerlab/internal/integrators"
	"github.com/san-kum/eulerlab/internal/metrics"
	"github.com/san-kum/eulerlab/internal/optim"
	"github.com/san-kum/eulerlab/internal/physics"
	"github.com/san-kum/eulerlab/internal/sim"
	"github.com/san-kum/eulerlab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	x0         float64
	v0         float64
	stepSize   float64
	numSteps   int
	finalTime  float64
	outDir     string
	format     string
	method     string
	configFile string
	preset     string
	verbose    bool
	tolerance  float64
	tuneMetric string
	levels     int
	dryRun     bool

	logger zerolog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "eulerlab",
		Short:         "explicit, implicit and symplectic Euler on x'' = -x",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(level).
				With().
				Timestamp().
				Logger()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [experiment...]",
		Short: "run experiments and write their figures",
		Long: "run the named experiments in order. With no arguments the experiments\n" +
			"listed in the config file are run, or all of them if it lists none.",
		RunE: runExperiments,
	}
	addParamFlags(runCmd)
	addOutputFlags(runCmd)

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "run every experiment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExperiments(cmd, experiment.NewRegistry().Names())
		},
	}
	addParamFlags(allCmd)
	addOutputFlags(allCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list experiments",
		Args:  cobra.NoArgs,
		RunE:  listExperiments,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [method...]",
		Short: "compare integration methods",
		RunE:  compareMethods,
	}
	addParamFlags(compareCmd)

	previewCmd := &cobra.Command{
		Use:   "preview [method]",
		Short: "energy chart and phase portrait in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  previewMethod,
	}
	addParamFlags(previewCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [method]",
		Short: "frequency analysis of x(t)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeMethod,
	}
	addParamFlags(analyzeCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "eulerlab.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			logger.Info().Str("file", path).Msg("wrote config")
			return nil
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of experiments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			return automation.RunScenario(scenario, experiment.NewRegistry(), logger)
		},
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [method]",
		Short: "find the coarsest step size that keeps a metric within tolerance",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneStepSize,
	}
	addParamFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&tolerance, "tol", 0.01, "largest acceptable metric value")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "energy_drift", "metric to bound")
	tuneCmd.Flags().IntVar(&levels, "levels", 10, "number of step-size halvings to try, starting at --h")

	rootCmd.AddCommand(runCmd, allCmd, listCmd, compareCmd, previewCmd, analyzeCmd, presetsCmd, initCmd, scenarioCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.Bad.Render("error:"), err)
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&x0, "x0", config.DefaultX0, "initial position")
	cmd.Flags().Float64Var(&v0, "v0", config.DefaultV0, "initial velocity")
	cmd.Flags().Float64Var(&stepSize, "h", config.DefaultH, "step size")
	cmd.Flags().IntVar(&numSteps, "steps", config.DefaultNumSteps, "number of samples")
	cmd.Flags().Float64Var(&finalTime, "time", config.DefaultFinalTime, "final time of the truncation sweep")
	cmd.Flags().StringVar(&method, "method", config.DefaultMethod, "default method for preview/analyze")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outDir, "out", "o", config.DefaultOutDir, "output directory")
	cmd.Flags().StringVarP(&format, "format", "f", config.DefaultFormat, "image format (pdf, png, svg, eps)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute every figure but write nothing")
}

// resolveConfig layers the preset, the config file and explicitly set flags,
// in increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("x0") {
		cfg.X0 = x0
	}
	if flags.Changed("v0") {
		cfg.V0 = v0
	}
	if flags.Changed("h") {
		cfg.H = stepSize
	}
	if flags.Changed("steps") {
		cfg.NumSteps = numSteps
	}
	if flags.Changed("time") {
		cfg.FinalTime = finalTime
	}
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("out") {
		cfg.OutDir = outDir
	}
	if flags.Changed("format") {
		cfg.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// methodArg picks the method from the first argument, falling back to the
// config.
func methodArg(cfg *config.Config, args []string) (dynamo.Integrator, error) {
	name := cfg.Method
	if len(args) > 0 {
		name = args[0]
	}
	return integrators.ByName(name)
}

func simulate(integ dynamo.Integrator, cfg *config.Config) (*sim.Result, error) {
	s := sim.New(integ)
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}
	return s.Run(cfg.InitState(), cfg.Run())
}

func runExperiments(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	names := args
	if len(names) == 0 {
		names = cfg.Experiments
	}
	if len(names) == 0 {
		names = registry.Names()
	}
	for _, name := range names {
		if _, err := registry.Get(name); err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(registry.Names(), ", "))
		}
	}

	runner := experiment.NewRunner(cfg.OutDir, cfg.Format, logger)
	if dryRun {
		runner.Write = func(fig *export.Figure, path string) error {
			logger.Debug().Str("file", path).Int("series", len(fig.Series)).Msg("dry run: skipped write")
			return nil
		}
	} else if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return err
	}

	params := experiment.Params{
		X0:        cfg.X0,
		V0:        cfg.V0,
		H:         cfg.H,
		NumSteps:  cfg.NumSteps,
		FinalTime: cfg.FinalTime,
	}

	start := time.Now()
	for _, name := range names {
		if err := registry.Run(runner, name, params); err != nil {
			return err
		}
	}
	logger.Info().Int("experiments", len(names)).Dur("elapsed", time.Since(start)).Str("dir", cfg.OutDir).Msg("done")
	return nil
}

func listExperiments(cmd *cobra.Command, args []string) error {
	fmt.Println(viz.Header.Render("experiments"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tOUTPUTS\tDESCRIPTION")
	for _, e := range experiment.NewRegistry().List() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, strings.Join(e.Outputs, ", "), e.Description)
	}
	return w.Flush()
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	methods := args
	if len(methods) == 0 {
		methods = integrators.Names()
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("comparing methods (x0=%g, v0=%g, h=%g, steps=%d)",
		cfg.X0, cfg.V0, cfg.H, cfg.NumSteps)))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"method", "final_x", "final_v"}
	for _, m := range metrics.Defaults() {
		header = append(header, m.Name())
	}
	header = append(header, "time_ms")
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")

	for _, name := range methods {
		integ, err := integrators.ByName(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\n", name, err)
			continue
		}

		start := time.Now()
		res, err := simulate(integ, cfg)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\n", name, err)
			continue
		}

		final, _ := res.Trajectory.Final()
		row := []string{name, fmt.Sprintf("%.6f", final.X), fmt.Sprintf("%.6f", final.V)}
		for _, m := range metrics.Defaults() {
			row = append(row, fmt.Sprintf("%.3e", res.Metrics[m.Name()]))
		}
		row = append(row, fmt.Sprintf("%.2f", float64(elapsed.Microseconds())/1000))
		fmt.Fprintln(w, strings.Join(row, "\t")+"\t")
	}
	return w.Flush()
}

func previewMethod(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := methodArg(cfg, args)
	if err != nil {
		return err
	}

	res, err := simulate(integ, cfg)
	if err != nil {
		return err
	}
	tr := res.Trajectory
	ref, err := sim.Reference(cfg.InitState(), cfg.H, cfg.NumSteps)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(integ.Name() + " Euler"))
	fmt.Println(viz.Separator(70))
	fmt.Println(viz.Chart("energy x²+v²: numeric (default), analytic (blue)", 70, 12, sim.Energy(tr), sim.Energy(ref)))
	fmt.Println()
	fmt.Println(viz.Panel.Render(viz.PhasePortrait(tr, 36, 14).String()))

	drift := res.Metrics["energy_drift"]
	fmt.Println(viz.Metric("energy drift", viz.Drift(drift, fmt.Sprintf("%.3e", drift))))
	fmt.Println(viz.Metric("max error", fmt.Sprintf("%.3e", res.Metrics["max_error"])))
	if orbit, err := analysis.ClassifyOrbit(tr, cfg.H); err == nil {
		fmt.Println(viz.Metric("orbit", orbit.String()))
	}
	return nil
}

func analyzeMethod(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := methodArg(cfg, args)
	if err != nil {
		return err
	}

	res, err := simulate(integ, cfg)
	if err != nil {
		return err
	}
	tr := res.Trajectory

	freq, err := analysis.DominantFrequency(tr.X, cfg.H)
	if err != nil {
		return err
	}

	ps := analysis.PowerSpectrum(tr.X)
	fmt.Println(viz.Title.Render("frequency analysis: " + integ.Name() + " Euler"))
	fmt.Println(viz.Chart("power spectrum (x)", 70, 12, ps[:max(len(ps)/4, 1)]))
	fmt.Println()

	osc := physics.NewOscillator()
	fmt.Println(viz.Metric("dominant frequency", fmt.Sprintf("%.5f", freq)))
	fmt.Println(viz.Metric("exact frequency", fmt.Sprintf("%.5f", osc.Frequency())))
	if freq > 0 {
		fmt.Println(viz.Metric("period", fmt.Sprintf("%.4f (exact %.4f)", 1/freq, osc.Period())))
	}
	logger.Debug().
		Str("method", integ.Name()).
		Float64("resolution", 1/(float64(tr.Len())*cfg.H)).
		Msg("frequency bin width")
	return nil
}

func tuneStepSize(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := methodArg(cfg, args)
	if err != nil {
		return err
	}

	hs := optim.Halvings(cfg.H, levels)
	h, err := optim.CoarsestStep(integ, cfg.InitState(), cfg.FinalTime, hs, tuneMetric, tolerance)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render("step size: " + integ.Name() + " Euler"))
	fmt.Println(viz.Metric("h", fmt.Sprintf("%g", h)))
	fmt.Println(viz.Metric("steps", fmt.Sprintf("%d", int(cfg.FinalTime/h))))
	fmt.Println(viz.Metric(tuneMetric, fmt.Sprintf("<= %g over t=%g", tolerance, cfg.FinalTime)))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println(viz.Header.Render("presets"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMETHOD\tX0\tV0\tH\tSTEPS\tTIME")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%d\t%g\n", name, p.Method, p.X0, p.V0, p.H, p.NumSteps, p.FinalTime)
	}
	return w.Flush()
}
