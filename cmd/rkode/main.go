package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/rkode/internal/config"
	"github.com/san-kum/rkode/internal/experiment"
)

var (
	dataDir string
	verbose bool

	// Run settings, overriding preset and config file values when set
	method     string
	stepSize   float64
	steps      int
	t0         float64
	y0         []float64
	params     []string
	configFile string
	preset     string
	outPath    string
	format     string
	save       bool
	outDir     string

	// Studies
	tEnd         float64
	resolutions  []int
	perturbation float64
	component    int
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	transient    int
	grids        []string
	metricName   string
	trials       int
	spread       float64
	seed         int64

	// Stored runs
	xAxis     int
	yAxis     int
	svgX      int
	svgY      int
	theme     string
	inputFile string
	runName   string

	// Calculus
	atX       float64
	diffStep  float64
	lower     float64
	upper     float64
	intervals int
)

var registry = experiment.NewRegistry()

func main() {
	rootCmd := &cobra.Command{
		Use:           "rkode",
		Short:         "fixed-step runge-kutta integrators for ode systems",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rkode", "run store directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [field]",
		Short: "integrate a field with one method",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output path, - for stdout")
	runCmd.Flags().StringVar(&format, "format", config.DefaultFormat, "output format (text, csv, sqlite)")
	runCmd.Flags().BoolVar(&save, "save", false, "also store the run under --data")

	allCmd := &cobra.Command{
		Use:   "all [field]",
		Short: "integrate a field with rk1..rk4, one file per method",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAll,
	}
	addRunFlags(allCmd)
	allCmd.Flags().StringVar(&outDir, "dir", ".", "output directory")
	allCmd.Flags().StringVar(&format, "format", config.DefaultFormat, "output format (text, csv, sqlite)")

	compareCmd := &cobra.Command{
		Use:   "compare [field] [method1] [method2] ...",
		Short: "compare methods on the same field",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareMethods,
	}
	addRunFlags(compareCmd)

	convergeCmd := &cobra.Command{
		Use:   "converge [field]",
		Short: "observed order of accuracy against the exact solution",
		Args:  cobra.ExactArgs(1),
		RunE:  convergenceStudy,
	}
	convergeCmd.Flags().Float64Var(&tEnd, "t-end", 1.0, "end time")
	convergeCmd.Flags().IntSliceVar(&resolutions, "steps", []int{10, 20, 40, 80, 160}, "step counts")
	convergeCmd.Flags().Float64SliceVar(&y0, "y0", nil, "initial state")
	convergeCmd.Flags().StringArrayVarP(&params, "param", "p", nil, "field parameter name=value")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [field]",
		Short: "estimate the largest lyapunov exponent",
		Args:  cobra.MaximumNArgs(1),
		RunE:  lyapunovEstimate,
	}
	addRunFlags(lyapunovCmd)
	lyapunovCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation [field]",
		Short: "sweep a parameter and plot the local maxima of one component",
		Args:  cobra.ExactArgs(1),
		RunE:  bifurcationSweep,
	}
	addRunFlags(bifurcationCmd)
	bifurcationCmd.Flags().StringVar(&sweepParam, "sweep", "", "parameter to sweep")
	bifurcationCmd.Flags().Float64Var(&sweepMin, "min", 0, "sweep start")
	bifurcationCmd.Flags().Float64Var(&sweepMax, "max", 1, "sweep end")
	bifurcationCmd.Flags().IntVar(&sweepSteps, "points", 60, "parameter values")
	bifurcationCmd.Flags().IntVar(&transient, "transient", 2000, "steps discarded before recording")
	bifurcationCmd.Flags().IntVar(&component, "component", 0, "state index to record")
	bifurcationCmd.MarkFlagRequired("sweep")

	searchCmd := &cobra.Command{
		Use:   "search [field]",
		Short: "grid search field parameters minimizing a run metric",
		Args:  cobra.ExactArgs(1),
		RunE:  gridSearch,
	}
	addRunFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&grids, "grid", nil, "parameter grid name=min:max:points")
	searchCmd.Flags().StringVar(&metricName, "metric", "energy_drift", "metric to minimize")
	searchCmd.MarkFlagRequired("grid")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a yaml scenario in order",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [field]",
		Short: "integrate randomly perturbed initial states and count unstable runs",
		Args:  cobra.ExactArgs(1),
		RunE:  monteCarlo,
	}
	addRunFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().Float64Var(&spread, "perturbation", 0.1, "maximum perturbation per component")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	fieldsCmd := &cobra.Command{
		Use:   "fields",
		Short: "list vector fields",
		RunE:  listFields,
	}

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list integration methods",
		RunE:  listMethods,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [field]",
		Short: "list available presets for a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for field: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.GetPreset(args[0], p)
				fmt.Printf("  %-12s h=%g n=%d y0=%v\n", p, cfg.H, cfg.N, cfg.Y0)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run or trajectory file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	addSourceFlags(plotCmd)

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.MaximumNArgs(1),
		RunE:  phasePlot,
	}
	addSourceFlags(phaseCmd)
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	addSourceFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&component, "component", 0, "state index to analyze")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "browse a trajectory interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  viewRun,
	}
	addSourceFlags(viewCmd)
	viewCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a time series or phase portrait to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	addSourceFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output path, - for stdout")
	exportSVGCmd.Flags().IntVar(&svgX, "x-axis", -1, "state index for x-axis (phase portrait)")
	exportSVGCmd.Flags().IntVar(&svgY, "y-axis", 1, "state index for y-axis (phase portrait)")

	derivCmd := &cobra.Command{
		Use:   "deriv [func]",
		Short: "finite difference derivative estimates",
		Args:  cobra.ExactArgs(1),
		RunE:  derivative,
	}
	derivCmd.Flags().Float64Var(&atX, "x", 1.0, "evaluation point")
	derivCmd.Flags().Float64Var(&diffStep, "h", 1e-3, "step size")

	quadCmd := &cobra.Command{
		Use:   "quad [func]",
		Short: "fixed-interval quadrature",
		Args:  cobra.ExactArgs(1),
		RunE:  quadrature,
	}
	quadCmd.Flags().Float64Var(&lower, "a", 0, "lower bound")
	quadCmd.Flags().Float64Var(&upper, "b", 1, "upper bound")
	quadCmd.Flags().IntVar(&intervals, "n", 10, "number of intervals")

	rootCmd.AddCommand(runCmd, allCmd, compareCmd, convergeCmd, lyapunovCmd, bifurcationCmd,
		searchCmd, scenarioCmd, monteCarloCmd, fieldsCmd, methodsCmd, presetsCmd, listCmd, plotCmd,
		phaseCmd, analyzeCmd, viewCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, derivCmd, quadCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&method, "method", "m", config.DefaultMethod, "method (rk1, rk2, rk3, rk4)")
	cmd.Flags().Float64Var(&stepSize, "h", config.DefaultH, "step size")
	cmd.Flags().IntVar(&steps, "n", config.DefaultN, "number of steps")
	cmd.Flags().Float64Var(&t0, "t0", 0, "initial time")
	cmd.Flags().Float64SliceVar(&y0, "y0", nil, "initial state (default: field default)")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "field parameter name=value")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inputFile, "file", "", "read a trajectory file (text, csv or sqlite) instead of a stored run")
	cmd.Flags().StringVar(&runName, "run", "", "run name inside a sqlite file")
}

func listFields(cmd *cobra.Command, args []string) error {
	for _, name := range registry.ListFields() {
		f, err := registry.GetField(name)
		if err != nil {
			return err
		}
		fmt.Printf("  %-10s order=%d params=%v\n", name, f.Order(), f.GetParams())
	}
	return nil
}

func listMethods(cmd *cobra.Command, args []string) error {
	for _, name := range registry.ListMethods() {
		st, err := registry.GetStepper(name)
		if err != nil {
			return err
		}
		fmt.Printf("  %-4s stages=%d order=%d\n", name, st.Stages(), st.Order())
	}
	return nil
}
