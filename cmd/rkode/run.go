package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/rkode/internal/config"
	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/experiment"
	"github.com/san-kum/rkode/internal/sim"
	"github.com/san-kum/rkode/internal/storage"
	"github.com/san-kum/rkode/internal/trajectory"
)

// resolveConfig layers defaults, preset, config file and flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Field = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Field, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Field))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Field = args[0]
		}
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("h") {
		cfg.H = stepSize
	}
	if flags.Changed("n") {
		cfg.N = steps
	}
	if flags.Changed("t0") {
		cfg.T0 = t0
	}
	if flags.Changed("y0") {
		cfg.Y0 = y0
	}
	if flags.Changed("out") {
		cfg.Output.Path = outPath
	}
	if flags.Changed("format") {
		cfg.Output.Format = format
	}

	overrides, err := parseParams(params)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 && cfg.Params == nil {
		cfg.Params = make(map[string]float64)
	}
	for k, v := range overrides {
		cfg.Params[k] = v
	}

	return cfg, nil
}

func parseParams(raw []string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid parameter %q (want name=value)", kv)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter %q: %w", kv, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

// prepare validates cfg and builds the experiment, before any output is opened.
func prepare(cfg *config.Config) (*experiment.Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	exp := experiment.New(cfg.Experiment(), registry)
	if err := exp.Setup(); err != nil {
		return nil, err
	}
	exp.SetLogger(slog.Default())

	order := exp.Field().Order()
	if got := len(exp.InitialState()); got != order {
		return nil, &dynamo.DimensionError{Step: -1, Want: order, Got: got, Source: "initial state"}
	}
	return exp, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := prepare(cfg)
	if err != nil {
		return err
	}
	outFormat, err := trajectory.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	order := exp.Field().Order()
	out, err := trajectory.Create(cfg.Output.Path, outFormat, order, cfg.Field+"_"+cfg.Method)
	if err != nil {
		return err
	}
	sinks := trajectory.Tee{out}

	var run *storage.Run
	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			out.Close()
			return err
		}
		run, err = st.Create(storage.RunMetadata{
			Field:  cfg.Field,
			Method: exp.Stepper().Name(),
			Order:  order,
			T0:     cfg.T0,
			H:      cfg.H,
			N:      cfg.N,
			Y0:     exp.InitialState(),
			Params: exp.Field().GetParams(),
		})
		if err != nil {
			out.Close()
			return err
		}
		sinks = append(sinks, run)
	}

	ctx, cancel := signalContext()
	defer cancel()

	slog.Debug("running", "field", cfg.Field, "method", cfg.Method, "h", cfg.H, "n", cfg.N, "out", cfg.Output.Path)
	start := time.Now()
	result, runErr := exp.Run(ctx, sinks)
	elapsed := time.Since(start)

	if err := out.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if run != nil {
		if err := run.Finish(result); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(os.Stderr, "%s completed in %v\n", result, elapsed)
	if run != nil {
		fmt.Fprintf(os.Stderr, "run id: %s\n", run.ID())
	}
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(metrics map[string]float64) {
	if len(metrics) == 0 {
		return
	}
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(os.Stderr, "metrics:")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s: %.6g\n", name, metrics[name])
	}
}

// runAll integrates the same problem with every method concurrently.
func runAll(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	outFormat, err := trajectory.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	var (
		jobs    []sim.Job
		outputs []*trajectory.Output
	)
	defer func() {
		for _, o := range outputs {
			o.Close()
		}
	}()

	for _, name := range registry.ListMethods() {
		c := cfg.Clone()
		c.Method = name
		exp, err := prepare(c)
		if err != nil {
			return err
		}

		path := filepath.Join(outDir, trajectory.FileName(name, outFormat))
		out, err := trajectory.Create(path, outFormat, exp.Field().Order(), c.Field+"_"+name)
		if err != nil {
			return err
		}
		outputs = append(outputs, out)

		jobs = append(jobs, sim.Job{
			Name:    path,
			Field:   exp.Field(),
			Stepper: exp.Stepper(),
			Config:  exp.IntegrationConfig(),
			Y0:      exp.InitialState(),
			Sink:    out,
			Metrics: registry.DefaultMetrics(exp.Field()),
		})
	}

	ctx, cancel := signalContext()
	defer cancel()

	outcomes := sim.RunBatch(ctx, jobs)

	var closeErr error
	for _, o := range outputs {
		if err := o.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	outputs = nil

	for _, o := range outcomes {
		if o.Err != nil {
			slog.Error("method failed", "out", o.Name, "err", o.Err)
			continue
		}
		fmt.Printf("%-24s %s (%v)\n", o.Name, o.Result, o.Elapsed)
	}
	if err := sim.FirstError(outcomes); err != nil {
		return err
	}
	return closeErr
}
