package main

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/rkode/internal/analysis"
	"github.com/san-kum/rkode/internal/automation"
	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/experiment"
	"github.com/san-kum/rkode/internal/optim"
	"github.com/san-kum/rkode/internal/storage"
	"github.com/san-kum/rkode/internal/viz"
)

var styles = viz.NewStyles(viz.ThemeCyberpunk)

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[:1])
	if err != nil {
		return err
	}
	methods := methodList(args[1:])
	if len(methods) == 0 {
		methods = registry.ListMethods()
	}

	fmt.Println(styles.Title.Render(fmt.Sprintf("comparing methods for %s (h=%g, n=%d)", cfg.Field, cfg.H, cfg.N)))
	fmt.Println()
	fmt.Printf("%-8s  %-14s  %-12s  %-12s  %-10s\n", "method", "final_y0", "error", "energy_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 64))

	for _, name := range methods {
		c := cfg.Clone()
		c.Method = name
		exp, err := prepare(c)
		if err != nil {
			fmt.Printf("%-8s  error: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := exp.Run(context.Background(), nil)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-8s  error: %v\n", name, err)
			continue
		}

		errStr := "n/a"
		if exact, ok := exp.Field().(dynamo.Exact); ok {
			want := exact.Solution(c.T0, exp.InitialState(), result.FinalTime)
			errStr = fmt.Sprintf("%.2e", want.Sub(result.Final).Norm())
		}
		driftStr := "n/a"
		if drift, ok := result.Metrics["energy_drift"]; ok {
			driftStr = fmt.Sprintf("%.2e", drift)
		}

		fmt.Printf("%-8s  %14.6g  %12s  %12s  %10.2f\n", name, result.Final[0], errStr, driftStr, float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func convergenceStudy(cmd *cobra.Command, args []string) error {
	field, err := registry.GetField(args[0])
	if err != nil {
		return err
	}
	overrides, err := parseParams(params)
	if err != nil {
		return err
	}
	for k, v := range overrides {
		if err := field.SetParam(k, v); err != nil {
			return err
		}
	}
	start := field.DefaultState()
	if len(y0) > 0 {
		start = dynamo.State(y0)
	}

	for _, name := range registry.ListMethods() {
		stepper, err := registry.GetStepper(name)
		if err != nil {
			return err
		}
		rows, err := analysis.Convergence(context.Background(), field, stepper, 0, start, tEnd, resolutions)
		if err != nil {
			return err
		}

		fmt.Println(styles.Title.Render(fmt.Sprintf("%s (expected order %d)", name, stepper.Order())))
		fmt.Printf("  %-6s  %-10s  %-12s  %s\n", "n", "h", "error", "order")
		for _, r := range rows {
			order := "-"
			if !math.IsNaN(r.Order) {
				order = fmt.Sprintf("%.3f", r.Order)
			}
			fmt.Printf("  %-6d  %-10.4g  %-12.3e  %s\n", r.N, r.H, r.Error, order)
		}
		fmt.Println()
	}
	return nil
}

func lyapunovEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := prepare(cfg)
	if err != nil {
		return err
	}

	lambda, err := analysis.LyapunovExponent(exp.Field(), exp.Stepper(), exp.InitialState(), cfg.T0, cfg.H, cfg.N, perturbation)
	if err != nil {
		return err
	}

	fmt.Println(styles.KeyValue("field", cfg.Field))
	fmt.Println(styles.KeyValue("method", exp.Stepper().Name()))
	fmt.Println(styles.KeyValue("span", fmt.Sprintf("%g", float64(cfg.N)*cfg.H)))
	fmt.Println(styles.KeyValue("lambda", fmt.Sprintf("%.4f", lambda)))
	if lambda > 0 {
		fmt.Println(styles.Subtle.Render("positive exponent: nearby trajectories diverge (chaotic)"))
	}
	return nil
}

func bifurcationSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := prepare(cfg)
	if err != nil {
		return err
	}

	points, err := analysis.BifurcationDiagram(exp.Field(), exp.Stepper(), sweepParam, sweepMin, sweepMax,
		sweepSteps, component, exp.InitialState(), cfg.H, transient, cfg.N)
	if err != nil {
		return err
	}

	fmt.Println(styles.Title.Render(fmt.Sprintf("bifurcation: %s, %s in [%g, %g], maxima of y%d", cfg.Field, sweepParam, sweepMin, sweepMax, component)))
	fmt.Print(analysis.BifurcationToASCII(points, 80, 24))
	return nil
}

func gridSearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if _, err := prepare(cfg); err != nil {
		return err
	}

	names, ranges, err := parseGrids(grids)
	if err != nil {
		return err
	}
	gs, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	build := func(p map[string]float64) (*experiment.Experiment, error) {
		c := cfg.Clone()
		if c.Params == nil {
			c.Params = make(map[string]float64)
		}
		for k, v := range p {
			c.Params[k] = v
		}
		return prepare(c)
	}

	ctx, cancel := signalContext()
	defer cancel()

	best, value, err := gs.Search(ctx, build, metricName)
	if err != nil {
		return err
	}

	fmt.Println(styles.Title.Render(fmt.Sprintf("grid search: %s, minimizing %s", cfg.Field, metricName)))
	for _, name := range names {
		fmt.Println(styles.KeyValue(name, fmt.Sprintf("%g", best[name])))
	}
	fmt.Println(styles.KeyValue(metricName, fmt.Sprintf("%.6g", value)))
	return nil
}

// parseGrids reads name=min:max:points specs.
func parseGrids(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, rng, ok := strings.Cut(spec, "=")
		parts := strings.Split(rng, ":")
		if !ok || name == "" || len(parts) != 3 {
			return nil, nil, fmt.Errorf("invalid grid %q: want name=min:max:points", spec)
		}
		lo, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid grid %q: %w", spec, err)
		}
		hi, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid grid %q: %w", spec, err)
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 {
			return nil, nil, fmt.Errorf("invalid grid %q: points must be a positive integer", spec)
		}
		names = append(names, name)
		ranges = append(ranges, optim.Linspace(lo, hi, n))
	}
	return names, ranges, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunScenario(ctx, scenario, registry, st)
	for _, r := range results {
		line := fmt.Sprintf("%-20s %s", r.Name, r.Result)
		if r.RunID != "" {
			line += "  run " + r.RunID
		}
		fmt.Println(line)
	}
	return err
}

func monteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := prepare(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Field:        cfg.Field,
		Method:       cfg.Method,
		Params:       cfg.Params,
		BaseState:    exp.InitialState(),
		Perturbation: spread,
		NumTrials:    trials,
		T0:           cfg.T0,
		H:            cfg.H,
		N:            cfg.N,
		Seed:         seed,
	}, registry)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Println(styles.Title.Render(fmt.Sprintf("monte carlo: %s with %s, ±%g", cfg.Field, exp.Stepper().Name(), spread)))
	fmt.Println(styles.KeyValue("trials", fmt.Sprintf("%d", len(results))))
	fmt.Println(styles.KeyValue("stable", fmt.Sprintf("%d", stable)))
	fmt.Println(styles.KeyValue("unstable", fmt.Sprintf("%d", unstable)))
	return nil
}
