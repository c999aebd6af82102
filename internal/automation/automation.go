// Package automation runs scripted sequences of integrations and Monte Carlo
// trials over perturbed initial states.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/experiment"
	"github.com/san-kum/rkode/internal/storage"
)

// Scenario is a named list of runs executed in order.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioStep struct {
	Name   string             `yaml:"name"`
	Field  string             `yaml:"field"`
	Method string             `yaml:"method"`
	T0     float64            `yaml:"t0"`
	H      float64            `yaml:"h"`
	N      int                `yaml:"n"`
	Y0     []float64          `yaml:"y0"`
	Params map[string]float64 `yaml:"params"`
	Save   bool               `yaml:"save"`
}

type StepResult struct {
	Name   string
	RunID  string
	Result *dynamo.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

func (s ScenarioStep) label(i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%d:%s/%s", i+1, s.Field, s.Method)
}

func (s ScenarioStep) config() experiment.Config {
	return experiment.Config{
		Field:  s.Field,
		Method: s.Method,
		T0:     s.T0,
		H:      s.H,
		N:      s.N,
		Y0:     s.Y0,
		Params: s.Params,
	}
}

// RunScenario executes every step in order and stops at the first failure,
// returning the results completed so far. Steps with Save set are written
// to store, which may be nil when no step saves.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, store *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.label(i)
		slog.Info("scenario step", "scenario", scenario.Name, "step", name, "index", i+1, "of", len(scenario.Steps))

		exp := experiment.New(step.config(), registry)
		if err := exp.Setup(); err != nil {
			return results, fmt.Errorf("step %s setup: %w", name, err)
		}

		var run *storage.Run
		var sink dynamo.Sink
		if step.Save {
			if store == nil {
				return results, fmt.Errorf("step %s: no run store configured", name)
			}
			var err error
			run, err = store.Create(storage.RunMetadata{
				Field:  step.Field,
				Method: exp.Stepper().Name(),
				Order:  exp.Field().Order(),
				T0:     step.T0,
				H:      step.H,
				N:      step.N,
				Y0:     exp.InitialState(),
				Params: exp.Field().GetParams(),
			})
			if err != nil {
				return results, fmt.Errorf("step %s: %w", name, err)
			}
			sink = run
		}

		result, err := exp.Run(ctx, sink)
		if run != nil {
			if ferr := run.Finish(result); ferr != nil && err == nil {
				err = ferr
			}
		}
		if err != nil {
			return results, fmt.Errorf("step %s run: %w", name, err)
		}

		sr := StepResult{Name: name, Result: result}
		if run != nil {
			sr.RunID = run.ID()
		}
		results = append(results, sr)
	}

	return results, nil
}

// MonteCarloConfig perturbs each component of BaseState uniformly within
// ±Perturbation. A zero Seed draws one from the clock.
type MonteCarloConfig struct {
	Field        string
	Method       string
	Params       map[string]float64
	BaseState    []float64
	Perturbation float64
	NumTrials    int
	T0           float64
	H            float64
	N            int
	Seed         int64

	// Bound marks a trial unstable when any final component exceeds it in
	// magnitude. Zero means 1e6.
	Bound float64
}

type MonteCarloResult struct {
	TrialID    int
	InitState  dynamo.State
	FinalState dynamo.State
	Stable     bool
}

// RunMonteCarlo integrates NumTrials perturbed copies of the base state.
// Trials that blow up to NaN or Inf count as unstable; any other run error
// aborts.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("monte carlo needs a positive trial count, got %d", cfg.NumTrials)
	}
	bound := cfg.Bound
	if bound == 0 {
		bound = 1e6
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		initState := make([]float64, len(cfg.BaseState))
		for i, v := range cfg.BaseState {
			initState[i] = v + (rng.Float64()-0.5)*2*cfg.Perturbation
		}

		exp := experiment.New(experiment.Config{
			Field:  cfg.Field,
			Method: cfg.Method,
			T0:     cfg.T0,
			H:      cfg.H,
			N:      cfg.N,
			Y0:     initState,
			Params: cfg.Params,
		}, registry)
		if err := exp.Setup(); err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx, nil)
		stable := true
		switch {
		case errors.Is(err, dynamo.ErrUnstable):
			stable = false
		case err != nil:
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		var final dynamo.State
		if result != nil {
			final = result.Final
			for _, v := range final {
				if v > bound || v < -bound {
					stable = false
					break
				}
			}
		}

		results = append(results, MonteCarloResult{
			TrialID:    trial,
			InitState:  initState,
			FinalState: final,
			Stable:     stable,
		})

		if (trial+1)%10 == 0 {
			slog.Debug("monte carlo progress", "done", trial+1, "trials", cfg.NumTrials)
		}
	}

	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
