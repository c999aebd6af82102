package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/fields"
	"github.com/san-kum/rkode/internal/sim"
)

type Config struct {
	Field  string
	Method string
	T0     float64
	H      float64
	N      int
	Y0     []float64
	Params map[string]float64
}

// Experiment resolves a Config against a Registry and runs it.
type Experiment struct {
	cfg       Config
	registry  *Registry
	field     fields.Field
	stepper   dynamo.Stepper
	simulator *sim.Simulator
}

func New(cfg Config, registry *Registry) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: registry,
	}
}

// Setup builds the field, applies parameter overrides and attaches the
// default metrics for the field.
func (e *Experiment) Setup() error {
	field, err := e.registry.GetField(e.cfg.Field)
	if err != nil {
		return err
	}
	if err := fields.Apply(field, e.cfg.Params); err != nil {
		return err
	}
	stepper, err := e.registry.GetStepper(e.cfg.Method)
	if err != nil {
		return err
	}

	e.field = field
	e.stepper = stepper
	e.simulator = sim.New(field, stepper)
	for _, m := range e.registry.DefaultMetrics(field) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) SetLogger(logger *slog.Logger) {
	if e.simulator != nil {
		e.simulator.SetLogger(logger)
	}
}

// InitialState is the configured y0, or the field's default when none is set.
func (e *Experiment) InitialState() dynamo.State {
	if len(e.cfg.Y0) == 0 {
		return e.field.DefaultState()
	}
	y0 := make(dynamo.State, len(e.cfg.Y0))
	copy(y0, e.cfg.Y0)
	return y0
}

func (e *Experiment) IntegrationConfig() dynamo.Config {
	return dynamo.Config{
		Order:         e.field.Order(),
		T0:            e.cfg.T0,
		H:             e.cfg.H,
		N:             e.cfg.N,
		ValidateState: true,
	}
}

func (e *Experiment) Run(ctx context.Context, sink dynamo.Sink) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.InitialState(), e.IntegrationConfig(), sink)
}

func (e *Experiment) Field() fields.Field     { return e.field }
func (e *Experiment) Stepper() dynamo.Stepper { return e.stepper }
