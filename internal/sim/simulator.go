package sim

import (
	"context"
	"errors"
	"log/slog"

	"github.com/san-kum/rkode/internal/dynamo"
)

// Simulator drives one stepper over a vector field. A run moves strictly
// forward: validate, record the initial point, then n step/record cycles.
type Simulator struct {
	field   dynamo.VectorField
	stepper dynamo.Stepper
	metrics []dynamo.Metric
	logger  *slog.Logger
}

func New(field dynamo.VectorField, stepper dynamo.Stepper) *Simulator {
	return &Simulator{
		field:   field,
		stepper: stepper,
		metrics: make([]dynamo.Metric, 0),
		logger:  slog.Default(),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) SetLogger(logger *slog.Logger) { s.logger = logger }

// Integrate is shorthand for New(field, stepper).Run(ctx, y0, cfg, sink).
func Integrate(ctx context.Context, field dynamo.VectorField, stepper dynamo.Stepper, cfg dynamo.Config, y0 dynamo.State, sink dynamo.Sink) (*dynamo.Result, error) {
	return New(field, stepper).Run(ctx, y0, cfg, sink)
}

// Run integrates from (cfg.T0, y0) for exactly cfg.N steps, recording every
// point to sink (which may be nil). Invalid configs fail before anything is
// recorded. On a later failure the partial result is returned with the error.
func (s *Simulator) Run(ctx context.Context, y0 dynamo.State, cfg dynamo.Config, sink dynamo.Sink) (*dynamo.Result, error) {
	if err := s.validate(y0, cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &dynamo.Result{
		Method:  s.stepper.Name(),
		Metrics: make(map[string]float64),
	}

	x := y0.Clone()
	t := cfg.T0
	stages := s.stepper.Stages()

	finish := func() {
		result.FinalTime = t
		result.Final = x
		for _, m := range s.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}

	s.logger.Debug("integration started",
		"method", s.stepper.Name(),
		"order", cfg.Order,
		"t0", cfg.T0,
		"h", cfg.H,
		"n", cfg.N,
	)

	if err := s.record(sink, 0, t, x); err != nil {
		finish()
		return result, err
	}

	for i := 0; i < cfg.N; i++ {
		select {
		case <-ctx.Done():
			finish()
			return result, ctx.Err()
		default:
		}

		newX, err := s.stepper.Step(s.field, t, cfg.H, x)
		if err != nil {
			finish()
			return result, s.stepFailure(i, t, x, err)
		}

		if cfg.ValidateState && !newX.IsValid() {
			finish()
			return result, &dynamo.StepError{Step: i, Time: t, State: x, Wrapped: dynamo.ErrUnstable}
		}

		x = newX
		t += cfg.H
		result.Steps++
		result.Evaluations += stages

		if err := s.record(sink, i+1, t, x); err != nil {
			finish()
			return result, err
		}
	}

	finish()

	s.logger.Debug("integration finished",
		"method", s.stepper.Name(),
		"steps", result.Steps,
		"evaluations", result.Evaluations,
		"t", result.FinalTime,
	)

	return result, nil
}

func (s *Simulator) validate(y0 dynamo.State, cfg dynamo.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Order <= 0 {
		return &dynamo.DimensionError{Step: -1, Want: cfg.Order, Got: len(y0), Source: "order"}
	}
	if len(y0) != cfg.Order {
		return &dynamo.DimensionError{Step: -1, Want: cfg.Order, Got: len(y0), Source: "initial state"}
	}
	return nil
}

func (s *Simulator) record(sink dynamo.Sink, step int, t float64, x dynamo.State) error {
	for _, m := range s.metrics {
		m.Observe(t, x)
	}
	if sink == nil {
		return nil
	}
	if err := sink.Record(t, x); err != nil {
		return &dynamo.SinkError{Step: step, Time: t, Err: err}
	}
	return nil
}

func (s *Simulator) stepFailure(step int, t float64, x dynamo.State, err error) error {
	var dimErr *dynamo.DimensionError
	if errors.As(err, &dimErr) {
		dimErr.Step = step
		dimErr.Time = t
		return dimErr
	}
	return &dynamo.StepError{Step: step, Time: t, State: x, Wrapped: err}
}
