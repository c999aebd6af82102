package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/sim"
)

var ErrNoSolution = errors.New("analysis: field has no closed-form solution")

// ConvergenceRow is one resolution of a convergence study. Order is NaN for
// the first row.
type ConvergenceRow struct {
	N     int
	H     float64
	Error float64
	Order float64
}

// Convergence integrates field from (t0, y0) to tEnd once per entry of ns
// and compares the final state with the field's exact solution. Error is the
// largest absolute component error.
func Convergence(ctx context.Context, field dynamo.VectorField, stepper dynamo.Stepper,
	t0 float64, y0 dynamo.State, tEnd float64, ns []int) ([]ConvergenceRow, error) {
	exact, ok := field.(dynamo.Exact)
	if !ok {
		return nil, ErrNoSolution
	}
	if tEnd <= t0 {
		return nil, fmt.Errorf("analysis: end time %g must be after start time %g", tEnd, t0)
	}

	rows := make([]ConvergenceRow, 0, len(ns))
	for i, n := range ns {
		if n <= 0 {
			return nil, fmt.Errorf("analysis: step count must be positive, got %d", n)
		}
		cfg := dynamo.Config{Order: len(y0), T0: t0, H: (tEnd - t0) / float64(n), N: n}
		res, err := sim.Integrate(ctx, field, stepper, cfg, y0, nil)
		if err != nil {
			return nil, fmt.Errorf("analysis: n=%d: %w", n, err)
		}

		want := exact.Solution(t0, y0, res.FinalTime)
		row := ConvergenceRow{N: n, H: cfg.H, Error: maxAbsDiff(res.Final, want), Order: math.NaN()}
		if i > 0 {
			prev := rows[i-1]
			row.Order = math.Log(prev.Error/row.Error) / math.Log(prev.H/row.H)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func maxAbsDiff(a, b dynamo.State) float64 {
	m := 0.0
	for i := range a {
		m = math.Max(m, math.Abs(a[i]-b[i]))
	}
	return m
}
