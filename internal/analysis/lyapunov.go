package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/rkode/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Run two nearby trajectories
// 2. Measure their divergence after every step
// 3. Renormalize the separation back to the initial distance
// 4. λ ≈ Σ ln(|δx|/δ0) / (n*h)
func LyapunovExponent(
	field dynamo.VectorField,
	stepper dynamo.Stepper,
	y0 dynamo.State,
	t0, h float64,
	n int,
	perturbation float64,
) (float64, error) {
	if len(y0) == 0 {
		return 0, fmt.Errorf("analysis: empty initial state")
	}
	if n <= 0 || h <= 0 || perturbation <= 0 {
		return 0, fmt.Errorf("analysis: need positive step count, step size and perturbation")
	}

	// Create perturbed initial condition
	y := y0.Clone()
	yp := y0.Clone()
	yp[0] += perturbation
	d0 := perturbation

	t := t0
	sumLog := 0.0

	for i := 0; i < n; i++ {
		var err error
		if y, err = stepper.Step(field, t, h, y); err != nil {
			return 0, fmt.Errorf("analysis: step %d: %w", i+1, err)
		}
		if yp, err = stepper.Step(field, t, h, yp); err != nil {
			return 0, fmt.Errorf("analysis: step %d: %w", i+1, err)
		}
		t += h

		sep := yp.Sub(y).Norm()
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			return 0, fmt.Errorf("analysis: separation degenerated at step %d", i+1)
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for j := range yp {
			yp[j] = y[j] + (yp[j]-y[j])*scale
		}
	}

	return sumLog / (float64(n) * h), nil
}
