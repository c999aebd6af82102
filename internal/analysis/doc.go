// Package analysis provides accuracy and dynamics studies built on the
// fixed-step integrators.
//
//   - [Convergence]: observed order of accuracy against a closed-form solution
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [BifurcationDiagram]: parameter sweep recording the local maxima of one component
//   - [GeneratePhasePortrait]: 2D projection of a recorded trajectory
//   - [GeneratePoincareSection]: points where a trajectory crosses a threshold
//   - [ComponentSpectrum]: FFT power spectrum and dominant frequency of one component
//
// # Order of accuracy
//
// Halving the step size of a method of order p should shrink the global
// error by roughly 2^p:
//
//	rows, err := analysis.Convergence(ctx, field, integrators.NewRK4(), 0, y0, 1, []int{10, 20, 40})
//	// rows[i].Order ~ 4
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(field, stepper, y0, 0, 0.01, 5000, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
