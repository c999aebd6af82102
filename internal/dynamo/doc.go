// Package dynamo provides the core primitives for fixed-step integration of
// ordinary differential equation systems.
//
// The package defines the types shared by every solver and sink:
//
//   - [State]: vector representing the system state, length = order
//   - [VectorField]: right-hand side of the system (dy/dt = f(t, y))
//   - [Stepper]: one explicit Runge-Kutta method (rk1..rk4)
//   - [Sink]: append-only destination for (t, y) records
//   - [Config]: order, initial time, step size and iteration count
//
// # Example
//
//	field := dynamo.FieldFunc(func(t float64, y dynamo.State) dynamo.State {
//	    return dynamo.State{-y[0]}
//	})
//	cfg := dynamo.Config{Order: 1, T0: 0, H: 0.1, N: 10}
//	result, err := sim.Integrate(ctx, field, integrators.NewRK4(), cfg, dynamo.State{1}, sink)
//
// # Errors
//
// Failures are reported as [*ConfigError], [*DimensionError] and
// [*SinkError], which match [ErrConfig], [ErrDimension] and [ErrSink]
// through errors.Is.
package dynamo
