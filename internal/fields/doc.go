// Package fields provides ready-made vector fields for the integrators.
//
// Each field implements [dynamo.VectorField] plus [Field] metadata:
//
//   - [Zero]: f = 0, any dimension
//   - [Decay]: dy/dt = -k y
//   - [Harmonic]: simple harmonic oscillator, x'' = -w^2 x
//   - [Pendulum]: damped nonlinear pendulum
//   - [VanDerPol]: relaxation oscillator with a limit cycle
//   - [Lorenz]: butterfly attractor
//   - [Rossler]: spiral chaos
//   - [Duffing]: forced nonlinear oscillator, explicitly time dependent
//
// Fields with a closed-form solution implement [dynamo.Exact]; fields with
// a conserved quantity implement [dynamo.Hamiltonian]. All fields implement
// [dynamo.Configurable] for parameter overrides.
package fields
