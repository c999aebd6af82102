package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// VectorField is the right-hand side of an ODE system. Eval must return a
// vector of the same length as y and must not retain or modify y.
type VectorField interface {
	Eval(t float64, y State) State
}

// FieldFunc adapts an ordinary function or closure to VectorField.
type FieldFunc func(t float64, y State) State

func (f FieldFunc) Eval(t float64, y State) State { return f(t, y) }

// Hamiltonian is implemented by fields with a conserved quantity.
type Hamiltonian interface {
	Energy(y State) float64
}

// Exact is implemented by fields with a closed-form solution.
type Exact interface {
	Solution(t0 float64, y0 State, t float64) State
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Stepper advances a state by one fixed step of size h. The input state is
// never modified; the returned state is freshly allocated.
type Stepper interface {
	Name() string
	Stages() int
	Order() int
	Step(f VectorField, t, h float64, y State) (State, error)
}

// Sink receives one record per trajectory point, in call order.
type Sink interface {
	Record(t float64, y State) error
}

type Metric interface {
	Name() string
	Observe(t float64, y State)
	Value() float64
	Reset()
}

type Config struct {
	Order int
	T0    float64
	H     float64
	N     int

	// ValidateState aborts the run with ErrUnstable once a step yields NaN or Inf.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Order: 1,
		T0:    0,
		H:     0.01,
		N:     1000,
	}
}

// Validate checks the step size and iteration count. Dimension checks need
// the initial state and live in the driver.
func (c Config) Validate() error {
	if c.H <= 0 || math.IsNaN(c.H) || math.IsInf(c.H, 0) {
		return &ConfigError{Field: "h", Value: c.H, Reason: "step size must be positive and finite"}
	}
	if c.N < 0 {
		return &ConfigError{Field: "n", Value: float64(c.N), Reason: "iteration count must not be negative"}
	}
	return nil
}

// TFinal is the nominal end time t0 + n*h.
func (c Config) TFinal() float64 {
	return c.T0 + float64(c.N)*c.H
}

type Result struct {
	Method      string
	Steps       int
	Evaluations int
	FinalTime   float64
	Final       State
	Metrics     map[string]float64
}

func (r *Result) String() string {
	return fmt.Sprintf("%s: %d steps, %d evaluations, t=%g", r.Method, r.Steps, r.Evaluations, r.FinalTime)
}
