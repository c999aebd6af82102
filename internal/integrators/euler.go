package integrators

import "github.com/san-kum/rkode/internal/dynamo"

// Euler is the one-stage explicit method (rk1).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "rk1" }
func (e *Euler) Stages() int  { return 1 }
func (e *Euler) Order() int   { return 1 }

func (e *Euler) Step(f dynamo.VectorField, t, h float64, y dynamo.State) (dynamo.State, error) {
	k1, err := eval(f, t, y)
	if err != nil {
		return nil, err
	}
	result := make(dynamo.State, len(y))
	for i := range y {
		result[i] = y[i] + h*k1[i]
	}
	return result, nil
}
