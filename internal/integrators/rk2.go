package integrators

import "github.com/san-kum/rkode/internal/dynamo"

// RK2 is the two-stage trapezoidal (Heun) method.
type RK2 struct {
	pools dynamo.Pools
}

func NewRK2() *RK2 {
	return &RK2{}
}

func (r *RK2) Name() string { return "rk2" }
func (r *RK2) Stages() int  { return 2 }
func (r *RK2) Order() int   { return 2 }

func (r *RK2) Step(f dynamo.VectorField, t, h float64, y dynamo.State) (dynamo.State, error) {
	n := len(y)
	ws := newWorkspace(&r.pools, n)
	defer ws.release()

	k1, err := eval(f, t, y)
	if err != nil {
		return nil, err
	}

	ypk1 := ws.stage()
	for i := 0; i < n; i++ {
		ypk1[i] = h*k1[i] + y[i]
	}
	k2, err := eval(f, t+h, ypk1)
	if err != nil {
		return nil, err
	}

	result := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		result[i] = y[i] + 0.5*h*(k1[i]+k2[i])
	}
	return result, nil
}
