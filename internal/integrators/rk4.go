package integrators

import "github.com/san-kum/rkode/internal/dynamo"

// RK4 is the classic four-stage method.
type RK4 struct {
	pools dynamo.Pools
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }
func (r *RK4) Stages() int  { return 4 }
func (r *RK4) Order() int   { return 4 }

func (r *RK4) Step(f dynamo.VectorField, t, h float64, y dynamo.State) (dynamo.State, error) {
	n := len(y)
	ws := newWorkspace(&r.pools, n)
	defer ws.release()

	k1, err := eval(f, t, y)
	if err != nil {
		return nil, err
	}

	ypk1 := ws.stage()
	for i := 0; i < n; i++ {
		ypk1[i] = y[i] + 0.5*h*k1[i]
	}
	k2, err := eval(f, t+0.5*h, ypk1)
	if err != nil {
		return nil, err
	}

	ypk2 := ws.stage()
	for i := 0; i < n; i++ {
		ypk2[i] = y[i] + 0.5*h*k2[i]
	}
	k3, err := eval(f, t+0.5*h, ypk2)
	if err != nil {
		return nil, err
	}

	ypk3 := ws.stage()
	for i := 0; i < n; i++ {
		ypk3[i] = y[i] + h*k3[i]
	}
	k4, err := eval(f, t+h, ypk3)
	if err != nil {
		return nil, err
	}

	result := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		result[i] = y[i] + h*(k1[i]+2*k2[i]+2*k3[i]+k4[i])/6.0
	}
	return result, nil
}
