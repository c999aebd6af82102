package integrators

import "github.com/san-kum/rkode/internal/dynamo"

// RK3 is a three-stage method whose last stage samples the end of the
// interval at y - h*k1 + 2h*k2, with weights 1/6, 4/6, 1/6.
type RK3 struct {
	pools dynamo.Pools
}

func NewRK3() *RK3 {
	return &RK3{}
}

func (r *RK3) Name() string { return "rk3" }
func (r *RK3) Stages() int  { return 3 }
func (r *RK3) Order() int   { return 3 }

func (r *RK3) Step(f dynamo.VectorField, t, h float64, y dynamo.State) (dynamo.State, error) {
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

	ymk1pk2 := ws.stage()
	for i := 0; i < n; i++ {
		ymk1pk2[i] = y[i] - h*k1[i] + 2*h*k2[i]
	}
	k3, err := eval(f, t+h, ymk1pk2)
	if err != nil {
		return nil, err
	}

	result := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		result[i] = y[i] + h*(k1[i]+4*k2[i]+k3[i])/6.0
	}
	return result, nil
}
