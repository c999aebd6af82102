package fields

import "github.com/san-kum/rkode/internal/dynamo"

type Rossler struct{ a, b, c float64 }

func NewRossler() *Rossler      { return &Rossler{0.2, 0.2, 5.7} }
func (r *Rossler) Name() string { return "rossler" }
func (r *Rossler) Order() int   { return 3 }

// Eval calculates the Rossler attractor derivatives.
func (r *Rossler) Eval(_ float64, s dynamo.State) dynamo.State {
	return dynamo.State{-s[1] - s[2], s[0] + r.a*s[1], r.b + s[2]*(s[0]-r.c)}
}
func (r *Rossler) DefaultState() dynamo.State { return dynamo.State{1.0, 1.0, 1.0} }
func (r *Rossler) GetParams() map[string]float64 {
	return map[string]float64{"a": r.a, "b": r.b, "c": r.c}
}
func (r *Rossler) SetParam(n string, v float64) error {
	switch n {
	case "a":
		r.a = v
	case "b":
		r.b = v
	case "c":
		r.c = v
	default:
		return unknownParam(r.Name(), n)
	}
	return nil
}
