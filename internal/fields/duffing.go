package fields

import (
	"math"

	"github.com/san-kum/rkode/internal/dynamo"
)

// Duffing implements a nonlinear forced oscillator. The forcing term makes
// the field depend on t explicitly.
// State: [x, v]
//
//	dx/dt = v
//	dv/dt = -delta v - alpha x - beta x^3 + gamma cos(omega t)
type Duffing struct {
	Alpha, Beta, Delta, Gamma, Omega float64
}

func NewDuffing() *Duffing {
	return &Duffing{-1.0, 1.0, 0.3, 0.5, 1.2}
}

func (d *Duffing) Name() string { return "duffing" }
func (d *Duffing) Order() int   { return 2 }

func (d *Duffing) Eval(t float64, s dynamo.State) dynamo.State {
	x, v := s[0], s[1]
	return dynamo.State{v, -d.Delta*v - d.Alpha*x - d.Beta*x*x*x + d.Gamma*math.Cos(d.Omega*t)}
}

func (d *Duffing) DefaultState() dynamo.State { return dynamo.State{1.0, 0.0} }

func (d *Duffing) GetParams() map[string]float64 {
	return map[string]float64{"alpha": d.Alpha, "beta": d.Beta, "delta": d.Delta, "gamma": d.Gamma, "omega": d.Omega}
}

func (d *Duffing) SetParam(n string, v float64) error {
	switch n {
	case "alpha":
		d.Alpha = v
	case "beta":
		d.Beta = v
	case "delta":
		d.Delta = v
	case "gamma":
		d.Gamma = v
	case "omega":
		d.Omega = v
	default:
		return unknownParam(d.Name(), n)
	}
	return nil
}
