package fields

import (
	"math"

	"github.com/san-kum/rkode/internal/dynamo"
)

// Decay is exponential decay dy/dt = -rate * y.
type Decay struct {
	rate float64
}

func NewDecay() *Decay { return &Decay{rate: 1.0} }

func (d *Decay) Name() string { return "decay" }
func (d *Decay) Order() int   { return 1 }

func (d *Decay) Eval(_ float64, y dynamo.State) dynamo.State {
	return dynamo.State{-d.rate * y[0]}
}

func (d *Decay) DefaultState() dynamo.State { return dynamo.State{1.0} }

func (d *Decay) Solution(t0 float64, y0 dynamo.State, t float64) dynamo.State {
	return dynamo.State{y0[0] * math.Exp(-d.rate*(t-t0))}
}

func (d *Decay) GetParams() map[string]float64 {
	return map[string]float64{"rate": d.rate}
}

func (d *Decay) SetParam(name string, value float64) error {
	if name != "rate" {
		return unknownParam(d.Name(), name)
	}
	d.rate = value
	return nil
}
