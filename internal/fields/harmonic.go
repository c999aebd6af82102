package fields

import (
	"fmt"
	"math"

	"github.com/san-kum/rkode/internal/dynamo"
)

// Harmonic implements the simple harmonic oscillator.
// State: [x, v] where v = dx/dt
// Equations:
//
//	dx/dt = v
//	dv/dt = -w^2 x
type Harmonic struct {
	omega float64
}

func NewHarmonic() *Harmonic { return &Harmonic{omega: 1.0} }

func (h *Harmonic) Name() string { return "harmonic" }
func (h *Harmonic) Order() int   { return 2 }

func (h *Harmonic) Eval(_ float64, y dynamo.State) dynamo.State {
	return dynamo.State{y[1], -h.omega * h.omega * y[0]}
}

func (h *Harmonic) DefaultState() dynamo.State { return dynamo.State{1.0, 0.0} }

func (h *Harmonic) Energy(y dynamo.State) float64 {
	return 0.5 * (y[1]*y[1] + h.omega*h.omega*y[0]*y[0])
}

func (h *Harmonic) Solution(t0 float64, y0 dynamo.State, t float64) dynamo.State {
	w := h.omega
	s, c := math.Sincos(w * (t - t0))
	return dynamo.State{
		y0[0]*c + y0[1]/w*s,
		-y0[0]*w*s + y0[1]*c,
	}
}

func (h *Harmonic) GetParams() map[string]float64 {
	return map[string]float64{"omega": h.omega}
}

func (h *Harmonic) SetParam(name string, value float64) error {
	if name != "omega" {
		return unknownParam(h.Name(), name)
	}
	if value <= 0 {
		return fmt.Errorf("harmonic: omega must be positive, got %g", value)
	}
	h.omega = value
	return nil
}
