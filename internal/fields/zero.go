package fields

import (
	"fmt"

	"github.com/san-kum/rkode/internal/dynamo"
)

// Zero is the trivial field f = 0 of a configurable dimension.
type Zero struct {
	dim int
}

func NewZero(dim int) *Zero { return &Zero{dim: dim} }

func (z *Zero) Name() string { return "zero" }
func (z *Zero) Order() int   { return z.dim }

func (z *Zero) Eval(_ float64, y dynamo.State) dynamo.State {
	return make(dynamo.State, len(y))
}

func (z *Zero) DefaultState() dynamo.State {
	s := make(dynamo.State, z.dim)
	for i := range s {
		s[i] = 1
	}
	return s
}

func (z *Zero) Solution(_ float64, y0 dynamo.State, _ float64) dynamo.State {
	return y0.Clone()
}

func (z *Zero) GetParams() map[string]float64 {
	return map[string]float64{"order": float64(z.dim)}
}

func (z *Zero) SetParam(name string, value float64) error {
	if name != "order" {
		return unknownParam(z.Name(), name)
	}
	if value < 1 || value != float64(int(value)) {
		return fmt.Errorf("zero: order must be a positive integer, got %g", value)
	}
	z.dim = int(value)
	return nil
}
