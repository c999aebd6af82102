package calculus

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrStepSize    = errors.New("calculus: step size must be positive")
	ErrSampleCount = errors.New("calculus: invalid sample count")
)

// Func is a scalar function of one variable.
type Func func(x float64) float64

func checkStep(h float64) error {
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return fmt.Errorf("%w: got %g", ErrStepSize, h)
	}
	return nil
}

var builtins = map[string]Func{
	"square": func(x float64) float64 { return x * x },
	"cube":   func(x float64) float64 { return x * x * x },
	"sin":    math.Sin,
	"cos":    math.Cos,
	"exp":    math.Exp,
	"sqrt":   math.Sqrt,
}

// Builtin looks up one of the named scalar functions used by the CLI.
func Builtin(name string) (Func, error) {
	f, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown function: %s (available: %v)", name, BuiltinNames())
	}
	return f, nil
}

func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
