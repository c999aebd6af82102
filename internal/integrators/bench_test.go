package integrators

import (
	"testing"

	"github.com/san-kum/rkode/internal/dynamo"
)

type benchOscillator struct{}

func (b *benchOscillator) Eval(t float64, x dynamo.State) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

type benchChain struct{}

func (b *benchChain) Eval(t float64, x dynamo.State) dynamo.State {
	dx := make(dynamo.State, 20)
	for i := 0; i < 5; i++ {
		dx[i*4] = x[i*4+2]
		dx[i*4+1] = x[i*4+3]
		dx[i*4+2] = -x[i*4] * 0.1
		dx[i*4+3] = -x[i*4+1] * 0.1
	}
	return dx
}

func benchStepper(b *testing.B, s dynamo.Stepper, f dynamo.VectorField, x dynamo.State, dt float64) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		next, err := s.Step(f, 0, dt, x)
		if err != nil {
			b.Fatal(err)
		}
		x = next
	}
}

func BenchmarkEuler(b *testing.B) {
	benchStepper(b, NewEuler(), &benchOscillator{}, dynamo.State{1.0, 0.0}, 0.01)
}

func BenchmarkRK2(b *testing.B) {
	benchStepper(b, NewRK2(), &benchOscillator{}, dynamo.State{1.0, 0.0}, 0.01)
}

func BenchmarkRK3(b *testing.B) {
	benchStepper(b, NewRK3(), &benchOscillator{}, dynamo.State{1.0, 0.0}, 0.01)
}

func BenchmarkRK4(b *testing.B) {
	benchStepper(b, NewRK4(), &benchOscillator{}, dynamo.State{1.0, 0.0}, 0.01)
}

func BenchmarkRK4_Chain20(b *testing.B) {
	x := make(dynamo.State, 20)
	for i := range x {
		x[i] = float64(i) * 0.1
	}
	benchStepper(b, NewRK4(), &benchChain{}, x, 0.001)
}
