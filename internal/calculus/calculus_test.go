package calculus

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x float64) float64 { return x * x }

func TestDifferences(t *testing.T) {
	tests := []struct {
		name string
		fn   Estimator
		want float64
		tol  float64
	}{
		// f(x) = x^2 at x = 3 with h = 0.5
		{"backward", Backward, 5.5, 1e-12},
		{"forward", Forward, 6.5, 1e-12},
		{"central", Central, 6.0, 1e-12},
		{"richardson", Richardson, 6.0, 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(square, 3, 0.5)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tt.tol)
		})
	}
}

func TestRichardsonBeatsCentral(t *testing.T) {
	h := 0.4
	want := math.Cos(1.0)

	c, err := Central(math.Sin, 1.0, h)
	require.NoError(t, err)
	r, err := Richardson(math.Sin, 1.0, h)
	require.NoError(t, err)

	assert.Less(t, math.Abs(r-want), math.Abs(c-want)/10)
}

func TestDifferencesRejectBadStep(t *testing.T) {
	for _, e := range Estimators {
		for _, h := range []float64{0, -0.1, math.NaN()} {
			_, err := e.Fn(square, 1, h)
			assert.ErrorIs(t, err, ErrStepSize, "%s h=%v", e.Name, h)
		}
	}
}

func TestQuadrature(t *testing.T) {
	// integral of x^2 over [0, 5] is 125/3
	exact := 125.0 / 3.0

	mid, err := Midpoint(square, 0, 5, 10)
	require.NoError(t, err)
	assert.InDelta(t, 41.5625, mid, 1e-9)

	trap, err := Trapezoid(square, 0, 5, 10)
	require.NoError(t, err)
	assert.InDelta(t, 41.875, trap, 1e-9)

	simp, err := Simpson(square, 0, 5, 10)
	require.NoError(t, err)
	assert.InDelta(t, exact, simp, 1e-9)

	assert.Less(t, math.Abs(mid-exact), math.Abs(trap-exact))
}

func TestQuadratureReversedInterval(t *testing.T) {
	fwd, err := Simpson(math.Sin, 0, math.Pi, 20)
	require.NoError(t, err)
	rev, err := Simpson(math.Sin, math.Pi, 0, 20)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, fwd, 1e-4)
	assert.InDelta(t, -fwd, rev, 1e-12)
}

func TestQuadratureRejectsBadCounts(t *testing.T) {
	_, err := Midpoint(square, 0, 1, 0)
	assert.ErrorIs(t, err, ErrSampleCount)

	_, err = Trapezoid(square, 0, 1, -3)
	assert.ErrorIs(t, err, ErrSampleCount)

	for _, n := range []int{0, 1, 3, 7} {
		_, err = Simpson(square, 0, 1, n)
		assert.ErrorIs(t, err, ErrSampleCount, "n=%d", n)
	}
}

func TestBuiltins(t *testing.T) {
	f, err := Builtin("square")
	require.NoError(t, err)
	assert.Equal(t, 9.0, f(3))

	_, err = Builtin("tan")
	assert.Error(t, err)

	assert.Contains(t, BuiltinNames(), "exp")
}
