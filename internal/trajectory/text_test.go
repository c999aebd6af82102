package trajectory

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/integrators"
	"github.com/san-kum/rkode/internal/sim"
)

var constant = dynamo.FieldFunc(func(t float64, y dynamo.State) dynamo.State {
	return dynamo.State{1, -2}
})

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestTextTableFormat(t *testing.T) {
	g := newGoldie(t)

	for _, s := range integrators.All() {
		t.Run(s.Name(), func(t *testing.T) {
			var buf bytes.Buffer
			cfg := dynamo.Config{Order: 2, T0: 0, H: 0.5, N: 3}

			_, err := sim.Integrate(context.Background(), constant, s, cfg, dynamo.State{0, 1}, NewText(&buf, 2))
			require.NoError(t, err)

			g.Assert(t, "constant_"+s.Name(), buf.Bytes())
		})
	}
}

func TestTextInitialOnly(t *testing.T) {
	var buf bytes.Buffer
	cfg := dynamo.Config{Order: 1, H: 0.1, N: 0}

	_, err := sim.Integrate(context.Background(), constant, integrators.NewRK4(), cfg, dynamo.State{1}, NewText(&buf, 1))
	require.NoError(t, err)

	newGoldie(t).Assert(t, "initial_only", buf.Bytes())
}

func TestTextNoOutputOnInvalidConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := dynamo.Config{Order: 1, H: 0, N: 5}

	_, err := sim.Integrate(context.Background(), constant, integrators.NewRK4(), cfg, dynamo.State{1}, NewText(&buf, 1))
	require.ErrorIs(t, err, dynamo.ErrConfig)
	assert.Zero(t, buf.Len())
}

func TestTextRejectsWrongLength(t *testing.T) {
	var buf bytes.Buffer
	sink := NewText(&buf, 2)

	err := sink.Record(0, dynamo.State{1, 2, 3})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

type brokenWriter struct{}

var errBroken = errors.New("broken pipe")

func (brokenWriter) Write(p []byte) (int, error) { return 0, errBroken }

func TestTextPropagatesWriteErrors(t *testing.T) {
	cfg := dynamo.Config{Order: 1, H: 0.1, N: 3}
	_, err := sim.Integrate(context.Background(), constant, integrators.NewEuler(), cfg, dynamo.State{1}, NewText(brokenWriter{}, 1))

	require.ErrorIs(t, err, dynamo.ErrSink)
	assert.ErrorIs(t, err, errBroken)
}
