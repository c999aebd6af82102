package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/rkode/internal/experiment"
)

func build(params map[string]float64) (*experiment.Experiment, error) {
	exp := experiment.New(experiment.Config{
		Field:  "pendulum",
		Method: "rk4",
		H:      0.01,
		N:      200,
		Y0:     []float64{1, 0},
		Params: params,
	}, experiment.NewRegistry())
	return exp, exp.Setup()
}

func TestGridSearchMinimizesMeanEnergy(t *testing.T) {
	gs, err := NewGridSearch([]string{"damping"}, [][]float64{Linspace(0, 2, 5)})
	if err != nil {
		t.Fatal(err)
	}

	best, val, err := gs.Search(context.Background(), build, "energy")
	if err != nil {
		t.Fatal(err)
	}
	// more damping dissipates more energy over the run
	if best["damping"] != 2 {
		t.Errorf("expected damping 2, got %v", best)
	}
	if val <= 0 {
		t.Errorf("expected positive mean energy, got %g", val)
	}
}

func TestGridSearchNoCandidate(t *testing.T) {
	gs, err := NewGridSearch([]string{"nonexistent"}, [][]float64{{1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = gs.Search(context.Background(), build, "energy")
	if !errors.Is(err, ErrNoCandidate) {
		t.Errorf("expected ErrNoCandidate, got %v", err)
	}
}

func TestGridSearchCancelled(t *testing.T) {
	gs, err := NewGridSearch([]string{"damping"}, [][]float64{{0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := gs.Search(ctx, build, "energy"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewGridSearchMismatch(t *testing.T) {
	if _, err := NewGridSearch([]string{"a", "b"}, [][]float64{{1}}); err == nil {
		t.Error("expected error for mismatched ranges")
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 3)
	if len(got) != 3 || got[0] != 0 || got[1] != 0.5 || got[2] != 1 {
		t.Errorf("unexpected linspace %v", got)
	}
	if got := Linspace(2, 3, 1); len(got) != 1 || got[0] != 2 {
		t.Errorf("unexpected single point %v", got)
	}
}
