package integrators

import "github.com/san-kum/rkode/internal/dynamo"

// eval performs one stage evaluation and checks the derivative length.
func eval(f dynamo.VectorField, t float64, y dynamo.State) (dynamo.State, error) {
	k := f.Eval(t, y)
	if len(k) != len(y) {
		return nil, &dynamo.DimensionError{Step: -1, Time: t, Want: len(y), Got: len(k), Source: "vector field"}
	}
	return k, nil
}

// workspace holds the stage input vectors of a single step.
type workspace struct {
	pool *dynamo.StatePool
	held []dynamo.State
}

func newWorkspace(pools *dynamo.Pools, n int) *workspace {
	return &workspace{pool: pools.For(n), held: make([]dynamo.State, 0, 3)}
}

func (w *workspace) stage() dynamo.State {
	s := w.pool.Get()
	w.held = append(w.held, s)
	return s
}

func (w *workspace) release() {
	for _, s := range w.held {
		w.pool.Put(s)
	}
	w.held = w.held[:0]
}
