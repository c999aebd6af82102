package trajectory

import (
	"fmt"

	"github.com/san-kum/rkode/internal/dynamo"
)

// Trajectory is an ordered sequence of (t, y) points.
type Trajectory struct {
	Times  []float64
	States []dynamo.State
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

func (tr *Trajectory) At(i int) (float64, dynamo.State) {
	return tr.Times[i], tr.States[i]
}

func (tr *Trajectory) Last() (float64, dynamo.State, bool) {
	if len(tr.Times) == 0 {
		return 0, nil, false
	}
	i := len(tr.Times) - 1
	return tr.Times[i], tr.States[i], true
}

// Order returns the state dimension, or 0 for an empty trajectory.
func (tr *Trajectory) Order() int {
	if len(tr.States) == 0 {
		return 0
	}
	return len(tr.States[0])
}

// Component extracts one state component across all points.
func (tr *Trajectory) Component(idx int) ([]float64, error) {
	if idx < 0 || idx >= tr.Order() {
		return nil, fmt.Errorf("component %d out of range [0, %d)", idx, tr.Order())
	}
	out := make([]float64, len(tr.States))
	for i, s := range tr.States {
		out[i] = s[idx]
	}
	return out, nil
}

// Replay feeds every point to sink in order.
func (tr *Trajectory) Replay(sink dynamo.Sink) error {
	for i := range tr.Times {
		if err := sink.Record(tr.Times[i], tr.States[i]); err != nil {
			return err
		}
	}
	return nil
}

// Memory is a Sink that accumulates a Trajectory.
type Memory struct {
	traj Trajectory
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Record(t float64, y dynamo.State) error {
	m.traj.Times = append(m.traj.Times, t)
	m.traj.States = append(m.traj.States, y.Clone())
	return nil
}

func (m *Memory) Len() int { return m.traj.Len() }

func (m *Memory) Trajectory() *Trajectory { return &m.traj }
