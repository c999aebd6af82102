package metrics

import (
	"math"

	"github.com/san-kum/rkode/internal/dynamo"
)

// Energy reports the mean conserved quantity over the observed points.
type Energy struct {
	name        string
	field       dynamo.Hamiltonian
	samples     int
	totalEnergy float64
}

func NewEnergy(field dynamo.Hamiltonian) *Energy {
	return &Energy{
		name:  "energy",
		field: field,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(_ float64, y dynamo.State) {
	e.totalEnergy += e.field.Energy(y)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative deviation from the energy of the
// first observed point. Fields without a conserved quantity report zero.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	field         dynamo.VectorField
}

func NewEnergyDrift(field dynamo.VectorField) *EnergyDrift {
	return &EnergyDrift{
		name:  "energy_drift",
		field: field,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(_ float64, y dynamo.State) {
	ec, ok := e.field.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	energy := ec.Energy(y)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// Final is the relative drift at the last observed point.
func (e *EnergyDrift) Final() float64 {
	if e.initialEnergy == 0 {
		return 0
	}
	return math.Abs(e.currentEnergy-e.initialEnergy) / math.Abs(e.initialEnergy)
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// For returns the metrics that make sense for field.
func For(field dynamo.VectorField) []dynamo.Metric {
	ms := []dynamo.Metric{NewMaxNorm()}
	if h, ok := field.(dynamo.Hamiltonian); ok {
		ms = append(ms, NewEnergy(h), NewEnergyDrift(field))
	}
	return ms
}
