package metrics

import (
	"math"

	"github.com/san-kum/rkode/internal/dynamo"
)

// Stability is the fraction of observed points whose components all stay
// within the threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(_ float64, y dynamo.State) {
	s.samples++
	for _, val := range y {
		if math.IsNaN(val) || math.Abs(val) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// MaxNorm records the largest Euclidean norm seen over a run.
type MaxNorm struct {
	max float64
}

func NewMaxNorm() *MaxNorm { return &MaxNorm{} }

func (m *MaxNorm) Name() string { return "max_norm" }

func (m *MaxNorm) Observe(_ float64, y dynamo.State) {
	if n := y.Norm(); n > m.max {
		m.max = n
	}
}

func (m *MaxNorm) Value() float64 { return m.max }

func (m *MaxNorm) Reset() { m.max = 0 }
