package metrics

import (
	"github.com/san-kum/eulerlab/internal/dynamo"
)

// Stability is the fraction of samples whose phase radius stays within
// threshold times the initial radius.
type Stability struct {
	name       string
	threshold  float64
	radius0    float64
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

func (s *Stability) Observe(x dynamo.State, t float64) {
	r := x.Norm()
	if s.samples == 0 {
		s.radius0 = r
	}
	s.samples++
	if r > s.threshold*s.radius0 {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.radius0 = 0
	s.violations = 0
	s.samples = 0
}

// Defaults returns the metric set reported by comparisons.
func Defaults() []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewMaxError(),
		NewStability(1.05),
	}
}
