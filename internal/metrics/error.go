package metrics

import (
	"math"

	"github.com/san-kum/eulerlab/internal/dynamo"
	"github.com/san-kum/eulerlab/internal/physics"
)

// MaxError tracks the global position error against the closed-form solution.
// The first observed sample is taken as the initial condition.
type MaxError struct {
	name     string
	x0       dynamo.State
	samples  int
	maxError float64
}

func NewMaxError() *MaxError {
	return &MaxError{name: "max_error"}
}

func (m *MaxError) Name() string { return m.name }

func (m *MaxError) Observe(x dynamo.State, t float64) {
	if m.samples == 0 {
		m.x0 = x
	}
	m.samples++

	diff := x.Sub(physics.Exact(m.x0, t))
	m.maxError = math.Max(m.maxError, math.Abs(diff.X))
}

func (m *MaxError) Value() float64 { return m.maxError }

func (m *MaxError) Reset() {
	m.x0 = dynamo.State{}
	m.samples = 0
	m.maxError = 0
}
