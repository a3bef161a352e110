package dynamo

import (
	"fmt"
	"math"
)

// State is the oscillator state at one time sample.
type State struct {
	X float64 // position
	V float64 // velocity
}

func (s State) IsValid() bool {
	for _, v := range [2]float64{s.X, s.V} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Norm is the phase-space radius sqrt(x²+v²).
func (s State) Norm() float64 {
	return math.Hypot(s.X, s.V)
}

func (s State) Sub(other State) State {
	return State{X: s.X - other.X, V: s.V - other.V}
}

func (s State) String() string {
	return fmt.Sprintf("(x=%.6g, v=%.6g)", s.X, s.V)
}

// Integrator advances a state by one fixed step h.
type Integrator interface {
	Name() string
	Step(x State, h float64) State
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Config struct {
	H        float64
	NumSteps int
}

func DefaultConfig() Config {
	return Config{
		H:        0.01,
		NumSteps: 1000,
	}
}

// Validate rejects configurations the experiment layer refuses to plot.
func (c Config) Validate() error {
	if c.H == 0 || math.IsNaN(c.H) || math.IsInf(c.H, 0) {
		return fmt.Errorf("%w: step size h=%v", ErrParameterBounds, c.H)
	}
	if c.NumSteps < 1 {
		return fmt.Errorf("%w: num steps=%d", ErrParameterBounds, c.NumSteps)
	}
	return nil
}
