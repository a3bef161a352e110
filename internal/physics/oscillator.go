package physics

import (
	"math"

	"github.com/san-kum/eulerlab/internal/dynamo"
)

// Oscillator is the unit mass on a unit spring, x'' = -x.
// Angular frequency is 1 so one period is 2π time units.
type Oscillator struct{}

func NewOscillator() *Oscillator {
	return &Oscillator{}
}

func (o *Oscillator) Derive(x dynamo.State) dynamo.State {
	return dynamo.State{X: x.V, V: -x.X}
}

// Energy is x² + v², twice the mechanical energy of the unit system.
func (o *Oscillator) Energy(x dynamo.State) float64 {
	return x.X*x.X + x.V*x.V
}

func (o *Oscillator) Period() float64 {
	return 2 * math.Pi
}

func (o *Oscillator) Frequency() float64 {
	return 1 / o.Period()
}

// Exact evaluates the closed-form solution starting from x0 at time t (radians).
func Exact(x0 dynamo.State, t float64) dynamo.State {
	sin, cos := math.Sincos(t)
	return dynamo.State{
		X: x0.X*cos + x0.V*sin,
		V: -x0.X*sin + x0.V*cos,
	}
}
