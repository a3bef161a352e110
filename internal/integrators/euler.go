package integrators

import (
	"github.com/san-kum/eulerlab/internal/dynamo"
	"github.com/san-kum/eulerlab/internal/physics"
)

// Explicit is the forward Euler rule: both components use only the previous state.
type Explicit struct {
	system *physics.Oscillator
}

func NewExplicit() *Explicit {
	return &Explicit{system: physics.NewOscillator()}
}

func (e *Explicit) Name() string { return "explicit" }

func (e *Explicit) Step(x dynamo.State, h float64) dynamo.State {
	d := e.system.Derive(x)
	return dynamo.State{
		X: x.X + h*d.X,
		V: x.V + h*d.V,
	}
}
