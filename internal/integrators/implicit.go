package integrators

import "github.com/san-kum/eulerlab/internal/dynamo"

// Implicit is the backward Euler rule. The system
//
//	x' = x + h*v'
//	v' = v - h*x'
//
// is linear, so it is solved in closed form; 1+h² >= 1 keeps the division safe.
type Implicit struct{}

func NewImplicit() *Implicit {
	return &Implicit{}
}

func (i *Implicit) Name() string { return "implicit" }

func (i *Implicit) Step(x dynamo.State, h float64) dynamo.State {
	d := 1 + h*h
	return dynamo.State{
		X: (x.X + h*x.V) / d,
		V: (x.V - h*x.X) / d,
	}
}
