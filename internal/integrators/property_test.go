package integrators

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/san-kum/eulerlab/internal/dynamo"
)

func allIntegrators() []dynamo.Integrator {
	return []dynamo.Integrator{NewExplicit(), NewImplicit(), NewSymplectic()}
}

// TestFirstElement_PropertyBased verifies every sequence emits x0 unchanged
// before applying any update.
func TestFirstElement_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	for _, integ := range allIntegrators() {
		properties.Property(integ.Name()+" starts at the initial state", prop.ForAll(
			func(x0, v0, h float64) bool {
				first := Take(Sequence(integ, dynamo.State{X: x0, V: v0}, h), 1)
				return len(first) == 1 && first[0].X == x0 && first[0].V == v0
			},
			gen.Float64Range(-1e6, 1e6),
			gen.Float64Range(-1e6, 1e6),
			gen.Float64Range(1e-6, 1.0),
		))
	}

	properties.TestingRun(t)
}

// TestImplicitInversion_PropertyBased checks that the implicit step solves
// x_n = x_{n+1} - h*v_{n+1} and v_n = v_{n+1} + h*x_{n+1}.
func TestImplicitInversion_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	integ := NewImplicit()
	properties.Property("implicit step inverts the backward system", prop.ForAll(
		func(x0, v0, h float64) bool {
			next := integ.Step(dynamo.State{X: x0, V: v0}, h)
			tol := 1e-9 * (1 + math.Abs(x0) + math.Abs(v0))
			return math.Abs(next.X-h*next.V-x0) <= tol &&
				math.Abs(next.V+h*next.X-v0) <= tol
		},
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-2, 2),
	))

	properties.TestingRun(t)
}

// TestSymplecticInvariant_PropertyBased checks the exactly conserved
// quadratic form x² + v² + h*x*v of the symplectic map.
func TestSymplecticInvariant_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	integ := NewSymplectic()
	properties.Property("symplectic step conserves the modified energy", prop.ForAll(
		func(x0, v0, h float64) bool {
			q := func(s dynamo.State) float64 { return s.X*s.X + s.V*s.V + h*s.X*s.V }
			start := dynamo.State{X: x0, V: v0}
			q0 := q(start)
			states := Take(Sequence(integ, start, h), 200)
			for _, s := range states {
				if math.Abs(q(s)-q0) > 1e-9*(1+math.Abs(q0)) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(-10, 10),
		gen.Float64Range(-10, 10),
		gen.Float64Range(1e-4, 0.5),
	))

	properties.TestingRun(t)
}

// TestSymplecticEnergyBand_PropertyBased checks that x² + v² stays within
// [(1-h/2)/(1+h/2), (1+h/2)/(1-h/2)] times its initial value from any start.
func TestSymplecticEnergyBand_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	integ := NewSymplectic()
	properties.Property("symplectic energy stays in the modified band", prop.ForAll(
		func(x0, v0, h float64) bool {
			start := dynamo.State{X: x0, V: v0}
			e0 := x0*x0 + v0*v0
			if e0 < 1e-6 {
				return true
			}
			lo := (1 - h/2) / (1 + h/2)
			hi := (1 + h/2) / (1 - h/2)
			for _, s := range Take(Sequence(integ, start, h), 500) {
				ratio := (s.X*s.X + s.V*s.V) / e0
				if ratio < lo-1e-9 || ratio > hi+1e-9 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(-10, 10),
		gen.Float64Range(-10, 10),
		gen.Float64Range(1e-3, 0.5),
	))

	properties.TestingRun(t)
}

func TestDeterminism_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	for _, integ := range allIntegrators() {
		properties.Property(integ.Name()+" is reproducible", prop.ForAll(
			func(x0, v0 float64) bool {
				a := Take(Sequence(integ, dynamo.State{X: x0, V: v0}, 0.01), 100)
				b := Take(Sequence(integ, dynamo.State{X: x0, V: v0}, 0.01), 100)
				for i := range a {
					if a[i] != b[i] {
						return false
					}
				}
				return true
			},
			gen.Float64Range(-5, 5),
			gen.Float64Range(-5, 5),
		))
	}

	properties.TestingRun(t)
}
