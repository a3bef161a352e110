// Package physics provides the unit harmonic oscillator x'' = -x and its
// closed-form solution.
//
//   - [Oscillator]: derivative, energy (x²+v²) and period of the system
//   - [Exact]: analytical state at time t from an initial state
//
// [Exact] is the reference every numerical trajectory is compared against:
//
//	ref := physics.Exact(dynamo.State{X: 1}, t)
//	err := math.Abs(numerical.X - ref.X)
package physics
