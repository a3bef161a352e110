// Package dynamo provides the core primitives shared by the integrators,
// the simulator and the experiment routines.
//
// The package defines:
//
//   - [State]: position/velocity pair of the unit oscillator x'' = -x
//   - [Integrator]: one-step update rule with fixed step size h
//   - [Metric]: observer fed with every materialized state
//   - [Config]: step size and step count of a run
//
// # Example
//
//	integ := integrators.NewSymplectic()
//	s := sim.New(integ)
//	s.AddMetric(metrics.NewEnergyDrift())
//	res, err := s.Run(dynamo.State{X: 1}, dynamo.Config{H: 0.01, NumSteps: 1000})
//
// All values are plain data; nothing in this package holds shared state.
package dynamo
