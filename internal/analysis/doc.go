// Package analysis characterizes numerical trajectories of the oscillator.
//
//   - [NewPhasePortrait], [ClassifyOrbit]: phase-space geometry (closed orbit
//     versus inward or outward spiral)
//   - [DominantFrequency]: oscillation frequency from the power spectrum
//   - [ConvergenceOrder]: log-log slope of global error against step size
//
// # Orbit Classification
//
// The symplectic method keeps the radius within a band of width about h, so
//
//	orbit, _ := analysis.ClassifyOrbit(tr, h)
//
// reports [OrbitClosed] for it, [OrbitSpiralOut] for the explicit method and
// [OrbitSpiralIn] for the implicit one.
package analysis
