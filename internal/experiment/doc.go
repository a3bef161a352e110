// Package experiment contains the numerical experiments comparing explicit,
// implicit and symplectic Euler on the unit oscillator.
//
// Each routine materializes one or more trajectories, optionally compares
// them with the analytical solution and writes one to three figures with
// fixed names into [Runner.Dir]:
//
//	r := experiment.NewRunner(".", "pdf", zerolog.Nop())
//	maxErr, err := r.PlotError(1, 0, 0.01, 1000)
//
// Figures use black for the numerical (or implicit) series, blue for the
// analytical (or explicit) series and red for the symplectic series.
// Existing files are overwritten.
package experiment
