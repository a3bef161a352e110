package experiment

import (
	"image/color"

	"github.com/san-kum/eulerlab/internal/analysis"
	"github.com/san-kum/eulerlab/internal/dynamo"
	"github.com/san-kum/eulerlab/internal/export"
	"github.com/san-kum/eulerlab/internal/integrators"
	"github.com/san-kum/eulerlab/internal/sim"
)

// Output names, without extension.
const (
	SpringMotionFile     = "explicit_spring_motion"
	SpringErrorFile      = "explicit_spring_error"
	TruncationErrorFile  = "truncation_error"
	ExplicitEnergyFile   = "energy_evolution_explicit"
	ImplicitEnergyFile   = "energy_evolution_implicit_explicit"
	ImplicitErrorFile    = "implicit_global_error"
	ImplicitPhaseFile    = "implicit_phasespace"
	ExplicitPhaseFile    = "explicit_phasespace"
	SymplecticPhaseFile  = "symplectic_phasespace"
	SymplecticEnergyFile = "symplectic_energy_evolution"
)

const truncationHalvingCount = 5

// SpringMotion plots x (black) and v (blue) against t for the explicit method.
func (r *Runner) SpringMotion(x0, v0, h float64, numSteps int) error {
	start := dynamo.State{X: x0, V: v0}
	if err := validate(start, h, numSteps); err != nil {
		return err
	}

	tr, err := r.integrate(integrators.NewExplicit(), start, h, numSteps)
	if err != nil {
		return err
	}

	return r.save(SpringMotionFile, &export.Figure{
		Title:  "Explicit Euler: spring motion",
		XLabel: "t",
		YLabel: "x, v",
		Series: []export.Series{
			{Label: "x", X: tr.T, Y: tr.X, Color: export.Black},
			{Label: "v", X: tr.T, Y: tr.V, Color: export.Blue},
		},
	})
}

// PlotError plots |analytic - numeric| of x (black) and v (blue) for the
// explicit method and returns the largest position error.
func (r *Runner) PlotError(x0, v0, h float64, numSteps int) (float64, error) {
	start := dynamo.State{X: x0, V: v0}
	if err := validate(start, h, numSteps); err != nil {
		return 0, err
	}

	tr, err := r.integrate(integrators.NewExplicit(), start, h, numSteps)
	if err != nil {
		return 0, err
	}
	ref, err := sim.Reference(start, h, numSteps)
	if err != nil {
		return 0, err
	}

	errX, err := sim.AbsError(ref.X, tr.X)
	if err != nil {
		return 0, err
	}
	errV, err := sim.AbsError(ref.V, tr.V)
	if err != nil {
		return 0, err
	}

	err = r.save(SpringErrorFile, &export.Figure{
		Title:  "Explicit Euler: global error",
		XLabel: "t",
		YLabel: "|analytic - numeric|",
		Series: []export.Series{
			{Label: "x", X: tr.T, Y: errX, Color: export.Black},
			{Label: "v", X: tr.T, Y: errV, Color: export.Blue},
		},
	})
	if err != nil {
		return 0, err
	}

	maxErr, err := sim.MaxAbsError(ref.X, tr.X)
	if err != nil {
		return 0, err
	}
	r.Logger.Info().Float64("h", h).Int("steps", numSteps).Float64("max_error", maxErr).Msg("explicit global error")
	return maxErr, nil
}

// Sweep holds the truncation-error samples of a step-size halving sweep.
type Sweep struct {
	H        []float64
	MaxError []float64
	Order    float64 // fitted log-log slope; 0 when it cannot be fitted
}

// TruncationError runs PlotError for h, h/2, ..., h/16 over finalTime and plots
// the maximum error against the step size. Each PlotError call rewrites the
// explicit error figure, so only the finest step size's version remains.
func (r *Runner) TruncationError(x0, v0, h, finalTime float64) (*Sweep, error) {
	start := dynamo.State{X: x0, V: v0}
	if err := validateDuration(start, h, finalTime); err != nil {
		return nil, err
	}

	sweep := &Sweep{
		H:        make([]float64, 0, truncationHalvingCount),
		MaxError: make([]float64, 0, truncationHalvingCount),
	}
	hi := h
	for i := 0; i < truncationHalvingCount; i++ {
		numSteps := int(finalTime / hi)
		maxErr, err := r.PlotError(x0, v0, hi, numSteps)
		if err != nil {
			return nil, err
		}
		sweep.H = append(sweep.H, hi)
		sweep.MaxError = append(sweep.MaxError, maxErr)
		hi /= 2
	}

	if order, err := analysis.ConvergenceOrder(sweep.H, sweep.MaxError); err != nil {
		r.Logger.Warn().Err(err).Msg("convergence order not fitted")
	} else {
		sweep.Order = order
		r.Logger.Info().Float64("order", order).Msg("truncation error convergence")
	}

	err := r.save(TruncationErrorFile, &export.Figure{
		Title:  "Explicit Euler: truncation error",
		XLabel: "h",
		YLabel: "max |x error|",
		Series: []export.Series{
			{X: sweep.H, Y: sweep.MaxError, Color: export.Black, Markers: true},
		},
	})
	if err != nil {
		return nil, err
	}
	return sweep, nil
}

// EnergyEvolution plots x²+v² of the explicit method (black) and of the
// analytical solution (blue).
func (r *Runner) EnergyEvolution(x0, v0, h float64, numSteps int) error {
	return r.energyAgainstReference(integrators.NewExplicit(), ExplicitEnergyFile, "Explicit Euler: energy", x0, v0, h, numSteps)
}

// SymplecticEnergyEvolution plots x²+v² of the symplectic method (black) and
// of the analytical solution (blue).
func (r *Runner) SymplecticEnergyEvolution(x0, v0, h float64, numSteps int) error {
	return r.energyAgainstReference(integrators.NewSymplectic(), SymplecticEnergyFile, "Symplectic Euler: energy", x0, v0, h, numSteps)
}

func (r *Runner) energyAgainstReference(integ dynamo.Integrator, file, title string, x0, v0, h float64, numSteps int) error {
	start := dynamo.State{X: x0, V: v0}
	if err := validate(start, h, numSteps); err != nil {
		return err
	}

	tr, err := r.integrate(integ, start, h, numSteps)
	if err != nil {
		return err
	}
	ref, err := sim.Reference(start, h, numSteps)
	if err != nil {
		return err
	}

	return r.save(file, &export.Figure{
		Title:  title,
		XLabel: "t",
		YLabel: "x² + v²",
		Series: []export.Series{
			{Label: integ.Name(), X: tr.T, Y: sim.Energy(tr), Color: export.Black},
			{Label: "analytic", X: ref.T, Y: sim.Energy(ref), Color: export.Blue},
		},
	})
}

// ImplicitEuler compares the implicit (black) and explicit (blue) methods:
// one figure of energy and one of position error against the analytical
// solution.
func (r *Runner) ImplicitEuler(x0, v0, h float64, numSteps int) error {
	start := dynamo.State{X: x0, V: v0}
	if err := validate(start, h, numSteps); err != nil {
		return err
	}

	imp, err := r.integrate(integrators.NewImplicit(), start, h, numSteps)
	if err != nil {
		return err
	}
	exp, err := r.integrate(integrators.NewExplicit(), start, h, numSteps)
	if err != nil {
		return err
	}
	ref, err := sim.Reference(start, h, numSteps)
	if err != nil {
		return err
	}

	err = r.save(ImplicitEnergyFile, &export.Figure{
		Title:  "Implicit vs explicit Euler: energy",
		XLabel: "t",
		YLabel: "x² + v²",
		Series: []export.Series{
			{Label: "implicit", X: imp.T, Y: sim.Energy(imp), Color: export.Black},
			{Label: "explicit", X: exp.T, Y: sim.Energy(exp), Color: export.Blue},
		},
	})
	if err != nil {
		return err
	}

	errImp, err := sim.AbsError(imp.X, ref.X)
	if err != nil {
		return err
	}
	errExp, err := sim.AbsError(exp.X, ref.X)
	if err != nil {
		return err
	}

	return r.save(ImplicitErrorFile, &export.Figure{
		Title:  "Implicit vs explicit Euler: global error",
		XLabel: "t",
		YLabel: "|x - x_analytic|",
		Series: []export.Series{
			{Label: "implicit", X: imp.T, Y: errImp, Color: export.Black},
			{Label: "explicit", X: exp.T, Y: errExp, Color: export.Blue},
		},
	})
}

// PhaseSpace writes one (x, v) figure per method: implicit in black, explicit
// in blue, symplectic in red.
func (r *Runner) PhaseSpace(x0, v0, h float64, numSteps int) error {
	start := dynamo.State{X: x0, V: v0}
	if err := validate(start, h, numSteps); err != nil {
		return err
	}

	methods := []struct {
		integ dynamo.Integrator
		file  string
		line  color.Color
	}{
		{integrators.NewImplicit(), ImplicitPhaseFile, export.Black},
		{integrators.NewExplicit(), ExplicitPhaseFile, export.Blue},
		{integrators.NewSymplectic(), SymplecticPhaseFile, export.Red},
	}

	for _, m := range methods {
		tr, err := r.integrate(m.integ, start, h, numSteps)
		if err != nil {
			return err
		}

		if orbit, err := analysis.ClassifyOrbit(tr, h); err == nil {
			r.Logger.Debug().Str("method", m.integ.Name()).Stringer("orbit", orbit).Msg("phase space")
		}

		err = r.save(m.file, &export.Figure{
			Title:  m.integ.Name() + " Euler: phase space",
			XLabel: "x",
			YLabel: "v",
			Series: []export.Series{{X: tr.X, Y: tr.V, Color: m.line}},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
