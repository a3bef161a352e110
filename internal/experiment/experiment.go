package experiment

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/san-kum/eulerlab/internal/dynamo"
	"github.com/san-kum/eulerlab/internal/export"
	"github.com/san-kum/eulerlab/internal/metrics"
	"github.com/san-kum/eulerlab/internal/sim"
)

// Runner executes experiment routines and writes their figures into Dir.
// An empty Dir means the current working directory.
type Runner struct {
	Dir    string
	Format string
	Logger zerolog.Logger

	// Write renders fig to path. Nil means (*export.Figure).Save.
	Write func(fig *export.Figure, path string) error
}

func NewRunner(dir, format string, logger zerolog.Logger) *Runner {
	if format == "" {
		format = "pdf"
	}
	return &Runner{
		Dir:    dir,
		Format: format,
		Logger: logger,
		Write:  (*export.Figure).Save,
	}
}

// Params carries the numeric inputs shared by all routines. Routines that
// run for a duration use FinalTime, the others use NumSteps.
type Params struct {
	X0        float64
	V0        float64
	H         float64
	NumSteps  int
	FinalTime float64
}

func (p Params) InitState() dynamo.State {
	return dynamo.State{X: p.X0, V: p.V0}
}

func (r *Runner) path(name string) string {
	return export.Filename(r.Dir, name, r.Format)
}

func (r *Runner) save(name string, fig *export.Figure) error {
	path := r.path(name)
	write := r.Write
	if write == nil {
		write = (*export.Figure).Save
	}
	if err := write(fig, path); err != nil {
		return err
	}
	r.Logger.Info().Str("file", path).Str("title", fig.Title).Msg("figure")
	return nil
}

func validate(x0 dynamo.State, h float64, numSteps int) error {
	if !x0.IsValid() {
		return fmt.Errorf("%w: initial state %s", dynamo.ErrInvalidState, x0)
	}
	return dynamo.Config{H: h, NumSteps: numSteps}.Validate()
}

func validateDuration(x0 dynamo.State, h, finalTime float64) error {
	if finalTime <= 0 || math.IsNaN(finalTime) || math.IsInf(finalTime, 0) {
		return fmt.Errorf("%w: final time=%v", dynamo.ErrParameterBounds, finalTime)
	}
	if h <= 0 {
		return fmt.Errorf("%w: step size h=%v must be positive for a duration", dynamo.ErrParameterBounds, h)
	}
	return validate(x0, h, int(finalTime/h))
}

// integrate materializes numSteps states of integ and logs the default
// metrics for the run.
func (r *Runner) integrate(integ dynamo.Integrator, x0 dynamo.State, h float64, numSteps int) (*sim.Trajectory, error) {
	s := sim.New(integ)
	ms := metrics.Defaults()
	for _, m := range ms {
		s.AddMetric(m)
	}

	res, err := s.Run(x0, dynamo.Config{H: h, NumSteps: numSteps})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", integ.Name(), err)
	}

	ev := r.Logger.Debug().
		Str("method", integ.Name()).
		Float64("h", h).
		Int("steps", numSteps)
	for _, m := range ms {
		ev = ev.Float64(m.Name(), m.Value())
		if d, ok := m.(*metrics.EnergyDrift); ok {
			ev = ev.Float64("final_drift", d.Final())
		}
	}
	ev.Msg("integrated")

	return res.Trajectory, nil
}
