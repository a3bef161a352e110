package sim

import (
	"github.com/san-kum/eulerlab/internal/dynamo"
	"github.com/san-kum/eulerlab/internal/integrators"
)

type Simulator struct {
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
}

type Result struct {
	Trajectory *Trajectory
	Metrics    map[string]float64
}

func New(integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric) { s.metrics = append(s.metrics, m) }

// Run materializes cfg.NumSteps states from x0 and feeds each one to the
// registered metrics. A non-finite state stops the run with a *dynamo.StepError;
// the partial result is still returned.
func (s *Simulator) Run(x0 dynamo.State, cfg dynamo.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	seq := integrators.Sequence(s.integrator, x0, cfg.H)
	tr, err := materialize(seq, cfg.H, cfg.NumSteps, func(i int, t float64, x dynamo.State) error {
		if !x.IsValid() {
			return &dynamo.StepError{Step: i, Time: t, State: x, Wrapped: dynamo.ErrInvalidState}
		}
		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		return nil
	})

	result := &Result{
		Trajectory: tr,
		Metrics:    make(map[string]float64, len(s.metrics)),
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, err
}
