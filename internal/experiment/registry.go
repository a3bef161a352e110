package experiment

import (
	"fmt"

	"github.com/san-kum/eulerlab/internal/dynamo"
)

type Experiment struct {
	Name        string
	Description string
	Outputs     []string
	run         func(r *Runner, p Params) error
}

type Registry struct {
	order       []string
	experiments map[string]*Experiment
}

func NewRegistry() *Registry {
	r := &Registry{
		experiments: make(map[string]*Experiment),
	}

	r.register(&Experiment{
		Name:        "spring",
		Description: "explicit Euler position and velocity against time",
		Outputs:     []string{SpringMotionFile},
		run: func(r *Runner, p Params) error {
			return r.SpringMotion(p.X0, p.V0, p.H, p.NumSteps)
		},
	})
	r.register(&Experiment{
		Name:        "error",
		Description: "explicit Euler global error against the analytical solution",
		Outputs:     []string{SpringErrorFile},
		run: func(r *Runner, p Params) error {
			_, err := r.PlotError(p.X0, p.V0, p.H, p.NumSteps)
			return err
		},
	})
	r.register(&Experiment{
		Name:        "truncation",
		Description: "maximum error for h, h/2, h/4, h/8, h/16 over the final time",
		Outputs:     []string{TruncationErrorFile, SpringErrorFile},
		run: func(r *Runner, p Params) error {
			_, err := r.TruncationError(p.X0, p.V0, p.H, p.FinalTime)
			return err
		},
	})
	r.register(&Experiment{
		Name:        "energy",
		Description: "explicit Euler energy against the analytical energy",
		Outputs:     []string{ExplicitEnergyFile},
		run: func(r *Runner, p Params) error {
			return r.EnergyEvolution(p.X0, p.V0, p.H, p.NumSteps)
		},
	})
	r.register(&Experiment{
		Name:        "implicit",
		Description: "implicit vs explicit Euler energy and global error",
		Outputs:     []string{ImplicitEnergyFile, ImplicitErrorFile},
		run: func(r *Runner, p Params) error {
			return r.ImplicitEuler(p.X0, p.V0, p.H, p.NumSteps)
		},
	})
	r.register(&Experiment{
		Name:        "phase",
		Description: "phase space of the implicit, explicit and symplectic methods",
		Outputs:     []string{ImplicitPhaseFile, ExplicitPhaseFile, SymplecticPhaseFile},
		run: func(r *Runner, p Params) error {
			return r.PhaseSpace(p.X0, p.V0, p.H, p.NumSteps)
		},
	})
	r.register(&Experiment{
		Name:        "symplectic",
		Description: "symplectic Euler energy against the analytical energy",
		Outputs:     []string{SymplecticEnergyFile},
		run: func(r *Runner, p Params) error {
			return r.SymplecticEnergyEvolution(p.X0, p.V0, p.H, p.NumSteps)
		},
	})

	return r
}

func (r *Registry) register(e *Experiment) {
	r.order = append(r.order, e.Name)
	r.experiments[e.Name] = e
}

func (r *Registry) Get(name string) (*Experiment, error) {
	e, ok := r.experiments[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownExperiment, name)
	}
	return e, nil
}

// Names returns the experiments in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) List() []*Experiment {
	list := make([]*Experiment, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.experiments[name])
	}
	return list
}

func (r *Registry) Run(runner *Runner, name string, p Params) error {
	e, err := r.Get(name)
	if err != nil {
		return err
	}
	runner.Logger.Info().Str("experiment", name).Stringer("x0", p.InitState()).Msg("running")
	if err := e.run(runner, p); err != nil {
		return fmt.Errorf("experiment %s: %w", name, err)
	}
	return nil
}
