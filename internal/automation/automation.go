package automation

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/san-kum/eulerlab/internal/config"
	"github.com/san-kum/eulerlab/internal/experiment"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of experiment runs. Top-level values
// are defaults for every step.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	OutDir      string         `yaml:"out_dir"`
	Format      string         `yaml:"format"`
	X0          float64        `yaml:"x0"`
	V0          float64        `yaml:"v0"`
	H           float64        `yaml:"h"`
	NumSteps    int            `yaml:"num_steps"`
	FinalTime   float64        `yaml:"final_time"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario. Nil fields fall back to the
// scenario's values.
type ScenarioStep struct {
	Experiment string   `yaml:"experiment"`
	OutDir     string   `yaml:"out_dir,omitempty"`
	X0         *float64 `yaml:"x0,omitempty"`
	V0         *float64 `yaml:"v0,omitempty"`
	H          *float64 `yaml:"h,omitempty"`
	NumSteps   *int     `yaml:"num_steps,omitempty"`
	FinalTime  *float64 `yaml:"final_time,omitempty"`
}

func NewScenario(name string) *Scenario {
	return &Scenario{
		Name:      name,
		OutDir:    config.DefaultOutDir,
		Format:    config.DefaultFormat,
		X0:        config.DefaultX0,
		V0:        config.DefaultV0,
		H:         config.DefaultH,
		NumSteps:  config.DefaultNumSteps,
		FinalTime: config.DefaultFinalTime,
	}
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	scenario := NewScenario("")
	if err := yaml.Unmarshal(data, scenario); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario: %s has no steps", path)
	}
	return scenario, nil
}

// Params resolves the numeric inputs of step i.
func (s *Scenario) Params(i int) experiment.Params {
	step := s.Steps[i]
	p := experiment.Params{
		X0:        s.X0,
		V0:        s.V0,
		H:         s.H,
		NumSteps:  s.NumSteps,
		FinalTime: s.FinalTime,
	}
	if step.X0 != nil {
		p.X0 = *step.X0
	}
	if step.V0 != nil {
		p.V0 = *step.V0
	}
	if step.H != nil {
		p.H = *step.H
	}
	if step.NumSteps != nil {
		p.NumSteps = *step.NumSteps
	}
	if step.FinalTime != nil {
		p.FinalTime = *step.FinalTime
	}
	return p
}

// RunScenario executes all steps in order and stops at the first failure.
// Steps with their own out_dir write there, the rest into the scenario's.
func RunScenario(scenario *Scenario, registry *experiment.Registry, logger zerolog.Logger) error {
	for i, step := range scenario.Steps {
		dir := scenario.OutDir
		if step.OutDir != "" {
			dir = step.OutDir
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}

		logger.Info().
			Str("scenario", scenario.Name).
			Int("step", i+1).
			Int("of", len(scenario.Steps)).
			Str("experiment", step.Experiment).
			Msg("scenario step")

		runner := experiment.NewRunner(dir, scenario.Format, logger)
		if err := registry.Run(runner, step.Experiment, scenario.Params(i)); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}
