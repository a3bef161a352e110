package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/eulerlab/internal/dynamo"
	"github.com/san-kum/eulerlab/internal/export"
	"github.com/san-kum/eulerlab/internal/integrators"
	"gopkg.in/yaml.v3"
)

const (
	DefaultX0        = 1.0
	DefaultV0        = 0.0
	DefaultH         = 0.01
	DefaultNumSteps  = 1000
	DefaultFinalTime = 10.0
	DefaultOutDir    = "."
	DefaultFormat    = "pdf"
	DefaultMethod    = "symplectic"
)

type Config struct {
	Method      string   `yaml:"method"`
	X0          float64  `yaml:"x0"`
	V0          float64  `yaml:"v0"`
	H           float64  `yaml:"h"`
	NumSteps    int      `yaml:"num_steps"`
	FinalTime   float64  `yaml:"final_time"`
	OutDir      string   `yaml:"out_dir"`
	Format      string   `yaml:"format"`
	Experiments []string `yaml:"experiments,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Method:    DefaultMethod,
		X0:        DefaultX0,
		V0:        DefaultV0,
		H:         DefaultH,
		NumSteps:  DefaultNumSteps,
		FinalTime: DefaultFinalTime,
		OutDir:    DefaultOutDir,
		Format:    DefaultFormat,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) InitState() dynamo.State {
	return dynamo.State{X: c.X0, V: c.V0}
}

func (c *Config) Run() dynamo.Config {
	return dynamo.Config{H: c.H, NumSteps: c.NumSteps}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Run().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.FinalTime <= 0 || math.IsInf(c.FinalTime, 0) || math.IsNaN(c.FinalTime) {
		errs = append(errs, fmt.Errorf("%w: final time=%v", dynamo.ErrParameterBounds, c.FinalTime))
	}
	if !c.InitState().IsValid() {
		errs = append(errs, fmt.Errorf("%w: initial state %s", dynamo.ErrInvalidState, c.InitState()))
	}
	if !export.ValidFormat(c.Format) {
		errs = append(errs, fmt.Errorf("%w: image format %q (want one of %v)", dynamo.ErrParameterBounds, c.Format, export.Formats))
	}
	if _, err := integrators.ByName(c.Method); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
