package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration and experiment runs.
var (
	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a step size, step count or duration outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates series of different lengths were combined.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between series")

	ErrUnknownMethod     = errors.New("dynamo: unknown integration method")
	ErrUnknownExperiment = errors.New("dynamo: unknown experiment")
)

// StepError wraps an error with the step at which it was detected.
type StepError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f, %s): %v", e.Step, e.Time, e.State, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
