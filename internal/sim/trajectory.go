package sim

import (
	"fmt"
	"iter"

	"github.com/san-kum/eulerlab/internal/dynamo"
	"github.com/san-kum/eulerlab/internal/physics"
)

// Trajectory is a materialized run: sample i holds the state at time T[i] = i*H.
type Trajectory struct {
	H float64
	T []float64
	X []float64
	V []float64
}

func newTrajectory(h float64, numSteps int) *Trajectory {
	return &Trajectory{
		H: h,
		T: Times(h, numSteps),
		X: make([]float64, numSteps),
		V: make([]float64, numSteps),
	}
}

func (tr *Trajectory) Len() int { return len(tr.T) }

func (tr *Trajectory) At(i int) dynamo.State {
	return dynamo.State{X: tr.X[i], V: tr.V[i]}
}

// States iterates the samples in time order.
func (tr *Trajectory) States() iter.Seq2[float64, dynamo.State] {
	return func(yield func(float64, dynamo.State) bool) {
		for i := range tr.T {
			if !yield(tr.T[i], tr.At(i)) {
				return
			}
		}
	}
}

// Final returns the last sample; ok is false for an empty trajectory.
func (tr *Trajectory) Final() (x dynamo.State, ok bool) {
	if tr.Len() == 0 {
		return dynamo.State{}, false
	}
	return tr.At(tr.Len() - 1), true
}

// Times returns t_i = i*h for i in [0, n).
func Times(h float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) * h
	}
	return t
}

// Materialize pulls exactly numSteps states from seq. numSteps == 0 gives an
// empty trajectory; negative counts are rejected.
func Materialize(seq iter.Seq[dynamo.State], h float64, numSteps int) (*Trajectory, error) {
	return materialize(seq, h, numSteps, nil)
}

func materialize(seq iter.Seq[dynamo.State], h float64, numSteps int, observe func(i int, t float64, x dynamo.State) error) (*Trajectory, error) {
	if numSteps < 0 {
		return nil, fmt.Errorf("%w: num steps=%d", dynamo.ErrParameterBounds, numSteps)
	}
	tr := newTrajectory(h, numSteps)
	if numSteps == 0 {
		return tr, nil
	}

	i := 0
	for x := range seq {
		tr.X[i], tr.V[i] = x.X, x.V
		if observe != nil {
			if err := observe(i, tr.T[i], x); err != nil {
				return truncate(tr, i+1), err
			}
		}
		i++
		if i == numSteps {
			break
		}
	}
	if i < numSteps {
		return truncate(tr, i), fmt.Errorf("%w: sequence ended after %d of %d states", dynamo.ErrDimensionMismatch, i, numSteps)
	}
	return tr, nil
}

func truncate(tr *Trajectory, n int) *Trajectory {
	tr.T, tr.X, tr.V = tr.T[:n], tr.X[:n], tr.V[:n]
	return tr
}

// Reference evaluates the closed-form solution at the same samples a numerical
// trajectory with the same h and numSteps would have.
func Reference(x0 dynamo.State, h float64, numSteps int) (*Trajectory, error) {
	if numSteps < 0 {
		return nil, fmt.Errorf("%w: num steps=%d", dynamo.ErrParameterBounds, numSteps)
	}
	tr := newTrajectory(h, numSteps)
	for i, t := range tr.T {
		x := physics.Exact(x0, t)
		tr.X[i], tr.V[i] = x.X, x.V
	}
	return tr, nil
}
