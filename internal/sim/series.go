package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/eulerlab/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// AbsError returns |a_i - b_i| element-wise.
func AbsError(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d samples", dynamo.ErrDimensionMismatch, len(a), len(b))
	}
	d := make([]float64, len(a))
	floats.SubTo(d, a, b)
	for i, v := range d {
		d[i] = math.Abs(v)
	}
	return d, nil
}

// Energy returns x_i² + v_i² for every sample of tr.
func Energy(tr *Trajectory) []float64 {
	e := make([]float64, tr.Len())
	v2 := make([]float64, tr.Len())
	floats.MulTo(e, tr.X, tr.X)
	floats.MulTo(v2, tr.V, tr.V)
	floats.Add(e, v2)
	return e
}

// MaxAbsError is the largest |a_i - b_i|; it is 0 for empty series.
func MaxAbsError(a, b []float64) (float64, error) {
	d, err := AbsError(a, b)
	if err != nil {
		return 0, err
	}
	if len(d) == 0 {
		return 0, nil
	}
	return floats.Max(d), nil
}

// Radius returns the phase-space radius sqrt(x²+v²) of each sample.
func Radius(tr *Trajectory) []float64 {
	r := Energy(tr)
	for i, e := range r {
		r[i] = math.Sqrt(e)
	}
	return r
}
