package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/eulerlab/internal/dynamo"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns |X_k|² for k in [0, n/2] of the mean-removed signal.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	mean := stat.Mean(data, nil)
	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	power := make([]float64, n/2+1)
	for i := range power {
		mag := cmplx.Abs(spectrum[i])
		power[i] = mag * mag
	}
	return power
}

// DominantFrequency estimates the strongest oscillation frequency (cycles per
// unit time) of samples spaced h apart. The peak bin is refined by a parabola
// through its neighbours.
func DominantFrequency(data []float64, h float64) (float64, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("%w: need at least 4 samples, got %d", dynamo.ErrParameterBounds, len(data))
	}
	if h <= 0 {
		return 0, fmt.Errorf("%w: sample spacing h=%v", dynamo.ErrParameterBounds, h)
	}

	ps := PowerSpectrum(data)

	maxIdx := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}

	offset := 0.0
	if maxIdx > 0 && maxIdx < len(ps)-1 {
		a, b, c := ps[maxIdx-1], ps[maxIdx], ps[maxIdx+1]
		if den := a - 2*b + c; den != 0 {
			offset = 0.5 * (a - c) / den
		}
	}

	n := float64(len(data))
	return (float64(maxIdx) + offset) / (n * h), nil
}
