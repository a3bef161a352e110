package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/eulerlab/internal/dynamo"
	"gonum.org/v1/gonum/stat"
)

// ConvergenceOrder fits log(err) = a + p*log(h) and returns p. A first-order
// method gives p close to 1.
func ConvergenceOrder(hs, errs []float64) (float64, error) {
	if len(hs) != len(errs) {
		return 0, fmt.Errorf("%w: %d step sizes vs %d errors", dynamo.ErrDimensionMismatch, len(hs), len(errs))
	}
	if len(hs) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 samples", dynamo.ErrParameterBounds)
	}

	logH := make([]float64, len(hs))
	logE := make([]float64, len(errs))
	for i := range hs {
		if hs[i] <= 0 || errs[i] <= 0 {
			return 0, fmt.Errorf("%w: non-positive sample h=%v err=%v", dynamo.ErrParameterBounds, hs[i], errs[i])
		}
		logH[i] = math.Log(hs[i])
		logE[i] = math.Log(errs[i])
	}

	_, slope := stat.LinearRegression(logH, logE, nil, false)
	return slope, nil
}
