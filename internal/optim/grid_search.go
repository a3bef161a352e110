package optim

import (
	"fmt"
	"maps"
	"math"

	"github.com/san-kum/eulerlab/internal/dynamo"
	"github.com/san-kum/eulerlab/internal/metrics"
	"github.com/san-kum/eulerlab/internal/sim"
)

// Objective evaluates one parameter combination and returns its metrics.
type Objective func(params map[string]float64) (map[string]float64, error)

// GridSearch minimizes a metric over the cartesian product of parameter
// ranges, skipping combinations that fail or break a limit.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	limits     map[string]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{
		paramNames: params,
		ranges:     ranges,
		limits:     make(map[string]float64),
	}
}

// Limit rejects combinations whose metric exceeds limit.
func (g *GridSearch) Limit(metric string, limit float64) *GridSearch {
	g.limits[metric] = limit
	return g
}

func (g *GridSearch) Search(obj Objective, metricName string) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%w: %d parameters vs %d ranges", dynamo.ErrDimensionMismatch, len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(0, make(map[string]float64), obj, metricName, &best, &bestParams)

	if bestParams == nil {
		return nil, 0, fmt.Errorf("%w: no parameter combination satisfies the limits", dynamo.ErrParameterBounds)
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	depth int,
	current map[string]float64,
	obj Objective,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if depth == len(g.paramNames) {
		result, err := obj(current)
		if err != nil {
			return
		}
		for name, limit := range g.limits {
			if v, ok := result[name]; !ok || !(v <= limit) {
				return
			}
		}

		val, ok := result[metricName]
		if ok && val < *best {
			*best = val
			*bestParams = maps.Clone(current)
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := maps.Clone(current)
		newParams[paramName] = val

		g.searchRecursive(depth+1, newParams, obj, metricName, best, bestParams)
	}
}

// Halvings returns h, h/2, ..., h/2^(n-1).
func Halvings(h float64, n int) []float64 {
	hs := make([]float64, 0, max(n, 0))
	for i := 0; i < n; i++ {
		hs = append(hs, h)
		h /= 2
	}
	return hs
}

// StepSizeObjective integrates x0 with integ up to finalTime for the "h"
// parameter and reports the default metrics plus the number of samples as
// "steps".
func StepSizeObjective(integ dynamo.Integrator, x0 dynamo.State, finalTime float64) Objective {
	return func(params map[string]float64) (map[string]float64, error) {
		h := params["h"]
		if h <= 0 {
			return nil, fmt.Errorf("%w: step size h=%v", dynamo.ErrParameterBounds, h)
		}

		s := sim.New(integ)
		for _, m := range metrics.Defaults() {
			s.AddMetric(m)
		}
		n := int(finalTime / h)
		res, err := s.Run(x0, dynamo.Config{H: h, NumSteps: n})
		if err != nil {
			return nil, err
		}

		out := maps.Clone(res.Metrics)
		out["steps"] = float64(n)
		return out, nil
	}
}

// CoarsestStep returns the largest step size among hs whose metric stays at
// or below tol over finalTime, measured by the number of samples it needs.
func CoarsestStep(integ dynamo.Integrator, x0 dynamo.State, finalTime float64, hs []float64, metric string, tol float64) (float64, error) {
	g := NewGridSearch([]string{"h"}, [][]float64{hs}).Limit(metric, tol)
	params, _, err := g.Search(StepSizeObjective(integ, x0, finalTime), "steps")
	if err != nil {
		return 0, fmt.Errorf("%s with %s <= %g: %w", integ.Name(), metric, tol, err)
	}
	return params["h"], nil
}
