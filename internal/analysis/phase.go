package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/eulerlab/internal/dynamo"
	"github.com/san-kum/eulerlab/internal/sim"
	"gonum.org/v1/gonum/floats"
)

type Point struct{ X, Y float64 }

// PhasePortrait holds a trajectory projected onto the (x, v) plane.
type PhasePortrait struct {
	Points []Point
}

func NewPhasePortrait(tr *sim.Trajectory) *PhasePortrait {
	p := &PhasePortrait{Points: make([]Point, 0, tr.Len())}
	for _, x := range tr.States() {
		p.Points = append(p.Points, Point{X: x.X, Y: x.V})
	}
	return p
}

// Bounds returns the bounding box padded by pad times its extent on each side.
// Degenerate extents are widened to 1.
func (p *PhasePortrait) Bounds(pad float64) (minX, maxX, minY, maxY float64) {
	if len(p.Points) == 0 {
		return -1, 1, -1, 1
	}

	minX, maxX = p.Points[0].X, p.Points[0].X
	minY, maxY = p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	return minX - rangeX*pad, maxX + rangeX*pad, minY - rangeY*pad, maxY + rangeY*pad
}

type Orbit int

const (
	OrbitIrregular Orbit = iota
	OrbitClosed
	OrbitSpiralOut
	OrbitSpiralIn
)

func (o Orbit) String() string {
	switch o {
	case OrbitClosed:
		return "closed"
	case OrbitSpiralOut:
		return "spiral-out"
	case OrbitSpiralIn:
		return "spiral-in"
	default:
		return "irregular"
	}
}

// OrbitStats summarizes the phase radius over a trajectory, relative to the
// initial radius.
type OrbitStats struct {
	Growth  float64 // r_end/r_0 - 1
	Spread  float64 // (max r - min r)/r_0
	Rising  bool    // r never decreases
	Falling bool    // r never increases
}

func RadiusStats(tr *sim.Trajectory) (OrbitStats, error) {
	if tr.Len() < 2 {
		return OrbitStats{}, fmt.Errorf("%w: need at least 2 samples, got %d", dynamo.ErrParameterBounds, tr.Len())
	}
	r := sim.Radius(tr)
	r0 := r[0]
	if r0 == 0 {
		return OrbitStats{}, fmt.Errorf("%w: trajectory starts at the origin", dynamo.ErrParameterBounds)
	}

	stats := OrbitStats{
		Growth:  r[len(r)-1]/r0 - 1,
		Spread:  (floats.Max(r) - floats.Min(r)) / r0,
		Rising:  true,
		Falling: true,
	}
	for i := 1; i < len(r); i++ {
		if r[i] < r[i-1] {
			stats.Rising = false
		}
		if r[i] > r[i-1] {
			stats.Falling = false
		}
	}
	return stats, nil
}

// ClassifyOrbit labels a trajectory closed when its radius stays within tol
// of the initial radius, and as a spiral when the radius is monotonic.
func ClassifyOrbit(tr *sim.Trajectory, tol float64) (Orbit, error) {
	stats, err := RadiusStats(tr)
	if err != nil {
		return OrbitIrregular, err
	}
	switch {
	case stats.Spread <= tol:
		return OrbitClosed, nil
	case stats.Rising && stats.Growth > 0:
		return OrbitSpiralOut, nil
	case stats.Falling && stats.Growth < 0:
		return OrbitSpiralIn, nil
	default:
		return OrbitIrregular, nil
	}
}
