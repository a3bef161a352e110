package viz

import (
	"math"
	"strings"

	"github.com/san-kum/eulerlab/internal/analysis"
	"github.com/san-kum/eulerlab/internal/sim"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// StartMark replaces the braille cell holding the first sample of a portrait.
const StartMark = '●'

// Canvas is a braille dot grid of Width x Height cells mapped onto the
// world rectangle [minX, maxX] x [minY, maxY], y pointing up.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	marks                  map[[2]int]rune
	minX, maxX, minY, maxY float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		marks:  make(map[[2]int]rune),
		minX:   -1,
		maxX:   1,
		minY:   -1,
		maxY:   1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// SetBounds sets the world rectangle. Empty ranges are ignored.
func (c *Canvas) SetBounds(minX, maxX, minY, maxY float64) {
	if maxX > minX {
		c.minX, c.maxX = minX, maxX
	}
	if maxY > minY {
		c.minY, c.maxY = minY, maxY
	}
}

// dot converts world coordinates to sub-pixel coordinates.
func (c *Canvas) dot(x, y float64) (int, int) {
	px := (x - c.minX) / (c.maxX - c.minX) * float64(c.Width*2-1)
	py := (c.maxY - y) / (c.maxY - c.minY) * float64(c.Height*4-1)
	return int(math.Round(px)), int(math.Round(py))
}

// Set turns on the dot at sub-pixel (x, y); y grows downwards. Dots outside
// the canvas are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Point plots the world point (x, y).
func (c *Canvas) Point(x, y float64) {
	c.Set(c.dot(x, y))
}

// Line joins two world points with one dot per sub-pixel along the longer axis.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	ax, ay := c.dot(x0, y0)
	bx, by := c.dot(x1, y1)

	n := max(absInt(bx-ax), absInt(by-ay))
	if n == 0 {
		c.Set(ax, ay)
		return
	}
	for i := 0; i <= n; i++ {
		f := float64(i) / float64(n)
		c.Set(ax+int(math.Round(f*float64(bx-ax))), ay+int(math.Round(f*float64(by-ay))))
	}
}

// Mark draws r over the whole cell containing the world point (x, y).
func (c *Canvas) Mark(x, y float64, r rune) {
	px, py := c.dot(x, y)
	col, row := px/2, py/4
	if px < 0 || py < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.marks[[2]int{row, col}] = r
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if m, ok := c.marks[[2]int{i, j}]; ok {
				r = m
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// PhasePortrait draws the (x, v) curve of tr on a w by h cell canvas, with v
// pointing up and the first sample shown as StartMark.
func PhasePortrait(tr *sim.Trajectory, w, h int) *Canvas {
	c := NewCanvas(w, h)
	p := analysis.NewPhasePortrait(tr)
	if len(p.Points) == 0 {
		return c
	}

	c.SetBounds(p.Bounds(0.05))

	prev := p.Points[0]
	c.Point(prev.X, prev.Y)
	for _, pt := range p.Points[1:] {
		c.Line(prev.X, prev.Y, pt.X, pt.Y)
		prev = pt
	}
	c.Mark(p.Points[0].X, p.Points[0].Y, StartMark)
	return c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
