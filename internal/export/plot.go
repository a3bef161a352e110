package export

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/san-kum/eulerlab/internal/dynamo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Line colors shared by every figure: black for the primary (numerical or
// implicit) series, blue for the secondary (analytical or explicit) series,
// red for the symplectic series.
var (
	Black = color.RGBA{A: 255}
	Blue  = color.RGBA{B: 255, A: 255}
	Red   = color.RGBA{R: 255, A: 255}
)

const (
	DefaultWidth  = 6.4 * vg.Inch
	DefaultHeight = 4.8 * vg.Inch
)

// Formats lists the file extensions the figure backends can write.
var Formats = []string{"pdf", "png", "svg", "eps", "jpg", "tif"}

type Series struct {
	Label   string
	X, Y    []float64
	Color   color.Color
	Markers bool
}

type Figure struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
	Width  vg.Length
	Height vg.Length
}

// Filename joins dir and name with the format as extension.
func Filename(dir, name, format string) string {
	return filepath.Join(dir, name+"."+strings.TrimPrefix(format, "."))
}

func ValidFormat(format string) bool {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

func (f *Figure) build() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel
	p.Add(plotter.NewGrid())

	for i, s := range f.Series {
		if len(s.X) != len(s.Y) {
			return nil, fmt.Errorf("%w: series %d has %d x and %d y values", dynamo.ErrDimensionMismatch, i, len(s.X), len(s.Y))
		}

		pts := make(plotter.XYs, len(s.X))
		for j := range s.X {
			pts[j].X = s.X[j]
			pts[j].Y = s.Y[j]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
		line.LineStyle.Width = vg.Points(1)
		line.LineStyle.Color = s.Color
		p.Add(line)

		if s.Markers {
			sc, err := plotter.NewScatter(pts)
			if err != nil {
				return nil, fmt.Errorf("series %d: %w", i, err)
			}
			sc.GlyphStyle.Color = s.Color
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			sc.GlyphStyle.Radius = vg.Points(3)
			p.Add(sc)
		}

		if s.Label != "" {
			p.Legend.Add(s.Label, line)
		}
	}
	return p, nil
}

// Save renders the figure; the backend is chosen from the file extension.
// An existing file at path is overwritten.
func (f *Figure) Save(path string) error {
	p, err := f.build()
	if err != nil {
		return err
	}

	w, h := f.Width, f.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}

	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}
