// Package export renders 2-D line figures to static image files with gonum/plot.
//
//	fig := &export.Figure{
//	    Title:  "energy",
//	    Series: []export.Series{{X: t, Y: e, Color: export.Black}},
//	}
//	err := fig.Save("energy_evolution_explicit.pdf")
package export
