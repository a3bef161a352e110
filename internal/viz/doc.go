// Package viz renders non-interactive terminal previews of oscillator runs.
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//   - [PhasePortrait]: (x, v) curve of a trajectory drawn on a canvas
//   - [Chart]: asciigraph line chart of one or more series
//
// Styles are lipgloss definitions shared by the CLI.
package viz
