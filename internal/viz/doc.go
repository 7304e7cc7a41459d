// Package viz renders simulation results.
//
// A [Chart] is the rendering resource for one trajectory. It is updated in
// place on every new run and released with [Chart.Destroy]; renderers
// refuse destroyed charts:
//
//   - [ASCII]: terminal line chart (asciigraph)
//   - [PNG]: image export (gonum/plot)
//
// [Panel] formats the small-angle results with lipgloss styles.
package viz
