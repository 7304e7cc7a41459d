// Package session holds the state of an interactive simulation: the last
// trajectory, its small-angle results and the chart showing them.
package session
