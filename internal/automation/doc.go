// Package automation runs batches of pendulum simulations: yaml
// scenarios, parameter sweeps and a time step search.
package automation
