// Package physics provides the simple pendulum model.
//
// [Pendulum] implements [dynamo.System] by composing the two derivative
// functions [AngularVelocity] and [AngularAcceleration], and
// [dynamo.Hamiltonian] through the energy-like invariant
//
//	E = ½ω² - (g/L)·cos θ
//
// which stays constant along the exact solution and is used to monitor
// integrator drift.
//
// [Parameters] computes the closed-form small-angle description
// (amplitude, angular frequency, period) used for reporting.
package physics
