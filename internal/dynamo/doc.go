// Package dynamo provides the core types shared by the pendulum simulator.
//
// The package defines the state and records produced by a simulation run
// and the interfaces the numerical pieces are built against:
//
//   - [State]: angle and angular velocity of the pendulum
//   - [Sample], [Trajectory]: time series recorded after every step
//   - [System]: right-hand side of the first-order ODE pair
//   - [Integrator]: fixed-step numerical stepper
//   - [Metric], [Observer]: per-step hooks used by the simulator
//   - [Params]: closed-form small-angle parameters
//
// # Example
//
//	pend := physics.NewPendulum(1.0)
//	s := sim.New(pend, integrators.NewRK4())
//	result, _ := s.Run(dynamo.State{Theta: 0.1745}, 0.01, 1000)
//
// # Thread Safety
//
// Values are immutable once produced. Simulators and metrics are NOT
// thread-safe; give every concurrent run its own instances.
package dynamo
