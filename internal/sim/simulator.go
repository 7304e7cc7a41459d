package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
)

// Simulator drives a fixed-step integrator over a system and records one
// sample per completed step.
type Simulator struct {
	sys        dynamo.System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

func New(sys dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Run advances x0 by steps increments of dt. The returned trajectory holds
// exactly steps samples, the first at t=dt. A non-finite state stops the
// run early; the partial result is returned together with a
// *dynamo.SimulationError.
func (s *Simulator) Run(x0 dynamo.State, dt float64, steps int) (*dynamo.Result, error) {
	if err := validateRun(dt, steps); err != nil {
		return nil, err
	}

	result := &dynamo.Result{
		Trajectory: make(dynamo.Trajectory, 0, steps),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0
	t := 0.0
	initialEnergy := s.computeEnergy(x)

	var runErr error
	for i := 0; i < steps; i++ {
		next := s.integrator.Step(s.sys, x, dt)
		if !next.IsValid() {
			runErr = &dynamo.SimulationError{Step: i, Time: t, State: x, Wrapped: dynamo.ErrInvalidState}
			break
		}

		x = next
		t = float64(i+1) * dt
		result.StepsTaken++

		sample := dynamo.Sample{T: t, Theta: x.Theta, Omega: x.Omega}
		result.Trajectory = append(result.Trajectory, sample)

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(sample)
		}
	}

	finalEnergy := s.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

func validateRun(dt float64, steps int) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, dt)
	}
	if steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrParameterBounds, steps)
	}
	return nil
}

func (s *Simulator) computeEnergy(x dynamo.State) float64 {
	if h, ok := s.sys.(dynamo.Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}

// Simulate runs the pendulum of the given length from rest at theta
// (radians) with RK4 and returns the trajectory. Invalid dt or steps give
// an empty trajectory.
func Simulate(steps int, theta, length, dt float64) dynamo.Trajectory {
	s := New(physics.NewPendulum(length), integrators.NewRK4())
	result, _ := s.Run(dynamo.State{Theta: theta}, dt, steps)
	if result == nil {
		return dynamo.Trajectory{}
	}
	return result.Trajectory
}
