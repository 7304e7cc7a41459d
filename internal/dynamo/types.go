package dynamo

import (
	"fmt"
	"math"
)

// Gravity is the gravitational acceleration in m/s².
const Gravity = 9.81

// State is the pendulum state: angle in radians and angular velocity in rad/s.
type State struct {
	Theta float64
	Omega float64
}

func (s State) IsValid() bool {
	for _, v := range [2]float64{s.Theta, s.Omega} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Add(other State) State {
	return State{Theta: s.Theta + other.Theta, Omega: s.Omega + other.Omega}
}

func (s State) Scale(factor float64) State {
	return State{Theta: s.Theta * factor, Omega: s.Omega * factor}
}

func (s State) Sub(other State) State {
	return State{Theta: s.Theta - other.Theta, Omega: s.Omega - other.Omega}
}

func (s State) Norm() float64 {
	return math.Hypot(s.Theta, s.Omega)
}

// Sample is one recorded point of a run, taken after a completed step.
type Sample struct {
	T     float64
	Theta float64
	Omega float64
}

func (s Sample) State() State {
	return State{Theta: s.Theta, Omega: s.Omega}
}

// Trajectory is the time-ordered list of samples of a run. The initial
// state at t=0 is not part of it.
type Trajectory []Sample

func (tr Trajectory) Len() int { return len(tr) }

func (tr Trajectory) Times() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.T
	}
	return out
}

func (tr Trajectory) Angles() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.Theta
	}
	return out
}

func (tr Trajectory) Velocities() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.Omega
	}
	return out
}

// Last returns the final sample; ok is false for an empty trajectory.
func (tr Trajectory) Last() (Sample, bool) {
	if len(tr) == 0 {
		return Sample{}, false
	}
	return tr[len(tr)-1], true
}

// Params holds the small-angle closed-form description of the motion.
type Params struct {
	Amplitude        float64
	AngularFrequency float64
	Period           float64
}

func (p Params) Solution() string {
	return fmt.Sprintf("θ(t) = %.4f rad · cos(%.4f rad/s · t)", p.Amplitude, p.AngularFrequency)
}

// Config is the validated input that seeds a run.
type Config struct {
	InitialAngleDeg float64
	Length          float64
	TimeStep        float64
	Steps           int
}

// InitialAngle returns the initial displacement in radians.
func (c Config) InitialAngle() float64 {
	return c.InitialAngleDeg * math.Pi / 180
}

func (c Config) Duration() float64 {
	return c.TimeStep * float64(c.Steps)
}

type System interface {
	Derive(x State) State
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(sys System, x State, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Result struct {
	Trajectory  Trajectory
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}
