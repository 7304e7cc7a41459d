package integrators

import "github.com/san-kum/pendsim/internal/dynamo"

const (
	half     = 1.0 / 2.0
	oneSixth = 1.0 / 6.0
)

// RK4 is the classical fourth-order Runge-Kutta stepper. Each stage
// perturbs both components of the state, so the θ and ω updates stay
// coupled.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Info() Info {
	return Info{Name: "rk4", Stages: 4, Order: 4}
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, dt float64) dynamo.State {
	k1 := sys.Derive(x).Scale(dt)
	k2 := sys.Derive(x.Add(k1.Scale(half))).Scale(dt)
	k3 := sys.Derive(x.Add(k2.Scale(half))).Scale(dt)
	k4 := sys.Derive(x.Add(k3)).Scale(dt)

	return dynamo.State{
		Theta: x.Theta + oneSixth*(k1.Theta+2*k2.Theta+2*k3.Theta+k4.Theta),
		Omega: x.Omega + oneSixth*(k1.Omega+2*k2.Omega+2*k3.Omega+k4.Omega),
	}
}
