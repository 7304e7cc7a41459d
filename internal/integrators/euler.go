package integrators

import "github.com/san-kum/pendsim/internal/dynamo"

// Euler is the explicit first-order stepper, kept as an accuracy baseline.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Info() Info {
	return Info{Name: "euler", Stages: 1, Order: 1}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, dt float64) dynamo.State {
	return x.Add(sys.Derive(x).Scale(dt))
}
