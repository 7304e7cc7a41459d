package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// AngularVelocity is dθ/dt.
func AngularVelocity(omega float64) float64 {
	return omega
}

// AngularAcceleration is dω/dt for an undamped pendulum. length must be
// nonzero.
func AngularAcceleration(theta, length float64) float64 {
	return -(dynamo.Gravity / length) * math.Sin(theta)
}

// Pendulum is the undamped simple pendulum θ'' = -(g/L) sin θ written as a
// first-order system over (θ, ω).
type Pendulum struct {
	Length float64
}

func NewPendulum(length float64) *Pendulum {
	return &Pendulum{Length: length}
}

func (p *Pendulum) Derive(x dynamo.State) dynamo.State {
	return dynamo.State{
		Theta: AngularVelocity(x.Omega),
		Omega: AngularAcceleration(x.Theta, p.Length),
	}
}

// Energy returns ½ω² - (g/L)cos θ, which is conserved by the exact flow.
func (p *Pendulum) Energy(x dynamo.State) float64 {
	return 0.5*x.Omega*x.Omega - (dynamo.Gravity/p.Length)*math.Cos(x.Theta)
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"length": p.Length,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "length":
		if value <= 0 {
			return fmt.Errorf("%w: length must be positive, got %g", dynamo.ErrParameterBounds, value)
		}
		p.Length = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
